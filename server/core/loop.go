package core

import (
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/sirupsen/logrus"

	"github.com/automoto/netplayer/shared/logger"
)

// maxCatchUpSteps bounds how many fixed steps one network tick may run after
// a stall.
const maxCatchUpSteps = 8

// GameLoop wakes at the network tick rate, runs however many fixed physics
// steps are due, then replicates the world.
type GameLoop struct {
	server   *Server
	tickRate int
	running  bool
	stopChan chan struct{}
	log      *logrus.Entry
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	if tickRate < 1 {
		tickRate = 1
	}
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		log:      logger.Component("loop"),
	}
}

func (g *GameLoop) Run() {
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Infof("Game loop started at %d ticks/second, physics step %v", g.tickRate, g.server.clock.Step())

	last := time.Now()
	for {
		select {
		case <-g.stopChan:
			g.running = false
			g.log.Info("Game loop stopped")
			return
		case now := <-ticker.C:
			g.tick(now.Sub(last))
			last = now
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) tick(elapsed time.Duration) {
	g.server.Advance(elapsed)

	if err := g.server.sync(); err != nil {
		g.log.WithError(err).Warn("Sync error")
	}
}

// Advance runs the fixed steps due after elapsed wall time and returns how
// many ran.
func (s *Server) Advance(elapsed time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	steps := s.clock.Advance(elapsed)
	dt := s.clock.Seconds()
	for i := 0; i < steps; i++ {
		s.step(s.clock.Consume(), dt)
	}
	return steps
}

// step runs one fixed step with s.mu held: queued damage first, then every
// player's movement, then hazard contact at the new positions.
func (s *Server) step(now time.Duration, dt float64) {
	s.applyQueuedDamage()
	for _, p := range s.players {
		p.Tick(now, dt)
		s.applyHazards(p, now)
	}
}

func (s *Server) sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return srvsync.DoSync()
}

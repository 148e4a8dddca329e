package core

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/netplayer/shared/leveldata"
)

// ErrUnknownPlayer is returned for a network id that has no player.
var ErrUnknownPlayer = errors.New("unknown player")

// DamageRequest is one queued hit. AttackerID is 0 for environmental damage.
type DamageRequest struct {
	TargetID   uint
	Amount     uint32
	AttackerID uint
}

// damageQueue collects hits from any goroutine until the next tick drains them.
type damageQueue struct {
	mu      sync.Mutex
	pending []DamageRequest
}

func (q *damageQueue) push(req DamageRequest) {
	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()
}

func (q *damageQueue) drain() []DamageRequest {
	q.mu.Lock()
	out := q.pending
	q.pending = nil
	q.mu.Unlock()
	return out
}

// QueueDamage schedules damage for the next tick. Requests apply in arrival
// order. Safe from any goroutine.
func (s *Server) QueueDamage(targetID uint, amount uint32, attackerID uint) error {
	s.mu.RLock()
	_, ok := s.byNetID[targetID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, targetID)
	}
	s.damage.push(DamageRequest{TargetID: targetID, Amount: amount, AttackerID: attackerID})
	return nil
}

// applyQueuedDamage runs on the tick goroutine with s.mu held. Players that
// left since the request was queued are skipped.
func (s *Server) applyQueuedDamage() {
	for _, req := range s.damage.drain() {
		p, ok := s.byNetID[req.TargetID]
		if !ok {
			continue
		}
		p.ApplyDamage(req.Amount, req.AttackerID)
	}
}

// applyHazards damages p for every hazard it overlaps whose re-hit interval
// has elapsed. The first contact always hits.
func (s *Server) applyHazards(p *Player, now time.Duration) {
	if !p.Health.Alive() {
		return
	}
	bounds := p.Bounds()
	for i, hz := range s.level.Hazards {
		if !rectsOverlap(bounds, hz.Rect) {
			continue
		}
		interval := hz.Interval
		if interval <= 0 {
			interval = leveldata.DefaultHazardInterval
		}
		if last, hit := p.hazardHits[i]; hit && now-last < interval {
			continue
		}
		p.hazardHits[i] = now
		s.log.WithField("player", p.Name).Debugf("hazard %q hit for %d", hz.Name, hz.Damage)
		p.ApplyDamage(hz.Damage, 0)
	}
}

func rectsOverlap(a, b leveldata.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

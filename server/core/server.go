package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"

	"github.com/automoto/netplayer/server/config"
	"github.com/automoto/netplayer/shared/health"
	"github.com/automoto/netplayer/shared/logger"
	"github.com/automoto/netplayer/shared/messages"
	"github.com/automoto/netplayer/shared/tick"
)

// Join rejection reasons.
var (
	ErrVersionMismatch = errors.New("version mismatch")
	ErrServerFull      = errors.New("server full")
	ErrAlreadyJoined   = errors.New("already joined")
)

// Peer is a connected client as the server sees it. *router.NetworkClient
// satisfies it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

// Server manages the game state and client connections.
type Server struct {
	cfg       config.Config
	world     donburi.World
	level     *ServerLevel
	loop      *GameLoop
	clock     *tick.Accumulator
	transport *transports.WsServerTransport
	log       *logrus.Entry

	// mu guards the world, the level space and the player maps. The tick
	// holds it for a whole step.
	mu       sync.RWMutex
	players  map[string]*Player // by client id
	byNetID  map[uint]*Player
	joinedAt int

	peersMu sync.RWMutex
	peers   map[string]Peer

	damage damageQueue
}

// NewServer creates a server for level. Router callbacks are registered by Start.
func NewServer(cfg config.Config, level *ServerLevel) *Server {
	world := donburi.NewWorld()
	srvsync.UseEsync(world)

	s := &Server{
		cfg:     cfg,
		world:   world,
		level:   level,
		clock:   tick.NewAccumulator(cfg.FixedStep(), maxCatchUpSteps),
		log:     logger.Component("server"),
		players: make(map[string]*Player),
		byNetID: make(map[uint]*Player),
		peers:   make(map[string]Peer),
	}
	s.loop = NewGameLoop(s, cfg.TickRate)
	return s
}

// Start registers router callbacks, starts the game loop and serves
// websockets on port. It blocks until the transport stops.
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()

	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.HandleConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.HandleDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.HandleJoin(client, req)
	})

	router.On(func(client *router.NetworkClient, msg messages.MoveIntent) {
		s.HandleMoveIntent(client, msg)
	})

	router.On(func(client *router.NetworkClient, msg messages.JumpIntent) {
		s.HandleJumpIntent(client, msg)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.WithError(err).Warn("client error")
	})
}

// HandleConnect tracks a new connection. The player is only created on join.
func (s *Server) HandleConnect(peer Peer) {
	s.log.WithField("client", peer.Id()).Info("client connected")
	s.peersMu.Lock()
	s.peers[peer.Id()] = peer
	s.peersMu.Unlock()
}

// HandleDisconnect removes the connection and its player, if any.
func (s *Server) HandleDisconnect(peer Peer, err error) {
	entry := s.log.WithField("client", peer.Id())
	if err != nil {
		entry.WithError(err).Info("client disconnected with error")
	} else {
		entry.Info("client disconnected")
	}

	s.peersMu.Lock()
	delete(s.peers, peer.Id())
	s.peersMu.Unlock()

	s.mu.Lock()
	p, ok := s.players[peer.Id()]
	if ok {
		delete(s.players, peer.Id())
		delete(s.byNetID, uint(p.NetworkID))
		p.remove()
	}
	s.mu.Unlock()

	if ok {
		entry.WithField("network_id", p.NetworkID).Info("player removed")
		s.broadcast(messages.DespawnEvent{NetworkID: uint(p.NetworkID)})
	}
}

// HandleJoin admits or rejects a join request. Accepted clients get a fresh
// player at full health.
func (s *Server) HandleJoin(peer Peer, req messages.JoinRequest) {
	entry := s.log.WithFields(logrus.Fields{"client": peer.Id(), "player": req.PlayerName})

	p, err := s.join(peer, req)
	if err != nil {
		entry.WithError(err).Warn("join rejected")
		if sendErr := peer.SendMessage(messages.JoinRejected{Reason: err.Error()}); sendErr != nil {
			entry.WithError(sendErr).Warn("failed to send join rejection")
		}
		return
	}

	accepted := messages.JoinAccepted{
		NetworkID:  p.NetworkID,
		SessionID:  p.SessionID,
		ServerName: s.cfg.Name,
		TickRate:   s.cfg.TickRate,
		MaxHealth:  p.Health.Max(),
		Movement:   p.Movement(),
	}
	if err := peer.SendMessage(accepted); err != nil {
		entry.WithError(err).Warn("failed to send join acceptance")
	}

	feet := p.Feet()
	entry.WithField("network_id", p.NetworkID).Infof("player spawned at (%.2f, %.2f)", feet.X, feet.Y)
	s.broadcast(messages.SpawnEvent{
		NetworkID:  uint(p.NetworkID),
		PlayerName: p.Name,
		X:          feet.X,
		Y:          feet.Y,
	})
}

func (s *Server) join(peer Peer, req messages.JoinRequest) (*Player, error) {
	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		return nil, fmt.Errorf("%w: server requires %q, client has %q", ErrVersionMismatch, s.cfg.Version, req.Version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[peer.Id()]; ok {
		return nil, ErrAlreadyJoined
	}
	if len(s.players) >= s.cfg.MaxPlayers {
		return nil, fmt.Errorf("%w: %d/%d players", ErrServerFull, len(s.players), s.cfg.MaxPlayers)
	}

	name := req.PlayerName
	if name == "" {
		s.joinedAt++
		name = fmt.Sprintf("player-%d", s.joinedAt)
	}

	p, err := NewPlayer(s.world, s.level, PlayerParams{
		ClientID:     peer.Id(),
		Name:         name,
		SessionID:    uuid.NewString(),
		Spawn:        s.level.NextSpawn(),
		MaxHealth:    s.cfg.MaxHealth,
		Movement:     s.cfg.Movement,
		Gravity:      s.cfg.Gravity,
		MaxFallSpeed: s.cfg.MaxFallSpeed,
		ProbeRadius:  DefaultProbeRadius,
	})
	if err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}

	nid := uint(p.NetworkID)
	p.Health.Subscribe(health.ListenerFuncs{
		OnChanged: func(current, max uint32) {
			s.broadcast(messages.HealthChangedEvent{NetworkID: nid, Health: current, MaxHealth: max})
		},
		OnDied: func() {
			s.log.WithFields(logrus.Fields{"player": p.Name, "killer": p.lastAttacker}).Info("player died")
			s.broadcast(messages.DeathEvent{VictimID: nid, KillerID: p.lastAttacker})
		},
	})

	s.players[peer.Id()] = p
	s.byNetID[nid] = p
	return p, nil
}

// HandleMoveIntent stores the latest move vector for the sender's player.
// Commands from clients that have not joined are ignored.
func (s *Server) HandleMoveIntent(peer Peer, msg messages.MoveIntent) {
	if p := s.playerFor(peer); p != nil {
		p.SubmitMoveIntent(msg.X, msg.Y)
	}
}

// HandleJumpIntent stores the latest jump level for the sender's player.
func (s *Server) HandleJumpIntent(peer Peer, msg messages.JumpIntent) {
	if p := s.playerFor(peer); p != nil {
		p.SubmitJumpIntent(msg.Level)
	}
}

func (s *Server) playerFor(peer Peer) *Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players[peer.Id()]
}

// broadcast sends msg to every connected client. Failures are logged per client.
func (s *Server) broadcast(msg any) {
	s.peersMu.RLock()
	peers := make([]Peer, 0, len(s.peers))
	for _, p := range s.peers {
		peers = append(peers, p)
	}
	s.peersMu.RUnlock()

	for _, p := range peers {
		if err := p.SendMessage(msg); err != nil {
			s.log.WithField("client", p.Id()).WithError(err).Warnf("failed to send %T", msg)
		}
	}
}

// World returns the ECS world.
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined players.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// Player looks up a joined player by network id.
func (s *Server) Player(networkID uint) (*Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byNetID[networkID]
	return p, ok
}

package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"

	"github.com/automoto/netplayer/shared/logger"
	"github.com/automoto/netplayer/shared/messages"
	"github.com/automoto/netplayer/shared/netconfig"
)

// ErrNotConnected is returned by SendMessage before the socket is up.
var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	sessionID  string
	serverName string
	tickRate   int
	maxHealth  uint32
	movement   netconfig.MovementConfig
	conn       *websocket.Conn

	log *logrus.Entry

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	healthCh  chan messages.HealthChangedEvent
	deathCh   chan messages.DeathEvent
	spawnCh   chan messages.SpawnEvent
	despawnCh chan messages.DespawnEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		log:        logger.Component("client"),
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		healthCh:   make(chan messages.HealthChangedEvent, 16),
		deathCh:    make(chan messages.DeathEvent, 4),
		spawnCh:    make(chan messages.SpawnEvent, 8),
		despawnCh:  make(chan messages.DespawnEvent, 8),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Info("connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		}); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.HandleJoinAccepted(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.log.Warnf("join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.HealthChangedEvent) {
		offer(c.healthCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.DeathEvent) {
		offer(c.deathCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.SpawnEvent) {
		offer(c.spawnCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.DespawnEvent) {
		offer(c.despawnCh, evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.WithError(err).Info("disconnected")
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.WithError(err).Warn("router error")
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// HandleJoinAccepted records the handshake result. From here on NetworkID
// names the entity this client controls.
func (c *Client) HandleJoinAccepted(msg messages.JoinAccepted) {
	c.log.WithFields(logrus.Fields{
		"network_id": msg.NetworkID,
		"server":     msg.ServerName,
		"tick_rate":  msg.TickRate,
		"model":      msg.Movement.Model,
	}).Info("join accepted")

	c.mu.Lock()
	c.networkID = msg.NetworkID
	c.sessionID = msg.SessionID
	c.serverName = msg.ServerName
	c.tickRate = msg.TickRate
	c.maxHealth = msg.MaxHealth
	c.movement = msg.Movement
	c.state = StateJoinedGame
	c.mu.Unlock()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// NetworkID returns the local player's network id, 0 before joining.
func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

// IsLocal reports whether id is the entity this client controls.
func (c *Client) IsLocal(id esync.NetworkId) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateJoinedGame && id == c.networkID
}

func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *Client) MaxHealth() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxHealth
}

// Movement returns the tunables the server assigned to the local player.
func (c *Client) Movement() netconfig.MovementConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.movement
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendMessage serializes msg with the router codec and writes it to the server.
func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainHealthEvents returns all pending health events, non-blocking.
func (c *Client) DrainHealthEvents() []messages.HealthChangedEvent {
	return drainChan(c.healthCh)
}

// DrainDeathEvents returns all pending death events, non-blocking.
func (c *Client) DrainDeathEvents() []messages.DeathEvent {
	return drainChan(c.deathCh)
}

// DrainSpawnEvents returns all pending spawn events, non-blocking.
func (c *Client) DrainSpawnEvents() []messages.SpawnEvent {
	return drainChan(c.spawnCh)
}

// DrainDespawnEvents returns all pending despawn events, non-blocking.
func (c *Client) DrainDespawnEvents() []messages.DespawnEvent {
	return drainChan(c.despawnCh)
}

// offer pushes without blocking the router goroutine; a full channel drops evt.
func offer[T any](ch chan T, evt T) {
	select {
	case ch <- evt:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}

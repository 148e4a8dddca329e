package core

import (
	"sync"
	"testing"

	"github.com/automoto/netplayer/server/config"
	"github.com/automoto/netplayer/shared/leveldata"
	"github.com/automoto/netplayer/shared/messages"
	"github.com/automoto/netplayer/shared/protocol"
)

type fakePeer struct {
	id string

	mu   sync.Mutex
	sent []any
}

func newPeer(id string) *fakePeer { return &fakePeer{id: id} }

func (p *fakePeer) Id() string { return p.id }

func (p *fakePeer) SendMessage(msg any) error {
	p.mu.Lock()
	p.sent = append(p.sent, msg)
	p.mu.Unlock()
	return nil
}

func (p *fakePeer) messages() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.sent...)
}

func sentOf[T any](p *fakePeer) []T {
	var out []T
	for _, m := range p.messages() {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func registerForTest() error { return protocol.RegisterComponents() }

func testConfig() config.Config { return config.Default() }

func newTestServer(t *testing.T, data *leveldata.CollisionData, mutate ...func(*config.Config)) *Server {
	t.Helper()
	if err := registerForTest(); err != nil {
		t.Fatalf("RegisterComponents: %v", err)
	}
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	return NewServer(cfg, NewServerLevel("test", data))
}

// joinPlayer connects and joins a peer, returning its player.
func joinPlayer(t *testing.T, s *Server, id string) (*fakePeer, *Player) {
	t.Helper()
	peer := newPeer(id)
	s.HandleConnect(peer)
	s.HandleJoin(peer, messages.JoinRequest{PlayerName: id})

	accepted := sentOf[messages.JoinAccepted](peer)
	if len(accepted) != 1 {
		t.Fatalf("expected one JoinAccepted for %s, got %v", id, peer.messages())
	}
	p, ok := s.Player(uint(accepted[0].NetworkID))
	if !ok {
		t.Fatalf("player %s not found by network id %d", id, accepted[0].NetworkID)
	}
	return peer, p
}

// stepN runs n fixed steps one at a time so the catch-up cap never drops any.
func stepN(s *Server, n int) {
	for i := 0; i < n; i++ {
		s.Advance(s.clock.Step())
	}
}

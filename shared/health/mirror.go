package health

// Mirror tracks replicated health on a client and turns it into the local
// event surface. Replication may deliver the same value more than once, or a
// stale value after a newer event; the mirror notifies only when health drops
// and reports death once.
type Mirror struct {
	health uint32
	max    uint32
	known  bool
	dead   bool
	subs   listeners
}

// Subscribe registers l and returns a function that removes it.
func (m *Mirror) Subscribe(l Listener) (unsubscribe func()) {
	return m.subs.subscribe(l)
}

// Apply records an authoritative (health, max) pair.
func (m *Mirror) Apply(health, max uint32) {
	if m.dead {
		return
	}
	if m.known && (health > m.health || (health == m.health && max == m.max)) {
		return
	}
	m.health, m.max, m.known = health, max, true
	m.subs.changed(health, max)
	if health == 0 {
		m.dead = true
		m.subs.died()
	}
}

// MarkDead records an authoritative death without a preceding health value.
func (m *Mirror) MarkDead() {
	if m.dead {
		return
	}
	if !m.known || m.health != 0 {
		m.health, m.known = 0, true
		m.subs.changed(0, m.max)
	}
	m.dead = true
	m.subs.died()
}

func (m *Mirror) Health() uint32 { return m.health }
func (m *Mirror) Max() uint32    { return m.max }
func (m *Mirror) Dead() bool     { return m.dead }

// Package health implements the server-authoritative health state machine and
// the client-side mirror that replays replicated health as local events.
//
// Every notification carries (health, max) in that order.
package health

// State is the life state of an entity. The only transition is Alive -> Dead.
type State int

const (
	Alive State = iota
	Dead
)

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// Listener observes health changes. HealthChanged fires on every change,
// Died exactly once on the transition to zero.
type Listener interface {
	HealthChanged(health, max uint32)
	Died()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnChanged func(health, max uint32)
	OnDied    func()
}

func (f ListenerFuncs) HealthChanged(health, max uint32) {
	if f.OnChanged != nil {
		f.OnChanged(health, max)
	}
}

func (f ListenerFuncs) Died() {
	if f.OnDied != nil {
		f.OnDied()
	}
}

// listeners is an ordered subscription list shared by Controller and Mirror.
type listeners struct {
	next int
	subs []subscription
}

type subscription struct {
	id int
	l  Listener
}

func (ls *listeners) subscribe(l Listener) func() {
	ls.next++
	id := ls.next
	ls.subs = append(ls.subs, subscription{id: id, l: l})
	return func() {
		for i, s := range ls.subs {
			if s.id == id {
				ls.subs = append(ls.subs[:i:i], ls.subs[i+1:]...)
				return
			}
		}
	}
}

func (ls *listeners) changed(health, max uint32) {
	for _, s := range ls.subs {
		s.l.HealthChanged(health, max)
	}
}

func (ls *listeners) died() {
	for _, s := range ls.subs {
		s.l.Died()
	}
}

// Controller owns one entity's health. It is not safe for concurrent use; the
// server applies damage sequentially from its tick goroutine.
type Controller struct {
	max     uint32
	current uint32
	subs    listeners
}

// New returns a controller at full health.
func New(max uint32) *Controller {
	return &Controller{max: max, current: max}
}

// Subscribe registers l and returns a function that removes it.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	return c.subs.subscribe(l)
}

// ApplyDamage subtracts amount, clamping at zero. Damage to a dead entity, and
// zero damage, change nothing and notify nobody.
func (c *Controller) ApplyDamage(amount uint32) {
	if c.current == 0 || amount == 0 {
		return
	}
	if amount >= c.current {
		c.current = 0
	} else {
		c.current -= amount
	}
	c.subs.changed(c.current, c.max)
	if c.current == 0 {
		c.subs.died()
	}
}

func (c *Controller) Health() uint32 { return c.current }
func (c *Controller) Max() uint32    { return c.max }

// State reports Alive or Dead.
func (c *Controller) State() State {
	if c.current == 0 {
		return Dead
	}
	return Alive
}

// Alive is shorthand for State() == Alive.
func (c *Controller) Alive() bool {
	return c.current > 0
}

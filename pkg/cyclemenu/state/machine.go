package state

import "fmt"

// State is a lifecycle state of the menu.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Steady reports whether no animation is associated with s.
func (s State) Steady() bool {
	return s == Closed || s == Open
}

// Trigger is a request fed into the Machine.
type Trigger int

const (
	// TriggerOpen starts the animated open.
	TriggerOpen Trigger = iota
	// TriggerClose starts the animated close.
	TriggerClose
	// TriggerOpenNow opens without animation.
	TriggerOpenNow
	// TriggerCloseNow closes without animation.
	TriggerCloseNow
	// TriggerComplete reports that the running animation finished for every item.
	TriggerComplete
	// TriggerTeardown finishes a running animation synchronously.
	TriggerTeardown
)

func (t Trigger) String() string {
	switch t {
	case TriggerOpen:
		return "open"
	case TriggerClose:
		return "close"
	case TriggerOpenNow:
		return "open-now"
	case TriggerCloseNow:
		return "close-now"
	case TriggerComplete:
		return "complete"
	case TriggerTeardown:
		return "teardown"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// opens reports whether t asks for the open direction.
func (t Trigger) opens() bool {
	return t == TriggerOpen || t == TriggerOpenNow
}

func (t Trigger) closes() bool {
	return t == TriggerClose || t == TriggerCloseNow
}

// Transition describes one state change.
type Transition struct {
	From    State
	To      State
	Trigger Trigger
	// Forced is set when the change skipped or cut short an animation.
	Forced bool
	// Superseded is set when an opposite request is waiting to run right
	// after this transition.
	Superseded bool
}

// Listener is notified after every transition.
type Listener func(t Transition)

type edge struct {
	to     State
	forced bool
}

// transitions is the complete table. Anything missing is ignored, except for
// opposite requests during an animation, which are deferred.
var transitions = map[State]map[Trigger]edge{
	Closed: {
		TriggerOpen:    {to: Opening},
		TriggerOpenNow: {to: Open, forced: true},
	},
	Opening: {
		TriggerComplete: {to: Open},
		TriggerTeardown: {to: Open, forced: true},
	},
	Open: {
		TriggerClose:    {to: Closing},
		TriggerCloseNow: {to: Closed, forced: true},
	},
	Closing: {
		TriggerComplete: {to: Closed},
		TriggerTeardown: {to: Closed, forced: true},
	},
}

// Machine tracks the lifecycle state and notifies listeners about changes.
// Triggers fired from inside a listener are queued and handled once the
// current notification round has finished.
type Machine struct {
	current     State
	deferred    Trigger
	hasDeferred bool

	listeners   []Listener
	dispatching bool
	queue       []Trigger
}

// New creates a Machine in the Closed state.
func New() *Machine {
	return &Machine{current: Closed}
}

// NewWithState creates a Machine starting in s. Only steady states are
// accepted; anything else starts Closed.
func NewWithState(s State) *Machine {
	if !s.Steady() {
		s = Closed
	}
	return &Machine{current: s}
}

// OnTransition adds a listener.
func (m *Machine) OnTransition(fn Listener) *Machine {
	m.listeners = append(m.listeners, fn)
	return m
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// ScrollEnabled reports whether the arc may be scrolled in the current state.
func (m *Machine) ScrollEnabled() bool {
	return m.current == Open
}

// Pending returns the request waiting for the running animation, if any.
func (m *Machine) Pending() (Trigger, bool) {
	return m.deferred, m.hasDeferred
}

// Fire feeds a trigger into the machine. It returns the resulting transition
// and true when the state changed. Ignored, deferred and queued triggers
// return false.
func (m *Machine) Fire(trigger Trigger) (Transition, bool) {
	if m.dispatching {
		m.queue = append(m.queue, trigger)
		return Transition{}, false
	}

	t, ok := m.step(trigger)
	if ok {
		m.dispatch(t)
	}
	m.drain()
	return t, ok
}

func (m *Machine) step(trigger Trigger) (Transition, bool) {
	e, ok := transitions[m.current][trigger]
	if !ok {
		m.deferIfOpposite(trigger)
		return Transition{}, false
	}

	t := Transition{From: m.current, To: e.to, Trigger: trigger, Forced: e.forced}
	switch trigger {
	case TriggerComplete:
		if m.hasDeferred {
			t.Superseded = true
			m.queue = append(m.queue, m.deferred)
		}
		m.hasDeferred = false
	case TriggerTeardown:
		m.hasDeferred = false
	}

	m.current = e.to
	return t, true
}

// deferIfOpposite remembers a request that reverses the running animation.
func (m *Machine) deferIfOpposite(trigger Trigger) {
	switch {
	case m.current == Opening && trigger.closes():
	case m.current == Closing && trigger.opens():
	default:
		return
	}
	m.deferred = trigger
	m.hasDeferred = true
}

func (m *Machine) dispatch(t Transition) {
	m.dispatching = true
	defer func() { m.dispatching = false }()

	for _, fn := range m.listeners {
		fn(t)
	}
}

func (m *Machine) drain() {
	for len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]

		if t, ok := m.step(next); ok {
			m.dispatch(t)
		}
	}
}

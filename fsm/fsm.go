package fsm

import "log/slog"

// State names a phase of a machine.
type State string

// maxHops bounds how many transitions one event can drive through transient
// states.
const maxHops = 8

// Transition moves the machine from From to To when Guard holds. A nil Guard
// always holds and a nil Action does nothing. To may equal From: the action
// then runs once per event, which is how a state does its per-tick work.
type Transition[E any] struct {
	From   State
	Guard  func(E) bool
	Action func(E)
	To     State
}

// Machine is a table driven state machine over events of type E. For each
// event the first transition out of the current state whose guard holds
// fires. When that lands in a transient state the same event is processed
// again, so decision states resolve within the tick they are entered.
type Machine[E any] struct {
	name        string
	current     State
	transitions []Transition[E]
	transient   map[State]bool
}

func New[E any](name string, initial State, transitions []Transition[E], transient ...State) *Machine[E] {
	m := &Machine[E]{
		name:        name,
		current:     initial,
		transitions: transitions,
		transient:   make(map[State]bool, len(transient)),
	}
	for _, s := range transient {
		m.transient[s] = true
	}
	return m
}

// Process feeds e to the machine and reports whether any transition fired.
func (m *Machine[E]) Process(e E) bool {
	fired := false
	for range maxHops {
		t, ok := m.next(e)
		if !ok {
			return fired
		}
		if t.Action != nil {
			t.Action(e)
		}
		if t.To != m.current {
			slog.Debug("state change", "machine", m.name, "from", m.current, "to", t.To)
		}
		m.current = t.To
		fired = true
		if !m.transient[m.current] {
			return true
		}
	}
	slog.Warn("transient state loop", "machine", m.name, "state", m.current)
	return fired
}

func (m *Machine[E]) next(e E) (Transition[E], bool) {
	for _, t := range m.transitions {
		if t.From != m.current {
			continue
		}
		if t.Guard == nil || t.Guard(e) {
			return t, true
		}
	}
	return Transition[E]{}, false
}

func (m *Machine[E]) Current() State { return m.current }

func (m *Machine[E]) Is(s State) bool { return m.current == s }

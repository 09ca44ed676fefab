package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(m *Machine) *[]Transition {
	var seen []Transition
	m.OnTransition(func(t Transition) { seen = append(seen, t) })
	return &seen
}

func TestOpeningIgnoresEverythingButCompletion(t *testing.T) {
	t.Parallel()

	m := New()
	seen := record(m)

	_, ok := m.Fire(TriggerOpen)
	require.True(t, ok)
	require.Equal(t, Opening, m.Current())

	for _, trigger := range []Trigger{TriggerOpen, TriggerOpenNow, TriggerOpen} {
		_, ok := m.Fire(trigger)
		assert.False(t, ok, trigger.String())
		assert.Equal(t, Opening, m.Current())
	}
	_, pending := m.Pending()
	assert.False(t, pending)
	assert.False(t, m.ScrollEnabled())

	tr, ok := m.Fire(TriggerComplete)
	require.True(t, ok)
	assert.Equal(t, Transition{From: Opening, To: Open, Trigger: TriggerComplete}, tr)
	assert.True(t, m.ScrollEnabled())
	assert.Len(t, *seen, 2)
}

func TestOppositeRequestIsDeferred(t *testing.T) {
	t.Parallel()

	m := New()
	seen := record(m)

	m.Fire(TriggerOpen)
	_, ok := m.Fire(TriggerClose)
	assert.False(t, ok)

	trigger, pending := m.Pending()
	require.True(t, pending)
	assert.Equal(t, TriggerClose, trigger)

	// Completion of the open runs the deferred close right away.
	tr, ok := m.Fire(TriggerComplete)
	require.True(t, ok)
	assert.True(t, tr.Superseded)
	assert.Equal(t, Closing, m.Current())

	m.Fire(TriggerComplete)
	assert.Equal(t, Closed, m.Current())

	want := []Transition{
		{From: Closed, To: Opening, Trigger: TriggerOpen},
		{From: Opening, To: Open, Trigger: TriggerComplete, Superseded: true},
		{From: Open, To: Closing, Trigger: TriggerClose},
		{From: Closing, To: Closed, Trigger: TriggerComplete},
	}
	assert.Equal(t, want, *seen)
}

func TestTeardownCommitsForward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup []Trigger
		want  State
	}{
		{name: "opening", setup: []Trigger{TriggerOpen}, want: Open},
		{name: "closing", setup: []Trigger{TriggerOpenNow, TriggerClose}, want: Closed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			for _, trigger := range tt.setup {
				m.Fire(trigger)
			}
			m.Fire(map[State]Trigger{Opening: TriggerClose, Closing: TriggerOpen}[m.Current()])

			tr, ok := m.Fire(TriggerTeardown)
			require.True(t, ok)
			assert.True(t, tr.Forced)
			assert.Equal(t, tt.want, m.Current())

			_, pending := m.Pending()
			assert.False(t, pending, "teardown drops deferred requests")
		})
	}
}

func TestSteadyStatesIgnoreTeardownAndCompletion(t *testing.T) {
	t.Parallel()

	for _, start := range []State{Closed, Open} {
		m := NewWithState(start)
		for _, trigger := range []Trigger{TriggerTeardown, TriggerComplete} {
			_, ok := m.Fire(trigger)
			assert.False(t, ok)
			assert.Equal(t, start, m.Current())
		}
	}

	assert.Equal(t, Closed, NewWithState(Opening).Current())
}

func TestImmediateTransitions(t *testing.T) {
	t.Parallel()

	m := New()
	tr, ok := m.Fire(TriggerOpenNow)
	require.True(t, ok)
	assert.Equal(t, Transition{From: Closed, To: Open, Trigger: TriggerOpenNow, Forced: true}, tr)

	tr, ok = m.Fire(TriggerCloseNow)
	require.True(t, ok)
	assert.Equal(t, Transition{From: Open, To: Closed, Trigger: TriggerCloseNow, Forced: true}, tr)

	_, ok = m.Fire(TriggerClose)
	assert.False(t, ok)
}

func TestTriggersFromListenersAreQueued(t *testing.T) {
	t.Parallel()

	m := New()
	var order []string
	m.OnTransition(func(t Transition) {
		order = append(order, "a:"+t.To.String())
		// An animation with nothing to animate completes synchronously.
		if t.To == Opening {
			m.Fire(TriggerComplete)
		}
	})
	m.OnTransition(func(t Transition) {
		order = append(order, "b:"+t.To.String())
	})

	m.Fire(TriggerOpen)

	assert.Equal(t, []string{"a:opening", "b:opening", "a:open", "b:open"}, order)
	assert.Equal(t, Open, m.Current())
}

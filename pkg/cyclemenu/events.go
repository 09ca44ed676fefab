package cyclemenu

import (
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/state"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventOpenComplete
	EventCloseComplete
	EventItemClicked
	EventItemLongClicked
	EventStateSaved
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state-changed"
	case EventOpenComplete:
		return "open-complete"
	case EventCloseComplete:
		return "close-complete"
	case EventItemClicked:
		return "item-clicked"
	case EventItemLongClicked:
		return "item-long-clicked"
	case EventStateSaved:
		return "state-saved"
	default:
		return "unknown"
	}
}

// Event is sent on the widget's event channel. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind     EventKind
	WidgetID string

	// EventStateChanged
	State  state.State
	Forced bool // The change skipped or cut short an animation

	// EventItemClicked, EventItemLongClicked
	ItemID   int
	RawIndex int
	Index    int // RawIndex reduced to the collection

	// EventStateSaved
	Position    int // layout.NoPosition when nothing was attached
	AngleOffset float64
}

// emit delivers ev without blocking. Events are dropped when the consumer
// does not keep up.
func (w *Widget) emit(ev Event) {
	ev.WidgetID = w.id
	select {
	case w.events <- ev:
	default:
		w.logger.Warn("Dropping widget event, channel full", "kind", ev.Kind.String())
	}
}

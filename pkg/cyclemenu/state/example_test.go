package state_test

import (
	"fmt"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/state"
)

// Example demonstrates an animated open followed by an animated close.
func Example() {
	m := state.New()

	// Animations report completion later, from the frame loop.
	var running func()

	m.OnTransition(func(t state.Transition) {
		fmt.Printf("%s -> %s\n", t.From, t.To)
		switch t.To {
		case state.Opening, state.Closing:
			running = func() { m.Fire(state.TriggerComplete) }
		case state.Open:
			if !t.Forced && !t.Superseded {
				fmt.Println("open complete")
			}
		case state.Closed:
			if !t.Forced && !t.Superseded {
				fmt.Println("close complete")
			}
		}
	})

	m.Fire(state.TriggerOpen)
	m.Fire(state.TriggerOpen) // ignored while opening
	running()

	m.Fire(state.TriggerClose)
	running()

	fmt.Println("final:", m.Current())

	// Output:
	// closed -> opening
	// opening -> open
	// open complete
	// open -> closing
	// closing -> closed
	// close complete
	// final: closed
}

// Example_reversal shows a close requested before the open animation finished.
// The close runs right after the open completes and no open completion is reported.
func Example_reversal() {
	m := state.New()
	var running func()

	m.OnTransition(func(t state.Transition) {
		fmt.Printf("%s -> %s superseded=%t\n", t.From, t.To, t.Superseded)
		if t.To == state.Opening || t.To == state.Closing {
			running = func() { m.Fire(state.TriggerComplete) }
		}
	})

	m.Fire(state.TriggerOpen)
	m.Fire(state.TriggerClose)
	running() // open animation ends, deferred close starts
	running() // close animation ends

	fmt.Println("final:", m.Current())

	// Output:
	// closed -> opening superseded=false
	// opening -> open superseded=true
	// open -> closing superseded=false
	// closing -> closed superseded=false
	// final: closed
}

// Example_teardown shows a menu detached while opening.
func Example_teardown() {
	m := state.New()

	m.OnTransition(func(t state.Transition) {
		fmt.Printf("%s -> %s forced=%t\n", t.From, t.To, t.Forced)
	})

	m.Fire(state.TriggerOpen)
	m.Fire(state.TriggerTeardown)
	m.Fire(state.TriggerComplete) // a late completion is ignored

	fmt.Println("final:", m.Current())

	// Output:
	// closed -> opening forced=false
	// opening -> open forced=true
	// final: open
}

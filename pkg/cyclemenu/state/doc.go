// Package state provides the open/close lifecycle of a cycle menu.
//
// A Machine moves between four states. Closed and Open are steady, Opening
// and Closing last as long as the reveal animation that drives them. All
// transitions are described by one table and reported to listeners registered
// with OnTransition, so the code that starts animations and emits events lives
// in one place.
//
// # Basic Usage
//
//	m := state.New()
//
//	m.OnTransition(func(t state.Transition) {
//	    switch t.To {
//	    case state.Opening:
//	        startRollIn(func() { m.Fire(state.TriggerComplete) })
//	    case state.Closing:
//	        startRollOut(func() { m.Fire(state.TriggerComplete) })
//	    case state.Open:
//	        if !t.Forced && !t.Superseded {
//	            notifyOpenComplete()
//	        }
//	    }
//	})
//
//	m.Fire(state.TriggerOpen)
//
// # Requests During Animations
//
// While Opening or Closing, a request for the same direction is ignored. A
// request for the opposite direction is remembered and fired as soon as the
// running animation completes. The completing transition is then marked
// Superseded so listeners can skip the completion notification.
//
// TriggerTeardown finishes a running animation immediately: Opening commits
// forward to Open and Closing completes to Closed. Both are marked Forced.
package state

package cyclemenu_test

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

// Example opens a menu, clicks an item and closes it again, driving the
// widget the way a frame loop would.
func Example() {
	items := cyclemenu.NewItemCollection(
		cyclemenu.MenuItem{ID: 1, Icon: constants.IconHome, Title: "Home"},
		cyclemenu.MenuItem{ID: 2, Icon: constants.IconSearch, Title: "Search"},
		cyclemenu.MenuItem{ID: 3, Icon: constants.IconShare, Title: "Share"},
	)

	w, err := cyclemenu.NewWidget(constants.CornerBottomRight, items, cyclemenu.IconVisualFactory(48))
	if err != nil {
		fmt.Println(err)
		return
	}
	w.SetSize(480, 480)

	frames := func(d time.Duration) {
		for t := time.Duration(0); t < d; t += 16 * time.Millisecond {
			w.Frame(16 * time.Millisecond)
		}
	}

	w.Open(true)
	frames(time.Second)

	slot := w.Slots()[0]
	arc := w.ArcBounds()
	x := arc.Left + (slot.Rect.Left+slot.Rect.Right)/2
	y := arc.Top + (slot.Rect.Top+slot.Rect.Bottom)/2
	w.TapAt(float64(x), float64(y), false)

	w.Close(true)
	frames(time.Second)

	for {
		select {
		case ev := <-w.Events():
			switch ev.Kind {
			case cyclemenu.EventStateChanged:
				fmt.Println(ev.Kind, ev.State)
			case cyclemenu.EventItemClicked:
				fmt.Println(ev.Kind, ev.ItemID)
			default:
				fmt.Println(ev.Kind)
			}
		default:
			return
		}
	}

	// Output:
	// state-changed opening
	// state-changed open
	// open-complete
	// item-clicked 1
	// state-changed closing
	// state-changed closed
	// close-complete
}

package cyclemenu

import (
	"math"
	"slices"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/layout"
)

// MenuItem is one button of the menu. Items are values and are never changed
// once added; replace the collection contents to change them.
type MenuItem struct {
	ID       int    // Reported with click events
	Icon     string // Built-in icon name (constants.Icon*) or path to an .svg file
	Title    string // Accessibility label
	Metadata any    // Application-specific data attached to the item
}

// ItemCollection is the ordered list of menu items. Every mutation asks the
// owning widget for a new layout pass.
type ItemCollection struct {
	items    []MenuItem
	onChange func()
}

// NewItemCollection creates a collection holding items.
func NewItemCollection(items ...MenuItem) *ItemCollection {
	return &ItemCollection{items: slices.Clone(items)}
}

// Len is the real number of items.
func (c *ItemCollection) Len() int {
	return len(c.items)
}

// VirtualCount is the size of the raw index space in mode. Infinite mode
// with at least one item is unbounded.
func (c *ItemCollection) VirtualCount(mode constants.ScrollMode) int {
	if mode == constants.ScrollInfinite && len(c.items) > 0 {
		return math.MaxInt
	}
	return len(c.items)
}

// At returns the item for a raw index, wrapping around the collection.
// The zero MenuItem is returned for an empty collection.
func (c *ItemCollection) At(raw int) MenuItem {
	if len(c.items) == 0 {
		return MenuItem{}
	}
	return c.items[layout.Wrap(raw, len(c.items))]
}

// Index returns the position of the first item with id, or -1.
func (c *ItemCollection) Index(id int) int {
	return slices.IndexFunc(c.items, func(it MenuItem) bool { return it.ID == id })
}

// Items returns a copy of the items.
func (c *ItemCollection) Items() []MenuItem {
	return slices.Clone(c.items)
}

func (c *ItemCollection) Append(item MenuItem) {
	c.items = append(c.items, item)
	c.changed()
}

func (c *ItemCollection) AppendAll(items ...MenuItem) {
	if len(items) == 0 {
		return
	}
	c.items = append(c.items, items...)
	c.changed()
}

// Set replaces every item.
func (c *ItemCollection) Set(items []MenuItem) {
	c.items = slices.Clone(items)
	c.changed()
}

func (c *ItemCollection) Clear() {
	c.items = nil
	c.changed()
}

func (c *ItemCollection) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

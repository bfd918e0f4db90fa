package dropdown

import "snippetkit/internal/tui/layout"

// Coordinator owns the "currently open dropdown" reference for one screen.
// Every widget built against the same coordinator shares one open slot.
type Coordinator struct {
	current  *Dropdown
	viewport layout.Size
	widgets  []*Dropdown
}

// NewCoordinator returns a coordinator for a viewport of the given size.
func NewCoordinator(viewport layout.Size) *Coordinator {
	return &Coordinator{viewport: viewport}
}

// Current returns the open widget, or nil.
func (c *Coordinator) Current() *Dropdown { return c.current }

// Viewport returns the last known viewport size.
func (c *Coordinator) Viewport() layout.Size { return c.viewport }

// Widgets returns the registered widgets in creation order.
func (c *Coordinator) Widgets() []*Dropdown {
	out := make([]*Dropdown, len(c.widgets))
	copy(out, c.widgets)
	return out
}

// Resize records the new viewport and repositions the open widget.
func (c *Coordinator) Resize(size layout.Size) {
	c.viewport = size
	if c.current != nil {
		c.current.Reposition()
	}
}

// Scrolled repositions the open widget after any ancestor scrolled.
func (c *Coordinator) Scrolled() {
	if c.current != nil {
		c.current.Reposition()
	}
}

// Click handles a pointer press anywhere on screen. It closes the open widget
// when p falls outside both its trigger and its option panel, and reports
// whether it did.
func (c *Coordinator) Click(p layout.Point) bool {
	d := c.current
	if d == nil {
		return false
	}
	if d.root.Box.Contains(p) || d.panel.Box.Contains(p) {
		return false
	}
	d.Close()
	return true
}

// CloseAll closes the open widget, if any.
func (c *Coordinator) CloseAll() {
	if c.current != nil {
		c.current.Close()
	}
}

// claim makes d the open widget, closing the previous one first.
func (c *Coordinator) claim(d *Dropdown) {
	if c.current != nil && c.current != d {
		c.current.Close()
	}
	c.current = d
}

func (c *Coordinator) release(d *Dropdown) {
	if c.current == d {
		c.current = nil
	}
}

func (c *Coordinator) register(d *Dropdown) {
	c.widgets = append(c.widgets, d)
}

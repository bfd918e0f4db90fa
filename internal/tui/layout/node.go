// Package layout is the geometry capability the TUI widgets measure against:
// a containment tree of boxes in terminal cells, clipping rules, and an
// ANSI-aware compositor for painting floating layers.
package layout

import "strings"

// Point is a cell coordinate.
type Point struct{ X, Y int }

// Size is a width/height pair in cells.
type Size struct{ W, H int }

// Rect is an on-screen box in cells.
type Rect struct{ X, Y, W, H int }

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether r has no area (never measured).
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return !r.Empty() && p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersect returns the overlap of r and o (empty when disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Overflow mirrors the CSS overflow property of a container.
type Overflow int

const (
	Visible Overflow = iota
	Hidden
	Scroll
	Auto
)

// Style holds the properties that decide whether a container clips descendants.
type Style struct {
	Transform  bool
	WillChange string
	OverflowX  Overflow
	OverflowY  Overflow
}

// Clips reports whether a container with this style would visually cut off a
// descendant that extends past its box.
func (s Style) Clips() bool {
	if s.Transform {
		return true
	}
	if strings.Contains(s.WillChange, "transform") {
		return true
	}
	return s.OverflowX != Visible || s.OverflowY != Visible
}

// Node is one box in the containment tree.
type Node struct {
	ID    string
	Style Style
	// Box is the on-screen box from the last layout pass.
	Box Rect

	parent   *Node
	children []*Node
}

// NewNode returns a detached node.
func NewNode(id string, style Style) *Node {
	return &Node{ID: id, Style: style}
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Root returns the topmost ancestor (n itself when unparented).
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Append adds c as the last child, moving it out of any previous parent.
func (n *Node) Append(c *Node) *Node {
	return n.Insert(c, len(n.children))
}

// Insert places c at index idx among n's children. Out-of-range indexes clamp.
func (n *Node) Insert(c *Node, idx int) *Node {
	if c.parent != nil {
		c.Remove()
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(n.children) {
		idx = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = c
	c.parent = n
	return c
}

// Remove detaches n from its parent and reports where it was.
func (n *Node) Remove() (parent *Node, idx int) {
	p := n.parent
	if p == nil {
		return nil, -1
	}
	i := n.Index()
	p.children = append(p.children[:i], p.children[i+1:]...)
	n.parent = nil
	return p, i
}

// Index returns n's position among its siblings, or -1 when unparented.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Find returns the descendant-or-self with the given id.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(id); f != nil {
			return f
		}
	}
	return nil
}

// Contains reports whether o is n or one of its descendants.
func (n *Node) Contains(o *Node) bool {
	for cur := o; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// HasClippingAncestor walks from n's parent up to, but excluding, the root
// layer and reports whether any container would clip n.
func HasClippingAncestor(n *Node) bool {
	for cur := n.parent; cur != nil && cur.parent != nil; cur = cur.parent {
		if cur.Style.Clips() {
			return true
		}
	}
	return false
}

// VisibleRect returns the part of r left visible by n's clipping ancestors.
func VisibleRect(n *Node, r Rect) Rect {
	out := r
	for cur := n.parent; cur != nil && cur.parent != nil; cur = cur.parent {
		if cur.Style.Clips() {
			out = out.Intersect(cur.Box)
		}
	}
	return out
}

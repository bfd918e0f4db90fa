package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree() (body, toolbar, side, item *Node) {
	body = NewNode("body", Style{})
	app := body.Append(NewNode("app", Style{}))
	toolbar = app.Append(NewNode("toolbar", Style{OverflowX: Hidden}))
	side = app.Append(NewNode("side", Style{}))
	item = side.Append(NewNode("item", Style{}))
	return
}

func TestHasClippingAncestor(t *testing.T) {
	body, toolbar, side, item := tree()
	inToolbar := toolbar.Append(NewNode("dd", Style{}))

	assert.True(t, HasClippingAncestor(inToolbar))
	assert.False(t, HasClippingAncestor(item))
	assert.False(t, HasClippingAncestor(body))

	side.Style.WillChange = "opacity, transform"
	assert.True(t, HasClippingAncestor(item))
	side.Style = Style{Transform: true}
	assert.True(t, HasClippingAncestor(item))
}

func TestRootLayerNeverClips(t *testing.T) {
	body := NewNode("body", Style{OverflowY: Hidden})
	child := body.Append(NewNode("child", Style{}))
	assert.False(t, HasClippingAncestor(child))
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	body, _, side, item := tree()
	after := side.Append(NewNode("after", Style{}))
	before := side.Children()

	parent, idx := item.Remove()
	require.Equal(t, side, parent)
	require.Equal(t, 0, idx)
	body.Append(item)
	assert.Equal(t, body, item.Parent())

	side.Insert(item, idx)
	assert.Equal(t, before, side.Children())
	assert.Equal(t, 1, after.Index())
}

func TestFindAndContains(t *testing.T) {
	body, toolbar, side, item := tree()
	assert.Equal(t, item, body.Find("item"))
	assert.Nil(t, body.Find("missing"))
	assert.True(t, side.Contains(item))
	assert.False(t, toolbar.Contains(item))
	assert.Equal(t, body, item.Root())
}

func TestRectOps(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 4, H: 3}
	assert.True(t, r.Contains(Point{X: 2, Y: 1}))
	assert.False(t, r.Contains(Point{X: 6, Y: 1}))
	assert.Equal(t, Rect{X: 4, Y: 2, W: 2, H: 2}, r.Intersect(Rect{X: 4, Y: 2, W: 10, H: 10}))
	assert.True(t, r.Intersect(Rect{X: 50, Y: 50, W: 1, H: 1}).Empty())
	assert.False(t, Rect{}.Contains(Point{}))
}

func TestVisibleRect(t *testing.T) {
	_, toolbar, _, _ := tree()
	toolbar.Box = Rect{X: 0, Y: 0, W: 20, H: 3}
	dd := toolbar.Append(NewNode("dd", Style{}))
	v := VisibleRect(dd, Rect{X: 1, Y: 2, W: 10, H: 5})
	assert.Equal(t, Rect{X: 1, Y: 2, W: 10, H: 1}, v)
}

func TestPlace(t *testing.T) {
	bg := "aaaaa\nbbbbb\nccccc"
	out := Place(bg, "XY", 1, 1)
	assert.Equal(t, "aaaaa\nbXYbb\nccccc", out)

	out = Place("ab", "Z\nZ", 4, 1)
	assert.Equal(t, "ab\n    Z\n    Z", out)
}

func TestClip(t *testing.T) {
	block := "12345\nabcde\nvwxyz"
	out, at := Clip(block, Rect{X: 0, Y: 0, W: 5, H: 3}, Rect{X: 1, Y: 1, W: 3, H: 5})
	assert.Equal(t, "bcd\nwxy", out)
	assert.Equal(t, Point{X: 1, Y: 1}, at)

	out, _ = Clip(block, Rect{X: 0, Y: 0, W: 5, H: 3}, Rect{X: 10, Y: 10, W: 1, H: 1})
	assert.Equal(t, "", out)
}

package dropdown

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippetkit/internal/tui/layout"
)

type fixture struct {
	coord   *Coordinator
	body    *layout.Node
	toolbar *layout.Node
	side    *layout.Node
	changes []Change
	events  []string
}

func newFixture() *fixture {
	f := &fixture{}
	f.body = layout.NewNode("body", layout.Style{})
	app := f.body.Append(layout.NewNode("app", layout.Style{}))
	f.toolbar = app.Append(layout.NewNode("toolbar", layout.Style{OverflowX: layout.Hidden}))
	f.toolbar.Box = layout.Rect{X: 0, Y: 0, W: 80, H: 3}
	f.side = app.Append(layout.NewNode("side", layout.Style{}))
	f.coord = NewCoordinator(layout.Size{W: 80, H: 24})
	return f
}

func abc() []Option {
	return []Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}, {Value: "c", Label: "C"}}
}

func (f *fixture) widget(name string, parent *layout.Node, opts []Option) *Dropdown {
	return New(f.coord, Config{
		Name:     name,
		Parent:   parent,
		Options:  opts,
		OnChange: func(c Change) { f.changes = append(f.changes, c) },
		OnToggle: func(n string, open bool) {
			state := "close"
			if open {
				state = "open"
			}
			f.events = append(f.events, fmt.Sprintf("%s %s", n, state))
		},
	})
}

func TestInitialSelectionIsAnnounced(t *testing.T) {
	f := newFixture()
	opts := abc()
	opts[1].Selected = true
	d := f.widget("fonts", f.side, opts)

	require.Len(t, f.changes, 1)
	assert.Equal(t, Change{Widget: "fonts", Value: "b", Label: "B"}, f.changes[0])
	assert.Equal(t, 1, d.Selected())
	assert.Equal(t, 1, d.Focused())
	label, _ := d.Display()
	assert.Equal(t, "B", label)
}

func TestOpeningOneClosesTheOther(t *testing.T) {
	f := newFixture()
	a := f.widget("a", f.side, abc())
	b := f.widget("b", f.side, abc())

	a.Open()
	require.True(t, a.IsOpen())
	b.Open()

	assert.False(t, a.IsOpen())
	assert.True(t, b.IsOpen())
	assert.Equal(t, b, f.coord.Current())
	assert.Equal(t, []string{"a open", "a close", "b open"}, f.events)
}

func TestKeyboardWrapAround(t *testing.T) {
	f := newFixture()
	d := f.widget("langs", f.side, abc())

	require.True(t, d.HandleKey("down"))
	require.True(t, d.IsOpen())
	assert.Equal(t, 0, d.Focused())

	d.HandleKey("up")
	assert.Equal(t, 2, d.Focused(), "up from first wraps to last")
	d.HandleKey("down")
	assert.Equal(t, 0, d.Focused(), "down from last wraps to first")

	d.HandleKey("end")
	assert.Equal(t, 2, d.Focused())
	d.HandleKey("home")
	assert.Equal(t, 0, d.Focused())
}

func TestTriggerUpOpensOnRememberedOption(t *testing.T) {
	f := newFixture()
	d := f.widget("langs", f.side, abc())
	d.HandleKey("down")
	d.HandleKey("down")
	d.HandleKey("esc")
	require.False(t, d.IsOpen())

	d.HandleKey("up")
	assert.True(t, d.IsOpen())
	assert.Equal(t, 1, d.Focused())
}

func TestEnterSelectsAndCloses(t *testing.T) {
	f := newFixture()
	d := f.widget("langs", f.side, abc())
	f.changes = nil

	d.HandleKey("down")
	d.HandleKey("down")
	d.HandleKey("enter")

	assert.False(t, d.IsOpen())
	require.Len(t, f.changes, 1)
	assert.Equal(t, "b", f.changes[0].Value)
	opts := d.Options()
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
	assert.False(t, opts[2].Selected)
}

func TestTriggerToggleKeys(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())

	d.HandleKey("enter")
	assert.True(t, d.IsOpen())
	d.HandleKey("esc")
	assert.False(t, d.IsOpen())
	d.HandleKey(" ")
	assert.True(t, d.IsOpen())
	assert.False(t, d.HandleKey("x"))
}

func TestDetachRestoreRoundTrip(t *testing.T) {
	f := newFixture()
	d := f.widget("themes", f.toolbar, abc())
	d.Root().Append(layout.NewNode("themes-extra", layout.Style{}))
	d.SetBounds(layout.Rect{X: 2, Y: 0, W: 20, H: 3})

	parentBefore := d.Panel().Parent()
	childrenBefore := d.Root().Children()
	idxBefore := d.Panel().Index()

	d.Open()
	require.Equal(t, Detached, d.Placement())
	assert.Equal(t, f.body, d.Panel().Parent())
	assert.NotContains(t, d.Root().Children(), d.Panel())

	d.Close()
	assert.Equal(t, Inline, d.Placement())
	assert.Same(t, parentBefore, d.Panel().Parent())
	assert.Equal(t, idxBefore, d.Panel().Index())
	assert.Equal(t, childrenBefore, d.Root().Children())
}

func TestInlineWithoutClippingAncestor(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())
	d.SetBounds(layout.Rect{X: 60, Y: 4, W: 18, H: 3})
	d.Open()
	assert.Equal(t, Inline, d.Placement())
	assert.Same(t, d.Root(), d.Panel().Parent())
}

func TestDirectionChoice(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())
	h := d.PanelHeight()
	require.Equal(t, 5, h)

	d.SetBounds(layout.Rect{X: 0, Y: 2, W: 20, H: 3})
	d.Open()
	assert.Equal(t, Down, d.Direction())
	assert.Equal(t, layout.Rect{X: 0, Y: 5, W: 20, H: h}, d.Panel().Box, "directly below the trigger")
	d.Close()

	d.SetBounds(layout.Rect{X: 0, Y: 20, W: 20, H: 3})
	d.Open()
	assert.Equal(t, Up, d.Direction())
	assert.Equal(t, layout.Rect{X: 0, Y: 15, W: 20, H: h}, d.Panel().Box, "ends on the row above the trigger")
}

func TestPrefersDownWhenNeitherSideFits(t *testing.T) {
	f := newFixture()
	f.coord.Resize(layout.Size{W: 40, H: 6})
	d := f.widget("fonts", f.side, abc())
	d.SetBounds(layout.Rect{X: 0, Y: 2, W: 20, H: 3})
	d.Open()
	assert.Equal(t, Down, d.Direction())
}

func TestRepositionOnResize(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())
	d.SetBounds(layout.Rect{X: 0, Y: 20, W: 20, H: 3})
	d.Open()
	require.Equal(t, Up, d.Direction())

	f.coord.Resize(layout.Size{W: 80, H: 60})
	assert.Equal(t, Down, d.Direction())
	assert.Equal(t, 23, d.Panel().Box.Y)
}

func TestRepositionOnAncestorScroll(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())
	d.SetBounds(layout.Rect{X: 0, Y: 2, W: 20, H: 3})
	d.Open()
	require.Equal(t, Down, d.Direction())
	require.Equal(t, 5, d.Panel().Box.Y)

	d.Shift(0, 16)
	assert.Equal(t, 5, d.Panel().Box.Y, "panel waits for the scroll notification")
	f.coord.Scrolled()
	assert.Equal(t, Up, d.Direction())
	assert.Equal(t, layout.Rect{X: 0, Y: 13, W: 20, H: 5}, d.Panel().Box)

	d.Shift(0, -16)
	f.coord.Scrolled()
	assert.Equal(t, Down, d.Direction())
	assert.Equal(t, layout.Rect{X: 0, Y: 5, W: 20, H: 5}, d.Panel().Box)
}

func TestScrolledWithNothingOpen(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())
	d.SetBounds(layout.Rect{X: 0, Y: 2, W: 20, H: 3})
	f.coord.Scrolled()
	assert.False(t, d.IsOpen())
	assert.True(t, d.Panel().Box.Empty())
}

func TestOutsideClickCloses(t *testing.T) {
	f := newFixture()
	d := f.widget("themes", f.toolbar, abc())
	d.SetBounds(layout.Rect{X: 2, Y: 0, W: 20, H: 3})
	d.Open()

	assert.False(t, f.coord.Click(layout.Point{X: 3, Y: 1}), "click on trigger is not outside")
	assert.False(t, f.coord.Click(layout.Point{X: 3, Y: 4}), "click on detached panel is not outside")
	assert.True(t, d.IsOpen())

	assert.True(t, f.coord.Click(layout.Point{X: 70, Y: 20}))
	assert.False(t, d.IsOpen())
	assert.Nil(t, f.coord.Current())
}

func TestClickOnOptionSelects(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())
	d.SetBounds(layout.Rect{X: 0, Y: 2, W: 20, H: 3})
	f.changes = nil

	require.True(t, d.HandleClick(layout.Point{X: 1, Y: 3}))
	require.True(t, d.IsOpen())
	// panel starts at row 5; row 5 is the border, 7 is the second option
	require.True(t, d.HandleClick(layout.Point{X: 1, Y: 7}))

	assert.False(t, d.IsOpen())
	require.Len(t, f.changes, 1)
	assert.Equal(t, "b", f.changes[0].Value)
}

func TestUnmeasuredTriggerDegradesToInline(t *testing.T) {
	f := newFixture()
	d := f.widget("themes", f.toolbar, abc())
	d.Open()
	assert.True(t, d.IsOpen())
	assert.Equal(t, Inline, d.Placement())
	assert.Same(t, d.Root(), d.Panel().Parent())
}

func TestEmptyWidgetIsNoop(t *testing.T) {
	f := newFixture()
	d := f.widget("empty", f.side, nil)
	d.Open()
	assert.False(t, d.IsOpen())
	assert.False(t, d.HandleKey("down"))
	assert.Empty(t, f.changes)
	_, ok := d.SelectedOption()
	assert.False(t, ok)
}

func TestThemeValuePassesThroughVerbatim(t *testing.T) {
	f := newFixture()
	grad := "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"
	d := f.widget("themes", f.toolbar, []Option{
		{Value: "#000000", Label: "Black"},
		{Value: grad, Label: "Purple", Icon: "◆"},
	})
	f.changes = nil
	d.Select(1)

	require.Len(t, f.changes, 1)
	assert.Equal(t, Change{Widget: "themes", Value: grad, Label: "Purple"}, f.changes[0])
	label, icon := d.Display()
	assert.Equal(t, "Purple", label)
	assert.Equal(t, "◆", icon)
}

func TestViewsRender(t *testing.T) {
	f := newFixture()
	d := f.widget("fonts", f.side, abc())
	d.SetBounds(layout.Rect{X: 0, Y: 2, W: 20, H: 3})
	assert.Contains(t, d.TriggerView(false), "A")
	assert.Empty(t, d.PanelView())
	d.Open()
	out := d.PanelView()
	assert.Contains(t, out, "B")
	assert.Contains(t, out, "✓")
}

func TestScrollKeepsFocusVisible(t *testing.T) {
	f := newFixture()
	opts := make([]Option, 12)
	for i := range opts {
		opts[i] = Option{Value: fmt.Sprint(i), Label: fmt.Sprint(i)}
	}
	d := New(f.coord, Config{Name: "long", Parent: f.side, Options: opts, MaxRows: 4})
	d.HandleKey("down")
	d.HandleKey("end")
	assert.Equal(t, 11, d.Focused())
	assert.Equal(t, 8, d.Offset())
	d.HandleKey("down")
	assert.Equal(t, 0, d.Offset())
}

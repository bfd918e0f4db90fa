package state

// EditorMode represents the editor's current input mode.
type EditorMode int

const (
	CMD EditorMode = iota
	INSERT
)

// DiffMode controls how the changes overlay is rendered.
type DiffMode int

const (
	Unified DiffMode = iota
	SideBySide
)

// UIState holds the panel settings and the cross-widget UI state read by the
// preview, status bar, changes overlay and exporters.
type UIState struct {
	// Mode & View
	Mode EditorMode
	View DiffMode

	// Panel
	Theme          string // CSS background, verbatim from the theme option
	ThemeLabel     string
	Font           string
	Language       string // explicit tag; empty means detect
	Detected       string // last detection result
	FontSize       int
	Padding        int
	Radius         int
	Dark           bool
	Background     bool
	WindowControls bool
	Title          string

	// Layout
	Width  int
	Height int
	MinCol int

	// Notices and ephemeral messages
	Notice string
}

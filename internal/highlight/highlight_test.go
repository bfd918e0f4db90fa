package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joined(l Line) string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestHighlightKeepsText(t *testing.T) {
	code := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"
	res, err := New("", "").Highlight(code, "go", true)
	require.NoError(t, err)

	assert.Equal(t, "Go", res.Lexer)
	assert.Equal(t, DefaultDark, res.Style)
	require.Len(t, res.Lines, 5)
	assert.Equal(t, "package main", joined(res.Lines[0]))
	assert.Empty(t, res.Lines[1])
	assert.Equal(t, "    println(\"hi\")", joined(res.Lines[3]))
	assert.NotEmpty(t, res.Background)
}

func TestKeywordsAreColoured(t *testing.T) {
	res, err := New("", "").Highlight("func f() {}", "go", false)
	require.NoError(t, err)
	require.NotEmpty(t, res.Lines)
	first := res.Lines[0][0]
	assert.Equal(t, "func", first.Text)
	assert.NotEmpty(t, first.Color)
	assert.True(t, strings.HasPrefix(first.Color, "#"))
}

func TestUnknownTagFallsBackToPlaintext(t *testing.T) {
	res, err := New("", "").Highlight("hello\nworld", "no-such-language", true)
	require.NoError(t, err)
	assert.Equal(t, "plaintext", res.Lexer)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "world", joined(res.Lines[1]))
}

func TestStyleByMode(t *testing.T) {
	h := New("monokai", "friendly")
	assert.Equal(t, "monokai", h.StyleName(true))
	assert.Equal(t, "friendly", h.StyleName(false))
	assert.Equal(t, "friendly", h.Style(false).Name)
}

func TestExpandTabs(t *testing.T) {
	s, col := expandTabs("a\tb", 0)
	assert.Equal(t, "a   b", s)
	assert.Equal(t, 5, col)

	s, col = expandTabs("\t", 2)
	assert.Equal(t, "  ", s)
	assert.Equal(t, 4, col)

	assert.Equal(t, []string{"x", "    y"}, PlainLines("x\r\n\ty"))
}

func TestColumns(t *testing.T) {
	r := Result{Lines: []Line{{{Text: "ab"}}, {{Text: "abc"}, {Text: "d"}}}}
	assert.Equal(t, 4, r.Columns())
}

package fonts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

func TestBuiltin(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)
	assert.True(t, s.Builtin)
	face := s.Face(14, true, false)
	require.NotNil(t, face)
	assert.Greater(t, face.Advance("abc"), 0.0)
	assert.Greater(t, face.Metrics().LineHeight(), 0.0)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "firacode", Slug("Fira Code"))
	assert.Equal(t, "jetbrainsmono", Slug("JetBrains_Mono"))
	assert.Equal(t, "", Slug(""))
}

func TestLoaderFindsFamilyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "FiraCode-Regular.ttf"), gomono.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "FiraCode-Bold.ttf"), gomonobold.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "FiraCodeNerd-Regular.ttf"), gomono.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	l := NewLoader(dir)
	files, err := l.Files("Fira Code")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	s, err := l.Load("Fira Code")
	require.NoError(t, err)
	assert.False(t, s.Builtin)
	assert.NotNil(t, s.Regular)
	assert.NotNil(t, s.Bold)
	assert.Nil(t, s.Italic)

	again, err := l.Load("fira code")
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestLoaderIgnoresLongerFamilies(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Fira-Regular.ttf", "Fira-BoldItalic.ttf", "FiraCode-BoldItalic.ttf", "FiraCode-Italic.ttf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), gomono.TTF, 0o644))
	}
	files, err := NewLoader(dir).Files("Fira")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "Fira-Regular.ttf"),
		filepath.Join(dir, "Fira-BoldItalic.ttf"),
	}, files)

	assert.Equal(t, "bolditalic", variantOf("italicbold"))
	assert.Empty(t, variantOf("codebolditalic"))
}

func TestLoaderFallsBackToBuiltin(t *testing.T) {
	l := NewLoader(t.TempDir())
	s, err := l.Load("Nonexistent Mono")
	require.NoError(t, err)
	assert.True(t, s.Builtin)

	s, err = NewLoader("").Load("")
	require.NoError(t, err)
	assert.Equal(t, BuiltinName, s.Name)
}

func TestGoogleCSSURL(t *testing.T) {
	assert.Equal(t,
		"https://fonts.googleapis.com/css2?family=Fira+Code:wght@400;700&display=swap",
		GoogleCSSURL("Fira Code"))
}

const sampleCSS = `/* latin */
@font-face {
  font-family: 'Fira Code';
  font-style: normal;
  font-weight: 400;
  src: url(%[1]s/regular.ttf) format('truetype');
}
@font-face {
  font-family: 'Fira Code';
  font-style: normal;
  font-weight: 700;
  src: url(%[1]s/bold.ttf) format('truetype');
}
`

func TestParseCSS(t *testing.T) {
	files := ParseCSS(fmt.Sprintf(sampleCSS, "https://x"))
	assert.Equal(t, []FontFile{
		{Weight: "400", URL: "https://x/regular.ttf"},
		{Weight: "700", URL: "https://x/bold.ttf"},
	}, files)
	assert.Empty(t, ParseCSS("body { color: red }"))
}

func TestFetch(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/css2":
			assert.Contains(t, r.URL.RawQuery, "family=Fira+Code:wght@400;700")
			fmt.Fprintf(w, sampleCSS, srv.URL)
		case "/regular.ttf":
			_, _ = w.Write(gomono.TTF)
		case "/bold.ttf":
			_, _ = w.Write(gomonobold.TTF)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	old := GoogleCSSBase
	GoogleCSSBase = srv.URL + "/css2"
	defer func() { GoogleCSSBase = old }()

	dir := t.TempDir()
	paths, err := Fetch(context.Background(), "Fira Code", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "FiraCode-Regular.ttf"),
		filepath.Join(dir, "FiraCode-Bold.ttf"),
	}, paths)

	s, err := NewLoader(dir).Load("Fira Code")
	require.NoError(t, err)
	assert.NotNil(t, s.Bold)
}

func TestFetchEmptyFamily(t *testing.T) {
	_, err := Fetch(context.Background(), "  ", t.TempDir())
	require.Error(t, err)
}

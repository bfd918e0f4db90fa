// Copyright
// SPDX-License-Identifier: MIT
// snippetkit: styled code screenshots from the terminal (TUI + one-shot export commands)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gogpu/gg"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"snippetkit/internal/catalog"
	"snippetkit/internal/clipboard"
	"snippetkit/internal/config"
	"snippetkit/internal/export"
	"snippetkit/internal/fonts"
	"snippetkit/internal/highlight"
	"snippetkit/internal/lang"
	"snippetkit/internal/render"
	"snippetkit/internal/tui"
	"snippetkit/internal/tui/state"
)

const Version = "0.3.0"

var commands = map[string]func(args []string) error{
	"tui":     cmdTUI,
	"render":  cmdRender,
	"detect":  cmdDetect,
	"list":    cmdList,
	"copy":    cmdCopy,
	"fonts":   cmdFonts,
	"init":    cmdInit,
	"version": func([]string) error { fmt.Println("snippetkit", Version); return nil },
}

/* ---------- CLI ---------- */

func main() {
	args := os.Args[1:]
	name := "tui"
	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help":
			if len(args) > 1 {
				helpTopic(args[1])
			} else {
				usage()
			}
			return
		case "--version":
			args[0] = "version"
		}
		if _, ok := commands[args[0]]; ok {
			name, args = args[0], args[1:]
		}
	}
	if err := commands[name](args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "snippetkit:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`snippetkit ` + Version + `
Turn a code snippet into a styled image: edit it in a TUI, or export it in one shot.
USAGE
  snippetkit [tui] [FILE] [options]
  snippetkit <command> [options]
COMMANDS
  tui          Interactive editor and preview (default). Reads FILE, piped stdin, or a sample snippet
  render       Render FILE (or stdin) to PNG or SVG
  copy         Copy FILE (or stdin) to the clipboard as image, PNG data URL, or text
  detect       Print the language detected for FILE (or stdin)
  list         List themes, languages, fonts or syntax styles
  fonts fetch  Download a Google Fonts family into the font directory
  init         Write the default settings file
  help         Show help (try: snippetkit help render)
  version      Print version
NOTES
  • Settings live in ` + configPathHint() + ` (JSONC); flags override them.
  • Default output is minimal; use -v or -vv for logs. Use --log-file to append logs to a file.
    The TUI only ever logs to --log-file.`)
}

func helpTopic(name string) {
	switch name {
	case "render", "copy":
		fmt.Println(`USAGE
  snippetkit render [FILE] [-o PATH] [--format png|svg] [scene options]
  snippetkit copy   [FILE] [--as image|link|text] [scene options]
SCENE OPTIONS
  --theme NAME|CSS       Theme label from the catalog, or a CSS background
                         (#hex, rgb(), rgba(), a colour name, linear-gradient(...))
  --font NAME            Font family (bundled Go Mono or a file in the font directory)
  --lang NAME            Language (tag, label or alias); detected when omitted
  --title TEXT           Window title, also the saved file name
  --padding N            16..128
  --radius N             0..40
  --font-size N          10..32
  --light                Light mode
  --no-background        Transparent background
  --no-controls          Hide the window buttons
  --scale F              Pixel scale for PNG (default from settings)
  --no-cache             Skip the render cache
OUTPUT
  -o PATH                Write to PATH ("-" for stdout). Without -o the file is named after
                         the title (panel.png / panel.svg) and saved in the output directory.`)
	case "fonts":
		fmt.Println(`USAGE
  snippetkit fonts fetch FAMILY... [--dir DIR]
DESCRIPTION
  Downloads the regular and bold TTF files of each family from Google Fonts into DIR
  (default: the font directory from settings, else the user cache directory).`)
	case "list":
		fmt.Println(`USAGE
  snippetkit list [themes|languages|fonts|styles]`)
	default:
		usage()
	}
}

func configPathHint() string {
	p, err := config.DefaultPath()
	if err != nil {
		return "config.jsonc"
	}
	return p
}

/* ---------- shared flags ---------- */

type common struct {
	configPath string
	verbosity  int
	logFile    string
}

func addCommon(fs *flag.FlagSet) *common {
	c := &common{}
	fs.StringVar(&c.configPath, "config", "", "Settings file (default: "+configPathHint()+")")
	fs.CountVarP(&c.verbosity, "verbose", "v", "Verbose logs (-v info, -vv debug)")
	fs.StringVar(&c.logFile, "log-file", "", "Append logs to file (created if missing)")
	return c
}

// setupLogging installs the default slog logger. quiet sends nothing to
// stderr, for the TUI which owns the terminal.
func (c *common) setupLogging(quiet bool) (func(), error) {
	level := slog.LevelWarn
	switch {
	case c.verbosity >= 2:
		level = slog.LevelDebug
	case c.verbosity == 1:
		level = slog.LevelInfo
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = func() { _ = f.Close() }
		if quiet {
			w = f
		} else {
			w = io.MultiWriter(os.Stderr, f)
		}
	} else if quiet {
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return closeFn, nil
}

func (c *common) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			slog.Warn("no user config dir; using defaults", "err", err)
			return config.Default(), nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("settings loaded", "path", path)
	return cfg, nil
}

type sceneFlags struct {
	theme, font, language, title string
	padding, radius, fontSize    int
	light, noBackground          bool
	noControls, noCache          bool
	scale                        float64
}

func addScene(fs *flag.FlagSet) *sceneFlags {
	s := &sceneFlags{}
	fs.StringVar(&s.theme, "theme", "", "Theme label or CSS background")
	fs.StringVar(&s.font, "font", "", "Font family")
	fs.StringVar(&s.language, "lang", "", "Language (detected when omitted)")
	fs.StringVar(&s.title, "title", "", "Window title")
	fs.IntVar(&s.padding, "padding", 0, "Padding around the window (16..128)")
	fs.IntVar(&s.radius, "radius", 0, "Window corner radius (0..40)")
	fs.IntVar(&s.fontSize, "font-size", 0, "Font size (10..32)")
	fs.BoolVar(&s.light, "light", false, "Light mode")
	fs.BoolVar(&s.noBackground, "no-background", false, "Transparent background")
	fs.BoolVar(&s.noControls, "no-controls", false, "Hide the window buttons")
	fs.BoolVar(&s.noCache, "no-cache", false, "Skip the render cache")
	fs.Float64Var(&s.scale, "scale", 0, "PNG pixel scale")
	return s
}

// apply overrides cfg with every flag the user set explicitly.
func (s *sceneFlags) apply(fs *flag.FlagSet, cfg *config.Config) error {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("theme", func() { cfg.Theme = s.theme })
	set("font", func() { cfg.Font = s.font })
	set("lang", func() { cfg.Language = s.language })
	set("padding", func() { cfg.Padding = s.padding })
	set("radius", func() { cfg.Radius = s.radius })
	set("font-size", func() { cfg.FontSize = s.fontSize })
	set("light", func() {
		cfg.Mode = "dark"
		if s.light {
			cfg.Mode = "light"
		}
	})
	set("no-background", func() { cfg.Background = !s.noBackground })
	set("no-controls", func() { cfg.WindowControls = !s.noControls })
	set("scale", func() { cfg.Scale = s.scale })
	if cfg.Language != "" && lang.Resolve(cfg.Language) == "" {
		slog.Warn("unknown language; highlighting as plain text", "lang", cfg.Language)
	}
	return cfg.Validate()
}

// env is everything a command needs after flags and settings are resolved.
type env struct {
	cfg      *config.Config
	cat      *catalog.Catalog
	hl       *highlight.Highlighter
	renderer *render.Renderer
	exporter *export.Exporter
}

func newEnv(cfg *config.Config) (*env, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	hl := highlight.New(cfg.DarkStyle, cfg.LightStyle)
	r := render.New(hl, fonts.NewLoader(fontDir(cfg)))
	return &env{
		cfg:      cfg,
		cat:      cat,
		hl:       hl,
		renderer: r,
		exporter: &export.Exporter{
			Renderer:  r,
			Clipboard: clipboard.New(),
			Dir:       cfg.OutputDir,
			Options:   render.Options{Scale: cfg.Scale},
		},
	}, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogDir == "" {
		return catalog.Builtin()
	}
	return catalog.Load(cfg.CatalogDir)
}

func fontDir(cfg *config.Config) string {
	if cfg.FontDir != "" {
		return cfg.FontDir
	}
	return filepath.Join(config.DataDir(), "fonts")
}

// scene builds a render scene the same way the TUI does.
func (e *env) scene(code, title string) render.Scene {
	st := state.FromConfig(e.cfg, e.cat)
	st = state.SetTitle(st, title)
	st = state.Detect(st, code)
	return state.Scene(st, code)
}

// readInput returns the named file, or stdin when it is not a terminal.
// ok is false when neither is available.
func readInput(args []string) (text string, ok bool, err error) {
	if len(args) > 0 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}
		return string(b), true, nil
	}
	fd := os.Stdin.Fd()
	if len(args) == 0 && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return "", false, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", false, fmt.Errorf("read stdin: %w", err)
	}
	return string(b), true, nil
}

func mustInput(args []string) (string, error) {
	text, ok, err := readInput(args)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("no input: pass a FILE or pipe code on stdin")
	}
	return text, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func parse(fs *flag.FlagSet, args []string) error {
	fs.SortFlags = false
	return fs.Parse(args)
}

/* ---------- commands ---------- */

func cmdTUI(args []string) error {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.Usage = usage
	c := addCommon(fs)
	sf := addScene(fs)
	noColor := fs.Bool("no-color", false, "Disable colours in the chrome")
	if err := parse(fs, args); err != nil {
		return err
	}
	closeLog, err := c.setupLogging(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := sf.apply(fs, cfg); err != nil {
		return err
	}
	e, err := newEnv(cfg)
	if err != nil {
		return err
	}
	text, ok, err := readInput(fs.Args())
	if err != nil {
		return err
	}
	if !ok {
		text = tui.Snippet()
	}
	slog.Info("starting tui", "bytes", len(text), "theme", cfg.Theme, "font", cfg.Font)
	err = tui.Run(tui.Options{
		Config:      cfg,
		Catalog:     e.cat,
		Highlighter: e.hl,
		Exporter:    e.exporter,
		Text:        text,
		Title:       sf.title,
		NoColor:     *noColor,
	})
	if errors.Is(err, tui.ErrNoPanel) {
		return fmt.Errorf("%w: the terminal is too small", err)
	}
	return err
}

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.Usage = func() { helpTopic("render") }
	c := addCommon(fs)
	sf := addScene(fs)
	out := fs.StringP("output", "o", "", "Output path (\"-\" for stdout)")
	format := fs.String("format", "", "png or svg (default: from -o extension, else png)")
	if err := parse(fs, args); err != nil {
		return err
	}
	closeLog, err := c.setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := sf.apply(fs, cfg); err != nil {
		return err
	}
	code, err := mustInput(fs.Args())
	if err != nil {
		return err
	}
	e, err := newEnv(cfg)
	if err != nil {
		return err
	}
	kind := strings.ToLower(*format)
	if kind == "" {
		kind = "png"
		if strings.EqualFold(filepath.Ext(*out), ".svg") {
			kind = "svg"
		}
	}
	if kind != "png" && kind != "svg" {
		return fmt.Errorf("unknown format %q (want png or svg)", *format)
	}
	ctx, cancel := signalContext()
	defer cancel()
	sc := e.scene(code, sf.title)
	slog.Info("rendering", "format", kind, "language", sc.Language, "lines", strings.Count(code, "\n")+1)

	if *out == "" {
		var path string
		e.exporter.Options.NoCache = sf.noCache
		if kind == "svg" {
			path, err = e.exporter.SaveSVG(ctx, sc)
		} else {
			path, err = e.exporter.SavePNG(ctx, sc)
		}
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	opts := render.Options{Scale: cfg.Scale, NoCache: sf.noCache}
	var data []byte
	if kind == "svg" {
		data, err = e.renderer.SVG(ctx, sc, opts)
	} else {
		data, err = e.renderer.PNG(ctx, sc, opts)
	}
	if err != nil {
		return err
	}
	if *out == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Println(*out)
	return nil
}

func cmdCopy(args []string) error {
	fs := flag.NewFlagSet("copy", flag.ContinueOnError)
	fs.Usage = func() { helpTopic("copy") }
	c := addCommon(fs)
	sf := addScene(fs)
	as := fs.String("as", "image", "image | link | text")
	if err := parse(fs, args); err != nil {
		return err
	}
	closeLog, err := c.setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	action, ok := export.ParseAction("copy-" + *as)
	if !ok {
		return fmt.Errorf("unknown --as %q (want image, link or text)", *as)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := sf.apply(fs, cfg); err != nil {
		return err
	}
	code, err := mustInput(fs.Args())
	if err != nil {
		return err
	}
	e, err := newEnv(cfg)
	if err != nil {
		return err
	}
	e.exporter.Options.NoCache = sf.noCache
	ctx, cancel := signalContext()
	defer cancel()
	res := e.exporter.Run(ctx, action, e.scene(code, sf.title))
	if res.Err != nil {
		return errors.New(res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

func cmdDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	c := addCommon(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	closeLog, err := c.setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()
	code, err := mustInput(fs.Args())
	if err != nil {
		return err
	}
	tag := lang.Detect(code)
	if tag == "" {
		fmt.Println("plain")
		return nil
	}
	fmt.Println(tag)
	return nil
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.Usage = func() { helpTopic("list") }
	c := addCommon(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	closeLog, err := c.setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	what := "themes"
	if fs.NArg() > 0 {
		what = fs.Arg(0)
	}
	if what == "styles" {
		names := styles.Names()
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	entries := cat.Collection(what)
	if entries == nil {
		return fmt.Errorf("unknown collection %q (want themes, languages, fonts or styles)", what)
	}
	for _, e := range entries {
		if e.Value == "" || e.Value == e.Label {
			fmt.Println(e.Label)
			continue
		}
		fmt.Printf("%-20s %s\n", e.Label, e.Value)
	}
	return nil
}

func cmdFonts(args []string) error {
	if len(args) == 0 || args[0] != "fetch" {
		helpTopic("fonts")
		return nil
	}
	fs := flag.NewFlagSet("fonts fetch", flag.ContinueOnError)
	fs.Usage = func() { helpTopic("fonts") }
	c := addCommon(fs)
	dir := fs.String("dir", "", "Destination directory")
	if err := parse(fs, args[1:]); err != nil {
		return err
	}
	closeLog, err := c.setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()
	if fs.NArg() == 0 {
		return errors.New("fonts fetch: name at least one family")
	}
	if *dir == "" {
		cfg, err := c.loadConfig()
		if err != nil {
			return err
		}
		*dir = fontDir(cfg)
	}
	ctx, cancel := signalContext()
	defer cancel()
	var errs []error
	for _, family := range fs.Args() {
		paths, err := fonts.Fetch(ctx, family, *dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, p := range paths {
			fmt.Println("  ✓", p)
		}
	}
	return errors.Join(errs...)
}

func cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	c := addCommon(fs)
	force := fs.Bool("force", false, "Overwrite an existing settings file")
	if err := parse(fs, args); err != nil {
		return err
	}
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Println(path, "already exists; not overwriting (use --force)")
		return nil
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Println("Wrote", path)
	return nil
}

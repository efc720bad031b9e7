//go:build gui

package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/dstanton/lectern/internal/config"
	"github.com/dstanton/lectern/internal/page"
	"github.com/dstanton/lectern/internal/source"
	"github.com/dstanton/lectern/internal/speech"
	"github.com/dstanton/lectern/internal/state"
	"github.com/dstanton/lectern/internal/toc"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	lightBG = color.RGBA{R: 0xFA, G: 0xFA, B: 0xF5, A: 0xFF}
	darkBG  = color.RGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xFF}
)

type gmodel struct {
	doc     *page.Document
	outline toc.Outline
	blocks  []*page.Block // currently visible blocks
	current int           // index into blocks
	ctrl    *speech.Controller
	prefs   *state.Prefs
	dark    bool
}

func (g *gmodel) rebuildVisible() {
	g.blocks = g.blocks[:0]
	for _, b := range g.doc.Blocks {
		if g.doc.Visible(b) {
			g.blocks = append(g.blocks, b)
		}
	}
	if g.current >= len(g.blocks) {
		g.current = len(g.blocks) - 1
	}
	if g.current < 0 {
		g.current = 0
	}
}

// activeHeading returns the id of the nearest heading at or before the
// current block, which keeps the TOC selection tracking the reading spot.
func (g *gmodel) activeHeading() string {
	for i := g.current; i >= 0; i-- {
		if i < len(g.blocks) && g.blocks[i].HeadingLike() {
			return g.blocks[i].ID
		}
	}
	return ""
}

func (g *gmodel) blockIndex(id string) int {
	for i, b := range g.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "config file path")
	showVersion := flag.Bool("v", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Lectern - GUI Page Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  lectern [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("lectern %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: No input provided. Provide a file to read.")
		os.Exit(1)
	}
	doc, err := source.LoadDocument(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(doc.Blocks) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Nothing to read.")
		os.Exit(1)
	}

	prefs := state.NewPrefs()
	g := &gmodel{
		doc:     doc,
		outline: toc.Build(doc, cfg.MaxHeadings),
		prefs:   prefs,
		dark:    prefs.DarkMode(),
	}
	g.rebuildVisible()

	a := app.New()
	w := a.NewWindow("lectern")

	bg := canvas.NewRectangle(lightBG)
	if g.dark {
		bg.FillColor = darkBG
	}

	blockLabel := widget.NewLabel("")
	blockLabel.Wrapping = fyne.TextWrapWord

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter

	controlsLabel := widget.NewLabel("SPACE: play/stop  ←/→: block  T: contents  D: dark  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	var tocList *widget.List
	var split *container.Split

	updateDisplay := func() {
		if len(g.blocks) == 0 {
			blockLabel.SetText("")
			return
		}
		b := g.blocks[g.current]
		blockLabel.TextStyle.Bold = b.HeadingLike()
		blockLabel.SetText(b.Text)

		st := ""
		if g.ctrl != nil {
			switch g.ctrl.State() {
			case speech.Speaking:
				st = " | speaking"
			case speech.PausedBetween:
				st = " | next shortly"
			}
		}
		statusLabel.SetText(fmt.Sprintf("Block %d/%d%s", g.current+1, len(g.blocks), st))

		if tocList != nil {
			if active := g.activeHeading(); active != "" {
				if i := g.outline.Find(active); i >= 0 {
					tocList.Select(i)
					tocList.ScrollTo(i)
				}
			}
		}
	}

	// Speech over the paragraph blocks only.
	paragraphs := doc.Paragraphs()
	if len(paragraphs) > 0 {
		texts := make([]string, len(paragraphs))
		for i, p := range paragraphs {
			texts[i] = p.Text
		}
		engine, warn := buildEngine(cfg)
		if engine != nil {
			g.ctrl = speech.NewController(engine, texts, func(ev speech.Event) {
				fyne.Do(func() {
					switch ev.Kind {
					case speech.EventStarted:
						if i := g.blockIndex(paragraphs[ev.Index].ID); i >= 0 {
							g.current = i
						}
					}
					updateDisplay()
				})
			})
			g.ctrl.SetOptions(speech.Options{
				Language: cfg.Language,
				Voice:    cfg.Voice,
				Rate:     cfg.Rate,
				Pitch:    cfg.Pitch,
			})
			g.ctrl.SetContinuous(cfg.Continuous)
			g.ctrl.SetRandom(cfg.Random)
			g.ctrl.SetDelay(time.Duration(cfg.DelaySeconds) * time.Second)
		} else if warn != "" {
			fmt.Fprintln(os.Stderr, warn)
		}
	}

	if len(g.outline.Entries) > 0 {
		tocList = widget.NewList(
			func() int { return len(g.outline.Entries) },
			func() fyne.CanvasObject { return widget.NewLabel("Title") },
			func(id widget.ListItemID, obj fyne.CanvasObject) {
				e := g.outline.Entries[id]
				label := obj.(*widget.Label)
				label.SetText(strings.Repeat(" ", e.Indent/4) + e.Text)
			},
		)
		tocList.OnSelected = func(id widget.ListItemID) {
			if id >= len(g.outline.Entries) {
				return
			}
			e := g.outline.Entries[id]
			g.doc.OpenAncestors(e.ID)
			g.rebuildVisible()
			if i := g.blockIndex(e.ID); i >= 0 {
				g.current = i
			}
			updateDisplay()
		}
	}

	reading := container.NewBorder(statusLabel, controlsLabel, nil, nil,
		container.NewStack(bg, container.NewVScroll(blockLabel)))

	var content fyne.CanvasObject = reading
	if tocList != nil {
		tocPane := container.NewBorder(widget.NewLabel("Contents"), nil, nil, nil, tocList)
		split = container.NewHSplit(tocPane, reading)
		split.Offset = 0.3
		content = split
	}

	toggleDark := func() {
		g.dark = !g.dark
		g.prefs.SetDarkMode(g.dark)
		if g.dark {
			bg.FillColor = darkBG
		} else {
			bg.FillColor = lightBG
		}
		bg.Refresh()
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeySpace:
			if g.ctrl == nil {
				return
			}
			if g.ctrl.State() == speech.Idle {
				g.ctrl.Play()
			} else {
				g.ctrl.Stop()
			}
			updateDisplay()

		case fyne.KeyLeft:
			if g.current > 0 {
				g.current--
				updateDisplay()
			}

		case fyne.KeyRight:
			if g.current < len(g.blocks)-1 {
				g.current++
				updateDisplay()
			}

		case fyne.KeyQ:
			if g.ctrl != nil {
				g.ctrl.Stop()
			}
			a.Quit()
		}
	})

	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 't', 'T':
			if split != nil {
				if split.Leading.Visible() {
					split.Leading.Hide()
				} else {
					split.Leading.Show()
				}
				split.Refresh()
			}
		case 'd', 'D':
			toggleDark()
		}
	})

	w.Resize(fyne.NewSize(900, 640))
	w.SetContent(content)
	updateDisplay()
	w.ShowAndRun()
}

// buildEngine picks the speech engine per config. A missing local
// synthesizer is not fatal: speech becomes a no-op with a warning.
func buildEngine(cfg *config.Config) (speech.Engine, string) {
	switch cfg.Engine {
	case "remote":
		return speech.NewRemoteEngine(cfg.RemoteURL), ""
	case "off":
		return nil, "Speech is disabled"
	default:
		engine, err := speech.NewExecEngine()
		if err != nil {
			return nil, fmt.Sprintf("Speech unavailable: %v", err)
		}
		return engine, ""
	}
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir + "/lectern/config.yml"
	}
	home, _ := os.UserHomeDir()
	return home + "/.config/lectern/config.yml"
}

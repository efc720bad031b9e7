//go:build !gui

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dstanton/lectern/internal/config"
	"github.com/dstanton/lectern/internal/observe"
	"github.com/dstanton/lectern/internal/page"
	"github.com/dstanton/lectern/internal/source"
	"github.com/dstanton/lectern/internal/speech"
	"github.com/dstanton/lectern/internal/state"
	"github.com/dstanton/lectern/internal/theme"
	"github.com/dstanton/lectern/internal/toc"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	flashDuration = 1200 * time.Millisecond
	toastDuration = 2 * time.Second
)

type model struct {
	doc        *page.Document
	panel      *toc.Panel
	tracker    *toc.Tracker
	obs        *observe.Viewport
	ctrl       *speech.Controller
	speechOK   bool
	speechWarn string
	th         *theme.Theme
	overrides  *theme.Overrides
	prefs      *state.Prefs
	cfg        *config.Config

	vp         viewport.Model
	paragraphs []*page.Block

	events chan speech.Event

	speakingID string
	toast      string
	toastSeq   int
	flashSeq   int
	focusTOC   bool
	width      int
	height     int
	ready      bool
	quitting   bool
}

type speechMsg speech.Event

type toastExpireMsg struct{ seq int }

type flashClearMsg struct{ seq int }

func newModel(doc *page.Document, cfg *config.Config, prefs *state.Prefs, engine speech.Engine, warn string) *model {
	m := &model{
		doc:        doc,
		cfg:        cfg,
		prefs:      prefs,
		th:         theme.New(prefs.DarkMode()),
		overrides:  theme.NewOverrides(),
		obs:        observe.NewViewport(),
		paragraphs: doc.Paragraphs(),
		events:     make(chan speech.Event, 64),
		speechWarn: warn,
	}

	outline := toc.Build(doc, cfg.MaxHeadings)
	if len(outline.Entries) > 0 {
		m.panel = toc.NewPanel(outline)
		m.tracker = toc.NewTracker(m.panel, m.obs, nil)
	}

	if engine != nil && len(m.paragraphs) > 0 {
		texts := make([]string, len(m.paragraphs))
		for i, p := range m.paragraphs {
			texts[i] = p.Text
		}
		m.ctrl = speech.NewController(engine, texts, func(ev speech.Event) {
			select {
			case m.events <- ev:
			default:
			}
		})
		m.ctrl.SetOptions(speech.Options{
			Language: cfg.Language,
			Voice:    cfg.Voice,
			Rate:     cfg.Rate,
			Pitch:    cfg.Pitch,
		})
		m.ctrl.SetContinuous(cfg.Continuous)
		m.ctrl.SetRandom(cfg.Random)
		m.ctrl.SetDelay(time.Duration(cfg.DelaySeconds) * time.Second)
		m.speechOK = true
	}

	return m
}

func (m *model) Init() tea.Cmd {
	return m.waitEvent()
}

func (m *model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return speechMsg(<-m.events)
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New(m.contentWidth(), m.contentHeight())
			m.ready = true
		} else {
			m.vp.Width = m.contentWidth()
			m.vp.Height = m.contentHeight()
		}
		if m.panel != nil {
			m.panel.Resize(m.contentHeight() - 2)
		}
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case speechMsg:
		m.handleSpeech(speech.Event(msg))
		return m, m.waitEvent()

	case toastExpireMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case flashClearMsg:
		if m.panel != nil && msg.seq == m.flashSeq {
			m.panel.FlashID = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.ctrl != nil {
			m.ctrl.Stop()
		}
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.panel != nil && m.panel.Visible {
			m.focusTOC = !m.focusTOC
		}
		return m, nil

	case "t":
		if m.panel == nil {
			return m.showToast("No headings on this page")
		}
		m.panel.Toggle()
		if !m.panel.Visible {
			m.focusTOC = false
		}
		m.vp.Width = m.contentWidth()
		m.relayout()
		return m, nil

	case "d":
		m.th.Toggle()
		m.prefs.SetDarkMode(m.th.Dark)
		m.relayout()
		if m.th.Dark {
			return m.showToast("Dark mode on")
		}
		return m.showToast("Dark mode off")

	case "up", "k":
		if m.focusTOC {
			m.panel.MoveCursor(-1)
			return m, nil
		}
		m.scrollBy(-1)
		return m, nil

	case "down", "j":
		if m.focusTOC {
			m.panel.MoveCursor(1)
			return m, nil
		}
		m.scrollBy(1)
		return m, nil

	case "pgup", "b":
		m.scrollBy(-m.vp.Height)
		return m, nil

	case "pgdown", "f", " ":
		m.scrollBy(m.vp.Height)
		return m, nil

	case "g", "home":
		m.scrollTo(0)
		return m, nil

	case "G", "end":
		m.scrollTo(m.vp.TotalLineCount())
		return m, nil

	case "enter":
		if m.focusTOC && m.panel != nil {
			if e := m.panel.Selected(); e != nil {
				return m.jumpTo(e.ID)
			}
		}
		return m, nil

	case "p":
		if !m.speechOK {
			return m.showToast(m.speechUnavailable())
		}
		m.ctrl.Play()
		return m.showToast("Play")

	case "s":
		if !m.speechOK {
			return m, nil
		}
		m.ctrl.Stop()
		return m, nil

	case "0":
		if m.speechOK {
			m.ctrl.Rewind()
			return m.showToast("Rewound to start")
		}
		return m, nil

	case "c":
		if !m.speechOK {
			return m.showToast(m.speechUnavailable())
		}
		m.ctrl.SetContinuous(!m.ctrl.Continuous())
		if m.ctrl.Continuous() {
			return m.showToast("Continuous on")
		}
		return m.showToast("Continuous off")

	case "r":
		if !m.speechOK {
			return m.showToast(m.speechUnavailable())
		}
		m.ctrl.SetRandom(!m.ctrl.Random())
		if m.ctrl.Random() {
			return m.showToast("Random on")
		}
		return m.showToast("Random off")

	case "+", "=":
		if m.speechOK {
			d := m.ctrl.Delay() + time.Second
			m.ctrl.SetDelay(d)
			return m.showToast(fmt.Sprintf("Delay: %ds", int(d.Seconds())))
		}
		return m, nil

	case "-":
		if m.speechOK {
			d := m.ctrl.Delay() - time.Second
			if d < time.Second {
				d = time.Second
			}
			m.ctrl.SetDelay(d)
			return m.showToast(fmt.Sprintf("Delay: %ds", int(d.Seconds())))
		}
		return m, nil
	}

	return m, nil
}

func (m *model) handleSpeech(ev speech.Event) {
	switch ev.Kind {
	case speech.EventStarted:
		if ev.Index >= 0 && ev.Index < len(m.paragraphs) {
			m.clearSpeaking()
			id := m.paragraphs[ev.Index].ID
			m.speakingID = id
			m.overrides.Apply(id, m.th.Speaking, m.th.Paragraph)
			m.relayout()
		}

	case speech.EventFinished:
		m.clearSpeaking()
		m.relayout()

	case speech.EventStopped:
		m.clearSpeaking()
		m.relayout()
		m.setToast("Stopped")

	case speech.EventDone:
		m.setToast("End of page")

	case speech.EventChunkError:
		m.setToast(fmt.Sprintf("speech: %v", ev.Err))
	}
}

// clearSpeaking restores the highlighted paragraph's saved style.
func (m *model) clearSpeaking() {
	if m.speakingID != "" {
		m.overrides.Clear(m.speakingID)
		m.speakingID = ""
	}
}

// jumpTo navigates to a heading: opens its collapsed ancestors, scrolls it
// into view, marks it active, then flashes it briefly.
func (m *model) jumpTo(id string) (tea.Model, tea.Cmd) {
	opened := m.doc.OpenAncestors(id)
	if opened > 0 {
		m.relayout()
	}
	if pos, ok := m.obs.Position(id); ok {
		m.scrollTo(pos)
	}
	if m.panel != nil {
		m.panel.SetActive(id)
		m.panel.FlashID = id
	}
	m.flashSeq++
	seq := m.flashSeq
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}

func (m *model) scrollBy(delta int) {
	m.scrollTo(m.vp.YOffset + delta)
}

func (m *model) scrollTo(offset int) {
	m.vp.SetYOffset(offset)
	m.obs.Sync(m.vp.YOffset, m.vp.Height)
}

func (m *model) showToast(text string) (tea.Model, tea.Cmd) {
	m.setToast(text)
	seq := m.toastSeq
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{seq: seq}
	})
}

func (m *model) setToast(text string) {
	m.toastSeq++
	m.toast = text
}

func (m *model) speechUnavailable() string {
	if m.speechWarn != "" {
		return m.speechWarn
	}
	return "Speech is not available"
}

func (m *model) panelWidth() int {
	if m.panel != nil && m.panel.Visible {
		return m.cfg.PanelWidth
	}
	return 2 // collapsed control gutter
}

func (m *model) contentWidth() int {
	w := m.width - m.panelWidth() - 1
	if w < 20 {
		w = 20
	}
	return w
}

func (m *model) contentHeight() int {
	h := m.height - 2 // status + controls
	if h < 3 {
		h = 3
	}
	return h
}

// relayout re-renders the visible blocks into the viewport and refreshes the
// observer's element positions.
func (m *model) relayout() {
	if !m.ready {
		return
	}
	width := m.contentWidth()

	var lines []string
	m.obs.ClearPositions()

	for _, b := range m.doc.Blocks {
		if !m.doc.Visible(b) {
			continue
		}
		text := b.Text
		if b.Kind == page.Summary {
			marker := "▸ "
			if b.Section != nil && b.Section.Open {
				marker = "▾ "
			}
			text = marker + text
		}

		style := m.overrides.Style(b.ID, m.baseStyle(b))
		wrapped := wrap(text, width)
		first := len(lines)
		for _, ln := range wrapped {
			lines = append(lines, style.Render(ln))
		}
		m.obs.SetPosition(b.ID, first, len(lines)-1)
		lines = append(lines, "")
	}

	m.vp.SetContent(strings.Join(lines, "\n"))
	m.obs.Sync(m.vp.YOffset, m.vp.Height)
}

func (m *model) baseStyle(b *page.Block) lipgloss.Style {
	switch b.Kind {
	case page.Heading:
		return m.th.Heading
	case page.Summary:
		return m.th.Summary
	default:
		return m.th.Paragraph
	}
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	status := m.statusLine()
	controls := m.th.Controls.Render(m.controlsLine())

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.panelView(), " ", m.vp.View())

	return status + "\n" + body + "\n" + controls
}

func (m *model) statusLine() string {
	var parts []string
	if m.doc.Title != "" {
		parts = append(parts, m.doc.Title)
	}
	parts = append(parts, fmt.Sprintf("%d paragraphs", len(m.paragraphs)))
	if m.speechOK {
		switch m.ctrl.State() {
		case speech.Speaking:
			parts = append(parts, "speaking")
		case speech.PausedBetween:
			parts = append(parts, "next in a moment")
		}
		var modes []string
		if m.ctrl.Continuous() {
			modes = append(modes, "cont")
		}
		if m.ctrl.Random() {
			modes = append(modes, "rand")
		}
		if len(modes) > 0 {
			parts = append(parts, strings.Join(modes, "+"))
		}
	}

	line := m.th.Status.Render(strings.Join(parts, " | "))
	if m.toast != "" {
		line += " " + m.th.Toast.Render(m.toast)
	}
	return line
}

func (m *model) controlsLine() string {
	hints := []string{"j/k: scroll"}
	if m.panel != nil {
		hints = append(hints, "t: contents", "tab: focus", "enter: jump")
	}
	if m.speechOK {
		hints = append(hints, "p: play", "s: stop", "c/r: modes", "+/-: delay")
	}
	hints = append(hints, "d: "+m.th.Label(), "q: quit")
	return strings.Join(hints, "  ")
}

// panelView renders the TOC column: the full panel when expanded, a minimal
// one-column control when collapsed.
func (m *model) panelView() string {
	if m.panel == nil || !m.panel.Visible {
		gutter := make([]string, m.contentHeight())
		gutter[0] = m.th.Dimmed.Render("≡")
		for i := 1; i < len(gutter); i++ {
			gutter[i] = " "
		}
		return strings.Join(gutter, "\n")
	}

	width := m.cfg.PanelWidth
	var rows []string
	rows = append(rows, m.th.Heading.Render(pad("Contents", width)))

	start, end := m.panel.VisibleRows()
	for i := start; i < end; i++ {
		e := m.panel.Outline.Entries[i]
		indentCells := e.Indent / 8
		text := strings.Repeat(" ", indentCells) + e.Text
		if m.focusTOC && i == m.panel.Cursor {
			text = "> " + text
		} else {
			text = "  " + text
		}
		text = pad(text, width)

		style := m.th.Entry
		switch {
		case e.ID == m.panel.FlashID:
			style = m.th.Flash
		case e.ID == m.panel.ActiveID:
			style = m.th.ActiveEntry
		}
		rows = append(rows, style.Render(text))
	}

	for len(rows) < m.contentHeight() {
		rows = append(rows, strings.Repeat(" ", width))
	}
	return strings.Join(rows, "\n")
}

// pad truncates or space-pads a row to exactly width cells.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width > 1 {
			return string(r[:width-1]) + "…"
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// wrap greedily word-wraps text to the given width.
func wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len([]rune(cur))+1+len([]rune(w)) <= width {
			cur += " " + w
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	return append(lines, cur)
}

func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "config file path")
	export := flag.String("export", "", "convert a Markdown file to standalone HTML and exit")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Lectern - Terminal Page Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  lectern [options] [file or URL]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, s := range source.Supported() {
			fmt.Fprintf(os.Stderr, "  %s\n", s)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lectern page.html               Read a local page\n")
		fmt.Fprintf(os.Stderr, "  lectern https://example.com     Read a remote page\n")
		fmt.Fprintf(os.Stderr, "  lectern book.epub               Read an EPUB\n")
		fmt.Fprintf(os.Stderr, "  lectern -export out.html doc.md Convert Markdown to HTML\n")
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  j/k      Scroll\n")
		fmt.Fprintf(os.Stderr, "  t        Toggle table of contents\n")
		fmt.Fprintf(os.Stderr, "  tab      Focus the contents panel\n")
		fmt.Fprintf(os.Stderr, "  enter    Jump to the selected heading\n")
		fmt.Fprintf(os.Stderr, "  p/s      Play / stop read-aloud\n")
		fmt.Fprintf(os.Stderr, "  c/r      Toggle continuous / random mode\n")
		fmt.Fprintf(os.Stderr, "  +/-      Adjust inter-paragraph delay\n")
		fmt.Fprintf(os.Stderr, "  d        Toggle dark mode\n")
		fmt.Fprintf(os.Stderr, "  q        Quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("lectern %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if *export != "" {
		if flag.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Error: -export needs a Markdown file argument.")
			os.Exit(1)
		}
		if err := source.ExportHTML(flag.Arg(0), *export); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *export)
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

	doc, err := loadInput(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(doc.Blocks) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Nothing to read.")
		os.Exit(1)
	}

	engine, warn := buildEngine(cfg)

	prefs := state.NewPrefs()
	m := newModel(doc, cfg, prefs, engine, warn)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadInput resolves the positional argument (file path or URL) or stdin
// into a document.
func loadInput(args []string) (*page.Document, error) {
	if len(args) > 0 {
		arg := args[0]
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			return source.LoadURL(arg)
		}
		return source.LoadDocument(arg)
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no input provided; give a file, a URL, or pipe text to stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return source.FromText(string(data))
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

package toc

// scrollMargin is how close to the panel's own top or bottom edge the active
// row may get before the panel scrolls to chase it.
const scrollMargin = 2

// Panel is the navigation panel state: which entry is active, whether the
// panel is expanded, and its internal scroll position. Rendering is left to
// the front end; the panel only owns the state transitions.
type Panel struct {
	Outline Outline
	Visible bool

	ActiveID string
	FlashID  string // transient jump highlight, cleared by the front end
	Cursor   int    // keyboard selection
	Offset   int    // first visible row
	Height   int    // rows the panel can show
}

// NewPanel builds a panel over an outline. A panel over an empty outline
// stays permanently hidden.
func NewPanel(o Outline) *Panel {
	return &Panel{Outline: o, Height: 10}
}

// Toggle flips panel visibility. Entry state survives hiding; a panel with
// no entries refuses to show.
func (p *Panel) Toggle() {
	if len(p.Outline.Entries) == 0 {
		p.Visible = false
		return
	}
	p.Visible = !p.Visible
}

// SetActive re-assigns the single active entry and nudges the panel's scroll
// offset so the active row stays visible. The reposition is instant and moves
// by exactly the overflow amount past the margin, which keeps repeated calls
// for the same entry from moving anything (no feedback loops).
func (p *Panel) SetActive(id string) {
	if id == p.ActiveID {
		return
	}
	i := p.Outline.Find(id)
	if i < 0 {
		return
	}
	p.ActiveID = id
	p.scrollTo(i)
}

// MoveCursor shifts the keyboard selection by delta, clamped, and keeps the
// selection in view.
func (p *Panel) MoveCursor(delta int) {
	p.Cursor += delta
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if n := len(p.Outline.Entries); p.Cursor >= n {
		p.Cursor = n - 1
	}
	p.scrollTo(p.Cursor)
}

// Selected returns the entry under the keyboard cursor, or nil.
func (p *Panel) Selected() *Entry {
	if p.Cursor < 0 || p.Cursor >= len(p.Outline.Entries) {
		return nil
	}
	return &p.Outline.Entries[p.Cursor]
}

// scrollTo adjusts Offset just enough that row i sits inside the margin.
func (p *Panel) scrollTo(i int) {
	margin := scrollMargin
	if p.Height <= 2*margin {
		margin = 0
	}
	if i < p.Offset+margin {
		p.Offset = i - margin
	} else if i > p.Offset+p.Height-1-margin {
		p.Offset = i - p.Height + 1 + margin
	}
	max := len(p.Outline.Entries) - p.Height
	if max < 0 {
		max = 0
	}
	if p.Offset > max {
		p.Offset = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Resize sets the number of rows the panel can display.
func (p *Panel) Resize(rows int) {
	if rows < 1 {
		rows = 1
	}
	p.Height = rows
	p.scrollTo(p.Cursor)
}

// VisibleRows returns the slice of entry indices currently in the panel's
// scroll window.
func (p *Panel) VisibleRows() (start, end int) {
	start = p.Offset
	end = p.Offset + p.Height
	if n := len(p.Outline.Entries); end > n {
		end = n
	}
	return start, end
}

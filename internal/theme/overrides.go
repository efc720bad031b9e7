package theme

import "github.com/charmbracelet/lipgloss"

// Overrides is a side table of per-element style replacements: element id to
// applied style, with the original kept for restoration. It keeps transient
// presentation state (the read-aloud highlight, jump flashes) out of the
// document model itself.
type Overrides struct {
	applied map[string]lipgloss.Style
	saved   map[string]lipgloss.Style
}

// NewOverrides returns an empty side table.
func NewOverrides() *Overrides {
	return &Overrides{
		applied: make(map[string]lipgloss.Style),
		saved:   make(map[string]lipgloss.Style),
	}
}

// Apply overrides an element's style, snapshotting the original the first
// time. Re-applying updates the override but keeps the first snapshot.
func (o *Overrides) Apply(id string, style, original lipgloss.Style) {
	if _, ok := o.saved[id]; !ok {
		o.saved[id] = original
	}
	o.applied[id] = style
}

// Clear removes an element's override and returns the saved original.
// Clearing an element that was never overridden is a no-op.
func (o *Overrides) Clear(id string) (lipgloss.Style, bool) {
	orig, ok := o.saved[id]
	delete(o.applied, id)
	delete(o.saved, id)
	return orig, ok
}

// ClearAll drops every override.
func (o *Overrides) ClearAll() {
	o.applied = make(map[string]lipgloss.Style)
	o.saved = make(map[string]lipgloss.Style)
}

// Style resolves an element's effective style.
func (o *Overrides) Style(id string, base lipgloss.Style) lipgloss.Style {
	if s, ok := o.applied[id]; ok {
		return s
	}
	return base
}

// Has reports whether an element currently has an override.
func (o *Overrides) Has(id string) bool {
	_, ok := o.applied[id]
	return ok
}

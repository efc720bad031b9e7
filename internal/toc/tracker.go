package toc

import "github.com/dstanton/lectern/internal/observe"

// Tracker keeps the panel's active entry synchronized with whichever indexed
// heading is currently crossing the activation region.
type Tracker struct {
	panel    *Panel
	observer observe.Observer
	onChange func(id string)
}

// NewTracker subscribes every outline entry to the observer. onChange, if
// non-nil, fires after the active entry is re-assigned.
func NewTracker(p *Panel, obs observe.Observer, onChange func(id string)) *Tracker {
	t := &Tracker{panel: p, observer: obs, onChange: onChange}
	for _, e := range p.Outline.Entries {
		obs.Register(e.ID, t.handle)
	}
	return t
}

func (t *Tracker) handle(id string, state observe.Intersection) {
	if !state.Visible || id == t.panel.ActiveID {
		return
	}
	t.panel.SetActive(id)
	if t.onChange != nil {
		t.onChange(id)
	}
}

// Close unsubscribes all entries.
func (t *Tracker) Close() {
	for _, e := range t.panel.Outline.Entries {
		t.observer.Unregister(e.ID)
	}
}

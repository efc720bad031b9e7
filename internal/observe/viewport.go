package observe

// regionFraction is the portion of the window, measured from the top, that
// counts as the activation region. Elements crossing into the top 40% become
// visible; the bottom 60% is excluded so activation is biased toward
// headings near the top of the view.
const regionFraction = 0.4

type watch struct {
	cb   Callback
	last Intersection
	seen bool
}

// Viewport is an Observer driven by scroll position: elements are line
// ranges within a scrolled window, and the front end calls Sync after every
// scroll or layout change. Callbacks fire only when an element's
// intersection state changes.
type Viewport struct {
	watches   map[string]*watch
	positions map[string][2]int // element id -> [first line, last line]
	offset    int
	height    int
}

// NewViewport returns an empty viewport observer.
func NewViewport() *Viewport {
	return &Viewport{
		watches:   make(map[string]*watch),
		positions: make(map[string][2]int),
	}
}

// Register subscribes a callback for an element. The initial state is
// delivered on the next Sync.
func (v *Viewport) Register(id string, cb Callback) {
	v.watches[id] = &watch{cb: cb}
}

// Unregister drops an element's subscription.
func (v *Viewport) Unregister(id string) {
	delete(v.watches, id)
}

// SetPosition records the line range an element occupies in the laid-out
// document. Elements without a recorded position never intersect.
func (v *Viewport) SetPosition(id string, first, last int) {
	if last < first {
		last = first
	}
	v.positions[id] = [2]int{first, last}
}

// Position returns the first line an element occupies, if known.
func (v *Viewport) Position(id string) (int, bool) {
	pos, ok := v.positions[id]
	return pos[0], ok
}

// ClearPositions forgets all element positions, ahead of a re-layout.
func (v *Viewport) ClearPositions() {
	v.positions = make(map[string][2]int)
}

// Sync updates the window geometry and fires callbacks for every element
// whose intersection state changed.
func (v *Viewport) Sync(offset, height int) {
	v.offset = offset
	v.height = height

	regionTop := offset
	regionLines := int(float64(height) * regionFraction)
	if regionLines < 1 {
		regionLines = 1
	}
	regionBottom := offset + regionLines - 1

	for id, w := range v.watches {
		pos, ok := v.positions[id]
		if !ok {
			continue
		}
		state := intersect(pos[0], pos[1], regionTop, regionBottom)
		if !w.seen || state != w.last {
			w.seen = true
			w.last = state
			w.cb(id, state)
		}
	}
}

func intersect(first, last, top, bottom int) Intersection {
	lo := first
	if top > lo {
		lo = top
	}
	hi := last
	if bottom < hi {
		hi = bottom
	}
	if hi < lo {
		return Intersection{}
	}
	span := last - first + 1
	return Intersection{
		Visible: true,
		Ratio:   float64(hi-lo+1) / float64(span),
	}
}

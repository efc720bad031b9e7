package speech

import (
	"math/rand"
	"sync"
	"time"
)

// State is the playback state.
type State int

const (
	// Idle means no paragraph is in flight.
	Idle State = iota
	// Speaking means a paragraph's chunks are being synthesized.
	Speaking
	// PausedBetween means a paragraph finished and the continuous-mode
	// delay timer is pending.
	PausedBetween
)

// EventKind classifies controller notifications.
type EventKind int

const (
	// EventStarted fires before a paragraph's first chunk is synthesized;
	// the front end highlights the paragraph on it.
	EventStarted EventKind = iota
	// EventFinished fires when a paragraph's speech fully completes; the
	// highlight is cleared on it regardless of chunk errors.
	EventFinished
	// EventStopped fires on Stop, after in-flight synthesis is canceled.
	EventStopped
	// EventDone fires when sequential playback runs past the last paragraph.
	EventDone
	// EventChunkError reports a single failed chunk; playback continues.
	EventChunkError
)

// Event is a controller notification. Index is the paragraph concerned,
// where applicable.
type Event struct {
	Kind  EventKind
	Index int
	Err   error
}

// Controller walks an ordered, fixed set of paragraphs through a speech
// engine. Continuous mode auto-advances after a configurable delay; random
// mode picks the next paragraph uniformly instead of sequentially. The two
// are independent toggles.
type Controller struct {
	engine Engine
	notify func(Event)

	mu            sync.Mutex
	engineOptions Options
	paragraphs    []string
	index         int // next paragraph in sequential order
	state         State
	continuous    bool
	random        bool
	delay         time.Duration
	gen           int // bumped by Play/Stop to invalidate stale callbacks
	rng           *rand.Rand
}

// NewController builds a controller over a fixed paragraph sequence. notify
// may be nil. The paragraph set is immutable for the controller's lifetime.
func NewController(engine Engine, paragraphs []string, notify func(Event)) *Controller {
	return &Controller{
		engine:     engine,
		notify:     notify,
		paragraphs: paragraphs,
		delay:      3 * time.Second,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Play starts speaking the next paragraph: the sequential cursor in order
// mode, a uniformly random index in random mode. Calling Play while a
// continuous-mode delay is pending supersedes the pending advance, so no
// double-speech can occur. Past the last paragraph, playback halts.
func (c *Controller) Play() {
	c.mu.Lock()
	c.gen++
	c.playLocked(c.gen)
}

// playLocked picks and launches the next paragraph. Called with the mutex
// held; releases it.
func (c *Controller) playLocked(gen int) {
	if len(c.paragraphs) == 0 {
		c.state = Idle
		c.mu.Unlock()
		return
	}

	var idx int
	if c.random {
		idx = c.rng.Intn(len(c.paragraphs))
	} else {
		idx = c.index
		if idx >= len(c.paragraphs) {
			c.state = Idle
			c.mu.Unlock()
			c.emit(Event{Kind: EventDone})
			return
		}
	}
	// The cursor follows whatever was picked, so leaving random mode
	// continues in order from the last spoken paragraph.
	c.index = idx + 1

	c.state = Speaking
	chunks := Chunk(c.paragraphs[idx])
	opts := c.engineOptions
	c.mu.Unlock()

	c.emit(Event{Kind: EventStarted, Index: idx})
	c.speakChunk(gen, idx, chunks, 0, opts)
}

// speakChunk synthesizes chunk i, then chains to i+1 from the engine's
// completion callback. Chunks never overlap; an error on one chunk is
// reported and skipped.
func (c *Controller) speakChunk(gen, idx int, chunks []string, i int, opts Options) {
	c.mu.Lock()
	if c.gen != gen || c.state != Speaking {
		c.mu.Unlock()
		return
	}

	if i >= len(chunks) {
		// Paragraph complete.
		if c.continuous {
			c.state = PausedBetween
			delay := c.delay
			time.AfterFunc(delay, func() { c.delayFired(gen) })
		} else {
			c.state = Idle
		}
		c.mu.Unlock()
		c.emit(Event{Kind: EventFinished, Index: idx})
		return
	}
	c.mu.Unlock()

	c.engine.Speak(chunks[i], opts, func(err error) {
		if err != nil {
			c.emit(Event{Kind: EventChunkError, Index: idx, Err: err})
		}
		c.speakChunk(gen, idx, chunks, i+1, opts)
	})
}

// delayFired is the continuous-mode timer. The timer is never canceled
// early; it checks the continuous flag and generation at fire time, so a
// Stop or a manual Play during the delay window suppresses it.
func (c *Controller) delayFired(gen int) {
	c.mu.Lock()
	if c.gen != gen || c.state != PausedBetween || !c.continuous {
		c.mu.Unlock()
		return
	}
	c.playLocked(gen)
}

// Stop halts playback unconditionally: cancels all in-flight synthesis
// engine-wide and returns to Idle. Idempotent; a second Stop emits nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.gen++
	wasActive := c.state != Idle
	c.state = Idle
	c.mu.Unlock()

	c.engine.CancelAll()
	if wasActive {
		c.emit(Event{Kind: EventStopped})
	}
}

// Rewind resets the sequential cursor to the first paragraph. Playback is
// restartable from the start, never mid-stream.
func (c *Controller) Rewind() {
	c.mu.Lock()
	c.index = 0
	c.mu.Unlock()
}

// SetContinuous toggles auto-advance after each paragraph.
func (c *Controller) SetContinuous(on bool) {
	c.mu.Lock()
	c.continuous = on
	c.mu.Unlock()
}

// SetRandom toggles uniform random paragraph selection.
func (c *Controller) SetRandom(on bool) {
	c.mu.Lock()
	c.random = on
	c.mu.Unlock()
}

// SetDelay sets the inter-paragraph pause. Non-positive values are ignored.
func (c *Controller) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.delay = d
	c.mu.Unlock()
}

// SetOptions sets per-utterance synthesis parameters.
func (c *Controller) SetOptions(opts Options) {
	c.mu.Lock()
	c.engineOptions = opts
	c.mu.Unlock()
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Index returns the sequential cursor (the next paragraph in order mode).
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Delay returns the inter-paragraph pause.
func (c *Controller) Delay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

// Continuous reports whether continuous mode is on.
func (c *Controller) Continuous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.continuous
}

// Random reports whether random mode is on.
func (c *Controller) Random() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.random
}

func (c *Controller) emit(ev Event) {
	if c.notify != nil {
		c.notify(ev)
	}
}

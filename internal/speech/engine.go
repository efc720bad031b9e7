package speech

// Options carries per-utterance synthesis parameters.
type Options struct {
	Language string
	Voice    string
	Rate     int // words per minute
	Pitch    int // 0-99, engines that cannot adjust pitch ignore it
}

// Engine synthesizes and speaks text. Speak returns immediately; done is
// invoked exactly once from an engine-owned goroutine when the utterance
// finishes or fails. CancelAll tears down every in-flight utterance
// engine-wide; canceled utterances report an error through done.
type Engine interface {
	Speak(text string, opts Options, done func(error))
	CancelAll()
}

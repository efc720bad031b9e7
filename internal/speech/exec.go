package speech

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
)

// ExecEngine speaks through a local synthesizer process: say on macOS,
// espeak-ng (or espeak) elsewhere.
type ExecEngine struct {
	binary string

	mu      sync.Mutex
	nextID  int
	running map[int]*exec.Cmd
}

// NewExecEngine locates a local synthesizer binary. An error means no speech
// capability is present on this machine; callers should treat speech as a
// no-op rather than failing.
func NewExecEngine() (*ExecEngine, error) {
	var candidates []string
	if runtime.GOOS == "darwin" {
		candidates = []string{"say"}
	} else {
		candidates = []string{"espeak-ng", "espeak"}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return &ExecEngine{binary: path, running: make(map[int]*exec.Cmd)}, nil
		}
	}
	return nil, fmt.Errorf("no speech synthesizer found (tried %v)", candidates)
}

func (e *ExecEngine) Speak(text string, opts Options, done func(error)) {
	cmd := exec.Command(e.binary, e.args(opts, text)...)

	e.mu.Lock()
	e.nextID++
	id := e.nextID
	if err := cmd.Start(); err != nil {
		e.mu.Unlock()
		go done(err)
		return
	}
	e.running[id] = cmd
	e.mu.Unlock()

	go func() {
		err := cmd.Wait()
		e.mu.Lock()
		delete(e.running, id)
		e.mu.Unlock()
		done(err)
	}()
}

// CancelAll kills every in-flight synthesizer process.
func (e *ExecEngine) CancelAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, cmd := range e.running {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}
}

func (e *ExecEngine) args(opts Options, text string) []string {
	var args []string
	switch {
	case runtime.GOOS == "darwin":
		if opts.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(opts.Rate))
		}
		if opts.Voice != "" {
			args = append(args, "-v", opts.Voice)
		}
	default:
		if opts.Rate > 0 {
			args = append(args, "-s", strconv.Itoa(opts.Rate))
		}
		if opts.Pitch > 0 {
			args = append(args, "-p", strconv.Itoa(opts.Pitch))
		}
		if opts.Voice != "" {
			args = append(args, "-v", opts.Voice)
		} else if opts.Language != "" {
			args = append(args, "-v", opts.Language)
		}
	}
	return append(args, text)
}

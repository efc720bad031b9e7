package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// RemoteEngine relays utterances to a speech daemon over HTTP. A 2xx
// response means the daemon accepted and spoke the utterance. It exists as a
// fallback for machines without a local synthesizer and is never selected by
// default.
type RemoteEngine struct {
	url    string
	client *http.Client

	mu      sync.Mutex
	nextID  int
	cancels map[int]context.CancelFunc
}

type remoteUtterance struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Voice    string `json:"voice,omitempty"`
	Rate     int    `json:"rate,omitempty"`
	Pitch    int    `json:"pitch,omitempty"`
}

// NewRemoteEngine targets a relay endpoint.
func NewRemoteEngine(url string) *RemoteEngine {
	return &RemoteEngine{
		url:     url,
		client:  &http.Client{Timeout: 2 * time.Minute},
		cancels: make(map[int]context.CancelFunc),
	}
}

func (e *RemoteEngine) Speak(text string, opts Options, done func(error)) {
	body, err := json.Marshal(remoteUtterance{
		Text:     text,
		Language: opts.Language,
		Voice:    opts.Voice,
		Rate:     opts.Rate,
		Pitch:    opts.Pitch,
	})
	if err != nil {
		go done(err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.cancels[id] = cancel
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			delete(e.cancels, id)
			e.mu.Unlock()
			cancel()
		}()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
		if err != nil {
			done(err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			done(err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			done(fmt.Errorf("speech relay returned %s", resp.Status))
			return
		}
		done(nil)
	}()
}

// CancelAll aborts every in-flight relay request.
func (e *RemoteEngine) CancelAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, cancel := range e.cancels {
		cancel()
	}
}

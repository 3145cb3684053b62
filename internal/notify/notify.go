// Package notify tells a form endpoint how the player answered the prompt
// shown when the tree goal is reached.
package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"garden/internal/config"
)

// Answer is the player's reply to the goal prompt.
type Answer uint8

const (
	No Answer = iota
	Yes
)

// yesResponse is the form value posted for a Yes answer.
const yesResponse = "Oui"

// Notifier holds the pending prompt and posts the answer. Posts run in their
// own goroutine and failures are only logged.
type Notifier struct {
	endpoint string
	client   *http.Client

	mu       sync.Mutex
	pending  bool
	answered bool
	lastErr  error

	wg sync.WaitGroup
}

// New returns a notifier for the configured endpoint. An empty endpoint
// keeps the prompt but never sends anything.
func New(cfg config.NotifyConfig) *Notifier {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Notifier{endpoint: cfg.Endpoint, client: &http.Client{Timeout: timeout}}
}

// GoalReached raises the prompt. Later calls are ignored once it has been
// answered.
func (n *Notifier) GoalReached() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.answered || n.pending {
		return
	}
	n.pending = true
	log.Printf("[notify] goal reached, prompt pending")
}

// Pending reports whether the prompt is waiting for an answer.
func (n *Notifier) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending
}

// Respond closes the prompt. A Yes answer is posted to the endpoint.
func (n *Notifier) Respond(a Answer) {
	n.mu.Lock()
	if !n.pending {
		n.mu.Unlock()
		return
	}
	n.pending = false
	n.answered = true
	n.mu.Unlock()

	if a != Yes {
		return
	}
	if n.endpoint == "" {
		log.Printf("[notify] no endpoint configured, answer not sent")
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		err := n.post(context.Background(), yesResponse)
		n.mu.Lock()
		n.lastErr = err
		n.mu.Unlock()
		if err != nil {
			log.Printf("[notify] send failed: %v", err)
			return
		}
		log.Printf("[notify] answer sent")
	}()
}

func (n *Notifier) post(ctx context.Context, response string) error {
	form := url.Values{"response": {response}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post answer: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return nil
}

// Wait blocks until in-flight posts finish.
func (n *Notifier) Wait() { n.wg.Wait() }

// Err returns the result of the last post.
func (n *Notifier) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastErr
}

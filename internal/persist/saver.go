package persist

import (
	"context"
	"log"
	"sync"
	"time"
)

// Debouncer limits saves to one per window of simulated time. Marks made
// inside a window are flushed by the first Ready call after it closes.
type Debouncer struct {
	Window int64

	last  int64
	dirty bool
}

// NewDebouncer starts the first window at now.
func NewDebouncer(window time.Duration, now int64) *Debouncer {
	return &Debouncer{Window: window.Milliseconds(), last: now}
}

// Mark records an unsaved change.
func (d *Debouncer) Mark() { d.dirty = true }

// Dirty reports whether a change is waiting to be saved.
func (d *Debouncer) Dirty() bool { return d.dirty }

// Ready reports whether a save should happen at now and, if so, starts a new
// window.
func (d *Debouncer) Ready(now int64) bool {
	if !d.dirty || now-d.last < d.Window {
		return false
	}
	d.last = now
	d.dirty = false
	return true
}

// Take clears and returns the dirty flag without touching the window.
func (d *Debouncer) Take() bool {
	dirty := d.dirty
	d.dirty = false
	return dirty
}

// Saver writes snapshots in the background. A save never blocks the caller
// and later saves do not cancel earlier ones, so the last write to land wins.
type Saver struct {
	store   Store
	timeout time.Duration

	wg sync.WaitGroup

	mu      sync.Mutex
	lastErr error
	saved   int
	failed  bool
}

// NewSaver returns a saver for store. Each write gets its own timeout.
func NewSaver(store Store, timeout time.Duration) *Saver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Saver{store: store, timeout: timeout}
}

// Store returns the underlying store.
func (s *Saver) Store() Store { return s.store }

// Save writes data in a new goroutine. Failures are logged and kept for Err.
func (s *Saver) Save(data []byte) {
	snapshot := append([]byte(nil), data...)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		err := s.store.Save(ctx, snapshot)

		s.mu.Lock()
		s.lastErr = err
		if err == nil {
			s.saved++
		} else {
			s.failed = true
		}
		s.mu.Unlock()

		if err != nil {
			log.Printf("[persist] %s: save failed: %v", s.store.Name(), err)
		}
	}()
}

// Wait blocks until every started save has finished.
func (s *Saver) Wait() { s.wg.Wait() }

// Err returns the result of the most recently finished save.
func (s *Saver) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// TakeFailed reports whether any save failed since the last call and clears
// the flag.
func (s *Saver) TakeFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	failed := s.failed
	s.failed = false
	return failed
}

// Saved counts successful saves.
func (s *Saver) Saved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

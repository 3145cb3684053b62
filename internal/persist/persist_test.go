package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"garden/internal/config"
	"garden/internal/core"
	"garden/internal/garden"

	"github.com/quasilyte/gdata/v2"
)

type memStore struct {
	mu    sync.Mutex
	data  []byte
	err   error
	saves int
}

func (m *memStore) Name() string { return "mem" }

func (m *memStore) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.data == nil {
		return nil, ErrNotFound
	}
	return m.data, nil
}

func (m *memStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data = data
	m.saves++
	return nil
}

func TestDebouncerWindow(t *testing.T) {
	d := NewDebouncer(2*time.Second, 0)
	if d.Ready(5000) {
		t.Fatalf("clean debouncer should not fire")
	}
	d.Mark()
	if !d.Ready(5000) {
		t.Fatalf("dirty debouncer past the window should fire")
	}
	d.Mark()
	if d.Ready(6000) {
		t.Fatalf("second save inside the window must wait")
	}
	if !d.Dirty() {
		t.Fatalf("pending change lost")
	}
	if !d.Ready(7000) {
		t.Fatalf("pending change should flush when the window closes")
	}
	d.Mark()
	if !d.Take() || d.Dirty() {
		t.Fatalf("Take should hand over and clear the pending change")
	}
	if d.Take() {
		t.Fatalf("Take on a clean debouncer")
	}
}

func TestSaverWritesInBackground(t *testing.T) {
	mem := &memStore{}
	s := NewSaver(mem, time.Second)
	s.Save([]byte(`{"a":1}`))
	s.Save([]byte(`{"b":2}`))
	s.Wait()
	if s.Saved() != 2 || mem.saves != 2 {
		t.Fatalf("expected 2 saves, got %d/%d", s.Saved(), mem.saves)
	}
	if s.Err() != nil {
		t.Fatalf("unexpected error: %v", s.Err())
	}
}

func TestSaverKeepsError(t *testing.T) {
	mem := &memStore{err: errors.New("disk full")}
	s := NewSaver(mem, time.Second)
	s.Save([]byte(`{}`))
	s.Wait()
	if s.Err() == nil || s.Saved() != 0 {
		t.Fatalf("expected failure to be recorded")
	}
	if !s.TakeFailed() {
		t.Fatalf("failure flag not set")
	}
	if s.TakeFailed() {
		t.Fatalf("failure flag should clear once taken")
	}
}

func TestLoadGardenFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	for name, mem := range map[string]*memStore{
		"missing": {},
		"error":   {err: errors.New("offline")},
		"garbage": {data: []byte("not json")},
	} {
		s := LoadGarden(ctx, mem, 10)
		if s.Len() != 0 {
			t.Fatalf("%s: expected empty garden, got %d cells", name, s.Len())
		}
	}

	src := garden.NewStore(10)
	src.Set(core.Coord{Row: 1, Col: 1}, garden.Water())
	data, err := garden.Encode(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := LoadGarden(ctx, &memStore{data: data}, 10)
	if !got.Equal(src) {
		t.Fatalf("loaded garden differs from saved one")
	}
}

func TestRemoteStoreRoundTrip(t *testing.T) {
	var (
		mu     sync.Mutex
		record json.RawMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/garden-1" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("apikey") != "k" || r.Header.Get("Authorization") != "Bearer k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if record == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprintf(w, `{"id":"garden-1","grid":%s}`, record)
		case http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			var rec struct {
				Grid json.RawMessage `json:"grid"`
			}
			if err := json.Unmarshal(body, &rec); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			record = rec.Grid
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	st := NewRemoteStore(config.RemoteConfig{URL: srv.URL + "/rest/", RecordID: "garden-1", APIKey: "k", TimeoutMS: 2000})
	ctx := context.Background()
	if _, err := st.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}
	blob := []byte(`{"3-4":{"type":"water"}}`)
	if err := st.Save(ctx, blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := garden.Decode(got, 10)
	if !s.IsWater(core.Coord{Row: 3, Col: 4}) {
		t.Fatalf("remote round trip lost the water cell: %s", got)
	}
}

func TestRemoteStoreReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	st := NewRemoteStore(config.RemoteConfig{URL: srv.URL, RecordID: "x", APIKey: "k"})
	if err := st.Save(context.Background(), []byte(`{}`)); err == nil {
		t.Fatalf("expected error on 500")
	}
	if _, err := st.Load(context.Background()); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected non-NotFound error on 500, got %v", err)
	}
	if err := st.Save(context.Background(), []byte(`not json`)); err == nil {
		t.Fatalf("invalid blob should be rejected before sending")
	}
}

func TestDegradedLocalStore(t *testing.T) {
	st := NewLocalStore(nil, "default")
	if !st.Degraded() {
		t.Fatalf("store without manager should be degraded")
	}
	if err := st.Save(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("degraded save should be silent: %v", err)
	}
	if _, err := st.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("degraded load should report ErrNotFound, got %v", err)
	}
}

func TestValidSlot(t *testing.T) {
	for _, ok := range []string{"default", "slot_2", "a-b"} {
		if !ValidSlot(ok) {
			t.Fatalf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "../x", "a b", "x/y"} {
		if ValidSlot(bad) {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	appName := fmt.Sprintf("garden_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("cannot open gdata storage: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})

	st := NewLocalStore(m, "slot1")
	ctx := context.Background()
	if _, err := st.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty slot, got %v", err)
	}
	if err := st.Save(ctx, []byte(`{"0-0":{"type":"water"}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	s := LoadGarden(ctx, st, 5)
	if !s.IsWater(core.Coord{}) {
		t.Fatalf("local round trip lost the water cell")
	}
}

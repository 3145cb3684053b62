package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"garden/internal/config"
)

// RemoteStore reads and writes one shared record over REST. The record holds
// the grid as an opaque JSON value under "grid".
type RemoteStore struct {
	url    string
	apiKey string
	client *http.Client
}

type remoteRecord struct {
	Grid json.RawMessage `json:"grid"`
}

// NewRemoteStore builds a store for the configured record.
func NewRemoteStore(cfg config.RemoteConfig) *RemoteStore {
	return &RemoteStore{
		url:    strings.TrimRight(cfg.URL, "/") + "/" + cfg.RecordID,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// Name implements Store.
func (s *RemoteStore) Name() string { return "remote" }

// Load implements Store.
func (s *RemoteStore) Load(ctx context.Context) ([]byte, error) {
	req, err := s.request(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var rec remoteRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if len(rec.Grid) == 0 || string(rec.Grid) == "null" {
		return nil, ErrNotFound
	}
	return rec.Grid, nil
}

// Save implements Store.
func (s *RemoteStore) Save(ctx context.Context, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("save record: grid is not valid JSON")
	}
	body, err := json.Marshal(remoteRecord{Grid: data})
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	req, err := s.request(ctx, http.MethodPatch, bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("patch record: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (s *RemoteStore) request(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return fmt.Errorf("remote returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
}

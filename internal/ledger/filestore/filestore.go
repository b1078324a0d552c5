package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/pupbiru/humanitix-auto-codes/internal/ledger"
)

type fileState struct {
	Events map[string]ledger.Marker `json:"events"`
}

// Store keeps the ledger in a single JSON state file, rewritten in full after
// every mutation. A missing or corrupt file loads as an empty ledger.
type Store struct {
	path string

	mu    sync.Mutex
	state fileState
}

func New(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err == nil {
		// A file we cannot parse is treated the same as no file at all.
		_ = json.Unmarshal(data, &s.state)
	}
	if s.state.Events == nil {
		s.state.Events = make(map[string]ledger.Marker)
	}
	return s
}

func (s *Store) Get(ctx context.Context, eventID string) (ledger.Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Events[eventID], nil
}

func (s *Store) Set(ctx context.Context, eventID string, marker ledger.Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Events[eventID] = marker

	data, err := json.MarshalIndent(s.state, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal ledger state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write ledger state to %s: %w", s.path, err)
	}
	return nil
}

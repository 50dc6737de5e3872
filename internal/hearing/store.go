package hearing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Store keeps the hearing list in a single JSON file. The whole list is
// loaded at open and rewritten wholesale on every mutation; at case-file
// scale an incremental format buys nothing.
type Store struct {
	path   string
	events []Event
}

// OpenStore loads the event list from path. A missing file is an empty
// calendar, not an error.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, eris.New("hearing: store path is required")
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "hearing: read store")
	}
	if err := json.Unmarshal(data, &s.events); err != nil {
		return nil, eris.Wrap(err, "hearing: parse store")
	}
	return s, nil
}

// Add inserts events, skipping any whose (start, summary) pair is already
// stored, and persists. It returns how many were actually added.
func (s *Store) Add(events []Event) (int, error) {
	type key struct {
		start   int64
		summary string
	}
	seen := make(map[key]bool, len(s.events))
	for _, e := range s.events {
		seen[key{e.Start.Unix(), e.Summary}] = true
	}

	// Stage new events and commit only after a successful flush, so a
	// failed write leaves the in-memory list matching the file and a retry
	// can persist the same events.
	var fresh []Event
	for _, e := range events {
		k := key{e.Start.Unix(), e.Summary}
		if seen[k] {
			continue
		}
		seen[k] = true
		fresh = append(fresh, e)
	}

	if len(fresh) > 0 {
		prev := s.events
		s.events = append(prev, fresh...)
		if err := s.flush(); err != nil {
			s.events = prev
			return 0, err
		}
	}

	zap.L().Info("hearings imported",
		zap.Int("added", len(fresh)),
		zap.Int("skipped", len(events)-len(fresh)),
	)

	return len(fresh), nil
}

// Events returns the stored events sorted by start time.
func (s *Store) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// Clear drops all stored events and persists the empty list.
func (s *Store) Clear() error {
	s.events = nil
	return s.flush()
}

func (s *Store) flush() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "hearing: create store directory")
		}
	}

	data, err := json.MarshalIndent(s.events, "", "  ")
	if err != nil {
		return eris.Wrap(err, "hearing: marshal store")
	}
	if s.events == nil {
		data = []byte("[]")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return eris.Wrap(err, "hearing: write store")
	}
	return nil
}

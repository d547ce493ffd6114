// internal/history/store.go
//
// Durable log of past days, one Entry per UTC day.
// Responsibilities:
//   - Load the log through a Port, dropping what cannot be trusted.
//   - Read it without writing, for views that only report on the past.
//   - Upsert the current day's entry (idempotent by day key).
//   - Save the full log back, oldest first.
//
// Notes:
//   - Missing or unparsable data is treated as an empty log; the next Save
//     overwrites it.
//   - The Store is owned by a single game session and is not safe for
//     concurrent use on its own.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// StorageKey is the key the log is persisted under.
const StorageKey = "game_history"

// Port reads and writes raw values by key.
// Get returns nil data and a nil error when the key does not exist.
type Port interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store holds the history log in memory and persists it through a Port.
type Store struct {
	port    Port
	entries []Entry
}

// NewStore returns an empty Store backed by port.
func NewStore(port Port) *Store {
	return &Store{port: port}
}

// Read replaces the in-memory log with the persisted one. It never writes.
func (s *Store) Read(ctx context.Context) error {
	data, err := s.port.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	s.entries = decode(data)
	return nil
}

// Load reads the persisted log. If it has no entry for today's day key,
// today is appended and the log is saved. The stored entry for today is
// returned.
func (s *Store) Load(ctx context.Context, today Entry) (Entry, error) {
	if err := s.Read(ctx); err != nil {
		return Entry{}, err
	}

	if e, ok := s.Find(today.DayTimestamp); ok {
		return e, nil
	}
	s.UpsertToday(today)
	if err := s.Save(ctx); err != nil {
		return today, err
	}
	return today, nil
}

// Find returns the entry for a day key.
func (s *Store) Find(dayKey int64) (Entry, bool) {
	if i := s.index(dayKey); i >= 0 {
		return s.entries[i], true
	}
	return Entry{}, false
}

// UpsertToday replaces the entry with the same day key or appends it.
func (s *Store) UpsertToday(e Entry) {
	if i := s.index(e.DayTimestamp); i >= 0 {
		s.entries[i] = e
		return
	}
	s.entries = append(s.entries, e)
}

// Save writes the whole log through the port.
func (s *Store) Save(ctx context.Context) error {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.port.Put(ctx, StorageKey, b); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Entries returns a copy of the log, oldest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) index(dayKey int64) int {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].DayTimestamp == dayKey {
			return i
		}
	}
	return -1
}

// decode parses persisted data leniently: bad JSON yields an empty log,
// invalid entries are skipped, later duplicates of a day win, and the
// result is sorted oldest first.
func decode(data []byte) []Entry {
	if len(data) == 0 {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Msg("history unreadable, starting fresh")
		return nil
	}

	byDay := make(map[int64]int, len(raw))
	out := make([]Entry, 0, len(raw))
	for i, r := range raw {
		var e Entry
		if err := json.Unmarshal(r, &e); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skip malformed history entry")
			continue
		}
		if err := e.Validate(); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skip invalid history entry")
			continue
		}
		if j, ok := byDay[e.DayTimestamp]; ok {
			out[j] = e
			continue
		}
		byDay[e.DayTimestamp] = len(out)
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DayTimestamp < out[j].DayTimestamp
	})
	return out
}

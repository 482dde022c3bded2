package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemoryJournal struct {
	mu      sync.RWMutex
	entries []Entry
	byID    map[string]Entry
}

// NewInMemory creates a concurrency-safe in-memory journal, used when no
// database is configured and in unit tests.
func NewInMemory() Journal {
	return &inMemoryJournal{byID: make(map[string]Entry)}
}

func (j *inMemoryJournal) Record(_ context.Context, entry Entry) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	j.entries = append(j.entries, entry)
	j.byID[entry.ID] = entry
	return entry, nil
}

func (j *inMemoryJournal) Get(_ context.Context, id string) (Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	entry, ok := j.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (j *inMemoryJournal) List(_ context.Context, limit int) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if limit <= 0 || limit > len(j.entries) {
		limit = len(j.entries)
	}

	// Newest first.
	out := make([]Entry, 0, limit)
	for i := len(j.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.entries[i])
	}
	return out, nil
}

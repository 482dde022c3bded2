package journal

import "context"

// SeedEntries is a test helper that preloads entries into an in-memory
// journal.
func SeedEntries(j Journal, entries ...Entry) {
	if mem, ok := j.(*inMemoryJournal); ok {
		for _, e := range entries {
			_, _ = mem.Record(context.Background(), e)
		}
	}
}

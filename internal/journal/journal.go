package journal

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested journal entry does not exist.
var ErrNotFound = errors.New("journal: entry not found")

const (
	// StatusConfirmed marks an operation the bank acknowledged after OTP
	// confirmation.
	StatusConfirmed = "confirmed"
	// StatusRejected marks an operation the bank refused at OTP
	// confirmation.
	StatusRejected = "rejected"
)

// Entry is the audit record of one completed sensitive operation.
type Entry struct {
	ID         string
	Action     string
	Reference  string
	Label      string
	Amount     float64
	Status     string
	RecordedAt time.Time
}

// Journal defines the contract implemented by journal backends (e.g.
// Postgres).
type Journal interface {
	Record(ctx context.Context, entry Entry) (Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
}

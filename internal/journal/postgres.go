package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresJournal persists operation records in PostgreSQL.
type PostgresJournal struct {
	db *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed journal.
func NewPostgres(db *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{db: db}
}

// Record inserts the entry, assigning an id and timestamp when absent.
func (j *PostgresJournal) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	const query = `INSERT INTO operations (id, action, reference, label, amount, status, recorded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := j.db.Exec(ctx, query,
		entry.ID, entry.Action, entry.Reference, entry.Label, entry.Amount, entry.Status, entry.RecordedAt)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Get fetches one entry by id.
func (j *PostgresJournal) Get(ctx context.Context, id string) (Entry, error) {
	const query = `SELECT id, action, reference, label, amount, status, recorded_at
        FROM operations WHERE id = $1`
	var entry Entry
	err := j.db.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.Action, &entry.Reference, &entry.Label, &entry.Amount, &entry.Status, &entry.RecordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

// List returns the most recent entries, newest first.
func (j *PostgresJournal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, action, reference, label, amount, status, recorded_at
        FROM operations ORDER BY recorded_at DESC LIMIT $1`
	rows, err := j.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Reference, &entry.Label, &entry.Amount, &entry.Status, &entry.RecordedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

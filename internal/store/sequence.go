package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
)

// sequenceCounter hands out one increasing sequence shared by every event
// table, so events of different types can be ordered against each other.
// It resumes after the highest sequence already stored.
type sequenceCounter struct {
	mu   sync.Mutex
	next int64
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = "SELECT MAX(sequence) AS s FROM " + t.name
	}
	query := "SELECT COALESCE(MAX(s), 0) FROM (" + strings.Join(parts, " UNION ALL ") + ")"

	var last int64
	if err := db.QueryRow(query).Scan(&last); err != nil {
		return nil, fmt.Errorf("resume sequence: %w", err)
	}
	return &sequenceCounter{next: last + 1}, nil
}

// Next returns the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	seq := sc.next
	sc.next++
	return seq, nil
}

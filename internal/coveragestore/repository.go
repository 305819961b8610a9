// Package coveragestore keeps a history of generation runs so coverage can
// be compared across game-data updates. Two backends exist: an in-memory
// store for tests and one-off runs, and a Bun/SQLite store for persistence.
package coveragestore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrRecordNotFound indicates the requested run record does not exist.
var ErrRecordNotFound = errors.New("coveragestore: record not found")

// Record captures the coverage outcome of one generation run.
type Record struct {
	ID             uuid.UUID
	Label          string
	Locale         string
	Files          int
	FilesFallback  int
	WordsTotal     int
	WordsCopied    int
	WordsFallback  int
	StructureClean bool
	StartedAt      time.Time
	FinishedAt     time.Time
}

// FallbackRatio returns the fraction of words that fell back to template
// text, zero when the run copied nothing.
func (r Record) FallbackRatio() float64 {
	if r.WordsTotal == 0 {
		return 0
	}
	return float64(r.WordsFallback) / float64(r.WordsTotal)
}

// Repository persists run coverage records.
type Repository interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	Recent(ctx context.Context, limit int) ([]Record, error)
}

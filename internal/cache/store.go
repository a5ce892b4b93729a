package cache

import (
	"context"
	"homework-assist/internal/scrapers/lms"
	"time"

	_ "embed"
)

//go:embed schema.sql
var Schema string

// Entry is the last successfully extracted assignment list.
type Entry struct {
	Assignments []lms.Assignment
	CapturedAt  time.Time
}

// Store persists a single Entry. Every Set replaces the previous one.
type Store interface {
	// Get returns the current entry, ok is false when nothing has been
	// stored yet (or the store was cleared).
	Get(ctx context.Context) (entry Entry, ok bool, err error)
	Set(ctx context.Context, entry Entry) error
	Clear(ctx context.Context) error
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

func fromEpochSeconds(seconds float64) time.Time {
	return time.UnixMilli(int64(seconds*1000 + 0.5))
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"sterkbouw_quotes/internal/usecase/interfaces"
)

// Period is the (year, month) partition quote numbers are sequential within.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the numbering period a timestamp falls in, in UTC.
func PeriodOf(t time.Time) Period {
	u := t.UTC()
	return Period{Year: u.Year(), Month: u.Month()}
}

// Key is the counter partition key, e.g. "202608".
func (p Period) Key() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

// QuoteNumberAllocator produces quote numbers of the form MW-<YYYY><MM>-<NNN>
// with a zero-padded sequence that resets each month.
//
// Uniqueness rests entirely on the sequence repository's atomic increment;
// the allocator itself holds no state, so any number of instances can
// allocate concurrently.
type QuoteNumberAllocator struct {
	seq interfaces.IQuoteSequenceRepository
}

func NewQuoteNumberAllocator(seq interfaces.IQuoteSequenceRepository) *QuoteNumberAllocator {
	return &QuoteNumberAllocator{seq: seq}
}

// Allocate returns the next quote number for the period. When the backing
// store is unavailable it fails with ErrAllocationFailed; the caller must not
// create a quote without an allocated number.
func (a *QuoteNumberAllocator) Allocate(ctx context.Context, period Period) (string, error) {
	n, err := a.seq.NextSequence(ctx, period.Key())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}
	return fmt.Sprintf("MW-%s-%03d", period.Key(), n), nil
}

package interfaces

import "context"

// IQuoteSequenceRepository hands out per-period sequence numbers for quote
// numbering.
//
// NextSequence must be atomic across arbitrary concurrent callers and server
// instances: two calls for the same period key must never observe the same
// value. A read-then-write implementation is not acceptable; the DynamoDB
// implementation uses an ADD update on a counter item.
type IQuoteSequenceRepository interface {
	NextSequence(ctx context.Context, periodKey string) (int, error)
}

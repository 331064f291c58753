package interfaces

import (
	"context"
	"errors"

	"sterkbouw_quotes/internal/domain/entities"
)

var (
	// ErrStatusConflict is returned by UpdateStatus when the stored status no
	// longer matches the expected prior status. The accompanying quote value
	// carries the status actually found.
	ErrStatusConflict = errors.New("quote status precondition failed")

	// ErrDuplicateQuote is returned by Insert when a quote with the same
	// number already exists.
	ErrDuplicateQuote = errors.New("quote already exists")
)

// QuotePatch is the set of attributes a status transition may change besides
// the status itself. Nil fields are left untouched.
type QuotePatch struct {
	Status      entities.QuoteStatus
	DocumentURL *string
	Approval    *entities.ApprovalRecord
}

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// UpdateStatus must be a single conditional write keyed on (id, expected
// status) so that two concurrent transitions on the same quote can never both
// succeed. Reads return the zero value when nothing is found.
type IQuoteRepository interface {
	Insert(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	GetByWorkRequestID(ctx context.Context, workRequestID string) (entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, expected entities.QuoteStatus, patch QuotePatch) (entities.Quote, error)
	RecordApproval(ctx context.Context, rec entities.ApprovalRecord) error
}

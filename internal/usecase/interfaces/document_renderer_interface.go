package interfaces

import (
	"context"

	"sterkbouw_quotes/internal/domain/entities"
)

// IDocumentRenderer turns a quote into a client-facing document and returns
// its URL. Implementations must bound the call with a timeout; a timeout is
// reported as an ordinary rendering failure.
type IDocumentRenderer interface {
	Render(ctx context.Context, quote entities.Quote) (string, error)
}

package interfaces

import (
	"context"

	"sterkbouw_quotes/internal/domain/entities"
)

// IAuditRecorder appends compliance events. The store is append-only; a
// failed append degrades the operation (surfaced as a warning) but does not
// undo it.
type IAuditRecorder interface {
	Record(ctx context.Context, event entities.AuditEvent) error
}

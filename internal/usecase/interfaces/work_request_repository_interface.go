package interfaces

import (
	"context"

	"sterkbouw_quotes/internal/domain/entities"
)

// IWorkRequestRepository reads work requests and advances their status once
// the attached quote is approved. GetByID returns the zero value when the
// request does not exist.
type IWorkRequestRepository interface {
	GetByID(ctx context.Context, id string) (entities.WorkRequest, error)
	UpdateStatus(ctx context.Context, id string, status entities.WorkRequestStatus) (entities.WorkRequest, error)
}

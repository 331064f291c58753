package interfaces

import (
	"context"

	"sterkbouw_quotes/internal/domain/entities"
)

// INotificationDispatcher delivers quote events to clients and internal
// stakeholders. Delivery is best-effort: callers log failures and move on,
// they never roll back a persisted transition because of one.
type INotificationDispatcher interface {
	Send(ctx context.Context, event entities.NotificationEvent, recipient string, payload map[string]string) error
}

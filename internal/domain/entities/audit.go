package entities

import "time"

// AuditEventType enumerates the compliance events emitted by quote
// transitions.
type AuditEventType string

const (
	AuditQuoteCreated      AuditEventType = "QUOTE_CREATED"
	AuditQuotePDFGenerated AuditEventType = "QUOTE_PDF_GENERATED"
	AuditQuotePDFFailed    AuditEventType = "QUOTE_PDF_FAILED"
	AuditQuoteApproved     AuditEventType = "QUOTE_APPROVED"
)

// ActorType identifies who triggered an audited action.
type ActorType string

const (
	ActorTypeUser   ActorType = "user"
	ActorTypeClient ActorType = "client"
	ActorTypeSystem ActorType = "system"
)

// AuditEvent is an append-only, immutable record of a state-changing event.
// Metadata never carries raw signatures, only their digest.
type AuditEvent struct {
	ID         string            `json:"id"`
	Type       AuditEventType    `json:"type"`
	ActorType  ActorType         `json:"actor_type"`
	ActorID    string            `json:"actor_id"`
	TargetType string            `json:"target_type"`
	TargetID   string            `json:"target_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NotificationEvent enumerates outbound notification kinds. Delivery is
// fire-and-forget; a failed send never fails the operation that produced it.
type NotificationEvent string

const (
	NotificationQuoteReady    NotificationEvent = "QUOTE_READY"
	NotificationQuoteApproved NotificationEvent = "QUOTE_APPROVED"
)

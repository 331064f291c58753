package entities

import "time"

// WorkRequestStatus mirrors the part of the work-request lifecycle this
// service owns: a request gains quote_approved once its quote is approved.
type WorkRequestStatus string

const (
	WorkRequestStatusOpen          WorkRequestStatus = "open"
	WorkRequestStatusQuoteApproved WorkRequestStatus = "quote_approved"
)

// MaterialInput is a requested material on a work request. UnitPrice may be
// absent when the requester has no price yet; costing treats a missing price
// as zero, not as an error.
type MaterialInput struct {
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
}

// WorkRequest is the immutable extra-work request a quote is produced for.
// It is created upstream; this service only reads it and, on approval of its
// quote, advances its status.
type WorkRequest struct {
	ID            string            `json:"id"`
	ProjectID     string            `json:"project_id"`
	Description   string            `json:"description"`
	ClientContact string            `json:"client_contact"`
	Status        WorkRequestStatus `json:"status"`
	LaborHours    float64           `json:"labor_hours"`
	Materials     []MaterialInput   `json:"materials"`
	CreatedAt     time.Time         `json:"created_at"`
}

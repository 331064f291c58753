package entities

import "time"

// QuoteStatus represents the lifecycle of an extra-work quote (meerwerkofferte).
//
// Domain notes:
//   - The quote-service is the source of truth for quote state.
//   - Status only ever changes through the lifecycle use case; repositories
//     enforce the expected prior status with a conditional write.

type QuoteStatus string

const (
	QuoteStatusDraft            QuoteStatus = "draft"
	QuoteStatusReadyForReview   QuoteStatus = "ready_for_review"
	QuoteStatusApprovedByClient QuoteStatus = "approved_by_client"
	QuoteStatusGenerationFailed QuoteStatus = "generation_failed"
	QuoteStatusExpired          QuoteStatus = "expired"
)

// quoteTransitions is the closed set of legal status edges.
// generation_failed is recoverable: a rendering retry moves it forward again.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:            {QuoteStatusReadyForReview, QuoteStatusGenerationFailed},
	QuoteStatusReadyForReview:   {QuoteStatusApprovedByClient, QuoteStatusExpired},
	QuoteStatusGenerationFailed: {QuoteStatusReadyForReview, QuoteStatusGenerationFailed},
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no forward edge leaves s. generation_failed is
// terminal for the quote document but recoverable through a rendering retry.
func (s QuoteStatus) Terminal() bool {
	return len(quoteTransitions[s]) == 0
}

// LineKind distinguishes material and labor quote lines.
type LineKind string

const (
	LineKindMaterial LineKind = "material"
	LineKindLabor    LineKind = "labor"
)

// QuoteLine is a single priced line on a quote. For material lines Quantity
// and UnitPrice are the requested amount and unit price; for labor lines they
// carry hours and the hourly rate.
type QuoteLine struct {
	Kind        LineKind `json:"kind"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	LineTotal   float64  `json:"line_total"`
}

// ApprovalRecord captures the act of a client approving a quote. It is
// write-once and keeps only a one-way digest of the signature, never the raw
// signature bytes.
type ApprovalRecord struct {
	QuoteID         string    `json:"quote_id"`
	ApproverName    string    `json:"approver_name"`
	ApprovedAt      time.Time `json:"approved_at"`
	OriginAddress   string    `json:"origin_address"`
	SignatureDigest string    `json:"signature_digest"`
}

// Quote is the priced, numbered offer persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id (the quote number, e.g. MW-202608-001)
//   - GSI1 (work_request_id-index): work_request_id
//
// Monetary representation:
//   - Amounts are rounded to two decimals at calculation time and hold
//     Total = Subtotal + VATAmount exactly at that precision.
type Quote struct {
	ID            string      `json:"id"`
	WorkRequestID string      `json:"work_request_id"`
	ProjectID     string      `json:"project_id"`
	ClientContact string      `json:"client_contact"`
	Status        QuoteStatus `json:"status"`
	Currency      string      `json:"currency"`

	Lines     []QuoteLine `json:"lines"`
	Subtotal  float64     `json:"subtotal"`
	VATRate   float64     `json:"vat_rate"`
	VATAmount float64     `json:"vat_amount"`
	Total     float64     `json:"total"`

	ValidUntil  time.Time `json:"valid_until"`
	DocumentURL string    `json:"document_url,omitempty"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Approval is set exactly once, when the quote reaches approved_by_client.
	Approval *ApprovalRecord `json:"approval,omitempty"`
}

// PastValidity reports whether the validity window has closed. ValidUntil is
// fixed at creation and never recomputed.
func (q Quote) PastValidity(now time.Time) bool {
	return now.After(q.ValidUntil)
}

package response

import (
	"time"

	"sterkbouw_quotes/internal/domain/entities"
	"sterkbouw_quotes/internal/usecase"
)

type QuoteLineResponse struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type ApprovalResponse struct {
	ApproverName    string    `json:"approver_name"`
	ApprovedAt      time.Time `json:"approved_at"`
	OriginAddress   string    `json:"origin_address"`
	SignatureDigest string    `json:"signature_digest"`
}

type QuoteResponse struct {
	ID            string              `json:"id"`
	WorkRequestID string              `json:"work_request_id"`
	ProjectID     string              `json:"project_id"`
	Status        string              `json:"status"`
	Currency      string              `json:"currency"`
	Lines         []QuoteLineResponse `json:"lines"`
	Subtotal      float64             `json:"subtotal"`
	VATRate       float64             `json:"vat_rate"`
	VATAmount     float64             `json:"vat_amount"`
	Total         float64             `json:"total"`
	ValidUntil    time.Time           `json:"valid_until"`
	DocumentURL   string              `json:"document_url,omitempty"`
	CreatedBy     string              `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Approval      *ApprovalResponse   `json:"approval,omitempty"`

	// Warnings report degraded audit or notification delivery; the quote
	// state itself is exactly what Status says.
	Warnings []string `json:"warnings,omitempty"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuoteLineResponse{
			Kind:        string(l.Kind),
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}

	resp := QuoteResponse{
		ID:            q.ID,
		WorkRequestID: q.WorkRequestID,
		ProjectID:     q.ProjectID,
		Status:        string(q.Status),
		Currency:      q.Currency,
		Lines:         lines,
		Subtotal:      q.Subtotal,
		VATRate:       q.VATRate,
		VATAmount:     q.VATAmount,
		Total:         q.Total,
		ValidUntil:    q.ValidUntil,
		DocumentURL:   q.DocumentURL,
		CreatedBy:     q.CreatedBy,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.Approval != nil {
		resp.Approval = &ApprovalResponse{
			ApproverName:    q.Approval.ApproverName,
			ApprovedAt:      q.Approval.ApprovedAt,
			OriginAddress:   q.Approval.OriginAddress,
			SignatureDigest: q.Approval.SignatureDigest,
		}
	}
	return resp
}

func FromResult(res usecase.QuoteResult) QuoteResponse {
	resp := FromQuote(res.Quote)
	resp.Warnings = res.Warnings
	return resp
}

package request

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidSignature = errors.New("invalid signature encoding")

// CreateQuoteRequest asks for a quote to be produced for a work request.
type CreateQuoteRequest struct {
	WorkRequestID string `json:"work_request_id" binding:"required"`
	CreatedBy     string `json:"created_by" binding:"required"`
}

func (r CreateQuoteRequest) ResolveWorkRequestID() string {
	return strings.TrimSpace(r.WorkRequestID)
}

func (r CreateQuoteRequest) ResolveCreatedBy() string {
	return strings.TrimSpace(r.CreatedBy)
}

// ApproveQuoteRequest is the client approval payload. The signature is
// base64-encoded; only its digest is ever stored.
type ApproveQuoteRequest struct {
	ApproverName string `json:"approver_name" binding:"required"`
	Signature    string `json:"signature" binding:"required"`
}

func (r ApproveQuoteRequest) ResolveApproverName() string {
	return strings.TrimSpace(r.ApproverName)
}

func (r ApproveQuoteRequest) ResolveSignature() ([]byte, error) {
	raw := strings.TrimSpace(r.Signature)
	if raw == "" {
		return nil, ErrInvalidSignature
	}
	sig, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if len(sig) == 0 {
		return nil, ErrInvalidSignature
	}
	return sig, nil
}

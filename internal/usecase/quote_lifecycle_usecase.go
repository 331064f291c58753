package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"sterkbouw_quotes/internal/domain/entities"
	"sterkbouw_quotes/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuotePolicy carries the configured pricing and validity parameters fixed
// onto each quote at creation time.
type QuotePolicy struct {
	VATRate      float64
	HourlyRate   float64
	ValidityDays int
	Currency     string
}

// ApprovalInput is the client approval action for a quote.
type ApprovalInput struct {
	ApproverName  string
	OriginAddress string
	Signature     []byte
}

// QuoteResult is the outcome of a state-changing operation. Warnings report
// non-fatal collaborator failures (audit append, notification, work-request
// update) that happened after the transition was durably persisted; they
// never mean the transition itself failed.
type QuoteResult struct {
	Quote    entities.Quote
	Warnings []string
}

// IQuoteLifecycleUseCase exposes the quote lifecycle operations.
//
//   - CreateQuote: price a work request, allocate a number, persist a draft.
//   - RequestRendering: produce the client document, draft -> ready_for_review
//     (or generation_failed, from which a retry is allowed).
//   - ApproveQuote: client approval, ready_for_review -> approved_by_client.
//   - Reads apply lazy expiry: a ready_for_review quote past its validity is
//     downgraded to expired on access.

type IQuoteLifecycleUseCase interface {
	CreateQuote(ctx context.Context, workRequestID, userID string) (QuoteResult, error)
	RequestRendering(ctx context.Context, quoteID string) (QuoteResult, error)
	ApproveQuote(ctx context.Context, quoteID string, approval ApprovalInput) (QuoteResult, error)
	GetByID(ctx context.Context, quoteID string) (entities.Quote, error)
	GetByWorkRequestID(ctx context.Context, workRequestID string) (entities.Quote, error)
}

type QuoteLifecycleUseCase struct {
	quotes       interfaces.IQuoteRepository
	workRequests interfaces.IWorkRequestRepository
	allocator    *QuoteNumberAllocator
	renderer     interfaces.IDocumentRenderer
	notifier     interfaces.INotificationDispatcher
	audit        interfaces.IAuditRecorder
	policy       QuotePolicy
	internalTo   string // recipient for internal stakeholder notifications
	logger       *zap.Logger
	now          func() time.Time
}

var _ IQuoteLifecycleUseCase = (*QuoteLifecycleUseCase)(nil)

func NewQuoteLifecycleUseCase(
	quotes interfaces.IQuoteRepository,
	workRequests interfaces.IWorkRequestRepository,
	allocator *QuoteNumberAllocator,
	renderer interfaces.IDocumentRenderer,
	notifier interfaces.INotificationDispatcher,
	audit interfaces.IAuditRecorder,
	policy QuotePolicy,
	internalRecipient string,
	logger *zap.Logger,
) *QuoteLifecycleUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteLifecycleUseCase{
		quotes:       quotes,
		workRequests: workRequests,
		allocator:    allocator,
		renderer:     renderer,
		notifier:     notifier,
		audit:        audit,
		policy:       policy,
		internalTo:   internalRecipient,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the time source. Tests use it to drive validity windows.
func (u *QuoteLifecycleUseCase) WithClock(now func() time.Time) *QuoteLifecycleUseCase {
	u.now = now
	return u
}

func (u *QuoteLifecycleUseCase) CreateQuote(ctx context.Context, workRequestID, userID string) (QuoteResult, error) {
	workRequestID = strings.TrimSpace(workRequestID)
	if workRequestID == "" {
		return QuoteResult{}, ErrInvalidWorkRequestID
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return QuoteResult{}, ErrInvalidUserID
	}

	wr, err := u.workRequests.GetByID(ctx, workRequestID)
	if err != nil {
		return QuoteResult{}, err
	}
	if wr.ID == "" {
		return QuoteResult{}, ErrWorkRequestNotFound
	}

	// One quote per work request.
	if existing, err := u.quotes.GetByWorkRequestID(ctx, workRequestID); err != nil {
		return QuoteResult{}, err
	} else if existing.ID != "" {
		return QuoteResult{}, ErrQuoteAlreadyExists
	}

	breakdown, err := ComputeQuoteCost(CostInput{
		Materials:  wr.Materials,
		LaborHours: wr.LaborHours,
		HourlyRate: u.policy.HourlyRate,
		VATRate:    u.policy.VATRate,
	})
	if err != nil {
		return QuoteResult{}, err
	}

	now := u.now().UTC()
	number, err := u.allocator.Allocate(ctx, PeriodOf(now))
	if err != nil {
		return QuoteResult{}, err
	}

	q := entities.Quote{
		ID:            number,
		WorkRequestID: wr.ID,
		ProjectID:     wr.ProjectID,
		ClientContact: wr.ClientContact,
		Status:        entities.QuoteStatusDraft,
		Currency:      u.policy.Currency,
		Lines:         breakdown.Lines,
		Subtotal:      breakdown.Subtotal,
		VATRate:       u.policy.VATRate,
		VATAmount:     breakdown.VATAmount,
		Total:         breakdown.Total,
		ValidUntil:    now.AddDate(0, 0, u.policy.ValidityDays),
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.quotes.Insert(ctx, q)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateQuote) {
			return QuoteResult{}, ErrQuoteAlreadyExists
		}
		return QuoteResult{}, err
	}

	res := QuoteResult{Quote: created}
	u.recordAudit(ctx, &res, entities.AuditEvent{
		Type:      entities.AuditQuoteCreated,
		ActorType: entities.ActorTypeUser,
		ActorID:   userID,
		TargetID:  created.ID,
		Metadata: map[string]string{
			"work_request_id": wr.ID,
			"total":           fmt.Sprintf("%.2f", created.Total),
			"currency":        created.Currency,
		},
	})

	u.logger.Info("quote created",
		zap.String("quote_id", created.ID),
		zap.String("work_request_id", wr.ID),
		zap.Float64("total", created.Total))
	return res, nil
}

func (u *QuoteLifecycleUseCase) RequestRendering(ctx context.Context, quoteID string) (QuoteResult, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return QuoteResult{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return QuoteResult{}, err
	}
	if q.ID == "" {
		return QuoteResult{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusDraft && q.Status != entities.QuoteStatusGenerationFailed {
		return QuoteResult{}, newStateConflict(q.ID, q.Status,
			entities.QuoteStatusDraft, entities.QuoteStatusGenerationFailed)
	}
	observed := q.Status

	docURL, renderErr := u.renderer.Render(ctx, q)
	if renderErr != nil {
		// The failure state must be persisted before anything is reported
		// back, notification included.
		failed, uerr := u.quotes.UpdateStatus(ctx, q.ID, observed, interfaces.QuotePatch{
			Status: entities.QuoteStatusGenerationFailed,
		})
		if uerr != nil {
			if errors.Is(uerr, interfaces.ErrStatusConflict) {
				return QuoteResult{}, newStateConflict(q.ID, failed.Status, observed)
			}
			return QuoteResult{}, uerr
		}

		res := QuoteResult{Quote: failed}
		u.recordAudit(ctx, &res, entities.AuditEvent{
			Type:      entities.AuditQuotePDFFailed,
			ActorType: entities.ActorTypeSystem,
			TargetID:  q.ID,
			Metadata:  map[string]string{"error": renderErr.Error()},
		})

		u.logger.Warn("quote rendering failed",
			zap.String("quote_id", q.ID),
			zap.Error(renderErr))
		return res, fmt.Errorf("%w: %v", ErrRenderingFailed, renderErr)
	}

	updated, err := u.quotes.UpdateStatus(ctx, q.ID, observed, interfaces.QuotePatch{
		Status:      entities.QuoteStatusReadyForReview,
		DocumentURL: &docURL,
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			return QuoteResult{}, newStateConflict(q.ID, updated.Status, observed)
		}
		return QuoteResult{}, err
	}

	res := QuoteResult{Quote: updated}
	u.recordAudit(ctx, &res, entities.AuditEvent{
		Type:      entities.AuditQuotePDFGenerated,
		ActorType: entities.ActorTypeSystem,
		TargetID:  q.ID,
		Metadata:  map[string]string{"document_url": docURL},
	})
	u.notify(ctx, &res, entities.NotificationQuoteReady, updated.ClientContact, map[string]string{
		"quote_id":     updated.ID,
		"document_url": docURL,
		"valid_until":  updated.ValidUntil.Format(time.RFC3339),
	})

	u.logger.Info("quote document generated",
		zap.String("quote_id", updated.ID),
		zap.String("document_url", docURL))
	return res, nil
}

func (u *QuoteLifecycleUseCase) ApproveQuote(ctx context.Context, quoteID string, approval ApprovalInput) (QuoteResult, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return QuoteResult{}, ErrInvalidQuoteID
	}
	approval.ApproverName = strings.TrimSpace(approval.ApproverName)
	if approval.ApproverName == "" || len(approval.Signature) == 0 {
		return QuoteResult{}, ErrInvalidApproval
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return QuoteResult{}, err
	}
	if q.ID == "" {
		return QuoteResult{}, ErrQuoteNotFound
	}

	now := u.now().UTC()
	if q.Status == entities.QuoteStatusExpired {
		return QuoteResult{}, ErrQuoteExpired
	}
	if q.Status == entities.QuoteStatusReadyForReview && q.PastValidity(now) {
		u.expireLazily(ctx, q)
		return QuoteResult{}, ErrQuoteExpired
	}
	if q.Status != entities.QuoteStatusReadyForReview {
		return QuoteResult{}, newStateConflict(q.ID, q.Status, entities.QuoteStatusReadyForReview)
	}

	digest := sha256.Sum256(approval.Signature)
	record := entities.ApprovalRecord{
		QuoteID:         q.ID,
		ApproverName:    approval.ApproverName,
		ApprovedAt:      now,
		OriginAddress:   approval.OriginAddress,
		SignatureDigest: hex.EncodeToString(digest[:]),
	}

	updated, err := u.quotes.UpdateStatus(ctx, q.ID, entities.QuoteStatusReadyForReview, interfaces.QuotePatch{
		Status:   entities.QuoteStatusApprovedByClient,
		Approval: &record,
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			if updated.Status == entities.QuoteStatusExpired {
				return QuoteResult{}, ErrQuoteExpired
			}
			return QuoteResult{}, newStateConflict(q.ID, updated.Status, entities.QuoteStatusReadyForReview)
		}
		return QuoteResult{}, err
	}

	// The transition is durable from here on; everything below is reported as
	// a warning, never as a failure of the approval itself.
	res := QuoteResult{Quote: updated}

	if err := u.quotes.RecordApproval(ctx, record); err != nil {
		u.warn(&res, "approval record write failed", err)
	}
	if _, err := u.workRequests.UpdateStatus(ctx, updated.WorkRequestID, entities.WorkRequestStatusQuoteApproved); err != nil {
		u.warn(&res, "work request status update failed", err)
	}
	u.recordAudit(ctx, &res, entities.AuditEvent{
		Type:      entities.AuditQuoteApproved,
		ActorType: entities.ActorTypeClient,
		ActorID:   record.ApproverName,
		TargetID:  updated.ID,
		Metadata: map[string]string{
			"origin_address":   record.OriginAddress,
			"signature_digest": record.SignatureDigest,
		},
	})
	u.notify(ctx, &res, entities.NotificationQuoteApproved, u.internalTo, map[string]string{
		"quote_id":        updated.ID,
		"work_request_id": updated.WorkRequestID,
		"approver":        record.ApproverName,
	})

	u.logger.Info("quote approved",
		zap.String("quote_id", updated.ID),
		zap.String("approver", record.ApproverName))
	return res, nil
}

func (u *QuoteLifecycleUseCase) GetByID(ctx context.Context, quoteID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return u.applyLazyExpiry(ctx, q), nil
}

func (u *QuoteLifecycleUseCase) GetByWorkRequestID(ctx context.Context, workRequestID string) (entities.Quote, error) {
	workRequestID = strings.TrimSpace(workRequestID)
	if workRequestID == "" {
		return entities.Quote{}, ErrInvalidWorkRequestID
	}

	q, err := u.quotes.GetByWorkRequestID(ctx, workRequestID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return u.applyLazyExpiry(ctx, q), nil
}

// applyLazyExpiry downgrades a ready_for_review quote whose validity window
// has closed. Expiry is evaluated on access; there is no background sweep.
func (u *QuoteLifecycleUseCase) applyLazyExpiry(ctx context.Context, q entities.Quote) entities.Quote {
	if q.Status != entities.QuoteStatusReadyForReview || !q.PastValidity(u.now().UTC()) {
		return q
	}
	if expired := u.expireLazily(ctx, q); expired.ID != "" {
		return expired
	}
	return q
}

func (u *QuoteLifecycleUseCase) expireLazily(ctx context.Context, q entities.Quote) entities.Quote {
	expired, err := u.quotes.UpdateStatus(ctx, q.ID, entities.QuoteStatusReadyForReview, interfaces.QuotePatch{
		Status: entities.QuoteStatusExpired,
	})
	if err != nil {
		// A conflict means someone else already moved the quote on; their
		// state wins either way.
		if !errors.Is(err, interfaces.ErrStatusConflict) {
			u.logger.Warn("lazy expiry write failed", zap.String("quote_id", q.ID), zap.Error(err))
			return entities.Quote{}
		}
		return expired
	}
	u.logger.Info("quote expired", zap.String("quote_id", q.ID))
	return expired
}

func (u *QuoteLifecycleUseCase) recordAudit(ctx context.Context, res *QuoteResult, event entities.AuditEvent) {
	event.ID = uuid.NewString()
	event.TargetType = "quote"
	event.CreatedAt = u.now().UTC()
	if err := u.audit.Record(ctx, event); err != nil {
		u.warn(res, fmt.Sprintf("audit append failed for %s", event.Type), err)
	}
}

func (u *QuoteLifecycleUseCase) notify(ctx context.Context, res *QuoteResult, event entities.NotificationEvent, recipient string, payload map[string]string) {
	if err := u.notifier.Send(ctx, event, recipient, payload); err != nil {
		u.warn(res, fmt.Sprintf("notification %s failed", event), err)
	}
}

func (u *QuoteLifecycleUseCase) warn(res *QuoteResult, msg string, err error) {
	res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", msg, err))
	u.logger.Warn(msg, zap.String("quote_id", res.Quote.ID), zap.Error(err))
}

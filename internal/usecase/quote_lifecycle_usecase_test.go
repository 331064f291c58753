package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"sterkbouw_quotes/internal/domain/entities"
	"sterkbouw_quotes/internal/usecase/interfaces"
	mock_interfaces "sterkbouw_quotes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)

type lifecycleMocks struct {
	quotes       *mock_interfaces.MockIQuoteRepository
	workRequests *mock_interfaces.MockIWorkRequestRepository
	seq          *mock_interfaces.MockIQuoteSequenceRepository
	renderer     *mock_interfaces.MockIDocumentRenderer
	notifier     *mock_interfaces.MockINotificationDispatcher
	audit        *mock_interfaces.MockIAuditRecorder
}

func newLifecycleUseCase(ctrl *gomock.Controller) (*QuoteLifecycleUseCase, *lifecycleMocks) {
	m := &lifecycleMocks{
		quotes:       mock_interfaces.NewMockIQuoteRepository(ctrl),
		workRequests: mock_interfaces.NewMockIWorkRequestRepository(ctrl),
		seq:          mock_interfaces.NewMockIQuoteSequenceRepository(ctrl),
		renderer:     mock_interfaces.NewMockIDocumentRenderer(ctrl),
		notifier:     mock_interfaces.NewMockINotificationDispatcher(ctrl),
		audit:        mock_interfaces.NewMockIAuditRecorder(ctrl),
	}
	policy := QuotePolicy{VATRate: 0.21, HourlyRate: 85, ValidityDays: 30, Currency: "EUR"}
	uc := NewQuoteLifecycleUseCase(
		m.quotes, m.workRequests, NewQuoteNumberAllocator(m.seq),
		m.renderer, m.notifier, m.audit,
		policy, "projectleiding@sterkbouw.example", nil,
	).WithClock(func() time.Time { return testNow })
	return uc, m
}

func testWorkRequest() entities.WorkRequest {
	return entities.WorkRequest{
		ID:            "wr-1",
		ProjectID:     "proj-1",
		Description:   "Extra wandcontactdozen",
		ClientContact: "klant@example.com",
		Status:        entities.WorkRequestStatusOpen,
		LaborHours:    3,
		Materials: []entities.MaterialInput{
			{Description: "Gipsplaten", Quantity: 2, UnitPrice: fptr(100)},
		},
	}
}

func testQuote(status entities.QuoteStatus) entities.Quote {
	return entities.Quote{
		ID:            "MW-202608-001",
		WorkRequestID: "wr-1",
		ProjectID:     "proj-1",
		ClientContact: "klant@example.com",
		Status:        status,
		Currency:      "EUR",
		Subtotal:      455,
		VATRate:       0.21,
		VATAmount:     95.55,
		Total:         550.55,
		ValidUntil:    testNow.AddDate(0, 0, 30),
		CreatedBy:     "user-1",
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
}

func TestQuoteLifecycleUseCase_CreateQuote(t *testing.T) {
	t.Run("invalid work request id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newLifecycleUseCase(ctrl)
		_, err := uc.CreateQuote(context.Background(), "   ", "user-1")
		if !errors.Is(err, ErrInvalidWorkRequestID) {
			t.Fatalf("expected ErrInvalidWorkRequestID, got %v", err)
		}
	})

	t.Run("invalid user id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newLifecycleUseCase(ctrl)
		_, err := uc.CreateQuote(context.Background(), "wr-1", " ")
		if !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("expected ErrInvalidUserID, got %v", err)
		}
	})

	t.Run("work request not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.workRequests.EXPECT().GetByID(gomock.Any(), "wr-1").Return(entities.WorkRequest{}, nil)

		_, err := uc.CreateQuote(context.Background(), "wr-1", "user-1")
		if !errors.Is(err, ErrWorkRequestNotFound) {
			t.Fatalf("expected ErrWorkRequestNotFound, got %v", err)
		}
	})

	t.Run("quote already exists for work request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.workRequests.EXPECT().GetByID(gomock.Any(), "wr-1").Return(testWorkRequest(), nil)
		m.quotes.EXPECT().GetByWorkRequestID(gomock.Any(), "wr-1").Return(testQuote(entities.QuoteStatusDraft), nil)

		_, err := uc.CreateQuote(context.Background(), "wr-1", "user-1")
		if !errors.Is(err, ErrQuoteAlreadyExists) {
			t.Fatalf("expected ErrQuoteAlreadyExists, got %v", err)
		}
	})

	t.Run("allocation failure stops creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.workRequests.EXPECT().GetByID(gomock.Any(), "wr-1").Return(testWorkRequest(), nil)
		m.quotes.EXPECT().GetByWorkRequestID(gomock.Any(), "wr-1").Return(entities.Quote{}, nil)
		m.seq.EXPECT().NextSequence(gomock.Any(), "202608").Return(0, errors.New("throttled"))

		_, err := uc.CreateQuote(context.Background(), "wr-1", "user-1")
		if !errors.Is(err, ErrAllocationFailed) {
			t.Fatalf("expected ErrAllocationFailed, got %v", err)
		}
	})

	t.Run("duplicate insert maps to already exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.workRequests.EXPECT().GetByID(gomock.Any(), "wr-1").Return(testWorkRequest(), nil)
		m.quotes.EXPECT().GetByWorkRequestID(gomock.Any(), "wr-1").Return(entities.Quote{}, nil)
		m.seq.EXPECT().NextSequence(gomock.Any(), "202608").Return(1, nil)
		m.quotes.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(entities.Quote{}, interfaces.ErrDuplicateQuote)

		_, err := uc.CreateQuote(context.Background(), "wr-1", "user-1")
		if !errors.Is(err, ErrQuoteAlreadyExists) {
			t.Fatalf("expected ErrQuoteAlreadyExists, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.workRequests.EXPECT().GetByID(gomock.Any(), "wr-1").Return(testWorkRequest(), nil)
		m.quotes.EXPECT().GetByWorkRequestID(gomock.Any(), "wr-1").Return(entities.Quote{}, nil)
		m.seq.EXPECT().NextSequence(gomock.Any(), "202608").Return(1, nil)
		m.quotes.EXPECT().Insert(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID != "MW-202608-001" {
					t.Fatalf("unexpected quote number: %s", q.ID)
				}
				if q.Status != entities.QuoteStatusDraft {
					t.Fatalf("expected draft, got %s", q.Status)
				}
				if q.Subtotal != 455 || q.VATAmount != 95.55 || q.Total != 550.55 {
					t.Fatalf("unexpected totals: %+v", q)
				}
				if q.Currency != "EUR" || q.CreatedBy != "user-1" {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if !q.ValidUntil.Equal(testNow.AddDate(0, 0, 30)) {
					t.Fatalf("unexpected validity: %v", q.ValidUntil)
				}
				return q, nil
			},
		)
		m.audit.EXPECT().Record(gomock.Any(), gomock.AssignableToTypeOf(entities.AuditEvent{})).DoAndReturn(
			func(_ context.Context, e entities.AuditEvent) error {
				if e.Type != entities.AuditQuoteCreated || e.ActorType != entities.ActorTypeUser {
					t.Fatalf("unexpected audit event: %+v", e)
				}
				if e.ID == "" || e.TargetID != "MW-202608-001" {
					t.Fatalf("unexpected audit event: %+v", e)
				}
				return nil
			},
		)

		res, err := uc.CreateQuote(context.Background(), " wr-1 ", " user-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Quote.ID != "MW-202608-001" {
			t.Fatalf("unexpected quote: %+v", res.Quote)
		}
		if len(res.Warnings) != 0 {
			t.Fatalf("expected no warnings, got %v", res.Warnings)
		}
	})

	t.Run("audit failure is a warning not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.workRequests.EXPECT().GetByID(gomock.Any(), "wr-1").Return(testWorkRequest(), nil)
		m.quotes.EXPECT().GetByWorkRequestID(gomock.Any(), "wr-1").Return(entities.Quote{}, nil)
		m.seq.EXPECT().NextSequence(gomock.Any(), "202608").Return(1, nil)
		m.quotes.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) { return q, nil },
		)
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("audit down"))

		res, err := uc.CreateQuote(context.Background(), "wr-1", "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Warnings) != 1 {
			t.Fatalf("expected one warning, got %v", res.Warnings)
		}
	})
}

func TestQuoteLifecycleUseCase_RequestRendering(t *testing.T) {
	t.Run("invalid quote id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newLifecycleUseCase(ctrl)
		_, err := uc.RequestRendering(context.Background(), "")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.quotes.EXPECT().GetByID(gomock.Any(), "MW-202608-001").Return(entities.Quote{}, nil)

		_, err := uc.RequestRendering(context.Background(), "MW-202608-001")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("wrong state is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.quotes.EXPECT().GetByID(gomock.Any(), "MW-202608-001").Return(testQuote(entities.QuoteStatusApprovedByClient), nil)

		_, err := uc.RequestRendering(context.Background(), "MW-202608-001")
		var conflict *StateConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected StateConflictError, got %v", err)
		}
		if conflict.Actual != entities.QuoteStatusApprovedByClient {
			t.Fatalf("unexpected conflict: %+v", conflict)
		}
	})

	t.Run("render failure is persisted before returning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusDraft)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)
		m.renderer.EXPECT().Render(gomock.Any(), q).Return("", errors.New("renderer timeout"))

		failed := q
		failed.Status = entities.QuoteStatusGenerationFailed
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusDraft, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.QuoteStatus, patch interfaces.QuotePatch) (entities.Quote, error) {
				if patch.Status != entities.QuoteStatusGenerationFailed {
					t.Fatalf("expected generation_failed patch, got %+v", patch)
				}
				if patch.DocumentURL != nil {
					t.Fatalf("failed rendering must not carry a document url")
				}
				return failed, nil
			},
		)
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEvent) error {
				if e.Type != entities.AuditQuotePDFFailed || e.ActorType != entities.ActorTypeSystem {
					t.Fatalf("unexpected audit event: %+v", e)
				}
				return nil
			},
		)
		// No notification on failure.

		res, err := uc.RequestRendering(context.Background(), q.ID)
		if !errors.Is(err, ErrRenderingFailed) {
			t.Fatalf("expected ErrRenderingFailed, got %v", err)
		}
		if res.Quote.Status != entities.QuoteStatusGenerationFailed {
			t.Fatalf("expected generation_failed, got %s", res.Quote.Status)
		}
	})

	t.Run("retry after failure succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusGenerationFailed)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)
		m.renderer.EXPECT().Render(gomock.Any(), q).Return("https://docs/q.pdf", nil)

		ready := q
		ready.Status = entities.QuoteStatusReadyForReview
		ready.DocumentURL = "https://docs/q.pdf"
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusGenerationFailed, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.QuoteStatus, patch interfaces.QuotePatch) (entities.Quote, error) {
				if patch.Status != entities.QuoteStatusReadyForReview {
					t.Fatalf("expected ready_for_review patch, got %+v", patch)
				}
				if patch.DocumentURL == nil || *patch.DocumentURL != "https://docs/q.pdf" {
					t.Fatalf("expected document url in patch, got %+v", patch)
				}
				return ready, nil
			},
		)
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEvent) error {
				if e.Type != entities.AuditQuotePDFGenerated {
					t.Fatalf("unexpected audit event: %+v", e)
				}
				return nil
			},
		)
		m.notifier.EXPECT().Send(gomock.Any(), entities.NotificationQuoteReady, "klant@example.com", gomock.Any()).Return(nil)

		res, err := uc.RequestRendering(context.Background(), q.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Quote.Status != entities.QuoteStatusReadyForReview || res.Quote.DocumentURL == "" {
			t.Fatalf("unexpected quote: %+v", res.Quote)
		}
	})

	t.Run("concurrent transition surfaces as conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusDraft)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)
		m.renderer.EXPECT().Render(gomock.Any(), q).Return("https://docs/q.pdf", nil)

		current := q
		current.Status = entities.QuoteStatusReadyForReview
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusDraft, gomock.Any()).
			Return(current, interfaces.ErrStatusConflict)

		_, err := uc.RequestRendering(context.Background(), q.ID)
		var conflict *StateConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected StateConflictError, got %v", err)
		}
	})

	t.Run("notification failure is a warning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusDraft)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)
		m.renderer.EXPECT().Render(gomock.Any(), q).Return("https://docs/q.pdf", nil)

		ready := q
		ready.Status = entities.QuoteStatusReadyForReview
		ready.DocumentURL = "https://docs/q.pdf"
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusDraft, gomock.Any()).Return(ready, nil)
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
		m.notifier.EXPECT().Send(gomock.Any(), entities.NotificationQuoteReady, gomock.Any(), gomock.Any()).
			Return(errors.New("smtp down"))

		res, err := uc.RequestRendering(context.Background(), q.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Warnings) != 1 {
			t.Fatalf("expected one warning, got %v", res.Warnings)
		}
	})
}

func TestQuoteLifecycleUseCase_ApproveQuote(t *testing.T) {
	validApproval := ApprovalInput{
		ApproverName:  "J. de Vries",
		OriginAddress: "203.0.113.7",
		Signature:     []byte("signature-bytes"),
	}

	t.Run("invalid quote id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newLifecycleUseCase(ctrl)
		_, err := uc.ApproveQuote(context.Background(), " ", validApproval)
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("invalid approval input", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newLifecycleUseCase(ctrl)

		_, err := uc.ApproveQuote(context.Background(), "MW-202608-001", ApprovalInput{Signature: []byte("x")})
		if !errors.Is(err, ErrInvalidApproval) {
			t.Fatalf("expected ErrInvalidApproval for blank name, got %v", err)
		}
		_, err = uc.ApproveQuote(context.Background(), "MW-202608-001", ApprovalInput{ApproverName: "J. de Vries"})
		if !errors.Is(err, ErrInvalidApproval) {
			t.Fatalf("expected ErrInvalidApproval for empty signature, got %v", err)
		}
	})

	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.quotes.EXPECT().GetByID(gomock.Any(), "MW-202608-001").Return(entities.Quote{}, nil)

		_, err := uc.ApproveQuote(context.Background(), "MW-202608-001", validApproval)
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("draft quote cannot be approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.quotes.EXPECT().GetByID(gomock.Any(), "MW-202608-001").Return(testQuote(entities.QuoteStatusDraft), nil)

		_, err := uc.ApproveQuote(context.Background(), "MW-202608-001", validApproval)
		var conflict *StateConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected StateConflictError, got %v", err)
		}
		if conflict.Actual != entities.QuoteStatusDraft {
			t.Fatalf("unexpected conflict: %+v", conflict)
		}
	})

	t.Run("expired quote refuses approval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.quotes.EXPECT().GetByID(gomock.Any(), "MW-202608-001").Return(testQuote(entities.QuoteStatusExpired), nil)

		_, err := uc.ApproveQuote(context.Background(), "MW-202608-001", validApproval)
		if !errors.Is(err, ErrQuoteExpired) {
			t.Fatalf("expected ErrQuoteExpired, got %v", err)
		}
	})

	t.Run("validity window closed triggers lazy expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusReadyForReview)
		q.ValidUntil = testNow.AddDate(0, 0, -1)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)

		expired := q
		expired.Status = entities.QuoteStatusExpired
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusReadyForReview, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.QuoteStatus, patch interfaces.QuotePatch) (entities.Quote, error) {
				if patch.Status != entities.QuoteStatusExpired {
					t.Fatalf("expected expiry patch, got %+v", patch)
				}
				return expired, nil
			},
		)

		_, err := uc.ApproveQuote(context.Background(), q.ID, validApproval)
		if !errors.Is(err, ErrQuoteExpired) {
			t.Fatalf("expected ErrQuoteExpired, got %v", err)
		}
	})

	t.Run("success records digest and side effects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusReadyForReview)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)

		digest := sha256.Sum256(validApproval.Signature)
		wantDigest := hex.EncodeToString(digest[:])

		approved := q
		approved.Status = entities.QuoteStatusApprovedByClient
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusReadyForReview, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.QuoteStatus, patch interfaces.QuotePatch) (entities.Quote, error) {
				if patch.Status != entities.QuoteStatusApprovedByClient {
					t.Fatalf("expected approval patch, got %+v", patch)
				}
				if patch.Approval == nil || patch.Approval.SignatureDigest != wantDigest {
					t.Fatalf("expected signature digest %s, got %+v", wantDigest, patch.Approval)
				}
				if patch.Approval.ApproverName != "J. de Vries" || patch.Approval.OriginAddress != "203.0.113.7" {
					t.Fatalf("unexpected approval record: %+v", patch.Approval)
				}
				approved.Approval = patch.Approval
				return approved, nil
			},
		)
		m.quotes.EXPECT().RecordApproval(gomock.Any(), gomock.AssignableToTypeOf(entities.ApprovalRecord{})).DoAndReturn(
			func(_ context.Context, rec entities.ApprovalRecord) error {
				if rec.QuoteID != q.ID || rec.SignatureDigest != wantDigest {
					t.Fatalf("unexpected approval record: %+v", rec)
				}
				return nil
			},
		)
		m.workRequests.EXPECT().UpdateStatus(gomock.Any(), "wr-1", entities.WorkRequestStatusQuoteApproved).
			Return(testWorkRequest(), nil)
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEvent) error {
				if e.Type != entities.AuditQuoteApproved || e.ActorType != entities.ActorTypeClient {
					t.Fatalf("unexpected audit event: %+v", e)
				}
				if e.Metadata["signature_digest"] != wantDigest {
					t.Fatalf("audit must carry the digest, got %+v", e.Metadata)
				}
				return nil
			},
		)
		m.notifier.EXPECT().Send(gomock.Any(), entities.NotificationQuoteApproved, "projectleiding@sterkbouw.example", gomock.Any()).
			Return(nil)

		res, err := uc.ApproveQuote(context.Background(), q.ID, validApproval)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Quote.Status != entities.QuoteStatusApprovedByClient {
			t.Fatalf("expected approved_by_client, got %s", res.Quote.Status)
		}
		if len(res.Warnings) != 0 {
			t.Fatalf("expected no warnings, got %v", res.Warnings)
		}
	})

	t.Run("post-approval failures become warnings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusReadyForReview)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)

		approved := q
		approved.Status = entities.QuoteStatusApprovedByClient
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusReadyForReview, gomock.Any()).Return(approved, nil)
		m.quotes.EXPECT().RecordApproval(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))
		m.workRequests.EXPECT().UpdateStatus(gomock.Any(), "wr-1", entities.WorkRequestStatusQuoteApproved).
			Return(entities.WorkRequest{}, errors.New("wr down"))
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("audit down"))
		m.notifier.EXPECT().Send(gomock.Any(), entities.NotificationQuoteApproved, gomock.Any(), gomock.Any()).
			Return(errors.New("notify down"))

		res, err := uc.ApproveQuote(context.Background(), q.ID, validApproval)
		if err != nil {
			t.Fatalf("approval must not fail after the transition committed: %v", err)
		}
		if res.Quote.Status != entities.QuoteStatusApprovedByClient {
			t.Fatalf("expected approved_by_client, got %s", res.Quote.Status)
		}
		if len(res.Warnings) != 4 {
			t.Fatalf("expected 4 warnings, got %v", res.Warnings)
		}
	})

	t.Run("conflicting expiry during approval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusReadyForReview)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)

		expired := q
		expired.Status = entities.QuoteStatusExpired
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusReadyForReview, gomock.Any()).
			Return(expired, interfaces.ErrStatusConflict)

		_, err := uc.ApproveQuote(context.Background(), q.ID, validApproval)
		if !errors.Is(err, ErrQuoteExpired) {
			t.Fatalf("expected ErrQuoteExpired, got %v", err)
		}
	})
}

func TestQuoteLifecycleUseCase_Getters(t *testing.T) {
	t.Run("GetByID applies lazy expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusReadyForReview)
		q.ValidUntil = testNow.AddDate(0, 0, -2)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)

		expired := q
		expired.Status = entities.QuoteStatusExpired
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), q.ID, entities.QuoteStatusReadyForReview, gomock.Any()).
			Return(expired, nil)

		got, err := uc.GetByID(context.Background(), q.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusExpired {
			t.Fatalf("expected expired, got %s", got.Status)
		}
	})

	t.Run("GetByID leaves a fresh quote alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusReadyForReview)
		m.quotes.EXPECT().GetByID(gomock.Any(), q.ID).Return(q, nil)

		got, err := uc.GetByID(context.Background(), q.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusReadyForReview {
			t.Fatalf("expected ready_for_review, got %s", got.Status)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		m.quotes.EXPECT().GetByID(gomock.Any(), "MW-202608-009").Return(entities.Quote{}, nil)

		_, err := uc.GetByID(context.Background(), "MW-202608-009")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("GetByWorkRequestID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newLifecycleUseCase(ctrl)
		q := testQuote(entities.QuoteStatusDraft)
		m.quotes.EXPECT().GetByWorkRequestID(gomock.Any(), "wr-1").Return(q, nil)

		got, err := uc.GetByWorkRequestID(context.Background(), " wr-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != q.ID {
			t.Fatalf("unexpected quote: %+v", got)
		}
	})

	t.Run("GetByWorkRequestID invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newLifecycleUseCase(ctrl)
		_, err := uc.GetByWorkRequestID(context.Background(), "")
		if !errors.Is(err, ErrInvalidWorkRequestID) {
			t.Fatalf("expected ErrInvalidWorkRequestID, got %v", err)
		}
	})
}

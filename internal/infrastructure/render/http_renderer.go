package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sterkbouw_quotes/internal/domain/entities"
	"sterkbouw_quotes/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrMissingRendererBaseURL = errors.New("missing renderer base url")

type renderLine struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// renderRequest is the payload the renderer service turns into a PDF.
type renderRequest struct {
	QuoteNumber string       `json:"quote_number"`
	ProjectID   string       `json:"project_id"`
	Currency    string       `json:"currency"`
	Lines       []renderLine `json:"lines"`
	Subtotal    float64      `json:"subtotal"`
	VATRate     float64      `json:"vat_rate"`
	VATAmount   float64      `json:"vat_amount"`
	Total       float64      `json:"total"`
	ValidUntil  string       `json:"valid_until"`
}

type renderResponse struct {
	DocumentURL string `json:"document_url"`
}

// HTTPRenderer calls the in-house document renderer over HTTP. Every call is
// bounded by the configured timeout; a timeout surfaces as an ordinary error
// and the caller treats it like any other rendering failure.
type HTTPRenderer struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

var _ interfaces.IDocumentRenderer = (*HTTPRenderer)(nil)

func NewHTTPRenderer(baseURL string, timeout time.Duration, logger *zap.Logger) (*HTTPRenderer, error) {
	if baseURL == "" {
		return nil, ErrMissingRendererBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPRenderer{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (r *HTTPRenderer) Render(ctx context.Context, quote entities.Quote) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	lines := make([]renderLine, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, renderLine{
			Kind:        string(l.Kind),
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}

	body, err := json.Marshal(renderRequest{
		QuoteNumber: quote.ID,
		ProjectID:   quote.ProjectID,
		Currency:    quote.Currency,
		Lines:       lines,
		Subtotal:    quote.Subtotal,
		VATRate:     quote.VATRate,
		VATAmount:   quote.VATAmount,
		Total:       quote.Total,
		ValidUntil:  quote.ValidUntil.Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("renderer call failed", zap.String("quote_id", quote.ID), zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("renderer returned non-200",
			zap.String("quote_id", quote.ID),
			zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("renderer returned status %d", resp.StatusCode)
	}

	var out renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.DocumentURL == "" {
		return "", errors.New("renderer response missing document_url")
	}

	r.logger.Info("document rendered",
		zap.String("quote_id", quote.ID),
		zap.String("document_url", out.DocumentURL))
	return out.DocumentURL, nil
}

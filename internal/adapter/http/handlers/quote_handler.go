package handlers

import (
	"errors"
	"net/http"

	request "sterkbouw_quotes/internal/adapter/http/dto/request"
	response "sterkbouw_quotes/internal/adapter/http/dto/response"
	"sterkbouw_quotes/internal/usecase"
	"sterkbouw_quotes/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
)

// QuoteHandler handles HTTP requests for extra-work quotes. All state logic
// lives in the use case; this layer only binds payloads and maps errors.

type QuoteHandler struct {
	usecase usecase.IQuoteLifecycleUseCase
}

func NewQuoteHandler(uc usecase.IQuoteLifecycleUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Create a quote for a work request
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        payload body request.CreateQuoteRequest true "Work request reference"
// @Success      201 {object} response.QuoteResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.CreateQuote(c.Request.Context(), payload.ResolveWorkRequestID(), payload.ResolveCreatedBy())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromResult(res))
}

// RequestRendering godoc
// @Summary      Generate the quote document and move the quote to review
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote number"
// @Success      200 {object} response.QuoteResponse
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Failure      502 {object} pkg.HTTPError
// @Router       /quotes/{id}/rendering [post]
func (h *QuoteHandler) RequestRendering(c *gin.Context) {
	res, err := h.usecase.RequestRendering(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromResult(res))
}

// ApproveQuote godoc
// @Summary      Record the client approval of a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quote number"
// @Param        payload body request.ApproveQuoteRequest true "Approval"
// @Success      200 {object} response.QuoteResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Failure      410 {object} pkg.HTTPError
// @Router       /quotes/{id}/approval [post]
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	var payload request.ApproveQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	signature, err := payload.ResolveSignature()
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.ApproveQuote(c.Request.Context(), c.Param("id"), usecase.ApprovalInput{
		ApproverName:  payload.ResolveApproverName(),
		OriginAddress: c.ClientIP(),
		Signature:     signature,
	})
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromResult(res))
}

// GetQuote godoc
// @Summary      Fetch a quote by number
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote number"
// @Success      200 {object} response.QuoteResponse
// @Failure      404 {object} pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q))
}

// GetQuoteByWorkRequest godoc
// @Summary      Fetch the quote attached to a work request
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Work request id"
// @Success      200 {object} response.QuoteResponse
// @Failure      404 {object} pkg.HTTPError
// @Router       /work-requests/{id}/quote [get]
func (h *QuoteHandler) GetQuoteByWorkRequest(c *gin.Context) {
	q, err := h.usecase.GetByWorkRequestID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q))
}

func mapQuoteError(err error) *pkg.AppError {
	var conflict *usecase.StateConflictError
	switch {
	case errors.Is(err, usecase.ErrInvalidWorkRequestID),
		errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrInvalidApproval),
		errors.Is(err, usecase.ErrInvalidCostInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkRequestNotFound):
		return pkg.NewDomainErrorSimple("WORK_REQUEST_NOT_FOUND", "Work request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteAlreadyExists):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_EXISTS", "Quote already exists for this work request", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote validity window has passed", http.StatusGone)
	case errors.As(err, &conflict):
		return pkg.NewDomainErrorSimple("STATE_CONFLICT", conflict.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrAllocationFailed):
		return pkg.NewDomainError("ALLOCATION_FAILED", "Quote numbering backend unavailable", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrRenderingFailed):
		return pkg.NewDomainError("RENDERING_FAILED", "Document rendering failed", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package handler

import (
	"context"
	"net/http"

	"trade-kart/internal/checkout"

	"github.com/rs/zerolog"
)

// Submitter is the slice of the checkout pipeline the handler needs.
type Submitter interface {
	Submit(ctx context.Context, req checkout.Request) (*checkout.Result, error)
}

// CheckoutHandler runs checkout submissions.
type CheckoutHandler struct {
	pipeline Submitter
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(pipeline Submitter, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		pipeline: pipeline,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// Submit handles POST /api/checkout requests. The request context carries
// through the payment delay, so a client that disconnects mid-payment
// aborts the checkout before any order is created.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req checkout.Request
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	result, err := h.pipeline.Submit(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

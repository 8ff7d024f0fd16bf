package handler

import (
	"net/http"
	"strings"

	"trade-kart/internal/model"
	"trade-kart/internal/warranty"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WarrantyHandler serves warranty registration, lookup, and claims.
type WarrantyHandler struct {
	warranties *warranty.Store
	logger     zerolog.Logger
}

// NewWarrantyHandler creates a new warranty handler.
func NewWarrantyHandler(warranties *warranty.Store, logger zerolog.Logger) *WarrantyHandler {
	return &WarrantyHandler{
		warranties: warranties,
		logger:     logger.With().Str("handler", "warranty").Logger(),
	}
}

// registerRequest is the payload for registering a warranty.
type registerRequest struct {
	ProductID    string `json:"productId"`
	SerialNumber string `json:"serialNumber"`
	OrderID      string `json:"orderId"`
}

// Register handles POST /api/warranties requests.
func (h *WarrantyHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		writeDomainError(w, model.NewDomainError(model.ErrCodeMissingField, "A valid orderId is required"), h.logger)
		return
	}

	record, err := h.warranties.Register(req.ProductID, req.SerialNumber, orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// GetBySerial handles GET /api/warranties/{serial} requests.
func (h *WarrantyHandler) GetBySerial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	serial := strings.TrimPrefix(r.URL.Path, "/api/warranties/")
	if serial == "" {
		writeError(w, http.StatusBadRequest, "serial number is required", h.logger)
		return
	}

	record := h.warranties.BySerial(serial)
	if record == nil {
		writeDomainError(w, model.ErrWarrantyNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// claimRequest is the payload for filing a claim.
type claimRequest struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
}

// CreateClaim handles POST /api/warranties/{id}/claims requests.
func (h *WarrantyHandler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/warranties/"), "/claims")
	warrantyID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid warranty ID", h.logger)
		return
	}

	var req claimRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	claim, err := h.warranties.CreateClaim(warrantyID, req.Issue, req.Description)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, claim)
}

// claimUpdateRequest is the payload for transitioning a claim.
type claimUpdateRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution,omitempty"`
}

// UpdateClaim handles PATCH /api/claims/{id} requests.
func (h *WarrantyHandler) UpdateClaim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/claims/")
	claimID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid claim ID", h.logger)
		return
	}

	var req claimUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.warranties.UpdateClaimStatus(claimID, model.ClaimStatus(req.Status), req.Resolution); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

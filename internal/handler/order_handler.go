package handler

import (
	"net/http"
	"strings"

	"trade-kart/internal/model"
	"trade-kart/internal/order"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler serves the order query surface the dashboards read through,
// plus the status transition endpoints.
type OrderHandler struct {
	orders *order.Store
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *order.Store, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders requests, filtered by customerId or status.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		writeJSON(w, http.StatusOK, h.orders.ByCustomer(customerID))
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		s := model.OrderStatus(status)
		if !s.Valid() {
			writeDomainError(w, model.NewDomainError(model.ErrCodeInvalidStatus, "Unknown order status"), h.logger)
			return
		}
		writeJSON(w, http.StatusOK, h.orders.ByStatus(s))
		return
	}

	writeJSON(w, http.StatusOK, h.orders.All())
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r.URL.Path, "/api/orders/")
	if !ok {
		return
	}

	o := h.orders.ByID(orderID)
	if o == nil {
		writeDomainError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, o)
}

// statusUpdateRequest is the payload for the transition endpoints. Force
// bypasses the transition table; it is the admin override, not the default.
type statusUpdateRequest struct {
	Status string `json:"status"`
	Force  bool   `json:"force,omitempty"`
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, strings.TrimSuffix(r.URL.Path, "/status"), "/api/orders/")
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var err error
	if req.Force {
		err = h.orders.ForceStatus(orderID, model.OrderStatus(req.Status))
	} else {
		err = h.orders.UpdateStatus(orderID, model.OrderStatus(req.Status))
	}
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.orders.ByID(orderID))
}

// UpdatePaymentStatus handles PATCH /api/orders/{id}/payment-status requests.
func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, strings.TrimSuffix(r.URL.Path, "/payment-status"), "/api/orders/")
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.orders.UpdatePaymentStatus(orderID, model.PaymentStatus(req.Status)); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.orders.ByID(orderID))
}

// orderIDFromPath extracts and parses the order id path segment, writing the
// error response itself on failure.
func (h *OrderHandler) orderIDFromPath(w http.ResponseWriter, path, prefix string) (uuid.UUID, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID", h.logger)
		return uuid.Nil, false
	}

	return orderID, true
}

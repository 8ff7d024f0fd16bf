package handler

import (
	"net/http"
	"strings"

	"trade-kart/internal/cart"
	"trade-kart/internal/catalog"
	"trade-kart/internal/model"

	"github.com/rs/zerolog"
)

// CartHandler serves the session cart.
type CartHandler struct {
	cart    *cart.Store
	catalog catalog.Catalog
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartStore *cart.Store, cat catalog.Catalog, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:    cartStore,
		catalog: cat,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartView is the cart representation returned by every cart endpoint, so
// the client always observes the post-clamp state.
type cartView struct {
	Items          []model.CartLine `json:"items"`
	TotalItems     int              `json:"totalItems"`
	RetailTotal    float64          `json:"retailTotal"`
	WholesaleTotal float64          `json:"wholesaleTotal"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Items:          h.cart.Lines(),
		TotalItems:     h.cart.TotalItems(),
		RetailTotal:    h.cart.RetailTotal(),
		WholesaleTotal: h.cart.WholesaleTotal(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.view())
}

// addItemRequest is the payload for adding a product to the cart.
type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if req.ProductID == "" {
		writeDomainError(w, model.NewDomainError(model.ErrCodeMissingField, "productId is required"), h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product := h.catalog.GetByID(req.ProductID)
	if product == nil {
		writeDomainError(w, model.ErrProductNotFound, h.logger)
		return
	}

	h.cart.AddToCart(product, req.Quantity)

	if !h.cart.Contains(req.ProductID) {
		writeDomainError(w, model.ErrOutOfStock, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.view())
}

// updateItemRequest is the payload for overwriting a line quantity.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/{productId} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.cart.UpdateQuantity(productID, req.Quantity)
	writeJSON(w, http.StatusOK, h.view())
}

// RemoveItem handles DELETE /api/cart/items/{productId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	h.cart.RemoveFromCart(productID)
	writeJSON(w, http.StatusOK, h.view())
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	h.cart.Clear()
	writeJSON(w, http.StatusOK, h.view())
}

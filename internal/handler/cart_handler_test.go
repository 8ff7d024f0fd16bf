package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trade-kart/internal/cart"
	"trade-kart/internal/catalog"
	"trade-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStorage is an in-memory cart.Storage for handler tests.
type memoryStorage struct {
	lines []model.CartLine
}

func (m *memoryStorage) Load() []model.CartLine { return m.lines }
func (m *memoryStorage) Save(lines []model.CartLine) error {
	m.lines = append([]model.CartLine(nil), lines...)
	return nil
}

func newCartHandler() (*CartHandler, *cart.Store) {
	cartStore := cart.NewStore(&memoryStorage{}, zerolog.Nop())
	cat := catalog.New(catalog.SampleProducts(), zerolog.Nop())
	return NewCartHandler(cartStore, cat, zerolog.Nop()), cartStore
}

func TestCartHandler_AddItem(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedQty    int // quantity of P001 after the call, 0 means absent
	}{
		{
			name:           "Adds within bounds",
			body:           `{"productId": "P001", "quantity": 10}`,
			expectedStatus: http.StatusOK,
			expectedQty:    10,
		},
		{
			name:           "Clamps below minimum up to floor",
			body:           `{"productId": "P001", "quantity": 1}`,
			expectedStatus: http.StatusOK,
			expectedQty:    5,
		},
		{
			name:           "Defaults missing quantity",
			body:           `{"productId": "P001"}`,
			expectedStatus: http.StatusOK,
			expectedQty:    5,
		},
		{
			name:           "Unknown product",
			body:           `{"productId": "P999", "quantity": 5}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Missing product id",
			body:           `{"quantity": 5}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, cartStore := newCartHandler()

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.AddItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedQty > 0 {
				line := cartStore.Line("P001")
				require.NotNil(t, line)
				assert.Equal(t, tt.expectedQty, line.Quantity)

				var view struct {
					Items          []model.CartLine `json:"items"`
					WholesaleTotal float64          `json:"wholesaleTotal"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
				require.Len(t, view.Items, 1)
				assert.Equal(t, tt.expectedQty, view.Items[0].Quantity)
			}
		})
	}
}

func TestCartHandler_AddItem_ResponseReflectsClampedState(t *testing.T) {
	h, _ := newCartHandler()

	// Request 200 of a product capped at 50; the client observes the
	// corrected quantity, not an error.
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"productId": "P001", "quantity": 200}`))
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Items []model.CartLine `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 50, view.Items[0].Quantity)
}

func TestCartHandler_UpdateItem(t *testing.T) {
	h, cartStore := newCartHandler()
	cat := catalog.New(catalog.SampleProducts(), zerolog.Nop())
	cartStore.AddToCart(cat.GetByID("P001"), 10)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/P001",
		strings.NewReader(`{"quantity": 20}`))
	w := httptest.NewRecorder()
	h.UpdateItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, cartStore.Line("P001").Quantity)

	// Zero quantity removes the line
	req = httptest.NewRequest(http.MethodPut, "/api/cart/items/P001",
		strings.NewReader(`{"quantity": 0}`))
	w = httptest.NewRecorder()
	h.UpdateItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, cartStore.Contains("P001"))
}

func TestCartHandler_RemoveItem(t *testing.T) {
	h, cartStore := newCartHandler()
	cat := catalog.New(catalog.SampleProducts(), zerolog.Nop())
	cartStore.AddToCart(cat.GetByID("P001"), 10)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/P001", nil)
	w := httptest.NewRecorder()
	h.RemoveItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartStore.Lines())

	// Removing again is idempotent
	w = httptest.NewRecorder()
	h.RemoveItem(w, httptest.NewRequest(http.MethodDelete, "/api/cart/items/P001", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartHandler_Get(t *testing.T) {
	h, cartStore := newCartHandler()
	cat := catalog.New(catalog.SampleProducts(), zerolog.Nop())
	cartStore.AddToCart(cat.GetByID("P001"), 10)
	cartStore.AddToCart(cat.GetByID("P002"), 4)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Items          []model.CartLine `json:"items"`
		TotalItems     int              `json:"totalItems"`
		RetailTotal    float64          `json:"retailTotal"`
		WholesaleTotal float64          `json:"wholesaleTotal"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	assert.Len(t, view.Items, 2)
	assert.Equal(t, 14, view.TotalItems)
	assert.InDelta(t, 10*179.99+4*289.99, view.WholesaleTotal, 0.01)
	assert.InDelta(t, 10*249.99+4*399.99, view.RetailTotal, 0.01)
}

func TestCartHandler_Clear(t *testing.T) {
	h, cartStore := newCartHandler()
	cat := catalog.New(catalog.SampleProducts(), zerolog.Nop())
	cartStore.AddToCart(cat.GetByID("P001"), 10)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	w := httptest.NewRecorder()
	h.Clear(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartStore.Lines())
	assert.Zero(t, cartStore.TotalItems())
}

func TestCartHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newCartHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/cart", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

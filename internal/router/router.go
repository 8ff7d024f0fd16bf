package router

import (
	"net/http"
	"strings"

	"trade-kart/internal/handler"
	"trade-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	warrantyHandler *handler.WarrantyHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue routes
	productRoute := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.List(w, r)
	}
	mux.HandleFunc("/api/products", productRoute)
	mux.HandleFunc("/api/products/", productRoute)

	// Cart routes
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cartHandler.Get(w, r)
		case http.MethodDelete:
			cartHandler.Clear(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("/api/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			cartHandler.UpdateItem(w, r)
		case http.MethodDelete:
			cartHandler.RemoveItem(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Checkout route
	mux.HandleFunc("/api/checkout", checkoutHandler.Submit)

	// Order routes
	orderRoute := func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/api/orders" || path == "/api/orders/":
			orderHandler.List(w, r)
		case strings.HasSuffix(path, "/status"):
			orderHandler.UpdateStatus(w, r)
		case strings.HasSuffix(path, "/payment-status"):
			orderHandler.UpdatePaymentStatus(w, r)
		default:
			orderHandler.GetByID(w, r)
		}
	}
	mux.HandleFunc("/api/orders", orderRoute)
	mux.HandleFunc("/api/orders/", orderRoute)

	// Warranty routes
	warrantyRoute := func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/api/warranties" || path == "/api/warranties/":
			warrantyHandler.Register(w, r)
		case strings.HasSuffix(path, "/claims"):
			warrantyHandler.CreateClaim(w, r)
		default:
			warrantyHandler.GetBySerial(w, r)
		}
	}
	mux.HandleFunc("/api/warranties", warrantyRoute)
	mux.HandleFunc("/api/warranties/", warrantyRoute)
	mux.HandleFunc("/api/claims/", warrantyHandler.UpdateClaim)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

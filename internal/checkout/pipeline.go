// Package checkout sequences a cart into an order: validate the customer
// and shipping details, take payment through the gateway, create the order,
// clear the cart. It owns no durable state of its own.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"trade-kart/internal/cart"
	"trade-kart/internal/config"
	"trade-kart/internal/model"
	"trade-kart/internal/order"
	"trade-kart/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var validPaymentMethods = map[string]bool{
	"credit_card":    true,
	"bank_transfer":  true,
	"purchase_order": true,
}

// Request carries everything a checkout submission needs. BillingAddress
// defaults to the shipping address when omitted.
type Request struct {
	CustomerID      string             `json:"customerId"`
	CustomerInfo    model.CustomerInfo `json:"customerInfo"`
	ShippingAddress model.Address      `json:"shippingAddress"`
	BillingAddress  *model.Address     `json:"billingAddress,omitempty"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes,omitempty"`
}

// Result is the outcome of a successful checkout.
type Result struct {
	OrderID       uuid.UUID      `json:"orderId"`
	OrderNumber   string         `json:"orderNumber"`
	TransactionID string         `json:"transactionId"`
	Totals        pricing.Totals `json:"totals"`
}

// Pipeline runs the checkout sequence. At most one submission is in flight
// at a time: the storefront disables its submit button while payment is
// pending, and the guard makes that explicit here rather than assumed.
type Pipeline struct {
	cart    *cart.Store
	orders  *order.Store
	gateway PaymentGateway
	cfg     config.CheckoutConfig
	logger  zerolog.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewPipeline creates a checkout pipeline over the given stores and gateway.
func NewPipeline(
	cartStore *cart.Store,
	orderStore *order.Store,
	gateway PaymentGateway,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		cart:    cartStore,
		orders:  orderStore,
		gateway: gateway,
		cfg:     cfg,
		logger:  logger.With().Str("component", "checkout").Logger(),
	}
}

// Submit runs one checkout. Validation and payment failures leave the cart
// and the order store untouched and are fully retryable; exactly one order
// is created per approved payment. Cancelling the context during the payment
// delay aborts before any order exists.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*Result, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer p.end()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	lines := p.cart.Lines()
	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}

	totals := pricing.Compute(
		p.cart.WholesaleTotal(),
		p.cfg.TaxRate,
		p.cfg.FreeShippingThreshold,
		p.cfg.ShippingFee,
	)

	reference := uuid.NewString()
	payment, err := p.gateway.Charge(ctx, PaymentRequest{
		Reference:  reference,
		CustomerID: req.CustomerID,
		Amount:     totals.Total,
		Method:     req.PaymentMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("payment did not complete: %w", err)
	}
	if !payment.Approved {
		p.logger.Warn().
			Str("reference", reference).
			Str("reason", payment.FailureReason).
			Msg("payment declined, checkout aborted")
		return nil, model.NewDomainError(model.ErrCodePaymentFailed,
			fmt.Sprintf("Payment failed: %s", payment.FailureReason))
	}

	billing := req.ShippingAddress
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}

	o, err := p.orders.Create(model.OrderDraft{
		CustomerID:      req.CustomerID,
		CustomerInfo:    req.CustomerInfo,
		Items:           lines,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  billing,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order after payment: %w", err)
	}

	if err := p.orders.UpdatePaymentStatus(o.ID, model.PaymentStatusPaid); err != nil {
		p.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to mark order paid")
	}

	p.cart.Clear()

	p.logger.Info().
		Str("order_id", o.ID.String()).
		Str("order_number", o.OrderNumber).
		Str("transaction_id", payment.TransactionID).
		Float64("total", totals.Total).
		Msg("checkout completed")

	return &Result{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		TransactionID: payment.TransactionID,
		Totals:        totals,
	}, nil
}

// begin marks a submission in flight, rejecting duplicates.
func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight {
		return model.ErrCheckoutInFlight
	}
	p.inFlight = true
	return nil
}

func (p *Pipeline) end() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
}

// validateRequest checks the required customer and shipping fields. The
// caller is blocked before any store mutation.
func validateRequest(req Request) error {
	required := []struct {
		value string
		field string
	}{
		{req.CustomerID, "customerId"},
		{req.CustomerInfo.Name, "name"},
		{req.CustomerInfo.Email, "email"},
		{req.CustomerInfo.Phone, "phone"},
		{req.ShippingAddress.Street, "street"},
		{req.ShippingAddress.City, "city"},
		{req.ShippingAddress.State, "state"},
		{req.ShippingAddress.Zip, "zip"},
	}
	for _, r := range required {
		if r.value == "" {
			return model.NewDomainError(model.ErrCodeMissingField,
				fmt.Sprintf("Required field %q is missing", r.field))
		}
	}

	if !validPaymentMethods[req.PaymentMethod] {
		return model.NewDomainError(model.ErrCodeInvalidPaymentMeth,
			fmt.Sprintf("Unsupported payment method %q", req.PaymentMethod))
	}

	return nil
}

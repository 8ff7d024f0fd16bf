// Package order owns finalised purchases: immutable snapshots of cart
// contents with sequential order numbers and explicit status and
// payment-status state machines.
package order

import (
	"fmt"
	"sync"
	"time"

	"trade-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Orders start numbering here so the first few look like the rest of the
// back catalogue.
const firstOrderNumber = 1001

const deliveryLeadTime = 5 * 24 * time.Hour

// allowedStatusTransitions is the fulfilment state machine. Cancelled is
// reachable from every non-terminal state; delivered and cancelled are
// terminal.
var allowedStatusTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed:  {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered:  {},
	model.OrderStatusCancelled:  {},
}

// allowedPaymentTransitions is the payment state machine, orthogonal to the
// fulfilment status: an order can be cancelled while still paid, pending a
// refund.
var allowedPaymentTransitions = map[model.PaymentStatus][]model.PaymentStatus{
	model.PaymentStatusPending:  {model.PaymentStatusPaid, model.PaymentStatusFailed},
	model.PaymentStatusPaid:     {model.PaymentStatusRefunded},
	model.PaymentStatusFailed:   {},
	model.PaymentStatusRefunded: {},
}

// Store owns the order collection. Orders are only ever created and
// transitioned, never deleted.
type Store struct {
	mu         sync.Mutex
	orders     []model.Order
	byID       map[uuid.UUID]int
	nextNumber int
	logger     zerolog.Logger
}

// NewStore creates an empty order store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		byID:       make(map[uuid.UUID]int),
		nextNumber: firstOrderNumber,
		logger:     logger.With().Str("store", "order").Logger(),
	}
}

// Create turns a draft into an order: assigns an id, the next sequential
// order number, and creation timestamps, and deep-copies the draft's items
// so later cart mutations cannot reach the snapshot. This is the only way
// an order comes into existence.
func (s *Store) Create(draft model.OrderDraft) (*model.Order, error) {
	if len(draft.Items) == 0 {
		return nil, model.ErrEmptyOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.OrderLine, len(draft.Items))
	for i, line := range draft.Items {
		items[i] = model.OrderLine{
			ProductID:          line.ProductID,
			Name:               line.Name,
			SKU:                line.SKU,
			Category:           line.Category,
			UnitRetailPrice:    line.UnitRetailPrice,
			UnitWholesalePrice: line.UnitWholesalePrice,
			Quantity:           line.Quantity,
		}
	}

	now := time.Now()
	o := model.Order{
		ID:              uuid.New(),
		OrderNumber:     fmt.Sprintf("ORD-%04d", s.nextNumber),
		CustomerID:      draft.CustomerID,
		CustomerInfo:    draft.CustomerInfo,
		Items:           items,
		Subtotal:        draft.Subtotal,
		Tax:             draft.Tax,
		Shipping:        draft.Shipping,
		Total:           draft.Total,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentMethod:   draft.PaymentMethod,
		ShippingAddress: draft.ShippingAddress,
		BillingAddress:  draft.BillingAddress,
		Notes:           draft.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.nextNumber++

	s.byID[o.ID] = len(s.orders)
	s.orders = append(s.orders, o)

	s.logger.Info().
		Str("order_id", o.ID.String()).
		Str("order_number", o.OrderNumber).
		Str("customer_id", o.CustomerID).
		Int("item_count", len(o.Items)).
		Float64("total", o.Total).
		Msg("order created")

	return copyOrder(&o), nil
}

// UpdateStatus moves an order along the fulfilment state machine, rejecting
// transitions the table does not allow. Moving to shipped stamps a tracking
// number and estimated delivery date if the order has none yet.
func (s *Store) UpdateStatus(orderID uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		return model.NewDomainError(model.ErrCodeInvalidStatus, fmt.Sprintf("Unknown order status %q", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[orderID]
	if !ok {
		return model.ErrOrderNotFound
	}
	o := &s.orders[idx]

	if !transitionAllowed(allowedStatusTransitions[o.Status], status) {
		return model.NewDomainError(model.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, status))
	}

	s.applyStatus(o, status)

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// ForceStatus writes a status without consulting the transition table. Admin
// override for correcting misrecorded orders; logged at warn so it stands
// out in the audit trail.
func (s *Store) ForceStatus(orderID uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		return model.NewDomainError(model.ErrCodeInvalidStatus, fmt.Sprintf("Unknown order status %q", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[orderID]
	if !ok {
		return model.ErrOrderNotFound
	}
	o := &s.orders[idx]

	s.logger.Warn().
		Str("order_id", orderID.String()).
		Str("from", string(o.Status)).
		Str("to", string(status)).
		Msg("order status forced")

	s.applyStatus(o, status)
	return nil
}

// applyStatus writes the status and its side effects. Callers hold the
// mutex.
func (s *Store) applyStatus(o *model.Order, status model.OrderStatus) {
	o.Status = status
	o.UpdatedAt = time.Now()

	if status == model.OrderStatusShipped {
		if o.TrackingNumber == "" {
			o.TrackingNumber = newTrackingNumber()
		}
		if o.EstimatedDelivery == nil {
			eta := o.UpdatedAt.Add(deliveryLeadTime)
			o.EstimatedDelivery = &eta
		}
	}
}

// UpdatePaymentStatus moves an order along the payment state machine.
func (s *Store) UpdatePaymentStatus(orderID uuid.UUID, status model.PaymentStatus) error {
	if !status.Valid() {
		return model.NewDomainError(model.ErrCodeInvalidStatus, fmt.Sprintf("Unknown payment status %q", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[orderID]
	if !ok {
		return model.ErrOrderNotFound
	}
	o := &s.orders[idx]

	if !transitionAllowed(allowedPaymentTransitions[o.PaymentStatus], status) {
		return model.NewDomainError(model.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot move payment from %s to %s", o.PaymentStatus, status))
	}

	o.PaymentStatus = status
	o.UpdatedAt = time.Now()

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("payment_status", string(status)).
		Msg("payment status updated")

	return nil
}

// ByID returns a copy of the order, or nil when absent.
func (s *Store) ByID(orderID uuid.UUID) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[orderID]
	if !ok {
		return nil
	}
	return copyOrder(&s.orders[idx])
}

// ByCustomer returns copies of all orders for a customer, in creation order.
func (s *Store) ByCustomer(customerID string) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Order
	for i := range s.orders {
		if s.orders[i].CustomerID == customerID {
			out = append(out, *copyOrder(&s.orders[i]))
		}
	}
	return out
}

// ByStatus returns copies of all orders in a status, in creation order.
func (s *Store) ByStatus(status model.OrderStatus) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Order
	for i := range s.orders {
		if s.orders[i].Status == status {
			out = append(out, *copyOrder(&s.orders[i]))
		}
	}
	return out
}

// All returns copies of every order, in creation order.
func (s *Store) All() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Order, len(s.orders))
	for i := range s.orders {
		out[i] = *copyOrder(&s.orders[i])
	}
	return out
}

func transitionAllowed[S comparable](allowed []S, target S) bool {
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

// copyOrder deep-copies an order so callers can never reach the store's
// internal state through a returned value.
func copyOrder(o *model.Order) *model.Order {
	out := *o
	out.Items = make([]model.OrderLine, len(o.Items))
	copy(out.Items, o.Items)
	if o.EstimatedDelivery != nil {
		eta := *o.EstimatedDelivery
		out.EstimatedDelivery = &eta
	}
	return &out
}

func newTrackingNumber() string {
	return "TRK-" + uuid.NewString()[:8]
}

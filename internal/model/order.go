package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Valid reports whether the value is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of an order, independent of its
// fulfilment status.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Valid reports whether the value is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CustomerInfo is a value copy of the customer details captured at checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// Address is a shipping or billing address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country,omitempty"`
}

// OrderLine is an immutable snapshot of a cart line frozen into an order at
// checkout. The cart's quantity invariants no longer apply after creation.
type OrderLine struct {
	ProductID          string  `json:"productId"`
	Name               string  `json:"name"`
	SKU                string  `json:"sku"`
	Category           string  `json:"category"`
	UnitRetailPrice    float64 `json:"unitRetailPrice"`
	UnitWholesalePrice float64 `json:"unitWholesalePrice"`
	Quantity           int     `json:"quantity"`
}

// Order represents a finalised purchase. Orders are never deleted;
// cancellation is a status value, not removal.
type Order struct {
	ID                uuid.UUID     `json:"id"`
	OrderNumber       string        `json:"orderNumber"`
	CustomerID        string        `json:"customerId"`
	CustomerInfo      CustomerInfo  `json:"customerInfo"`
	Items             []OrderLine   `json:"items"`
	Subtotal          float64       `json:"subtotal"`
	Tax               float64       `json:"tax"`
	Shipping          float64       `json:"shipping"`
	Total             float64       `json:"total"`
	Status            OrderStatus   `json:"status"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	PaymentMethod     string        `json:"paymentMethod"`
	ShippingAddress   Address       `json:"shippingAddress"`
	BillingAddress    Address       `json:"billingAddress"`
	TrackingNumber    string        `json:"trackingNumber,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	EstimatedDelivery *time.Time    `json:"estimatedDelivery,omitempty"`
}

// OrderDraft carries everything the order store needs to create an order.
// Items are copied on creation, so the caller keeps ownership of the slice.
type OrderDraft struct {
	CustomerID      string
	CustomerInfo    CustomerInfo
	Items           []CartLine
	Subtotal        float64
	Tax             float64
	Shipping        float64
	Total           float64
	PaymentMethod   string
	ShippingAddress Address
	BillingAddress  Address
	Notes           string
}

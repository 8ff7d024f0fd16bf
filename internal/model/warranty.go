package model

import (
	"time"

	"github.com/google/uuid"
)

// WarrantyStatus represents the coverage state of a warranty record.
type WarrantyStatus string

const (
	WarrantyStatusActive  WarrantyStatus = "active"
	WarrantyStatusExpired WarrantyStatus = "expired"
	WarrantyStatusVoided  WarrantyStatus = "voided"
)

// ClaimStatus represents the state of a single warranty claim.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
	ClaimStatusResolved ClaimStatus = "resolved"
)

// WarrantyRecord represents coverage for one serialised unit of a purchased
// product, tied to a specific order line.
type WarrantyRecord struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	SerialNumber  string          `json:"serialNumber"`
	OrderID       uuid.UUID       `json:"orderId"`
	CustomerID    string          `json:"customerId"`
	CustomerInfo  CustomerInfo    `json:"customerInfo"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	WarrantyStart time.Time       `json:"warrantyStart"`
	WarrantyEnd   time.Time       `json:"warrantyEnd"`
	WarrantyType  string          `json:"warrantyType"`
	Coverage      []string        `json:"coverage"`
	Status        WarrantyStatus  `json:"status"`
	Claims        []WarrantyClaim `json:"claims"`
}

// WarrantyClaim is one service request against a warranty record. Claims are
// only ever appended and transitioned, never removed.
type WarrantyClaim struct {
	ID           uuid.UUID   `json:"id"`
	WarrantyID   uuid.UUID   `json:"warrantyId"`
	ClaimDate    time.Time   `json:"claimDate"`
	Issue        string      `json:"issue"`
	Description  string      `json:"description"`
	Status       ClaimStatus `json:"status"`
	Resolution   string      `json:"resolution,omitempty"`
	ResolvedDate *time.Time  `json:"resolvedDate,omitempty"`
}

package model

import "time"

// Product represents an item in the wholesale catalogue.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	WholesalePrice float64   `json:"wholesalePrice"`
	MinOrderQty    int       `json:"minOrderQty"`
	MaxOrderQty    *int      `json:"maxOrderQty,omitempty"`
	InStock        int       `json:"inStock"`
	CreatedAt      time.Time `json:"createdAt"`
}

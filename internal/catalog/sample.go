package catalog

import (
	"time"

	"trade-kart/internal/model"
)

func intPtr(v int) *int { return &v }

// SampleProducts returns the built-in wholesale catalogue the storefront
// ships with.
func SampleProducts() []model.Product {
	created := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	return []model.Product{
		{
			ID:             "P001",
			Name:           "6.5\" Component Speaker Set",
			SKU:            "SP-6.5",
			Category:       "speakers",
			Price:          249.99,
			WholesalePrice: 179.99,
			MinOrderQty:    5,
			MaxOrderQty:    intPtr(50),
			InStock:        100,
			CreatedAt:      created,
		},
		{
			ID:             "P002",
			Name:           "12\" Subwoofer",
			SKU:            "SW-12",
			Category:       "subwoofers",
			Price:          399.99,
			WholesalePrice: 289.99,
			MinOrderQty:    2,
			MaxOrderQty:    intPtr(20),
			InStock:        48,
			CreatedAt:      created,
		},
		{
			ID:             "P003",
			Name:           "4-Channel Amplifier 1200W",
			SKU:            "AMP-1200.4",
			Category:       "amplifiers",
			Price:          549.99,
			WholesalePrice: 399.99,
			MinOrderQty:    2,
			InStock:        35,
			CreatedAt:      created,
		},
		{
			ID:             "P004",
			Name:           "7\" Touchscreen Head Unit",
			SKU:            "HU-7TS",
			Category:       "head-units",
			Price:          329.99,
			WholesalePrice: 239.99,
			MinOrderQty:    3,
			MaxOrderQty:    intPtr(30),
			InStock:        60,
			CreatedAt:      created,
		},
		{
			ID:             "P005",
			Name:           "Sound Deadening Mat 36 sq ft",
			SKU:            "SDM-36",
			Category:       "accessories",
			Price:          89.99,
			WholesalePrice: 54.99,
			MinOrderQty:    10,
			InStock:        200,
			CreatedAt:      created,
		},
		{
			ID:             "P006",
			Name:           "8-Gauge Amp Wiring Kit",
			SKU:            "WK-8GA",
			Category:       "accessories",
			Price:          49.99,
			WholesalePrice: 29.99,
			MinOrderQty:    10,
			MaxOrderQty:    intPtr(100),
			InStock:        150,
			CreatedAt:      created,
		},
	}
}

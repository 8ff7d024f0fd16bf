package model

// CartLine represents one product's presence in the active cart. Pricing and
// ordering constraints are copied from the catalogue at add-time; later
// catalogue changes do not retroactively affect existing lines.
type CartLine struct {
	ProductID          string  `json:"productId"`
	Name               string  `json:"name"`
	SKU                string  `json:"sku"`
	Category           string  `json:"category"`
	UnitRetailPrice    float64 `json:"unitRetailPrice"`
	UnitWholesalePrice float64 `json:"unitWholesalePrice"`
	Quantity           int     `json:"quantity"`
	MinOrderQty        int     `json:"minOrderQty"`
	MaxOrderQty        *int    `json:"maxOrderQty,omitempty"`
	AvailableStock     int     `json:"availableStock"`
}

// UpperBound returns the largest quantity the line may hold: the configured
// maximum order quantity or the available stock, whichever is lower.
func (l *CartLine) UpperBound() int {
	if l.MaxOrderQty != nil && *l.MaxOrderQty < l.AvailableStock {
		return *l.MaxOrderQty
	}
	return l.AvailableStock
}

// NewCartLine builds a cart line from a catalogue product, snapshotting the
// fields the cart needs. Quantity is left for the store to clamp.
func NewCartLine(p *Product, quantity int) CartLine {
	return CartLine{
		ProductID:          p.ID,
		Name:               p.Name,
		SKU:                p.SKU,
		Category:           p.Category,
		UnitRetailPrice:    p.Price,
		UnitWholesalePrice: p.WholesalePrice,
		Quantity:           quantity,
		MinOrderQty:        p.MinOrderQty,
		MaxOrderQty:        p.MaxOrderQty,
		AvailableStock:     p.InStock,
	}
}

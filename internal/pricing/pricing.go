// Package pricing holds the arithmetic shared by the cart totals and the
// checkout pipeline so both sides round the same way.
package pricing

import "math"

// Totals is the monetary breakdown of a checkout.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Round rounds a monetary amount to cents.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// LineTotal returns the rounded extended price for one line.
func LineTotal(unitPrice float64, quantity int) float64 {
	return Round(unitPrice * float64(quantity))
}

// Tax returns the rounded tax due on a subtotal.
func Tax(subtotal, rate float64) float64 {
	return Round(subtotal * rate)
}

// Shipping returns the shipping charge for a subtotal: zero at or above the
// free-shipping threshold, the flat fee below it.
func Shipping(subtotal, freeThreshold, fee float64) float64 {
	if subtotal >= freeThreshold {
		return 0
	}
	return fee
}

// Compute builds the full totals breakdown from a subtotal. Total is fixed
// here at creation; callers must not re-derive it later.
func Compute(subtotal, taxRate, freeThreshold, shippingFee float64) Totals {
	t := Totals{
		Subtotal: Round(subtotal),
		Tax:      Tax(subtotal, taxRate),
		Shipping: Shipping(subtotal, freeThreshold, shippingFee),
	}
	t.Total = Round(t.Subtotal + t.Tax + t.Shipping)
	return t
}

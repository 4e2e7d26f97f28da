package domain

import "fmt"

const (
	// TaxRate applied to the cart subtotal.
	TaxRate = 0.0875

	// DeliveryFeeMinimum is charged when a restaurant publishes no fee.
	DeliveryFeeMinimum = 2.99
)

// CalculateTax returns the unrounded tax for a subtotal. Rounding happens
// only at the presentation boundary (FormatPrice).
func CalculateTax(subtotal float64) float64 {
	return subtotal * TaxRate
}

// DeliveryFee returns the restaurant's published fee, falling back to the
// minimum only when none was published. An explicit 0 is free delivery.
func DeliveryFee(restaurantFee *float64) float64 {
	if restaurantFee == nil {
		return DeliveryFeeMinimum
	}
	return *restaurantFee
}

// CalculateTotal composes the charge components minus an optional discount.
// The result is not clamped: a discount larger than the remaining charges
// yields a negative total.
func CalculateTotal(subtotal, deliveryFee, tax float64, discount *float64) float64 {
	d := 0.0
	if discount != nil {
		d = *discount
	}
	return subtotal + deliveryFee + tax - d
}

// FormatPrice renders an amount for display, rounding to two decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

package domain

import "time"

// Order is the historical record produced by checkout. From the cart's
// perspective it is immutable: the reorder flow only reads it.
type Order struct {
	ID              string
	Number          string
	UserID          string
	Restaurant      Restaurant
	Items           []CartItem
	Subtotal        float64
	DeliveryFee     float64
	Tax             float64
	Discount        float64
	Total           float64
	Status          OrderStatus
	DeliveryAddress Address
	PaymentMethod   string
	CreatedAt       time.Time
}

// ItemCount sums line quantities, mirroring Cart.ItemCount.
func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

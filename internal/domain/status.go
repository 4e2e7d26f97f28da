package domain

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// IsActive reports whether the order is still in flight.
func (s OrderStatus) IsActive() bool {
	return s == StatusPlaced || s == StatusPreparing || s == StatusOnTheWay
}

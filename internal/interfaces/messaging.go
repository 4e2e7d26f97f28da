package interfaces

import (
	"context"
	"time"
)

// OrderPlacedMessage is published once per successful checkout.
type OrderPlacedMessage struct {
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	UserID         string    `json:"user_id"`
	RestaurantID   string    `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	ItemCount      int       `json:"item_count"`
	Total          float64   `json:"total"`
	PlacedAt       time.Time `json:"placed_at"`
}

type MessagePublisher interface {
	PublishOrderPlaced(ctx context.Context, msg OrderPlacedMessage) error
}

type NotificationHandler func(ctx context.Context, body []byte) error

type MessageConsumer interface {
	ConsumeOrderNotifications(ctx context.Context, handler NotificationHandler) error
}

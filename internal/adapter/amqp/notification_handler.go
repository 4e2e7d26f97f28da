package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// NotificationHandler consumes order-placed events in subscriber mode.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(log logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: log}
}

func (h *NotificationHandler) HandleOrderPlaced(ctx context.Context, body []byte) error {
	var msg interfaces.OrderPlacedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("notification_decode_failed", "Failed to decode order-placed message", "", nil, err)
		return fmt.Errorf("failed to decode message: %w", err)
	}

	h.logger.Info("order_notification", fmt.Sprintf("Order %s placed at %s", msg.OrderNumber, msg.RestaurantName), "", map[string]any{
		"order_number": msg.OrderNumber,
		"restaurant":   msg.RestaurantID,
		"item_count":   msg.ItemCount,
		"total":        domain.FormatPrice(msg.Total),
	})
	return nil
}

package memory

import (
	"context"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// LogPublisher stands in for the message broker in in-memory mode: events
// are written to the structured log instead of an exchange.
type LogPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) PublishOrderPlaced(ctx context.Context, msg interfaces.OrderPlacedMessage) error {
	p.logger.Info("order_placed_event", "Order placed", "", map[string]any{
		"order_number": msg.OrderNumber,
		"restaurant":   msg.RestaurantID,
		"total":        msg.Total,
	})
	return nil
}

var _ interfaces.MessagePublisher = (*LogPublisher)(nil)

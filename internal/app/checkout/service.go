package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/cart"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// Service turns a session's cart into a placed order: price quote, gate
// checks, persistence, event publication, cart clearing.
type Service struct {
	carts     *cart.Manager
	orders    interfaces.OrderRepository
	users     interfaces.UserRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	tracer    trace.Tracer
}

func NewService(carts *cart.Manager, orders interfaces.OrderRepository, users interfaces.UserRepository, publisher interfaces.MessagePublisher, log logger.Logger, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("checkout")
	}
	return &Service{
		carts:     carts,
		orders:    orders,
		users:     users,
		publisher: publisher,
		logger:    log,
		tracer:    tracer,
	}
}

// Quote computes the checkout cost breakdown for the session's cart. All
// amounts stay unrounded; only FormattedTotal is display-rounded.
func (s *Service) Quote(ctx context.Context, sessionID string, discount *float64) (*interfaces.PriceQuote, error) {
	eng, err := s.carts.Engine(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := eng.Subtotal()
	var restaurantFee *float64
	if r := eng.Restaurant(); r != nil {
		restaurantFee = r.DeliveryFee
	}
	fee := domain.DeliveryFee(restaurantFee)
	tax := domain.CalculateTax(subtotal)
	total := domain.CalculateTotal(subtotal, fee, tax, discount)

	quote := &interfaces.PriceQuote{
		Subtotal:       subtotal,
		DeliveryFee:    fee,
		Tax:            tax,
		Total:          total,
		FormattedTotal: domain.FormatPrice(total),
	}
	if discount != nil {
		quote.Discount = *discount
	}
	return quote, nil
}

// PlaceOrder validates the placement gates (selected address, non-empty
// cart, payment method), persists the order, publishes the order-placed
// event and clears the cart. The cart is only cleared after the order is
// durably stored.
func (s *Service) PlaceOrder(ctx context.Context, cmd interfaces.PlaceOrderCommand) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.place_order")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", cmd.SessionID))

	eng, err := s.carts.Engine(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	address, err := s.users.SelectedAddress(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve delivery address: %w", err)
	}
	if !eng.CanPlaceOrder(address) {
		if address == nil {
			return nil, domain.ErrNoAddressSelected
		}
		return nil, domain.ErrEmptyCart
	}
	// Payment selection is an independent gate checked at submission.
	if cmd.PaymentMethod == "" {
		return nil, domain.ErrNoPaymentMethod
	}

	restaurant := eng.Restaurant()
	subtotal := eng.Subtotal()
	fee := domain.DeliveryFee(restaurant.DeliveryFee)
	tax := domain.CalculateTax(subtotal)
	total := domain.CalculateTotal(subtotal, fee, tax, cmd.Discount)

	number, err := s.orders.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		Number:          number,
		UserID:          cmd.UserID,
		Restaurant:      *restaurant,
		Items:           eng.Items(),
		Subtotal:        subtotal,
		DeliveryFee:     fee,
		Tax:             tax,
		Total:           total,
		Status:          domain.StatusPlaced,
		DeliveryAddress: *address,
		PaymentMethod:   cmd.PaymentMethod,
		CreatedAt:       time.Now().UTC(),
	}
	if cmd.Discount != nil {
		order.Discount = *cmd.Discount
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("order_create_failed", "Failed to persist order", "", map[string]any{
			"order_number": number,
		}, err)
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	msg := interfaces.OrderPlacedMessage{
		OrderID:        order.ID,
		OrderNumber:    order.Number,
		UserID:         order.UserID,
		RestaurantID:   order.Restaurant.ID,
		RestaurantName: order.Restaurant.Name,
		ItemCount:      order.ItemCount(),
		Total:          order.Total,
		PlacedAt:       order.CreatedAt,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, msg); err != nil {
		// The order is already durable; losing the notification must not
		// fail the checkout.
		s.logger.Error("order_publish_failed", "Failed to publish order-placed event", "", map[string]any{
			"order_number": number,
		}, err)
	}

	eng.Clear()
	if err := s.carts.Persist(ctx, cmd.SessionID); err != nil {
		s.logger.Warn("cart_persist_failed", "Failed to drop cart snapshot after checkout", "", map[string]any{
			"session_id": cmd.SessionID,
		})
	}

	s.logger.Info("order_placed", "Order placed", "", map[string]any{
		"order_number": order.Number,
		"restaurant":   order.Restaurant.ID,
		"total":        order.Total,
	})
	return order, nil
}

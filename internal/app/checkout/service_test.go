package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/memory"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/cart"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []interfaces.OrderPlacedMessage
	err      error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, msg interfaces.OrderPlacedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

var (
	bella = domain.Restaurant{ID: "rest-bella", Name: "Bella Italia", DeliveryFee: feePtr(3.99)}
	pasta = domain.MenuItem{ID: "item-pasta", RestaurantID: "rest-bella", Name: "Carbonara", Price: 15.99, IsAvailable: true}
)

func feePtr(v float64) *float64 {
	return &v
}

type fixture struct {
	svc       *Service
	carts     *cart.Manager
	orders    *memory.OrderStore
	users     *memory.UserStore
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		carts:     cart.NewManager(memory.NewCartStore(), logger.NewNop()),
		orders:    memory.NewOrderStore(),
		users:     memory.NewUserStore(),
		publisher: &recordingPublisher{},
	}
	f.svc = NewService(f.carts, f.orders, f.users, f.publisher, logger.NewNop(), nil)
	return f
}

func (f *fixture) fillCart(t *testing.T, sessionID string) {
	t.Helper()
	eng, err := f.carts.Engine(context.Background(), sessionID)
	require.NoError(t, err)
	_, err = eng.AddItem(pasta, 2, nil, "", &bella)
	require.NoError(t, err)
}

func (f *fixture) addSelectedAddress(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()
	address := &domain.Address{ID: "addr-1", UserID: userID, Street: "1 Main St"}
	require.NoError(t, f.users.CreateAddress(ctx, address))
	require.NoError(t, f.users.SelectAddress(ctx, userID, address.ID))
}

func TestQuote(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "session-1")

	quote, err := f.svc.Quote(context.Background(), "session-1", nil)
	require.NoError(t, err)

	assert.InDelta(t, 31.98, quote.Subtotal, 1e-9)
	assert.InDelta(t, 3.99, quote.DeliveryFee, 1e-9)
	assert.InDelta(t, 31.98*domain.TaxRate, quote.Tax, 1e-9)
	assert.Zero(t, quote.Discount)
	assert.InDelta(t, 31.98+3.99+31.98*domain.TaxRate, quote.Total, 1e-9)
	assert.Equal(t, domain.FormatPrice(quote.Total), quote.FormattedTotal)
}

func TestQuoteEmptyCartUsesMinimumFee(t *testing.T) {
	f := newFixture(t)

	quote, err := f.svc.Quote(context.Background(), "session-1", nil)
	require.NoError(t, err)

	assert.Zero(t, quote.Subtotal)
	assert.InDelta(t, domain.DeliveryFeeMinimum, quote.DeliveryFee, 1e-9)
}

func TestQuoteWithDiscount(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "session-1")

	discount := 10.0
	quote, err := f.svc.Quote(context.Background(), "session-1", &discount)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, quote.Discount, 1e-9)
	assert.InDelta(t, 31.98+3.99+31.98*domain.TaxRate-10, quote.Total, 1e-9)
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "session-1")
	f.addSelectedAddress(t, "user-1")
	ctx := context.Background()

	order, err := f.svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{
		SessionID:     "session-1",
		UserID:        "user-1",
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Regexp(t, `^ORD_\d{8}_\d{3}$`, order.Number)
	assert.Equal(t, domain.StatusPlaced, order.Status)
	assert.Equal(t, "rest-bella", order.Restaurant.ID)
	assert.Equal(t, "addr-1", order.DeliveryAddress.ID)
	assert.InDelta(t, 31.98+3.99+31.98*domain.TaxRate, order.Total, 1e-9)

	// Order is durable and readable back.
	stored, err := f.orders.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Number, stored.Number)

	// Event went out.
	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, order.ID, f.publisher.messages[0].OrderID)
	assert.Equal(t, 2, f.publisher.messages[0].ItemCount)

	// Cart is cleared after checkout.
	eng, err := f.carts.Engine(ctx, "session-1")
	require.NoError(t, err)
	assert.Zero(t, eng.ItemCount())
}

func TestPlaceOrderGates(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture)
		payment string
		wantErr error
	}{
		{
			name: "no selected address",
			setup: func(t *testing.T, f *fixture) {
				f.fillCart(t, "session-1")
			},
			payment: "card",
			wantErr: domain.ErrNoAddressSelected,
		},
		{
			name: "empty cart",
			setup: func(t *testing.T, f *fixture) {
				f.addSelectedAddress(t, "user-1")
			},
			payment: "card",
			wantErr: domain.ErrEmptyCart,
		},
		{
			name: "no payment method",
			setup: func(t *testing.T, f *fixture) {
				f.fillCart(t, "session-1")
				f.addSelectedAddress(t, "user-1")
			},
			payment: "",
			wantErr: domain.ErrNoPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			_, err := f.svc.PlaceOrder(context.Background(), interfaces.PlaceOrderCommand{
				SessionID:     "session-1",
				UserID:        "user-1",
				PaymentMethod: tt.payment,
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.publisher.messages, "no event for a rejected order")
		})
	}
}

func TestPlaceOrderWithDiscount(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "session-1")
	f.addSelectedAddress(t, "user-1")

	discount := 5.0
	order, err := f.svc.PlaceOrder(context.Background(), interfaces.PlaceOrderCommand{
		SessionID:     "session-1",
		UserID:        "user-1",
		PaymentMethod: "card",
		Discount:      &discount,
	})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, order.Discount, 1e-9)
	assert.InDelta(t, 31.98+3.99+31.98*domain.TaxRate-5, order.Total, 1e-9)
}

func TestPlaceOrderSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "session-1")
	f.addSelectedAddress(t, "user-1")
	f.publisher.err = errors.New("broker down")
	ctx := context.Background()

	order, err := f.svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{
		SessionID:     "session-1",
		UserID:        "user-1",
		PaymentMethod: "card",
	})
	require.NoError(t, err, "a lost notification must not fail the checkout")

	_, err = f.orders.OrderByID(ctx, order.ID)
	assert.NoError(t, err)

	eng, err := f.carts.Engine(ctx, "session-1")
	require.NoError(t, err)
	assert.Zero(t, eng.ItemCount())
}

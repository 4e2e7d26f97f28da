package reorder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/cart"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
)

// stubCatalog is a minimal catalog repository for exercising the
// reconciliation logic. gate, when set, blocks every item lookup until the
// channel is closed.
type stubCatalog struct {
	mu    sync.Mutex
	items map[string]*domain.MenuItem
	err   error
	gate  chan struct{}
}

func newStubCatalog(items ...*domain.MenuItem) *stubCatalog {
	c := &stubCatalog{items: make(map[string]*domain.MenuItem)}
	for _, item := range items {
		c.items[item.ID] = item
	}
	return c
}

func (c *stubCatalog) MenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	item, ok := c.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	found := *item
	return &found, nil
}

func (c *stubCatalog) ListRestaurants(context.Context) ([]*domain.Restaurant, error) {
	return nil, nil
}

func (c *stubCatalog) RestaurantByID(context.Context, string) (*domain.Restaurant, error) {
	return nil, domain.ErrRestaurantNotFound
}

func (c *stubCatalog) MenuByRestaurant(context.Context, string) ([]*domain.MenuItem, error) {
	return nil, nil
}

func (c *stubCatalog) SetItemAvailability(_ context.Context, id string, available bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return domain.ErrMenuItemNotFound
	}
	item.IsAvailable = available
	return nil
}

var (
	bella = domain.Restaurant{ID: "rest-bella", Name: "Bella Italia"}
	taco  = domain.Restaurant{ID: "rest-taco", Name: "Taco Loco"}
)

func menuItem(id string, price float64, available bool) *domain.MenuItem {
	return &domain.MenuItem{
		ID:           id,
		RestaurantID: "rest-bella",
		Name:         id,
		Price:        price,
		IsAvailable:  available,
	}
}

func orderWith(lines ...domain.CartItem) *domain.Order {
	return &domain.Order{
		ID:         "order-1",
		Number:     "ORD_20260801_001",
		UserID:     "user-1",
		Restaurant: bella,
		Items:      lines,
		Status:     domain.StatusDelivered,
	}
}

func orderLine(id string, price float64, qty int) domain.CartItem {
	line := domain.CartItem{
		ID:       "line-" + id,
		MenuItem: *menuItem(id, price, true),
		Quantity: qty,
	}
	line.RecalculateTotal()
	return line
}

func TestCheckAvailabilityRefreshesSnapshots(t *testing.T) {
	// Price went up since the order was placed.
	catalog := newStubCatalog(menuItem("pasta", 17.99, true))
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})

	order := orderWith(orderLine("pasta", 15.99, 2))
	result, err := svc.CheckAvailability(context.Background(), order)
	require.NoError(t, err)

	require.Len(t, result.AvailableItems, 1)
	assert.Empty(t, result.UnavailableItems)
	assert.True(t, result.AllAvailable)
	assert.False(t, result.NoneAvailable)

	refreshed := result.AvailableItems[0]
	assert.InDelta(t, 17.99, refreshed.MenuItem.Price, 1e-9, "snapshot picks up the current price")
	assert.InDelta(t, 35.98, refreshed.TotalPrice, 1e-9, "line total recomputed from the refreshed price")
	assert.Equal(t, 2, refreshed.Quantity)
}

func TestCheckAvailabilityClassifiesLines(t *testing.T) {
	catalog := newStubCatalog(
		menuItem("pasta", 15.99, true),
		menuItem("tiramisu", 7.99, false),
	)
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})

	order := orderWith(
		orderLine("pasta", 15.99, 1),
		orderLine("tiramisu", 7.99, 1),
		orderLine("vanished", 5.99, 1),
	)
	result, err := svc.CheckAvailability(context.Background(), order)
	require.NoError(t, err)

	assert.Len(t, result.AvailableItems, 1)
	assert.Len(t, result.UnavailableItems, 2)
	assert.False(t, result.AllAvailable)
	assert.False(t, result.NoneAvailable)

	// Unavailable lines keep their order-time snapshot untouched.
	for _, line := range result.UnavailableItems {
		assert.NotZero(t, line.TotalPrice)
	}
}

func TestCheckAvailabilityNoneAvailable(t *testing.T) {
	catalog := newStubCatalog()
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})

	result, err := svc.CheckAvailability(context.Background(), orderWith(orderLine("gone", 9.99, 1)))
	require.NoError(t, err)
	assert.True(t, result.NoneAvailable)
	assert.False(t, result.AllAvailable)
}

func TestCheckAvailabilityPropagatesCatalogErrors(t *testing.T) {
	catalog := newStubCatalog(menuItem("pasta", 15.99, true))
	catalog.err = errors.New("connection refused")
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})

	_, err := svc.CheckAvailability(context.Background(), orderWith(orderLine("pasta", 15.99, 1)))
	assert.Error(t, err, "a broken catalog is not the same as an unavailable item")
}

func TestIsItemAvailable(t *testing.T) {
	catalog := newStubCatalog(
		menuItem("pasta", 15.99, true),
		menuItem("tiramisu", 7.99, false),
	)
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})
	ctx := context.Background()

	assert.True(t, svc.IsItemAvailable(ctx, "pasta"))
	assert.False(t, svc.IsItemAvailable(ctx, "tiramisu"))
	assert.False(t, svc.IsItemAvailable(ctx, "vanished"))
}

func TestExecuteReorderFullSuccess(t *testing.T) {
	catalog := newStubCatalog(
		menuItem("pasta", 15.99, true),
		menuItem("salad", 8.99, true),
	)

	var success *domain.ReorderResult
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{
		OnSuccess: func(r domain.ReorderResult) { success = &r },
	})
	eng := cart.NewEngine(logger.NewNop())

	line := orderLine("pasta", 15.99, 2)
	line.SpecialInstructions = "no parmesan"
	line.SelectedCustomizations = []domain.SelectedCustomization{
		{CustomizationID: "size", SelectedOptions: []domain.SelectedOption{{OptionID: "large", Price: 3}}},
	}
	line.RecalculateTotal()
	order := orderWith(line, orderLine("salad", 8.99, 1))

	result := svc.ExecuteReorder(context.Background(), eng, "session-1", order, false)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 2, result.ItemsAdded)
	assert.Zero(t, result.UnavailableCount)
	require.NotNil(t, success)
	assert.Equal(t, result, *success)

	items := eng.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "no parmesan", items[0].SpecialInstructions)
	assert.Len(t, items[0].SelectedCustomizations, 1)
	require.NotNil(t, eng.Restaurant())
	assert.Equal(t, "rest-bella", eng.Restaurant().ID)
}

func TestExecuteReorderPartialAvailability(t *testing.T) {
	catalog := newStubCatalog(
		menuItem("pasta", 15.99, true),
		menuItem("tiramisu", 7.99, false),
	)

	var reported *domain.AvailabilityCheckResult
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{
		OnUnavailableItems: func(a domain.AvailabilityCheckResult) { reported = &a },
	})
	eng := cart.NewEngine(logger.NewNop())

	order := orderWith(orderLine("pasta", 15.99, 1), orderLine("tiramisu", 7.99, 1))
	result := svc.ExecuteReorder(context.Background(), eng, "session-1", order, false)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 1, result.ItemsAdded)
	assert.Equal(t, 1, result.UnavailableCount)
	require.NotNil(t, reported)
	assert.Len(t, reported.UnavailableItems, 1)
	assert.Len(t, eng.Items(), 1)
}

func TestExecuteReorderIncludeUnavailableNeverAddsDeadLines(t *testing.T) {
	catalog := newStubCatalog(
		menuItem("pasta", 15.99, true),
		menuItem("tiramisu", 7.99, false),
	)
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})
	eng := cart.NewEngine(logger.NewNop())

	order := orderWith(orderLine("pasta", 15.99, 1), orderLine("tiramisu", 7.99, 1))
	result := svc.ExecuteReorder(context.Background(), eng, "session-1", order, true)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 1, result.ItemsAdded)
	assert.Len(t, eng.Items(), 1)
	assert.Equal(t, "pasta", eng.Items()[0].MenuItem.ID)
}

func TestExecuteReorderNoneAvailableLeavesCartUntouched(t *testing.T) {
	catalog := newStubCatalog(menuItem("pasta", 15.99, true))

	var errMessage string
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{
		OnError: func(msg string) { errMessage = msg },
	})
	eng := cart.NewEngine(logger.NewNop())
	_, err := eng.AddItem(*menuItem("pasta", 15.99, true), 1, nil, "", &bella)
	require.NoError(t, err)

	order := orderWith(orderLine("gone", 9.99, 2))
	result := svc.ExecuteReorder(context.Background(), eng, "session-1", order, false)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, result.Error, errMessage)
	assert.Equal(t, 1, eng.ItemCount(), "a failed reorder must not mutate the cart")
}

func TestExecuteReorderClearsConflictingCart(t *testing.T) {
	catalog := newStubCatalog(menuItem("pasta", 15.99, true))
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})

	eng := cart.NewEngine(logger.NewNop())
	other := domain.MenuItem{ID: "burrito", RestaurantID: "rest-taco", Name: "Burrito", Price: 9.99, IsAvailable: true}
	_, err := eng.AddItem(other, 1, nil, "", &taco)
	require.NoError(t, err)

	result := svc.ExecuteReorder(context.Background(), eng, "session-1", orderWith(orderLine("pasta", 15.99, 1)), false)

	require.True(t, result.Success, result.Error)
	items := eng.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "pasta", items[0].MenuItem.ID, "conflicting cart is replaced, not merged")
	assert.Equal(t, "rest-bella", eng.Restaurant().ID)
}

func TestExecuteReorderRejectsConcurrentRun(t *testing.T) {
	catalog := newStubCatalog(menuItem("pasta", 15.99, true))
	catalog.gate = make(chan struct{})
	svc := NewService(catalog, logger.NewNop(), nil, Callbacks{})
	order := orderWith(orderLine("pasta", 15.99, 1))

	first := make(chan domain.ReorderResult, 1)
	go func() {
		eng := cart.NewEngine(logger.NewNop())
		first <- svc.ExecuteReorder(context.Background(), eng, "session-1", order, false)
	}()

	// Wait for the first run to claim the session.
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return svc.inFlight["session-1"]
	}, time.Second, time.Millisecond)

	blocked := svc.ExecuteReorder(context.Background(), cart.NewEngine(logger.NewNop()), "session-1", order, false)
	assert.False(t, blocked.Success)
	assert.Equal(t, domain.ErrReorderInProgress.Error(), blocked.Error)

	// A different session is not affected by the lock.
	otherGateOpen := make(chan domain.ReorderResult, 1)
	go func() {
		otherGateOpen <- svc.ExecuteReorder(context.Background(), cart.NewEngine(logger.NewNop()), "session-2", order, false)
	}()

	close(catalog.gate)
	assert.True(t, (<-first).Success)
	assert.True(t, (<-otherGateOpen).Success)

	// The session frees up once the run finishes.
	result := svc.ExecuteReorder(context.Background(), cart.NewEngine(logger.NewNop()), "session-1", order, false)
	assert.True(t, result.Success)
}

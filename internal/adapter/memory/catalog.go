package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// Catalog is an in-memory catalog repository. Every lookup sleeps for the
// configured delay, standing in for the network latency of a real menu
// backend, and respects context cancellation while waiting.
type Catalog struct {
	mu          sync.RWMutex
	restaurants map[string]*domain.Restaurant
	items       map[string]*domain.MenuItem
	delay       time.Duration
}

func NewCatalog(delay time.Duration) *Catalog {
	return &Catalog{
		restaurants: make(map[string]*domain.Restaurant),
		items:       make(map[string]*domain.MenuItem),
		delay:       delay,
	}
}

// Seed replaces the catalog contents. Intended for startup and tests.
func (c *Catalog) Seed(restaurants []*domain.Restaurant, items []*domain.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range restaurants {
		rc := *r
		c.restaurants[r.ID] = &rc
	}
	for _, m := range items {
		mc := *m
		c.items[m.ID] = &mc
	}
}

func (c *Catalog) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.delay):
		return nil
	}
}

func (c *Catalog) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Restaurant, 0, len(c.restaurants))
	for _, r := range c.restaurants {
		rc := *r
		out = append(out, &rc)
	}
	return out, nil
}

func (c *Catalog) RestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	rc := *r
	return &rc, nil
}

func (c *Catalog) MenuByRestaurant(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*domain.MenuItem
	for _, m := range c.items {
		if m.RestaurantID == restaurantID {
			mc := *m
			out = append(out, &mc)
		}
	}
	return out, nil
}

func (c *Catalog) MenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	mc := *m
	return &mc, nil
}

func (c *Catalog) SetItemAvailability(ctx context.Context, id string, available bool) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.items[id]
	if !ok {
		return domain.ErrMenuItemNotFound
	}
	m.IsAvailable = available
	return nil
}

var _ interfaces.CatalogRepository = (*Catalog)(nil)

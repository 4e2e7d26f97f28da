package memory

import (
	"context"
	"sync"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// CartStore is the in-process CartStore used in tests and in-memory mode.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]domain.Cart)}
}

func (s *CartStore) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cart
	return nil
}

func (s *CartStore) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return &cart, nil
}

func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

var _ interfaces.CartStore = (*CartStore)(nil)

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// OrderStore is an in-memory order history.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	seq    int
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*domain.Order)}
}

func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	copied := *order
	copied.Items = append([]domain.CartItem(nil), order.Items...)
	s.orders[order.ID] = &copied
	return nil
}

func (s *OrderStore) OrderByID(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	copied.Items = append([]domain.CartItem(nil), order.Items...)
	return &copied, nil
}

func (s *OrderStore) OrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Order
	for _, order := range s.orders {
		if order.UserID != userID {
			continue
		}
		copied := *order
		copied.Items = append([]domain.CartItem(nil), order.Items...)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *OrderStore) GenerateOrderNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("ORD_%s_%03d", time.Now().UTC().Format("20060102"), s.seq), nil
}

var _ interfaces.OrderRepository = (*OrderStore)(nil)

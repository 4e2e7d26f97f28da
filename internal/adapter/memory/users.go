package memory

import (
	"context"
	"sync"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// UserStore keeps accounts, address books and the per-user address
// selection in memory.
type UserStore struct {
	mu        sync.RWMutex
	users     map[string]*domain.User // keyed by email
	addresses map[string][]*domain.Address
	selected  map[string]string // userID -> addressID
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:     make(map[string]*domain.User),
		addresses: make(map[string][]*domain.Address),
		selected:  make(map[string]string),
	}
}

func (s *UserStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return domain.ErrUserExists
	}
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *UserStore) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *UserStore) CreateAddress(ctx context.Context, address *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *address
	s.addresses[address.UserID] = append(s.addresses[address.UserID], &copied)
	return nil
}

func (s *UserStore) AddressesByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Address, 0, len(s.addresses[userID]))
	for _, a := range s.addresses[userID] {
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (s *UserStore) SelectAddress(ctx context.Context, userID, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.addresses[userID] {
		if a.ID == addressID {
			s.selected[userID] = addressID
			return nil
		}
	}
	return domain.ErrAddressNotFound
}

func (s *UserStore) SelectedAddress(ctx context.Context, userID string) (*domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.selected[userID]
	if !ok {
		return nil, nil
	}
	for _, a := range s.addresses[userID] {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

var _ interfaces.UserRepository = (*UserStore)(nil)

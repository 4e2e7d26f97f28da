package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// Service owns accounts and the address book. The selected address is what
// feeds the order-placement gate.
type Service struct {
	users  interfaces.UserRepository
	logger logger.Logger
}

func NewService(users interfaces.UserRepository, log logger.Logger) *Service {
	return &Service{users: users, logger: log}
}

func (s *Service) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if _, err := s.users.UserByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user_registered", "New account created", "", map[string]any{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) AddAddress(ctx context.Context, address domain.Address) (*domain.Address, error) {
	if address.UserID == "" || address.Street == "" {
		return nil, fmt.Errorf("address requires a user and a street")
	}
	address.ID = uuid.NewString()
	if err := s.users.CreateAddress(ctx, &address); err != nil {
		return nil, err
	}

	// First address becomes the selection so checkout works out of the box.
	existing, err := s.users.AddressesByUser(ctx, address.UserID)
	if err == nil && len(existing) == 1 {
		if err := s.users.SelectAddress(ctx, address.UserID, address.ID); err != nil {
			return nil, err
		}
	}
	return &address, nil
}

func (s *Service) Addresses(ctx context.Context, userID string) ([]*domain.Address, error) {
	return s.users.AddressesByUser(ctx, userID)
}

func (s *Service) SelectAddress(ctx context.Context, userID, addressID string) error {
	return s.users.SelectAddress(ctx, userID, addressID)
}

func (s *Service) SelectedAddress(ctx context.Context, userID string) (*domain.Address, error) {
	return s.users.SelectedAddress(ctx, userID)
}

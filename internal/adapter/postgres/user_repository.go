package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type userRepository struct {
	db DB
}

func NewUserRepository(db DB) interfaces.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) CreateAddress(ctx context.Context, address *domain.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, label, street, city, zip)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		address.ID, address.UserID, address.Label, address.Street, address.City, address.Zip,
	)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

func (r *userRepository) AddressesByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	query := `
		SELECT id, user_id, label, street, city, zip
		FROM addresses
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []*domain.Address
	for rows.Next() {
		var address domain.Address
		if err := rows.Scan(&address.ID, &address.UserID, &address.Label,
			&address.Street, &address.City, &address.Zip); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, &address)
	}
	return addresses, nil
}

func (r *userRepository) SelectAddress(ctx context.Context, userID, addressID string) error {
	var owner string
	err := r.db.QueryRow(ctx, `SELECT user_id FROM addresses WHERE id = $1`, addressID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && owner != userID) {
		return domain.ErrAddressNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query address: %w", err)
	}

	query := `
		INSERT INTO selected_addresses (user_id, address_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET address_id = EXCLUDED.address_id
	`
	if _, err := r.db.Exec(ctx, query, userID, addressID); err != nil {
		return fmt.Errorf("failed to select address: %w", err)
	}
	return nil
}

func (r *userRepository) SelectedAddress(ctx context.Context, userID string) (*domain.Address, error) {
	query := `
		SELECT a.id, a.user_id, a.label, a.street, a.city, a.zip
		FROM selected_addresses s
		JOIN addresses a ON a.id = s.address_id
		WHERE s.user_id = $1
	`

	var address domain.Address
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&address.ID, &address.UserID, &address.Label, &address.Street, &address.City, &address.Zip,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query selected address: %w", err)
	}
	return &address, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// Customization definitions are stored denormalized as JSONB on the menu
// item row: they are read as a unit and never queried individually.
type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) interfaces.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	query := `
		SELECT id, name, cuisine_type, rating, delivery_time, delivery_fee, address, image_url
		FROM restaurants
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.CuisineType, &rest.Rating,
			&rest.DeliveryTime, &rest.DeliveryFee, &rest.Address, &rest.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, &rest)
	}
	return restaurants, nil
}

func (r *catalogRepository) RestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	query := `
		SELECT id, name, cuisine_type, rating, delivery_time, delivery_fee, address, image_url
		FROM restaurants
		WHERE id = $1
	`
	var rest domain.Restaurant
	err := r.db.QueryRow(ctx, query, id).Scan(&rest.ID, &rest.Name, &rest.CuisineType,
		&rest.Rating, &rest.DeliveryTime, &rest.DeliveryFee, &rest.Address, &rest.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurant: %w", err)
	}
	return &rest, nil
}

func (r *catalogRepository) MenuByRestaurant(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, description, price, category, image_url, is_available, customizations
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY category, name
	`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	var items []*domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *catalogRepository) MenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, description, price, category, image_url, is_available, customizations
		FROM menu_items
		WHERE id = $1
	`
	item, err := scanMenuItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) SetItemAvailability(ctx context.Context, id string, available bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE menu_items SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row scanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var customizations []byte
	err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
		&item.Price, &item.Category, &item.ImageURL, &item.IsAvailable, &customizations)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan menu item: %w", err)
	}
	if len(customizations) > 0 {
		if err := json.Unmarshal(customizations, &item.Customizations); err != nil {
			return nil, fmt.Errorf("failed to decode customizations for %s: %w", item.ID, err)
		}
	}
	return &item, nil
}

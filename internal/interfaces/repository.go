package interfaces

import (
	"context"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
)

// CatalogRepository is the read-mostly menu collaborator. Implementations
// return domain.ErrMenuItemNotFound / domain.ErrRestaurantNotFound for
// missing entities so callers can tell "gone" from "broken".
type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
	RestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error)
	MenuByRestaurant(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error)
	MenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error)
	SetItemAvailability(ctx context.Context, id string, available bool) error
}

// OrderRepository stores the order history consumed by the reorder flow.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	OrderByID(ctx context.Context, id string) (*domain.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// UserRepository holds accounts and address books. SelectedAddress returns
// (nil, nil) when the user has not picked a delivery address yet.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateAddress(ctx context.Context, address *domain.Address) error
	AddressesByUser(ctx context.Context, userID string) ([]*domain.Address, error)
	SelectAddress(ctx context.Context, userID, addressID string) error
	SelectedAddress(ctx context.Context, userID string) (*domain.Address, error)
}

// CartStore persists cart snapshots between processes. Load returns
// (nil, nil) when no snapshot exists for the session.
type CartStore interface {
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

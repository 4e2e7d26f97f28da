package interfaces

import (
	"context"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
)

// Commands accepted by the application services.

type AddItemCommand struct {
	SessionID           string
	MenuItemID          string
	Quantity            int
	Selections          []SelectionCommand
	SpecialInstructions string
	// ClearExisting resolves a cross-restaurant conflict by clearing the
	// cart first. The interactive flow sets it only after the user confirms.
	ClearExisting bool
}

// SelectionCommand names the chosen option ids of one customization group;
// prices are resolved from the catalog definition, never trusted from input.
type SelectionCommand struct {
	CustomizationID string
	OptionIDs       []string
}

type PlaceOrderCommand struct {
	SessionID     string
	UserID        string
	PaymentMethod string
	Discount      *float64
}

// PriceQuote is the checkout screen's cost breakdown. Amounts are unrounded;
// the Formatted* fields carry the display rendering.
type PriceQuote struct {
	Subtotal       float64
	DeliveryFee    float64
	Tax            float64
	Discount       float64
	Total          float64
	FormattedTotal string
}

// Service contracts consumed by the HTTP adapter.

type CatalogService interface {
	Restaurants(ctx context.Context) ([]*domain.Restaurant, error)
	Menu(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error)
	Item(ctx context.Context, id string) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

type CheckoutService interface {
	Quote(ctx context.Context, sessionID string, discount *float64) (*PriceQuote, error)
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error)
}

type AccountService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	AddAddress(ctx context.Context, address domain.Address) (*domain.Address, error)
	Addresses(ctx context.Context, userID string) ([]*domain.Address, error)
	SelectAddress(ctx context.Context, userID, addressID string) error
	SelectedAddress(ctx context.Context, userID string) (*domain.Address, error)
}

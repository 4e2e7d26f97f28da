package cart

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
)

// Engine is the single source of truth for one session's cart: which lines
// it holds, which restaurant it is bound to, and what it costs. Mutations
// are atomic under an internal mutex so concurrent handlers cannot
// interleave mid-operation.
//
// Invariant: all lines of a non-empty cart belong to the bound restaurant.
// AddItem enforces it at the boundary instead of trusting callers; the
// binding is set on first add and cleared whenever the cart becomes empty.
type Engine struct {
	mu     sync.Mutex
	cart   domain.Cart
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{logger: log}
}

// CanAddFromRestaurant reports whether an item of the given restaurant may
// enter the cart: the cart is empty or already bound to that restaurant.
// Callers use it to decide whether to prompt for a clear-and-add.
func (e *Engine) CanAddFromRestaurant(restaurantID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canAdd(restaurantID)
}

func (e *Engine) canAdd(restaurantID string) bool {
	return e.cart.IsEmpty() || e.cart.RestaurantID() == restaurantID
}

// SetRestaurant binds the cart to a restaurant. Switching restaurants while
// lines exist is refused; the caller clears the cart first.
func (e *Engine) SetRestaurant(restaurant *domain.Restaurant) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if restaurant == nil {
		return nil
	}
	if !e.canAdd(restaurant.ID) {
		return domain.ErrRestaurantConflict
	}
	r := *restaurant
	e.cart.Restaurant = &r
	return nil
}

// AddItem appends a new line holding a snapshot of the menu item. Lines are
// never merged: the same dish with different customizations stays distinct.
// An empty cart is bound to the supplied restaurant as a side effect. Adding
// across restaurants returns domain.ErrRestaurantConflict and leaves the
// cart untouched.
func (e *Engine) AddItem(item domain.MenuItem, quantity int, selections []domain.SelectedCustomization, instructions string, restaurant *domain.Restaurant) (domain.CartItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canAdd(item.RestaurantID) {
		return domain.CartItem{}, domain.ErrRestaurantConflict
	}
	if quantity < 1 {
		quantity = 1
	}

	line := domain.CartItem{
		ID:                     uuid.NewString(),
		MenuItem:               item,
		Quantity:               quantity,
		SelectedCustomizations: selections,
		SpecialInstructions:    instructions,
	}
	line.RecalculateTotal()

	if e.cart.IsEmpty() && restaurant != nil {
		r := *restaurant
		e.cart.Restaurant = &r
	}
	e.cart.Items = append(e.cart.Items, line)

	e.logger.Debug("cart_item_added", "Item added to cart", "", map[string]any{
		"menu_item_id": item.ID,
		"quantity":     quantity,
		"line_total":   line.TotalPrice,
	})
	return line, nil
}

// UpdateQuantity sets a line's quantity, removing the line when the new
// quantity drops to zero or below. Unknown ids are no-ops.
func (e *Engine) UpdateQuantity(cartItemID string, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		e.remove(cartItemID)
		return
	}

	for i := range e.cart.Items {
		if e.cart.Items[i].ID == cartItemID {
			e.cart.Items[i].Quantity = quantity
			e.cart.Items[i].RecalculateTotal()
			return
		}
	}
}

// RemoveItem deletes a line unconditionally. Unknown ids are no-ops.
func (e *Engine) RemoveItem(cartItemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.remove(cartItemID)
}

func (e *Engine) remove(cartItemID string) {
	for i := range e.cart.Items {
		if e.cart.Items[i].ID == cartItemID {
			e.cart.Items = append(e.cart.Items[:i], e.cart.Items[i+1:]...)
			break
		}
	}
	// Cart-empty implies no restaurant binding.
	if e.cart.IsEmpty() {
		e.cart.Restaurant = nil
	}
}

// ReplaceItem swaps the line with the same id in place, preserving cart
// order. Used by the edit flow so one edit session never duplicates a line.
// Returns false when no line has that id.
func (e *Engine) ReplaceItem(updated domain.CartItem) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.cart.Items {
		if e.cart.Items[i].ID == updated.ID {
			updated.RecalculateTotal()
			e.cart.Items[i] = updated
			return true
		}
	}
	return false
}

// Clear empties the cart and unbinds the restaurant. Idempotent.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart.Items = nil
	e.cart.Restaurant = nil
}

// Items returns a copy of the lines in insertion order.
func (e *Engine) Items() []domain.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := make([]domain.CartItem, len(e.cart.Items))
	copy(items, e.cart.Items)
	return items
}

// Item returns the line with the given id.
func (e *Engine) Item(cartItemID string) (domain.CartItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.cart.Items {
		if item.ID == cartItemID {
			return item, true
		}
	}
	return domain.CartItem{}, false
}

// Restaurant returns a copy of the bound restaurant, or nil.
func (e *Engine) Restaurant() *domain.Restaurant {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cart.Restaurant == nil {
		return nil
	}
	r := *e.cart.Restaurant
	return &r
}

// Subtotal sums line totals, consistent with the latest mutation.
func (e *Engine) Subtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Subtotal()
}

// ItemCount sums quantities across lines.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.ItemCount()
}

// CanPlaceOrder is the order-placement gate: a delivery address is selected
// and the cart is non-empty. Payment method selection is checked separately
// at submission.
func (e *Engine) CanPlaceOrder(selected *domain.Address) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return selected != nil && !e.cart.IsEmpty()
}

// Snapshot copies the cart state for persistence.
func (e *Engine) Snapshot() domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := domain.Cart{Items: make([]domain.CartItem, len(e.cart.Items))}
	copy(snap.Items, e.cart.Items)
	if e.cart.Restaurant != nil {
		r := *e.cart.Restaurant
		snap.Restaurant = &r
	}
	return snap
}

// Restore replaces the cart state from a persisted snapshot.
func (e *Engine) Restore(snap domain.Cart) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = snap
}

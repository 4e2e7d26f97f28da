package domain

// SelectedCustomization records the chosen options within one customization
// group of a cart line. Prices are denormalized from the option definitions
// at selection time.
type SelectedCustomization struct {
	CustomizationID string
	SelectedOptions []SelectedOption
}

// SelectedOption is one chosen option with its price delta.
type SelectedOption struct {
	OptionID string
	Name     string
	Price    float64
}

// CartItem is one line in the cart: a menu item snapshot plus quantity and
// customizations. ID is unique per add-to-cart action, not per dish - the
// same dish added twice with different customizations stays two lines.
type CartItem struct {
	ID                     string
	MenuItem               MenuItem
	Quantity               int
	SelectedCustomizations []SelectedCustomization
	SpecialInstructions    string
	TotalPrice             float64
}

// UnitPrice is the snapshot base price plus all selected option deltas.
func (ci CartItem) UnitPrice() float64 {
	price := ci.MenuItem.Price
	for _, sel := range ci.SelectedCustomizations {
		for _, opt := range sel.SelectedOptions {
			price += opt.Price
		}
	}
	return price
}

// RecalculateTotal refreshes the cached line total. Called after every
// mutation that can move the price: quantity change, customization re-edit,
// snapshot refresh during reorder.
func (ci *CartItem) RecalculateTotal() {
	ci.TotalPrice = ci.UnitPrice() * float64(ci.Quantity)
}

// Cart is the aggregate: an ordered list of lines bound to at most one
// restaurant. All lines of a non-empty cart belong to that restaurant.
type Cart struct {
	Items      []CartItem
	Restaurant *Restaurant
}

// Subtotal sums the cached line totals.
func (c Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.TotalPrice
	}
	return total
}

// ItemCount sums quantities, not lines. Used for cart badges.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// RestaurantID returns the bound restaurant id, or "" for an empty cart.
func (c Cart) RestaurantID() string {
	if c.Restaurant == nil {
		return ""
	}
	return c.Restaurant.ID
}

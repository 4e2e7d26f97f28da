package domain

import "errors"

var (
	ErrRestaurantConflict = errors.New("cart holds items from another restaurant")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrOrderNotFound      = errors.New("order not found")

	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoAddressSelected = errors.New("no delivery address selected")
	ErrNoPaymentMethod   = errors.New("no payment method selected")
	ErrReorderInProgress = errors.New("reorder already in progress")

	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

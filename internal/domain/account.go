package domain

import "time"

// User is an account in the delivery app. PasswordHash is a bcrypt hash,
// never the raw password.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Address is one entry in a user's address book. Exactly one address per
// user may be selected for delivery at a time; the selection gates order
// placement.
type Address struct {
	ID     string
	UserID string
	Label  string
	Street string
	City   string
	Zip    string
}

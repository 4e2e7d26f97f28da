package domain

// Restaurant is the catalog entity a cart binds to. DeliveryFee is a pointer
// because "no published fee" and "free delivery" are different things: nil
// falls back to DeliveryFeeMinimum, an explicit 0 is honored.
type Restaurant struct {
	ID           string
	Name         string
	CuisineType  string
	Rating       float64
	DeliveryTime string
	DeliveryFee  *float64
	Address      string
	ImageURL     string
}

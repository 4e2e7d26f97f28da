package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUserWithAddress(t *testing.T, ts *testServer) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/register", "", RegisterRequest{
		Email:    "jamie@example.com",
		Name:     "Jamie",
		Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[UserResponse](t, rec)

	rec = ts.do(t, http.MethodPost, "/api/users/"+user.ID+"/addresses", "", AddressRequest{
		Label:  "Home",
		Street: "1 Main St",
		City:   "Springfield",
		Zip:    "12345",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return user.ID
}

func TestGetQuote(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/cart/items", "s1", AddItemRequest{MenuItemID: "item-carbonara", Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	quote := decode[QuoteResponse](t, ts.do(t, http.MethodGet, "/api/checkout/quote", "s1", nil))
	assert.InDelta(t, 29.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 3.99, quote.DeliveryFee, 1e-9)
	assert.InDelta(t, 29.0*0.0875, quote.Tax, 1e-9)
	assert.InDelta(t, 29.0+3.99+29.0*0.0875, quote.Total, 1e-9)
}

func TestGetQuoteFreeDelivery(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/cart/items", "s1", AddItemRequest{MenuItemID: "item-miso", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	quote := decode[QuoteResponse](t, ts.do(t, http.MethodGet, "/api/checkout/quote", "s1", nil))
	assert.Zero(t, quote.DeliveryFee, "a published zero fee is free delivery, not the minimum")
}

func TestGetQuoteMinimumFallback(t *testing.T) {
	ts := newTestServer(t)

	// Taco Verde publishes no delivery fee at all.
	rec := ts.do(t, http.MethodPost, "/api/cart/items", "s1", AddItemRequest{MenuItemID: "item-al-pastor", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	quote := decode[QuoteResponse](t, ts.do(t, http.MethodGet, "/api/checkout/quote", "s1", nil))
	assert.InDelta(t, 2.99, quote.DeliveryFee, 1e-9)
}

func TestGetQuoteWithDiscount(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/cart/items", "s1", AddItemRequest{MenuItemID: "item-carbonara", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	quote := decode[QuoteResponse](t, ts.do(t, http.MethodGet, "/api/checkout/quote?discount=5", "s1", nil))
	assert.InDelta(t, 5.0, quote.Discount, 1e-9)

	rec = ts.do(t, http.MethodGet, "/api/checkout/quote?discount=-1", "s1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrderFlow(t *testing.T) {
	ts := newTestServer(t)
	userID := registerUserWithAddress(t, ts)

	rec := ts.do(t, http.MethodPost, "/api/cart/items", "s1", AddItemRequest{MenuItemID: "item-carbonara", Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/checkout", "s1", PlaceOrderRequest{UserID: userID, PaymentMethod: "card"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[PlaceOrderResponse](t, rec)
	assert.Regexp(t, `^ORD_\d{8}_\d{3}$`, placed.OrderNumber)
	assert.Equal(t, "placed", placed.Status)

	// Cart is empty after checkout.
	got := decode[CartResponse](t, ts.do(t, http.MethodGet, "/api/cart", "s1", nil))
	assert.Zero(t, got.ItemCount)

	// The order shows up in the user's history.
	rec = ts.do(t, http.MethodGet, "/api/orders?user_id="+userID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]map[string]any](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, placed.OrderID, history[0]["id"])
}

func TestPlaceOrderGateResponses(t *testing.T) {
	ts := newTestServer(t)
	userID := registerUserWithAddress(t, ts)

	// Empty cart.
	rec := ts.do(t, http.MethodPost, "/api/checkout", "s1", PlaceOrderRequest{UserID: userID, PaymentMethod: "card"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	add := ts.do(t, http.MethodPost, "/api/cart/items", "s1", AddItemRequest{MenuItemID: "item-carbonara", Quantity: 1})
	require.Equal(t, http.StatusCreated, add.Code)

	// Missing payment method.
	rec = ts.do(t, http.MethodPost, "/api/checkout", "s1", PlaceOrderRequest{UserID: userID})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// User without a selected address.
	rec = ts.do(t, http.MethodPost, "/api/checkout", "s1", PlaceOrderRequest{UserID: "user-without-address", PaymentMethod: "card"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Missing user id fails validation outright.
	rec = ts.do(t, http.MethodPost, "/api/checkout", "s1", PlaceOrderRequest{PaymentMethod: "card"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

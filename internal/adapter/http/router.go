package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
)

type RouterDeps struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Reorder  *ReorderHandler
	Catalog  *CatalogHandler
	Account  *AccountHandler
	Logger   logger.Logger
}

// NewRouter wires all API routes. Handlers are wrapped with recovery and
// request logging; the whole mux is traced via otelhttp in main.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", deps.Account.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", deps.Account.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/addresses", deps.Account.AddAddress).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/addresses", deps.Account.ListAddresses).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/addresses/selected", deps.Account.GetSelectedAddress).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/addresses/{addressID}/select", deps.Account.SelectAddress).Methods(http.MethodPost)

	api.HandleFunc("/restaurants", deps.Catalog.ListRestaurants).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{id}/menu", deps.Catalog.GetMenu).Methods(http.MethodGet)
	api.HandleFunc("/menu-items/{id}", deps.Catalog.GetMenuItem).Methods(http.MethodGet)
	api.HandleFunc("/menu-items/{id}/availability", deps.Catalog.SetAvailability).Methods(http.MethodPatch)

	api.HandleFunc("/cart", deps.Cart.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", deps.Cart.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", deps.Cart.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id}", deps.Cart.EditItem).Methods(http.MethodPut)
	api.HandleFunc("/cart/items/{id}", deps.Cart.UpdateQuantity).Methods(http.MethodPatch)
	api.HandleFunc("/cart/items/{id}", deps.Cart.RemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items/{id}/selections", deps.Cart.GetItemSelections).Methods(http.MethodGet)

	api.HandleFunc("/checkout/quote", deps.Checkout.GetQuote).Methods(http.MethodGet)
	api.HandleFunc("/checkout", deps.Checkout.PlaceOrder).Methods(http.MethodPost)

	api.HandleFunc("/orders", deps.Reorder.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/availability", deps.Reorder.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/reorder", deps.Reorder.ExecuteReorder).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = LoggingMiddleware(deps.Logger)(handler)
	handler = RecoveryMiddleware(deps.Logger)(handler)
	return otelhttp.NewHandler(handler, "maestro-delivery-api")
}

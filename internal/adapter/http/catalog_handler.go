package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type CatalogHandler struct {
	catalog interfaces.CatalogService
	logger  logger.Logger
}

func NewCatalogHandler(catalog interfaces.CatalogService, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: log}
}

type RestaurantResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CuisineType string   `json:"cuisine_type"`
	Rating      float64  `json:"rating"`
	DeliveryFee *float64 `json:"delivery_fee"`
	ImageURL    string   `json:"image_url,omitempty"`
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.catalog.Restaurants(r.Context())
	if err != nil {
		respondError(w, "Failed to load restaurants", http.StatusInternalServerError, nil)
		return
	}

	out := make([]RestaurantResponse, 0, len(restaurants))
	for _, rest := range restaurants {
		out = append(out, RestaurantResponse{
			ID:          rest.ID,
			Name:        rest.Name,
			CuisineType: rest.CuisineType,
			Rating:      rest.Rating,
			DeliveryFee: rest.DeliveryFee,
			ImageURL:    rest.ImageURL,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.catalog.Menu(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrRestaurantNotFound) {
		respondError(w, "Restaurant not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Failed to load menu", http.StatusInternalServerError, nil)
		return
	}
	respondJSON(w, http.StatusOK, menu)
}

func (h *CatalogHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Item(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrMenuItemNotFound) {
		respondError(w, "Menu item not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Failed to load menu item", http.StatusInternalServerError, nil)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if req.IsAvailable == nil {
		respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
			{Field: "is_available", Message: "is_available is required"},
		})
		return
	}

	err := h.catalog.SetAvailability(r.Context(), mux.Vars(r)["id"], *req.IsAvailable)
	if errors.Is(err, domain.ErrMenuItemNotFound) {
		respondError(w, "Menu item not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Failed to update availability", http.StatusInternalServerError, nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"is_available": *req.IsAvailable})
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/cart"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type CartHandler struct {
	carts   *cart.Manager
	catalog interfaces.CatalogService
	logger  logger.Logger
}

func NewCartHandler(carts *cart.Manager, catalog interfaces.CatalogService, log logger.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, logger: log}
}

type SelectionRequest struct {
	CustomizationID string   `json:"customization_id"`
	OptionIDs       []string `json:"option_ids"`
}

type AddItemRequest struct {
	MenuItemID          string             `json:"menu_item_id"`
	Quantity            int                `json:"quantity"`
	Selections          []SelectionRequest `json:"selections,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	ClearExisting       bool               `json:"clear_existing,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ID                  string             `json:"id"`
	MenuItemID          string             `json:"menu_item_id"`
	Name                string             `json:"name"`
	Quantity            int                `json:"quantity"`
	Selections          []SelectionRequest `json:"selections,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	UnitPrice           float64            `json:"unit_price"`
	TotalPrice          float64            `json:"total_price"`
}

type CartResponse struct {
	Items             []CartItemResponse `json:"items"`
	RestaurantID      string             `json:"restaurant_id,omitempty"`
	RestaurantName    string             `json:"restaurant_name,omitempty"`
	Subtotal          float64            `json:"subtotal"`
	FormattedSubtotal string             `json:"formatted_subtotal"`
	ItemCount         int                `json:"item_count"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	eng, err := h.carts.Engine(r.Context(), sessionID(r))
	if err != nil {
		h.logger.Error("cart_load_failed", "Failed to load cart", "", nil, err)
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(eng))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if validationErrors := validateAddItemRequest(req); len(validationErrors) > 0 {
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	item, err := h.catalog.Item(r.Context(), req.MenuItemID)
	if errors.Is(err, domain.ErrMenuItemNotFound) {
		respondError(w, "Menu item not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Catalog unavailable", http.StatusBadGateway, nil)
		return
	}
	if !item.IsAvailable {
		respondError(w, "Menu item is currently unavailable", http.StatusConflict, nil)
		return
	}

	selections, validationErrors := resolveSelections(item, req.Selections)
	if len(validationErrors) > 0 {
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	restaurant, err := h.restaurantOf(r, item.RestaurantID)
	if err != nil {
		respondError(w, "Catalog unavailable", http.StatusBadGateway, nil)
		return
	}

	eng, err := h.carts.Engine(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}

	// Cross-restaurant adds need explicit confirmation: the client retries
	// with clear_existing once the user approves dropping the current cart.
	if !eng.CanAddFromRestaurant(item.RestaurantID) {
		if !req.ClearExisting {
			respondError(w, "Cart holds items from another restaurant", http.StatusConflict, nil)
			return
		}
		eng.Clear()
	}

	line, err := eng.AddItem(*item, req.Quantity, selections, strings.TrimSpace(req.SpecialInstructions), restaurant)
	if err != nil {
		respondError(w, err.Error(), http.StatusConflict, nil)
		return
	}
	h.persist(r, sessionID(r))

	respondJSON(w, http.StatusCreated, itemResponse(line))
}

// EditItem replaces an existing line in place (same id, same position) with
// re-resolved customizations, so an edit session never duplicates a line.
func (h *CartHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	cartItemID := mux.Vars(r)["id"]

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	eng, err := h.carts.Engine(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}

	existing, ok := eng.Item(cartItemID)
	if !ok {
		respondError(w, "Cart item not found", http.StatusNotFound, nil)
		return
	}

	item, err := h.catalog.Item(r.Context(), existing.MenuItem.ID)
	if errors.Is(err, domain.ErrMenuItemNotFound) {
		respondError(w, "Menu item no longer exists", http.StatusConflict, nil)
		return
	}
	if err != nil {
		respondError(w, "Catalog unavailable", http.StatusBadGateway, nil)
		return
	}

	selections, validationErrors := resolveSelections(item, req.Selections)
	if len(validationErrors) > 0 {
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	updated := existing
	updated.MenuItem = *item
	updated.SelectedCustomizations = selections
	updated.SpecialInstructions = strings.TrimSpace(req.SpecialInstructions)
	if req.Quantity > 0 {
		updated.Quantity = req.Quantity
	}

	if !eng.ReplaceItem(updated) {
		respondError(w, "Cart item not found", http.StatusNotFound, nil)
		return
	}
	h.persist(r, sessionID(r))

	line, _ := eng.Item(cartItemID)
	respondJSON(w, http.StatusOK, itemResponse(line))
}

// GetItemSelections returns the edit form's pre-fill state: the line's
// selected option ids keyed by customization group.
func (h *CartHandler) GetItemSelections(w http.ResponseWriter, r *http.Request) {
	eng, err := h.carts.Engine(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}

	item, ok := eng.Item(mux.Vars(r)["id"])
	if !ok {
		respondError(w, "Cart item not found", http.StatusNotFound, nil)
		return
	}

	groups := domain.SelectionsByGroup(item.SelectedCustomizations)
	out := make(map[string][]string, len(groups))
	for groupID, options := range groups {
		ids := make([]string, 0, len(options))
		for optionID := range options {
			ids = append(ids, optionID)
		}
		out[groupID] = ids
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	eng, err := h.carts.Engine(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}

	eng.UpdateQuantity(mux.Vars(r)["id"], req.Quantity)
	h.persist(r, sessionID(r))
	respondJSON(w, http.StatusOK, cartResponse(eng))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	eng, err := h.carts.Engine(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}

	eng.RemoveItem(mux.Vars(r)["id"])
	h.persist(r, sessionID(r))
	respondJSON(w, http.StatusOK, cartResponse(eng))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	eng, err := h.carts.Engine(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}

	eng.Clear()
	h.persist(r, sessionID(r))
	respondJSON(w, http.StatusOK, cartResponse(eng))
}

func (h *CartHandler) restaurantOf(r *http.Request, restaurantID string) (*domain.Restaurant, error) {
	restaurants, err := h.catalog.Restaurants(r.Context())
	if err != nil {
		return nil, err
	}
	for _, rest := range restaurants {
		if rest.ID == restaurantID {
			return rest, nil
		}
	}
	return nil, nil
}

func (h *CartHandler) persist(r *http.Request, session string) {
	if err := h.carts.Persist(r.Context(), session); err != nil {
		h.logger.Warn("cart_persist_failed", "Failed to persist cart snapshot", "", map[string]any{
			"session_id": session,
		})
	}
}

func validateAddItemRequest(req AddItemRequest) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(req.MenuItemID) == "" {
		errs = append(errs, ValidationError{Field: "menu_item_id", Message: "menu item id is required"})
	}
	if req.Quantity < 1 {
		errs = append(errs, ValidationError{Field: "quantity", Message: "quantity must be at least 1"})
	} else if req.Quantity > 99 {
		errs = append(errs, ValidationError{Field: "quantity", Message: "quantity must not exceed 99"})
	}
	if len(req.SpecialInstructions) > 500 {
		errs = append(errs, ValidationError{Field: "special_instructions", Message: "special instructions must not exceed 500 characters"})
	}
	return errs
}

// resolveSelections maps requested option ids onto the item's customization
// definitions, denormalizing option prices. Prices are never taken from the
// request.
func resolveSelections(item *domain.MenuItem, reqs []SelectionRequest) ([]domain.SelectedCustomization, []ValidationError) {
	var selections []domain.SelectedCustomization
	var errs []ValidationError

	for i, req := range reqs {
		group, ok := item.CustomizationByID(req.CustomizationID)
		if !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("selections[%d].customization_id", i),
				Message: fmt.Sprintf("unknown customization %q", req.CustomizationID),
			})
			continue
		}
		if group.MaxChoices > 0 && len(req.OptionIDs) > group.MaxChoices {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("selections[%d].option_ids", i),
				Message: fmt.Sprintf("%s allows at most %d choices", group.Name, group.MaxChoices),
			})
			continue
		}

		sel := domain.SelectedCustomization{CustomizationID: group.ID}
		for _, optionID := range req.OptionIDs {
			opt, ok := group.Option(optionID)
			if !ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("selections[%d].option_ids", i),
					Message: fmt.Sprintf("unknown option %q in %s", optionID, group.Name),
				})
				continue
			}
			sel.SelectedOptions = append(sel.SelectedOptions, domain.SelectedOption{
				OptionID: opt.ID,
				Name:     opt.Name,
				Price:    opt.Price,
			})
		}
		selections = append(selections, sel)
	}
	return selections, errs
}

func itemResponse(line domain.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:                  line.ID,
		MenuItemID:          line.MenuItem.ID,
		Name:                line.MenuItem.Name,
		Quantity:            line.Quantity,
		SpecialInstructions: line.SpecialInstructions,
		UnitPrice:           line.UnitPrice(),
		TotalPrice:          line.TotalPrice,
	}
	for _, sel := range line.SelectedCustomizations {
		sr := SelectionRequest{CustomizationID: sel.CustomizationID}
		for _, opt := range sel.SelectedOptions {
			sr.OptionIDs = append(sr.OptionIDs, opt.OptionID)
		}
		resp.Selections = append(resp.Selections, sr)
	}
	return resp
}

func cartResponse(eng *cart.Engine) CartResponse {
	items := eng.Items()
	resp := CartResponse{
		Items:             make([]CartItemResponse, 0, len(items)),
		Subtotal:          eng.Subtotal(),
		FormattedSubtotal: domain.FormatPrice(eng.Subtotal()),
		ItemCount:         eng.ItemCount(),
	}
	for _, line := range items {
		resp.Items = append(resp.Items, itemResponse(line))
	}
	if rest := eng.Restaurant(); rest != nil {
		resp.RestaurantID = rest.ID
		resp.RestaurantName = rest.Name
	}
	return resp
}

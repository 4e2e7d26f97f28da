package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/cart"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/reorder"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type ReorderHandler struct {
	orders  interfaces.OrderRepository
	service *reorder.Service
	carts   *cart.Manager
	logger  logger.Logger
}

func NewReorderHandler(orders interfaces.OrderRepository, service *reorder.Service, carts *cart.Manager, log logger.Logger) *ReorderHandler {
	return &ReorderHandler{orders: orders, service: service, carts: carts, logger: log}
}

type ReorderRequest struct {
	IncludeUnavailable bool `json:"include_unavailable,omitempty"`
}

type AvailabilityResponse struct {
	AvailableItems   []CartItemResponse `json:"available_items"`
	UnavailableItems []CartItemResponse `json:"unavailable_items"`
	AllAvailable     bool               `json:"all_available"`
	NoneAvailable    bool               `json:"none_available"`
}

type ReorderResponse struct {
	Success          bool   `json:"success"`
	ItemsAdded       int    `json:"items_added"`
	UnavailableCount int    `json:"unavailable_count"`
	Error            string `json:"error,omitempty"`
}

func (h *ReorderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, "user_id query parameter is required", http.StatusBadRequest, nil)
		return
	}

	orders, err := h.orders.OrdersByUser(r.Context(), userID)
	if err != nil {
		respondError(w, "Failed to load orders", http.StatusInternalServerError, nil)
		return
	}

	out := make([]map[string]any, 0, len(orders))
	for _, order := range orders {
		out = append(out, map[string]any{
			"id":         order.ID,
			"number":     order.Number,
			"restaurant": order.Restaurant.Name,
			"status":     order.Status,
			"total":      order.Total,
			"created_at": order.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *ReorderHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.OrderByID(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrOrderNotFound) {
		respondError(w, "Order not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Failed to load order", http.StatusInternalServerError, nil)
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), order)
	if err != nil {
		h.logger.Error("availability_check_failed", "Availability check failed", "", nil, err)
		respondError(w, "Availability check failed", http.StatusBadGateway, nil)
		return
	}

	resp := AvailabilityResponse{
		AvailableItems:   make([]CartItemResponse, 0, len(availability.AvailableItems)),
		UnavailableItems: make([]CartItemResponse, 0, len(availability.UnavailableItems)),
		AllAvailable:     availability.AllAvailable,
		NoneAvailable:    availability.NoneAvailable,
	}
	for _, line := range availability.AvailableItems {
		resp.AvailableItems = append(resp.AvailableItems, itemResponse(line))
	}
	for _, line := range availability.UnavailableItems {
		resp.UnavailableItems = append(resp.UnavailableItems, itemResponse(line))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ReorderHandler) ExecuteReorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	order, err := h.orders.OrderByID(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrOrderNotFound) {
		respondError(w, "Order not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Failed to load order", http.StatusInternalServerError, nil)
		return
	}

	session := sessionID(r)
	eng, err := h.carts.Engine(r.Context(), session)
	if err != nil {
		respondError(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}

	result := h.service.ExecuteReorder(r.Context(), eng, session, order, req.IncludeUnavailable)
	if result.Success {
		if err := h.carts.Persist(r.Context(), session); err != nil {
			h.logger.Warn("cart_persist_failed", "Failed to persist cart snapshot", "", map[string]any{
				"session_id": session,
			})
		}
	}

	// Failures are part of the result contract, not HTTP errors.
	respondJSON(w, http.StatusOK, ReorderResponse{
		Success:          result.Success,
		ItemsAdded:       result.ItemsAdded,
		UnavailableCount: result.UnavailableCount,
		Error:            result.Error,
	})
}

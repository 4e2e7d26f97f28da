package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type CheckoutHandler struct {
	service interfaces.CheckoutService
	logger  logger.Logger
}

func NewCheckoutHandler(service interfaces.CheckoutService, log logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, logger: log}
}

type PlaceOrderRequest struct {
	UserID        string   `json:"user_id"`
	PaymentMethod string   `json:"payment_method"`
	Discount      *float64 `json:"discount,omitempty"`
}

type PlaceOrderResponse struct {
	OrderID        string  `json:"order_id"`
	OrderNumber    string  `json:"order_number"`
	Status         string  `json:"status"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
}

type QuoteResponse struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryFee    float64 `json:"delivery_fee"`
	Tax            float64 `json:"tax"`
	Discount       float64 `json:"discount"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
}

func (h *CheckoutHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	var discount *float64
	if raw := r.URL.Query().Get("discount"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			respondError(w, "Invalid discount", http.StatusBadRequest, nil)
			return
		}
		discount = &value
	}

	quote, err := h.service.Quote(r.Context(), sessionID(r), discount)
	if err != nil {
		h.logger.Error("quote_failed", "Failed to compute quote", "", nil, err)
		respondError(w, "Failed to compute quote", http.StatusInternalServerError, nil)
		return
	}

	respondJSON(w, http.StatusOK, QuoteResponse{
		Subtotal:       quote.Subtotal,
		DeliveryFee:    quote.DeliveryFee,
		Tax:            quote.Tax,
		Discount:       quote.Discount,
		Total:          quote.Total,
		FormattedTotal: quote.FormattedTotal,
	})
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if req.UserID == "" {
		respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
			{Field: "user_id", Message: "user id is required"},
		})
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), interfaces.PlaceOrderCommand{
		SessionID:     sessionID(r),
		UserID:        req.UserID,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
	})
	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrNoAddressSelected),
		errors.Is(err, domain.ErrNoPaymentMethod):
		respondError(w, err.Error(), http.StatusUnprocessableEntity, nil)
		return
	case err != nil:
		h.logger.Error("place_order_failed", "Failed to place order", "", nil, err)
		respondError(w, "Failed to place order", http.StatusInternalServerError, nil)
		return
	}

	respondJSON(w, http.StatusCreated, PlaceOrderResponse{
		OrderID:        order.ID,
		OrderNumber:    order.Number,
		Status:         string(order.Status),
		Total:          order.Total,
		FormattedTotal: domain.FormatPrice(order.Total),
	})
}

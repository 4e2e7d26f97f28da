package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type AccountHandler struct {
	service interfaces.AccountService
	logger  logger.Logger
}

func NewAccountHandler(service interfaces.AccountService, log logger.Logger) *AccountHandler {
	return &AccountHandler{service: service, logger: log}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AddressRequest struct {
	Label  string `json:"label"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

type AddressResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	var errs []ValidationError
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, ValidationError{Field: "email", Message: "email is required"})
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "name is required"})
	}
	if req.Password == "" {
		errs = append(errs, ValidationError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		respondError(w, "Validation failed", http.StatusBadRequest, errs)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		respondError(w, "User already exists", http.StatusConflict, nil)
		return
	case err != nil:
		respondError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	respondJSON(w, http.StatusCreated, UserResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		respondError(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}
	if err != nil {
		respondError(w, "Login failed", http.StatusInternalServerError, nil)
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}

func (h *AccountHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if strings.TrimSpace(req.Street) == "" {
		respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
			{Field: "street", Message: "street is required"},
		})
		return
	}

	address, err := h.service.AddAddress(r.Context(), domain.Address{
		UserID: mux.Vars(r)["id"],
		Label:  req.Label,
		Street: req.Street,
		City:   req.City,
		Zip:    req.Zip,
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		respondError(w, "User not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Failed to add address", http.StatusInternalServerError, nil)
		return
	}

	respondJSON(w, http.StatusCreated, addressResponse(*address))
}

func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.service.Addresses(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, "Failed to load addresses", http.StatusInternalServerError, nil)
		return
	}

	out := make([]AddressResponse, 0, len(addresses))
	for _, address := range addresses {
		out = append(out, addressResponse(*address))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *AccountHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := h.service.SelectAddress(r.Context(), vars["id"], vars["addressID"])
	if errors.Is(err, domain.ErrAddressNotFound) {
		respondError(w, "Address not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, "Failed to select address", http.StatusInternalServerError, nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"selected_address_id": vars["addressID"]})
}

func (h *AccountHandler) GetSelectedAddress(w http.ResponseWriter, r *http.Request) {
	address, err := h.service.SelectedAddress(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, "Failed to load selected address", http.StatusInternalServerError, nil)
		return
	}
	if address == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, addressResponse(*address))
}

func addressResponse(address domain.Address) AddressResponse {
	return AddressResponse{
		ID:     address.ID,
		Label:  address.Label,
		Street: address.Street,
		City:   address.City,
		Zip:    address.Zip,
	}
}

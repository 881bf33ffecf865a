package handler

import (
	"net/http"

	"slay-store/internal/model"
	"slay-store/internal/service"

	"github.com/rs/zerolog"
)

// AddressHandler handles saved address requests. The owner is identified by
// the email in the query (reads, deletes) or body (writes).
type AddressHandler struct {
	service service.AddressService
	logger  zerolog.Logger
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(service service.AddressService, logger zerolog.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		logger:  logger.With().Str("handler", "address").Logger(),
	}
}

// List handles GET /api/user/addresses?email=.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

// Create handles POST /api/user/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.AddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	addr, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, addr)
}

// Update handles PUT /api/user/addresses/{id}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd model.AddressUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	addr, err := h.service.Update(r.Context(), r.PathValue("id"), &upd)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

// Delete handles DELETE /api/user/addresses/{id}?email=.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id"), r.URL.Query().Get("email")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Address deleted successfully"})
}

// PaymentMethodHandler handles saved card requests, scoped like AddressHandler.
type PaymentMethodHandler struct {
	service service.PaymentMethodService
	logger  zerolog.Logger
}

// NewPaymentMethodHandler creates a new payment method handler.
func NewPaymentMethodHandler(service service.PaymentMethodService, logger zerolog.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment-method").Logger(),
	}
}

// List handles GET /api/user/payment-methods?email=.
func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

// Create handles POST /api/user/payment-methods.
func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentMethodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pm, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, pm)
}

// Update handles PUT /api/user/payment-methods/{id}.
func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd model.PaymentMethodUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	pm, err := h.service.Update(r.Context(), r.PathValue("id"), &upd)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, pm)
}

// Delete handles DELETE /api/user/payment-methods/{id}?email=.
func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id"), r.URL.Query().Get("email")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Payment method deleted successfully"})
}

package handler

import (
	"net/http"

	"slay-store/internal/model"
	"slay-store/internal/service"

	"github.com/rs/zerolog"
)

// CancelRequest is the payload of POST /api/orders/{id}/cancel.
type CancelRequest struct {
	Email string `json:"email"`
}

// OrderHandler handles customer and admin order requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Msg("order placed")
	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders?email=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListForUser(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}?email=.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), r.PathValue("id"), r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Update handles PUT /api/orders/{id}. The body carries the owner's email.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd model.OrderUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	order, err := h.service.Update(r.Context(), r.PathValue("id"), &upd)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Cancel handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Cancel(r.Context(), r.PathValue("id"), req.Email)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// AdminList handles GET /api/admin/orders?status=&paymentStatus=&limit=&skip=.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	filter := model.OrderFilter{
		Status:        model.OrderStatus(r.URL.Query().Get("status")),
		PaymentStatus: model.PaymentStatus(r.URL.Query().Get("paymentStatus")),
	}
	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if filter.Skip, err = queryInt(r, "skip"); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	page, err := h.service.AdminList(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// AdminGet handles GET /api/admin/orders/{id}.
func (h *OrderHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.AdminGet(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// AdminUpdate handles PUT /api/admin/orders/{id}.
func (h *OrderHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var upd model.OrderUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	order, err := h.service.AdminUpdate(r.Context(), r.PathValue("id"), &upd)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Str("order_id", order.ID).
		Str("status", string(order.Status)).
		Str("payment_status", string(order.PaymentStatus)).
		Msg("order updated by admin")
	writeJSON(w, http.StatusOK, order)
}

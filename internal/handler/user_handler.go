package handler

import (
	"net/http"

	"slay-store/internal/auth"
	"slay-store/internal/cart"
	"slay-store/internal/model"
	"slay-store/internal/service"

	"github.com/rs/zerolog"
)

// CartRequest is the payload of PUT /api/user/cart.
type CartRequest struct {
	Email string      `json:"email"`
	Cart  []cart.Line `json:"cart"`
}

// CartResponse wraps the stored cart snapshot.
type CartResponse struct {
	Cart cart.Cart `json:"cart"`
}

// UserHandler handles account, profile and admin user requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/user/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/user/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /api/user/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, r, model.ErrUnauthenticated, h.logger)
		return
	}

	user, err := h.service.GetProfile(r.Context(), id.UserID)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/user/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, r, model.ErrUnauthenticated, h.logger)
		return
	}

	var upd model.ProfileUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), id.UserID, &upd)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetCart handles GET /api/user/cart?email=.
func (h *UserHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCart(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, CartResponse{Cart: c})
}

// SaveCart handles PUT /api/user/cart.
func (h *UserHandler) SaveCart(w http.ResponseWriter, r *http.Request) {
	var req CartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.service.SaveCart(r.Context(), req.Email, req.Cart)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, CartResponse{Cart: c})
}

// List handles GET /api/admin/users?limit=&skip=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	skip, err := queryInt(r, "skip")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	users, err := h.service.ListUsers(r.Context(), limit, skip)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// SetRole handles PUT /api/admin/users/{id}/role.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var upd model.RoleUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	user, err := h.service.SetRole(r.Context(), r.PathValue("id"), &upd)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

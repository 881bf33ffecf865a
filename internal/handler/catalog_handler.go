package handler

import (
	"net/http"

	"slay-store/internal/model"
	"slay-store/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalog product requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/public/products?category=&bestseller=&onSale=&inStock=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{Category: model.Category(r.URL.Query().Get("category"))}

	var err error
	if filter.Bestseller, err = queryBool(r, "bestseller"); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if filter.OnSale, err = queryBool(r, "onSale"); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if filter.InStock, err = queryBool(r, "inStock"); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/public/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if !decodeJSON(w, r, &p) {
		return
	}

	created, err := h.service.Create(r.Context(), &p)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if !decodeJSON(w, r, &p) {
		return
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), &p)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

// BannerHandler handles promotional banner requests.
type BannerHandler struct {
	service service.BannerService
	logger  zerolog.Logger
}

// NewBannerHandler creates a new banner handler.
func NewBannerHandler(service service.BannerService, logger zerolog.Logger) *BannerHandler {
	return &BannerHandler{
		service: service,
		logger:  logger.With().Str("handler", "banner").Logger(),
	}
}

// Public handles GET /api/public/banners: active banners only.
func (h *BannerHandler) Public(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List handles GET /api/admin/banners: every banner.
func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *BannerHandler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	banners, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

// Create handles POST /api/admin/banners.
func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var b model.Banner
	if !decodeJSON(w, r, &b) {
		return
	}

	created, err := h.service.Create(r.Context(), &b)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/banners/{id}.
func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var b model.Banner
	if !decodeJSON(w, r, &b) {
		return
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), &b)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/banners/{id}.
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Banner deleted successfully"})
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slay-store/internal/model"
	"slay-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter, newest first.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("invalid category: %s", filter.Category))
	}

	products, err := s.productRepo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Str("category", string(filter.Category)).
			Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", string(filter.Category)).
		Msg("retrieved products")

	return products, nil
}

// Get retrieves a single product by ID.
func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		s.logger.Debug().Str("product_id", id).Msg("malformed product ID")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

func prepareProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	return nil
}

// Create adds a product to the catalog.
func (s *productService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := prepareProduct(p); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")

	return p, nil
}

// Update replaces every field of an existing product.
func (s *productService) Update(ctx context.Context, id string, p *model.Product) (*model.Product, error) {
	if p == nil {
		return nil, model.NewValidationError("request body is required")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := prepareProduct(p); err != nil {
		return nil, err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	ok, err := s.productRepo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrProductNotFound
	}

	return p, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return model.ErrProductNotFound
	}
	ok, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

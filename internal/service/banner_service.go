package service

import (
	"context"
	"time"

	"slay-store/internal/model"
	"slay-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type bannerService struct {
	banners repository.BannerRepository
	logger  zerolog.Logger
}

// NewBannerService creates a new banner service.
func NewBannerService(banners repository.BannerRepository, logger zerolog.Logger) BannerService {
	return &bannerService{
		banners: banners,
		logger:  logger.With().Str("service", "banner").Logger(),
	}
}

func (s *bannerService) List(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	return s.banners.List(ctx, activeOnly)
}

func (s *bannerService) Create(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	if b == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := validateStruct(b); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.banners.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info().Str("banner_id", b.ID).Msg("banner created")

	return b, nil
}

// Update replaces a banner and touches its update time.
func (s *bannerService) Update(ctx context.Context, id string, b *model.Banner) (*model.Banner, error) {
	if b == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if !validID(id) {
		return nil, model.ErrBannerNotFound
	}
	if err := validateStruct(b); err != nil {
		return nil, err
	}

	existing, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, model.ErrBannerNotFound
	}

	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()

	ok, err := s.banners.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrBannerNotFound
	}
	return b, nil
}

func (s *bannerService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return model.ErrBannerNotFound
	}
	ok, err := s.banners.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrBannerNotFound
	}

	s.logger.Info().Str("banner_id", id).Msg("banner deleted")

	return nil
}

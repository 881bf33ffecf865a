package service

import (
	"context"
	"fmt"
	"time"

	"slay-store/internal/model"
	"slay-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// addressService implements AddressService.
type addressService struct {
	users     repository.UserRepository
	addresses repository.AddressRepository
	logger    zerolog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(users repository.UserRepository, addresses repository.AddressRepository, logger zerolog.Logger) AddressService {
	return &addressService{
		users:     users,
		addresses: addresses,
		logger:    logger.With().Str("service", "address").Logger(),
	}
}

// List returns the owner's addresses, default first.
func (s *addressService) List(ctx context.Context, email string) ([]model.Address, error) {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return nil, err
	}
	return s.addresses.ListByUser(ctx, user.ID)
}

// Create saves a new address. A default address replaces any previous one.
func (s *addressService) Create(ctx context.Context, req *model.AddressRequest) (*model.Address, error) {
	if req == nil {
		return nil, model.NewValidationError("request body is required")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return nil, model.ErrEmailRequired
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := resolveOwner(ctx, s.users, req.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	addr := &model.Address{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Landmark:     req.Landmark,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
		AddressType:  req.AddressType,
		IsDefault:    req.IsDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyAddressDefaults(addr)

	if err := s.addresses.Create(ctx, addr); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("address_id", addr.ID).
		Str("user_id", user.ID).
		Bool("default", addr.IsDefault).
		Msg("address created")

	return addr, nil
}

func applyAddressDefaults(a *model.Address) {
	if a.Country == "" {
		a.Country = model.DefaultCountry
	}
	if a.AddressType == "" {
		a.AddressType = model.AddressTypeHome
	}
}

// owned loads an address and checks it belongs to userID.
func (s *addressService) owned(ctx context.Context, id, userID string) (*model.Address, error) {
	if !validID(id) {
		return nil, model.ErrAddressNotFound
	}
	addr, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	if addr == nil || addr.UserID != userID {
		return nil, model.ErrAddressNotFound
	}
	return addr, nil
}

// Update applies a partial update to an owned address.
func (s *addressService) Update(ctx context.Context, id string, upd *model.AddressUpdate) (*model.Address, error) {
	if upd == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if normalizeEmail(upd.Email) == "" {
		return nil, model.ErrEmailRequired
	}
	if err := validateStruct(upd); err != nil {
		return nil, err
	}

	user, err := resolveOwner(ctx, s.users, upd.Email)
	if err != nil {
		return nil, err
	}
	addr, err := s.owned(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	upd.Apply(addr)
	applyAddressDefaults(addr)
	addr.UpdatedAt = time.Now().UTC()

	if err := s.addresses.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// Delete removes an owned address.
func (s *addressService) Delete(ctx context.Context, id, email string) error {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return err
	}
	if !validID(id) {
		return model.ErrAddressNotFound
	}

	deleted, err := s.addresses.Delete(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrAddressNotFound
	}

	s.logger.Info().Str("address_id", id).Str("user_id", user.ID).Msg("address deleted")

	return nil
}

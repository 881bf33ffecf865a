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

// paymentMethodService implements PaymentMethodService.
type paymentMethodService struct {
	users   repository.UserRepository
	methods repository.PaymentMethodRepository
	logger  zerolog.Logger
}

// NewPaymentMethodService creates a new saved card service.
func NewPaymentMethodService(users repository.UserRepository, methods repository.PaymentMethodRepository, logger zerolog.Logger) PaymentMethodService {
	return &paymentMethodService{
		users:   users,
		methods: methods,
		logger:  logger.With().Str("service", "payment_method").Logger(),
	}
}

func (s *paymentMethodService) List(ctx context.Context, email string) ([]model.PaymentMethod, error) {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return nil, err
	}
	return s.methods.ListByUser(ctx, user.ID)
}

// Create saves a card, keeping only the last four digits of its number.
func (s *paymentMethodService) Create(ctx context.Context, req *model.PaymentMethodRequest) (*model.PaymentMethod, error) {
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
	pm := &model.PaymentMethod{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		CardHolderName: req.CardHolderName,
		ExpiryDate:     req.ExpiryDate,
		IsDefault:      req.IsDefault,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	pm.SetCardNumber(req.CardNumber)

	if err := s.methods.Create(ctx, pm); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_method_id", pm.ID).
		Str("user_id", user.ID).
		Str("card_type", string(pm.CardType)).
		Bool("default", pm.IsDefault).
		Msg("payment method created")

	return pm, nil
}

func (s *paymentMethodService) owned(ctx context.Context, id, userID string) (*model.PaymentMethod, error) {
	if !validID(id) {
		return nil, model.ErrPaymentNotFound
	}
	pm, err := s.methods.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	if pm == nil || pm.UserID != userID {
		return nil, model.ErrPaymentNotFound
	}
	return pm, nil
}

// Update applies a partial update to an owned card.
func (s *paymentMethodService) Update(ctx context.Context, id string, upd *model.PaymentMethodUpdate) (*model.PaymentMethod, error) {
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
	pm, err := s.owned(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	upd.Apply(pm)
	pm.UpdatedAt = time.Now().UTC()

	if err := s.methods.Update(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *paymentMethodService) Delete(ctx context.Context, id, email string) error {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return err
	}
	if !validID(id) {
		return model.ErrPaymentNotFound
	}

	deleted, err := s.methods.Delete(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrPaymentNotFound
	}

	s.logger.Info().Str("payment_method_id", id).Str("user_id", user.ID).Msg("payment method deleted")

	return nil
}

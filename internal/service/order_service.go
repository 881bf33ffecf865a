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

const (
	defaultPageSize = 50
	maxPageSize     = 100

	// cancelAttempts bounds the retries when a concurrent write moves an
	// order between two cancellable statuses.
	cancelAttempts = 3
)

// orderService implements OrderService.
type orderService struct {
	users  repository.UserRepository
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	users repository.UserRepository,
	orders repository.OrderRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		users:  users,
		orders: orders,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// Create places an order. Items, address and pricing are stored exactly as
// submitted.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if req == nil {
		return nil, model.NewValidationError("request body is required")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return nil, model.ErrEmailRequired
	}
	if err := validateStruct(req); err != nil {
		s.logger.Debug().Err(err).Str("email", req.Email).Msg("order request rejected")
		return nil, err
	}

	paymentStatus := model.PaymentStatusPending
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, model.NewValidationError(fmt.Sprintf("invalid payment status: %s", *req.PaymentStatus))
		}
		paymentStatus = *req.PaymentStatus
	}

	user, err := resolveOwner(ctx, s.users, req.Email)
	if err != nil {
		return nil, err
	}

	shipping := req.ShippingAddress
	if shipping.Country == "" {
		shipping.Country = model.DefaultCountry
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Items:           req.Items,
		ShippingAddress: shipping,
		PaymentMethod:   req.PaymentMethod,
		Pricing:         req.Pricing,
		Status:          model.OrderStatusPending,
		PaymentStatus:   paymentStatus,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := order.EnsureOrderNumber(now); err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("user_id", user.ID).
		Int("item_count", len(order.Items)).
		Float64("total", order.Pricing.Total).
		Msg("order created successfully")

	return order, nil
}

// load fetches an order by id. A malformed id is reported as not found.
func (s *orderService) load(ctx context.Context, id string) (*model.Order, error) {
	if !validID(id) {
		return nil, model.ErrOrderNotFound
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// loadOwned fetches an order and checks it belongs to the user behind email.
func (s *orderService) loadOwned(ctx context.Context, id, email string) (*model.Order, error) {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return nil, err
	}
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID {
		s.logger.Debug().Str("order_id", id).Str("user_id", user.ID).Msg("order belongs to another user")
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id, email string) (*model.Order, error) {
	return s.loadOwned(ctx, id, email)
}

// ListForUser returns the user's orders, newest first.
func (s *orderService) ListForUser(ctx context.Context, email string) ([]model.Order, error) {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, user.ID)
}

// Update applies a partial update to an order owned by upd.Email.
func (s *orderService) Update(ctx context.Context, id string, upd *model.OrderUpdate) (*model.Order, error) {
	if upd == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	order, err := s.loadOwned(ctx, id, upd.Email)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, order, upd)
}

func (s *orderService) apply(ctx context.Context, order *model.Order, upd *model.OrderUpdate) (*model.Order, error) {
	order.ApplyUpdate(*upd)
	order.UpdatedAt = time.Now().UTC()

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("status", string(order.Status)).
		Str("payment_status", string(order.PaymentStatus)).
		Msg("order updated")

	return order, nil
}

// Cancel applies the customer cancellation. The write only lands if the
// stored status is still the one the transition was computed from.
func (s *orderService) Cancel(ctx context.Context, id, email string) (*model.Order, error) {
	order, err := s.loadOwned(ctx, id, email)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		observed := order.Status
		if err := order.Cancel(); err != nil {
			s.logger.Debug().
				Str("order_id", id).
				Str("status", string(observed)).
				Msg("order not cancellable")
			return nil, err
		}
		order.UpdatedAt = time.Now().UTC()

		ok, err := s.orders.UpdateIfStatus(ctx, order, observed)
		if err != nil {
			return nil, err
		}
		if ok {
			s.logger.Info().
				Str("order_id", id).
				Str("payment_status", string(order.PaymentStatus)).
				Msg("order cancelled")
			return order, nil
		}

		s.logger.Warn().Str("order_id", id).Int("attempt", attempt).Msg("order changed during cancellation")
		if attempt == cancelAttempts {
			return nil, model.ErrNotCancellable
		}
		if order, err = s.load(ctx, id); err != nil {
			return nil, err
		}
	}
}

// AdminList returns a filtered page of all orders.
func (s *orderService) AdminList(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("invalid order status: %s", filter.Status))
	}
	if filter.PaymentStatus != "" && !filter.PaymentStatus.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("invalid payment status: %s", filter.PaymentStatus))
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &model.OrderPage{
		Orders: orders,
		Total:  total,
		Limit:  filter.Limit,
		Skip:   filter.Skip,
	}, nil
}

func (s *orderService) AdminGet(ctx context.Context, id string) (*model.Order, error) {
	return s.load(ctx, id)
}

// AdminUpdate overwrites any supplied field without transition checks.
func (s *orderService) AdminUpdate(ctx context.Context, id string, upd *model.OrderUpdate) (*model.Order, error) {
	if upd == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, order, upd)
}

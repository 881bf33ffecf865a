package repository

import (
	"context"
	"encoding/json"

	"slay-store/internal/model"
)

// UserRepository defines the interface for user data access operations.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields model.ErrEmailTaken.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Update persists profile fields and role.
	Update(ctx context.Context, user *model.User) error

	// UpdateCart replaces the stored cart snapshot.
	UpdateCart(ctx context.Context, id string, cart json.RawMessage) error

	// List retrieves users newest first.
	List(ctx context.Context, limit, offset int) ([]model.User, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products matching the filter, newest first.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a product.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites a product. Returns false when it does not exist.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. Returns false when it does not exist.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the number of products.
	Count(ctx context.Context) (int, error)
}

// BannerRepository defines the interface for banner data access operations.
type BannerRepository interface {
	// List retrieves banners by ascending order, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]model.Banner, error)

	GetByID(ctx context.Context, id string) (*model.Banner, error)

	Create(ctx context.Context, banner *model.Banner) error

	// Update overwrites a banner and touches updated_at.
	Update(ctx context.Context, banner *model.Banner) (bool, error)

	Delete(ctx context.Context, id string) (bool, error)
}

// AddressRepository defines the interface for address data access operations.
// Create and Update clear every other default of the same user in the same
// transaction when the written address is the default.
type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Address, error)
	GetByID(ctx context.Context, id string) (*model.Address, error)
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// PaymentMethodRepository defines the interface for saved card data access
// operations. Default handling matches AddressRepository.
type PaymentMethodRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.PaymentMethod, error)
	GetByID(ctx context.Context, id string) (*model.PaymentMethod, error)
	Create(ctx context.Context, method *model.PaymentMethod) error
	Update(ctx context.Context, method *model.PaymentMethod) error
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts a new order.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// ListByUser retrieves a user's orders newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// List retrieves a filtered page of all orders and the total match count.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)

	// Update persists status, payment status, tracking number and notes.
	Update(ctx context.Context, order *model.Order) error

	// UpdateIfStatus is Update guarded by the current status still being
	// expected. Returns false when the guard did not match.
	UpdateIfStatus(ctx context.Context, order *model.Order, expected model.OrderStatus) (bool, error)
}

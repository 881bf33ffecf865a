package service

import (
	"context"

	"slay-store/internal/auth"
	"slay-store/internal/cart"
	"slay-store/internal/model"
)

// UserService defines account, profile and session operations.
type UserService interface {
	// Register creates an account and signs the caller in.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Authenticate verifies a bearer token and re-resolves its user.
	Authenticate(ctx context.Context, token string) (auth.Identity, error)

	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, upd *model.ProfileUpdate) (*model.User, error)

	// ListUsers and SetRole are admin operations.
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
	SetRole(ctx context.Context, userID string, upd *model.RoleUpdate) (*model.User, error)

	// GetCart and SaveCart manage the server-side cart snapshot keyed by email.
	GetCart(ctx context.Context, email string) (cart.Cart, error)
	SaveCart(ctx context.Context, email string, lines []cart.Line) (cart.Cart, error)
}

// AddressService defines saved address operations. The owner is the user
// resolved from the supplied email.
type AddressService interface {
	List(ctx context.Context, email string) ([]model.Address, error)
	Create(ctx context.Context, req *model.AddressRequest) (*model.Address, error)
	Update(ctx context.Context, id string, upd *model.AddressUpdate) (*model.Address, error)
	Delete(ctx context.Context, id, email string) error
}

// PaymentMethodService defines saved card operations, scoped like AddressService.
type PaymentMethodService interface {
	List(ctx context.Context, email string) ([]model.PaymentMethod, error)
	Create(ctx context.Context, req *model.PaymentMethodRequest) (*model.PaymentMethod, error)
	Update(ctx context.Context, id string, upd *model.PaymentMethodUpdate) (*model.PaymentMethod, error)
	Delete(ctx context.Context, id, email string) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// Create places an order for the user resolved from req.Email.
	Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// Get, ListForUser, Update and Cancel only see orders owned by the user
	// resolved from email.
	Get(ctx context.Context, id, email string) (*model.Order, error)
	ListForUser(ctx context.Context, email string) ([]model.Order, error)
	Update(ctx context.Context, id string, upd *model.OrderUpdate) (*model.Order, error)
	Cancel(ctx context.Context, id, email string) (*model.Order, error)

	// AdminList, AdminGet and AdminUpdate bypass per-user scoping.
	AdminList(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error)
	AdminGet(ctx context.Context, id string) (*model.Order, error)
	AdminUpdate(ctx context.Context, id string, upd *model.OrderUpdate) (*model.Order, error)
}

// ProductService defines operations for catalog management.
type ProductService interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Update(ctx context.Context, id string, p *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

// BannerService defines operations for promotional banners.
type BannerService interface {
	List(ctx context.Context, activeOnly bool) ([]model.Banner, error)
	Create(ctx context.Context, b *model.Banner) (*model.Banner, error)
	Update(ctx context.Context, id string, b *model.Banner) (*model.Banner, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"slay-store/internal/auth"
	"slay-store/internal/cart"
	"slay-store/internal/model"
	"slay-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
	Parse(token string) (auth.Identity, error)
}

// userService implements UserService.
type userService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, tokens TokenIssuer, logger zerolog.Logger) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) signIn(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}

// Register creates an account and signs the caller in.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, model.NewValidationError("request body is required")
	}
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", req.Email).Msg("registration with existing email")
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         model.RoleUser,
		Cart:         json.RawMessage("[]"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return s.signIn(user)
}

// Login verifies credentials and issues a bearer token.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, model.NewValidationError("request body is required")
	}
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.IsDeleted || !auth.CheckPassword(req.Password, user.PasswordHash) {
		s.logger.Debug().Str("email", req.Email).Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	return s.signIn(user)
}

// Authenticate verifies a bearer token and re-resolves its user. The
// returned identity carries the stored email and role.
func (s *userService) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Identity{}, model.ErrInvalidToken
	}
	if !validID(id.UserID) {
		return auth.Identity{}, model.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, id.UserID)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("failed to resolve token user: %w", err)
	}
	if user == nil || user.IsDeleted {
		return auth.Identity{}, model.ErrUnauthenticated
	}

	return auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*model.User, error) {
	if !validID(userID) {
		return nil, model.ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// GetProfile returns the user with the given id.
func (s *userService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.getUser(ctx, userID)
}

// UpdateProfile changes name, phone and profile picture.
func (s *userService) UpdateProfile(ctx context.Context, userID string, upd *model.ProfileUpdate) (*model.User, error) {
	if upd == nil {
		return nil, model.NewValidationError("request body is required")
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, model.NewValidationError("name cannot be empty")
		}
		user.Name = name
	}
	if upd.Phone != nil {
		user.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.ProfilePicture != nil {
		user.ProfilePicture = *upd.ProfilePicture
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns a page of accounts, newest first.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// SetRole promotes or demotes an account.
func (s *userService) SetRole(ctx context.Context, userID string, upd *model.RoleUpdate) (*model.User, error) {
	if upd == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := validateStruct(upd); err != nil {
		return nil, err
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = upd.Role
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user role changed")

	return user, nil
}

// GetCart returns the stored cart snapshot. Entries that do not decode as
// cart lines are dropped.
func (s *userService) GetCart(ctx context.Context, email string) (cart.Cart, error) {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return nil, err
	}
	if len(user.Cart) == 0 {
		return cart.Cart{}, nil
	}

	var lines []cart.Line
	if err := json.Unmarshal(user.Cart, &lines); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("stored cart is not a line list")
		return cart.Cart{}, nil
	}
	return cart.Normalize(lines), nil
}

// SaveCart merges duplicate lines and replaces the stored snapshot.
func (s *userService) SaveCart(ctx context.Context, email string, lines []cart.Line) (cart.Cart, error) {
	user, err := resolveOwner(ctx, s.users, email)
	if err != nil {
		return nil, err
	}

	c := cart.Normalize(lines)
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.users.UpdateCart(ctx, user.ID, data); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("user_id", user.ID).Int("lines", len(c)).Msg("cart saved")

	return c, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"slay-store/internal/model"
	"slay-store/internal/repository"

	"github.com/google/uuid"
)

// normalizeEmail lower-cases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// resolveOwner looks up the account identified by email. Unknown and
// soft-deleted accounts are both reported as model.ErrUserNotFound.
func resolveOwner(ctx context.Context, users repository.UserRepository, email string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, model.ErrEmailRequired
	}

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil || user.IsDeleted {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// validID reports whether id can name a stored resource.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

package ports

import (
	"context"

	"github.com/teconect/accounts-api/internal/core/domain"
)

// UserUpdateInput carries a partial self-service update. A nil field is
// untouched; a non-nil field is applied (and validated) even when empty.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// AuthGate resolves a bearer token into a live, active user and refreshes
// the user's last_activity as a side effect.
type AuthGate interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// AccountService defines the self-service account operations.
type AccountService interface {
	Register(ctx context.Context, name, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	SelfUpdate(ctx context.Context, user *domain.User, input UserUpdateInput) (*domain.User, error)
	SelfDelete(ctx context.Context, user *domain.User) error
}

package ports

import (
	"context"
	"time"

	"github.com/teconect/accounts-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
//
// Create and Update must map storage-level uniqueness violations on username
// and email to domain.ErrUserExists and domain.ErrEmailInUse respectively, so
// a check-then-insert race still surfaces as a Conflict to the caller.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)

	// TouchActivity sets the user's last_activity timestamp. Called by the
	// authentication gate on every successful token resolution.
	TouchActivity(ctx context.Context, id string, at time.Time) error

	// CountOnline counts active users whose last_activity is at or after
	// the given instant.
	CountOnline(ctx context.Context, since time.Time) (int64, error)
}

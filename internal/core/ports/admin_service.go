package ports

import (
	"context"
	"time"

	"github.com/teconect/accounts-api/internal/core/domain"
)

// AdminUpdateInput carries a partial admin edit of another user. There is
// deliberately no password field on this path.
type AdminUpdateInput struct {
	Name  *string
	Email *string
}

// AdminService defines the privileged user-management operations. Every
// method checks that the caller holds the admin or root role and returns
// domain.ErrForbidden otherwise.
type AdminService interface {
	ListUsers(ctx context.Context, caller *domain.User) ([]domain.User, error)
	CountUsers(ctx context.Context, caller *domain.User) (int64, error)

	// CountOnline counts active users seen within the window. A window
	// <= 0 uses the service default (5 minutes).
	CountOnline(ctx context.Context, caller *domain.User, window time.Duration) (int64, error)

	Suspend(ctx context.Context, caller *domain.User, id string) (*domain.User, error)
	Activate(ctx context.Context, caller *domain.User, id string) (*domain.User, error)
	Delete(ctx context.Context, caller *domain.User, id string) (*domain.User, error)
	Update(ctx context.Context, caller *domain.User, id string, input AdminUpdateInput) (*domain.User, error)
}

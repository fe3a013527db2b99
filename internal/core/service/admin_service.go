package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/teconect/accounts-api/internal/core/domain"
	"github.com/teconect/accounts-api/internal/core/ports"
)

// DefaultOnlineWindow is how recently a user must have been seen by the
// authentication gate to count as online. The 15-minute "last login" variant
// that once existed alongside it was a bug; last_activity over 5 minutes is
// the single policy.
const DefaultOnlineWindow = 5 * time.Minute

// AdminService implements privileged user management. Every operation is
// gated on the admin or root role before touching the repository.
type AdminService struct {
	repo ports.UserRepository
	now  func() time.Time
}

func NewAdminService(repo ports.UserRepository) *AdminService {
	return &AdminService{repo: repo, now: time.Now}
}

func (s *AdminService) authorize(caller *domain.User) error {
	return RequireRole(caller, domain.RoleAdmin, domain.RoleRoot)
}

// ListUsers returns every user record.
func (s *AdminService) ListUsers(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if err := s.authorize(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// CountUsers returns the total number of accounts.
func (s *AdminService) CountUsers(ctx context.Context, caller *domain.User) (int64, error) {
	if err := s.authorize(caller); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx)
}

// CountOnline counts active users whose last_activity falls within the
// window. window <= 0 uses DefaultOnlineWindow.
func (s *AdminService) CountOnline(ctx context.Context, caller *domain.User, window time.Duration) (int64, error) {
	if err := s.authorize(caller); err != nil {
		return 0, err
	}
	if window <= 0 {
		window = DefaultOnlineWindow
	}
	return s.repo.CountOnline(ctx, s.now().UTC().Add(-window))
}

// Suspend sets is_active=false on the target account, blocking both login
// and token resolution until it is activated again.
func (s *AdminService) Suspend(ctx context.Context, caller *domain.User, id string) (*domain.User, error) {
	return s.setActive(ctx, caller, id, false)
}

// Activate sets is_active=true on the target account.
func (s *AdminService) Activate(ctx context.Context, caller *domain.User, id string) (*domain.User, error) {
	return s.setActive(ctx, caller, id, true)
}

func (s *AdminService) setActive(ctx context.Context, caller *domain.User, id string, active bool) (*domain.User, error) {
	if err := s.authorize(caller); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	user.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the target account immediately. No tombstone is kept.
func (s *AdminService) Delete(ctx context.Context, caller *domain.User, id string) (*domain.User, error) {
	if err := s.authorize(caller); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial name/email edit to the target account with the
// same uniqueness semantics as self-service edit. Password changes are not
// permitted through this path.
func (s *AdminService) Update(ctx context.Context, caller *domain.User, id string, input ports.AdminUpdateInput) (*domain.User, error) {
	if err := s.authorize(caller); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, domain.ErrInvalidInput
		}
		if err := s.checkEmailFree(ctx, *input.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) checkEmailFree(ctx context.Context, email, exceptID string) error {
	owner, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if owner.ID != exceptID {
			return domain.ErrEmailInUse
		}
		return nil
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	return err
}

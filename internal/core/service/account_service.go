package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/teconect/accounts-api/internal/core/domain"
	"github.com/teconect/accounts-api/internal/core/ports"
)

// AccountService implements registration, login and self-service operations.
type AccountService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	now    func() time.Time
}

func NewAccountService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, tokens: tokens, now: time.Now}
}

// Register creates a new account with the default role. Username and email
// must be unused; matching is case-sensitive, exactly as stored. There is no
// auto-login: the caller logs in separately.
func (s *AccountService) Register(ctx context.Context, name, username, email, password string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(username) == "" ||
		strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.checkUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		Role:         domain.RoleUser,
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

// Login checks credentials and issues a session token with the default TTL.
//
// The existence+password check runs before the suspended check: a suspended
// user presenting the right password gets ErrUserSuspended, while a wrong
// password always gets ErrInvalidCredentials regardless of account state.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", domain.ErrUserSuspended
	}

	return s.tokens.Issue(user.Username, 0)
}

// SelfUpdate applies a partial update to the caller's own record. Nil fields
// stay untouched; a set email is re-checked for uniqueness against all other
// users, and a set password is re-hashed.
func (s *AccountService) SelfUpdate(ctx context.Context, user *domain.User, input ports.UserUpdateInput) (*domain.User, error) {
	updated := *user

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		updated.Name = *input.Name
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, domain.ErrInvalidInput
		}
		if err := s.checkEmailFree(ctx, *input.Email, user.ID); err != nil {
			return nil, err
		}
		updated.Email = *input.Email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, domain.ErrInvalidInput
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	updated.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SelfDelete removes the caller's own record immediately and irreversibly.
func (s *AccountService) SelfDelete(ctx context.Context, user *domain.User) error {
	return s.repo.Delete(ctx, user.ID)
}

func (s *AccountService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return domain.ErrUserExists
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	return err
}

// checkEmailFree fails with ErrEmailInUse when another user (any user when
// exceptID is empty) already owns the email.
func (s *AccountService) checkEmailFree(ctx context.Context, email, exceptID string) error {
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

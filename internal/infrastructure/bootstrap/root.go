// Package bootstrap seeds the accounts the service cannot function without.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teconect/accounts-api/internal/core/domain"
	"github.com/teconect/accounts-api/internal/core/ports"
	"github.com/teconect/accounts-api/internal/infrastructure/config"
)

// EnsureRootUser creates the privileged root account when it does not exist
// yet. Idempotent, keyed on the configured username: a second run against a
// seeded database is a no-op. The default password comes from configuration
// and is expected to be rotated by the operator after first start.
func EnsureRootUser(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, cfg config.RootConfig, log zerolog.Logger) error {
	_, err := repo.FindByUsername(ctx, cfg.Username)
	if err == nil {
		log.Debug().Str("username", cfg.Username).Msg("root user already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup root user: %w", err)
	}

	hash, err := hasher.Hash(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	now := time.Now().UTC()
	root := &domain.User{
		Name:         cfg.Name,
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		IsActive:     true,
		Role:         domain.RoleRoot,
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := repo.Create(ctx, root); err != nil {
		// Two instances racing at startup: the other one won, which is
		// exactly the idempotent outcome we want.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("create root user: %w", err)
	}

	log.Info().Str("username", cfg.Username).Msg("root user created")
	return nil
}

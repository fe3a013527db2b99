package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/teconect/accounts-api/internal/core/domain"
	"github.com/teconect/accounts-api/internal/core/ports"
)

// AuthGate turns a bearer token into a live, active user record. Every
// successful resolution also refreshes the user's last_activity, which is
// what makes the online-user count work without a separate heartbeat
// channel. Callers must not skip the gate on protected operations.
type AuthGate struct {
	tokens ports.TokenService
	repo   ports.UserRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthGate(tokens ports.TokenService, repo ports.UserRepository, log zerolog.Logger) *AuthGate {
	return &AuthGate{tokens: tokens, repo: repo, log: log, now: time.Now}
}

// Resolve verifies the token, loads the subject's user record, rejects
// suspended accounts, and touches last_activity.
//
// Error contract: any token problem or an unknown subject is
// domain.ErrInvalidToken (the caller is unauthenticated); a valid token for
// a suspended account is domain.ErrUserSuspended (authenticated but
// forbidden).
func (g *AuthGate) Resolve(ctx context.Context, token string) (*domain.User, error) {
	subject, err := g.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := g.repo.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserSuspended
	}

	// Liveness heartbeat. The request already authenticated, so a failed
	// touch only degrades the online count; it does not fail the request.
	at := g.now().UTC()
	if err := g.repo.TouchActivity(ctx, user.ID, at); err != nil {
		g.log.Warn().Err(err).Str("user_id", user.ID).Msg("last_activity touch failed")
	} else {
		user.LastActivity = at
	}

	return user, nil
}

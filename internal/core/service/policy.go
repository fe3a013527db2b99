package service

import (
	"github.com/teconect/accounts-api/internal/core/domain"
)

// RequireRole checks that user holds one of the allowed roles. Pure function,
// no I/O; only meaningful after the gate has resolved an active user.
func RequireRole(user *domain.User, allowed ...string) error {
	if user == nil {
		return domain.ErrForbidden
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}

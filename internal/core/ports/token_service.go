package ports

import "time"

// TokenService issues and verifies signed, time-bound session tokens.
type TokenService interface {
	// Issue signs a token for the given subject (username). A ttl <= 0
	// falls back to the configured default.
	Issue(subject string, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the embedded subject.
	// Every failure mode is domain.ErrInvalidToken.
	Verify(token string) (string, error)
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teconect/accounts-api/internal/core/domain"
)

const defaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies HMAC-signed JWTs carrying a username as
// subject. Tokens are integrity-protected, not encrypted: the payload must
// never carry anything beyond the subject and timestamps.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService. algorithm selects the HMAC variant
// ("HS256", "HS384" or "HS512"); anything else falls back to HS256. A
// defaultTTL <= 0 falls back to 30 minutes.
func NewTokenService(secret, algorithm string, defaultTTL time.Duration) *TokenService {
	method := jwt.SigningMethodHS256
	switch algorithm {
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	}
	if defaultTTL <= 0 {
		defaultTTL = defaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    defaultTTL,
		now:    time.Now,
	}
}

// Issue signs a token for the given subject. ttl <= 0 uses the default.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify validates signature and expiry and returns the token subject. All
// failure modes collapse into domain.ErrInvalidToken so the caller cannot
// distinguish a forged token from an expired one.
func (s *TokenService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrInvalidToken
	}
	return subject, nil
}

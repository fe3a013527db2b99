package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// countingLimiter allows the first n calls per scope and denies the rest.
type countingLimiter struct {
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, scope, _ string, limit int) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.counts == nil {
		l.counts = make(map[string]int)
	}
	l.counts[scope]++
	return l.counts[scope] <= limit, nil
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	e := echo.New()
	limiter := &countingLimiter{}
	mw := RateLimit(limiter, "login", 2, zerolog.Nop())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	e := echo.New()
	limiter := &countingLimiter{}
	mw := RateLimit(limiter, "login", 1, zerolog.Nop())

	run := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		_ = handler(c)
		return rec
	}

	if rec := run(); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := run(); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpenWhenBackendDown(t *testing.T) {
	e := echo.New()
	limiter := &countingLimiter{err: errors.New("redis down")}
	mw := RateLimit(limiter, "login", 1, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rec.Code)
	}
}

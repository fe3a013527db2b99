package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teconect/accounts-api/internal/core/domain"
	"github.com/teconect/accounts-api/internal/core/ports"
)

// stubAccountService records calls and returns canned results.
type stubAccountService struct {
	registerErr error
	loginToken  string
	loginErr    error

	lastRegister [4]string
	lastLogin    [2]string
}

func (s *stubAccountService) Register(_ context.Context, name, username, email, password string) (*domain.User, error) {
	s.lastRegister = [4]string{name, username, email, password}
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "1", Name: name, Username: username, Email: email, Role: domain.RoleUser, IsActive: true}, nil
}

func (s *stubAccountService) Login(_ context.Context, username, password string) (string, error) {
	s.lastLogin = [2]string{username, password}
	return s.loginToken, s.loginErr
}

func (s *stubAccountService) SelfUpdate(_ context.Context, user *domain.User, input ports.UserUpdateInput) (*domain.User, error) {
	updated := *user
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Email != nil {
		updated.Email = *input.Email
	}
	return &updated, nil
}

func (s *stubAccountService) SelfDelete(_ context.Context, _ *domain.User) error { return nil }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	svc := &stubAccountService{}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/register",
		`{"name":"Alice A","username":"alice","email":"alice@example.com","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastRegister != [4]string{"Alice A", "alice", "alice@example.com", "secret1"} {
		t.Fatalf("service called with wrong args: %v", svc.lastRegister)
	}
	if strings.Contains(rec.Body.String(), "secret1") {
		t.Fatalf("response leaks the password")
	}
}

func TestAuthHandler_Register_BadEmail(t *testing.T) {
	e := newEcho()
	svc := &stubAccountService{}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/register",
		`{"name":"Alice","username":"alice","email":"not-an-email","password":"pw"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed email, got %d", rec.Code)
	}
	if svc.lastRegister[1] != "" {
		t.Fatalf("service must not be called on validation failure")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAccountService{})

	c, rec := postJSON(e, "/auth/register", `{"username":"alice"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAccountService{registerErr: domain.ErrUserExists})

	c, _ := postJSON(e, "/auth/register",
		`{"name":"Alice","username":"alice","email":"alice@example.com","password":"pw"}`)

	err := h.Register(c)
	if err == nil {
		t.Fatalf("expected error to propagate to the error handler")
	}
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	svc := &stubAccountService{loginToken: "tok-abc"}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "tok-abc" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAccountService{loginErr: domain.ErrInvalidCredentials})

	c, _ := postJSON(e, "/auth/login", `{"username":"alice","password":"wrong"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_Suspended(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAccountService{loginErr: domain.ErrUserSuspended})

	c, _ := postJSON(e, "/auth/login", `{"username":"alice","password":"secret1"}`)

	if err := h.Login(c); err != domain.ErrUserSuspended {
		t.Fatalf("expected ErrUserSuspended, got %v", err)
	}
}

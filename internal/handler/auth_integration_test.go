package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"github.com/anandaputra/layanan-tracker/internal/service"
	"github.com/anandaputra/layanan-tracker/internal/transport"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, email, password, origin string) (*service.AdminProfile, error)
	createAdminFn  func(ctx context.Context, email, password string) (*service.AdminProfile, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password, origin string) (*service.AdminProfile, error) {
	return s.authenticateFn(ctx, email, password, origin)
}

func (s *stubAuthService) CreateAdmin(ctx context.Context, email, password string) (*service.AdminProfile, error) {
	return s.createAdminFn(ctx, email, password)
}

func newAuthTestApp(t *testing.T, svc AuthService) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(zap.NewNop()),
	})

	if err := RegisterAuthRoutes(app, svc); err != nil {
		t.Fatalf("RegisterAuthRoutes() error = %v", err)
	}

	return app
}

func TestAuthIntegration_Login(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password, origin string) (*service.AdminProfile, error) {
			if email == "admin@example.com" && password == "secret-password" {
				return &service.AdminProfile{ID: "admin-1", Email: email}, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}

	app := newAuthTestApp(t, svc)

	resp, body := performRequest(t, app, http.MethodPost, "/v1/auth/login", `{"email":"admin@example.com","password":"secret-password"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	var ok map[string]any
	if err := json.Unmarshal(body, &ok); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	admin, isMap := ok["admin"].(map[string]any)
	if !isMap {
		t.Fatalf("admin = %v, want object", ok["admin"])
	}
	if admin["email"] != "admin@example.com" {
		t.Fatalf("admin.email = %v", admin["email"])
	}
	if _, leaked := admin["passwordHash"]; leaked {
		t.Fatal("response must not carry a password hash")
	}

	resp, body = performRequest(t, app, http.MethodPost, "/v1/auth/login", `{"email":"admin@example.com","password":"wrong-password"}`)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401, body=%s", resp.StatusCode, string(body))
	}
}

func TestAuthIntegration_LoginRateLimited(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password, origin string) (*service.AdminProfile, error) {
			return nil, &domain.RateLimitError{RetryAfter: 15 * time.Minute}
		},
	}

	app := newAuthTestApp(t, svc)

	resp, body := performRequest(t, app, http.MethodPost, "/v1/auth/login", `{"email":"admin@example.com","password":"secret-password"}`)
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429, body=%s", resp.StatusCode, string(body))
	}

	var limited map[string]any
	if err := json.Unmarshal(body, &limited); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if got := limited["retryAfterMinutes"]; got != float64(15) {
		t.Fatalf("retryAfterMinutes = %v, want 15", got)
	}
}

func TestAuthIntegration_LoginClientIP(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		headers    map[string]string
		wantOrigin string
	}{
		{
			name:       "first forwarded entry wins",
			headers:    map[string]string{fiber.HeaderXForwardedFor: "203.0.113.7, 10.0.0.1"},
			wantOrigin: "203.0.113.7",
		},
		{
			name:       "single forwarded entry",
			headers:    map[string]string{fiber.HeaderXForwardedFor: "203.0.113.9"},
			wantOrigin: "203.0.113.9",
		},
		{
			name:       "real ip fallback",
			headers:    map[string]string{"X-Real-Ip": "198.51.100.4"},
			wantOrigin: "198.51.100.4",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotOrigin string
			svc := &stubAuthService{
				authenticateFn: func(ctx context.Context, email, password, origin string) (*service.AdminProfile, error) {
					gotOrigin = origin
					return &service.AdminProfile{ID: "admin-1", Email: email}, nil
				},
			}

			app := newAuthTestApp(t, svc)

			req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(`{"email":"admin@example.com","password":"secret-password"}`))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			for key, value := range tc.headers {
				req.Header.Set(key, value)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			_ = resp.Body.Close()

			if gotOrigin != tc.wantOrigin {
				t.Fatalf("origin = %q, want %q", gotOrigin, tc.wantOrigin)
			}
		})
	}
}

func TestAuthIntegration_LoginOpaqueServerError(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password, origin string) (*service.AdminProfile, error) {
			return nil, errors.New("pq: connection refused")
		},
	}

	app := newAuthTestApp(t, svc)

	resp, body := performRequest(t, app, http.MethodPost, "/v1/auth/login", `{"email":"admin@example.com","password":"secret-password"}`)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var failed map[string]any
	if err := json.Unmarshal(body, &failed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if failed["error"] != "internal server error" {
		t.Fatalf("error = %v, internals must not leak", failed["error"])
	}
}

func TestAuthIntegration_CreateAdmin(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{
		createAdminFn: func(ctx context.Context, email, password string) (*service.AdminProfile, error) {
			switch email {
			case "taken@example.com":
				return nil, domain.ErrConflict
			case "admin@example.com":
				return &service.AdminProfile{ID: "admin-2", Email: email}, nil
			default:
				return nil, domain.ErrValidation
			}
		},
	}

	app := newAuthTestApp(t, svc)

	resp, body := performRequest(t, app, http.MethodPost, "/v1/admins", `{"email":"admin@example.com","password":"Str0ng!Passw0rd"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", resp.StatusCode, string(body))
	}

	resp, _ = performRequest(t, app, http.MethodPost, "/v1/admins", `{"email":"taken@example.com","password":"Str0ng!Passw0rd"}`)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409 for duplicate email", resp.StatusCode)
	}

	resp, _ = performRequest(t, app, http.MethodPost, "/v1/admins", `{"email":"bad","password":"weak"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid input", resp.StatusCode)
	}
}

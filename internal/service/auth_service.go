package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"github.com/anandaputra/layanan-tracker/internal/observability"
	"github.com/anandaputra/layanan-tracker/internal/ratelimit"
	"github.com/anandaputra/layanan-tracker/internal/repository"
	"github.com/anandaputra/layanan-tracker/internal/security"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxEmailLength = 255

	// Login accepts any password of at least this length. The full strength
	// policy applies at creation time only; tightening the login check would
	// lock out admins provisioned under older rules.
	minLoginPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AdminProfile is the public projection of an admin credential record. It
// deliberately has no field for the password hash.
type AdminProfile struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AuthService struct {
	admins     repository.AdminRepository
	limiter    ratelimit.LoginLimiter
	logger     *zap.Logger
	metrics    *observability.Metrics
	bcryptCost int
}

func NewAuthService(
	admins repository.AdminRepository,
	limiter ratelimit.LoginLimiter,
	bcryptCost int,
	logger *zap.Logger,
) (*AuthService, error) {
	if admins == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	if limiter == nil {
		return nil, fmt.Errorf("login limiter is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if bcryptCost <= 0 {
		bcryptCost = security.DefaultBcryptCost
	}

	return &AuthService{
		admins:     admins,
		limiter:    limiter,
		logger:     logger,
		bcryptCost: bcryptCost,
	}, nil
}

func (s *AuthService) SetMetrics(metrics *observability.Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// Authenticate verifies an admin login. Unknown identities and wrong passwords
// produce the same ErrInvalidCredentials, and both count against the
// (identity, origin) lockout counter.
func (s *AuthService) Authenticate(ctx context.Context, email, password, origin string) (*AdminProfile, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if len(password) < minLoginPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minLoginPasswordLength)
	}
	if strings.TrimSpace(origin) == "" {
		origin = "unknown"
	}

	decision, err := s.limiter.Check(ctx, email, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to check login rate limit: %w", err)
	}
	if !decision.Allowed {
		s.metrics.IncLoginRateLimited()
		s.logger.Warn("login rate limited",
			zap.String("origin", origin),
			zap.Duration("remaining", decision.Remaining),
		)
		return nil, &domain.RateLimitError{RetryAfter: decision.Remaining}
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.failAttempt(ctx, email, origin)
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	match, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		// Malformed stored hash is a server fault, not a credential mismatch.
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, s.failAttempt(ctx, email, origin)
	}

	if err := s.limiter.Clear(ctx, email, origin); err != nil {
		s.logger.Error("failed to clear login attempts", zap.Error(err))
	}

	s.metrics.IncLoginSuccess()
	observability.WithContextLogger(s.logger, ctx).Info("admin login succeeded",
		zap.String("adminId", admin.ID),
		zap.String("origin", origin),
	)

	// A last-login timestamp is intentionally not recorded.
	return adminProfile(admin), nil
}

// CreateAdmin provisions a credential record. The full strength policy and the
// common-password deny-list apply here, unlike at login.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*AdminProfile, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if len(email) > maxEmailLength {
		return nil, fmt.Errorf("%w: email is too long", domain.ErrValidation)
	}

	if result := security.CheckStrength(password); !result.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(result.Violations, "; "))
	}
	if security.IsCommonPassword(password) {
		return nil, fmt.Errorf("%w: password is too common", domain.ErrValidation)
	}

	hash, err := security.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("admin created", zap.String("adminId", admin.ID))
	return adminProfile(admin), nil
}

// failAttempt records the failure and returns the shared invalid-credentials
// error. A limiter fault is logged but never exposes which step failed.
func (s *AuthService) failAttempt(ctx context.Context, email, origin string) error {
	if err := s.limiter.RecordFailure(ctx, email, origin); err != nil {
		s.logger.Error("failed to record login failure", zap.Error(err))
	}
	s.metrics.IncLoginFailed()
	s.logger.Warn("login failed", zap.String("origin", origin))
	return domain.ErrInvalidCredentials
}

func adminProfile(a *domain.Admin) *AdminProfile {
	return &AdminProfile{
		ID:        a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

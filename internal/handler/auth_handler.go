package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/service"
	"github.com/gofiber/fiber/v2"
)

type AuthService interface {
	Authenticate(ctx context.Context, email, password, origin string) (*service.AdminProfile, error)
	CreateAdmin(ctx context.Context, email, password string) (*service.AdminProfile, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) (*AuthHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	return &AuthHandler{service: service}, nil
}

func RegisterAuthRoutes(router fiber.Router, service AuthService) error {
	h, err := NewAuthHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/auth/login", h.Login)
	v1.Post("/admins", h.CreateAdmin)

	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.service.Authenticate(c.UserContext(), req.Email, req.Password, clientIP(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"admin": toAdminResponse(profile),
	})
}

func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.service.CreateAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toAdminResponse(profile))
}

// clientIP resolves the caller address used for the lockout counter. The first
// X-Forwarded-For entry wins behind a proxy.
func clientIP(c *fiber.Ctx) string {
	if forwarded := strings.TrimSpace(c.Get(fiber.HeaderXForwardedFor)); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found {
			return strings.TrimSpace(first)
		}
		return forwarded
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-Ip")); realIP != "" {
		return realIP
	}
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}

func toAdminResponse(p *service.AdminProfile) adminResponse {
	if p == nil {
		return adminResponse{}
	}

	return adminResponse{
		ID:        p.ID,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

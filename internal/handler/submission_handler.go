package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"github.com/anandaputra/layanan-tracker/internal/repository"
	"github.com/anandaputra/layanan-tracker/internal/service"
	"github.com/gofiber/fiber/v2"
)

type SubmissionService interface {
	Create(ctx context.Context, input service.CreateSubmissionInput) (*domain.Submission, error)
	GetByTrackingCode(ctx context.Context, trackingCode string) (*domain.Submission, error)
	List(ctx context.Context, params repository.ListParams) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, trackingCode string, status domain.Status) (*domain.Submission, error)
}

type SubmissionHandler struct {
	service SubmissionService
}

func NewSubmissionHandler(service SubmissionService) (*SubmissionHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("submission service is required")
	}
	return &SubmissionHandler{service: service}, nil
}

func RegisterSubmissionRoutes(router fiber.Router, service SubmissionService) error {
	h, err := NewSubmissionHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/submissions", h.CreateSubmission)
	v1.Get("/submissions", h.ListSubmissions)
	v1.Get("/submissions/:trackingCode", h.GetSubmission)
	v1.Patch("/submissions/:trackingCode/status", h.UpdateSubmissionStatus)

	return nil
}

// Applicant field names follow the public intake form, so the JSON keys stay
// in Indonesian while system fields use camelCase.
type createSubmissionRequest struct {
	Nama         string `json:"nama"`
	NIK          string `json:"nik"`
	Email        string `json:"email"`
	NoWA         string `json:"no_wa"`
	JenisLayanan string `json:"jenis_layanan"`
	Consent      bool   `json:"consent"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type submissionResponse struct {
	ID           string    `json:"id"`
	TrackingCode string    `json:"trackingCode"`
	Nama         string    `json:"nama"`
	NIK          string    `json:"nik"`
	Email        string    `json:"email"`
	NoWA         string    `json:"no_wa"`
	JenisLayanan string    `json:"jenis_layanan"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type listSubmissionsResponse struct {
	Data []submissionResponse `json:"data"`
}

func (h *SubmissionHandler) CreateSubmission(c *fiber.Ctx) error {
	var req createSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Create(c.UserContext(), service.CreateSubmissionInput{
		Name:        req.Nama,
		NationalID:  req.NIK,
		Email:       req.Email,
		Phone:       req.NoWA,
		ServiceType: req.JenisLayanan,
		Consent:     req.Consent,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toSubmissionResponse(submission))
}

func (h *SubmissionHandler) GetSubmission(c *fiber.Ctx) error {
	trackingCode := strings.TrimSpace(c.Params("trackingCode"))
	submission, err := h.service.GetByTrackingCode(c.UserContext(), trackingCode)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(toSubmissionResponse(submission))
}

func (h *SubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	params, err := parseListParams(c)
	if err != nil {
		return err
	}

	submissions, err := h.service.List(c.UserContext(), params)
	if err != nil {
		return err
	}

	responses := make([]submissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, toSubmissionResponse(&submissions[i]))
	}

	return c.Status(fiber.StatusOK).JSON(listSubmissionsResponse{Data: responses})
}

func (h *SubmissionHandler) UpdateSubmissionStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	status, err := domain.ParseStatusFromString(req.Status)
	if err != nil {
		return err
	}

	trackingCode := strings.TrimSpace(c.Params("trackingCode"))
	submission, err := h.service.UpdateStatus(c.UserContext(), trackingCode, status)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(toSubmissionResponse(submission))
}

func parseListParams(c *fiber.Ctx) (repository.ListParams, error) {
	params := repository.ListParams{
		Query:  strings.TrimSpace(c.Query("q")),
		SortBy: repository.SortByCreatedAt,
	}

	if rawSort := strings.TrimSpace(c.Query("sort")); rawSort != "" {
		switch repository.SortField(rawSort) {
		case repository.SortByCreatedAt, repository.SortByStatus:
			params.SortBy = repository.SortField(rawSort)
		default:
			return repository.ListParams{}, fmt.Errorf("%w: sort must be one of createdAt, status", domain.ErrValidation)
		}
	}

	switch order := strings.ToLower(strings.TrimSpace(c.Query("order"))); order {
	case "", "desc":
	case "asc":
		params.Ascending = true
	default:
		return repository.ListParams{}, fmt.Errorf("%w: order must be asc or desc", domain.ErrValidation)
	}

	return params, nil
}

func toSubmissionResponse(s *domain.Submission) submissionResponse {
	if s == nil {
		return submissionResponse{}
	}

	return submissionResponse{
		ID:           s.ID,
		TrackingCode: s.TrackingCode,
		Nama:         s.Name,
		NIK:          s.NationalID,
		Email:        s.Email,
		NoWA:         s.Phone,
		JenisLayanan: s.ServiceType,
		Status:       s.Status.String(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

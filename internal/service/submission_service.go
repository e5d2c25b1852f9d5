package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"github.com/anandaputra/layanan-tracker/internal/observability"
	"github.com/anandaputra/layanan-tracker/internal/phone"
	"github.com/anandaputra/layanan-tracker/internal/provider"
	"github.com/anandaputra/layanan-tracker/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCreateAttempts bounds the retry loop around tracking-code collisions.
const maxCreateAttempts = 3

// CreateSubmissionInput carries the applicant fields of a new submission.
type CreateSubmissionInput struct {
	Name        string
	NationalID  string
	Email       string
	Phone       string
	ServiceType string
	Consent     bool
}

type SubmissionService struct {
	submissions repository.SubmissionRepository
	logs        repository.NotificationLogRepository
	notifier    provider.Provider
	logger      *zap.Logger
	metrics     *observability.Metrics
	now         func() time.Time
	randIntn    func(n int) int
}

func NewSubmissionService(
	submissions repository.SubmissionRepository,
	logs repository.NotificationLogRepository,
	notifier provider.Provider,
	logger *zap.Logger,
) (*SubmissionService, error) {
	if submissions == nil {
		return nil, fmt.Errorf("submission repository is required")
	}
	if logs == nil {
		return nil, fmt.Errorf("notification log repository is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notification provider is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SubmissionService{
		submissions: submissions,
		logs:        logs,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
		randIntn:    rand.Intn,
	}, nil
}

func (s *SubmissionService) SetMetrics(metrics *observability.Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// Create validates and persists a new submission, then fires a best-effort
// creation notification. The submission write commits unconditionally; the
// notify-and-log step runs afterwards and its outcome never affects the
// returned submission.
func (s *SubmissionService) Create(ctx context.Context, input CreateSubmissionInput) (*domain.Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	submission := &domain.Submission{
		Name:        strings.TrimSpace(input.Name),
		NationalID:  strings.TrimSpace(input.NationalID),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		ServiceType: strings.TrimSpace(input.ServiceType),
		Consent:     input.Consent,
		Status:      domain.StatusNew,
	}
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	normalized, err := phone.Normalize(submission.Phone)
	if err != nil {
		return nil, err
	}
	submission.Phone = normalized

	for attempt := 1; ; attempt++ {
		submission.ID = uuid.NewString()
		submission.TrackingCode = domain.NewTrackingCode(s.now(), s.randIntn)

		err := s.submissions.Create(ctx, submission)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrConflict) && attempt < maxCreateAttempts {
			s.logger.Warn("tracking code collision, regenerating",
				zap.String("trackingCode", submission.TrackingCode),
			)
			continue
		}
		return nil, err
	}

	s.metrics.IncSubmissionCreated(submission.ServiceType)
	observability.WithContextLogger(s.logger, ctx).Info("submission created",
		zap.String("trackingCode", submission.TrackingCode),
		zap.String("serviceType", submission.ServiceType),
	)

	s.notify(ctx, submission)

	return submission, nil
}

// GetByTrackingCode returns a submission for citizen follow-up.
func (s *SubmissionService) GetByTrackingCode(ctx context.Context, trackingCode string) (*domain.Submission, error) {
	if strings.TrimSpace(trackingCode) == "" {
		return nil, fmt.Errorf("%w: tracking code is required", domain.ErrValidation)
	}
	return s.submissions.GetByTrackingCode(ctx, strings.TrimSpace(trackingCode))
}

// List returns submissions matching the search and ordering parameters.
func (s *SubmissionService) List(ctx context.Context, params repository.ListParams) ([]domain.Submission, error) {
	return s.submissions.List(ctx, params)
}

// UpdateStatus sets a submission's lifecycle status and fires a best-effort
// status-change notification. Any value of the closed enum may be set; there
// is no transition table.
func (s *SubmissionService) UpdateStatus(ctx context.Context, trackingCode string, status domain.Status) (*domain.Submission, error) {
	if strings.TrimSpace(trackingCode) == "" {
		return nil, fmt.Errorf("%w: tracking code is required", domain.ErrValidation)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	submission, err := s.submissions.UpdateStatus(ctx, strings.TrimSpace(trackingCode), status)
	if err != nil {
		return nil, err
	}

	observability.WithContextLogger(s.logger, ctx).Info("submission status updated",
		zap.String("trackingCode", submission.TrackingCode),
		zap.String("status", submission.Status.String()),
	)

	s.notify(ctx, submission)

	return submission, nil
}

type notificationPayload struct {
	To       string        `json:"to"`
	Status   domain.Status `json:"status"`
	Response string        `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// notify dispatches one WhatsApp notification and appends exactly one log
// entry with the outcome. It has its own error boundary: provider and log
// faults are logged and swallowed so they can never fail the caller.
func (s *SubmissionService) notify(ctx context.Context, submission *domain.Submission) {
	msg := provider.Message{
		TrackingCode: submission.TrackingCode,
		ServiceType:  submission.ServiceType,
		Status:       submission.Status,
	}

	payload := notificationPayload{
		To:     submission.Phone,
		Status: submission.Status,
	}
	sendStatus := domain.SendStatusSuccess

	resp, err := s.notifier.Send(ctx, submission.Phone, msg)
	if err != nil {
		sendStatus = domain.SendStatusFailed
		payload.Error = err.Error()
		s.metrics.IncNotificationFailed(domain.ChannelWhatsApp.String())
		s.logger.Error("notification send failed",
			zap.String("trackingCode", submission.TrackingCode),
			zap.Error(err),
		)
	} else {
		payload.Response = resp.Body
		s.metrics.IncNotificationSent(domain.ChannelWhatsApp.String())
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to marshal notification payload", zap.Error(err))
		raw = []byte("{}")
	}

	entry := &domain.NotificationLog{
		ID:           uuid.NewString(),
		SubmissionID: submission.ID,
		Channel:      domain.ChannelWhatsApp,
		SendStatus:   sendStatus,
		Payload:      string(raw),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Error("failed to append notification log",
			zap.String("trackingCode", submission.TrackingCode),
			zap.Error(err),
		)
	}
}

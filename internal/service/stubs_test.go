package service

import (
	"context"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"github.com/anandaputra/layanan-tracker/internal/provider"
	"github.com/anandaputra/layanan-tracker/internal/ratelimit"
	"github.com/anandaputra/layanan-tracker/internal/repository"
)

type fakeAdminRepo struct {
	createFn     func(ctx context.Context, a *domain.Admin) error
	getByEmailFn func(ctx context.Context, email string) (*domain.Admin, error)
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, a)
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if f.getByEmailFn == nil {
		return nil, domain.ErrNotFound
	}
	return f.getByEmailFn(ctx, email)
}

type fakeLoginLimiter struct {
	checkFn  func(ctx context.Context, identity, origin string) (ratelimit.Decision, error)
	recordFn func(ctx context.Context, identity, origin string) error
	clearFn  func(ctx context.Context, identity, origin string) error
}

func (f *fakeLoginLimiter) Check(ctx context.Context, identity, origin string) (ratelimit.Decision, error) {
	if f.checkFn == nil {
		return ratelimit.Decision{Allowed: true}, nil
	}
	return f.checkFn(ctx, identity, origin)
}

func (f *fakeLoginLimiter) RecordFailure(ctx context.Context, identity, origin string) error {
	if f.recordFn == nil {
		return nil
	}
	return f.recordFn(ctx, identity, origin)
}

func (f *fakeLoginLimiter) Clear(ctx context.Context, identity, origin string) error {
	if f.clearFn == nil {
		return nil
	}
	return f.clearFn(ctx, identity, origin)
}

type fakeSubmissionRepo struct {
	createFn       func(ctx context.Context, s *domain.Submission) error
	getFn          func(ctx context.Context, trackingCode string) (*domain.Submission, error)
	listFn         func(ctx context.Context, params repository.ListParams) ([]domain.Submission, error)
	updateStatusFn func(ctx context.Context, trackingCode string, status domain.Status) (*domain.Submission, error)
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, s)
}

func (f *fakeSubmissionRepo) GetByTrackingCode(ctx context.Context, trackingCode string) (*domain.Submission, error) {
	if f.getFn == nil {
		return nil, domain.ErrNotFound
	}
	return f.getFn(ctx, trackingCode)
}

func (f *fakeSubmissionRepo) List(ctx context.Context, params repository.ListParams) ([]domain.Submission, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, params)
}

func (f *fakeSubmissionRepo) UpdateStatus(ctx context.Context, trackingCode string, status domain.Status) (*domain.Submission, error) {
	if f.updateStatusFn == nil {
		return nil, domain.ErrNotFound
	}
	return f.updateStatusFn(ctx, trackingCode, status)
}

type fakeNotificationLogRepo struct {
	createFn func(ctx context.Context, l *domain.NotificationLog) error
	getFn    func(ctx context.Context, submissionID string) ([]domain.NotificationLog, error)
}

func (f *fakeNotificationLogRepo) Create(ctx context.Context, l *domain.NotificationLog) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, l)
}

func (f *fakeNotificationLogRepo) GetBySubmissionID(ctx context.Context, submissionID string) ([]domain.NotificationLog, error) {
	if f.getFn == nil {
		return nil, nil
	}
	return f.getFn(ctx, submissionID)
}

type fakeProvider struct {
	sendFn func(ctx context.Context, destination string, msg provider.Message) (*provider.Response, error)
}

func (f *fakeProvider) Send(ctx context.Context, destination string, msg provider.Message) (*provider.Response, error) {
	if f.sendFn == nil {
		return &provider.Response{StatusCode: 200}, nil
	}
	return f.sendFn(ctx, destination, msg)
}

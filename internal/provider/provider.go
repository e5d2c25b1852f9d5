package provider

import (
	"context"

	"github.com/anandaputra/layanan-tracker/internal/domain"
)

// Provider is the outbound notification delivery port.
type Provider interface {
	Send(ctx context.Context, destination string, msg Message) (*Response, error)
}

// Message carries the template context for a submission notification.
type Message struct {
	TrackingCode string
	ServiceType  string
	Status       domain.Status
}

// Response stores provider call metadata for audit and persistence.
type Response struct {
	StatusCode int
	Body       string
	MessageID  string
}

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"github.com/go-resty/resty/v2"
)

const defaultSendTimeout = 10 * time.Second

var statusMessages = map[domain.Status]string{
	domain.StatusNew:        "Pengajuan Anda telah kami terima dan akan segera diproses.",
	domain.StatusInProgress: "Pengajuan Anda sedang diproses.",
	domain.StatusComplete:   "Pengajuan Anda telah selesai. Silakan ambil dokumen Anda.",
	domain.StatusRejected:   "Mohon maaf, pengajuan Anda ditolak. Silakan hubungi kantor layanan.",
}

type whatsappRequest struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

// WhatsAppProvider delivers submission notifications through an HTTP WhatsApp
// gateway.
type WhatsAppProvider struct {
	client   *resty.Client
	endpoint string
	token    string
}

func NewWhatsAppProvider(endpoint, token string) (*WhatsAppProvider, error) {
	client := resty.New()
	client.SetTimeout(defaultSendTimeout)
	client.SetRetryCount(0)

	return NewWhatsAppProviderWithClient(endpoint, token, client)
}

func NewWhatsAppProviderWithClient(endpoint, token string, client *resty.Client) (*WhatsAppProvider, error) {
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		return nil, fmt.Errorf("whatsapp gateway endpoint is required")
	}
	if _, err := url.ParseRequestURI(trimmedEndpoint); err != nil {
		return nil, fmt.Errorf("invalid whatsapp gateway endpoint: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultSendTimeout)
	}
	client.SetRetryCount(0)

	return &WhatsAppProvider{
		client:   client,
		endpoint: trimmedEndpoint,
		token:    strings.TrimSpace(token),
	}, nil
}

func (p *WhatsAppProvider) Send(ctx context.Context, destination string, msg Message) (*Response, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("provider is not initialized")
	}
	if strings.TrimSpace(destination) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}

	reqBody := whatsappRequest{
		Target:  destination,
		Message: renderMessage(msg),
	}

	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody)
	if p.token != "" {
		req.SetHeader("Authorization", p.token)
	}

	response, err := req.Post(p.endpoint)
	if err != nil {
		return nil, &ProviderError{
			Message: "gateway request failed",
			Cause:   err,
		}
	}
	if response == nil {
		return nil, &ProviderError{
			Message: "gateway returned empty response",
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return &Response{
			StatusCode: statusCode,
			Body:       responseBody,
			MessageID:  providerMessageID(response),
		}, nil
	}

	return nil, &ProviderError{
		StatusCode: statusCode,
		Message:    providerErrorMessage(statusCode, responseBody),
	}
}

func renderMessage(msg Message) string {
	var b strings.Builder
	b.WriteString("Layanan Publik: ")
	if msg.ServiceType != "" {
		b.WriteString(fmt.Sprintf("pengajuan %s", msg.ServiceType))
	} else {
		b.WriteString("pengajuan Anda")
	}
	if msg.TrackingCode != "" {
		b.WriteString(fmt.Sprintf(" (kode tracking %s)", msg.TrackingCode))
	}
	b.WriteString(".\n")
	if text, ok := statusMessages[msg.Status]; ok {
		b.WriteString(text)
	} else {
		b.WriteString("Status pengajuan Anda telah diperbarui.")
	}
	return b.String()
}

func providerErrorMessage(statusCode int, body string) string {
	base := fmt.Sprintf("gateway returned status %d", statusCode)
	if body == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, body)
}

func providerMessageID(response *resty.Response) string {
	if response == nil {
		return ""
	}

	for _, key := range []string{"X-Message-ID", "X-Message-Id", "X-Request-ID", "X-Request-Id"} {
		if value := strings.TrimSpace(response.Header().Get(key)); value != "" {
			return value
		}
	}

	return ""
}

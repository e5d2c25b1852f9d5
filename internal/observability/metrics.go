package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores Prometheus collectors for the intake and login flows.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal        *prometheus.CounterVec
	httpRequestDuration      *prometheus.HistogramVec
	submissionsCreatedTotal  *prometheus.CounterVec
	notificationsSentTotal   *prometheus.CounterVec
	notificationsFailedTotal *prometheus.CounterVec
	loginSuccessTotal        prometheus.Counter
	loginFailedTotal         prometheus.Counter
	loginRateLimitedTotal    prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "layanan_tracker",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "layanan_tracker",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds by method and path.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		submissionsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "layanan_tracker",
				Name:      "submissions_created_total",
				Help:      "Total number of submissions created by service type.",
			},
			[]string{"service_type"},
		),
		notificationsSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "layanan_tracker",
				Name:      "notifications_sent_total",
				Help:      "Total number of notifications delivered successfully.",
			},
			[]string{"channel"},
		),
		notificationsFailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "layanan_tracker",
				Name:      "notifications_failed_total",
				Help:      "Total number of notification attempts logged as FAILED.",
			},
			[]string{"channel"},
		),
		loginSuccessTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "layanan_tracker",
				Name:      "login_success_total",
				Help:      "Total number of successful admin logins.",
			},
		),
		loginFailedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "layanan_tracker",
				Name:      "login_failed_total",
				Help:      "Total number of failed admin login attempts.",
			},
		),
		loginRateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "layanan_tracker",
				Name:      "login_rate_limited_total",
				Help:      "Total number of logins rejected by the lockout policy.",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.submissionsCreatedTotal,
		m.notificationsSentTotal,
		m.notificationsFailedTotal,
		m.loginSuccessTotal,
		m.loginFailedTotal,
		m.loginRateLimitedTotal,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := routePath(c)
		// Avoid self-scrape noise for request counters.
		if path == "/metrics" {
			return err
		}

		m.recordHTTPRequest(c.Method(), path, statusFromResult(c, err), time.Since(start))
		return err
	}
}

func (m *Metrics) IncSubmissionCreated(serviceType string) {
	if m == nil {
		return
	}
	label := strings.TrimSpace(strings.ToLower(serviceType))
	if label == "" {
		label = "unknown"
	}
	m.submissionsCreatedTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) IncNotificationSent(channel string) {
	if m == nil {
		return
	}
	m.notificationsSentTotal.WithLabelValues(normalizeChannel(channel)).Inc()
}

func (m *Metrics) IncNotificationFailed(channel string) {
	if m == nil {
		return
	}
	m.notificationsFailedTotal.WithLabelValues(normalizeChannel(channel)).Inc()
}

func (m *Metrics) IncLoginSuccess() {
	if m == nil {
		return
	}
	m.loginSuccessTotal.Inc()
}

func (m *Metrics) IncLoginFailed() {
	if m == nil {
		return
	}
	m.loginFailedTotal.Inc()
}

func (m *Metrics) IncLoginRateLimited() {
	if m == nil {
		return
	}
	m.loginRateLimitedTotal.Inc()
}

func (m *Metrics) recordHTTPRequest(method string, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	methodLabel := strings.ToUpper(strings.TrimSpace(method))
	if methodLabel == "" {
		methodLabel = "UNKNOWN"
	}
	pathLabel := strings.TrimSpace(path)
	if pathLabel == "" {
		pathLabel = "unmatched"
	}

	m.httpRequestsTotal.WithLabelValues(methodLabel, pathLabel, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(methodLabel, pathLabel).Observe(duration.Seconds())
}

func routePath(c *fiber.Ctx) string {
	if c == nil {
		return "unmatched"
	}

	if route := c.Route(); route != nil {
		if path := strings.TrimSpace(route.Path); path != "" {
			return path
		}
	}
	return "unmatched"
}

func statusFromResult(c *fiber.Ctx, err error) int {
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return fiberErr.Code
		}
		return fiber.StatusInternalServerError
	}

	if c == nil {
		return fiber.StatusOK
	}

	status := c.Response().StatusCode()
	if status == 0 {
		return fiber.StatusOK
	}
	return status
}

func normalizeChannel(channel string) string {
	normalized := strings.ToLower(strings.TrimSpace(channel))
	if normalized == "" {
		return "unknown"
	}
	return normalized
}

package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/hanko-field/frontend-metadata/internal/platform/httpx"
	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
)

// ReadinessCheck reports whether a backend is ready to serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	checks  map[string]ReadinessCheck
	clock   func() time.Time
	started time.Time
	timeout time.Duration
}

// HealthOption customises HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithReadinessCheck registers a named readiness check.
func WithReadinessCheck(name string, check ReadinessCheck) HealthOption {
	return func(h *HealthHandlers) {
		if check != nil {
			h.checks[name] = check
		}
	}
}

// WithHealthClock overrides the clock used for uptime reporting.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithHealthStartedAt sets the process start time used for uptime.
func WithHealthStartedAt(started time.Time) HealthOption {
	return func(h *HealthHandlers) {
		h.started = started
	}
}

// NewHealthHandlers constructs probe handlers.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{
		checks:  make(map[string]ReadinessCheck),
		clock:   time.Now,
		timeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.started.IsZero() {
		h.started = h.clock()
	}
	return h
}

type healthResponse struct {
	Status    string            `json:"status"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Healthz reports liveness.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock().UTC()
	httpx.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Uptime:    now.Sub(h.started).Truncate(time.Second).String(),
		Timestamp: now.Format(time.RFC3339),
	})
}

// Readyz runs the readiness checks and reports 503 when any fails.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			observability.FromContext(ctx).Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "error"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	now := h.clock().UTC()
	resp.Uptime = now.Sub(h.started).Truncate(time.Second).String()
	resp.Timestamp = now.Format(time.RFC3339)
	httpx.WriteJSON(w, status, resp)
}

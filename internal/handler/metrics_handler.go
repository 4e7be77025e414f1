package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/service"
)

// StoreChecks holds the per-store ping functions backing the readiness probe.
// Both stores must answer for the service to accept traffic.
type StoreChecks struct {
	Postgres func(ctx context.Context) error
	Mongo    func(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	checks  StoreChecks
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, checks StoreChecks) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, checks: checks}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health is the liveness probe: the process is up, nothing more.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings both stores and reports per-store status. Either store being
// unreachable fails readiness; dashboards can still degrade per request, but
// a fresh instance should not join the pool half-connected.
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	stores := gin.H{}
	healthy := true
	for name, ping := range map[string]func(context.Context) error{
		"postgres": h.checks.Postgres,
		"mongo":    h.checks.Mongo,
	} {
		if ping == nil {
			continue
		}
		if err := ping(ctx); err != nil {
			stores[name] = "down"
			healthy = false
			if h.metrics != nil {
				h.metrics.RecordStoreError(name)
			}
			continue
		}
		stores[name] = "up"
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "stores": stores})
}

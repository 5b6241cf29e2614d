package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/meal-planner-service/internal/circuitbreaker"
)

const readinessTimeout = 2 * time.Second

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker.
type CheckerFunc func(ctx context.Context) error

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency check to readiness.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.circuitBreakers[name] = cb
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running. Prometheus metrics are served at /metrics.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readiness is the body of /readyz.
type readiness struct {
	Status   string                 `json:"status"`
	Checks   map[string]string      `json:"checks"`
	Breakers []circuitbreaker.Stats `json:"circuit_breakers,omitempty"`
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Checks registered dependencies and circuit breakers. Any failing check or open breaker makes the service not ready.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	body := readiness{Status: "ok", Checks: make(map[string]string, len(h.checkers)+1)}
	status := http.StatusOK

	for name, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			body.Checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		body.Checks[name] = "ok"
	}

	for _, cb := range h.circuitBreakers {
		stats := cb.Stats()
		body.Breakers = append(body.Breakers, stats)
		if !stats.Healthy {
			status = http.StatusServiceUnavailable
		}
	}
	sort.Slice(body.Breakers, func(i, j int) bool { return body.Breakers[i].Name < body.Breakers[j].Name })

	if len(body.Checks) == 0 {
		body.Checks["service"] = "ok"
	}
	if status != http.StatusOK {
		body.Status = "degraded"
	}
	c.JSON(status, body)
}

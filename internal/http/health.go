package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
)

const readinessCheckTimeout = 3 * time.Second

// HealthChecker is a dependency the readiness check pings.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) Check(ctx context.Context) error { return f(ctx) }

type namedChecker struct {
	name    string
	checker HealthChecker
}

type namedBreaker struct {
	name    string
	breaker *circuitbreaker.CircuitBreaker
}

// HealthHandler serves /healthz and /readyz. Readiness fails while any
// registered dependency check errors or any registered circuit is open.
type HealthHandler struct {
	checkers []namedChecker
	breakers []namedBreaker
}

// NewHealthHandler creates a HealthHandler with no dependencies.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// RegisterChecker adds a dependency reported under name.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers = append(h.checkers, namedChecker{name: name, checker: checker})
}

// RegisterCircuitBreaker adds a breaker reported under name + "_circuit".
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers = append(h.breakers, namedBreaker{name: name + "_circuit", breaker: cb})
}

// Register mounts the health checks on router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness endpoint.
// @Summary     Liveness check
// @Description Returns OK while the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness endpoint.
// @Summary     Readiness check
// @Description Reports each registered dependency and circuit breaker. Returns 503 when any of them is unhealthy.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is degraded"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks, healthy := h.evaluate(c.Request.Context())

	status, label := http.StatusOK, "ok"
	if !healthy {
		status, label = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(status, gin.H{"status": label, "checks": checks})
}

func (h *HealthHandler) evaluate(ctx context.Context) (map[string]interface{}, bool) {
	checks := make(map[string]interface{}, len(h.checkers)+len(h.breakers))
	healthy := true

	ctx, cancel := context.WithTimeout(ctx, readinessCheckTimeout)
	defer cancel()

	for _, nc := range h.checkers {
		if err := nc.checker.Check(ctx); err != nil {
			checks[nc.name] = err.Error()
			healthy = false
			continue
		}
		checks[nc.name] = "ok"
	}

	for _, nb := range h.breakers {
		stats := nb.breaker.GetStats()
		checks[nb.name] = stats.State
		healthy = healthy && stats.IsHealthy
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}
	return checks, healthy
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HealthCheck is one dependency probed by /health
type HealthCheck struct {
	Name string
	// Critical failures turn the response into a 503
	Critical bool
	Check    func(ctx context.Context) error
}

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second, now: time.Now}
}

// Health runs every check under a shared timeout. Only critical failures
// turn the response into a 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status, code := "healthy", http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			logger.GetGinLogger(c).Warn("health check failed", zap.String("check", check.Name), zap.Error(err))
			results[check.Name] = "unhealthy"
			if check.Critical {
				status, code = "unhealthy", http.StatusServiceUnavailable
			} else if status == "healthy" {
				status = "degraded"
			}
			continue
		}
		results[check.Name] = "healthy"
	}

	c.JSON(code, gin.H{
		"status": status,
		"time":   h.now().UTC().Format(time.RFC3339),
		"checks": results,
	})
}

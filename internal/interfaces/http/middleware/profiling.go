package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// ProfilingConfig holds configuration for the profiling middleware
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig skips health and docs traffic
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// Profiling tags CPU samples taken while serving a request with its route
// pattern, method and resource so profiles can be sliced per endpoint.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if shouldSkipProfiling(c.Request.URL.Path, cfg) {
			c.Next()
			return
		}

		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(profilingLabels(c)...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func shouldSkipProfiling(path string, cfg ProfilingConfig) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// profilingLabels returns alternating key/value pairs
func profilingLabels(c *gin.Context) []string {
	route := c.FullPath()
	if route == "" {
		route = "unknown"
	}
	labels := []string{"method", c.Request.Method, "route", route}
	if resource := resourceFromRoute(route); resource != "" {
		labels = append(labels, "resource", resource)
	}
	return labels
}

// resourceFromRoute returns the first static segment after /api,
// e.g. "/api/seller/orders/:orderId" -> "seller"
func resourceFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || strings.HasPrefix(part, ":") {
			continue
		}
		return part
	}
	return ""
}

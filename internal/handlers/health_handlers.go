package handlers

import (
	"context"
	"net/http"
	"time"

	"boutique/internal/caching"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db        Pinger
	redisSvc  caching.CacheService
	store     services.ObjectStore
	version   string
	startedAt time.Time
}

func NewHealthHandlers(db Pinger, redisSvc caching.CacheService, store services.ObjectStore, version string) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		redisSvc:  redisSvc,
		store:     store,
		version:   version,
		startedAt: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// HealthCheck reports every dependency; degraded is still served with 200 for storage and redis
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	}

	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"database", h.checkDatabase},
		{"redis", h.checkRedis},
		{"storage", h.checkStorage},
	}
	for _, check := range checks {
		if err := check.fn(ctx); err != nil {
			health.Services[check.name] = "unhealthy: " + err.Error()
			health.Status = "degraded"
		} else {
			health.Services[check.name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Services["database"] != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	return h.db.Ping(ctx)
}

func (h *HealthHandlers) checkRedis(ctx context.Context) error {
	return h.redisSvc.Ping(ctx)
}

func (h *HealthHandlers) checkStorage(ctx context.Context) error {
	return h.store.Ping(ctx)
}

// ReadinessCheck requires the catalog database; the public site can run on a cold cache
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checkDatabase(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Catalog database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// healthCheckTimeout ограничивает время одной проверки
const healthCheckTimeout = 2 * time.Second

// Pinger проверяет доступность зависимости
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck именованная проверка зависимости
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	checks []HealthCheck
	logger *zap.Logger
}

// NewHealthHandler создает HealthHandler. База данных проверяется всегда,
// остальные зависимости передаются через extra.
func NewHealthHandler(db Pinger, logger *zap.Logger, extra ...HealthCheck) *HealthHandler {
	checks := append([]HealthCheck{{Name: "database", Pinger: db}}, extra...)
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health возвращает статус приложения и каждой зависимости
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}

	for _, c := range h.checks {
		if err := h.ping(r.Context(), c); err != nil {
			response.Status = "degraded"
			response.Checks[c.Name] = "unavailable"
			h.logger.Warn("health check failed", zap.String("check", c.Name), zap.Error(err))
			continue
		}
		response.Checks[c.Name] = "ok"
	}

	status := http.StatusOK
	if response.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, status, response)
}

// Ready возвращает готовность приложения принимать трафик
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	for _, c := range h.checks {
		if err := h.ping(r.Context(), c); err != nil {
			h.logger.Warn("readiness check failed", zap.String("check", c.Name), zap.Error(err))
			http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *HealthHandler) ping(ctx context.Context, c HealthCheck) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return c.Pinger.Ping(ctx)
}

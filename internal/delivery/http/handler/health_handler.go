package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/usecase/dto"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck - проверка одной зависимости (redis, postgres)
type HealthCheck func(ctx context.Context) error

// HealthHandler - состояние сервиса
type HealthHandler struct {
	layers LayerService
	checks map[string]HealthCheck
	logger *zap.Logger
}

// NewHealthHandler - создание нового HealthHandler. checks может быть nil
func NewHealthHandler(layers LayerService, checks map[string]HealthCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		layers: layers,
		checks: checks,
		logger: logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status: "healthy",
		Checks: make(map[string]string, len(h.checks)),
	}
	status := fiber.StatusOK

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = err.Error()
			resp.Status = "unhealthy"
			status = fiber.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	if layers, err := h.layers.ListLayers(ctx); err == nil {
		resp.Layers = layers.Total
	} else {
		resp.Checks["layers"] = err.Error()
	}

	return c.Status(status).JSON(resp)
}

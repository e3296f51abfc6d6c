package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/pkg/utils"
	"github.com/landscape-review/internal/pkg/validator"
	"github.com/landscape-review/internal/usecase/dto"
)

// AnalysisService - analyzeOverlap
type AnalysisService interface {
	Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
}

// AnalysisHandler - анализ пересечений и близости
type AnalysisHandler struct {
	analysisUC AnalysisService
	logger     *zap.Logger
}

// NewAnalysisHandler - создание нового AnalysisHandler
func NewAnalysisHandler(analysisUC AnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC: analysisUC,
		logger:     logger,
	}
}

// Analyze godoc
// @Summary Анализ ландшафтных слоев
// @Description Площадные слои проверяются на пересечение с точкой и участком, точечные - на попадание в радиус (по умолчанию 3 км)
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Точка, радиус, выбранные слои и геометрия участка"
// @Success 200 {object} utils.SuccessResponse{data=dto.AnalyzeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/analyze [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.analysisUC.Analyze(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/pkg/utils"
	"github.com/landscape-review/internal/pkg/validator"
	"github.com/landscape-review/internal/usecase/dto"
)

// LayerService - инвентарь слоев
type LayerService interface {
	ListLayers(ctx context.Context) (*dto.LayersResponse, error)
	LoadLayer(ctx context.Context, req dto.LoadLayerRequest) (*geojson.FeatureCollection, error)
	Reload(ctx context.Context) (*dto.ReloadLayersResponse, error)
}

// LayerHandler - слои ландшафтного плана
type LayerHandler struct {
	layerUC LayerService
	logger  *zap.Logger
}

// NewLayerHandler - создание нового LayerHandler
func NewLayerHandler(layerUC LayerService, logger *zap.Logger) *LayerHandler {
	return &LayerHandler{
		layerUC: layerUC,
		logger:  logger,
	}
}

// ListLayers godoc
// @Summary Инвентарь слоев
// @Description region -> category -> [{name, file, exists}]
// @Tags Layers
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LayersResponse}
// @Router /api/v1/layers [get]
func (h *LayerHandler) ListLayers(c *fiber.Ctx) error {
	result, err := h.layerUC.ListLayers(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// LoadLayer godoc
// @Summary GeoJSON слоя
// @Tags Layers
// @Produce json
// @Param region query string true "Регион"
// @Param category query string true "Категория"
// @Param file query string true "Файл слоя"
// @Success 200 {object} object "FeatureCollection"
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/layers/load [get]
func (h *LayerHandler) LoadLayer(c *fiber.Ctx) error {
	var req dto.LoadLayerRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.layerUC.LoadLayer(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	// FeatureCollection отдается как есть, без обертки
	return c.JSON(fc)
}

// ReloadLayers godoc
// @Summary Перезагрузка слоев
// @Tags Layers
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ReloadLayersResponse}
// @Router /api/v1/layers/reload [post]
func (h *LayerHandler) ReloadLayers(c *fiber.Ctx) error {
	result, err := h.layerUC.Reload(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

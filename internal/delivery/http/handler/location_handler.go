package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/pkg/utils"
	"github.com/landscape-review/internal/pkg/validator"
	"github.com/landscape-review/internal/usecase/dto"
)

// LocationService - resolveLocation
type LocationService interface {
	ResolveByText(ctx context.Context, keyword string) (*domain.ResolvedLocation, error)
	ResolveByCoordinate(ctx context.Context, coord domain.Coordinate) (*domain.ResolvedLocation, error)
}

// LocationHandler - поиск адреса и участка
type LocationHandler struct {
	locationUC LocationService
	logger     *zap.Logger
}

// NewLocationHandler - создание нового LocationHandler
func NewLocationHandler(locationUC LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// SearchAddress godoc
// @Summary Поиск адреса или места
// @Description Геокодирует адрес или ключевое слово (основной провайдер, затем вторичный) и ищет границу участка
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.SearchAddressRequest true "Адрес или ключевое слово"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/search/address [post]
func (h *LocationHandler) SearchAddress(c *fiber.Ctx) error {
	var req dto.SearchAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	loc, err := h.locationUC.ResolveByText(c.UserContext(), req.Keyword)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewLocationResponse(loc), nil)
}

// GetParcel godoc
// @Summary Участок по координате
// @Description Обратное геокодирование точки и поиск границы участка. Граница может отсутствовать (null)
// @Tags Location
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/parcel [get]
func (h *LocationHandler) GetParcel(c *fiber.Ctx) error {
	if c.Query("lat") == "" || c.Query("lng") == "" {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": "required",
			"lng": "required",
		}))
	}

	var req dto.ParcelRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.Wrap(err))
	}

	loc, err := h.locationUC.ResolveByCoordinate(c.UserContext(), domain.Coordinate{Lat: req.Lat, Lon: req.Lng})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewLocationResponse(loc), nil)
}

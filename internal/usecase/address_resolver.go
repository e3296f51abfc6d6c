package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/domain/repository"
	"github.com/landscape-review/internal/metrics"
	"github.com/landscape-review/internal/pkg/errors"
)

const stageGeocode = "geocode"

// Тиры геокодирования
const (
	tierPrimary          = "primary"
	tierSecondaryAddress = "secondary_address"
	tierSecondaryKeyword = "secondary_keyword"
	tierSecondaryReverse = "secondary_reverse"
)

// AddressResolver - резолвинг текстового запроса в координату, адрес и PNU.
// Порядок тиров: основной провайдер, затем точный адрес и поиск места у вторичного.
// Каждый тир вызывается не более одного раза.
type AddressResolver struct {
	primary   repository.GeocodingProvider
	secondary repository.PlaceSearchProvider
	logger    *zap.Logger
}

// NewAddressResolver - создание AddressResolver. secondary может быть nil
func NewAddressResolver(
	primary repository.GeocodingProvider,
	secondary repository.PlaceSearchProvider,
	logger *zap.Logger,
) *AddressResolver {
	return &AddressResolver{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Resolve - первый успешный тир побеждает; если ничего не найдено - ErrLocationNotFound
func (r *AddressResolver) Resolve(ctx context.Context, keyword string) (*domain.GeocodeResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"keyword": "required",
		})
	}

	if res := r.primaryTier(ctx, keyword); res != nil {
		return res, nil
	}

	if r.secondary != nil {
		res, err := r.secondaryAddressTier(ctx, keyword)
		if err != nil || res != nil {
			return res, err
		}

		res, err = r.secondaryKeywordTier(ctx, keyword)
		if err != nil || res != nil {
			return res, err
		}
	}

	r.logger.Info("No geocoding results", zap.String("keyword", keyword))
	return nil, errors.ErrLocationNotFound.WithDetails(map[string]interface{}{
		"keyword": keyword,
	})
}

// primaryTier - ошибка провайдера и невалидная координата считаются неудачей тира
func (r *AddressResolver) primaryTier(ctx context.Context, keyword string) *domain.GeocodeResult {
	res, err := r.primary.GeocodeByText(ctx, keyword)
	metrics.ObserveTier(stageGeocode, tierPrimary, res != nil, err)
	if err != nil {
		r.logger.Warn("Primary geocoding failed, falling back",
			zap.String("keyword", keyword),
			zap.Error(err))
		return nil
	}
	if res == nil {
		r.logger.Debug("Primary geocoding returned no results", zap.String("keyword", keyword))
		return nil
	}
	if !res.Coordinate.Valid() {
		r.logger.Warn("Primary geocoding returned invalid coordinate, falling back",
			zap.String("keyword", keyword),
			zap.Float64("lat", res.Coordinate.Lat),
			zap.Float64("lon", res.Coordinate.Lon))
		return nil
	}

	r.logger.Info("Geocoded by primary provider",
		zap.String("keyword", keyword),
		zap.String("address", res.Address),
		zap.String("pnu", res.ParcelID))
	return res
}

func (r *AddressResolver) secondaryAddressTier(ctx context.Context, keyword string) (*domain.GeocodeResult, error) {
	res, err := r.secondary.SearchAddress(ctx, keyword)
	metrics.ObserveTier(stageGeocode, tierSecondaryAddress, res != nil, err)
	if err != nil {
		r.logger.Warn("Secondary address search failed",
			zap.String("keyword", keyword),
			zap.Error(err))
		return nil, nil
	}
	if res == nil {
		return nil, nil
	}
	if err := checkProviderCoordinate(res, tierSecondaryAddress); err != nil {
		return nil, err
	}

	// вторичный провайдер не является источником кадастра
	res.ParcelID = ""

	r.logger.Info("Geocoded by secondary address search",
		zap.String("keyword", keyword),
		zap.String("address", res.Address))
	return res, nil
}

func (r *AddressResolver) secondaryKeywordTier(ctx context.Context, keyword string) (*domain.GeocodeResult, error) {
	res, err := r.secondary.SearchKeyword(ctx, keyword)
	metrics.ObserveTier(stageGeocode, tierSecondaryKeyword, res != nil, err)
	if err != nil {
		r.logger.Warn("Secondary keyword search failed",
			zap.String("keyword", keyword),
			zap.Error(err))
		return nil, nil
	}
	if res == nil {
		return nil, nil
	}
	if err := checkProviderCoordinate(res, tierSecondaryKeyword); err != nil {
		return nil, err
	}
	res.ParcelID = ""

	// Адрес места уточняем по координате; при неудаче остается адрес или название места
	addr, err := r.secondary.AddressByCoordinate(ctx, res.Coordinate)
	switch {
	case err != nil:
		r.logger.Warn("Place address refinement failed",
			zap.String("keyword", keyword),
			zap.Error(err))
	case addr != "":
		res.Address = addr
	}

	r.logger.Info("Geocoded by secondary keyword search",
		zap.String("keyword", keyword),
		zap.String("address", res.Address))
	return res, nil
}

// ReverseGeocode - адрес и PNU для точки. Основной провайдер дает PNU,
// вторичный - только адрес. Отсутствие результата не является ошибкой.
func (r *AddressResolver) ReverseGeocode(ctx context.Context, coord domain.Coordinate) *domain.GeocodeResult {
	res, err := r.primary.GeocodeByCoordinate(ctx, coord)
	metrics.ObserveTier(stageGeocode, tierPrimary, res != nil, err)
	if err != nil {
		r.logger.Warn("Primary reverse geocoding failed",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon),
			zap.Error(err))
	}
	if err == nil && res != nil {
		return res
	}

	if r.secondary == nil {
		return nil
	}

	addr, err := r.secondary.AddressByCoordinate(ctx, coord)
	metrics.ObserveTier(stageGeocode, tierSecondaryReverse, addr != "", err)
	if err != nil {
		r.logger.Warn("Secondary reverse geocoding failed",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon),
			zap.Error(err))
		return nil
	}
	if addr == "" {
		return nil
	}

	return &domain.GeocodeResult{
		Coordinate: coord,
		Address:    addr,
		Source:     domain.SourceKakao,
	}
}

// checkProviderCoordinate - координата вторичного провайдера не подменяется, а отклоняется
func checkProviderCoordinate(res *domain.GeocodeResult, tier string) error {
	if res.Coordinate.Valid() {
		return nil
	}
	return errors.ErrInvalidProviderCoordinate.WithDetails(map[string]interface{}{
		"tier":    tier,
		"source":  res.Source,
		"address": res.Address,
	})
}

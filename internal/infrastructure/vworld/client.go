package vworld

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/landscape-review/internal/config"
	"github.com/landscape-review/internal/domain"
	apperrors "github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/metrics"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	providerName = "vworld"

	statusOK = "OK"

	// Слой кадастровых участков (точный поиск по PNU)
	layerParcel = "lp_pa_cbnd"
	// Более плотный слой участков для поиска по bbox
	layerParcelBubun = "lp_pa_cbnd_bubun"

	maxErrorBody = 512
)

// Client - клиент VWorld: геокодирование (источник PNU) и WFS границ участков
type Client struct {
	addressClient *http.Client
	wfsClient     *http.Client
	baseURL       string
	apiKey        string
	domain        string
	limiter       *rate.Limiter
	logger        *zap.Logger
}

// NewClient создает клиент VWorld. Адресные запросы и WFS используют разные таймауты
func NewClient(cfg *config.VWorldConfig, logger *zap.Logger) *Client {
	c := &Client{
		addressClient: &http.Client{Timeout: cfg.AddressTimeout},
		wfsClient:     &http.Client{Timeout: cfg.WFSTimeout},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		domain:        cfg.Domain,
		logger:        logger.Named("vworld"),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// GeocodeByText ищет один кадастровый адрес (type=PARCEL, size=1)
func (c *Client) GeocodeByText(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	start := time.Now()
	params := url.Values{
		"service": {"address"},
		"request": {"GetAddress"},
		"version": {"2.0"},
		"query":   {query},
		"type":    {"PARCEL"},
		"size":    {"1"},
		"output":  {"json"},
		"key":     {c.apiKey},
	}

	var resp addressResponse
	if err := c.getJSON(ctx, c.addressClient, "/req/address", params, &resp); err != nil {
		metrics.ObserveProvider(providerName, "geocode", start, false, err)
		return nil, err
	}

	if resp.Response.Status != statusOK || len(resp.Response.Result.Items) == 0 {
		c.logger.Debug("VWorld address search returned no results",
			zap.String("query", query),
			zap.String("status", resp.Response.Status))
		metrics.ObserveProvider(providerName, "geocode", start, false, nil)
		return nil, nil
	}

	item := resp.Response.Result.Items[0]
	pnu := item.Structure.PNU
	if pnu == "" {
		pnu = item.ID
	}
	address := item.Address.Parcel
	if address == "" {
		address = item.Address.Road
	}

	result := &domain.GeocodeResult{
		Coordinate: domain.Coordinate{Lat: item.Point.Y.value(), Lon: item.Point.X.value()},
		Address:    address,
		ParcelID:   pnu,
		Source:     domain.SourceVWorld,
	}

	c.logger.Debug("VWorld address search succeeded",
		zap.String("query", query),
		zap.String("address", result.Address),
		zap.String("pnu", result.ParcelID))
	metrics.ObserveProvider(providerName, "geocode", start, true, nil)
	return result, nil
}

// GeocodeByCoordinate - обратное геокодирование точки в кадастровый адрес и PNU
func (c *Client) GeocodeByCoordinate(ctx context.Context, coord domain.Coordinate) (*domain.GeocodeResult, error) {
	start := time.Now()
	params := url.Values{
		"service": {"address"},
		"request": {"GetAddress"},
		"version": {"2.0"},
		"coords":  {fmt.Sprintf("%v,%v", coord.Lon, coord.Lat)},
		"type":    {"PARCEL"},
		"output":  {"json"},
		"key":     {c.apiKey},
	}

	var resp reverseResponse
	if err := c.getJSON(ctx, c.addressClient, "/req/address", params, &resp); err != nil {
		metrics.ObserveProvider(providerName, "reverse", start, false, err)
		return nil, err
	}

	if resp.Response.Status != statusOK || len(resp.Response.Result) == 0 {
		metrics.ObserveProvider(providerName, "reverse", start, false, nil)
		return nil, nil
	}

	item := resp.Response.Result[0]
	metrics.ObserveProvider(providerName, "reverse", start, true, nil)
	return &domain.GeocodeResult{
		Coordinate: coord,
		Address:    item.Text,
		ParcelID:   item.Structure.PNU,
		Source:     domain.SourceVWorld,
	}, nil
}

// GetBoundaryByParcelID - WFS lp_pa_cbnd с фильтром pnu='...'
func (c *Client) GetBoundaryByParcelID(ctx context.Context, parcelID string) (*geojson.Feature, error) {
	start := time.Now()
	params := c.wfsParams(layerParcel)
	params.Set("cql_filter", fmt.Sprintf("pnu='%s'", strings.ReplaceAll(parcelID, "'", "''")))

	fc, err := c.getFeatures(ctx, params)
	if err != nil {
		metrics.ObserveProvider(providerName, "wfs_pnu", start, false, err)
		return nil, err
	}
	if len(fc.Features) == 0 {
		metrics.ObserveProvider(providerName, "wfs_pnu", start, false, nil)
		return nil, nil
	}

	if len(fc.Features) > 1 {
		c.logger.Warn("WFS returned several features for one parcel, using the first",
			zap.String("pnu", parcelID),
			zap.Int("count", len(fc.Features)))
	}
	metrics.ObserveProvider(providerName, "wfs_pnu", start, true, nil)
	return fc.Features[0], nil
}

// GetBoundariesByBBox - WFS lp_pa_cbnd_bubun по bbox (minLon,minLat,maxLon,maxLat)
func (c *Client) GetBoundariesByBBox(ctx context.Context, bound orb.Bound) ([]*geojson.Feature, error) {
	start := time.Now()
	params := c.wfsParams(layerParcelBubun)
	params.Set("bbox", fmt.Sprintf("%v,%v,%v,%v", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()))

	fc, err := c.getFeatures(ctx, params)
	if err != nil {
		metrics.ObserveProvider(providerName, "wfs_bbox", start, false, err)
		return nil, err
	}

	metrics.ObserveProvider(providerName, "wfs_bbox", start, len(fc.Features) > 0, nil)
	return fc.Features, nil
}

func (c *Client) wfsParams(typename string) url.Values {
	return url.Values{
		"service":  {"wfs"},
		"version":  {"2.0.0"},
		"request":  {"GetFeature"},
		"typename": {typename},
		"srsname":  {"EPSG:4326"},
		"output":   {"application/json"},
		"key":      {c.apiKey},
		"domain":   {c.domain},
	}
}

func (c *Client) getFeatures(ctx context.Context, params url.Values) (*geojson.FeatureCollection, error) {
	body, err := c.get(ctx, c.wfsClient, "/req/wfs", params)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		c.logger.Error("Failed to decode WFS response",
			zap.String("typename", params.Get("typename")),
			zap.Error(err))
		return nil, apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName}).
			Wrap(fmt.Errorf("failed to decode wfs response: %w", err))
	}
	if fc.Type != "FeatureCollection" {
		c.logger.Error("WFS response is not a feature collection",
			zap.String("typename", params.Get("typename")),
			zap.String("type", fc.Type))
		return nil, apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName}).
			Wrap(fmt.Errorf("unexpected wfs response type %q", fc.Type))
	}
	return fc, nil
}

func (c *Client) getJSON(ctx context.Context, httpClient *http.Client, path string, params url.Values, out interface{}) error {
	body, err := c.get(ctx, httpClient, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode response", zap.String("path", path), zap.Error(err))
		return apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName}).
			Wrap(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, httpClient *http.Client, path string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperrors.ErrProviderFailure.Wrap(fmt.Errorf("rate limiter: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.ErrProviderFailure.Wrap(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("path", path), zap.Error(err))
		return nil, apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName}).
			Wrap(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrProviderFailure.Wrap(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		c.logger.Error("VWorld API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName, "status": resp.StatusCode}).
			Wrap(fmt.Errorf("vworld API error: status %d", resp.StatusCode))
	}

	return body, nil
}

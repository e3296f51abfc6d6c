package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/landscape-review/internal/config"
	"github.com/landscape-review/internal/domain"
	apperrors "github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/metrics"
	"go.uber.org/zap"
)

const (
	providerName = "kakao"
	maxErrorBody = 512
)

type addressDocument struct {
	AddressName string `json:"address_name"`
	X           string `json:"x"`
	Y           string `json:"y"`
	Address     *struct {
		AddressName string `json:"address_name"`
	} `json:"address"`
}

type placeDocument struct {
	PlaceName       string `json:"place_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	X               string `json:"x"`
	Y               string `json:"y"`
}

type coord2AddressDocument struct {
	Address *struct {
		AddressName string `json:"address_name"`
	} `json:"address"`
	RoadAddress *struct {
		AddressName string `json:"address_name"`
	} `json:"road_address"`
}

type searchResponse[T any] struct {
	Documents []T `json:"documents"`
}

// Client - клиент Kakao Local API (вторичный геокодер, без PNU)
type Client struct {
	httpClient *http.Client
	baseURL    string
	restKey    string
	logger     *zap.Logger
}

// NewClient создает клиент Kakao Local API
func NewClient(cfg *config.KakaoConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		restKey:    cfg.RESTKey,
		logger:     logger.Named("kakao"),
	}
}

// SearchAddress - точный поиск адреса, первый результат
func (c *Client) SearchAddress(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	start := time.Now()
	var resp searchResponse[addressDocument]
	if err := c.getJSON(ctx, "/v2/local/search/address.json", url.Values{"query": {query}}, &resp); err != nil {
		metrics.ObserveProvider(providerName, "address", start, false, err)
		return nil, err
	}
	if len(resp.Documents) == 0 {
		metrics.ObserveProvider(providerName, "address", start, false, nil)
		return nil, nil
	}

	doc := resp.Documents[0]
	address := doc.AddressName
	if address == "" && doc.Address != nil {
		address = doc.Address.AddressName
	}

	metrics.ObserveProvider(providerName, "address", start, true, nil)
	return &domain.GeocodeResult{
		Coordinate: domain.Coordinate{Lat: parseCoord(doc.Y), Lon: parseCoord(doc.X)},
		Address:    address,
		Source:     domain.SourceKakao,
	}, nil
}

// SearchKeyword - поиск мест по ключевому слову, первый результат по рангу
func (c *Client) SearchKeyword(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	start := time.Now()
	var resp searchResponse[placeDocument]
	if err := c.getJSON(ctx, "/v2/local/search/keyword.json", url.Values{"query": {query}}, &resp); err != nil {
		metrics.ObserveProvider(providerName, "keyword", start, false, err)
		return nil, err
	}
	if len(resp.Documents) == 0 {
		metrics.ObserveProvider(providerName, "keyword", start, false, nil)
		return nil, nil
	}

	doc := resp.Documents[0]
	address := doc.AddressName
	if address == "" {
		address = doc.PlaceName
	}

	metrics.ObserveProvider(providerName, "keyword", start, true, nil)
	return &domain.GeocodeResult{
		Coordinate: domain.Coordinate{Lat: parseCoord(doc.Y), Lon: parseCoord(doc.X)},
		Address:    address,
		Source:     domain.SourceKakaoPlace,
	}, nil
}

// AddressByCoordinate возвращает jibun-адрес точки (или дорожный, если jibun нет)
func (c *Client) AddressByCoordinate(ctx context.Context, coord domain.Coordinate) (string, error) {
	start := time.Now()
	params := url.Values{
		"x": {strconv.FormatFloat(coord.Lon, 'f', -1, 64)},
		"y": {strconv.FormatFloat(coord.Lat, 'f', -1, 64)},
	}

	var resp searchResponse[coord2AddressDocument]
	if err := c.getJSON(ctx, "/v2/local/geo/coord2address.json", params, &resp); err != nil {
		metrics.ObserveProvider(providerName, "coord2address", start, false, err)
		return "", err
	}

	for _, doc := range resp.Documents {
		if doc.Address != nil && doc.Address.AddressName != "" {
			metrics.ObserveProvider(providerName, "coord2address", start, true, nil)
			return doc.Address.AddressName, nil
		}
		if doc.RoadAddress != nil && doc.RoadAddress.AddressName != "" {
			metrics.ObserveProvider(providerName, "coord2address", start, true, nil)
			return doc.RoadAddress.AddressName, nil
		}
	}

	metrics.ObserveProvider(providerName, "coord2address", start, false, nil)
	return "", nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return apperrors.ErrProviderFailure.Wrap(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "KakaoAK "+c.restKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("path", path), zap.Error(err))
		return apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName}).
			Wrap(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Kakao API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName, "status": resp.StatusCode}).
			Wrap(fmt.Errorf("kakao API error: status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.String("path", path), zap.Error(err))
		return apperrors.ErrProviderFailure.
			WithDetails(map[string]interface{}{"provider": providerName}).
			Wrap(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// parseCoord - Kakao отдает координаты строками; непарсируемое значение дает NaN
func parseCoord(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

package repository

import (
	"context"

	"github.com/landscape-review/internal/domain"
)

// Провайдеры сообщают об отсутствии результатов как (nil, nil),
// а транспортные ошибки и ошибки разбора ответа - как ErrProviderFailure.

// GeocodingProvider - основной провайдер геокодирования (источник PNU)
type GeocodingProvider interface {
	// GeocodeByText ищет один лучший кадастровый адрес по строке запроса
	GeocodeByText(ctx context.Context, query string) (*domain.GeocodeResult, error)

	// GeocodeByCoordinate возвращает кадастровый адрес и PNU для точки
	GeocodeByCoordinate(ctx context.Context, coord domain.Coordinate) (*domain.GeocodeResult, error)
}

// PlaceSearchProvider - вторичный провайдер: адреса и места (без PNU)
type PlaceSearchProvider interface {
	// SearchAddress выполняет точный поиск адреса
	SearchAddress(ctx context.Context, query string) (*domain.GeocodeResult, error)

	// SearchKeyword выполняет поиск мест по ключевому слову и возвращает первый результат
	SearchKeyword(ctx context.Context, query string) (*domain.GeocodeResult, error)

	// AddressByCoordinate возвращает адрес для точки
	AddressByCoordinate(ctx context.Context, coord domain.Coordinate) (string, error)
}

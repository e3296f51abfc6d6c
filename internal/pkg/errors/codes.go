package errors

import "net/http"

// Коды ошибок сгруппированы по таксономии: NotFound, InvalidInput, ProviderFailure, DataCorruption
const (
	CodeLocationNotFound          = "LOCATION_NOT_FOUND"
	CodeInvalidCoordinates        = "INVALID_COORDINATES"
	CodeInvalidRadius             = "INVALID_RADIUS"
	CodeInvalidRequest            = "INVALID_REQUEST"
	CodeProviderFailure           = "PROVIDER_FAILURE"
	CodeInvalidProviderCoordinate = "INVALID_PROVIDER_COORDINATE"
	CodeLayerNotFound             = "LAYER_NOT_FOUND"
	CodeLayerCorrupted            = "LAYER_CORRUPTED"
	CodeDatabaseError             = "DATABASE_ERROR"
	CodeCacheError                = "CACHE_ERROR"
	CodeInternalServer            = "INTERNAL_SERVER_ERROR"
)

var (
	ErrLocationNotFound = New(
		CodeLocationNotFound,
		"No results for the given query",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		CodeInvalidCoordinates,
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		CodeInvalidRadius,
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrProviderFailure = New(
		CodeProviderFailure,
		"External provider call failed",
		http.StatusBadGateway,
	)

	ErrInvalidProviderCoordinate = New(
		CodeInvalidProviderCoordinate,
		"Provider returned a non-finite coordinate",
		http.StatusBadGateway,
	)

	ErrLayerNotFound = New(
		CodeLayerNotFound,
		"Layer data not found",
		http.StatusNotFound,
	)

	ErrLayerCorrupted = New(
		CodeLayerCorrupted,
		"Layer data is missing or unparseable",
		http.StatusUnprocessableEntity,
	)

	ErrDatabaseError = New(
		CodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		CodeCacheError,
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)

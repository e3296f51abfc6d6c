package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/config"
	"github.com/landscape-review/internal/delivery/http/handler"
	"github.com/landscape-review/internal/delivery/http/middleware"
	"github.com/landscape-review/internal/metrics"
	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	healthHandler   *handler.HealthHandler
	locationHandler *handler.LocationHandler
	analysisHandler *handler.AnalysisHandler
	layerHandler    *handler.LayerHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *handler.HealthHandler,
	locationHandler *handler.LocationHandler,
	analysisHandler *handler.AnalysisHandler,
	layerHandler *handler.LayerHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Landscape Review Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    8 * 1024 * 1024, // parcel_geometry может быть крупным
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		healthHandler:   healthHandler,
		locationHandler: locationHandler,
		analysisHandler: analysisHandler,
		layerHandler:    layerHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Location
	api.Post("/search/address", s.locationHandler.SearchAddress)
	api.Get("/parcel", s.locationHandler.GetParcel)

	// Analysis
	api.Post("/analyze", s.analysisHandler.Analyze)

	// Layers
	api.Get("/layers", s.layerHandler.ListLayers)
	api.Get("/layers/load", s.layerHandler.LoadLayer)
	api.Post("/layers/reload", s.layerHandler.ReloadLayers)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные в handlers (404 маршрута, паники, лимит тела)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New(httpErrorCode(code), err.Error(), code),
		})
	}
}

func httpErrorCode(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return "NOT_FOUND"
	case status == fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case status == fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	case status < fiber.StatusInternalServerError:
		return errors.CodeInvalidRequest
	default:
		return errors.CodeInternalServer
	}
}

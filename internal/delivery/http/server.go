package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/journey-planner/internal/config"
	"github.com/journey-planner/internal/delivery/http/handler"
	"github.com/journey-planner/internal/delivery/http/middleware"
	"github.com/journey-planner/internal/pkg/errors"
	"github.com/journey-planner/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	journeyHandler *handler.JourneyHandler
	placeHandler   *handler.PlaceHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	journeyHandler *handler.JourneyHandler,
	placeHandler *handler.PlaceHandler,
) *Server {
	// WriteTimeout outlives the backend timeout so a slow search still gets its state back.
	app := fiber.New(fiber.Config{
		AppName:               "Journey Planner",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.API.Timeout + 5*time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		journeyHandler: journeyHandler,
		placeHandler:   placeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/places", s.placeHandler.Search)
	api.Get("/journeys", s.journeyHandler.GetJourneys)

	api.Post("/search", s.journeyHandler.Search)
}

// App exposes the fiber app, mainly for app.Test in handler tests.
func (s *Server) App() *fiber.App {
	return s.app
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

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New(errors.CodeInvalidRequest, e.Message, e.Code)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}

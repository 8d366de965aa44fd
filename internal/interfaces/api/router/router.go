package router

import (
	"dailyreminder/internal/interfaces/api/handler"
	"dailyreminder/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Config holds the dependencies for the router.
type Config struct {
	HealthHandler *handler.HealthHandler
	LineHandler   *handler.LineHandler // nil when LINE is not configured
	Logger        logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				cfg.Logger.Error("request failed", v.Error, fields...)
				return nil
			}
			cfg.Logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Routes
	e.GET("/healthz", cfg.HealthHandler.Check)

	// LINE Webhook Endpoint
	// Note: LINE Platform requires POST for webhook
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	cfg.Logger.Info("router initialized", zap.Bool("line_webhook", cfg.LineHandler != nil))
	return e
}

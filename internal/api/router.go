package api

import (
	"errors"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/adboard/advertisement-service/docs"
	"github.com/adboard/advertisement-service/internal/api/handler"
	"github.com/adboard/advertisement-service/internal/api/middleware"
	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/service"
	"github.com/adboard/advertisement-service/internal/infrastructure/db/postgres"
	rediscache "github.com/adboard/advertisement-service/internal/infrastructure/db/redis"
	"github.com/adboard/advertisement-service/internal/infrastructure/http/handlers"
	"github.com/adboard/advertisement-service/internal/pkg/config"
)

// Dependencies are the long-lived resources the router wires into handlers.
type Dependencies struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil disables Idempotency-Key handling
	Config *config.Config
	Logger zerolog.Logger
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	if deps.DB == nil || deps.Config == nil {
		return nil, errors.New("api: database and config are required")
	}
	log := deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "classifieds",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	// Inside the metrics middleware so it sees the status the error handler wrote.
	e.Use(requestLogger(log))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(deps.DB)
	adRepo := postgres.NewAdvertisementRepository(deps.DB)

	authService, err := service.NewAuthService(userRepo, service.AuthConfig{
		Secret:    deps.Config.Auth.JWTSecret,
		Algorithm: deps.Config.Auth.JWTAlgorithm,
		TokenTTL:  deps.Config.Auth.AccessTokenTTL,
	}, log)
	if err != nil {
		return nil, err
	}
	userService := service.NewUserService(userRepo, log)

	var idempotency service.IdempotencyStore
	if deps.Redis != nil {
		idempotency = rediscache.NewIdempotencyStore(deps.Redis, deps.Config.Redis.IdempotencyTTL)
	}
	adService := service.NewAdvertisementService(adRepo, idempotency, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adHandler := handler.NewAdvertisementHandler(adService)
	requireAuth := middleware.Auth(authService)

	e.GET("/", handler.Root)
	e.POST("/login", authHandler.Login)

	// --- Advertisement routes ---
	e.POST("/advertisement", adHandler.Create, requireAuth)
	e.GET("/advertisement", adHandler.Search)
	e.GET("/advertisement/:id", adHandler.Get)
	e.PATCH("/advertisement/:id", adHandler.Update, requireAuth)
	e.DELETE("/advertisement/:id", adHandler.Delete, requireAuth)

	// --- User routes ---
	e.POST("/user", userHandler.Register)
	e.GET("/user", userHandler.List, requireAuth, middleware.RequireRole(domain.RoleAdmin))
	e.GET("/user/:id", userHandler.Get)
	e.PATCH("/user/:id", userHandler.Update, requireAuth)
	e.DELETE("/user/:id", userHandler.Delete, requireAuth)

	// --- Health probes, metrics and docs (no auth required) ---
	checks := map[string]handlers.DependencyCheck{
		"database": handlers.DatabaseCheck(deps.DB),
	}
	if deps.Redis != nil {
		checks["redis"] = handlers.RedisCheck(deps.Redis)
	}
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger writes one access-log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/woodmart/storefront/docs"
	"github.com/woodmart/storefront/internal/api/handler"
	"github.com/woodmart/storefront/internal/api/middleware"
	"github.com/woodmart/storefront/internal/core/ports"
	"github.com/woodmart/storefront/internal/core/service"
	"github.com/woodmart/storefront/internal/infrastructure/http/handlers"
)

// Dependencies are the adapters the router wires into the services.
type Dependencies struct {
	Products ports.ProductRepository
	Users    ports.UserRepository
	Sessions ports.SessionStore

	SessionSecret string
	CookieSecure  bool

	// Checks are probed by GET /health/ready.
	Checks []handlers.Check

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// HTTP metrics live in a per-router registry; /metrics serves it
	// together with the default registry holding the custom counters.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Sessions, deps.Log.With().Str("component", "auth").Logger())
	cartService := service.NewCartService(deps.Products, deps.Log.With().Str("component", "cart").Logger())
	catalogService := service.NewCatalogService(deps.Products, deps.Log.With().Str("component", "catalog").Logger())

	authHandler := handler.NewAuthHandler(authService)
	cartHandler := handler.NewCartHandler(cartService)
	productHandler := handler.NewProductHandler(catalogService)
	adminHandler := handler.NewAdminHandler(catalogService)

	session := middleware.Session(middleware.SessionConfig{
		Store:  deps.Sessions,
		Secret: []byte(deps.SessionSecret),
		Secure: deps.CookieSecure,
		Log:    deps.Log,
	})

	// --- Catalog ---
	e.GET("/api/products", productHandler.List)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login, session)
	e.POST("/register", authHandler.Register, session)
	e.GET("/logout", authHandler.Logout, session)

	// --- Cart ---
	cart := e.Group("/api/cart", session)
	cart.GET("", cartHandler.Summary)
	cart.POST("/add", cartHandler.Add, middleware.RequireUser())
	cart.PUT("/update/:item_id", cartHandler.Update, middleware.RequireUser())
	cart.DELETE("/remove/:item_id", cartHandler.Remove, middleware.RequireUser())
	cart.DELETE("/clear", cartHandler.Clear, middleware.RequireUser())

	// --- Admin panel ---
	admin := e.Group("/admin", session, middleware.RequireAdmin())
	admin.GET("", adminHandler.List)
	admin.GET("/products/edit/:id", adminHandler.Get)
	admin.POST("/products/edit/:id", adminHandler.Update)
	admin.POST("/products/add", adminHandler.Create)
	admin.POST("/products/delete/:id", adminHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
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

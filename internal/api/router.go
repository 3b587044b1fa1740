package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/andypowell00/food-notes-ui/internal/api/handler"
	"github.com/andypowell00/food-notes-ui/internal/api/middleware"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
	"github.com/andypowell00/food-notes-ui/web"
)

// Deps are the collaborators the router wires into handlers. Mongo, Redis,
// Auditor and Renderer may be nil.
type Deps struct {
	Auth    ports.AuthService
	Gateway ports.DiaryGateway
	Backend handler.BackendPinger
	Audit   ports.AuditService
	Auditor handler.Auditor

	Mongo *mongo.Database
	Redis *redis.Client

	Renderer echo.Renderer
	Log      zerolog.Logger
}

// Options toggle the security behaviour of the router.
type Options struct {
	// BypassAuth disables the page gate entirely.
	BypassAuth bool
	// ProtectAPI puts /api behind a session check.
	ProtectAPI   bool
	SecureCookie bool
	// LoginRateLimit is the per-IP login budget in requests per second.
	LoginRateLimit float64
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()
	if deps.Renderer != nil {
		e.Renderer = deps.Renderer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	reg := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "diary_http",
		Registerer: reg,
	}))
	e.Use(middleware.Gate(middleware.GateConfig{
		Auth:         deps.Auth,
		Bypass:       opts.BypassAuth,
		SecureCookie: opts.SecureCookie,
		Log:          deps.Log,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, opts.SecureCookie, deps.Log)
	homeHandler := handler.NewHomeHandler(deps.Gateway)
	resources := handler.NewResourceHandler(deps.Gateway, deps.Auditor)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	loginLimit := middleware.LoginRateLimit(opts.LoginRateLimit)

	// --- Pages ---
	e.StaticFS("/static", web.Static())
	e.GET(middleware.LoginPath, authHandler.LoginPage)
	e.POST(middleware.LoginPath, authHandler.LoginSubmit, loginLimit)
	e.POST("/logout", authHandler.LogoutPage)
	e.GET("/", homeHandler.Home)

	// --- Auth API ---
	e.POST("/api/auth/login", authHandler.Login, loginLimit)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/session", authHandler.Session)

	// --- Resource API ---
	g := e.Group("/api")
	if opts.ProtectAPI {
		g.Use(middleware.RequireSession(deps.Auth))
	}
	registerResources(g, resources)
	g.GET("/audit/entries/:entryId", auditHandler.EntryHistory)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Backend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func registerResources(g *echo.Group, h *handler.ResourceHandler) {
	g.GET("/entries", h.ListEntries)
	g.POST("/entries", h.CreateEntry)

	g.GET("/ingredients", h.ListIngredients)
	g.POST("/ingredients", h.CreateIngredient)

	g.GET("/symptoms", h.ListSymptoms)
	g.POST("/symptoms", h.CreateSymptom)

	g.GET("/supplements", h.ListSupplements)
	g.POST("/supplements", h.CreateSupplement)
	g.GET("/supplements/:id", h.GetSupplement)
	g.DELETE("/supplements/:id", h.DeleteSupplement)

	g.GET("/entry-ingredients/:entryId", h.ListEntryIngredients)
	g.POST("/entry-ingredients/:entryId", h.AddEntryIngredient)
	g.PUT("/entry-ingredients/:entryId/:ingredientId", h.UpdateEntryIngredient)
	g.DELETE("/entry-ingredients/:entryId/:ingredientId", h.RemoveEntryIngredient)

	g.GET("/entry-symptoms/:entryId", h.ListEntrySymptoms)
	g.POST("/entry-symptoms/:entryId", h.AddEntrySymptom)
	g.PUT("/entry-symptoms/:entryId/:symptomId", h.UpdateEntrySymptom)
	g.DELETE("/entry-symptoms/:entryId/:symptomId", h.RemoveEntrySymptom)

	g.POST("/entry-supplements", h.AddEntrySupplement)
	g.GET("/entry-supplements/by-entry/:entryId", h.ListEntrySupplements)
	g.DELETE("/entry-supplements/:entryId/:supplementId", h.RemoveEntrySupplement)

	g.GET("/safe-ingredients", h.ListSafeIngredients)
	g.POST("/safe-ingredients", h.MarkSafe)
	g.DELETE("/safe-ingredients/:ingredientId", h.UnmarkSafe)

	g.GET("/unsafe-ingredients", h.ListUnsafeIngredients)
	g.POST("/unsafe-ingredients", h.MarkUnsafe)
	g.DELETE("/unsafe-ingredients/:ingredientId", h.UnmarkUnsafe)

	g.GET("/meals", h.ListMeals)
	g.POST("/meals", h.CreateMeal)
	g.POST("/meals/:mealId/ingredients", h.AddMealIngredient)
	g.DELETE("/meals/:mealId/ingredients/:ingredientId", h.RemoveMealIngredient)

	g.POST("/entry-meals", h.AddEntryMeal)
	g.GET("/entry-meals/by-entry/:entryId", h.ListEntryMeals)
	g.DELETE("/entry-meals/:entryId/:mealId", h.RemoveEntryMeal)
}

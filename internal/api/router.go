package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homekeeper/account-service/internal/api/handler"
	"github.com/homekeeper/account-service/internal/api/middleware"
	"github.com/homekeeper/account-service/internal/core/domain"
	"github.com/homekeeper/account-service/internal/core/ports"
	"github.com/homekeeper/account-service/internal/core/service"
	mongodb "github.com/homekeeper/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/homekeeper/account-service/internal/infrastructure/db/redis"
	"github.com/homekeeper/account-service/internal/infrastructure/security"
)

// Deps carries the shared infrastructure the router wires the handlers to.
type Deps struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Catalog    ports.RoleCatalog
	Audit      ports.AuditRecorder
	JWTSecret  string
	BcryptCost int
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("account"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	userCache := redisdb.NewUserCache(deps.Redis)
	hasher := security.NewBcryptHasher(deps.BcryptCost)
	userService := service.NewUserService(userRepo, deps.Catalog, hasher, userCache, deps.Audit, deps.Logger)
	userHandler := handler.NewUserHandler(userService)
	auth := middleware.Auth(deps.JWTSecret)

	// --- Account routes ---
	users := e.Group("/api/auth/users")
	users.GET("", userHandler.List, auth, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	users.GET("/getUserInfo", userHandler.GetInfo, auth, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	// Registration is intentionally open; the original admin gate on this
	// endpoint is disabled.
	users.POST("/addUser", userHandler.Register)
	users.PUT("/:id", userHandler.Update, auth, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, auth, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gvn/lending-platform/internal/api/handler"
	"github.com/gvn/lending-platform/internal/api/middleware"
	"github.com/gvn/lending-platform/internal/core/service"
	"github.com/gvn/lending-platform/internal/infrastructure/db/mysql"
	redisdb "github.com/gvn/lending-platform/internal/infrastructure/db/redis"
)

// Options carries router configuration not already bound to a dependency.
type Options struct {
	JWTSecret string
	JWTTTL    time.Duration
	CacheTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Everything outside /auth, /health and /metrics requires a valid bearer
// token.
func NewRouter(db *sql.DB, rdb *redis.Client, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lending"))

	// --- Dependencies ---
	cache := redisdb.NewGroupCache(rdb)
	userRepo := mysql.NewUserRepository(db)
	roleRepo := mysql.NewRoleRepository(db)
	productRepo := mysql.NewProductRepository(db)

	tokenService := service.NewTokenService(opts.JWTSecret, opts.JWTTTL)
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, cache, log)
	userService := service.NewUserService(userRepo, roleRepo, cache, opts.CacheTTL, log)
	roleService := service.NewRoleService(roleRepo, cache, opts.CacheTTL, log)
	productService := service.NewProductService(productRepo, cache, opts.CacheTTL, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	productHandler := handler.NewProductHandler(productService)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Protected routes ---
	auth := middleware.Auth(tokenService, userService)

	users := e.Group("/users", auth)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.GetByID)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	roles := e.Group("/roles", auth)
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)
	roles.GET("/:id", roleHandler.GetByID)
	roles.PUT("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	products := e.Group("/products", auth)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.GET("/:id", productHandler.GetByID)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	return e
}

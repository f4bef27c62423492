package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskvault/todo-api/internal/api/handler"
	"github.com/taskvault/todo-api/internal/api/middleware"
	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/service"
	mongodb "github.com/taskvault/todo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskvault/todo-api/internal/infrastructure/db/redis"
	"github.com/taskvault/todo-api/internal/infrastructure/queue"
	"github.com/taskvault/todo-api/internal/pkg/config"
	"github.com/taskvault/todo-api/internal/pkg/hash"
)

// NewRouter builds the Echo instance with all routes registered. The returned
// dispatcher must be started by the caller and owns the async login-event
// workers.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)
	todoCache := redisdb.NewTodoCache(rdb)
	dispatcher := queue.NewDispatcher(0, userRepo, log)

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokenService, dispatcher, log)
	todoService := service.NewTodoService(todoRepo, todoCache, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Auth.TokenTTL)
	todoHandler := handler.NewTodoHandler(todoService)
	adminHandler := handler.NewAdminHandler(todoService)
	userHandler := handler.NewUserHandler(userRepo)

	authMiddleware := middleware.Auth(tokenService, log)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/token", authHandler.Token)

	// --- Todo routes (owner-scoped) ---
	todos := e.Group("/todos", authMiddleware)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.POST("", todoHandler.Create)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- User routes ---
	users := e.Group("/users", authMiddleware)
	users.GET("/me", userHandler.Me)

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/todos", adminHandler.ListAll)
	admin.DELETE("/todos/:id", adminHandler.DeleteAny)

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}

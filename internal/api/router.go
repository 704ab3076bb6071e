package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/usermgmt/user-management-api/internal/api/handler"
	"github.com/usermgmt/user-management-api/internal/api/middleware"
	"github.com/usermgmt/user-management-api/internal/core/ports"
	"github.com/usermgmt/user-management-api/internal/core/service"
	"github.com/usermgmt/user-management-api/internal/pkg/config"
	"github.com/usermgmt/user-management-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Registration, login, and email verification stay reachable without a token;
// everything under /api/users requires a valid bearer token and passes the
// status gate.
func NewRouter(repo ports.UserRepository, db *mongo.Database, rdb *redis.Client, cfg *config.Config, mail ports.MailDispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("usermgmt"))

	// --- Dependencies ---
	issuer := token.NewIssuer(token.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	})
	authService := service.NewAuthService(repo, issuer, mail, log)
	userService := service.NewUserService(repo, log)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth routes (no token required) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify-email", authHandler.VerifyEmail)

	// --- Admin routes (token + status gate) ---
	users := e.Group("/api/users",
		middleware.Auth(issuer),
		middleware.StatusGate(repo, authService, log),
	)
	users.GET("", userHandler.List)
	users.POST("/block", userHandler.Block)
	users.POST("/unblock", userHandler.Unblock)
	users.DELETE("", userHandler.Delete)
	users.DELETE("/unverified", userHandler.DeleteUnverified)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

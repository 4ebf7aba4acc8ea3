// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "lema/docs" // swagger docs
	"lema/internal/bootstrap"
	"lema/internal/config"
	"lema/internal/database"
	"lema/internal/middleware"
	"lema/internal/repository"
	"lema/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const requestTimeout = 5 * time.Second

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	limiter        *middleware.RateLimiter
	userService    *service.UserService
	postService    *service.PostService
}

// NewServer connects to the configured database and Redis and builds the server.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{
		SeedFixtures: cfg.SeedOnStart,
		Logger:       middleware.Logger,
	})
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case rate limiting is off.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("server requires config and database")
	}

	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	postRepo := repository.NewPostRepository(db)

	limitEnabled := redisClient != nil && !cfg.IsDevelopment() && cfg.Env != "test"

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("lema-api"),
		limiter:        middleware.NewRateLimiter(redisClient, limitEnabled),
		userService:    service.NewUserService(userRepo, addressRepo),
		postService:    service.NewPostService(postRepo, userRepo),
	}, nil
}

// NewApp returns a Fiber app with the fallback error responder, middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Lema API",
		BodyLimit:    1 * 1024 * 1024,
		UnescapePath: true,
		ErrorHandler: ErrorHandler(!s.config.IsProduction()),
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery; the panic becomes an error for the fallback responder.
	app.Use(recover.New(recover.Config{EnableStackTrace: s.config.IsDevelopment()}))

	app.Use(requestid.New())

	// Tracing sets the trace id local read by the context middleware.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	app.Use(middleware.BearerPassthrough(s.config.JWTSecret))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	users := app.Group("/users")
	users.Get("/", s.ListUsers)
	// Specific /:userId/posts before generic /:userId
	users.Get("/:userId/posts", s.ListUserPosts)
	users.Get("/:userId", s.GetUser)

	window := time.Duration(s.config.CreatePostRateWindowSeconds) * time.Second
	posts := app.Group("/posts")
	posts.Post("/", s.limiter.Handler("create_post", s.config.CreatePostRateLimit, window, middleware.FailOpen), s.CreatePost)
	posts.Delete("/:postId", s.DeletePost)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so only
// a configured but failing Redis makes the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases the database and Redis connections.
func (s *Server) Shutdown(_ context.Context) error {
	var errs []error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := database.Close(s.db); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

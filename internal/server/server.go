// Package server contains the HTTP handlers and routing for the web application.
package server

import (
	"context"
	"fmt"
	"time"

	"mingle/internal/auth"
	"mingle/internal/cache"
	"mingle/internal/config"
	"mingle/internal/database"
	"mingle/internal/middleware"
	"mingle/internal/repository"
	"mingle/internal/service"
	"mingle/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	friendRepo  repository.FriendRepository
	gate        *auth.Gate
	sessions    *session.Store
	feed        *service.FeedService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Sessions live in Redis, so it is a hard dependency here.
	rdb, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return newServer(cfg, db, rdb), nil
}

func newServer(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	ttl := time.Duration(cfg.SessionTTL()) * time.Minute

	return &Server{
		config:      cfg,
		db:          db,
		redis:       rdb,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		friendRepo:  friendRepo,
		gate:        auth.NewGate(userRepo),
		sessions:    session.NewStore(rdb, ttl),
		feed:        service.NewFeedService(postRepo, friendRepo),
	}
}

// App builds the Fiber application with views, middleware, and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "Mingle",
		Views:       newViewEngine(),
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.Error("unhandled error", "path", c.Path(), "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
				"Message": "Something went wrong, please try again.",
			})
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware
	app.Use(middleware.StructuredLogger())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus HTTP metrics
	prom := fiberprometheus.New("mingle")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				SendString("Too many requests, please try again later.")
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Index)
	app.Get("/healthz", s.HealthCheck)

	user := app.Group("/user")
	user.Get("/register", s.ShowRegister)
	user.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	user.Get("/login", s.ShowLogin)
	user.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	user.Get("/all", s.RequireLogin(), s.AllUsers)
	user.Get("/logout", s.Logout)
	user.Get("/:id/profile", s.RequireLogin(), s.Profile)
	user.Get("/:id/add", s.RequireLogin(), middleware.RateLimit(s.redis, 5, 5*time.Minute, "friend_request"), s.AddFriend)
	user.Get("/:id/accept", s.RequireLogin(), s.AcceptFriend)
	user.Get("/:id/decline", s.RequireLogin(), s.DeclineFriend)

	post := app.Group("/post", s.RequireLogin())
	// Register /new before the generic /:id routes.
	post.Get("/new", s.ShowNewPost)
	post.Post("/new", middleware.RateLimit(s.redis, 6, time.Minute, "create_post"), s.CreatePost)
	post.Get("/:id/comments/new", s.ShowNewComment)
	post.Post("/:id/comments/new", middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	post.Get("/:id", s.ShowPost)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown gracefully shuts down the server's resources.
func (s *Server) Shutdown(_ context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr.Error())
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr.Error())
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}

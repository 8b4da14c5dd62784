// Package server contains the HTTP surface of the blog: routing, session
// handling, and request handlers that compose the auth and content services.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/mailer"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

//go:embed views/*.html
var viewsFS embed.FS

// ContactMailer delivers contact form submissions. The concrete
// implementation lives in the mailer package; tests substitute a stub.
type ContactMailer interface {
	SendContactMessage(ctx context.Context, msg mailer.ContactMessage) error
}

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	authService    *service.AuthService
	postService    *service.PostService
	commentService *service.CommentService
	mailer         ContactMailer
}

// NewServer creates a server instance with all production dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	}

	return New(cfg, db, rdb, mailer.New(cfg)), nil
}

// New wires a server from externally constructed dependencies.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, m ContactMailer) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          rdb,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		authService:    service.NewAuthService(userRepo, cfg.AdminUserID),
		postService:    service.NewPostService(postRepo),
		commentService: service.NewCommentService(commentRepo, postRepo),
		mailer:         m,
	}
}

// App builds the Fiber application: template engine, middleware, and routes.
func (s *Server) App() *fiber.App {
	engine := html.NewFileSystem(http.FS(viewsFS), ".html")
	// Post bodies are authored by the admin through the post editor and may
	// contain markup.
	engine.AddFunc("raw", func(body string) template.HTML {
		return template.HTML(body)
	})

	app := fiber.New(fiber.Config{
		AppName:     "Inkwell Blog",
		Views:       engine,
		ViewsLayout: "views/layout",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return s.renderError(c, err)
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures the middleware stack.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				SendString("Too many requests, please try again later.")
		},
	}))

	prom := fiberprometheus.New("inkwell")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Resolve the session principal for every request.
	app.Use(s.loadCurrentUser)
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Home)

	app.Get("/register", s.RegisterForm)
	app.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Get("/login", s.LoginForm)
	app.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/logout", s.requireLogin, s.Logout)

	app.Get("/post/:postID", s.ShowPost)
	app.Post("/post/:postID", s.AddComment)

	app.Get("/about", s.About)
	app.Get("/contact", s.ContactForm)
	app.Post("/contact", middleware.RateLimit(s.redis, 5, 10*time.Minute, "contact"), s.Contact)

	app.Get("/new-post", s.adminOnly, s.NewPostForm)
	app.Post("/new-post", s.adminOnly, s.CreatePost)
	app.Get("/edit-post/:postID", s.adminOnly, s.EditPostForm)
	app.Post("/edit-post/:postID", s.adminOnly, s.EditPost)
	app.Get("/delete/:postID", s.adminOnly, s.DeletePost)

	app.Get("/healthz", s.HealthCheck)
}

// HealthCheck reports process and database health.
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

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// Start runs the server.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}

// httpStatusForError maps application error codes to HTTP statuses for
// routes that surface errors directly instead of flashing and redirecting.
func httpStatusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return fiberErr.Code
		}
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeForbidden:
		return fiber.StatusForbidden
	case models.CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case models.CodeDuplicateEmail, models.CodeDuplicateTitle:
		return fiber.StatusConflict
	case models.CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// renderError renders the error page with the status implied by err.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	status := httpStatusForError(err)

	message := "Something went wrong."
	switch status {
	case fiber.StatusNotFound:
		message = "Page not found."
	case fiber.StatusForbidden:
		message = "You are not allowed to do that."
	}

	if rerr := s.render(c.Status(status), "views/error", fiber.Map{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	}); rerr != nil {
		return models.RespondWithError(c, status, err)
	}
	return nil
}

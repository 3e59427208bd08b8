package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"photoshare-backend/internal/config"
	"photoshare-backend/internal/db"
	"photoshare-backend/internal/handlers"
	"photoshare-backend/internal/services"
	"photoshare-backend/internal/utils"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slog"
)

// PhotoStore is the photo document collection.
type PhotoStore interface {
	services.PhotoFinder
	services.CommentStore
}

// UserStore is the user collection.
type UserStore interface {
	services.ProfileFinder
	services.AuthorFinder
}

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config *config.Config
	Photos PhotoStore
	Users  UserStore
	Hub    *handlers.GalleryHub
	Logger *slog.Logger

	// Registry receives the HTTP metrics. Nil means a fresh registry.
	Registry *prometheus.Registry
}

// NewServer builds the Fiber app and registers every route.
func NewServer(d Deps) *fiber.App {
	if d.Hub == nil {
		d.Hub = handlers.NewGalleryHub()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	tokens := services.NewTokenService(d.Config.JWTSecret)
	photoService := services.NewPhotoService(d.Photos, d.Users, services.AggregationLimits{
		LookupTimeout:     d.Config.AuthorLookupTimeout,
		PhotoFanout:       d.Config.PhotoFanoutLimit,
		LookupConcurrency: d.Config.AuthorLookupConcurrency,
	}, d.Logger)
	commentService := services.NewCommentService(d.Photos, d.Users, d.Hub, d.Logger)
	userService := services.NewUserService(d.Users)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	metrics := fiberprometheus.NewWithRegistry(d.Registry, "photoshare", "http", "", nil)
	metrics.RegisterAt(app, "/metrics")
	app.Use(metrics.Middleware)

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// WebSocket Route
	// Note: Middleware order matters. WSUpgradeMiddleware rejects plain HTTP
	// before AuthMiddleware checks the token.
	app.Use("/ws", handlers.WSUpgradeMiddleware)
	auth := handlers.AuthMiddleware(tokens)
	app.Use("/ws", auth)
	app.Get("/ws", handlers.WebSocketHandler(d.Hub))

	// Protected Routes
	app.Get("/user/:id", auth, handlers.GetUserHandler(userService))
	app.Get("/photosOfUser/:id", auth, handlers.PhotosOfUserHandler(photoService))
	app.Post("/commentsOfPhoto/:photo_id", auth, handlers.AddCommentHandler(commentService))

	return app
}

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	appLog := utils.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(appLog)

	// Init DB
	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseDB()

	if err := db.Migrate(context.Background(), db.Pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := NewServer(Deps{
		Config:   cfg,
		Photos:   db.NewPhotoRepo(db.Pool),
		Users:    db.NewUserRepo(db.Pool),
		Hub:      handlers.NewGalleryHub(),
		Logger:   appLog,
		Registry: prometheus.NewRegistry(),
	})

	// Start Server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	appLog.Info("gracefully shutting down")
	_ = app.Shutdown()
	appLog.Info("server shutdown complete")
}

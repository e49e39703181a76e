package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/techtornix/techtornix-api/internal/cache"
	"github.com/techtornix/techtornix-api/internal/config"
	"github.com/techtornix/techtornix-api/internal/database"
	"github.com/techtornix/techtornix-api/internal/handler"
	"github.com/techtornix/techtornix-api/internal/middleware"
	"github.com/techtornix/techtornix-api/internal/models"
	"github.com/techtornix/techtornix-api/internal/repository"
	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/sse"
	"github.com/techtornix/techtornix-api/internal/worker"
)

// main is the application entrypoint for the Techtornix website API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting techtornix api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Live view counters
	viewCounter := cache.NewViewCounter(redisClient)

	// 4. Initialize repositories
	adminRepo := repository.NewAdminUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)
	careerRepo := repository.NewCareerRepository(db)
	contactRepo := repository.NewContactRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// 5. SSE hub for the admin dashboard activity feed
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Initialize services
	authSvc := service.NewAdminAuthService(adminRepo, cfg.JWTSecret)
	postSvc := service.NewPostService(postRepo)
	projectSvc := service.NewProjectService(projectRepo)
	offeringSvc := service.NewOfferingService(offeringRepo)
	careerSvc := service.NewCareerService(careerRepo)
	contactSvc := service.NewContactService(contactRepo, notifier)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, viewCounter, notifier)

	// 6a. Bootstrap the first admin if the table is empty
	password, created, err := authSvc.Bootstrap(cfg.Admin.BootstrapUsername, cfg.Admin.BootstrapEmail)
	if err != nil {
		log.Error().Err(err).Msg("admin bootstrap failed")
		fmt.Fprintf(os.Stderr, "admin bootstrap failed: %v\n", err)
		os.Exit(1)
	}
	if created {
		// Printed once, never stored in plaintext.
		log.Warn().
			Str("username", cfg.Admin.BootstrapUsername).
			Str("password", password).
			Msg("Bootstrap admin created, change this password immediately")
	}

	// 7. Initialize middleware and handlers
	loginLimiter := middleware.NewLoginRateLimiter()
	jwtMw := middleware.NewJWTMiddleware(authSvc)

	handlers := &Handlers{
		Health:    handler.NewHealthHandler(db, redisClient),
		Auth:      handler.NewAuthHandler(authSvc, loginLimiter),
		Post:      handler.NewPostHandler(postSvc),
		Project:   handler.NewProjectHandler(projectSvc),
		Offering:  handler.NewOfferingHandler(offeringSvc),
		Career:    handler.NewCareerHandler(careerSvc),
		Contact:   handler.NewContactHandler(contactSvc),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc, cfg.JWTSecret),
		SSE:       handler.NewSSEHandler(hub, authSvc),
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	go worker.NewRollupWorker(viewCounter, analyticsRepo, cfg.Worker.RollupInterval).Start(ctx)
	go worker.NewCleanupWorker(analyticsRepo, cfg.Worker.CleanupInterval, cfg.Worker.ViewRetention).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Post      *handler.PostHandler
	Project   *handler.ProjectHandler
	Offering  *handler.OfferingHandler
	Career    *handler.CareerHandler
	Contact   *handler.ContactHandler
	Analytics *handler.AnalyticsHandler
	SSE       *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public website routes
	v1 := router.Group("/v1")
	{
		v1.GET("/posts", handlers.Post.ListPublished)
		v1.GET("/posts/:slug", handlers.Post.GetBySlug)
		v1.GET("/projects", handlers.Project.List)
		v1.GET("/projects/:slug", handlers.Project.GetBySlug)
		v1.GET("/services", handlers.Offering.ListPublic)
		v1.GET("/services/:slug", handlers.Offering.GetBySlug)
		v1.GET("/careers", handlers.Career.ListPublic)
		v1.GET("/careers/:slug", handlers.Career.GetBySlug)
		v1.POST("/contact", handlers.Contact.Submit)
		v1.POST("/analytics/views", handlers.Analytics.RecordView)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.GET("/events", handlers.SSE.Stream)
	admin.Use(jwtMiddleware.Handle())
	{
		admin.GET("/auth/me", handlers.Auth.Me)

		// Admin account management (super-admin only)
		accounts := admin.Group("/admins", middleware.RequireRole(models.RoleSuperAdmin))
		{
			accounts.GET("", handlers.Auth.ListAdmins)
			accounts.POST("", handlers.Auth.CreateAdmin)
			accounts.PATCH("/:id/status", handlers.Auth.SetAdminStatus)
		}

		// Blog posts
		admin.GET("/posts", handlers.Post.List)
		admin.POST("/posts", handlers.Post.Create)
		admin.GET("/posts/:id", handlers.Post.Get)
		admin.PUT("/posts/:id", handlers.Post.Update)
		admin.DELETE("/posts/:id", handlers.Post.Delete)

		// Portfolio projects
		admin.GET("/projects", handlers.Project.List)
		admin.POST("/projects", handlers.Project.Create)
		admin.PUT("/projects/:id", handlers.Project.Update)
		admin.DELETE("/projects/:id", handlers.Project.Delete)

		// Service offerings
		admin.GET("/services", handlers.Offering.List)
		admin.POST("/services", handlers.Offering.Create)
		admin.PUT("/services/:id", handlers.Offering.Update)
		admin.DELETE("/services/:id", handlers.Offering.Delete)

		// Career openings
		admin.GET("/careers", handlers.Career.List)
		admin.POST("/careers", handlers.Career.Create)
		admin.PUT("/careers/:id", handlers.Career.Update)
		admin.DELETE("/careers/:id", handlers.Career.Delete)

		// Contact submissions
		admin.GET("/contacts", handlers.Contact.List)
		admin.GET("/contacts/:id", handlers.Contact.Get)
		admin.PATCH("/contacts/:id/status", handlers.Contact.UpdateStatus)
		admin.DELETE("/contacts/:id", handlers.Contact.Delete)

		// Traffic analytics
		admin.GET("/analytics/summary", handlers.Analytics.Summary)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

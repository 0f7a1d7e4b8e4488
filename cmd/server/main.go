package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minicakes_app_go/config"
	"minicakes_app_go/db"
	"minicakes_app_go/handlers"
	"minicakes_app_go/middleware"
	"minicakes_app_go/models"
	"minicakes_app_go/services"
	"minicakes_app_go/services/i18n"
	"minicakes_app_go/services/jobs"
	"minicakes_app_go/services/observability"
	"minicakes_app_go/services/page"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	logger, err := observability.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	// Load configuration
	cfg := config.Load()

	if err := i18n.Load(); err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		logger.Fatal("Failed to get database handle", zap.Error(err))
	}

	content, err := services.LoadLandingContent(cfg.ContentPath)
	if err != nil {
		logger.Fatal("Failed to load landing content", zap.String("path", cfg.ContentPath), zap.Error(err))
	}

	middleware.InitAssetVersions()
	services.InitializeStorage(cfg)

	manager := page.NewManager(page.NewFactory(page.Dependencies{
		Config:  cfg,
		Content: content,
		DB:      db.DB,
		Clock:   services.SystemClock{},
		Logger:  logger,
	}), cfg.SessionIdleTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler, err := jobs.StartScheduler(cfg, db.DB, manager)
	if err != nil {
		logger.Fatal("Failed to start background jobs", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "same-origin",
	}))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.CSRF(cfg))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.Visitor(cfg))
	e.Use(middleware.Pages(manager))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	e.GET("/", handlers.LandingHandler)
	e.GET("/healthz", handlers.HealthHandler(sqlDB))
	e.GET("/downloads/*", handlers.EbookDownloadHandler)

	// Page routes (require a live page session)
	pageRoutes := e.Group("")
	pageRoutes.Use(middleware.RequirePage())
	{
		pageRoutes.GET("/fragments/showcase", handlers.ShowcaseFragmentHandler)
		pageRoutes.GET("/signup/status", handlers.SignupStatusHandler)
		pageRoutes.POST("/signup", handlers.SignupHandler, middleware.SignupRateLimiter.Middleware())

		events := pageRoutes.Group("/events")
		events.Use(middleware.EventRateLimiter.Middleware())
		{
			events.POST("/scroll", handlers.ScrollEventHandler)
			events.POST("/variant", handlers.VariantEventHandler)
			events.POST("/anchor", handlers.AnchorEventHandler)
			events.POST("/reveal", handlers.RevealEventHandler)
			events.POST("/input", handlers.InputEventHandler)
			events.POST("/tab", handlers.TabEventHandler)
			events.POST("/unload", handlers.UnloadEventHandler)
		}
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("signup_mode", cfg.SignupMode))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server shutdown failed", zap.Error(err))
	}
	<-scheduler.Stop().Done()
	manager.Shutdown(shutdownCtx)
}

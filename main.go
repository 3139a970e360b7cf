package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MetinovAdik/kopuro-frontend/internal/di"
	"github.com/MetinovAdik/kopuro-frontend/internal/handler"
	"github.com/MetinovAdik/kopuro-frontend/internal/middleware"
	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/pkg/config"
	"github.com/MetinovAdik/kopuro-frontend/pkg/database"
	"github.com/MetinovAdik/kopuro-frontend/pkg/logger"
	"github.com/MetinovAdik/kopuro-frontend/pkg/redis"
	"github.com/MetinovAdik/kopuro-frontend/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting КӨПҮРӨ portal...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize session store
	sessionRepo, healthChecks, closeStore, err := buildSessionStore(ctx, cfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Session store initialization failed: %v", err))
	}
	defer closeStore()
	appLog.Info(fmt.Sprintf("Session store ready (%s)", cfg.Session.Store))

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		Config:       cfg,
		SessionRepo:  sessionRepo,
		HealthChecks: healthChecks,
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORS())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.App.Name))
	}

	// Health check endpoints (no session needed)
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// Everything else rides on the visitor's session
	app := router.Group("")
	app.Use(middleware.Session(container.Cookies, sessionRepo, container.Upstream, cfg.Session.TTL))
	{
		auth := app.Group("/auth")
		{
			auth.POST("/login", container.AuthHandler.Login)
			auth.POST("/register", container.AuthHandler.Register)
			auth.POST("/logout", container.AuthHandler.Logout)
			auth.GET("/me", container.AuthHandler.Me)
		}

		// Citizen endpoints, no login required
		api := app.Group("/api")
		{
			api.POST("/complaints", container.IssueHandler.Submit)
			api.GET("/complaints", container.IssueHandler.Track)
			api.POST("/complaints/:id/feedback", container.IssueHandler.Feedback)

			api.GET("/preferences/theme", container.PreferenceHandler.Theme)
			api.PUT("/preferences/theme", container.PreferenceHandler.SetTheme)

			// Statistics are for logged-in employees only
			stats := api.Group("/stats")
			stats.Use(middleware.RequireArea(session.AreaEmployee))
			{
				stats.GET("", container.StatsHandler.Overview)
			}
		}

		admin := app.Group("/admin")
		admin.Use(middleware.RequireArea(session.AreaAdmin))
		{
			admin.GET("/overview", container.AdminHandler.Overview)
			admin.GET("/users", container.AdminHandler.Users)
			admin.GET("/unconfirmed-workers", container.AdminHandler.UnconfirmedWorkers)
			admin.PATCH("/confirm-worker/:id", container.AdminHandler.ConfirmWorker)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Portal listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

// buildSessionStore connects the configured session backend and returns the
// repository, its readiness checks and a close function.
func buildSessionStore(ctx context.Context, cfg *config.Config) (session.Repository, map[string]handler.CheckFunc, func(), error) {
	switch cfg.Session.Store {
	case "postgres":
		db, err := database.NewPostgres(ctx, &database.PostgresConfig{
			Host:            cfg.SessionDatabase.Host,
			Port:            cfg.SessionDatabase.Port,
			User:            cfg.SessionDatabase.User,
			Password:        cfg.SessionDatabase.Password,
			Database:        cfg.SessionDatabase.DBName,
			SSLMode:         cfg.SessionDatabase.SSLMode,
			MaxConns:        int32(cfg.SessionDatabase.MaxConns),
			MinConns:        int32(cfg.SessionDatabase.MinConns),
			MaxConnLifetime: cfg.SessionDatabase.ConnMaxLifetime,
			MaxConnIdleTime: cfg.SessionDatabase.ConnMaxIdleTime,
			ConnectTimeout:  5 * time.Second,
			MaxRetries:      3,
			RetryInterval:   time.Second,
			EnableTracing:   cfg.OTel.Enabled,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := session.NewPostgresRepository(db.Pool())

		// Postgres has no key expiry; sweep expired rows in the background.
		cleanupCtx, stopCleanup := context.WithCancel(context.Background())
		go session.RunCleanup(cleanupCtx, repo, time.Hour)

		checks := map[string]handler.CheckFunc{"postgres": db.Ping}
		closeStore := func() {
			stopCleanup()
			db.Close()
		}
		return repo, checks, closeStore, nil

	default: // redis
		client, err := redis.NewClient(ctx, &redis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := session.NewRedisRepository(client, cfg.Session.TTL)
		checks := map[string]handler.CheckFunc{"redis": client.Ping}
		return repo, checks, func() { _ = client.Close() }, nil
	}
}

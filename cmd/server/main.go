package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authapp "github.com/orderhub/backend/internal/application/auth"
	ordersapp "github.com/orderhub/backend/internal/application/orders"
	"github.com/orderhub/backend/internal/domain/order"
	"github.com/orderhub/backend/internal/infrastructure/auth"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/orderhub/backend/internal/infrastructure/logger"
	"github.com/orderhub/backend/internal/infrastructure/persistence"
	"github.com/orderhub/backend/internal/infrastructure/source"
	"github.com/orderhub/backend/internal/infrastructure/telemetry"
	"github.com/orderhub/backend/internal/interfaces/http/handler"
	"github.com/orderhub/backend/internal/interfaces/http/middleware"
	"github.com/orderhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/orderhub/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Order Hub API
//	@version		1.0
//	@description	Marketplace order aggregation hub - unified search, filtering and statistics across Shopee, Mercado Livre and Shein

//	@contact.name	API Support

//	@host		localhost:3001
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Order Hub",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("data_source", cfg.Data.Source),
	)

	// Marketplace registry is built once and read-only afterwards
	registry, err := source.BuildRegistry(cfg.Marketplaces)
	if err != nil {
		log.Fatal("Invalid marketplace configuration", zap.Error(err))
	}
	log.Info("Marketplace registry built", zap.Int("marketplaces", registry.Len()))

	// Database connection only when the relational source is active
	var db *persistence.Database
	if cfg.Data.Source == "db" {
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err = persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		log.Info("Database connected successfully")
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics("orderhub")
	}

	// Select the data-source strategy for this process
	var gormDB *gorm.DB
	if db != nil {
		gormDB = db.DB
	}
	var fetchRecorder source.FetchRecorder
	if metrics != nil {
		fetchRecorder = metrics
	}
	src, err := source.New(&cfg.Data, registry, gormDB, fetchRecorder, log)
	if err != nil {
		log.Fatal("Failed to initialize data source", zap.Error(err))
	}

	// Application services
	ordersService := ordersapp.NewService(registry, src, ordersapp.ServiceConfig{
		Limits: order.Limits{
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		},
		SourceTimeout: cfg.Data.SourceTimeout,
		StatsScanCap:  cfg.Data.StatsScanCap,
	}, log.Named("orders"))

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := authapp.NewService(cfg.Auth.DefaultUser, cfg.Auth.DefaultPasswordHash, jwtService, log.Named("auth"))

	// HTTP handlers
	var pinger func() error
	if db != nil {
		pinger = db.Ping
	}
	handlers := router.Handlers{
		Orders:      handler.NewOrdersHandler(ordersService),
		Marketplace: handler.NewMarketplaceHandler(ordersService),
		Auth:        handler.NewAuthHandler(authService),
		System:      handler.NewSystemHandler(cfg.App.Env, pinger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, metrics
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if metrics != nil {
		engine.Use(metrics.GinMiddleware())
		engine.GET(cfg.Metrics.Path, metrics.Handler())
		log.Info("Metrics endpoint enabled", zap.String("path", cfg.Metrics.Path))
	}

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Read endpoints are guarded only when auth is enabled
	var protect gin.HandlerFunc
	if cfg.Auth.Enabled {
		protect = middleware.JWTAuthMiddleware(jwtService, log)
		log.Info("Authentication enabled", zap.String("default_user", cfg.Auth.DefaultUser))
	}
	router.BuildRoutes(engine, handlers, protect)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

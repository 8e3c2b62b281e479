package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"mulnori/api/routes"
	"mulnori/internal/notify"
	"mulnori/internal/shared/config"
	"mulnori/internal/shared/database"
	"mulnori/internal/shared/middleware"
	"mulnori/internal/sites"
	"mulnori/pkg/cache"
	"mulnori/pkg/logger"
	"mulnori/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	sites.RegisterValidations()

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Redis-backed cache for public site listings and board categories
	var cacheService cache.Service
	if db.Redis != nil {
		cacheService = cache.NewService(db.GetRedis())
		appLogger.Info("Redis cache initialized")
	} else {
		appLogger.Info("Redis unavailable, serving without cache")
	}

	// Rate limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:            cfg.RateLimit.Enabled,
			WindowDuration:     cfg.RateLimit.WindowDuration,
			DefaultRequests:    cfg.RateLimit.DefaultRequests,
			PublicRequests:     cfg.RateLimit.PublicRequests,
			GovernanceRequests: cfg.RateLimit.GovernanceRequests,
			AdminRequests:      cfg.RateLimit.AdminRequests,
			HealthRequests:     cfg.RateLimit.HealthRequests,
			WhitelistedIPs:     cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedis(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Kafka governance-event publisher. The API works without it; events
	// are simply not emitted.
	var publisher notify.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := notify.NewKafkaPublisher(notify.DefaultConfig(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		if err != nil {
			appLogger.Error("Failed to initialize Kafka publisher", slog.Any("error", err))
			appLogger.Info("Continuing without governance-event publishing")
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
			appLogger.Info("Kafka governance-event publisher initialized",
				slog.String("topic", cfg.Kafka.Topic),
			)
		}
	} else {
		appLogger.Info("Kafka brokers not configured, governance events disabled")
	}

	// Object storage client for image uploads
	var minioClient *minio.Client
	if cfg.Storage.Endpoint != "" {
		minioClient, err = minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			appLogger.Error("Failed to initialize object storage client", slog.Any("error", err))
			minioClient = nil
		} else {
			appLogger.Info("Object storage client initialized",
				slog.String("bucket", cfg.Storage.Bucket),
			)
		}
	} else {
		appLogger.Info("Object storage not configured, image uploads disabled")
	}

	router := setupRouter(cfg, db, cacheService, rateLimiter, publisher, minioClient)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", (db.Redis != nil)),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, rateLimiter *ratelimit.RateLimiter, publisher notify.Publisher, minioClient *minio.Client) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestID(), RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, cacheService, publisher, minioClient)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}

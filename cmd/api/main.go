package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashboard-service/internal/auth"
	"dashboard-service/internal/cache"
	"dashboard-service/internal/config"
	"dashboard-service/internal/events"
	"dashboard-service/internal/handlers"
	"dashboard-service/internal/kafka"
	"dashboard-service/internal/repository"
	"dashboard-service/pkg/logger"
	"dashboard-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "dashboard-service/docs" // Import docs for Swagger
)

// readModel is the store the dashboard reads from and the Kafka consumer writes to
type readModel interface {
	repository.ReadRepository
	repository.ReadModelWriter
}

// @title           Dashboard Service API
// @version         1.0
// @description     Inventory and sales dashboard: item status, usage metrics and expiry alerts over a read model kept in sync from Kafka.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8082
// @BasePath  /api/v1

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Dashboard Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("🔐 Auth Configuration",
		zap.Int("secret_length", len(cfg.JWTSecret)),
		zap.Int("token_ttl_minutes", cfg.TokenTTLMinutes),
		zap.Int("recovery_ttl_minutes", cfg.RecoveryTTLMinutes),
		zap.Int("seeded_users", len(cfg.AuthUsers)),
	)

	if cfg.UseKafka {
		appLogger.Info("📡 Kafka Configuration",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic_items", cfg.KafkaTopicItems),
			zap.String("topic_sales", cfg.KafkaTopicSales),
			zap.String("topic_auth", cfg.KafkaTopicAuth),
			zap.String("group_id", cfg.KafkaGroupID),
		)
	} else {
		appLogger.Info("📡 Kafka Configuration",
			zap.Bool("enabled", false),
			zap.String("note", "Kafka is disabled (USE_KAFKA=false)"),
		)
	}

	// Initialize read model
	appLogger.Info("🔧 Initializing read model...", zap.String("driver", cfg.DBDriver))
	store, closeStore, err := newReadModel(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize read model", zap.Error(err))
	}
	defer closeStore()
	appLogger.Info("✅ Read model initialized successfully", zap.String("driver", cfg.DBDriver))

	// Initialize cache (optional)
	var cacheClient cache.Cache
	if cfg.UseCache {
		appLogger.Info("🔧 Initializing cache (Redis)...",
			zap.String("redis_host", cfg.RedisHost),
			zap.String("redis_port", cfg.RedisPort),
			zap.Int("cache_ttl", cfg.CacheTTL),
		)
		cacheClient = cache.NewCache(cfg, appLogger)
		defer cacheClient.Close()
		appLogger.Info("✅ Cache initialized successfully")
	} else {
		appLogger.Info("⏭️  Skipping cache initialization (USE_CACHE=false)")
	}

	// Initialize auth
	appLogger.Info("🔧 Initializing auth provider...")
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, appLogger)
	provider, err := auth.NewLocalProvider(jwtManager, cfg.AuthUsers, auth.LocalProviderConfig{
		TokenTTL:    time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		RecoveryTTL: time.Duration(cfg.RecoveryTTLMinutes) * time.Minute,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize auth provider", zap.Error(err))
	}
	authClient := auth.NewClient(provider, appLogger)
	authHandler := auth.NewAuthHandler(authClient, appLogger)
	appLogger.Info("✅ Auth provider initialized successfully")

	// Auth state events
	publisher := newEventPublisher(cfg, appLogger)
	defer publisher.Close()
	unsubscribe := events.SubscribeAuthEvents(authClient, publisher, 5*time.Second, appLogger)
	defer unsubscribe()

	// Initialize Kafka consumer for read model sync (optional)
	if cfg.UseKafka {
		appLogger.Info("🔧 Initializing Kafka consumer for read model sync...")
		kafkaConsumer, err := kafka.NewConsumer(cfg, cacheClient, store, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize Kafka consumer, continuing without read model sync", zap.Error(err))
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer func() {
				cancel()
				kafkaConsumer.Close()
			}()
			go func() {
				if err := kafkaConsumer.Start(ctx); err != nil {
					appLogger.Error("Kafka consumer error", zap.Error(err))
				}
			}()
			appLogger.Info("✅ Kafka consumer started")
		}
	} else {
		appLogger.Info("⏭️  Skipping Kafka consumer (USE_KAFKA=false)")
	}

	dashboardHandler := handlers.NewDashboardHandler(store, cacheClient, cfg, appLogger)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/recover", authHandler.Recover)
			// The recovery token is validated by the handler, not the session middleware
			authRoutes.POST("/password", authHandler.UpdatePassword)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(authClient, appLogger))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/session", authHandler.Session)

			inventory := protected.Group("/inventory")
			{
				inventory.GET("/items", dashboardHandler.ListItems)
				inventory.GET("/items/:id", dashboardHandler.GetItem)
				inventory.GET("/items/:id/sales", dashboardHandler.GetItemSales)
			}

			protected.GET("/sales", dashboardHandler.ListSales)
			protected.GET("/sales/:id", dashboardHandler.GetSale)
			protected.GET("/alerts/expiring", dashboardHandler.ExpiringAlerts)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("🌐 Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	appLogger.Info("Server exited")
}

// newReadModel opens the store selected by DB_DRIVER
func newReadModel(cfg *config.Config, appLogger *zap.Logger) (readModel, func(), error) {
	var (
		repo *repository.SQLReadRepository
		err  error
	)

	switch cfg.DBDriver {
	case "memory":
		appLogger.Warn("Using in-memory read model, data is lost on restart")
		return repository.NewInMemoryReadRepository(), func() {}, nil
	case "sqlite":
		appLogger.Info("💾 SQLite Configuration", zap.String("path", cfg.SQLitePath))
		repo, err = repository.NewSQLiteReadRepository(cfg.SQLitePath)
	case "postgres":
		appLogger.Info("💾 PostgreSQL Configuration",
			zap.String("host", cfg.DBHost),
			zap.String("port", cfg.DBPort),
			zap.String("database", cfg.DBName),
		)
		repo, err = repository.NewPostgresReadRepository(cfg.PostgresDSN())
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("failed to migrate read model: %w", err)
	}

	appLogger.Info("✅ Read model schema migrated", zap.String("driver", repo.Driver()))

	return repo, func() {
		if err := repo.Close(); err != nil {
			appLogger.Warn("Failed to close read model", zap.Error(err))
		}
	}, nil
}

// newEventPublisher returns a Kafka publisher, or an in-memory one when Kafka
// is disabled or unreachable
func newEventPublisher(cfg *config.Config, appLogger *zap.Logger) events.EventPublisher {
	if !cfg.UseKafka {
		return events.NewInMemoryEventPublisher(events.DefaultRetainedEvents, appLogger)
	}

	appLogger.Info("🔧 Initializing Kafka event publisher...", zap.String("topic", cfg.KafkaTopicAuth))
	publisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Failed to initialize Kafka event publisher, using in-memory publisher", zap.Error(err))
		return events.NewInMemoryEventPublisher(events.DefaultRetainedEvents, appLogger)
	}
	appLogger.Info("✅ Kafka event publisher initialized successfully")
	return publisher
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Description  Reports that the service is up.
// @Tags         health
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, handlers.HealthResponse{
		Status:  "ok",
		Service: "dashboard-service",
	})
}

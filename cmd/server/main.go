package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/application"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/auth"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/config"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/database"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/events"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/handler"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/logger"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/maintenance"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/middleware"
	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/repository"
)

const serviceName = "promotion-maintenance"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("events_driver", cfg.EventsConfig.Driver),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.PromotionModel{}, &repository.BookingModel{}); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 15*time.Minute)

	// Initialize event publisher
	publisher, err := events.NewPublisher(cfg.EventsConfig, cfg.KafkaConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize event publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Initialize repositories
	store := repository.NewStore(db)

	// Initialize maintenance scheduler
	schedulerOpts := []maintenance.Option{
		maintenance.WithInterval(cfg.MaintenanceConfig.Interval),
		maintenance.WithRetryPolicy(maintenance.RetryPolicy{
			MaxAttempts:    cfg.MaintenanceConfig.MaxAttempts,
			InitialBackoff: cfg.MaintenanceConfig.InitialBackoff,
			Multiplier:     2,
		}),
		maintenance.WithReportSink(events.NewMaintenanceReportPublisher(publisher, serviceName)),
	}

	var redisClient *redis.Client
	if cfg.RedisConfig.Addr != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisConfig, zapLogger)
		if err != nil {
			zapLogger.Warn("redis unavailable, maintenance lock limited to this instance", zap.Error(err))
		} else {
			defer redisClient.Close()
			locker := maintenance.NewRedisLocker(redisClient, maintenance.DefaultLockKey, cfg.MaintenanceConfig.LockTTL, zapLogger)
			schedulerOpts = append(schedulerOpts, maintenance.WithLocker(locker))
		}
	}

	reconciler := maintenance.NewReconciler(store, zapLogger)
	scheduler := maintenance.NewScheduler(reconciler, zapLogger, schedulerOpts...)

	// Initialize application services
	discountService := application.NewDiscountService(store, zapLogger)
	promotionService := application.NewPromotionService(store, zapLogger)
	bookingService := application.NewBookingService(store.Bookings, discountService, zapLogger)

	// Initialize Kafka consumer for promotion admin events
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if cfg.EventsConfig.Driver == config.EventsDriverKafka {
		consumerGroupID := cfg.KafkaConfig.GroupPrefix + serviceName
		promotionConsumer := events.NewPromotionEventConsumer(
			cfg.KafkaConfig.Brokers,
			consumerGroupID,
			scheduler,
			zapLogger,
		)
		defer promotionConsumer.Close()

		go func() {
			zapLogger.Info("starting promotion event consumer")
			if err := promotionConsumer.Start(consumerCtx); err != nil {
				if consumerCtx.Err() == nil {
					zapLogger.Error("promotion event consumer failed", zap.Error(err))
				}
			}
		}()
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	handler.NewHealthHandler(serviceName, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}).RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	handler.NewDiscountHandler(discountService).RegisterRoutes(apiV1)
	handler.NewBookingHandler(bookingService).RegisterRoutes(apiV1)
	handler.NewPromotionHandler(promotionService).RegisterRoutes(apiV1)
	handler.NewAdminMaintenanceHandler(scheduler).RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Start maintenance; the first cycle runs on the scheduler goroutine
	scheduler.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down " + serviceName + "...")

	// Stop scheduling new cycles and cancel the Kafka consumer
	scheduler.Stop()
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	// Let an in-flight maintenance cycle finish
	scheduler.Wait()

	zapLogger.Info(serviceName + " stopped")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	apphttp "jobboard/internal/http"
	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/observability"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/security"
	"jobboard/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	cancelMigrate()

	store, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("failed to init object store: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	userService := app.NewUserService(userRepo, store, jwtProvider, cfg.TokenTTL)
	companyService := app.NewCompanyService(companyRepo, store, jwtProvider, cfg.TokenTTL)
	jobService := app.NewJobService(jobRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, userRepo, store)

	var limiter httpmw.Limiter = httpmw.NewMemoryLimiter()
	if redisClient := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword); redisClient != nil {
		defer redisClient.Close()
		limiter = httpmw.NewRedisLimiter(redisClient)
		logger.Info("rate limiting backed by redis", zap.String("addr", cfg.RedisAddr))
	}

	collector := metrics.NewCollector()
	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:         handlers.NewJobHandler(jobService),
		UserHandler:        handlers.NewUserHandler(userService, applicationService, limiter),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, limiter),
		CompanyHandler:     handlers.NewCompanyHandler(companyService, jobService, applicationService, limiter),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

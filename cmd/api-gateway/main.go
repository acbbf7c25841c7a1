package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/college-schedule-api/api/swagger"
	"github.com/noah-isme/college-schedule-api/internal/handler"
	"github.com/noah-isme/college-schedule-api/internal/repository"
	"github.com/noah-isme/college-schedule-api/internal/service"
	"github.com/noah-isme/college-schedule-api/pkg/cache"
	"github.com/noah-isme/college-schedule-api/pkg/config"
	"github.com/noah-isme/college-schedule-api/pkg/database"
	"github.com/noah-isme/college-schedule-api/pkg/logger"
)

// @title College Schedule API
// @version 1.0.0
// @description Class scheduling with venue conflict detection and holiday-aware weekly recurrence.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, db, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Scheduling.HolidayCacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("holiday cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validate := validator.New()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduling.HolidayCacheTTL, logr, redisClient != nil)

	scheduleRepo := repository.NewClassScheduleRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)

	resolver := service.NewHolidayResolver(holidayRepo, cacheSvc, cfg.Scheduling.HolidayCacheTTL, logr)
	holidaySvc := service.NewHolidayService(holidayRepo, resolver, cacheSvc, validate, logr)
	scheduleSvc := service.NewClassScheduleService(
		scheduleRepo,
		assignmentRepo,
		venueRepo,
		batchRepo,
		resolver,
		db,
		metricsSvc,
		validate,
		logr,
		service.ClassScheduleConfig{
			MaxOccurrences: cfg.Scheduling.MaxOccurrences,
			LockTimeout:    cfg.Scheduling.LockTimeout,
		},
	)

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := newRouter(cfg, logr, routerDeps{
		schedules: handler.NewClassScheduleHandler(scheduleSvc, yearRepo),
		holidays:  handler.NewHolidayHandler(holidaySvc),
		health:    handler.NewMetricsHandler(metricsSvc, checks),
		metrics:   metricsSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

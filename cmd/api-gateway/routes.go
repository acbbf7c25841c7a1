package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/college-schedule-api/internal/handler"
	"github.com/noah-isme/college-schedule-api/internal/middleware"
	"github.com/noah-isme/college-schedule-api/internal/service"
	"github.com/noah-isme/college-schedule-api/pkg/config"
	"github.com/noah-isme/college-schedule-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/college-schedule-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/college-schedule-api/pkg/middleware/requestid"
)

type routerDeps struct {
	schedules *handler.ClassScheduleHandler
	holidays  *handler.HolidayHandler
	health    *handler.MetricsHandler
	metrics   *service.MetricsService
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(deps.metrics))

	r.GET("/health", deps.health.Health)
	r.GET("/ready", deps.health.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", deps.health.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	api := r.Group(prefix)
	api.Use(middleware.Scope(middleware.NewTokenVerifier(cfg.JWT)))

	schedules := api.Group("/class-schedules")
	schedules.GET("", deps.schedules.List)
	schedules.POST("", middleware.Audit(logr, "schedule", "class_schedule"), deps.schedules.Schedule)
	schedules.GET("/availability", deps.schedules.Availability)
	schedules.PUT("/:id", middleware.Audit(logr, "update", "class_schedule"), deps.schedules.Update)
	schedules.PATCH("/:id/cancel", middleware.Audit(logr, "toggle_cancel", "class_schedule"), deps.schedules.ToggleCancel)
	schedules.DELETE("/:id", middleware.Audit(logr, "delete", "class_schedule"), deps.schedules.Delete)

	holidays := api.Group("/holidays")
	holidays.GET("", deps.holidays.List)
	holidays.GET("/check", deps.holidays.Check)
	holidays.GET("/:id", deps.holidays.Get)

	holidayAdmin := holidays.Group("", middleware.RequireSuperAdmin())
	holidayAdmin.POST("", middleware.Audit(logr, "create", "holiday"), deps.holidays.Create)
	holidayAdmin.PUT("/:id", middleware.Audit(logr, "update", "holiday"), deps.holidays.Update)
	holidayAdmin.DELETE("/:id", middleware.Audit(logr, "delete", "holiday"), deps.holidays.Delete)

	return r
}

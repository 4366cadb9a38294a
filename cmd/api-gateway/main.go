package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edusuite/timetable-api/api/swagger"
	"github.com/edusuite/timetable-api/internal/handler"
	"github.com/edusuite/timetable-api/internal/middleware"
	"github.com/edusuite/timetable-api/internal/models"
	"github.com/edusuite/timetable-api/internal/repository"
	"github.com/edusuite/timetable-api/internal/service"
	"github.com/edusuite/timetable-api/pkg/cache"
	"github.com/edusuite/timetable-api/pkg/config"
	"github.com/edusuite/timetable-api/pkg/database"
	"github.com/edusuite/timetable-api/pkg/logger"
	corsmiddleware "github.com/edusuite/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edusuite/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 1.0.0
// @description Weekly class-timetable scheduling service
// @BasePath /api/v1
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Timetable.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, grid caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Timetable.GridCacheTTL, logr, true)
		}
	}

	validate := validator.New()

	classSectionRepo := repository.NewClassSectionRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	eligibilityRepo := repository.NewEligibilityRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	substitutionRepo := repository.NewSubstitutionRepository(db)

	eligibilitySvc := service.NewEligibilityService(eligibilityRepo, logr)
	classSectionSvc := service.NewClassSectionService(classSectionRepo, eligibilitySvc, subjectRepo, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, validate, logr)
	requirementSvc := service.NewRequirementService(requirementRepo, classSectionRepo, subjectRepo, validate, logr)
	timetableSvc := service.NewTimetableService(
		classSectionRepo,
		slotRepo,
		requirementRepo,
		settingsSvc,
		eligibilitySvc,
		subjectRepo,
		teacherRepo,
		cacheSvc,
		metricsSvc,
		slotRepo,
		validate,
		logr,
	)
	substitutionSvc := service.NewSubstitutionService(
		substitutionRepo,
		slotRepo,
		eligibilitySvc,
		teacherRepo,
		settingsSvc,
		metricsSvc,
		validate,
		logr,
	)

	classSectionHandler := handler.NewClassSectionHandler(classSectionSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	substitutionHandler := handler.NewSubstitutionHandler(substitutionSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	requirementHandler := handler.NewRequirementHandler(requirementSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))

	staffOrAdmin := middleware.RequireRoles(models.RoleAdmin, models.RoleStaff)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api.GET("/class-sections", classSectionHandler.List)
	api.GET("/class-sections/resolve", classSectionHandler.Resolve)
	api.GET("/class-sections/:id", classSectionHandler.Get)
	api.GET("/class-sections/:id/subjects", classSectionHandler.Subjects)
	api.GET("/class-sections/:id/timetable", timetableHandler.GetGrid)
	api.POST("/class-sections/:id/timetable/generate", staffOrAdmin, timetableHandler.Generate)
	api.PATCH("/class-sections/:id/timetable/slots", staffOrAdmin, timetableHandler.UpdateSlot)

	api.GET("/class-sections/:id/substitutes", substitutionHandler.Suggest)
	api.POST("/substitutions", staffOrAdmin, substitutionHandler.Create)
	api.GET("/substitutions", substitutionHandler.ListByDate)

	api.GET("/class-sections/:id/requirements", requirementHandler.List)
	api.POST("/class-sections/:id/requirements", adminOnly, requirementHandler.Create)
	api.PUT("/requirements/:requirementId", adminOnly, requirementHandler.Update)
	api.DELETE("/requirements/:requirementId", adminOnly, requirementHandler.Delete)

	api.GET("/timetable/settings", settingsHandler.Get)
	api.PUT("/timetable/settings", adminOnly, settingsHandler.Update)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

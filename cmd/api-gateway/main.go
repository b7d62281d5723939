package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/DanDopi/Zorg-Dossier-sub002/api/swagger"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/handler"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/middleware"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/repository"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/service"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/cache"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/config"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/database"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/export"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/logger"
	corsmiddleware "github.com/DanDopi/Zorg-Dossier-sub002/pkg/middleware/cors"
	reqidmiddleware "github.com/DanDopi/Zorg-Dossier-sub002/pkg/middleware/requestid"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/storage"
)

// @title Zorg Dossier Scheduling API
// @version 1.0.0
// @description Shift pattern generation, conflict detection and scheduling statistics for home care.
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, overview caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	shiftRepo := repository.NewShiftRepository(db)
	patternRepo := repository.NewShiftPatternRepository(db)
	shiftTypeRepo := repository.NewShiftTypeRepository(db)
	settingsRepo := repository.NewSchedulingSettingsRepository(db)
	timeOffRepo := repository.NewTimeOffRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled && redisClient != nil)
	authService := service.NewAuthService(cfg.JWT.Secret)
	generatorService := service.NewShiftGeneratorService(patternRepo, shiftTypeRepo, shiftRepo, cacheService, metricsService, logr)
	conflictService := service.NewConflictService(shiftRepo, logr)
	shiftService := service.NewShiftService(shiftRepo, userRepo, cacheService, logr)
	shiftTypeService := service.NewShiftTypeService(shiftTypeRepo, validate)
	patternService := service.NewShiftPatternService(patternRepo, shiftTypeRepo, userRepo, validate)
	settingsService := service.NewSchedulingSettingsService(settingsRepo, cfg.Scheduling.DefaultWeeksAhead)
	statsService := service.NewStatsService(shiftRepo, timeOffRepo, cacheService, cfg.Stats.CacheTTL, logr)

	exportArchive, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		logr.Warn("export archive unavailable, shareable links disabled", zap.Error(err))
		exportArchive = nil
	}
	var exportSigner *storage.SignedURLSigner
	if exportArchive != nil {
		exportSigner = storage.NewSignedURLSigner(cfg.JWT.Secret, cfg.Export.LinkTTL)
	}
	reportService := service.NewReportService(shiftRepo, export.NewCSVExporter(), export.NewPDFExporter(), exportArchive, exportSigner, logr)

	maintenanceService := service.NewMaintenanceService(patternRepo, settingsRepo, generatorService, service.MaintenanceConfig{
		Interval:          cfg.Scheduling.MaintenanceInterval,
		Workers:           cfg.Scheduling.MaintenanceWorkers,
		DefaultWeeksAhead: cfg.Scheduling.DefaultWeeksAhead,
	}, logr)
	maintenanceService.Start(context.Background())
	defer maintenanceService.Stop()

	schedulingHandler := handler.NewSchedulingHandler(generatorService, conflictService, statsService, settingsService, reportService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	shiftTypeHandler := handler.NewShiftTypeHandler(shiftTypeService)
	patternHandler := handler.NewShiftPatternHandler(patternService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/export/download", schedulingHandler.Download)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authService))

	clientRoles := middleware.RequireRoles(models.RoleClient, models.RoleAdmin, models.RoleSuperAdmin)

	scheduling := api.Group("/scheduling")
	{
		scheduling.POST("/generate", clientRoles, middleware.Audit(userRepo, models.AuditActionShiftGenerate, "shifts"), schedulingHandler.Generate)
		scheduling.GET("/conflicts", schedulingHandler.Conflicts)
		scheduling.GET("/overview", clientRoles, schedulingHandler.Overview)
		scheduling.GET("/settings", clientRoles, schedulingHandler.GetSettings)
		scheduling.PUT("/settings", clientRoles, schedulingHandler.UpdateSettings)
		scheduling.GET("/export", clientRoles, schedulingHandler.Export)
		scheduling.POST("/export/links", clientRoles, schedulingHandler.CreateExportLink)
	}

	shifts := api.Group("/shifts")
	{
		shifts.GET("/:id", shiftHandler.Get)
		shifts.POST("/:id/assign", clientRoles, middleware.Audit(userRepo, models.AuditActionShiftAssign, "shifts"), shiftHandler.Assign)
		shifts.POST("/:id/complete", clientRoles, middleware.Audit(userRepo, models.AuditActionShiftComplete, "shifts"), shiftHandler.Complete)
		shifts.POST("/:id/cancel", clientRoles, middleware.Audit(userRepo, models.AuditActionShiftCancel, "shifts"), shiftHandler.Cancel)
		shifts.POST("/:id/time-correction", middleware.RequireRoles(models.RoleCaregiver), middleware.Audit(userRepo, models.AuditActionTimeCorrection, "shifts"), shiftHandler.TimeCorrection)
		shifts.POST("/:id/verify", clientRoles, middleware.Audit(userRepo, models.AuditActionShiftVerify, "shifts"), shiftHandler.Verify)
	}

	shiftTypes := api.Group("/shift-types", clientRoles)
	{
		shiftTypes.GET("", shiftTypeHandler.List)
		shiftTypes.POST("", shiftTypeHandler.Create)
		shiftTypes.PUT("/:id", shiftTypeHandler.Update)
		shiftTypes.DELETE("/:id", shiftTypeHandler.Delete)
	}

	patterns := api.Group("/shift-patterns", clientRoles)
	{
		patterns.GET("", patternHandler.List)
		patterns.POST("", patternHandler.Create)
		patterns.PUT("/:id", patternHandler.Update)
		patterns.DELETE("/:id", patternHandler.Delete)
	}

	api.GET("/metrics/snapshot", middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin), metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

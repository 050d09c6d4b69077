package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edu-platform/campus-timetable/api/swagger"
	internalhandler "github.com/edu-platform/campus-timetable/internal/handler"
	internalmiddleware "github.com/edu-platform/campus-timetable/internal/middleware"
	"github.com/edu-platform/campus-timetable/internal/repository"
	"github.com/edu-platform/campus-timetable/internal/service"
	"github.com/edu-platform/campus-timetable/internal/solver"
	"github.com/edu-platform/campus-timetable/pkg/cache"
	"github.com/edu-platform/campus-timetable/pkg/config"
	"github.com/edu-platform/campus-timetable/pkg/database"
	"github.com/edu-platform/campus-timetable/pkg/logger"
	corsmiddleware "github.com/edu-platform/campus-timetable/pkg/middleware/cors"
	reqidmiddleware "github.com/edu-platform/campus-timetable/pkg/middleware/requestid"
)

// @title Campus Timetable Solver API
// @version 0.1.0
// @description Constraint-based timetable generation service
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	careerRepo := repository.NewCareerRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	timetableAssignmentRepo := repository.NewAssignmentRepository(db)

	var timetableCacheRepo *repository.CacheRepository
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("timetable context cache disabled", "error", err)
	} else {
		defer client.Close()
		timetableCacheRepo = repository.NewCacheRepository(client, logr)
	}

	baseLoader := solver.NewLoader(
		careerRepo,
		subjectRepo,
		timeSlotRepo,
		availabilityRepo,
		solver.NewConflictOracle(timetableAssignmentRepo),
	)
	var timetableContextCache *solver.ContextCache
	if timetableCacheRepo != nil {
		timetableContextCache = solver.NewContextCache(timetableCacheRepo, 2*time.Minute, logr)
	}
	cachedLoader := solver.NewCachingLoader(baseLoader, timetableContextCache)
	timetablePrimary := solver.NewCPSATSolver(
		time.Duration(cfg.Solver.WallClockSecs)*time.Second,
		cfg.Solver.MaxWorkers,
	)
	timetableEngine := solver.NewEngine(
		cachedLoader,
		timetablePrimary,
		solver.NewGreedySolver(),
		solver.NewMaterializer(db, timetableAssignmentRepo),
		!cfg.Solver.CPSATEnabled,
		logr,
	)
	timetableSvc := service.NewTimetableService(timetableEngine, nil, metricsSvc, logr)
	timetableHandler := internalhandler.NewTimetableHandler(timetableSvc)

	api := r.Group(cfg.APIPrefix)
	timetableGroup := api.Group("/timetable")
	timetableGroup.POST("/solve", timetableHandler.Solve)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

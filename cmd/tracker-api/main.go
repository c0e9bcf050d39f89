package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/timetable-tracker-api/api/swagger"
	"github.com/noah-isme/timetable-tracker-api/internal/handler"
	"github.com/noah-isme/timetable-tracker-api/internal/middleware"
	"github.com/noah-isme/timetable-tracker-api/internal/service"
	"github.com/noah-isme/timetable-tracker-api/internal/store"
	"github.com/noah-isme/timetable-tracker-api/pkg/blob"
	"github.com/noah-isme/timetable-tracker-api/pkg/cache"
	"github.com/noah-isme/timetable-tracker-api/pkg/config"
	"github.com/noah-isme/timetable-tracker-api/pkg/database"
	"github.com/noah-isme/timetable-tracker-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-tracker-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-tracker-api/pkg/middleware/requestid"
)

// @title Timetable Tracker API
// @version 0.1.0
// @description Personal academic schedule and course tracker
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

	backend, err := newBlobStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init storage backend", "backend", cfg.Storage.Backend, "error", err)
	}
	blobs := blob.NewInstrumented(backend, metricsSvc)

	st := store.New(blobs, logr)
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Load(loadCtx); err != nil {
		logr.Sugar().Fatalw("failed to load snapshots", "error", err)
	}

	validate := validator.New()

	scheduleSvc := service.NewScheduleService(st, validate, logr)
	timetableSvc := service.NewTimetableService(st, validate, logr)
	courseSvc := service.NewCourseService(st, validate, logr)
	setupSvc := service.NewSetupService(st, logr)
	exportSvc := service.NewExportService(timetableSvc, courseSvc, logr)

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
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix), routeDeps{
		schedule:  handler.NewScheduleHandler(scheduleSvc),
		timetable: handler.NewTimetableHandler(timetableSvc),
		courses:   handler.NewCourseHandler(courseSvc),
		setup:     handler.NewSetupHandler(setupSvc),
		export:    handler.NewExportHandler(exportSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "storage", cfg.Storage.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

type routeDeps struct {
	schedule  *handler.ScheduleHandler
	timetable *handler.TimetableHandler
	courses   *handler.CourseHandler
	setup     *handler.SetupHandler
	export    *handler.ExportHandler
}

func registerRoutes(api *gin.RouterGroup, deps routeDeps) {
	api.GET("/schedule", deps.schedule.Get)
	api.PUT("/schedule", deps.schedule.Replace)
	api.GET("/schedule/summary", deps.schedule.Summary)

	api.GET("/timetable", deps.timetable.Week)
	api.PUT("/timetable", deps.timetable.Replace)
	api.GET("/timetable/today", deps.timetable.Today)
	api.GET("/timetable/now", deps.timetable.Now)
	api.GET("/timetable/progress", deps.timetable.Progress)
	api.GET("/timetable/:day", deps.timetable.Day)

	api.GET("/courses", deps.courses.List)
	api.POST("/courses", deps.courses.Create)
	api.GET("/courses/:id", deps.courses.Get)
	api.PUT("/courses/:id", deps.courses.Update)
	api.DELETE("/courses/:id", deps.courses.Delete)
	api.GET("/courses/:id/summary", deps.courses.Summary)

	api.POST("/courses/:id/marks", deps.courses.AddMark)
	api.PUT("/courses/:id/marks/:markId", deps.courses.UpdateMark)
	api.DELETE("/courses/:id/marks/:markId", deps.courses.DeleteMark)

	api.POST("/courses/:id/tasks", deps.courses.AddTask)
	api.PUT("/courses/:id/tasks/:taskId", deps.courses.UpdateTask)
	api.DELETE("/courses/:id/tasks/:taskId", deps.courses.DeleteTask)

	api.POST("/courses/:id/notes", deps.courses.AddNote)
	api.PUT("/courses/:id/notes/:noteId", deps.courses.UpdateNote)
	api.DELETE("/courses/:id/notes/:noteId", deps.courses.DeleteNote)

	api.GET("/setup", deps.setup.Status)
	api.POST("/setup/complete", deps.setup.Complete)
	api.POST("/setup/reset", deps.setup.Reset)

	api.GET("/exports/timetable", deps.export.Timetable)
	api.GET("/exports/courses/:id", deps.export.Course)
}

func newBlobStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return blob.NewRedisStore(client), nil
	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		pg := blob.NewPostgresStore(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	case config.BackendFile:
		return blob.NewFileStore(cfg.Storage.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

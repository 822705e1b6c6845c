package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/ccrm-api/api/swagger"
	"github.com/noah-isme/ccrm-api/internal/handler"
	"github.com/noah-isme/ccrm-api/internal/middleware"
	"github.com/noah-isme/ccrm-api/internal/repository"
	"github.com/noah-isme/ccrm-api/internal/service"
	"github.com/noah-isme/ccrm-api/pkg/config"
	"github.com/noah-isme/ccrm-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ccrm-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ccrm-api/pkg/middleware/requestid"
)

// @title CCRM API
// @version 0.1.0
// @description Campus course and records manager
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

	studentRepo := repository.NewStudentRepository()
	courseRepo := repository.NewCourseRepository()
	instructorRepo := repository.NewInstructorRepository()
	enrollmentRepo := repository.NewEnrollmentRepository()

	studentSvc := service.NewStudentService(studentRepo, nil, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, instructorRepo, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(studentRepo, enrollmentRepo, cfg.Registration.MaxCreditsPerSemester, logr)
	transcriptSvc := service.NewTranscriptService(studentRepo, courseRepo, nil, nil, logr)
	fileSvc := service.NewImportExportService(cfg.Folders, logr)
	backupSvc := service.NewBackupService(cfg.Folders, logr)
	metricsSvc := service.NewMetricsService()

	studentHandler := handler.NewStudentHandler(studentSvc)
	instructorHandler := handler.NewInstructorHandler(instructorSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	transcriptHandler := handler.NewTranscriptHandler(transcriptSvc)
	dataHandler := handler.NewDataHandler(studentSvc, courseSvc, fileSvc, backupSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, studentSvc, courseSvc, enrollmentSvc, backupSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.GET("/students", studentHandler.List)
	api.POST("/students", studentHandler.Create)
	api.GET("/students/:id", studentHandler.Get)
	api.PUT("/students/:id", studentHandler.Update)
	api.DELETE("/students/:id", studentHandler.Delete)

	api.GET("/students/:id/enrollments", enrollmentHandler.List)
	api.POST("/students/:id/enrollments", enrollmentHandler.Enroll)
	api.DELETE("/students/:id/enrollments/:code", enrollmentHandler.Unenroll)
	api.PUT("/students/:id/enrollments/:code/grade", enrollmentHandler.AssignGrade)
	api.GET("/students/:id/transcript", transcriptHandler.Get)

	api.GET("/instructors", instructorHandler.List)
	api.POST("/instructors", instructorHandler.Create)
	api.GET("/instructors/:id", instructorHandler.Get)
	api.PUT("/instructors/:id", instructorHandler.Update)
	api.DELETE("/instructors/:id", instructorHandler.Delete)

	api.GET("/courses", courseHandler.List)
	api.POST("/courses", courseHandler.Create)
	api.GET("/courses/:code", courseHandler.Get)
	api.PUT("/courses/:code", courseHandler.Update)
	api.PUT("/courses/:code/instructor", courseHandler.AssignInstructor)
	api.DELETE("/courses/:code", courseHandler.Delete)

	api.POST("/data/export/students", dataHandler.ExportStudents)
	api.POST("/data/export/courses", dataHandler.ExportCourses)
	api.POST("/data/import/students", dataHandler.ImportStudents)
	api.POST("/data/import/courses", dataHandler.ImportCourses)
	api.POST("/data/backup", dataHandler.Backup)
	api.GET("/data/backup/size", dataHandler.BackupSize)
	api.GET("/data/files", dataHandler.Files)
	api.GET("/data/stats", metricsHandler.Stats)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "app", cfg.AppName)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

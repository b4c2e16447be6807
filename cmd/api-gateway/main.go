package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/tutortrack-api/api/swagger"
	"github.com/noah-isme/tutortrack-api/internal/handler"
	"github.com/noah-isme/tutortrack-api/internal/middleware"
	"github.com/noah-isme/tutortrack-api/internal/repository"
	"github.com/noah-isme/tutortrack-api/internal/service"
	"github.com/noah-isme/tutortrack-api/pkg/cache"
	"github.com/noah-isme/tutortrack-api/pkg/config"
	"github.com/noah-isme/tutortrack-api/pkg/database"
	"github.com/noah-isme/tutortrack-api/pkg/export"
	"github.com/noah-isme/tutortrack-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutortrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutortrack-api/pkg/middleware/requestid"
	"github.com/noah-isme/tutortrack-api/pkg/storage"
)

// @title TutorTrack API
// @version 0.1.0
// @description Tutoring-business management backend
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	blobs, err := storage.NewLocalStorage(cfg.Resources.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init resource storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Resources.SignedURLSecret, cfg.Resources.SignedURLTTL)

	stateRepo := repository.NewStateRepository(db)
	stateFeed := repository.NewStateFeed(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	guard := service.NewSuppressionGuard()
	processor := service.NewAutoProcessService(guard, metricsSvc, logr)
	stateSvc := service.NewStateService(stateRepo, stateFeed, processor, metricsSvc, cfg.AutoProcess, logr)

	authSvc := service.NewAuthService(cfg.JWT, logr)
	viewsSvc := service.NewViewsService(stateSvc, logr)
	scheduleSvc := service.NewScheduleService(stateSvc, nil, logr)
	ledgerSvc := service.NewLedgerService(stateSvc, guard, nil, logr)
	studentSvc := service.NewStudentService(stateSvc, viewsSvc, nil, logr)
	resourceSvc := service.NewResourceService(stateSvc, blobs, signer, cfg.Resources, nil, logr)
	insightSvc := service.NewInsightService(stateSvc, service.NewHTTPTextGenerator(cfg.AI), logr)
	exportSvc := service.NewExportService(stateSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	stateHandler := handler.NewStateHandler(stateSvc, studentSvc, viewsSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	ledgerHandler := handler.NewLedgerHandler(ledgerSvc, viewsSvc)
	resourceHandler := handler.NewResourceHandler(resourceSvc)
	shareHandler := handler.NewShareHandler(viewsSvc)
	insightHandler := handler.NewInsightHandler(insightSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

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
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Share links and signed downloads stay outside the identity boundary.
	r.GET("/share/parent", shareHandler.Parent)
	r.GET("/share/teacher", shareHandler.Teacher)
	r.GET("/resources/download", resourceHandler.Download)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc, stateSvc))
	{
		api.GET("/state", stateHandler.Get)
		api.POST("/teachers", stateHandler.AddTeacher)
		api.PUT("/teachers/current", stateHandler.SelectTeacher)
		api.GET("/teachers/stats", stateHandler.TeacherStats)
		api.PUT("/settings/auto-processing", stateHandler.SetAutoProcessing)

		api.POST("/schedule/slots", scheduleHandler.AddSlot)
		api.DELETE("/schedule/:day/slots/:id", scheduleHandler.DeleteSlot)
		api.POST("/schedule/book", scheduleHandler.Book)
		api.DELETE("/schedule/:day/slots/:id/booking", scheduleHandler.Cancel)
		api.POST("/schedule/move", scheduleHandler.Move)
		api.GET("/schedule/:day/gaps", scheduleHandler.Gaps)

		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.GET("/students/:studentId", studentHandler.Get)
		api.PUT("/students/:studentId", studentHandler.Update)
		api.PUT("/students/:studentId/active", studentHandler.ToggleActive)
		api.DELETE("/students/:studentId", studentHandler.Delete)

		api.POST("/transactions", ledgerHandler.Add)
		api.PUT("/transactions", ledgerHandler.Update)
		api.DELETE("/students/:studentId/transactions/:id", ledgerHandler.Delete)
		api.GET("/students/:studentId/period", ledgerHandler.CurrentPeriod)

		api.POST("/resources/links", resourceHandler.AddLink)
		api.POST("/resources/files", resourceHandler.Upload)
		api.DELETE("/students/:studentId/resources/:id", resourceHandler.Delete)
		api.GET("/students/:studentId/resources/:id/download-url", resourceHandler.DownloadURL)

		api.POST("/students/:studentId/insights/reminder", insightHandler.PaymentReminder)
		api.POST("/students/:studentId/insights/analysis", insightHandler.LedgerAnalysis)

		if cfg.Statements.Enabled {
			api.GET("/students/:studentId/statement", exportHandler.Statement)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

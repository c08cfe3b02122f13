package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/school-dx/lesson-live-api/api/swagger"
	"github.com/school-dx/lesson-live-api/internal/handler"
	"github.com/school-dx/lesson-live-api/internal/middleware"
	"github.com/school-dx/lesson-live-api/internal/realtime"
	"github.com/school-dx/lesson-live-api/internal/repository"
	"github.com/school-dx/lesson-live-api/internal/service"
	"github.com/school-dx/lesson-live-api/pkg/cache"
	"github.com/school-dx/lesson-live-api/pkg/config"
	"github.com/school-dx/lesson-live-api/pkg/database"
	"github.com/school-dx/lesson-live-api/pkg/jobs"
	"github.com/school-dx/lesson-live-api/pkg/logger"
	corsmiddleware "github.com/school-dx/lesson-live-api/pkg/middleware/cors"
	reqidmiddleware "github.com/school-dx/lesson-live-api/pkg/middleware/requestid"
)

// @title Lesson Live API
// @version 1.0.0
// @description Lesson delivery and live-quiz backend
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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	// Redis is optional: without it the grade summary cache is disabled
	// and fan-out degrades to local-only delivery.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, running degraded", "error", err)
		redisClient = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub(realtime.HubConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		WriteTimeout:   cfg.Realtime.WriteTimeout,
		SendBuffer:     cfg.Realtime.SendBuffer,
	}, logr)
	broker := realtime.NewBroker(redisClient, cfg.Realtime.Channel, hub, logr)
	go broker.Listen(ctx)

	metricsSvc := service.NewMetricsService(hub.ListenerCount)

	notifyQueue := jobs.NewQueue("notifications", func(ctx context.Context, job jobs.Job) error {
		message, ok := job.Payload.(string)
		if !ok {
			return fmt.Errorf("unexpected notification payload %T", job.Payload)
		}
		if err := broker.Publish(ctx, message); err != nil {
			metricsSvc.RecordNotification(job.Type, false)
			return err
		}
		metricsSvc.RecordNotification(job.Type, true)
		return nil
	}, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	notifyQueue.Start(ctx)
	defer notifyQueue.Stop()

	lessonRepo := repository.NewLessonRepository(db)
	slotRepo := repository.NewAnswerSlotRepository(db)
	contentRepo := repository.NewContentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	validate := validator.New()

	lessonSvc := service.NewLessonService(lessonRepo, slotRepo, contentRepo, logr)
	answerSvc := service.NewAnswerService(slotRepo, contentRepo, lessonRepo, notifyQueue, validate, logr)
	gradeSvc := service.NewGradeService(gradeRepo, lessonRepo, nil, cfg.Grades.SummaryCacheTTL, logr)
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		gradeSvc = service.NewGradeService(gradeRepo, lessonRepo, cacheRepo, cfg.Grades.SummaryCacheTTL, logr)
	}
	registrationSvc := service.NewRegistrationService(contentRepo, rosterRepo, validate, logr)
	rosterSvc := service.NewRosterService(rosterRepo, validate, logr)
	surveySvc := service.NewSurveyService(surveyRepo, rosterRepo, lessonRepo, contentRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, lessonRepo, contentRepo, rosterRepo, notifyQueue, validate, logr)
	authSvc := service.NewAuthService(rosterRepo, cfg.JWT, validate, logr)

	lessonHandler := handler.NewLessonHandler(lessonSvc)
	answerHandler := handler.NewAnswerHandler(answerSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc, cfg.Grades.ExportEnabled)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	surveyHandler := handler.NewSurveyHandler(surveySvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		lessons := api.Group("/lessons")
		{
			lessons.PUT("/:lesson_id/start", lessonHandler.Start)
			lessons.PUT("/:lesson_id/end", lessonHandler.End)
		}

		themes := api.Group("/lesson_themes")
		{
			themes.PUT("/:theme_id/start_exercise", lessonHandler.StartExercise)
			themes.PUT("/:theme_id/end_exercise", lessonHandler.EndExercise)
			themes.GET("/:theme_id/questions/count", lessonHandler.QuestionCount)
		}

		answers := api.Group("/answers")
		{
			answers.PUT("", answerHandler.Update)
			answers.GET("", answerHandler.List)
			answers.GET("/realtime", answerHandler.Realtime)
			answers.DELETE("", middleware.JWT(authSvc), answerHandler.Clear)
		}

		grades := api.Group("/grades")
		{
			grades.GET("/raw_data", gradeHandler.RawData)
			grades.GET("/grade_summary", gradeHandler.Summary)
			grades.GET("/comments", gradeHandler.Comments)
			grades.GET("/export", gradeHandler.Export)
		}

		registrations := api.Group("/lesson_registrations")
		{
			registrations.GET("/all", registrationHandler.Catalog)
			registrations.POST("", registrationHandler.Register)
			registrations.GET("/calendar", registrationHandler.Calendar)
			registrations.POST("/calendar", registrationHandler.CreateTimetable)
		}

		api.GET("/classes", rosterHandler.ListClasses)
		api.POST("/classes", rosterHandler.CreateClass)
		api.GET("/students", rosterHandler.ListStudents)
		api.POST("/students", rosterHandler.CreateStudent)

		api.GET("/lesson_surveys", surveyHandler.ListByTheme)
		api.POST("/lesson_surveys", surveyHandler.Create)

		attendance := api.Group("/lesson_attendance")
		{
			attendance.PUT("", attendanceHandler.Upsert)
			attendance.GET("", attendanceHandler.List)
			attendance.PUT("/lesson_information", attendanceHandler.LessonInformation)
		}

		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", middleware.JWT(authSvc), authHandler.Me)
	}

	if cfg.Realtime.Enabled {
		r.GET("/ws/dashboard", hub.HandleWS)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

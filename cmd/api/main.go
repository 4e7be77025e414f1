package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/lasithahemajith/practicum-track-api/api/swagger"
	"github.com/lasithahemajith/practicum-track-api/internal/handler"
	"github.com/lasithahemajith/practicum-track-api/internal/repository"
	"github.com/lasithahemajith/practicum-track-api/internal/router"
	"github.com/lasithahemajith/practicum-track-api/internal/service"
	"github.com/lasithahemajith/practicum-track-api/pkg/cache"
	"github.com/lasithahemajith/practicum-track-api/pkg/config"
	"github.com/lasithahemajith/practicum-track-api/pkg/database"
	"github.com/lasithahemajith/practicum-track-api/pkg/logger"
	"github.com/lasithahemajith/practicum-track-api/pkg/storage"
)

// @title Practicum Track API
// @version 1.0.0
// @description Practicum placement tracking across a relational and a document store
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

	pg, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer pg.Close() //nolint:errcheck

	mongoDB, err := database.NewMongo(cfg.Mongo)
	if err != nil {
		logr.Sugar().Fatalw("mongo connection failed", "error", err)
	}
	defer mongoDB.Client().Disconnect(context.Background()) //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Token revocation degrades to signature-only validation without Redis.
		logr.Sugar().Warnw("redis unavailable, logout revocation disabled", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		logr.Sugar().Fatalw("upload storage init failed", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(pg)
	mappingRepo := repository.NewMappingRepository(pg)
	attendanceRepo := repository.NewAttendanceRepository(pg)
	logRepo := repository.NewLogPaperRepository(mongoDB)
	mentorFeedbackRepo := repository.NewMentorFeedbackRepository(mongoDB)
	tutorFeedbackRepo := repository.NewTutorFeedbackRepository(mongoDB)

	authCfg := service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}

	authSvc := service.NewAuthService(userRepo, redisClient, validate, logr, authCfg)
	userSvc := service.NewUserService(userRepo, mappingRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, mappingRepo, validate, logr)
	logSvc := service.NewLogPaperService(logRepo, mappingRepo, validate, logr)
	feedbackSvc := service.NewFeedbackService(mentorFeedbackRepo, tutorFeedbackRepo, logRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(attendanceRepo, logRepo, userRepo, feedbackCounts{
		mentor: mentorFeedbackRepo,
		tutor:  tutorFeedbackRepo,
	}, logr)
	exportSvc := service.NewExportService(logRepo, tutorFeedbackRepo, logr)
	metricsSvc := service.NewMetricsService()

	engine := router.New(router.Deps{
		Config:    cfg,
		Logger:    logr,
		Auth:      authSvc,
		Users:     userSvc,
		Attend:    attendanceSvc,
		Logs:      logSvc,
		Feedback:  feedbackSvc,
		Dashboard: dashboardSvc,
		Export:    exportSvc,
		Metrics:   metricsSvc,
		Handlers: router.Handlers{
			Auth:      handler.NewAuthHandler(authSvc),
			Users:     handler.NewUserHandler(userSvc),
			Attend:    handler.NewAttendanceHandler(attendanceSvc),
			Logs:      handler.NewLogPaperHandler(logSvc, store, cfg.Uploads.MaxFileSizeBytes),
			Feedback:  handler.NewFeedbackHandler(feedbackSvc),
			Dashboard: handler.NewDashboardHandler(dashboardSvc),
			Export:    handler.NewExportHandler(exportSvc),
			Metrics: handler.NewMetricsHandler(metricsSvc, handler.StoreChecks{
				Postgres: pg.PingContext,
				Mongo: func(ctx context.Context) error {
					return mongoDB.Client().Ping(ctx, nil)
				},
			}),
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// feedbackCounts joins the two feedback repositories behind the dashboard's
// counting interface.
type feedbackCounts struct {
	mentor *repository.MentorFeedbackRepository
	tutor  *repository.TutorFeedbackRepository
}

func (f feedbackCounts) CountMentorFeedback(ctx context.Context) (int, error) {
	return f.mentor.Count(ctx)
}

func (f feedbackCounts) CountTutorFeedback(ctx context.Context) (int, error) {
	return f.tutor.Count(ctx)
}

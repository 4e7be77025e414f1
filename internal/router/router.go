package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/handler"
	"github.com/lasithahemajith/practicum-track-api/internal/middleware"
	"github.com/lasithahemajith/practicum-track-api/internal/models"
	"github.com/lasithahemajith/practicum-track-api/internal/service"
	"github.com/lasithahemajith/practicum-track-api/pkg/config"
	"github.com/lasithahemajith/practicum-track-api/pkg/logger"
	corsmiddleware "github.com/lasithahemajith/practicum-track-api/pkg/middleware/cors"
	reqidmiddleware "github.com/lasithahemajith/practicum-track-api/pkg/middleware/requestid"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Auth      *service.AuthService
	Users     *service.UserService
	Attend    *service.AttendanceService
	Logs      *service.LogPaperService
	Feedback  *service.FeedbackService
	Dashboard *service.DashboardService
	Export    *service.ExportService
	Metrics   *service.MetricsService
	Handlers  Handlers
}

// Handlers groups the constructed handler set.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Attend    *handler.AttendanceHandler
	Logs      *handler.LogPaperHandler
	Feedback  *handler.FeedbackHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
	Metrics   *handler.MetricsHandler
}

// New builds the gin engine with the full route table mounted under the
// configured API prefix.
func New(deps Deps) *gin.Engine {
	cfg := deps.Config

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", deps.Handlers.Metrics.Health)
	r.GET("/ready", deps.Handlers.Metrics.Ready)
	r.GET("/metrics", deps.Handlers.Metrics.Prometheus)
	r.Static("/uploads/logpapers", cfg.Uploads.Dir)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	authenticated := middleware.JWT(deps.Auth)
	studentOnly := middleware.RequireRoles(models.RoleStudent)
	mentorOnly := middleware.RequireRoles(models.RoleMentor)
	tutorOnly := middleware.RequireRoles(models.RoleTutor)

	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.Handlers.Auth.Register)
		auth.POST("/login", deps.Handlers.Auth.Login)
		auth.POST("/logout", authenticated, deps.Handlers.Auth.Logout)
		auth.GET("/profile", authenticated, deps.Handlers.Auth.Profile)
	}

	users := api.Group("/users", authenticated)
	{
		users.POST("", tutorOnly, deps.Handlers.Users.Create)
		users.GET("", deps.Handlers.Users.List)
	}

	mappings := api.Group("/mappings", authenticated)
	{
		mappings.POST("", tutorOnly, deps.Handlers.Users.Map)
		mappings.DELETE("", tutorOnly, deps.Handlers.Users.Unmap)
		mappings.GET("", tutorOnly, deps.Handlers.Users.ListMappings)
		mappings.GET("/students", mentorOnly, deps.Handlers.Users.AssignedStudents)
	}

	attendance := api.Group("/attendance", authenticated)
	{
		attendance.POST("", studentOnly, deps.Handlers.Attend.Submit)
		attendance.GET("/my", studentOnly, deps.Handlers.Attend.Mine)
		attendance.GET("/mapped", mentorOnly, deps.Handlers.Attend.Mapped)
		attendance.GET("", tutorOnly, deps.Handlers.Attend.All)
	}

	logs := api.Group("/logs", authenticated)
	{
		logs.POST("", studentOnly, deps.Handlers.Logs.Create)
		logs.GET("/my", studentOnly, deps.Handlers.Logs.Mine)
		logs.GET("/mapped", mentorOnly, deps.Handlers.Logs.Mapped)
		logs.GET("", tutorOnly, deps.Handlers.Logs.All)
		logs.GET("/:id", deps.Handlers.Logs.Get)
		logs.PATCH("/:id/verify", mentorOnly, deps.Handlers.Logs.Verify)
		logs.PATCH("/:id/review", tutorOnly, deps.Handlers.Logs.Review)
	}

	feedback := api.Group("/feedback", authenticated)
	{
		feedback.POST("/mentor", mentorOnly, deps.Handlers.Feedback.AddMentorFeedback)
		feedback.GET("/mentor/:logId", deps.Handlers.Feedback.GetMentorFeedback)
		feedback.POST("/tutor/:logId", tutorOnly, deps.Handlers.Feedback.AddTutorFeedback)
		feedback.GET("/tutor/:logId", deps.Handlers.Feedback.ListTutorFeedback)
		feedback.GET("/tutor", tutorOnly, deps.Handlers.Feedback.ListAllTutorFeedback)
	}

	dashboard := api.Group("/dashboard", authenticated, tutorOnly)
	{
		dashboard.GET("/attendance", deps.Handlers.Dashboard.Attendance)
		dashboard.GET("/logs", deps.Handlers.Dashboard.Logs)
		dashboard.GET("/progress", deps.Handlers.Dashboard.Progress)
		dashboard.GET("/stats", deps.Handlers.Dashboard.Stats)
		dashboard.GET("/insights", deps.Handlers.Dashboard.Insights)
	}

	export := api.Group("/export", authenticated, tutorOnly)
	{
		export.GET("/logs", deps.Handlers.Export.Logs)
	}

	return r
}

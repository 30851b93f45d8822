package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/coachplan-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coachplan-backend/internal/http/middleware"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler     *httpH.AuthHandler
	StudentHandler  *httpH.StudentHandler
	LibraryHandler  *httpH.LibraryHandler
	PlanHandler     *httpH.PlanHandler
	ComposerHandler *httpH.ComposerHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.StudentHandler != nil {
			protected.GET("/me", cfg.StudentHandler.GetMe)
		}

		// Exercise library
		if cfg.LibraryHandler != nil {
			protected.GET("/library/groups", cfg.LibraryHandler.ListGroups)
			protected.GET("/library/groups/:group/exercises", cfg.LibraryHandler.ListExercises)
			protected.GET("/library/search", cfg.LibraryHandler.Search)
		}

		// Plans and summaries (coach or the student themself)
		if cfg.PlanHandler != nil {
			protected.GET("/students/:id/plans", cfg.PlanHandler.ListPlans)
			protected.GET("/students/:id/plans/:weekday", cfg.PlanHandler.GetPlan)
			protected.GET("/students/:id/summary", cfg.PlanHandler.GetSummary)
		}

		coach := protected.Group("/")
		{
			if cfg.AuthMiddleware != nil {
				coach.Use(cfg.AuthMiddleware.RequireCoach())
			}

			// Student directory
			if cfg.StudentHandler != nil {
				coach.GET("/students", cfg.StudentHandler.ListStudents)
				coach.GET("/students/overview", cfg.StudentHandler.Overview)
				coach.GET("/students/:id", cfg.StudentHandler.GetStudent)
				coach.PATCH("/students/:id", cfg.StudentHandler.UpdateProfile)
				coach.DELETE("/students/:id", cfg.StudentHandler.DeleteStudent)
			}

			// Direct plan writes
			if cfg.PlanHandler != nil {
				coach.PUT("/students/:id/plans/:weekday", cfg.PlanHandler.SavePlan)
			}

			// Composing sessions
			if cfg.ComposerHandler != nil {
				coach.GET("/composer/:id", cfg.ComposerHandler.GetSession)
				coach.POST("/composer/:id/weekday", cfg.ComposerHandler.SelectWeekday)
				coach.POST("/composer/:id/exercises", cfg.ComposerHandler.AddExercise)
				coach.PATCH("/composer/:id/exercises/:localId", cfg.ComposerHandler.UpdateExercise)
				coach.DELETE("/composer/:id/exercises/:localId", cfg.ComposerHandler.RemoveExercise)
				coach.POST("/composer/:id/save", cfg.ComposerHandler.Save)
			}
		}
	}

	return r
}

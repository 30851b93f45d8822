package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/yungbote/coachplan-backend/internal/http"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middleware Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: middleware.Auth,

		AuthHandler:     handlerset.Auth,
		StudentHandler:  handlerset.Student,
		LibraryHandler:  handlerset.Library,
		PlanHandler:     handlerset.Plan,
		ComposerHandler: handlerset.Composer,
		HealthHandler:   handlerset.Health,
	})
}

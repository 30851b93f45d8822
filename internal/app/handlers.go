package app

import (
	httpH "github.com/yungbote/coachplan-backend/internal/http/handlers"
	"github.com/yungbote/coachplan-backend/internal/library"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

type Handlers struct {
	Auth     *httpH.AuthHandler
	Student  *httpH.StudentHandler
	Library  *httpH.LibraryHandler
	Plan     *httpH.PlanHandler
	Composer *httpH.ComposerHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, lib *library.Library) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     httpH.NewAuthHandler(serviceset.Auth),
		Student:  httpH.NewStudentHandler(serviceset.Student),
		Library:  httpH.NewLibraryHandler(lib),
		Plan:     httpH.NewPlanHandler(serviceset.Plan, serviceset.Summary),
		Composer: httpH.NewComposerHandler(serviceset.Composer),
		Health:   httpH.NewHealthHandler(),
	}
}

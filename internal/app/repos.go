package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/coachplan-backend/internal/data/repos"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Plan      repos.PlanRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Plan:      repos.NewPlanRepo(db, log),
	}
}

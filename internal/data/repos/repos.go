package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/coachplan-backend/internal/data/repos/auth"
	"github.com/yungbote/coachplan-backend/internal/data/repos/plans"
	"github.com/yungbote/coachplan-backend/internal/data/repos/users"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

type UserRepo = users.UserRepo
type UserTokenRepo = auth.UserTokenRepo
type PlanRepo = plans.PlanRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return users.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}
func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo { return plans.NewPlanRepo(db, baseLog) }

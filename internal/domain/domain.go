package domain

import (
	"github.com/yungbote/coachplan-backend/internal/domain/auth"
	"github.com/yungbote/coachplan-backend/internal/domain/plan"
	"github.com/yungbote/coachplan-backend/internal/domain/user"
)

const (
	RoleCoach   = user.RoleCoach
	RoleStudent = user.RoleStudent
)

type User = user.User
type UserToken = auth.UserToken

type Weekday = plan.Weekday
type ExerciseEntry = plan.ExerciseEntry
type TrainingPlan = plan.TrainingPlan

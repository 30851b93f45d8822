package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coachplan-backend/internal/data/repos"
	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/platform/apierr"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

// PlanService is the persistence gateway for training plans. Saves are
// upserts: the (student, weekday) pair identifies the row and the exercise
// list is replaced whole.
type PlanService interface {
	Fetch(ctx context.Context, studentID uuid.UUID, weekday types.Weekday) (*types.TrainingPlan, error)
	FetchAll(ctx context.Context, studentID uuid.UUID) ([]*types.TrainingPlan, error)
	Save(ctx context.Context, studentID uuid.UUID, weekday types.Weekday, planName string, exercises []types.ExerciseEntry) (*types.TrainingPlan, error)
}

type planService struct {
	db       *gorm.DB
	log      *logger.Logger
	planRepo repos.PlanRepo
	cache    SummaryCache
}

func NewPlanService(db *gorm.DB, log *logger.Logger, planRepo repos.PlanRepo, cache SummaryCache) PlanService {
	serviceLog := log.With("service", "PlanService")
	return &planService{db: db, log: serviceLog, planRepo: planRepo, cache: cache}
}

func (ps *planService) Fetch(ctx context.Context, studentID uuid.UUID, weekday types.Weekday) (*types.TrainingPlan, error) {
	return ps.planRepo.GetByStudentAndWeekday(ctx, nil, studentID, weekday)
}

func (ps *planService) FetchAll(ctx context.Context, studentID uuid.UUID) ([]*types.TrainingPlan, error) {
	return ps.planRepo.ListByStudent(ctx, nil, studentID)
}

func (ps *planService) Save(ctx context.Context, studentID uuid.UUID, weekday types.Weekday, planName string, exercises []types.ExerciseEntry) (*types.TrainingPlan, error) {
	if len(exercises) == 0 {
		return nil, fmt.Errorf("%w: a plan needs at least one exercise", apierr.ErrInvalidArgument)
	}
	saved, err := ps.planRepo.Upsert(ctx, nil, studentID, weekday, planName, exercises)
	if err != nil {
		return nil, err
	}
	if ps.cache != nil {
		ps.cache.Invalidate(ctx, studentID)
	}
	ps.log.Info("plan saved", "student_id", studentID, "weekday", weekday, "exercises", len(exercises))
	return saved, nil
}

// PlanName derives the stored plan name from the weekday and student name.
func PlanName(weekday types.Weekday, studentName string) string {
	return fmt.Sprintf("%s training - %s", weekday, studentName)
}

package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

// upsertAttempts bounds the update-then-insert retry loop. Two attempts cover
// the single-race case; the third is slack for a second racer.
const upsertAttempts = 3

type PlanRepo interface {
	// GetByStudentAndWeekday returns (nil, nil) when the student has no plan
	// for that weekday; absence is a normal outcome, not an error.
	GetByStudentAndWeekday(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekday types.Weekday) (*types.TrainingPlan, error)
	// ListByStudent returns every plan of the student, newest first.
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.TrainingPlan, error)
	// Upsert replaces the plan name and the whole exercise list for the
	// (student, weekday) pair, creating the row when none exists. The
	// one-plan-per-day invariant is upheld even against concurrent saves.
	Upsert(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekday types.Weekday, planName string, exercises []types.ExerciseEntry) (*types.TrainingPlan, error)
}

type planRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	repoLog := baseLog.With("repo", "PlanRepo")
	return &planRepo{db: db, log: repoLog}
}

func (pr *planRepo) GetByStudentAndWeekday(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekday types.Weekday) (*types.TrainingPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.TrainingPlan
	err := transaction.WithContext(ctx).
		Where("student_id = ? AND weekday = ?", studentID, weekday).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *planRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.TrainingPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.TrainingPlan
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *planRepo) Upsert(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekday types.Weekday, planName string, exercises []types.ExerciseEntry) (*types.TrainingPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if exercises == nil {
		exercises = []types.ExerciseEntry{}
	}

	var lastErr error
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		res := transaction.WithContext(ctx).
			Model(&types.TrainingPlan{}).
			Where("student_id = ? AND weekday = ?", studentID, weekday).
			Updates(map[string]any{
				"plan_name": planName,
				"exercises": datatypes.NewJSONSlice(exercises),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return pr.GetByStudentAndWeekday(ctx, tx, studentID, weekday)
		}

		// No row to update; fall back to insert.
		row := &types.TrainingPlan{
			ID:        uuid.New(),
			StudentID: studentID,
			Weekday:   weekday,
			PlanName:  planName,
			Exercises: datatypes.NewJSONSlice(exercises),
		}
		err := transaction.WithContext(ctx).Create(row).Error
		if err == nil {
			return row, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
		// A concurrent save created the row between our update and insert.
		// That save won the insert; retry ours as an update.
		pr.log.Debug("plan upsert lost insert race, retrying as update",
			"student_id", studentID, "weekday", weekday, "attempt", attempt+1)
		lastErr = err
	}
	return nil, fmt.Errorf("plan upsert for student %s %s did not settle after %d attempts: %w",
		studentID, weekday, upsertAttempts, lastErr)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

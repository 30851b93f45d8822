package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/coachplan-backend/internal/data/repos"
	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/domain/plan"
	"github.com/yungbote/coachplan-backend/internal/platform/apierr"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

// ProfileUpdate carries the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string  `json:"name"`
	WeightKg *float64 `json:"weightKg"`
	HeightCm *float64 `json:"heightCm"`
	Age      *int     `json:"age"`
}

// StudentOverview pairs a student with today's training label for the coach
// dashboard.
type StudentOverview struct {
	Student    *types.User `json:"student"`
	TodayLabel string      `json:"todayLabel"`
}

type StudentService interface {
	Get(ctx context.Context, id uuid.UUID) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	Search(ctx context.Context, query string) ([]*types.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*types.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Overview resolves today's label for every student concurrently.
	Overview(ctx context.Context, now time.Time) ([]StudentOverview, error)
}

type studentService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	summary  SummaryService
}

func NewStudentService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, summary SummaryService) StudentService {
	serviceLog := log.With("service", "StudentService")
	return &studentService{db: db, log: serviceLog, userRepo: userRepo, summary: summary}
}

func (ss *studentService) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := ss.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != types.RoleStudent {
		return nil, nil
	}
	return user, nil
}

func (ss *studentService) List(ctx context.Context) ([]*types.User, error) {
	return ss.userRepo.ListStudents(ctx, nil)
}

func (ss *studentService) Search(ctx context.Context, query string) ([]*types.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ss.userRepo.ListStudents(ctx, nil)
	}
	return ss.userRepo.SearchStudents(ctx, nil, query)
}

func (ss *studentService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*types.User, error) {
	fields := map[string]any{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be blank", apierr.ErrInvalidArgument)
		}
		fields["name"] = name
	}
	if update.WeightKg != nil {
		fields["weight_kg"] = *update.WeightKg
	}
	if update.HeightCm != nil {
		fields["height_cm"] = *update.HeightCm
	}
	if update.Age != nil {
		fields["age"] = *update.Age
	}
	if len(fields) == 0 {
		return ss.userRepo.GetByID(ctx, nil, id)
	}
	if err := ss.userRepo.UpdateProfile(ctx, nil, id, fields); err != nil {
		return nil, err
	}
	return ss.userRepo.GetByID(ctx, nil, id)
}

func (ss *studentService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := ss.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: student %s", apierr.ErrNotFound, id)
	}
	return ss.userRepo.Delete(ctx, nil, id)
}

func (ss *studentService) Overview(ctx context.Context, now time.Time) ([]StudentOverview, error) {
	students, err := ss.userRepo.ListStudents(ctx, nil)
	if err != nil {
		return nil, err
	}

	today := plan.Today(now)
	overviews := make([]StudentOverview, len(students))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, student := range students {
		g.Go(func() error {
			week, err := ss.summary.SummarizeWeek(gctx, student.ID)
			if err != nil {
				return err
			}
			overviews[i] = StudentOverview{Student: student, TodayLabel: week[today]}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overviews, nil
}

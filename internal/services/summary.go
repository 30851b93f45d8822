package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coachplan-backend/internal/data/repos"
	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/domain/plan"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

const (
	// LabelNoPlan marks a weekday with no stored plan.
	LabelNoPlan = "No plan"
	// LabelRest marks a stored plan with an empty exercise list.
	LabelRest = "Rest"
)

// Summarize reduces a day's plan to its dominant muscle group. Entries with a
// blank group are excluded from counting. Ties resolve to the group occurring
// first in list order; that ordering is part of the contract, not an accident.
func Summarize(p *types.TrainingPlan) string {
	if p == nil {
		return LabelNoPlan
	}
	if len(p.Exercises) == 0 {
		return LabelRest
	}

	counts := make(map[string]int, len(p.Exercises))
	firstSeen := make(map[string]int, len(p.Exercises))
	for i, entry := range p.Exercises {
		if entry.Group == "" {
			continue
		}
		if _, ok := firstSeen[entry.Group]; !ok {
			firstSeen[entry.Group] = i
		}
		counts[entry.Group]++
	}

	dominant := ""
	for group, n := range counts {
		if dominant == "" {
			dominant = group
			continue
		}
		if n > counts[dominant] || (n == counts[dominant] && firstSeen[group] < firstSeen[dominant]) {
			dominant = group
		}
	}
	return dominant
}

// SummaryCache is an optional read-through cache for weekly summaries.
type SummaryCache interface {
	Get(ctx context.Context, studentID uuid.UUID) (map[types.Weekday]string, bool)
	Set(ctx context.Context, studentID uuid.UUID, summary map[types.Weekday]string)
	Invalidate(ctx context.Context, studentID uuid.UUID)
}

type SummaryService interface {
	// SummarizeWeek maps every weekday to its dominant-group label for one
	// student. Derived on demand, never stored.
	SummarizeWeek(ctx context.Context, studentID uuid.UUID) (map[types.Weekday]string, error)
}

type summaryService struct {
	db       *gorm.DB
	log      *logger.Logger
	planRepo repos.PlanRepo
	cache    SummaryCache
}

func NewSummaryService(db *gorm.DB, log *logger.Logger, planRepo repos.PlanRepo, cache SummaryCache) SummaryService {
	serviceLog := log.With("service", "SummaryService")
	return &summaryService{db: db, log: serviceLog, planRepo: planRepo, cache: cache}
}

func (ss *summaryService) SummarizeWeek(ctx context.Context, studentID uuid.UUID) (map[types.Weekday]string, error) {
	if ss.cache != nil {
		if cached, ok := ss.cache.Get(ctx, studentID); ok {
			return cached, nil
		}
	}

	rows, err := ss.planRepo.ListByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}

	byWeekday := make(map[types.Weekday]*types.TrainingPlan, len(rows))
	for _, row := range rows {
		if _, ok := byWeekday[row.Weekday]; !ok {
			byWeekday[row.Weekday] = row
		}
	}

	summary := make(map[types.Weekday]string, 7)
	for _, wd := range plan.Weekdays() {
		summary[wd] = Summarize(byWeekday[wd])
	}

	if ss.cache != nil {
		ss.cache.Set(ctx, studentID, summary)
	}
	return summary, nil
}

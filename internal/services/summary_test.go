package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/domain/plan"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func planWith(groups ...string) *types.TrainingPlan {
	entries := make([]types.ExerciseEntry, 0, len(groups))
	for i, g := range groups {
		entries = append(entries, types.ExerciseEntry{
			Name:  "exercise-" + string(rune('a'+i)),
			Group: g,
			Sets:  3,
			Reps:  12,
		})
	}
	return &types.TrainingPlan{
		ID:        uuid.New(),
		Exercises: datatypes.NewJSONSlice(entries),
	}
}

func TestSummarizeNoPlan(t *testing.T) {
	if got := Summarize(nil); got != LabelNoPlan {
		t.Fatalf("Summarize(nil): expected %q, got %q", LabelNoPlan, got)
	}
}

func TestSummarizeRest(t *testing.T) {
	if got := Summarize(planWith()); got != LabelRest {
		t.Fatalf("Summarize(empty): expected %q, got %q", LabelRest, got)
	}
}

func TestSummarizeDominantGroup(t *testing.T) {
	// Two chest pulls against one biceps curl.
	p := planWith("Peito", "Peito", "Bíceps")
	if got := Summarize(p); got != "Peito" {
		t.Fatalf("Summarize: expected Peito, got %q", got)
	}
}

func TestSummarizeTieBreaksToFirstSeen(t *testing.T) {
	p := planWith("Costas", "Peito", "Costas", "Peito")
	if got := Summarize(p); got != "Costas" {
		t.Fatalf("Summarize tie: expected Costas (first seen), got %q", got)
	}

	// Order flipped, the winner flips with it.
	p = planWith("Peito", "Costas", "Peito", "Costas")
	if got := Summarize(p); got != "Peito" {
		t.Fatalf("Summarize tie: expected Peito (first seen), got %q", got)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	p := planWith("Pernas", "Ombros", "Pernas", "Ombros", "Tríceps")
	first := Summarize(p)
	for i := 0; i < 50; i++ {
		if got := Summarize(p); got != first {
			t.Fatalf("Summarize: nondeterministic result, %q then %q", first, got)
		}
	}
	if first != "Pernas" {
		t.Fatalf("Summarize: expected Pernas, got %q", first)
	}
}

func TestSummarizeSkipsBlankGroups(t *testing.T) {
	p := planWith("", "", "Abdômen")
	if got := Summarize(p); got != "Abdômen" {
		t.Fatalf("Summarize: expected blank groups excluded, got %q", got)
	}
}

type fakePlanRepo struct {
	plans map[types.Weekday]*types.TrainingPlan
}

func (f *fakePlanRepo) GetByStudentAndWeekday(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekday types.Weekday) (*types.TrainingPlan, error) {
	return f.plans[weekday], nil
}

func (f *fakePlanRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.TrainingPlan, error) {
	out := make([]*types.TrainingPlan, 0, len(f.plans))
	for _, wd := range plan.Weekdays() {
		if p, ok := f.plans[wd]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Upsert(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekday types.Weekday, planName string, exercises []types.ExerciseEntry) (*types.TrainingPlan, error) {
	row := &types.TrainingPlan{
		ID:        uuid.New(),
		StudentID: studentID,
		Weekday:   weekday,
		PlanName:  planName,
		Exercises: datatypes.NewJSONSlice(exercises),
	}
	if f.plans == nil {
		f.plans = map[types.Weekday]*types.TrainingPlan{}
	}
	f.plans[weekday] = row
	return row, nil
}

func TestSummarizeWeekCoversAllWeekdays(t *testing.T) {
	monday := planWith("Peito", "Peito", "Costas")
	wednesday := planWith()
	repo := &fakePlanRepo{plans: map[types.Weekday]*types.TrainingPlan{
		plan.Monday:    monday,
		plan.Wednesday: wednesday,
	}}
	monday.Weekday = plan.Monday
	wednesday.Weekday = plan.Wednesday

	svc := NewSummaryService(nil, testLogger(t), repo, nil)
	week, err := svc.SummarizeWeek(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("SummarizeWeek: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("SummarizeWeek: expected 7 entries, got %d", len(week))
	}
	if week[plan.Monday] != "Peito" {
		t.Fatalf("SummarizeWeek[Monday]: expected Peito, got %q", week[plan.Monday])
	}
	if week[plan.Wednesday] != LabelRest {
		t.Fatalf("SummarizeWeek[Wednesday]: expected %q, got %q", LabelRest, week[plan.Wednesday])
	}
	if week[plan.Sunday] != LabelNoPlan {
		t.Fatalf("SummarizeWeek[Sunday]: expected %q, got %q", LabelNoPlan, week[plan.Sunday])
	}
}

type fakeCache struct {
	stored map[uuid.UUID]map[types.Weekday]string
	hits   int
}

func (f *fakeCache) Get(ctx context.Context, studentID uuid.UUID) (map[types.Weekday]string, bool) {
	s, ok := f.stored[studentID]
	if ok {
		f.hits++
	}
	return s, ok
}

func (f *fakeCache) Set(ctx context.Context, studentID uuid.UUID, summary map[types.Weekday]string) {
	if f.stored == nil {
		f.stored = map[uuid.UUID]map[types.Weekday]string{}
	}
	f.stored[studentID] = summary
}

func (f *fakeCache) Invalidate(ctx context.Context, studentID uuid.UUID) {
	delete(f.stored, studentID)
}

func TestSummarizeWeekUsesCache(t *testing.T) {
	repo := &fakePlanRepo{}
	cache := &fakeCache{}
	svc := NewSummaryService(nil, testLogger(t), repo, cache)
	studentID := uuid.New()

	if _, err := svc.SummarizeWeek(context.Background(), studentID); err != nil {
		t.Fatalf("SummarizeWeek (cold): %v", err)
	}
	if _, err := svc.SummarizeWeek(context.Background(), studentID); err != nil {
		t.Fatalf("SummarizeWeek (warm): %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("SummarizeWeek: expected 1 cache hit, got %d", cache.hits)
	}
}

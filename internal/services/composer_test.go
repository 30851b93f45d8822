package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/domain/plan"
	"github.com/yungbote/coachplan-backend/internal/platform/apierr"
)

// fakeStore implements PlanService with per-weekday gates so tests can hold a
// fetch or save in flight.
type fakeStore struct {
	mu         sync.Mutex
	plans      map[types.Weekday]*types.TrainingPlan
	fetchGates map[types.Weekday]chan struct{}
	saveGate   chan struct{}
	saveErr    error
	saveCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans:      map[types.Weekday]*types.TrainingPlan{},
		fetchGates: map[types.Weekday]chan struct{}{},
	}
}

func (f *fakeStore) Fetch(ctx context.Context, studentID uuid.UUID, weekday types.Weekday) (*types.TrainingPlan, error) {
	f.mu.Lock()
	gate := f.fetchGates[weekday]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plans[weekday], nil
}

func (f *fakeStore) FetchAll(ctx context.Context, studentID uuid.UUID) ([]*types.TrainingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.TrainingPlan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) Save(ctx context.Context, studentID uuid.UUID, weekday types.Weekday, planName string, exercises []types.ExerciseEntry) (*types.TrainingPlan, error) {
	f.mu.Lock()
	gate := f.saveGate
	f.saveCalls++
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	row := &types.TrainingPlan{
		ID:        uuid.New(),
		StudentID: studentID,
		Weekday:   weekday,
		PlanName:  planName,
		Exercises: datatypes.NewJSONSlice(exercises),
	}
	f.plans[weekday] = row
	return row, nil
}

func newTestComposer(t *testing.T, store PlanService) *Composer {
	t.Helper()
	return NewComposer(testLogger(t), store, uuid.New(), "Maria")
}

func TestComposerSelectWeekdayLoadsPersisted(t *testing.T) {
	store := newFakeStore()
	store.plans[plan.Monday] = &types.TrainingPlan{
		ID:      uuid.New(),
		Weekday: plan.Monday,
		Exercises: datatypes.NewJSONSlice([]types.ExerciseEntry{
			{Name: "Supino Reto", Group: "Peito", Sets: 4, Reps: 10, RestSeconds: 90},
		}),
	}
	c := newTestComposer(t, store)

	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	snap := c.Snapshot()
	if snap.State != StateLoaded {
		t.Fatalf("expected state %s, got %s", StateLoaded, snap.State)
	}
	if len(snap.Draft) != 1 || snap.Draft[0].Name != "Supino Reto" || snap.Draft[0].Sets != 4 {
		t.Fatalf("draft does not mirror persisted plan: %+v", snap.Draft)
	}
	if snap.Draft[0].LocalID == 0 {
		t.Fatalf("loaded draft rows must carry a local id")
	}
}

func TestComposerSelectWeekdayEmptyDay(t *testing.T) {
	c := newTestComposer(t, newFakeStore())
	if err := c.SelectWeekday(context.Background(), plan.Tuesday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	snap := c.Snapshot()
	if snap.State != StateLoaded || len(snap.Draft) != 0 {
		t.Fatalf("expected empty loaded draft, got state=%s draft=%+v", snap.State, snap.Draft)
	}
}

func TestComposerAddExerciseDefaults(t *testing.T) {
	c := newTestComposer(t, newFakeStore())
	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	entry, err := c.AddExercise("Agachamento Livre", "Pernas")
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if entry.Sets != 3 || entry.Reps != 12 || entry.RestSeconds != 60 {
		t.Fatalf("AddExercise defaults: got sets=%d reps=%d rest=%d", entry.Sets, entry.Reps, entry.RestSeconds)
	}
	if snap := c.Snapshot(); snap.State != StateDirty {
		t.Fatalf("expected state %s after add, got %s", StateDirty, snap.State)
	}
}

func TestComposerAddExerciseRequiresSelection(t *testing.T) {
	c := newTestComposer(t, newFakeStore())
	if _, err := c.AddExercise("Supino Reto", "Peito"); !errors.Is(err, apierr.ErrInvalidArgument) {
		t.Fatalf("AddExercise before selection: expected invalid argument, got %v", err)
	}
}

func TestComposerRemoveExercise(t *testing.T) {
	c := newTestComposer(t, newFakeStore())
	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	entry, err := c.AddExercise("Supino Reto", "Peito")
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if err := c.RemoveExercise(entry.LocalID); err != nil {
		t.Fatalf("RemoveExercise: %v", err)
	}
	if snap := c.Snapshot(); len(snap.Draft) != 0 {
		t.Fatalf("expected empty draft after remove, got %+v", snap.Draft)
	}

	// Unknown ids are a silent no-op.
	if err := c.RemoveExercise(99999); err != nil {
		t.Fatalf("RemoveExercise(unknown): %v", err)
	}
}

func TestComposerUpdateExercise(t *testing.T) {
	c := newTestComposer(t, newFakeStore())
	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	entry, err := c.AddExercise("Supino Reto", "Peito")
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	sets := 5
	notes := "carga pesada"
	if err := c.UpdateExercise(entry.LocalID, DraftUpdate{Sets: &sets, Notes: &notes}); err != nil {
		t.Fatalf("UpdateExercise: %v", err)
	}
	snap := c.Snapshot()
	if snap.Draft[0].Sets != 5 || snap.Draft[0].Notes != "carga pesada" {
		t.Fatalf("UpdateExercise: fields not applied: %+v", snap.Draft[0])
	}
	if snap.Draft[0].Reps != 12 {
		t.Fatalf("UpdateExercise: untouched field changed: %+v", snap.Draft[0])
	}

	if err := c.UpdateExercise(424242, DraftUpdate{Sets: &sets}); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("UpdateExercise(unknown): expected not found, got %v", err)
	}
}

func TestComposerSaveEmptyDraftRejected(t *testing.T) {
	store := newFakeStore()
	c := newTestComposer(t, store)
	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	if _, err := c.Save(context.Background()); !errors.Is(err, apierr.ErrInvalidArgument) {
		t.Fatalf("Save(empty): expected invalid argument, got %v", err)
	}
	if store.saveCalls != 0 {
		t.Fatalf("Save(empty): store must not be called, got %d calls", store.saveCalls)
	}
}

func TestComposerSaveSuccess(t *testing.T) {
	store := newFakeStore()
	c := newTestComposer(t, store)
	if err := c.SelectWeekday(context.Background(), plan.Friday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	if _, err := c.AddExercise("Rosca Direta", "Bíceps"); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	saved, err := c.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Weekday != plan.Friday {
		t.Fatalf("Save: wrong weekday %s", saved.Weekday)
	}
	if saved.PlanName != "Friday training - Maria" {
		t.Fatalf("Save: unexpected plan name %q", saved.PlanName)
	}
	if snap := c.Snapshot(); snap.State != StateLoaded {
		t.Fatalf("expected state %s after save, got %s", StateLoaded, snap.State)
	}
}

func TestComposerSaveFailureKeepsDraft(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("connection reset")
	c := newTestComposer(t, store)
	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	if _, err := c.AddExercise("Supino Reto", "Peito"); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	if _, err := c.Save(context.Background()); err == nil {
		t.Fatalf("Save: expected error")
	}
	snap := c.Snapshot()
	if snap.State != StateDirty {
		t.Fatalf("expected state %s after failed save, got %s", StateDirty, snap.State)
	}
	if len(snap.Draft) != 1 {
		t.Fatalf("draft must survive a failed save, got %+v", snap.Draft)
	}
	if snap.LastError == "" {
		t.Fatalf("expected failure reason in snapshot")
	}
}

func TestComposerConcurrentSaveRejected(t *testing.T) {
	store := newFakeStore()
	store.saveGate = make(chan struct{})
	c := newTestComposer(t, store)
	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	if _, err := c.AddExercise("Supino Reto", "Peito"); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Save(context.Background())
		done <- err
	}()

	// Wait for the first save to enter the store.
	deadline := time.After(2 * time.Second)
	for {
		store.mu.Lock()
		calls := store.saveCalls
		store.mu.Unlock()
		if calls == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("first save never reached the store")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := c.Save(context.Background()); !errors.Is(err, apierr.ErrSaveInProgress) {
		t.Fatalf("second save: expected ErrSaveInProgress, got %v", err)
	}

	close(store.saveGate)
	if err := <-done; err != nil {
		t.Fatalf("first save: %v", err)
	}
}

func TestComposerStaleFetchDropped(t *testing.T) {
	store := newFakeStore()
	store.plans[plan.Monday] = &types.TrainingPlan{
		ID:      uuid.New(),
		Weekday: plan.Monday,
		Exercises: datatypes.NewJSONSlice([]types.ExerciseEntry{
			{Name: "Supino Reto", Group: "Peito", Sets: 3, Reps: 12},
		}),
	}
	store.plans[plan.Tuesday] = &types.TrainingPlan{
		ID:      uuid.New(),
		Weekday: plan.Tuesday,
		Exercises: datatypes.NewJSONSlice([]types.ExerciseEntry{
			{Name: "Remada Curvada", Group: "Costas", Sets: 3, Reps: 12},
		}),
	}
	mondayGate := make(chan struct{})
	store.fetchGates[plan.Monday] = mondayGate

	c := newTestComposer(t, store)

	slow := make(chan error, 1)
	go func() {
		slow <- c.SelectWeekday(context.Background(), plan.Monday)
	}()

	// Wait until the slow selection has claimed its sequence number, then
	// switch away from it.
	deadline := time.After(2 * time.Second)
	for c.Snapshot().Weekday != plan.Monday {
		select {
		case <-deadline:
			t.Fatalf("slow selection never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if err := c.SelectWeekday(context.Background(), plan.Tuesday); err != nil {
		t.Fatalf("SelectWeekday(Tuesday): %v", err)
	}

	close(mondayGate)
	if err := <-slow; err != nil {
		t.Fatalf("SelectWeekday(Monday): %v", err)
	}

	snap := c.Snapshot()
	if snap.Weekday != plan.Tuesday {
		t.Fatalf("expected session on Tuesday, got %s", snap.Weekday)
	}
	if len(snap.Draft) != 1 || snap.Draft[0].Group != "Costas" {
		t.Fatalf("stale Monday response overwrote the Tuesday draft: %+v", snap.Draft)
	}
}

func TestComposerSwitchDiscardsDraft(t *testing.T) {
	c := newTestComposer(t, newFakeStore())
	if err := c.SelectWeekday(context.Background(), plan.Monday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	if _, err := c.AddExercise("Supino Reto", "Peito"); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if err := c.SelectWeekday(context.Background(), plan.Tuesday); err != nil {
		t.Fatalf("SelectWeekday: %v", err)
	}
	snap := c.Snapshot()
	if len(snap.Draft) != 0 || snap.State != StateLoaded {
		t.Fatalf("unsaved edits must be discarded on switch: state=%s draft=%+v", snap.State, snap.Draft)
	}
}

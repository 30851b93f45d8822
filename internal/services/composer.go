package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/platform/apierr"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

// ComposerState tracks where a composing session sits between loads and saves.
type ComposerState string

const (
	// StateIdle means no weekday is selected yet.
	StateIdle ComposerState = "idle"
	// StateLoaded means the draft mirrors what is persisted.
	StateLoaded ComposerState = "loaded"
	// StateDirty means the draft has unsaved edits.
	StateDirty ComposerState = "dirty"
	// StateSaving means a save is in flight.
	StateSaving ComposerState = "saving"
)

// DraftEntry is an exercise row inside a composing session. LocalID exists
// only in memory so rows can be addressed before they are ever persisted.
type DraftEntry struct {
	LocalID int64 `json:"localId"`
	types.ExerciseEntry
}

// DraftUpdate carries the editable fields of a draft row. Nil fields are left
// untouched. Name and group are fixed at insertion time.
type DraftUpdate struct {
	Sets        *int    `json:"sets"`
	Reps        *int    `json:"reps"`
	RestSeconds *int    `json:"restSeconds"`
	Notes       *string `json:"notes"`
}

const (
	defaultSets        = 3
	defaultReps        = 12
	defaultRestSeconds = 60
)

// Composer is a per-student editing session for one coach. Selecting a
// weekday loads the persisted plan into a draft; edits accumulate in memory
// and hit storage only on Save. A session survives request boundaries, so all
// methods are safe for concurrent use.
type Composer struct {
	log         *logger.Logger
	store       PlanService
	studentID   uuid.UUID
	studentName string

	mu        sync.Mutex
	state     ComposerState
	weekday   types.Weekday
	draft     []DraftEntry
	nextLocal int64
	fetchSeq  uint64
	lastError string
}

func NewComposer(log *logger.Logger, store PlanService, studentID uuid.UUID, studentName string) *Composer {
	return &Composer{
		log:         log.With("service", "Composer", "student_id", studentID.String()),
		store:       store,
		studentID:   studentID,
		studentName: studentName,
		state:       StateIdle,
	}
}

// ComposerSnapshot is a point-in-time copy of the session for handlers to
// serialize. Draft rows are copied, never aliased.
type ComposerSnapshot struct {
	State     ComposerState `json:"state"`
	Weekday   types.Weekday `json:"weekday,omitempty"`
	Draft     []DraftEntry  `json:"draft"`
	LastError string        `json:"lastError,omitempty"`
}

func (c *Composer) Snapshot() ComposerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComposerSnapshot{
		State:     c.state,
		Weekday:   c.weekday,
		Draft:     append([]DraftEntry(nil), c.draft...),
		LastError: c.lastError,
	}
}

// SelectWeekday switches the session to a weekday and loads its persisted
// plan. Any unsaved draft is discarded without confirmation. The fetch runs
// outside the lock; if another selection lands first, the slower response is
// dropped on arrival.
func (c *Composer) SelectWeekday(ctx context.Context, weekday types.Weekday) error {
	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	c.weekday = weekday
	c.draft = nil
	c.state = StateIdle
	c.lastError = ""
	c.mu.Unlock()

	persisted, err := c.store.Fetch(ctx, c.studentID, weekday)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.fetchSeq {
		// A newer selection owns the session now.
		return nil
	}
	if err != nil {
		c.state = StateIdle
		c.lastError = err.Error()
		return err
	}
	c.draft = c.draftFromPlan(persisted)
	c.state = StateLoaded
	return nil
}

func (c *Composer) draftFromPlan(p *types.TrainingPlan) []DraftEntry {
	if p == nil {
		return []DraftEntry{}
	}
	draft := make([]DraftEntry, 0, len(p.Exercises))
	for _, entry := range p.Exercises {
		c.nextLocal++
		draft = append(draft, DraftEntry{LocalID: c.nextLocal, ExerciseEntry: entry})
	}
	return draft
}

// AddExercise appends a row with default volume. The name and group come from
// the exercise library and are not editable afterwards.
func (c *Composer) AddExercise(name, group string) (DraftEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return DraftEntry{}, fmt.Errorf("%w: select a weekday before adding exercises", apierr.ErrInvalidArgument)
	}
	if c.state == StateSaving {
		return DraftEntry{}, apierr.ErrSaveInProgress
	}
	c.nextLocal++
	entry := DraftEntry{
		LocalID: c.nextLocal,
		ExerciseEntry: types.ExerciseEntry{
			Name:        name,
			Group:       group,
			Sets:        defaultSets,
			Reps:        defaultReps,
			RestSeconds: defaultRestSeconds,
		},
	}
	c.draft = append(c.draft, entry)
	c.state = StateDirty
	return entry, nil
}

// RemoveExercise drops a draft row. Unknown local IDs are a no-op and do not
// mark the draft dirty.
func (c *Composer) RemoveExercise(localID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaving {
		return apierr.ErrSaveInProgress
	}
	for i, entry := range c.draft {
		if entry.LocalID == localID {
			c.draft = append(c.draft[:i], c.draft[i+1:]...)
			c.state = StateDirty
			return nil
		}
	}
	return nil
}

// UpdateExercise adjusts the volume fields of a draft row.
func (c *Composer) UpdateExercise(localID int64, update DraftUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaving {
		return apierr.ErrSaveInProgress
	}
	for i := range c.draft {
		if c.draft[i].LocalID != localID {
			continue
		}
		changed := false
		if update.Sets != nil && *update.Sets != c.draft[i].Sets {
			c.draft[i].Sets = *update.Sets
			changed = true
		}
		if update.Reps != nil && *update.Reps != c.draft[i].Reps {
			c.draft[i].Reps = *update.Reps
			changed = true
		}
		if update.RestSeconds != nil && *update.RestSeconds != c.draft[i].RestSeconds {
			c.draft[i].RestSeconds = *update.RestSeconds
			changed = true
		}
		if update.Notes != nil && *update.Notes != c.draft[i].Notes {
			c.draft[i].Notes = *update.Notes
			changed = true
		}
		if changed {
			c.state = StateDirty
		}
		return nil
	}
	return fmt.Errorf("%w: no draft exercise with id %d", apierr.ErrNotFound, localID)
}

// Save persists the draft as the weekday's plan. An empty draft is rejected
// before any I/O. Only one save may be in flight; callers racing it get
// ErrSaveInProgress rather than a queue. On failure the draft and its edits
// stay intact so the coach can retry.
func (c *Composer) Save(ctx context.Context) (*types.TrainingPlan, error) {
	c.mu.Lock()
	if c.state == StateSaving {
		c.mu.Unlock()
		return nil, apierr.ErrSaveInProgress
	}
	if c.state == StateIdle {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: select a weekday before saving", apierr.ErrInvalidArgument)
	}
	if len(c.draft) == 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: a plan needs at least one exercise", apierr.ErrInvalidArgument)
	}
	seq := c.fetchSeq
	weekday := c.weekday
	exercises := make([]types.ExerciseEntry, len(c.draft))
	for i, entry := range c.draft {
		exercises[i] = entry.ExerciseEntry
	}
	c.state = StateSaving
	c.lastError = ""
	c.mu.Unlock()

	saved, err := c.store.Save(ctx, c.studentID, weekday, PlanName(weekday, c.studentName), exercises)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.fetchSeq {
		// The session moved on to another weekday while the save ran. The
		// write itself stands; only the session state belongs to the new
		// selection.
		return saved, err
	}
	if err != nil {
		c.state = StateDirty
		c.lastError = err.Error()
		c.log.Warn("plan save failed", "weekday", weekday, "error", err)
		return nil, err
	}
	c.draft = c.draftFromPlan(saved)
	c.state = StateLoaded
	return saved, nil
}

// ComposerService hands out one composing session per (coach, student) pair
// so a coach's edits survive across requests.
type ComposerService interface {
	Session(ctx context.Context, coachID, studentID uuid.UUID) (*Composer, error)
	Drop(coachID, studentID uuid.UUID)
}

type composerService struct {
	log      *logger.Logger
	store    PlanService
	students StudentService

	mu       sync.Mutex
	sessions map[sessionKey]*Composer
}

type sessionKey struct {
	coachID   uuid.UUID
	studentID uuid.UUID
}

func NewComposerService(log *logger.Logger, store PlanService, students StudentService) ComposerService {
	return &composerService{
		log:      log.With("service", "ComposerService"),
		store:    store,
		students: students,
		sessions: make(map[sessionKey]*Composer),
	}
}

func (cs *composerService) Session(ctx context.Context, coachID, studentID uuid.UUID) (*Composer, error) {
	key := sessionKey{coachID: coachID, studentID: studentID}

	cs.mu.Lock()
	if existing, ok := cs.sessions[key]; ok {
		cs.mu.Unlock()
		return existing, nil
	}
	cs.mu.Unlock()

	student, err := cs.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("%w: student %s", apierr.ErrNotFound, studentID)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if existing, ok := cs.sessions[key]; ok {
		return existing, nil
	}
	session := NewComposer(cs.log, cs.store, studentID, student.Name)
	cs.sessions[key] = session
	return session, nil
}

func (cs *composerService) Drop(coachID, studentID uuid.UUID) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.sessions, sessionKey{coachID: coachID, studentID: studentID})
}

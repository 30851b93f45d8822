package plan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ExerciseEntry is one row of a day's plan as it is persisted. Draft-local
// identifiers never appear here; persisted identity is the (student, weekday)
// pair plus array position.
type ExerciseEntry struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
	Notes       string `json:"notes"`
}

// TrainingPlan holds the ordered exercise list assigned to one student for one
// weekday. At most one row exists per (student_id, weekday); saves replace the
// whole exercise list.
type TrainingPlan struct {
	ID        uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_training_plan_student_weekday" json:"student_id"`
	Weekday   Weekday                            `gorm:"type:text;not null;uniqueIndex:idx_training_plan_student_weekday" json:"weekday"`
	PlanName  string                             `gorm:"not null;column:plan_name" json:"plan_name"`
	Exercises datatypes.JSONSlice[ExerciseEntry] `gorm:"type:jsonb;not null" json:"exercises"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TrainingPlan) TableName() string { return "training_plan" }

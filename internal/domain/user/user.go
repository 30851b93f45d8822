package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCoach   = "coach"
	RoleStudent = "student"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password string    `gorm:"not null;column:password" json:"-"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	Role     string    `gorm:"not null;default:student;column:role" json:"role"`

	// Profile fields shown in the composer header and edited on the
	// student's own profile screen.
	WeightKg *float64 `gorm:"column:weight_kg" json:"weight_kg,omitempty"`
	HeightCm *float64 `gorm:"column:height_cm" json:"height_cm,omitempty"`
	Age      *int     `gorm:"column:age" json:"age,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

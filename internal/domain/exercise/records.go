package exercise

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Strength is the read-only history view used for weight selection.
type Strength struct {
	LastWeightKg float64
	MaxWeightKg  float64
	LastReps     int
}

// StrengthRecord is the last logged performance of one exercise for one user.
type StrengthRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_strength_user_exercise,priority:1" json:"user_id"`
	ExerciseName string    `gorm:"not null;uniqueIndex:idx_strength_user_exercise,priority:2;column:exercise_name" json:"exercise_name"`
	LastWeightKg float64   `gorm:"column:last_weight_kg" json:"last_weight_kg"`
	MaxWeightKg  float64   `gorm:"column:max_weight_kg" json:"max_weight_kg"`
	LastReps     int       `gorm:"column:last_reps" json:"last_reps"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (StrengthRecord) TableName() string { return "strength_record" }

func (r StrengthRecord) Strength() Strength {
	return Strength{LastWeightKg: r.LastWeightKg, MaxWeightKg: r.MaxWeightKg, LastReps: r.LastReps}
}

// ProgramKeyword maps a custom training-program goal to extra search phrases.
type ProgramKeyword struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Goal      string         `gorm:"not null;uniqueIndex;column:goal" json:"goal"`
	Phrases   datatypes.JSON `gorm:"column:phrases" json:"phrases"`
	Active    bool           `gorm:"not null;column:active" json:"active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ProgramKeyword) TableName() string { return "program_keyword" }

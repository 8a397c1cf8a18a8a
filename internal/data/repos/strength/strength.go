package strength

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/pkg/dbctx"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

type Repo interface {
	// StrengthFor returns the user's history keyed by exercise name.
	StrengthFor(ctx context.Context, userID uuid.UUID) (map[string]exercise.Strength, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*exercise.StrengthRecord, error)
	// Record stores the latest set for an exercise and raises the max when it is beaten.
	Record(dbc dbctx.Context, userID uuid.UUID, exerciseName string, weightKg float64, reps int) (*exercise.StrengthRecord, error)
	DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRepo(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "StrengthRepo")}
}

func (r *repo) tx(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db)
}

func (r *repo) StrengthFor(ctx context.Context, userID uuid.UUID) (map[string]exercise.Strength, error) {
	rows, err := r.GetByUserID(dbctx.New(ctx), userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]exercise.Strength, len(rows))
	for _, row := range rows {
		out[row.ExerciseName] = row.Strength()
	}
	return out, nil
}

func (r *repo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*exercise.StrengthRecord, error) {
	var rows []*exercise.StrengthRecord
	if userID == uuid.Nil {
		return rows, nil
	}
	if err := r.tx(dbc).
		Where("user_id = ?", userID).
		Order("exercise_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Record(dbc dbctx.Context, userID uuid.UUID, exerciseName string, weightKg float64, reps int) (*exercise.StrengthRecord, error) {
	name := strings.TrimSpace(exerciseName)
	if userID == uuid.Nil || name == "" {
		return nil, errors.New("strength record requires user id and exercise name")
	}
	var out *exercise.StrengthRecord
	err := r.tx(dbc).Transaction(func(tx *gorm.DB) error {
		var row exercise.StrengthRecord
		err := tx.Where("user_id = ? AND exercise_name = ?", userID, name).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = exercise.StrengthRecord{
				ID:           uuid.New(),
				UserID:       userID,
				ExerciseName: name,
				LastWeightKg: weightKg,
				MaxWeightKg:  weightKg,
				LastReps:     reps,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			updates := map[string]interface{}{
				"last_weight_kg": weightKg,
				"last_reps":      reps,
			}
			if weightKg > row.MaxWeightKg {
				updates["max_weight_kg"] = weightKg
			}
			if err := tx.Model(&row).Updates(updates).Error; err != nil {
				return err
			}
			row.LastWeightKg, row.LastReps = weightKg, reps
			if weightKg > row.MaxWeightKg {
				row.MaxWeightKg = weightKg
			}
		}
		out = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).Where("user_id = ?", userID).Delete(&exercise.StrengthRecord{}).Error
}

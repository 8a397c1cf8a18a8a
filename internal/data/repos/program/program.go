package program

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
	"github.com/yungbote/trainwise-backend/internal/pkg/dbctx"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

type Repo interface {
	// PhrasesForGoals returns search phrases for the active custom programs
	// among goals, keyed by lowercase goal.
	PhrasesForGoals(ctx context.Context, goals []string) (map[string][]string, error)
	Upsert(dbc dbctx.Context, goal string, phrases []string, active bool) (*exercise.ProgramKeyword, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRepo(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "ProgramKeywordRepo")}
}

func (r *repo) tx(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db)
}

func normalizeGoal(g string) string {
	return strings.ToLower(strings.TrimSpace(g))
}

func (r *repo) PhrasesForGoals(ctx context.Context, goals []string) (map[string][]string, error) {
	keys := make([]string, 0, len(goals))
	for _, g := range goals {
		if k := normalizeGoal(g); k != "" {
			keys = append(keys, k)
		}
	}
	out := map[string][]string{}
	if len(keys) == 0 {
		return out, nil
	}
	var rows []*exercise.ProgramKeyword
	if err := r.db.WithContext(ctx).
		Where("goal IN ? AND active = ?", keys, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		var phrases []string
		if len(row.Phrases) > 0 {
			if err := json.Unmarshal(row.Phrases, &phrases); err != nil {
				r.log.Warn("Skipping malformed program phrases", "goal", row.Goal, "error", err)
				continue
			}
		}
		out[row.Goal] = phrases
	}
	return out, nil
}

func (r *repo) Upsert(dbc dbctx.Context, goal string, phrases []string, active bool) (*exercise.ProgramKeyword, error) {
	key := normalizeGoal(goal)
	if key == "" {
		return nil, errors.New("program keyword requires a goal")
	}
	raw, err := json.Marshal(phrases)
	if err != nil {
		return nil, err
	}
	row := &exercise.ProgramKeyword{
		ID:      uuid.New(),
		Goal:    key,
		Phrases: datatypes.JSON(raw),
		Active:  active,
	}
	if err := r.tx(dbc).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "goal"}},
		DoUpdates: clause.AssignmentColumns([]string{"phrases", "active", "updated_at"}),
	}).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/trainwise-backend/internal/domain/exercise"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&exercise.StrengthRecord{},
		&exercise.ProgramKeyword{},
	)
}

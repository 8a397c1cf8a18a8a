package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/trainwise-backend/internal/data/repos/program"
	"github.com/yungbote/trainwise-backend/internal/data/repos/strength"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

type StrengthRepo = strength.Repo
type ProgramRepo = program.Repo

type Repos struct {
	Strength StrengthRepo
	Program  ProgramRepo
}

func New(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Strength: strength.NewRepo(db, log),
		Program:  program.NewRepo(db, log),
	}
}

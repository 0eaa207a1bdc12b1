package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/personamatch-backend/internal/data/repos"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type Repos struct {
	Product         repos.ProductRepo
	Persona         repos.PersonaRepo
	MatchRecord     repos.MatchRecordRepo
	SimulationRun   repos.SimulationRunRepo
	InsightSnapshot repos.InsightSnapshotRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Product:         repos.NewProductRepo(db, log),
		Persona:         repos.NewPersonaRepo(db, log),
		MatchRecord:     repos.NewMatchRecordRepo(db, log),
		SimulationRun:   repos.NewSimulationRunRepo(db, log),
		InsightSnapshot: repos.NewInsightSnapshotRepo(db, log),
	}
}

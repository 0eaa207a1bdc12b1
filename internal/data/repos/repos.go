package repos

import (
	"github.com/yungbote/personamatch-backend/internal/data/repos/analytics"
	"github.com/yungbote/personamatch-backend/internal/data/repos/catalog"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProductRepo = catalog.ProductRepo
type PersonaRepo = catalog.PersonaRepo
type MatchRecordRepo = catalog.MatchRecordRepo

type SimulationRunRepo = analytics.SimulationRunRepo
type InsightSnapshotRepo = analytics.InsightSnapshotRepo

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, baseLog)
}
func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	return catalog.NewPersonaRepo(db, baseLog)
}
func NewMatchRecordRepo(db *gorm.DB, baseLog *logger.Logger) MatchRecordRepo {
	return catalog.NewMatchRecordRepo(db, baseLog)
}

func NewSimulationRunRepo(db *gorm.DB, baseLog *logger.Logger) SimulationRunRepo {
	return analytics.NewSimulationRunRepo(db, baseLog)
}
func NewInsightSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) InsightSnapshotRepo {
	return analytics.NewInsightSnapshotRepo(db, baseLog)
}

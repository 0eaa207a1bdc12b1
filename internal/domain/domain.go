package domain

import (
	"github.com/yungbote/personamatch-backend/internal/domain/analytics"
	"github.com/yungbote/personamatch-backend/internal/domain/catalog"
)

const (
	GenderFemale = catalog.GenderFemale
	GenderMale   = catalog.GenderMale
	RosterSize   = catalog.RosterSize

	SnapshotDateLayout = analytics.SnapshotDateLayout
)

type (
	Product           = catalog.Product
	ExtractedFeatures = catalog.ExtractedFeatures
	Persona           = catalog.Persona
	MatchRecord       = catalog.MatchRecord

	SimulationRun   = analytics.SimulationRun
	InsightSnapshot = analytics.InsightSnapshot
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&Product{},
		&Persona{},
		&MatchRecord{},
		&SimulationRun{},
		&InsightSnapshot{},
	}
}

package passing

import (
	"sort"

	"github.com/nstehr/striker/striker-core/model"
)

// Evaluation is the read-only result of one generator tick.
type Evaluation struct {
	division  model.PitchDivision
	passes    ZonePassMap
	rater     Rater
	speed     SpeedModel
	timestamp float64
}

// BestPassOnField returns the highest rated pass over every zone.
func (e *Evaluation) BestPassOnField() PassWithRating {
	return bestOf(e.division.AllZoneIDs(), e.passes)
}

// BestPassInZones returns the highest rated pass among zones, or NoPass for
// an empty set.
func (e *Evaluation) BestPassInZones(zones []model.ZoneID) PassWithRating {
	return bestOf(zones, e.passes)
}

// RankZonesForReceiving orders zones from best to worst place to receive a
// pass coming from ref. The order only depends on the world and ref, so
// callers that need stable positioning compute it once and keep it.
func (e *Evaluation) RankZonesForReceiving(world *model.World, ref model.Point) []model.ZoneID {
	ids := e.division.AllZoneIDs()
	scores := make(map[model.ZoneID]float64, len(ids))
	for _, id := range ids {
		zone := e.division.Zone(id)
		pass := e.speed.PassTo(ref, zone.Center())
		scores[id] = e.rater.Rate(world, pass, &zone)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return scores[ids[i]] > scores[ids[j]]
	})
	return ids
}

// Passes returns a copy of the per-zone passes.
func (e *Evaluation) Passes() ZonePassMap { return e.passes.clone() }

func (e *Evaluation) Timestamp() float64 { return e.timestamp }

func bestOf(zones []model.ZoneID, passes ZonePassMap) PassWithRating {
	best := NoPass()
	found := false
	for _, id := range zones {
		p := mustGet(passes, id)
		if !found || p.Rating > best.Rating {
			best = p
			found = true
		}
	}
	return best
}

package passing

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/model"
)

// ZonePassMap holds one pass per zone of a pitch division.
type ZonePassMap map[model.ZoneID]PassWithRating

func (m ZonePassMap) clone() ZonePassMap {
	c := make(ZonePassMap, len(m))
	for id, p := range m {
		c[id] = p
	}
	return c
}

// Generator keeps the best known pass in every zone and improves it a little
// each tick. It never restarts: a zone's pass only changes when a strictly
// better candidate turns up, which keeps receivers from jumping around.
//
// A Generator is owned by a single goroutine.
type Generator struct {
	division  model.PitchDivision
	rater     Rater
	speed     SpeedModel
	optimizer GradientAscent
	steps     int
	rng       *rand.Rand

	current ZonePassMap
}

func NewGenerator(division model.PitchDivision, rater Rater, phys config.Physics, cfg config.Passing, seed int64) *Generator {
	return &Generator{
		division:  division,
		rater:     rater,
		speed:     NewSpeedModel(phys, cfg),
		optimizer: NewGradientAscent(cfg.GradientStepSize),
		steps:     cfg.GradientStepsPerIter,
		rng:       newRand(seed),
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// GeneratePassEvaluation samples, optimizes and reconciles one pass per zone
// against world and returns an immutable snapshot of the result.
func (g *Generator) GeneratePassEvaluation(world *model.World) *Evaluation {
	generated := g.samplePasses(world)
	if g.current == nil {
		g.current = generated.clone()
	}
	optimized := g.optimizePasses(world, generated)
	g.updatePasses(world, optimized)

	if best := bestOf(g.division.AllZoneIDs(), g.current); best.Rating > 0 {
		slog.Debug("pass evaluation generated",
			"timestamp", world.Timestamp,
			"bestRating", best.Rating,
			"bestDestination", best.Pass.Destination,
		)
	}

	return &Evaluation{
		division:  g.division,
		passes:    g.current.clone(),
		rater:     g.rater,
		speed:     g.speed,
		timestamp: world.Timestamp,
	}
}

// samplePasses draws one uniform destination per zone.
func (g *Generator) samplePasses(world *model.World) ZonePassMap {
	ball := world.Ball.Position
	passes := make(ZonePassMap)
	for _, id := range g.division.AllZoneIDs() {
		zone := g.division.Zone(id)
		dest := model.Point{
			X: zone.XMin + g.rng.Float64()*zone.Width(),
			Y: zone.YMin + g.rng.Float64()*zone.Height(),
		}
		pass := g.speed.PassTo(ball, dest)
		passes[id] = PassWithRating{Pass: pass, Rating: g.rater.Rate(world, pass, &zone)}
	}
	return passes
}

// optimizePasses runs gradient ascent on every zone's sampled destination.
func (g *Generator) optimizePasses(world *model.World, generated ZonePassMap) ZonePassMap {
	ball := world.Ball.Position
	optimized := make(ZonePassMap)
	for _, id := range g.division.AllZoneIDs() {
		zone := g.division.Zone(id)
		objective := func(arr [NumParams]float64) float64 {
			dest := model.Point{X: arr[0], Y: arr[1]}
			return g.rater.Rate(world, FromArray(ball, arr, g.speed.Speed(ball, dest)), &zone)
		}

		start := mustGet(generated, id).Pass.Array()
		arr := g.optimizer.Maximize(objective, start, g.steps)
		pass := g.speed.PassTo(ball, model.Point{X: arr[0], Y: arr[1]})
		optimized[id] = PassWithRating{Pass: pass, Rating: g.rater.Rate(world, pass, &zone)}
	}
	return optimized
}

// updatePasses re-derives each zone's previous best against the current ball
// position, re-rates it, and keeps it unless the optimized candidate is
// strictly better.
func (g *Generator) updatePasses(world *model.World, optimized ZonePassMap) {
	ball := world.Ball.Position
	for _, id := range g.division.AllZoneIDs() {
		zone := g.division.Zone(id)
		prev := mustGet(g.current, id)
		cand := mustGet(optimized, id)

		arr := prev.Pass.Array()
		revalidated := FromArray(ball, arr, g.speed.Speed(ball, prev.Pass.Destination))
		rating := g.rater.Rate(world, revalidated, &zone)

		if rating < cand.Rating {
			g.current[id] = cand
		} else {
			g.current[id] = PassWithRating{Pass: revalidated, Rating: rating}
		}
	}
}

// mustGet panics on a missing zone: the maps are always built from the same
// division, so a miss means the optimizer state is corrupt.
func mustGet(m ZonePassMap, id model.ZoneID) PassWithRating {
	p, ok := m[id]
	if !ok {
		panic(fmt.Sprintf("zone %d missing from pass map", id))
	}
	return p
}

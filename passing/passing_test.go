package passing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/model"
)

func testWorld() *model.World {
	return &model.World{
		Timestamp: 1,
		GameState: model.GamePlaying,
		Field:     model.DivisionBField(),
		Ball:      model.Ball{Position: model.Point{X: -1, Y: 0.5}},
		Friendly: model.Team{Robots: []model.Robot{
			{ID: 0, Position: model.Point{X: -1.2, Y: 0.5}},
			{ID: 1, Position: model.Point{X: 1.5, Y: 1.5}},
			{ID: 2, Position: model.Point{X: 2.0, Y: -1.0}},
		}},
		Enemy: model.Team{Robots: []model.Robot{
			{ID: 0, Position: model.Point{X: 0.5, Y: 0.8}},
			{ID: 1, Position: model.Point{X: 3.5, Y: 0}},
		}},
	}
}

func plateau(value float64) Rater {
	return RaterFunc(func(*model.World, Pass, *model.Rect) float64 { return value })
}

func TestSpeedModelMatchesClosedForm(t *testing.T) {
	cfg := config.Default()
	m := NewSpeedModel(cfg.Physics, cfg.Passing)

	c2 := cfg.Physics.FrictionTransitionFactor * cfg.Physics.FrictionTransitionFactor
	r := cfg.Physics.RollingDeceleration
	s := cfg.Physics.SlidingDeceleration
	k := c2 - r*c2/s + r/s
	assert.InDelta(t, k, m.Constant(), 1e-12)

	ball := model.Point{X: 0, Y: 0}
	dest := model.Point{X: 3, Y: 4}
	vf := cfg.Passing.MaxReceiveSpeed
	want := math.Sqrt((vf*vf + 2*r*5) / k)
	assert.InDelta(t, want, m.Speed(ball, dest), 1e-12)
}

func TestSpeedModelClamps(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"defaults", 1.0, 5.5},
		{"narrow", 3.0, 3.2},
		{"high floor", 4.0, 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Passing.MinPassSpeed = tt.min
			cfg.Passing.MaxPassSpeed = tt.max
			m := NewSpeedModel(cfg.Physics, cfg.Passing)

			for x := -10.0; x <= 10.0; x += 0.5 {
				for y := -10.0; y <= 10.0; y += 2.5 {
					v := m.Speed(model.Point{}, model.Point{X: x, Y: y})
					assert.GreaterOrEqual(t, v, tt.min)
					assert.LessOrEqual(t, v, tt.max)
				}
			}
		})
	}
}

func TestPassOrientations(t *testing.T) {
	p := Pass{Origin: model.Point{X: 0, Y: 0}, Destination: model.Point{X: 0, Y: 2}, Speed: 3}
	assert.InDelta(t, math.Pi/2, p.PasserOrientation().Radians(), 1e-9)
	assert.InDelta(t, -math.Pi/2, p.ReceiverOrientation().Radians(), 1e-9)
	assert.InDelta(t, 2.0, p.Length(), 1e-9)

	back := FromArray(p.Origin, p.Array(), p.Speed)
	assert.Equal(t, p, back)
}

func TestGradientAscentClimbs(t *testing.T) {
	g := NewGradientAscent(0.1)
	f := func(a [NumParams]float64) float64 {
		return -(a[0]-1)*(a[0]-1) - (a[1]+2)*(a[1]+2)
	}

	got := g.Maximize(f, [NumParams]float64{0, 0}, 300)
	assert.InDelta(t, 1.0, got[0], 0.2)
	assert.InDelta(t, -2.0, got[1], 0.2)
}

func TestGradientAscentFlatObjectiveStays(t *testing.T) {
	g := NewGradientAscent(0.1)
	start := [NumParams]float64{1.5, -0.25}
	got := g.Maximize(func([NumParams]float64) float64 { return 0.3 }, start, 10)
	assert.Equal(t, start, got)
}

func TestFieldRaterBounded(t *testing.T) {
	cfg := config.Default()
	rater := NewFieldRater(cfg.Physics, cfg.Passing)
	speed := NewSpeedModel(cfg.Physics, cfg.Passing)
	world := testWorld()
	zone := model.NewEighteenZoneDivision(world.Field).Zone(4)

	for x := -6.0; x <= 6.0; x += 0.75 {
		for y := -4.0; y <= 4.0; y += 0.75 {
			pass := speed.PassTo(world.Ball.Position, model.Point{X: x, Y: y})
			for _, z := range []*model.Rect{nil, &zone} {
				rating := rater.Rate(world, pass, z)
				assert.GreaterOrEqual(t, rating, 0.0)
				assert.LessOrEqual(t, rating, 1.0)
			}
		}
	}
}

func TestFieldRaterPenalizesInterceptableLane(t *testing.T) {
	cfg := config.Default()
	rater := NewFieldRater(cfg.Physics, cfg.Passing)
	speed := NewSpeedModel(cfg.Physics, cfg.Passing)

	world := &model.World{
		Field: model.DivisionBField(),
		Ball:  model.Ball{Position: model.Point{X: 0, Y: 0}},
		Friendly: model.Team{Robots: []model.Robot{
			{ID: 0, Position: model.Point{X: -0.1, Y: 0}},
			{ID: 1, Position: model.Point{X: 2, Y: 0}},
		}},
	}
	pass := speed.PassTo(world.Ball.Position, model.Point{X: 2, Y: 0})
	open := rater.Rate(world, pass, nil)

	world.Enemy = model.Team{Robots: []model.Robot{{ID: 0, Position: model.Point{X: 1, Y: 0}}}}
	blocked := rater.Rate(world, pass, nil)

	assert.Greater(t, open, 0.0)
	assert.Less(t, blocked, open)
}

func TestGeneratorCoversEveryZone(t *testing.T) {
	cfg := config.Default()
	world := testWorld()

	divisions := map[string]model.PitchDivision{
		"eighteen": model.NewEighteenZoneDivision(world.Field),
		"eight":    model.NewEightZoneDivision(world.Field),
	}

	for name, division := range divisions {
		t.Run(name, func(t *testing.T) {
			gen := NewGenerator(division, NewFieldRater(cfg.Physics, cfg.Passing), cfg.Physics, cfg.Passing, config.DefaultSeed)
			for range 3 {
				passes := gen.GeneratePassEvaluation(world).Passes()
				require.Len(t, passes, len(division.AllZoneIDs()))
				for _, id := range division.AllZoneIDs() {
					_, ok := passes[id]
					assert.True(t, ok, "zone %d missing", id)
				}
			}
		})
	}
}

func TestGeneratorCoversEveryZoneWithEmptyTeams(t *testing.T) {
	cfg := config.Default()
	world := &model.World{Field: model.DivisionBField()}
	division := model.NewEightZoneDivision(world.Field)
	gen := NewGenerator(division, NewFieldRater(cfg.Physics, cfg.Passing), cfg.Physics, cfg.Passing, config.DefaultSeed)

	passes := gen.GeneratePassEvaluation(world).Passes()
	assert.Len(t, passes, len(division.AllZoneIDs()))
}

func TestGeneratorIsReproducibleForSeed(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	division := model.NewEighteenZoneDivision(world.Field)
	rater := NewFieldRater(cfg.Physics, cfg.Passing)

	a := NewGenerator(division, rater, cfg.Physics, cfg.Passing, 7)
	b := NewGenerator(division, rater, cfg.Physics, cfg.Passing, 7)
	for range 3 {
		assert.Equal(t, a.GeneratePassEvaluation(world).Passes(), b.GeneratePassEvaluation(world).Passes())
	}
}

// On a static world the stored passes must not drift once nothing strictly
// better turns up. A plateau rater guarantees that.
func TestReconcileIdempotentOnStaticWorld(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	division := model.NewEighteenZoneDivision(world.Field)
	gen := NewGenerator(division, plateau(0.5), cfg.Physics, cfg.Passing, config.DefaultSeed)

	first := gen.GeneratePassEvaluation(world).Passes()
	second := gen.GeneratePassEvaluation(world).Passes()
	assert.Equal(t, first, second)
}

// The previous best is re-derived against the new ball position before it is
// re-rated, so its origin follows the ball even when it is kept.
func TestReconcileRederivesPreviousAgainstBall(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	division := model.NewEightZoneDivision(world.Field)
	gen := NewGenerator(division, plateau(0.5), cfg.Physics, cfg.Passing, config.DefaultSeed)
	speed := NewSpeedModel(cfg.Physics, cfg.Passing)

	first := gen.GeneratePassEvaluation(world).Passes()

	moved := *world
	moved.Ball.Position = model.Point{X: 1, Y: -1}
	second := gen.GeneratePassEvaluation(&moved).Passes()

	for id, prev := range first {
		got := second[id]
		assert.Equal(t, prev.Pass.Destination, got.Pass.Destination)
		assert.Equal(t, moved.Ball.Position, got.Pass.Origin)
		assert.InDelta(t, speed.Speed(moved.Ball.Position, prev.Pass.Destination), got.Pass.Speed, 1e-12)
	}
}

func TestReconcileNeverRegresses(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	division := model.NewEighteenZoneDivision(world.Field)
	rater := NewFieldRater(cfg.Physics, cfg.Passing)
	speed := NewSpeedModel(cfg.Physics, cfg.Passing)
	gen := NewGenerator(division, rater, cfg.Physics, cfg.Passing, config.DefaultSeed)

	prev := gen.GeneratePassEvaluation(world).Passes()
	for i := range 10 {
		next := *world
		next.Timestamp = world.Timestamp + float64(i+1)*0.033
		next.Ball.Position = model.Point{X: -1 + 0.05*float64(i), Y: 0.5 - 0.03*float64(i)}

		before := make(map[model.ZoneID]float64, len(prev))
		for id, p := range prev {
			zone := division.Zone(id)
			before[id] = rater.Rate(&next, speed.PassTo(next.Ball.Position, p.Pass.Destination), &zone)
		}

		prev = gen.GeneratePassEvaluation(&next).Passes()
		for id, p := range prev {
			assert.GreaterOrEqual(t, p.Rating, before[id], "zone %d regressed on tick %d", id, i)
		}
	}
}

func TestEvaluationBestPass(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	division := model.NewEighteenZoneDivision(world.Field)
	gen := NewGenerator(division, NewFieldRater(cfg.Physics, cfg.Passing), cfg.Physics, cfg.Passing, config.DefaultSeed)
	ev := gen.GeneratePassEvaluation(world)

	best := ev.BestPassOnField()
	for _, p := range ev.Passes() {
		assert.LessOrEqual(t, p.Rating, best.Rating)
	}

	subset := []model.ZoneID{2, 5, 9}
	inZones := ev.BestPassInZones(subset)
	passes := ev.Passes()
	for _, id := range subset {
		assert.LessOrEqual(t, passes[id].Rating, inZones.Rating)
	}

	assert.Equal(t, NoPass(), ev.BestPassInZones(nil))
	assert.Equal(t, world.Timestamp, ev.Timestamp())
}

func TestEvaluationUnknownZonePanics(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	gen := NewGenerator(model.NewEightZoneDivision(world.Field), plateau(0.2), cfg.Physics, cfg.Passing, config.DefaultSeed)
	ev := gen.GeneratePassEvaluation(world)

	assert.Panics(t, func() { ev.BestPassInZones([]model.ZoneID{42}) })
}

func TestEvaluationPassesIsACopy(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	gen := NewGenerator(model.NewEightZoneDivision(world.Field), plateau(0.2), cfg.Physics, cfg.Passing, config.DefaultSeed)
	ev := gen.GeneratePassEvaluation(world)

	passes := ev.Passes()
	passes[1] = PassWithRating{Rating: 1}
	assert.InDelta(t, 0.2, ev.Passes()[1].Rating, 1e-12)
}

func TestRankZonesForReceiving(t *testing.T) {
	cfg := config.Default()
	world := testWorld()
	division := model.NewEighteenZoneDivision(world.Field)

	upField := RaterFunc(func(w *model.World, p Pass, _ *model.Rect) float64 {
		return model.Clamp((p.Destination.X+w.Field.XLength/2)/w.Field.XLength, 0, 1)
	})
	gen := NewGenerator(division, upField, cfg.Physics, cfg.Passing, config.DefaultSeed)
	ev := gen.GeneratePassEvaluation(world)

	ranked := ev.RankZonesForReceiving(world, world.Ball.Position)
	require.Len(t, ranked, 18)
	assert.ElementsMatch(t, division.AllZoneIDs(), ranked)

	// Zones in the same column tie and keep their division order.
	assert.Equal(t, []model.ZoneID{6, 12, 18}, ranked[:3])
	assert.Equal(t, []model.ZoneID{1, 7, 13}, ranked[15:])

	assert.Equal(t, ranked, ev.RankZonesForReceiving(world, world.Ball.Position))
}

func TestReceiverSearchEmptyTeam(t *testing.T) {
	cfg := config.Default()
	search := NewReceiverSearch(plateau(0.9), cfg.Physics, cfg.Passing, config.DefaultSeed)
	world := &model.World{Field: model.DivisionBField()}

	got := search.BestPass(world, nil)
	assert.Equal(t, NoPass(), got)
	assert.Equal(t, model.Point{}, got.Pass.Origin)
	assert.Equal(t, 1.0, got.Pass.Speed)
}

func TestReceiverSearchIgnoresRobots(t *testing.T) {
	cfg := config.Default()
	search := NewReceiverSearch(plateau(0.9), cfg.Physics, cfg.Passing, config.DefaultSeed)
	world := testWorld()

	got := search.BestPass(world, []int{0, 1, 2})
	assert.Equal(t, NoPass(), got)

	_, ok := search.ReceivingPosition(1)
	assert.False(t, ok)
}

func TestReceiverSearchWarmStarts(t *testing.T) {
	cfg := config.Default()
	rater := NewFieldRater(cfg.Physics, cfg.Passing)
	search := NewReceiverSearch(rater, cfg.Physics, cfg.Passing, config.DefaultSeed)
	world := testWorld()

	best := search.BestPass(world, []int{0})
	assert.Greater(t, best.Rating, 0.0)
	assert.Equal(t, world.Ball.Position, best.Pass.Origin)

	for _, id := range []int{1, 2} {
		_, ok := search.ReceivingPosition(id)
		assert.True(t, ok, "robot %d has no warm start", id)
	}
	_, ok := search.ReceivingPosition(0)
	assert.False(t, ok)

	p1, _ := search.ReceivingPosition(1)
	p2, _ := search.ReceivingPosition(2)
	assert.Contains(t, []model.Point{p1, p2}, best.Pass.Destination)
}

func TestKeepAwayTargetStaysNearBall(t *testing.T) {
	cfg := config.Default()
	rater := NewFieldRater(cfg.Physics, cfg.Passing)
	speed := NewSpeedModel(cfg.Physics, cfg.Passing)
	world := testWorld()

	target := KeepAwayTarget(world, model.Point{X: 1.5, Y: 1.5}, rater, speed, cfg.KeepAway)
	assert.LessOrEqual(t, model.Dist(target, world.Ball.Position), cfg.KeepAway.SearchRadius+1e-9)
	assert.True(t, world.Field.FieldLines().Contains(target))
}

func TestKeepAwayTargetClampedToField(t *testing.T) {
	cfg := config.Default()
	rater := NewFieldRater(cfg.Physics, cfg.Passing)
	speed := NewSpeedModel(cfg.Physics, cfg.Passing)
	world := testWorld()
	world.Ball.Position = model.Point{X: 4.5, Y: 3}

	target := KeepAwayTarget(world, model.Point{X: 0, Y: 0}, rater, speed, cfg.KeepAway)
	assert.True(t, world.Field.FieldLines().Contains(target))
}

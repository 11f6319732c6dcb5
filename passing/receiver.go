package passing

import (
	"math/rand/v2"
	"slices"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/model"
)

// ReceiverSearch looks for the single best pass to any friendly robot. Each
// robot gets its own set of candidates (its position, last tick's best
// destination and a few Gaussian samples around it), so the search follows
// the robots rather than fixed zones.
type ReceiverSearch struct {
	rater     Rater
	speed     SpeedModel
	optimizer GradientAscent
	steps     int
	samples   int
	stdDev    float64
	rng       *rand.Rand

	// previous holds the warm start per robot id. Entries for robots that
	// left the field are never read again and are simply overwritten.
	previous map[int]model.Point
}

func NewReceiverSearch(rater Rater, phys config.Physics, cfg config.Passing, seed int64) *ReceiverSearch {
	return &ReceiverSearch{
		rater:     rater,
		speed:     NewSpeedModel(phys, cfg),
		optimizer: NewGradientAscent(cfg.GradientStepSize),
		steps:     cfg.GradientStepsPerIter,
		samples:   cfg.SamplesPerRobot,
		stdDev:    cfg.SampleStdDev,
		rng:       newRand(seed),
		previous:  make(map[int]model.Point),
	}
}

// BestPass returns the best pass to any friendly robot not in ignore, or
// NoPass when there is nobody to pass to.
func (s *ReceiverSearch) BestPass(world *model.World, ignore []int) PassWithRating {
	ball := world.Ball.Position
	objective := func(arr [NumParams]float64) float64 {
		dest := model.Point{X: arr[0], Y: arr[1]}
		return s.rater.Rate(world, FromArray(ball, arr, s.speed.Speed(ball, dest)), nil)
	}

	best := NoPass()
	for _, robot := range world.Friendly.Robots {
		if slices.Contains(ignore, robot.ID) {
			continue
		}

		bestForRobot := NoPass()
		for _, start := range s.sampleCandidates(robot) {
			arr := s.optimizer.Maximize(objective, [NumParams]float64{start.X, start.Y}, s.steps)
			pass := s.speed.PassTo(ball, model.Point{X: arr[0], Y: arr[1]})
			if rating := s.rater.Rate(world, pass, nil); rating > bestForRobot.Rating {
				bestForRobot = PassWithRating{Pass: pass, Rating: rating}
			}
		}

		s.previous[robot.ID] = bestForRobot.Pass.Destination
		if bestForRobot.Rating > best.Rating {
			best = bestForRobot
		}
	}
	return best
}

// ReceivingPosition is the robot's best destination from the last search.
func (s *ReceiverSearch) ReceivingPosition(robotID int) (model.Point, bool) {
	p, ok := s.previous[robotID]
	return p, ok
}

func (s *ReceiverSearch) sampleCandidates(robot model.Robot) []model.Point {
	candidates := make([]model.Point, 0, s.samples+2)
	candidates = append(candidates, robot.Position)
	if prev, ok := s.previous[robot.ID]; ok {
		candidates = append(candidates, prev)
	}
	for range s.samples {
		candidates = append(candidates, model.Point{
			X: robot.Position.X + s.rng.NormFloat64()*s.stdDev,
			Y: robot.Position.Y + s.rng.NormFloat64()*s.stdDev,
		})
	}
	return candidates
}

package passing

import (
	"math"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/model"
)

// Rater scores a pass in [0,1] against a world. zone, when non-nil, restricts
// good destinations to that rectangle. Implementations must be pure and
// deterministic: the optimizer differentiates them numerically.
type Rater interface {
	Rate(world *model.World, pass Pass, zone *model.Rect) float64
}

// RaterFunc adapts a plain function to Rater.
type RaterFunc func(world *model.World, pass Pass, zone *model.Rect) float64

func (f RaterFunc) Rate(world *model.World, pass Pass, zone *model.Rect) float64 {
	return f(world, pass, zone)
}

// FieldRater is the default scoring oracle. Each factor is a smooth value in
// [0,1] and the rating is their product.
type FieldRater struct {
	passing config.Passing
	physics config.Physics
}

func NewFieldRater(phys config.Physics, cfg config.Passing) *FieldRater {
	return &FieldRater{passing: cfg, physics: phys}
}

func (r *FieldRater) Rate(world *model.World, pass Pass, zone *model.Rect) float64 {
	rating := r.InField(world.Field, pass.Destination) *
		r.StaticPosition(world.Field, pass.Destination) *
		r.EnemySafety(world.Enemy, pass) *
		r.FriendlyCapability(world.Friendly, pass)
	if zone != nil {
		rating *= model.RectSigmoid(*zone, pass.Destination, r.passing.InZoneWidth)
	}
	return model.Clamp(rating, 0, 1)
}

// InField penalizes destinations near or past the field lines.
func (r *FieldRater) InField(field model.Field, p model.Point) float64 {
	return model.RectSigmoid(field.FieldLines().Expand(-model.RobotMaxRadius), p, 0.2)
}

// StaticPosition prefers destinations closer to the enemy goal.
func (r *FieldRater) StaticPosition(field model.Field, p model.Point) float64 {
	w := r.passing.StaticFieldWeight
	return (1 - w) + w*model.Sigmoid(p.X, -field.XLength/4, field.XLength/2)
}

// EnemySafety is low when some enemy can reach the pass line before the ball.
func (r *FieldRater) EnemySafety(enemy model.Team, pass Pass) float64 {
	line := model.Segment{Start: pass.Origin, End: pass.Destination}
	safety := 1.0
	for _, e := range enemy.Robots {
		closest := line.ClosestPoint(e.Position)
		ballTime := r.ballTravelTime(pass, model.Dist(pass.Origin, closest))
		reach := math.Max(0, model.Dist(e.Position, closest)-2*model.RobotMaxRadius)
		enemyTime := r.physics.EnemyReactionTime + reach/r.physics.RobotMaxSpeed
		safety = math.Min(safety, model.Sigmoid(enemyTime-ballTime, 0, r.passing.EnemyRiskWidth))
	}
	return safety
}

// FriendlyCapability is high when some friendly robot, other than the one
// closest to the ball, can reach the destination before the ball arrives.
func (r *FieldRater) FriendlyCapability(friendly model.Team, pass Pass) float64 {
	passer, hasPasser := friendly.NearestRobot(pass.Origin)
	ballTime := r.ballTravelTime(pass, pass.Length())
	best := 0.0
	for _, f := range friendly.Robots {
		if hasPasser && f.ID == passer.ID && len(friendly.Robots) > 1 {
			continue
		}
		robotTime := model.Dist(f.Position, pass.Destination) / r.physics.RobotMaxSpeed
		best = math.Max(best, model.Sigmoid(ballTime-robotTime, -r.passing.FriendlyReceiveTime, 1.0))
	}
	return best
}

// ballTravelTime approximates the time to cover dist with constant
// deceleration between the kick speed and the receive speed.
func (r *FieldRater) ballTravelTime(pass Pass, dist float64) float64 {
	avg := (pass.Speed + r.passing.MaxReceiveSpeed) / 2
	if avg <= 0 {
		return math.Inf(1)
	}
	return dist / avg
}

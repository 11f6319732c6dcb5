package passing

import (
	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/model"
)

const keepAwaySteps = 10

// KeepAwayTarget finds a spot near the ball, within cfg.SearchRadius and the
// field, from which passing to target is hardest for the enemy to intercept.
// The search starts at the ball.
func KeepAwayTarget(world *model.World, target model.Point, rater *FieldRater, speed SpeedModel, cfg config.KeepAway) model.Point {
	ball := world.Ball.Position
	field := world.Field.FieldLines().Expand(-model.RobotMaxRadius)

	constrain := func(arr [NumParams]float64) model.Point {
		p := model.Point{X: arr[0], Y: arr[1]}
		offset := p.Sub(ball)
		if offset.Len() > cfg.SearchRadius {
			p = ball.Add(offset.Normalize(cfg.SearchRadius))
		}
		return field.Clamp(p)
	}

	objective := func(arr [NumParams]float64) float64 {
		from := constrain(arr)
		return rater.EnemySafety(world.Enemy, speed.PassTo(from, target))
	}

	optimizer := NewGradientAscent(cfg.SearchRadius / keepAwaySteps)
	arr := optimizer.Maximize(objective, [NumParams]float64{ball.X, ball.Y}, keepAwaySteps)
	return constrain(arr)
}

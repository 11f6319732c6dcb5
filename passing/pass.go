package passing

import (
	"math"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/model"
)

// NumParams is the size of the optimizer's parameter vector: the pass
// destination's x and y. Origin and speed are always re-derived.
const NumParams = 2

// Pass is a candidate ball movement. It is a value type and never mutated
// after construction.
type Pass struct {
	Origin      model.Point `json:"origin"`
	Destination model.Point `json:"destination"`
	Speed       float64     `json:"speed"`
}

// PassWithRating pairs a pass with the oracle's score against one world.
type PassWithRating struct {
	Pass   Pass    `json:"pass"`
	Rating float64 `json:"rating"`
}

// NoPass is the zero-rated sentinel returned when no candidate exists.
func NoPass() PassWithRating {
	return PassWithRating{Pass: Pass{Speed: 1.0}, Rating: 0}
}

// PasserOrientation is the direction the ball travels.
func (p Pass) PasserOrientation() model.Angle {
	return p.Destination.Sub(p.Origin).Orientation()
}

// ReceiverOrientation faces back along the pass towards the passer.
func (p Pass) ReceiverOrientation() model.Angle {
	return p.Origin.Sub(p.Destination).Orientation()
}

func (p Pass) Length() float64 { return model.Dist(p.Origin, p.Destination) }

// Array is the optimizer's view of the pass.
func (p Pass) Array() [NumParams]float64 {
	return [NumParams]float64{p.Destination.X, p.Destination.Y}
}

// FromArray rebuilds a pass from an optimizer parameter vector.
func FromArray(origin model.Point, arr [NumParams]float64, speed float64) Pass {
	return Pass{Origin: origin, Destination: model.Point{X: arr[0], Y: arr[1]}, Speed: speed}
}

// SpeedModel derives the kick speed that lands a pass at the receive speed.
//
// The ball slides from v0 down to c*v0 at deceleration s, then rolls at
// deceleration r until it reaches vf at the destination D meters away:
//
//	(c*v0)^2 = v0^2 - 2*s*d1
//	vf^2     = (c*v0)^2 - 2*r*(D - d1)
//	v0       = sqrt((vf^2 + 2*r*D) / K),  K = c^2 - r*c^2/s + r/s
type SpeedModel struct {
	minSpeed     float64
	maxSpeed     float64
	receiveSpeed float64
	rolling      float64
	k            float64
}

func NewSpeedModel(phys config.Physics, cfg config.Passing) SpeedModel {
	c2 := phys.FrictionTransitionFactor * phys.FrictionTransitionFactor
	r := phys.RollingDeceleration
	s := phys.SlidingDeceleration
	return SpeedModel{
		minSpeed:     cfg.MinPassSpeed,
		maxSpeed:     cfg.MaxPassSpeed,
		receiveSpeed: cfg.MaxReceiveSpeed,
		rolling:      r,
		k:            c2 - (r*c2)/s + r/s,
	}
}

// Constant returns K. It depends only on the friction model.
func (m SpeedModel) Constant() float64 { return m.k }

// Speed returns the clamped initial speed for a pass from ball to dest.
func (m SpeedModel) Speed(ball, dest model.Point) float64 {
	d := model.Dist(ball, dest)
	v0 := math.Sqrt((m.receiveSpeed*m.receiveSpeed + 2*m.rolling*d) / m.k)
	return model.Clamp(v0, m.minSpeed, m.maxSpeed)
}

// PassTo builds the pass from ball to dest with its derived speed.
func (m SpeedModel) PassTo(ball, dest model.Point) Pass {
	return Pass{Origin: ball, Destination: dest, Speed: m.Speed(ball, dest)}
}

package tactic

import (
	"math"

	"github.com/nstehr/striker/striker-core/model"
)

// CreaseAlignment picks which side of the threat's shot line a crease
// defender covers.
type CreaseAlignment int

const (
	CreaseCentre CreaseAlignment = iota
	CreaseLeft
	CreaseRight
)

// CreaseDefender stands on the edge of the friendly defense area between a
// threat and the goal. The block point is where the threat's line to the goal
// enters the defense area inflated by a robot radius.
type CreaseDefender struct {
	threat    model.Point
	alignment CreaseAlignment
}

func NewCreaseDefender(alignment CreaseAlignment) *CreaseDefender {
	return &CreaseDefender{alignment: alignment}
}

func (c *CreaseDefender) Name() string { return "crease_defender" }

func (c *CreaseDefender) UpdateControlParams(threat model.Point, alignment CreaseAlignment) {
	c.threat = threat
	c.alignment = alignment
}

// RobotCost is 1 when there is no block point, e.g. the threat is already
// inside the defense area.
func (c *CreaseDefender) RobotCost(robot model.Robot, world *model.World) float64 {
	block, ok := c.BlockPoint(world.Field)
	if !ok {
		return 1
	}
	return distanceCost(robot, block, world)
}

func (c *CreaseDefender) UpdateIntent(u Update) Intent {
	block, ok := c.BlockPoint(u.World.Field)
	if !ok {
		return Intent{RobotID: u.Robot.ID, Kind: IntentStop, Tactic: c.Name()}
	}
	return Intent{
		RobotID:     u.Robot.ID,
		Kind:        IntentMove,
		Tactic:      c.Name(),
		Destination: block,
		Orientation: c.threat.Sub(block).Orientation(),
	}
}

// Done is always false: defending never finishes on its own.
func (c *CreaseDefender) Done() bool { return false }

// BlockPoint returns where the defender should stand.
func (c *CreaseDefender) BlockPoint(field model.Field) (model.Point, bool) {
	goal := field.FriendlyGoalCenter()
	toGoal := goal.Sub(c.threat)
	if toGoal.IsZero() {
		return model.Point{}, false
	}

	// Left and right shift the aim point along the goal mouth so two
	// defenders stand side by side.
	offset := 0.0
	switch c.alignment {
	case CreaseLeft:
		offset = 2 * model.RobotMaxRadius
	case CreaseRight:
		offset = -2 * model.RobotMaxRadius
	}
	aim := model.Point{X: goal.X, Y: goal.Y + offset}

	crease := field.FriendlyDefenseArea().Expand(model.RobotMaxRadius)
	return rayEntry(c.threat, aim.Sub(c.threat), crease)
}

// rayEntry returns where a ray from origin along dir first enters r. There is
// no entry when origin is already inside r or the ray misses it.
func rayEntry(origin model.Point, dir model.Vector, r model.Rect) (model.Point, bool) {
	if r.Contains(origin) || dir.IsZero() {
		return model.Point{}, false
	}

	tMin, tMax := 0.0, math.Inf(1)
	slab := func(o, d, lo, hi float64) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}
	if !slab(origin.X, dir.X, r.XMin, r.XMax) || !slab(origin.Y, dir.Y, r.YMin, r.YMax) {
		return model.Point{}, false
	}
	return origin.Add(dir.Scale(tMin)), true
}

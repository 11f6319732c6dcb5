package tactic

import (
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/passing"
)

// Tactic is a single robot's continuous behavior. Plays and skills own their
// tactics and set control parameters on them every tick; the assignment step
// decides which robot runs each one.
type Tactic interface {
	Name() string
	// RobotCost is in [0,1], lower is better. It must not mutate the tactic:
	// it is called for every candidate robot before assignment.
	RobotCost(robot model.Robot, world *model.World) float64
	// UpdateIntent advances the tactic's state machine for the assigned
	// robot and returns the resulting directive.
	UpdateIntent(u Update) Intent
	Done() bool
}

// Update is the event fed to a tactic's state machine.
type Update struct {
	Robot model.Robot
	World *model.World
}

type IntentKind string

const (
	IntentStop    IntentKind = "stop"
	IntentMove    IntentKind = "move"
	IntentKick    IntentKind = "kick"
	IntentChip    IntentKind = "chip"
	IntentDribble IntentKind = "dribble"
)

// Intent is what the motion layer should make one robot do this tick.
type Intent struct {
	RobotID     int         `json:"robotId"`
	Kind        IntentKind  `json:"kind"`
	Tactic      string      `json:"tactic"`
	Destination model.Point `json:"destination"`
	Orientation model.Angle `json:"orientation"`
	// Target is where a kick or chip should go.
	Target model.Point `json:"target"`
	// Speed is the kick speed in m/s, or the chip distance in meters.
	Speed    float64 `json:"speed,omitempty"`
	Dribbler bool    `json:"dribbler,omitempty"`
}

// PriorityTactics are tiers of tactics. Every tactic of tier 0 gets a robot
// before anything in tier 1 is considered.
type PriorityTactics [][]Tactic

// Common is the context shared by a play and the skills it runs for one tick.
type Common struct {
	World      *model.World
	Evaluation *passing.Evaluation
	SetTactics func(PriorityTactics)
}

// distanceCost normalizes the distance from robot to target by the field's
// total length.
func distanceCost(robot model.Robot, target model.Point, world *model.World) float64 {
	total := world.Field.TotalXLength()
	if total <= 0 {
		return 1
	}
	return model.Clamp(model.Dist(robot.Position, target)/total, 0, 1)
}

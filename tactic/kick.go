package tactic

import (
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
)

const (
	kicking fsm.State = "kicking"
	kicked  fsm.State = "done"
)

// kick is shared by Kick and Chip. The robot lines up behind origin facing
// target and releases the ball; it is done once the ball leaves that way.
type kick struct {
	name   string
	kind   IntentKind
	origin model.Point
	target model.Point
	speed  float64

	machine *fsm.Machine[Update]
}

func newKick(name string, kind IntentKind) kick {
	return kick{name: name, kind: kind}
}

func (k *kick) init() {
	k.machine = fsm.New(k.name, kicking, []fsm.Transition[Update]{
		{From: kicking, Guard: k.ballKicked, To: kicked},
		{From: kicking, To: kicking},
		{From: kicked, To: kicked},
	})
}

func (k *kick) Name() string { return k.name }

func (k *kick) direction() model.Angle { return k.target.Sub(k.origin).Orientation() }

// behindBall is where the robot's centre sits when the ball is on its
// dribbler, lined up for the kick.
func (k *kick) behindBall() model.Point {
	return k.origin.Minus(k.direction().Unit().Scale(model.DistToFrontOfRobot + model.BallMaxRadius))
}

func (k *kick) RobotCost(robot model.Robot, world *model.World) float64 {
	return distanceCost(robot, k.behindBall(), world)
}

func (k *kick) UpdateIntent(u Update) Intent {
	k.machine.Process(u)
	return Intent{
		RobotID:     u.Robot.ID,
		Kind:        k.kind,
		Tactic:      k.name,
		Destination: k.behindBall(),
		Orientation: k.direction(),
		Target:      k.target,
		Speed:       k.speed,
	}
}

func (k *kick) Done() bool { return k.machine.Is(kicked) }

func (k *kick) ballKicked(u Update) bool {
	return u.World.Ball.HasBeenKicked(k.direction())
}

// Kick shoots the ball along the ground.
type Kick struct{ kick }

func NewKick() *Kick {
	k := &Kick{kick: newKick("kick", IntentKick)}
	k.init()
	return k
}

// UpdateControlParams aims a kick from origin at target with speed in m/s.
func (k *Kick) UpdateControlParams(origin, target model.Point, speed float64) {
	k.origin = origin
	k.target = target
	k.speed = speed
}

// Chip lobs the ball so that it first lands at the target.
type Chip struct{ kick }

func NewChip() *Chip {
	c := &Chip{kick: newKick("chip", IntentChip)}
	c.init()
	return c
}

func (c *Chip) UpdateControlParams(origin, target model.Point) {
	c.origin = origin
	c.target = target
	c.speed = model.Dist(origin, target)
}

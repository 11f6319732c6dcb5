package tactic

import (
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/passing"
)

const (
	waitingForPass fsm.State = "waiting"
	receiving      fsm.State = "receiving"
	received       fsm.State = "done"
)

const (
	ballControlDistance = 0.05
	ballStoppedSpeed    = 0.1
)

// Receiver waits at a pass destination facing the passer, then steps onto the
// ball's path once the pass is on its way.
type Receiver struct {
	pass    passing.Pass
	machine *fsm.Machine[Update]
}

func NewReceiver() *Receiver {
	r := &Receiver{}
	r.machine = fsm.New("receiver", waitingForPass, []fsm.Transition[Update]{
		{From: waitingForPass, Guard: r.passStarted, To: receiving},
		{From: waitingForPass, To: waitingForPass},
		{From: receiving, Guard: r.passFinished, To: received},
		{From: receiving, To: receiving},
		{From: received, To: received},
	})
	return r
}

func (r *Receiver) Name() string { return "receiver" }

func (r *Receiver) UpdateControlParams(pass passing.Pass) { r.pass = pass }

func (r *Receiver) RobotCost(robot model.Robot, world *model.World) float64 {
	return distanceCost(robot, r.pass.Destination, world)
}

func (r *Receiver) UpdateIntent(u Update) Intent {
	r.machine.Process(u)

	dest := r.pass.Destination
	if r.machine.Is(receiving) {
		ball := u.World.Ball
		path := model.Segment{Start: ball.Position, End: ball.Position.Add(ball.Velocity.Normalize(r.pass.Length() + 1))}
		dest = path.ClosestPoint(u.Robot.Position)
	}
	return Intent{
		RobotID:     u.Robot.ID,
		Kind:        IntentMove,
		Tactic:      r.Name(),
		Destination: dest,
		Orientation: r.pass.ReceiverOrientation(),
		Dribbler:    true,
	}
}

func (r *Receiver) Done() bool { return r.machine.Is(received) }

func (r *Receiver) passStarted(u Update) bool {
	return u.World.Ball.HasBeenKicked(r.pass.PasserOrientation())
}

func (r *Receiver) passFinished(u Update) bool {
	return u.Robot.IsNearDribbler(u.World.Ball.Position, ballControlDistance) ||
		u.World.Ball.Velocity.Len() < ballStoppedSpeed
}

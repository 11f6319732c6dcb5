package tactic

import (
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
)

const (
	closeToDestination = 0.02
	closeToOrientation = 2.0 // degrees
)

const (
	moving fsm.State = "moving"
	moved  fsm.State = "done"
)

// Move drives a robot to a pose and holds it there.
type Move struct {
	destination model.Point
	orientation model.Angle
	machine     *fsm.Machine[Update]
}

func NewMove() *Move {
	m := &Move{}
	m.machine = fsm.New("move", moving, []fsm.Transition[Update]{
		{From: moving, Guard: m.arrived, To: moved},
		{From: moving, To: moving},
		{From: moved, Guard: m.drifted, To: moving},
		{From: moved, To: moved},
	})
	return m
}

func (m *Move) Name() string { return "move" }

func (m *Move) UpdateControlParams(destination model.Point, orientation model.Angle) {
	m.destination = destination
	m.orientation = orientation
}

func (m *Move) Destination() model.Point { return m.destination }

func (m *Move) RobotCost(robot model.Robot, world *model.World) float64 {
	return distanceCost(robot, m.destination, world)
}

func (m *Move) UpdateIntent(u Update) Intent {
	m.machine.Process(u)
	return Intent{
		RobotID:     u.Robot.ID,
		Kind:        IntentMove,
		Tactic:      m.Name(),
		Destination: m.destination,
		Orientation: m.orientation,
	}
}

func (m *Move) Done() bool { return m.machine.Is(moved) }

func (m *Move) arrived(u Update) bool {
	return model.Dist(u.Robot.Position, m.destination) < closeToDestination &&
		u.Robot.Orientation.Diff(m.orientation) < model.Degrees(closeToOrientation)
}

func (m *Move) drifted(u Update) bool { return !m.arrived(u) }

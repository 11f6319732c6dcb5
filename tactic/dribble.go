package tactic

import (
	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
)

const (
	dribbling fsm.State = "dribbling"
	dribbled  fsm.State = "done"
)

// maxDribbleDistance keeps the robot inside the excessive dribbling rule.
const maxDribbleDistance = 0.95

// Dribble moves the ball to a destination with the dribbler on. Without a
// destination it just holds the ball where it is.
type Dribble struct {
	cfg            config.Dribble
	destination    *model.Point
	orientation    *model.Angle
	allowExcessive bool

	// possessionStart is where the robot last gained the ball.
	possessionStart *model.Point

	machine *fsm.Machine[Update]
}

func NewDribble(cfg config.Dribble) *Dribble {
	d := &Dribble{cfg: cfg}
	d.machine = fsm.New("dribble", dribbling, []fsm.Transition[Update]{
		{From: dribbling, Guard: d.arrived, To: dribbled},
		{From: dribbling, To: dribbling},
		{From: dribbled, Guard: d.lostIt, To: dribbling},
		{From: dribbled, To: dribbled},
	})
	return d
}

func (d *Dribble) Name() string { return "dribble" }

// UpdateControlParams sets the dribble target. Either pointer may be nil to
// leave that part up to the robot.
func (d *Dribble) UpdateControlParams(destination *model.Point, orientation *model.Angle, allowExcessive bool) {
	d.destination = destination
	d.orientation = orientation
	d.allowExcessive = allowExcessive
}

func (d *Dribble) RobotCost(robot model.Robot, world *model.World) float64 {
	return distanceCost(robot, world.Ball.Position, world)
}

func (d *Dribble) UpdateIntent(u Update) Intent {
	d.trackPossession(u)
	d.machine.Process(u)
	dest, orientation := d.target(u)
	return Intent{
		RobotID:     u.Robot.ID,
		Kind:        IntentDribble,
		Tactic:      d.Name(),
		Destination: dest,
		Orientation: orientation,
		Dribbler:    true,
	}
}

func (d *Dribble) Done() bool { return d.machine.Is(dribbled) }

func (d *Dribble) target(u Update) (model.Point, model.Angle) {
	dest := u.World.Ball.Position
	if d.destination != nil {
		dest = *d.destination
	}
	if !d.allowExcessive && d.possessionStart != nil {
		start := *d.possessionStart
		if offset := dest.Sub(start); offset.Len() > maxDribbleDistance {
			dest = start.Add(offset.Normalize(maxDribbleDistance))
		}
	}
	orientation := u.World.Ball.Position.Sub(u.Robot.Position).Orientation()
	if d.orientation != nil {
		orientation = *d.orientation
	}
	return dest, orientation
}

func (d *Dribble) arrived(u Update) bool {
	dest, orientation := d.target(u)
	return u.Robot.IsNearDribbler(u.World.Ball.Position, d.cfg.LoseBallControlThreshold) &&
		model.Dist(u.World.Ball.Position, dest) < d.cfg.DestinationTolerance &&
		u.Robot.Orientation.Diff(orientation).Radians() < d.cfg.OrientationTolerance
}

func (d *Dribble) lostIt(u Update) bool { return !d.arrived(u) }

func (d *Dribble) trackPossession(u Update) {
	if !u.Robot.IsNearDribbler(u.World.Ball.Position, d.cfg.LoseBallControlThreshold) {
		d.possessionStart = nil
		return
	}
	if d.possessionStart == nil {
		start := u.World.Ball.Position
		d.possessionStart = &start
	}
}

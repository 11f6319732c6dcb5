package skill

import (
	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/tactic"
)

const (
	GetPossession fsm.State = "get_possession"
	Dribbling     fsm.State = "dribbling"
	DribbleDone   fsm.State = "done"
)

// DribbleUpdate is the event a DribbleSkill consumes. Nil Destination or
// Orientation leave that part up to the dribble tactic.
type DribbleUpdate struct {
	Common         tactic.Common
	Robot          model.Robot
	Destination    *model.Point
	Orientation    *model.Angle
	AllowExcessive bool
}

// DribbleSkill gets the ball and then carries it to a destination. Losing the
// ball at any point sends it back to getting possession.
type DribbleSkill struct {
	cfg     config.Dribble
	dribble *tactic.Dribble
	machine *fsm.Machine[DribbleUpdate]
}

func NewDribbleSkill(cfg config.Dribble) *DribbleSkill {
	s := &DribbleSkill{cfg: cfg, dribble: tactic.NewDribble(cfg)}
	s.machine = fsm.New("dribble_skill", GetPossession, []fsm.Transition[DribbleUpdate]{
		{From: GetPossession, Guard: s.havePossession, Action: s.dribbleToDestination, To: Dribbling},
		{From: GetPossession, Action: s.getPossession, To: GetPossession},

		{From: Dribbling, Guard: s.lostPossession, Action: s.getPossession, To: GetPossession},
		{From: Dribbling, Guard: s.dribblingDone, Action: s.dribbleToDestination, To: DribbleDone},
		{From: Dribbling, Action: s.dribbleToDestination, To: Dribbling},

		{From: DribbleDone, Guard: s.lostPossession, Action: s.getPossession, To: GetPossession},
		{From: DribbleDone, Guard: s.notDone, Action: s.dribbleToDestination, To: Dribbling},
		{From: DribbleDone, Action: s.dribbleToDestination, To: DribbleDone},
	})
	return s
}

func (s *DribbleSkill) Update(u DribbleUpdate) { s.machine.Process(u) }

func (s *DribbleSkill) Done() bool { return s.machine.Is(DribbleDone) }

func (s *DribbleSkill) State() fsm.State { return s.machine.Current() }

func (s *DribbleSkill) havePossession(u DribbleUpdate) bool {
	return u.Robot.IsNearDribbler(u.Common.World.Ball.Position, s.cfg.LoseBallControlThreshold)
}

func (s *DribbleSkill) lostPossession(u DribbleUpdate) bool { return !s.havePossession(u) }

func (s *DribbleSkill) dribblingDone(u DribbleUpdate) bool {
	ball := u.Common.World.Ball.Position
	if u.Destination != nil && model.Dist(ball, *u.Destination) >= s.cfg.DestinationTolerance {
		return false
	}
	if u.Orientation != nil && u.Robot.Orientation.Diff(*u.Orientation).Radians() >= s.cfg.OrientationTolerance {
		return false
	}
	return true
}

func (s *DribbleSkill) notDone(u DribbleUpdate) bool { return !s.dribblingDone(u) }

// getPossession drives onto the ball, facing along the way it is approached.
func (s *DribbleSkill) getPossession(u DribbleUpdate) {
	ball := u.Common.World.Ball.Position
	facing := ball.Sub(u.Robot.Position).Orientation()
	if u.Orientation != nil {
		facing = *u.Orientation
	}
	s.dribble.UpdateControlParams(&ball, &facing, u.AllowExcessive)
	u.Common.SetTactics(tactic.PriorityTactics{{s.dribble}})
}

func (s *DribbleSkill) dribbleToDestination(u DribbleUpdate) {
	s.dribble.UpdateControlParams(u.Destination, u.Orientation, u.AllowExcessive)
	u.Common.SetTactics(tactic.PriorityTactics{{s.dribble}})
}

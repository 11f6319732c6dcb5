package skill

import (
	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/evaluation"
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/passing"
	"github.com/nstehr/striker/striker-core/tactic"
)

const KeepingAway fsm.State = "keeping_away"

// KeepAwayUpdate is the event a KeepAwaySkill consumes. BestPass is where the
// ball should eventually go; the skill keeps the lane to it open.
type KeepAwayUpdate struct {
	Common   tactic.Common
	Robot    model.Robot
	BestPass passing.PassWithRating
}

// KeepAwaySkill protects the ball. When an enemy threatens it, the carrier
// dribbles to a safer spot nearby facing away from the threat; otherwise it
// holds the ball facing the best pass.
type KeepAwaySkill struct {
	cfg     config.Config
	rater   *passing.FieldRater
	speed   passing.SpeedModel
	dribble *DribbleSkill
	machine *fsm.Machine[KeepAwayUpdate]
}

func NewKeepAwaySkill(cfg config.Config, rater *passing.FieldRater) *KeepAwaySkill {
	s := &KeepAwaySkill{
		cfg:     cfg,
		rater:   rater,
		speed:   passing.NewSpeedModel(cfg.Physics, cfg.Passing),
		dribble: NewDribbleSkill(cfg.Dribble),
	}
	s.machine = fsm.New("keep_away_skill", KeepingAway, []fsm.Transition[KeepAwayUpdate]{
		{From: KeepingAway, Guard: s.possessionThreatened, Action: s.keepAway, To: KeepingAway},
		{From: KeepingAway, Action: s.hold, To: KeepingAway},
	})
	return s
}

func (s *KeepAwaySkill) Update(u KeepAwayUpdate) { s.machine.Process(u) }

// Done is always false: keeping the ball has no end of its own.
func (s *KeepAwaySkill) Done() bool { return false }

func (s *KeepAwaySkill) State() fsm.State { return s.machine.Current() }

// DribbleState exposes the nested skill's phase.
func (s *KeepAwaySkill) DribbleState() fsm.State { return s.dribble.State() }

func (s *KeepAwaySkill) possessionThreatened(u KeepAwayUpdate) bool {
	world := u.Common.World
	return !u.Robot.IsNearDribbler(world.Ball.Position, s.cfg.Dribble.LoseBallControlThreshold) ||
		evaluation.ShouldKeepAway(u.Robot, world.Enemy, s.cfg.Attacker.EnemyAboutToStealBallRadius)
}

func (s *KeepAwaySkill) keepAway(u KeepAwayUpdate) {
	world := u.Common.World
	dest := passing.KeepAwayTarget(world, u.BestPass.Pass.Destination, s.rater, s.speed, s.cfg.KeepAway)

	// Face along the best pass unless an enemy is right at the ball, then
	// turn the ball away from it.
	facing := u.BestPass.Pass.PasserOrientation()
	ball := world.Ball.Position
	if threat, ok := evaluation.NearestThreat(u.Robot, ball, world.Enemy, s.cfg.Attacker.EnemyAboutToStealBallRadius); ok {
		facing = ball.Sub(threat.Position).Orientation()
	}

	s.dribble.Update(DribbleUpdate{
		Common:         u.Common,
		Robot:          u.Robot,
		Destination:    &dest,
		Orientation:    &facing,
		AllowExcessive: false,
	})
}

func (s *KeepAwaySkill) hold(u KeepAwayUpdate) {
	facing := u.BestPass.Pass.Destination.Sub(u.Robot.Position).Orientation()
	s.dribble.Update(DribbleUpdate{
		Common:      u.Common,
		Robot:       u.Robot,
		Orientation: &facing,
	})
}

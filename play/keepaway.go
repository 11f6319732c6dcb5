package play

import (
	"log/slog"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/evaluation"
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/passing"
	"github.com/nstehr/striker/striker-core/skill"
	"github.com/nstehr/striker/striker-core/tactic"
)

const (
	KeepingAway fsm.State = "keeping_away"
	PassingBall fsm.State = "passing_ball"
	Finished    fsm.State = "finished"
)

// keepAwayEvent carries what the keep-away play works out once per tick
// before running its machine.
type keepAwayEvent struct {
	common  tactic.Common
	carrier model.Robot
	hasBall bool
	best    passing.PassWithRating
}

// KeepAwayPlay shields the ball with the carrier while the other robots wait
// at their best receiving spots, and passes once a good enough pass appears.
type KeepAwayPlay struct {
	cfg       config.Config
	receivers *passing.ReceiverSearch

	keepAway *skill.KeepAwaySkill
	support  []*tactic.Move
	kick     *tactic.Kick
	receiver *tactic.Receiver

	machine *fsm.Machine[keepAwayEvent]
}

func NewKeepAwayPlay(deps Deps) *KeepAwayPlay {
	p := &KeepAwayPlay{
		cfg:       deps.Config,
		receivers: deps.Receivers,
		keepAway:  skill.NewKeepAwaySkill(deps.Config, deps.Rater),
		kick:      tactic.NewKick(),
		receiver:  tactic.NewReceiver(),
	}
	p.machine = fsm.New("keep_away", KeepingAway, []fsm.Transition[keepAwayEvent]{
		{From: KeepingAway, Guard: p.passReady, Action: p.commitToPass, To: PassingBall},
		{From: KeepingAway, Action: p.keepBall, To: KeepingAway},

		{From: PassingBall, Guard: p.passDone, Action: p.stop, To: Finished},
		{From: PassingBall, Action: p.pass, To: PassingBall},

		{From: Finished, Action: p.stop, To: Finished},
	})
	return p
}

func (p *KeepAwayPlay) Name() string { return NameKeepAway }

func (p *KeepAwayPlay) Done() bool { return p.machine.Is(Finished) }

func (p *KeepAwayPlay) State() fsm.State { return p.machine.Current() }

func (p *KeepAwayPlay) Update(c tactic.Common) {
	world := c.World
	carrier, hasBall := evaluation.Possessor(world.Friendly, world.Ball.Position, p.cfg.Dribble.LoseBallControlThreshold)
	if !hasBall {
		nearest, ok := world.Friendly.NearestRobot(world.Ball.Position)
		if !ok {
			c.SetTactics(nil)
			return
		}
		carrier = nearest
	}

	e := keepAwayEvent{common: c, carrier: carrier, hasBall: hasBall}
	if !p.machine.Is(PassingBall) {
		e.best = p.receivers.BestPass(world, []int{carrier.ID})
	}
	p.machine.Process(e)
}

func (p *KeepAwayPlay) passReady(e keepAwayEvent) bool {
	return e.hasBall && e.best.Rating > p.cfg.KeepAway.MinPassScore
}

func (p *KeepAwayPlay) passDone(keepAwayEvent) bool { return p.receiver.Done() }

func (p *KeepAwayPlay) keepBall(e keepAwayEvent) {
	var carried tactic.PriorityTactics
	inner := e.common
	inner.SetTactics = func(t tactic.PriorityTactics) { carried = t }
	p.keepAway.Update(skill.KeepAwayUpdate{Common: inner, Robot: e.carrier, BestPass: e.best})

	e.common.SetTactics(append(carried, p.supportTier(e)))
}

// supportTier sends every other robot to its receiver search warm start.
func (p *KeepAwayPlay) supportTier(e keepAwayEvent) []tactic.Tactic {
	world := e.common.World
	var tier []tactic.Tactic
	for _, r := range world.Friendly.Robots {
		if r.ID == e.carrier.ID {
			continue
		}
		dest, ok := p.receivers.ReceivingPosition(r.ID)
		if !ok {
			dest = r.Position
		}
		if len(tier) == len(p.support) {
			p.support = append(p.support, tactic.NewMove())
		}
		m := p.support[len(tier)]
		m.UpdateControlParams(dest, world.Ball.Position.Sub(dest).Orientation())
		tier = append(tier, m)
	}
	return tier
}

func (p *KeepAwayPlay) commitToPass(e keepAwayEvent) {
	slog.Info("keep away passing", "carrier", e.carrier.ID, "rating", e.best.Rating, "destination", e.best.Pass.Destination)
	p.kick.UpdateControlParams(e.best.Pass.Origin, e.best.Pass.Destination, e.best.Pass.Speed)
	p.receiver.UpdateControlParams(e.best.Pass)
	p.pass(e)
}

func (p *KeepAwayPlay) pass(e keepAwayEvent) {
	e.common.SetTactics(tactic.PriorityTactics{{p.kick, p.receiver}})
}

func (p *KeepAwayPlay) stop(e keepAwayEvent) { e.common.SetTactics(nil) }

package play

import (
	"log/slog"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/evaluation"
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/passing"
	"github.com/nstehr/striker/striker-core/tactic"
)

const (
	Setup          fsm.State = "setup"
	Deciding       fsm.State = "deciding"
	Shooting       fsm.State = "shooting"
	LookingForPass fsm.State = "looking_for_pass"
	Passing        fsm.State = "passing"
	Chipping       fsm.State = "chipping"
	Terminal       fsm.State = "terminal"
)

const shotSpeedMargin = 0.5

// PassAcceptanceThreshold is the minimum pass rating worth committing to after
// searching for elapsed seconds. It starts at 1 and falls linearly to
// minScore at maxCommit.
func PassAcceptanceThreshold(elapsed, maxCommit, minScore float64) float64 {
	return 1 - (1-minScore)*elapsed/maxCommit
}

// FreeKickPlay takes our free kick. It shoots when there is an open lane,
// otherwise searches for a pass with a falling standard and chips at the
// goal when time runs out.
type FreeKickPlay struct {
	cfg config.Config

	align       *tactic.Move
	positioning [2]*tactic.Move
	crease      [2]*tactic.CreaseDefender
	kick        *tactic.Kick
	chip        *tactic.Chip
	receiver    *tactic.Receiver

	shot        evaluation.Shot
	searchStart float64
	rankedZones []model.ZoneID
	committed   passing.Pass
	chipOrigin  model.Point

	machine *fsm.Machine[tactic.Common]
}

func NewFreeKickPlay(cfg config.Config) *FreeKickPlay {
	p := &FreeKickPlay{
		cfg:         cfg,
		align:       tactic.NewMove(),
		positioning: [2]*tactic.Move{tactic.NewMove(), tactic.NewMove()},
		crease:      [2]*tactic.CreaseDefender{tactic.NewCreaseDefender(tactic.CreaseLeft), tactic.NewCreaseDefender(tactic.CreaseRight)},
		kick:        tactic.NewKick(),
		chip:        tactic.NewChip(),
		receiver:    tactic.NewReceiver(),
	}
	p.machine = fsm.New("free_kick", Setup, []fsm.Transition[tactic.Common]{
		{From: Setup, Guard: p.setupDone, To: Deciding},
		{From: Setup, Action: p.setupPosition, To: Setup},

		{From: Deciding, Guard: p.shotFound, Action: p.shootBall, To: Shooting},
		{From: Deciding, Action: p.startLookingForPass, To: LookingForPass},

		{From: Shooting, Guard: p.shotDone, To: Terminal},
		{From: Shooting, Action: p.keepShooting, To: Shooting},

		{From: LookingForPass, Guard: p.timeExpired, Action: p.chipBall, To: Chipping},
		{From: LookingForPass, Guard: p.passFound, Action: p.commitToPass, To: Passing},
		{From: LookingForPass, Action: p.lookForPass, To: LookingForPass},

		{From: Passing, Guard: p.passDone, To: Terminal},
		{From: Passing, Action: p.passBall, To: Passing},

		{From: Chipping, Guard: p.chipDone, To: Terminal},
		{From: Chipping, Action: p.keepChipping, To: Chipping},

		{From: Terminal, Action: p.terminate, To: Terminal},
	}, Deciding)
	return p
}

func (p *FreeKickPlay) Name() string { return NameFreeKick }

func (p *FreeKickPlay) Update(c tactic.Common) { p.machine.Process(c) }

func (p *FreeKickPlay) Done() bool { return p.machine.Is(Terminal) }

func (p *FreeKickPlay) State() fsm.State { return p.machine.Current() }

// Guards.

func (p *FreeKickPlay) setupDone(tactic.Common) bool { return p.align.Done() }

func (p *FreeKickPlay) shotFound(c tactic.Common) bool {
	_, ok := p.bestShot(c.World)
	return ok
}

func (p *FreeKickPlay) shotDone(tactic.Common) bool { return p.kick.Done() }

func (p *FreeKickPlay) timeExpired(c tactic.Common) bool {
	return c.World.Timestamp-p.searchStart >= p.cfg.FreeKick.MaxTimeCommitToPass
}

func (p *FreeKickPlay) passFound(c tactic.Common) bool {
	elapsed := c.World.Timestamp - p.searchStart
	threshold := PassAcceptanceThreshold(elapsed, p.cfg.FreeKick.MaxTimeCommitToPass, p.cfg.FreeKick.MinAcceptablePassScore)
	return c.Evaluation.BestPassOnField().Rating > threshold
}

func (p *FreeKickPlay) passDone(tactic.Common) bool { return p.receiver.Done() }

func (p *FreeKickPlay) chipDone(tactic.Common) bool { return p.chip.Done() }

// bestShot returns the shot from the ball if it is open wide enough.
func (p *FreeKickPlay) bestShot(world *model.World) (evaluation.Shot, bool) {
	shot, ok := evaluation.BestShotOnGoal(world.Field, world.Friendly, world.Enemy, world.Ball.Position)
	if !ok || shot.OpenAngle <= model.Degrees(p.cfg.Attacker.MinOpenAngleForShotDeg) {
		return evaluation.Shot{}, false
	}
	return shot, true
}

// Actions.

func (p *FreeKickPlay) setupPosition(c tactic.Common) {
	p.alignTo(c.World, c.World.Field.EnemyGoalCenter())
	// The ranking is held for the whole setup so the positioning robots do
	// not chase a different zone every time a robot moves.
	if p.rankedZones == nil {
		p.rankedZones = rankZones(c)
	}
	p.positionReceivers(c, p.rankedZones)
	p.defend(c.World)
	c.SetTactics(tactic.PriorityTactics{
		{p.align},
		{p.positioning[0], p.positioning[1], p.crease[0], p.crease[1]},
	})
}

func (p *FreeKickPlay) shootBall(c tactic.Common) {
	p.shot, _ = p.bestShot(c.World)
	slog.Info("free kick shooting", "target", p.shot.Target, "openAngleDeg", p.shot.OpenAngle.Degrees())
	p.kick.UpdateControlParams(c.World.Ball.Position, p.shot.Target, model.BallMaxSpeed-shotSpeedMargin)
	p.keepShooting(c)
}

func (p *FreeKickPlay) keepShooting(c tactic.Common) {
	p.defend(c.World)
	c.SetTactics(tactic.PriorityTactics{{p.kick}, {p.crease[0], p.crease[1]}})
}

// startLookingForPass starts the commit clock and freezes the receiver zone
// ranking for the rest of the search.
func (p *FreeKickPlay) startLookingForPass(c tactic.Common) {
	p.searchStart = c.World.Timestamp
	p.rankedZones = rankZones(c)
	slog.Info("free kick looking for pass", "start", p.searchStart, "zones", p.rankedZones[:min(2, len(p.rankedZones))])
	p.lookForPass(c)
}

func (p *FreeKickPlay) lookForPass(c tactic.Common) {
	best := c.Evaluation.BestPassOnField()
	p.alignTo(c.World, best.Pass.Destination)
	p.positionReceivers(c, p.rankedZones)
	p.defend(c.World)
	c.SetTactics(tactic.PriorityTactics{
		{p.align},
		{p.positioning[0], p.positioning[1], p.crease[0], p.crease[1]},
	})
}

func (p *FreeKickPlay) commitToPass(c tactic.Common) {
	best := c.Evaluation.BestPassOnField()
	p.committed = best.Pass
	slog.Info("free kick committing to pass",
		"rating", best.Rating,
		"destination", best.Pass.Destination,
		"elapsed", c.World.Timestamp-p.searchStart,
	)
	p.kick.UpdateControlParams(p.committed.Origin, p.committed.Destination, p.committed.Speed)
	p.receiver.UpdateControlParams(p.committed)
	p.passBall(c)
}

func (p *FreeKickPlay) passBall(c tactic.Common) {
	p.defend(c.World)
	c.SetTactics(tactic.PriorityTactics{{p.kick, p.receiver}, {p.crease[0], p.crease[1]}})
}

func (p *FreeKickPlay) chipBall(c tactic.Common) {
	p.chipOrigin = c.World.Ball.Position
	slog.Info("free kick out of time, chipping at goal", "elapsed", c.World.Timestamp-p.searchStart)
	p.chip.UpdateControlParams(p.chipOrigin, c.World.Field.EnemyGoalCenter())
	p.keepChipping(c)
}

func (p *FreeKickPlay) keepChipping(c tactic.Common) {
	p.defend(c.World)
	c.SetTactics(tactic.PriorityTactics{{p.chip}, {p.crease[0], p.crease[1]}})
}

func (p *FreeKickPlay) terminate(c tactic.Common) { c.SetTactics(nil) }

// rankZones ranks receiving zones around the best receiver location found so
// far.
func rankZones(c tactic.Common) []model.ZoneID {
	return c.Evaluation.RankZonesForReceiving(c.World, c.Evaluation.BestPassOnField().Pass.Destination)
}

// alignTo parks the kicker behind the ball facing target.
func (p *FreeKickPlay) alignTo(world *model.World, target model.Point) {
	ball := world.Ball.Position
	dir := target.Sub(ball)
	if dir.IsZero() {
		dir = world.Field.EnemyGoalCenter().Sub(ball)
	}
	pos := ball.Minus(dir.Normalize(2 * model.RobotMaxRadius))
	p.align.UpdateControlParams(pos, dir.Orientation())
}

// positionReceivers sends the two positioning robots to the best pass
// destinations of the top two zones.
func (p *FreeKickPlay) positionReceivers(c tactic.Common, zones []model.ZoneID) {
	ball := c.World.Ball.Position
	for i, m := range p.positioning {
		if i >= len(zones) {
			break
		}
		dest := c.Evaluation.BestPassInZones([]model.ZoneID{zones[i]}).Pass.Destination
		m.UpdateControlParams(dest, ball.Sub(dest).Orientation())
	}
}

func (p *FreeKickPlay) defend(world *model.World) {
	p.crease[0].UpdateControlParams(world.Ball.Position, tactic.CreaseLeft)
	p.crease[1].UpdateControlParams(world.Ball.Position, tactic.CreaseRight)
}

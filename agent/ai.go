package agent

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/passing"
	"github.com/nstehr/striker/striker-core/play"
	"github.com/nstehr/striker/striker-core/rules"
	"github.com/nstehr/striker/striker-core/tactic"
)

// AI turns one world per tick into robot intents. It owns the pass optimizer
// so zone passes carry over between ticks, and the running play so its state
// machines survive until the play is replaced.
type AI struct {
	cfg    config.Config
	engine *rules.Engine
	seed   int64

	rater     *passing.FieldRater
	receivers *passing.ReceiverSearch
	// generator is built on the first world, once the field size is known.
	generator *passing.Generator
	field     model.Field

	play     play.Play
	playID   uuid.UUID
	playRule string

	prev  *worldSnapshot
	tiers tactic.PriorityTactics
}

func NewAI(cfg config.Config, engine *rules.Engine, seed int64) *AI {
	rater := passing.NewFieldRater(cfg.Physics, cfg.Passing)
	return &AI{
		cfg:       cfg,
		engine:    engine,
		seed:      seed,
		rater:     rater,
		receivers: passing.NewReceiverSearch(rater, cfg.Physics, cfg.Passing, seed),
	}
}

// Tick runs one decision cycle and returns one intent per assigned robot.
func (ai *AI) Tick(world *model.World) []tactic.Intent {
	threshold := ai.cfg.Dribble.LoseBallControlThreshold

	snap := takeSnapshot(world, threshold)
	events := detectEvents(snap, ai.prev, world.Timestamp)
	ai.prev = &snap
	for _, e := range events {
		slog.Info("world event", "kind", e.Kind, "timestamp", e.Timestamp, "detail", e.Detail)
	}

	evaluation := ai.generatorFor(world.Field).GeneratePassEvaluation(world)

	name, rule := ai.engine.Select(world)
	if ai.play == nil || ai.play.Name() != name || ai.play.Done() || hasEvent(events, EventRefereeChanged) {
		ai.startPlay(name, rule)
	}

	ai.tiers = nil
	ai.play.Update(tactic.Common{
		World:      world,
		Evaluation: evaluation,
		SetTactics: func(t tactic.PriorityTactics) { ai.tiers = t },
	})

	assignments := tactic.Assign(ai.tiers, world.Friendly.Robots, world)
	return tactic.Run(assignments, world)
}

// PlayName and PlayState describe the running play, for the intents reply.
func (ai *AI) PlayName() string {
	if ai.play == nil {
		return ""
	}
	return ai.play.Name()
}

func (ai *AI) PlayState() fsm.State {
	if ai.play == nil {
		return ""
	}
	return ai.play.State()
}

func (ai *AI) startPlay(name, rule string) {
	p, err := play.New(name, play.Deps{Config: ai.cfg, Rater: ai.rater, Receivers: ai.receivers})
	if err != nil {
		slog.Error("cannot start play, halting", "play", name, "error", err)
		p = play.NewHaltPlay()
	}

	if ai.play != nil {
		slog.Info("play ended",
			"play", ai.play.Name(),
			"id", ai.playID,
			"state", ai.play.State(),
			"done", ai.play.Done(),
		)
	}

	ai.play = p
	ai.playID = uuid.New()
	ai.playRule = rule
	slog.Info("play started", "play", p.Name(), "id", ai.playID, "rule", rule)
}

// generatorFor rebuilds the optimizer when the field geometry changes, since
// the zones are cut from it.
func (ai *AI) generatorFor(field model.Field) *passing.Generator {
	if ai.generator != nil && field == ai.field {
		return ai.generator
	}
	if ai.generator != nil {
		slog.Warn("field geometry changed, resetting pass optimizer")
	}
	ai.field = field
	ai.generator = passing.NewGenerator(newDivision(ai.cfg.PitchDivision, field), ai.rater, ai.cfg.Physics, ai.cfg.Passing, ai.seed)
	return ai.generator
}

func newDivision(name string, field model.Field) model.PitchDivision {
	if name == "eight_zone" {
		return model.NewEightZoneDivision(field)
	}
	return model.NewEighteenZoneDivision(field)
}

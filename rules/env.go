package rules

import (
	"github.com/nstehr/striker/striker-core/evaluation"
	"github.com/nstehr/striker/striker-core/model"
)

// RuleEnv wraps the world snapshot and exposes helper methods callable from
// expr expressions.
type RuleEnv struct {
	World               model.World
	PossessionThreshold float64
}

func (e RuleEnv) Halted() bool { return e.World.GameState == model.GameHalt }
func (e RuleEnv) Stopped() bool { return e.World.GameState == model.GameStop }
func (e RuleEnv) Playing() bool { return e.World.GameState == model.GamePlaying }
func (e RuleEnv) OurFreeKick() bool { return e.World.GameState == model.GameOurFreeKick }
func (e RuleEnv) TheirFreeKick() bool { return e.World.GameState == model.GameTheirFreeKick }

func (e RuleEnv) FriendlyHasBall() bool {
	_, ok := evaluation.Possessor(e.World.Friendly, e.World.Ball.Position, e.PossessionThreshold)
	return ok
}

func (e RuleEnv) EnemyHasBall() bool {
	_, ok := evaluation.Possessor(e.World.Enemy, e.World.Ball.Position, e.PossessionThreshold)
	return ok
}

func (e RuleEnv) BallInEnemyHalf() bool { return e.World.Field.InEnemyHalf(e.World.Ball.Position) }

func (e RuleEnv) FriendlyCount() int { return len(e.World.Friendly.Robots) }

func (e RuleEnv) EnemyCount() int { return len(e.World.Enemy.Robots) }

// BallSpeed is in m/s.
func (e RuleEnv) BallSpeed() float64 { return e.World.Ball.Velocity.Len() }

package rules

import (
	"testing"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/model"
)

var knownPlays = []string{"halt", "free_kick", "keep_away"}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	rules, err := FromConfig(config.DefaultPlays(), knownPlays)
	if err != nil {
		t.Fatalf("FromConfig(DefaultPlays()) failed: %v", err)
	}
	engine, err := NewEngine(rules, 0.05)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestDefaultRulesCompile(t *testing.T) {
	engine := defaultEngine(t)
	if len(engine.rules) != 3 {
		t.Errorf("expected 3 rules, got %d", len(engine.rules))
	}
	// Verify priority ordering (descending).
	for i := 1; i < len(engine.rules); i++ {
		if engine.rules[i].Priority > engine.rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				engine.rules[i].Name, engine.rules[i].Priority,
				engine.rules[i-1].Name, engine.rules[i-1].Priority)
		}
	}
}

func TestSelect(t *testing.T) {
	engine := defaultEngine(t)

	carrier := model.Robot{ID: 1, Position: model.Point{X: 0, Y: 0}}
	withBall := model.Team{Robots: []model.Robot{carrier}}
	noBall := model.Team{Robots: []model.Robot{{ID: 1, Position: model.Point{X: -3, Y: 2}}}}

	tests := []struct {
		name     string
		state    model.GameState
		friendly model.Team
		wantPlay string
		wantRule string
	}{
		{"halt", model.GameHalt, withBall, "halt", "halt"},
		{"stop", model.GameStop, withBall, "halt", "halt"},
		{"our free kick", model.GameOurFreeKick, noBall, "free_kick", "our-free-kick"},
		{"free kick without robots", model.GameOurFreeKick, model.Team{}, DefaultPlay, ""},
		{"playing with the ball", model.GamePlaying, withBall, "keep_away", "keep-away"},
		{"playing without the ball", model.GamePlaying, noBall, DefaultPlay, ""},
		{"their free kick", model.GameTheirFreeKick, withBall, DefaultPlay, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := &model.World{
				GameState: tt.state,
				Field:     model.DivisionBField(),
				Ball:      model.Ball{Position: carrier.DribblerPoint()},
				Friendly:  tt.friendly,
			}
			play, rule := engine.Select(world)
			if play != tt.wantPlay || rule != tt.wantRule {
				t.Errorf("Select() = (%q, %q), want (%q, %q)", play, rule, tt.wantPlay, tt.wantRule)
			}
		})
	}
}

func TestSwapKeepsOldRulesOnCompileError(t *testing.T) {
	engine := defaultEngine(t)
	before := engine.Rules()

	err := engine.Swap([]*Rule{{Name: "broken", Priority: 1, ConditionSrc: `NoSuchHelper()`, Play: "halt"}})
	if err == nil {
		t.Fatal("expected compile error for unknown helper")
	}
	after := engine.Rules()
	if len(after) != len(before) {
		t.Fatalf("rules changed after failed swap: %v -> %v", before, after)
	}
}

func TestSwapReplacesRules(t *testing.T) {
	engine := defaultEngine(t)

	err := engine.Swap([]*Rule{
		{Name: "always-keep-away", Priority: 10, ConditionSrc: `FriendlyCount() >= 0`, Play: "keep_away"},
	})
	if err != nil {
		t.Fatalf("Swap failed: %v", err)
	}

	play, _ := engine.Select(&model.World{GameState: model.GameHalt})
	if play != "keep_away" {
		t.Errorf("expected swapped rule to win, got %q", play)
	}
}

func TestNonBoolConditionRejected(t *testing.T) {
	_, err := NewEngine([]*Rule{{Name: "count", ConditionSrc: `FriendlyCount()`, Play: "halt"}}, 0.05)
	if err == nil {
		t.Fatal("expected non-bool condition to fail compilation")
	}
}

func TestFromConfigUnknownPlay(t *testing.T) {
	_, err := FromConfig([]config.PlayRule{{Name: "x", When: "true", Play: "penalty"}}, knownPlays)
	if err == nil {
		t.Fatal("expected error for unknown play")
	}
}

func TestRuleEnvHelpers(t *testing.T) {
	enemy := model.Robot{ID: 5, Position: model.Point{X: 1, Y: 1}}
	env := RuleEnv{
		World: model.World{
			Field: model.DivisionBField(),
			Ball:  model.Ball{Position: enemy.DribblerPoint(), Velocity: model.Vector{X: 3, Y: 4}},
			Enemy: model.Team{Robots: []model.Robot{enemy}},
			Friendly: model.Team{Robots: []model.Robot{
				{ID: 1, Position: model.Point{X: -2, Y: 0}},
				{ID: 2, Position: model.Point{X: -3, Y: 0}},
			}},
		},
		PossessionThreshold: 0.05,
	}

	if !env.EnemyHasBall() {
		t.Error("EnemyHasBall() = false, want true")
	}
	if env.FriendlyHasBall() {
		t.Error("FriendlyHasBall() = true, want false")
	}
	if !env.BallInEnemyHalf() {
		t.Error("BallInEnemyHalf() = false, want true")
	}
	if env.FriendlyCount() != 2 || env.EnemyCount() != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", env.FriendlyCount(), env.EnemyCount())
	}
	if env.BallSpeed() != 5 {
		t.Errorf("BallSpeed() = %v, want 5", env.BallSpeed())
	}
}

package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/striker/striker-core/model"
)

// DefaultPlay is selected when no rule matches.
const DefaultPlay = "halt"

// Engine picks the play to run for a world. One engine is shared by every
// connection; Swap replaces the rule set while ticks keep running.
type Engine struct {
	mu                  sync.RWMutex
	rules               []*Rule
	possessionThreshold float64
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by
// priority. possessionThreshold is how close the ball must be to a dribbler
// for a team to have it.
func NewEngine(rules []*Rule, possessionThreshold float64) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, possessionThreshold: possessionThreshold}, nil
}

// Select returns the play of the highest priority rule whose condition holds.
// A condition that fails at runtime counts as false.
func (e *Engine) Select(world *model.World) (play string, rule string) {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	env := RuleEnv{World: *world, PossessionThreshold: e.possessionThreshold}
	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); ok && match {
			return r.Play, r.Name
		}
	}
	return DefaultPlay, ""
}

// Swap atomically replaces the rule set. Compiles first; if compilation fails
// the old rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()

	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

// Rules returns the active rule names in evaluation order.
func (e *Engine) Rules() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}

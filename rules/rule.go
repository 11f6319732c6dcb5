package rules

import "github.com/expr-lang/expr/vm"

// Rule selects a play when its condition holds. The engine tries rules in
// priority order and the first match wins.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	ConditionSrc string      // expr source (preserved for reloads and logs)
	Play         string      // play name handed to play.New
	program      *vm.Program // compiled bytecode
}

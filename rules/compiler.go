package rules

import (
	"fmt"
	"slices"

	"github.com/nstehr/striker/striker-core/config"
)

// FromConfig turns the configured play table into rules. Every rule must name
// one of knownPlays; conditions are compiled later by the engine.
func FromConfig(plays []config.PlayRule, knownPlays []string) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(plays))
	for _, p := range plays {
		if !slices.Contains(knownPlays, p.Play) {
			return nil, fmt.Errorf("rule %q selects unknown play %q", p.Name, p.Play)
		}
		rules = append(rules, &Rule{
			Name:         p.Name,
			Priority:     p.Priority,
			ConditionSrc: p.When,
			Play:         p.Play,
		})
	}
	return rules, nil
}

package tactic

import "github.com/nstehr/striker/striker-core/model"

// Assignment binds one robot to one tactic for a tick.
type Assignment struct {
	Robot  model.Robot
	Tactic Tactic
}

// Assign hands robots to tactics tier by tier. Within a tier it repeatedly
// takes the cheapest remaining robot/tactic pair; ties go to the earlier
// tactic, then the earlier robot. Tactics left over when robots run out are
// not assigned.
func Assign(tiers PriorityTactics, robots []model.Robot, world *model.World) []Assignment {
	free := make([]bool, len(robots))
	for i := range free {
		free[i] = true
	}
	remaining := len(robots)

	var out []Assignment
	for _, tier := range tiers {
		open := make([]bool, len(tier))
		for i := range open {
			open[i] = true
		}

		for n := 0; n < len(tier) && remaining > 0; n++ {
			bestT, bestR := -1, -1
			bestCost := 0.0
			for ti, t := range tier {
				if !open[ti] {
					continue
				}
				for ri, r := range robots {
					if !free[ri] {
						continue
					}
					cost := t.RobotCost(r, world)
					if bestT < 0 || cost < bestCost {
						bestT, bestR, bestCost = ti, ri, cost
					}
				}
			}
			open[bestT] = false
			free[bestR] = false
			remaining--
			out = append(out, Assignment{Robot: robots[bestR], Tactic: tier[bestT]})
		}
	}
	return out
}

// Run advances every assigned tactic and collects the intents in assignment
// order.
func Run(assignments []Assignment, world *model.World) []Intent {
	intents := make([]Intent, 0, len(assignments))
	for _, a := range assignments {
		intents = append(intents, a.Tactic.UpdateIntent(Update{Robot: a.Robot, World: world}))
	}
	return intents
}

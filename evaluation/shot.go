package evaluation

import (
	"math"
	"sort"

	"github.com/nstehr/striker/striker-core/model"
)

// Shot is the best open lane from a point into the enemy goal.
type Shot struct {
	Target    model.Point
	OpenAngle model.Angle
}

type interval struct{ lo, hi float64 }

// BestShotOnGoal finds the widest unblocked angular gap between the enemy goal
// posts as seen from origin. Every robot of both teams in front of origin
// blocks the cone it covers. ok is false when the goal is completely blocked
// or origin is not in front of it.
func BestShotOnGoal(field model.Field, friendly, enemy model.Team, origin model.Point) (Shot, bool) {
	goalX := field.XLength / 2
	if origin.X >= goalX {
		return Shot{}, false
	}

	reference := field.EnemyGoalCenter().Sub(origin).Orientation()
	relative := func(p model.Point) float64 {
		return float64((p.Sub(origin).Orientation() - reference).Normalized())
	}

	negPost, posPost := field.EnemyGoalPosts()
	goal := interval{lo: relative(negPost), hi: relative(posPost)}
	if goal.lo > goal.hi {
		goal.lo, goal.hi = goal.hi, goal.lo
	}

	forward := field.EnemyGoalCenter().Sub(origin)
	var blocked []interval
	for _, team := range []model.Team{friendly, enemy} {
		for _, r := range team.Robots {
			offset := r.Position.Sub(origin)
			d := offset.Len()
			if d < model.RobotMaxRadius || offset.Dot(forward) <= 0 {
				continue
			}
			half := math.Asin(math.Min(1, (model.RobotMaxRadius+model.BallMaxRadius)/d))
			c := relative(r.Position)
			blocked = append(blocked, interval{lo: c - half, hi: c + half})
		}
	}

	best, ok := widestGap(goal, blocked)
	if !ok {
		return Shot{}, false
	}

	mid := model.Angle((best.lo+best.hi)/2) + reference
	target := model.Point{X: goalX, Y: origin.Y + (goalX-origin.X)*math.Tan(mid.Radians())}
	return Shot{Target: target, OpenAngle: model.Angle(best.hi - best.lo)}, true
}

// widestGap returns the largest part of span not covered by blocked.
func widestGap(span interval, blocked []interval) (interval, bool) {
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].lo < blocked[j].lo })

	var best interval
	found := false
	cursor := span.lo
	consider := func(lo, hi float64) {
		if hi > lo && (!found || hi-lo > best.hi-best.lo) {
			best = interval{lo: lo, hi: hi}
			found = true
		}
	}
	for _, b := range blocked {
		if b.hi <= cursor || b.lo >= span.hi {
			continue
		}
		consider(cursor, math.Min(b.lo, span.hi))
		cursor = math.Max(cursor, b.hi)
		if cursor >= span.hi {
			break
		}
	}
	consider(cursor, span.hi)
	return best, found
}

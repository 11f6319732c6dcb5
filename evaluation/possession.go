package evaluation

import "github.com/nstehr/striker/striker-core/model"

// Possessor returns the robot of team whose dribbler is within threshold of
// the ball, preferring the closest one.
func Possessor(team model.Team, ball model.Point, threshold float64) (model.Robot, bool) {
	var holder model.Robot
	best := -1.0
	for _, r := range team.Robots {
		d := model.Dist(r.DribblerPoint(), ball)
		if d > threshold {
			continue
		}
		if best < 0 || d < best {
			best = d
			holder = r
		}
	}
	return holder, best >= 0
}

// NearestThreat returns the enemy closest to robot if it is within radius of
// the ball.
func NearestThreat(robot model.Robot, ball model.Point, enemy model.Team, radius float64) (model.Robot, bool) {
	nearest, ok := enemy.NearestRobot(robot.Position)
	if !ok || model.Dist(nearest.Position, ball) >= radius {
		return model.Robot{}, false
	}
	return nearest, true
}

// ShouldKeepAway reports whether an enemy is close enough to steal the ball
// from robot.
func ShouldKeepAway(robot model.Robot, enemy model.Team, radius float64) bool {
	nearest, ok := enemy.NearestRobot(robot.Position)
	return ok && model.Dist(nearest.Position, robot.Position) <= radius
}

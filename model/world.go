package model

// Physical constants of the robots and ball, in meters and m/s.
const (
	RobotMaxRadius     = 0.09
	DistToFrontOfRobot = 0.0875
	BallMaxRadius      = 0.0215
	BallMaxSpeed       = 6.5
)

// GameState is the referee-derived phase of the match.
type GameState string

const (
	GameHalt          GameState = "halt"
	GameStop          GameState = "stop"
	GamePlaying       GameState = "playing"
	GameOurFreeKick   GameState = "our_free_kick"
	GameTheirFreeKick GameState = "their_free_kick"
)

// World is the immutable snapshot handed to the core once per vision frame.
// Nothing in the core mutates it.
type World struct {
	Timestamp float64   `json:"timestamp"` // monotonic, seconds
	GameState GameState `json:"gameState"`
	Field     Field     `json:"field"`
	Ball      Ball      `json:"ball"`
	Friendly  Team      `json:"friendly"`
	Enemy     Team      `json:"enemy"`
}

type Ball struct {
	Position Point  `json:"position"`
	Velocity Vector `json:"velocity"`
}

const (
	kickedMinSpeed    = 0.5
	kickedMaxAngleDeg = 20
)

// HasBeenKicked reports whether the ball is moving fast enough roughly along
// direction to count as kicked that way.
func (b Ball) HasBeenKicked(direction Angle) bool {
	if b.Velocity.Len() < kickedMinSpeed {
		return false
	}
	return b.Velocity.Orientation().Diff(direction) < Degrees(kickedMaxAngleDeg)
}

type Robot struct {
	ID          int    `json:"id"`
	Position    Point  `json:"position"`
	Velocity    Vector `json:"velocity"`
	Orientation Angle  `json:"orientation"`
}

// DribblerPoint is where the ball sits when the robot controls it.
func (r Robot) DribblerPoint() Point {
	return r.Position.Add(r.Orientation.Unit().Scale(DistToFrontOfRobot + BallMaxRadius))
}

// IsNearDribbler reports whether p is within threshold of the robot's dribbler.
func (r Robot) IsNearDribbler(p Point, threshold float64) bool {
	return Dist(r.DribblerPoint(), p) <= threshold
}

type Team struct {
	Robots   []Robot `json:"robots"`
	GoalieID int     `json:"goalieId"`
}

// Robot looks up a robot by id.
func (t Team) Robot(id int) (Robot, bool) {
	for _, r := range t.Robots {
		if r.ID == id {
			return r, true
		}
	}
	return Robot{}, false
}

// NearestRobot returns the team's robot closest to p. ok is false for an
// empty team.
func (t Team) NearestRobot(p Point) (Robot, bool) {
	var nearest Robot
	best := -1.0
	for _, r := range t.Robots {
		d := Dist(r.Position, p)
		if best < 0 || d < best {
			best = d
			nearest = r
		}
	}
	return nearest, best >= 0
}

// Field describes the playing surface. Lengths in meters.
type Field struct {
	XLength        float64 `json:"xLength"`
	YLength        float64 `json:"yLength"`
	GoalWidth      float64 `json:"goalWidth"`
	DefenseXLength float64 `json:"defenseXLength"`
	DefenseYLength float64 `json:"defenseYLength"`
	BoundaryMargin float64 `json:"boundaryMargin"`
}

// DivisionBField returns the standard SSL division B field.
func DivisionBField() Field {
	return Field{
		XLength:        9.0,
		YLength:        6.0,
		GoalWidth:      1.0,
		DefenseXLength: 1.0,
		DefenseYLength: 2.0,
		BoundaryMargin: 0.3,
	}
}

func (f Field) EnemyGoalCenter() Point    { return Point{X: f.XLength / 2} }
func (f Field) FriendlyGoalCenter() Point { return Point{X: -f.XLength / 2} }

// EnemyGoalPosts returns the negative-y post first.
func (f Field) EnemyGoalPosts() (Point, Point) {
	return Point{X: f.XLength / 2, Y: -f.GoalWidth / 2}, Point{X: f.XLength / 2, Y: f.GoalWidth / 2}
}

// FieldLines is the in-play area.
func (f Field) FieldLines() Rect {
	return Rect{XMin: -f.XLength / 2, YMin: -f.YLength / 2, XMax: f.XLength / 2, YMax: f.YLength / 2}
}

func (f Field) FriendlyDefenseArea() Rect {
	return Rect{
		XMin: -f.XLength / 2,
		YMin: -f.DefenseYLength / 2,
		XMax: -f.XLength/2 + f.DefenseXLength,
		YMax: f.DefenseYLength / 2,
	}
}

// TotalXLength includes the boundary on both ends. Tactic costs are
// normalized by it so any robot on the field costs less than 1.
func (f Field) TotalXLength() float64 { return f.XLength + 2*f.BoundaryMargin }

func (f Field) InEnemyHalf(p Point) bool { return p.X > 0 }

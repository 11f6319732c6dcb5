package ipc

// Command type constants. These must stay in sync with the bridge's motion layer.
const (
	TypeStop    = "stop"
	TypeMove    = "move"
	TypeKick    = "kick"
	TypeChip    = "chip"
	TypeDribble = "dribble"
)

type StopCommand struct {
	RobotID int `json:"robot_id"`
}

type MoveCommand struct {
	RobotID     int     `json:"robot_id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Orientation float64 `json:"orientation"`
	Dribbler    bool    `json:"dribbler,omitempty"`
}

type KickCommand struct {
	RobotID int     `json:"robot_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	TargetX float64 `json:"target_x"`
	TargetY float64 `json:"target_y"`
	Speed   float64 `json:"speed"`
}

type ChipCommand struct {
	RobotID  int     `json:"robot_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TargetX  float64 `json:"target_x"`
	TargetY  float64 `json:"target_y"`
	Distance float64 `json:"distance"`
}

type DribbleCommand struct {
	RobotID     int     `json:"robot_id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Orientation float64 `json:"orientation"`
}

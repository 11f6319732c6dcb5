package tactic

import "github.com/nstehr/striker/striker-core/model"

// Stop brings a robot to rest. Any robot is equally good at it.
type Stop struct{}

func NewStop() *Stop { return &Stop{} }

func (s *Stop) Name() string { return "stop" }
func (s *Stop) RobotCost(model.Robot, *model.World) float64 { return 0 }
func (s *Stop) Done() bool { return true }

func (s *Stop) UpdateIntent(u Update) Intent {
	return Intent{RobotID: u.Robot.ID, Kind: IntentStop, Tactic: s.Name(), Destination: u.Robot.Position}
}

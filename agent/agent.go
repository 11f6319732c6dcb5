package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/ipc"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/rules"
	"github.com/nstehr/striker/striker-core/tactic"
)

// Agent owns the decision-making for a single team connection.
type Agent struct {
	Conn   *ipc.Connection
	Team   string
	Config config.Config
	Engine *rules.Engine

	ai *AI
}

func New(conn *ipc.Connection, cfg config.Config, engine *rules.Engine) *Agent {
	return &Agent{Conn: conn, Config: cfg, Engine: engine}
}

// HandleHello completes the handshake so the bridge knows the core is ready.
// A seed in the hello restarts the optimizers with it.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Team = hello.Team
	if a.Conn != nil {
		a.Conn.Team = hello.Team
	}
	seed := a.Config.Seed
	if hello.Seed != nil {
		seed = *hello.Seed
	}
	a.ai = NewAI(a.Config, a.Engine, seed)
	slog.Info("team identified", "team", a.Team, "seed", seed)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleWorld runs one tick and answers with the robot commands.
func (a *Agent) HandleWorld(env ipc.Envelope) (*ipc.Envelope, error) {
	var world model.World
	if err := json.Unmarshal(env.Data, &world); err != nil {
		return nil, fmt.Errorf("unmarshal world: %w", err)
	}

	if a.ai == nil {
		slog.Warn("world received before hello, using configured seed", "team", a.Team)
		a.ai = NewAI(a.Config, a.Engine, a.Config.Seed)
	}

	intents := a.ai.Tick(&world)

	msg := ipc.IntentsMessage{
		Timestamp: world.Timestamp,
		Play:      a.ai.PlayName(),
		State:     string(a.ai.PlayState()),
		Commands:  make([]ipc.Envelope, 0, len(intents)),
	}
	for _, in := range intents {
		cmd, err := commandFor(in)
		if err != nil {
			return nil, err
		}
		msg.Commands = append(msg.Commands, cmd)
	}

	slog.Debug("tick",
		"team", a.Team,
		"timestamp", world.Timestamp,
		"play", msg.Play,
		"state", msg.State,
		"commands", len(msg.Commands),
	)

	out, err := ipc.NewEnvelope(ipc.TypeIntents, msg)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// commandFor translates an intent into the bridge's command vocabulary.
func commandFor(in tactic.Intent) (ipc.Envelope, error) {
	switch in.Kind {
	case tactic.IntentStop:
		return ipc.NewEnvelope(ipc.TypeStop, ipc.StopCommand{RobotID: in.RobotID})
	case tactic.IntentMove:
		return ipc.NewEnvelope(ipc.TypeMove, ipc.MoveCommand{
			RobotID:     in.RobotID,
			X:           in.Destination.X,
			Y:           in.Destination.Y,
			Orientation: in.Orientation.Radians(),
			Dribbler:    in.Dribbler,
		})
	case tactic.IntentKick:
		return ipc.NewEnvelope(ipc.TypeKick, ipc.KickCommand{
			RobotID: in.RobotID,
			X:       in.Destination.X,
			Y:       in.Destination.Y,
			TargetX: in.Target.X,
			TargetY: in.Target.Y,
			Speed:   in.Speed,
		})
	case tactic.IntentChip:
		return ipc.NewEnvelope(ipc.TypeChip, ipc.ChipCommand{
			RobotID:  in.RobotID,
			X:        in.Destination.X,
			Y:        in.Destination.Y,
			TargetX:  in.Target.X,
			TargetY:  in.Target.Y,
			Distance: in.Speed,
		})
	case tactic.IntentDribble:
		return ipc.NewEnvelope(ipc.TypeDribble, ipc.DribbleCommand{
			RobotID:     in.RobotID,
			X:           in.Destination.X,
			Y:           in.Destination.Y,
			Orientation: in.Orientation.Radians(),
		})
	default:
		return ipc.Envelope{}, fmt.Errorf("robot %d: unknown intent kind %q", in.RobotID, in.Kind)
	}
}

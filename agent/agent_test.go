package agent

import (
	"encoding/json"
	"testing"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/ipc"
	"github.com/nstehr/striker/striker-core/model"
	"github.com/nstehr/striker/striker-core/tactic"
)

func mustEnvelope(t *testing.T, msgType string, data any) ipc.Envelope {
	t.Helper()
	env, err := ipc.NewEnvelope(msgType, data)
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	return env
}

func TestHandleHello_SeedOverride(t *testing.T) {
	a := New(nil, config.Default(), testEngine(t))
	seed := int64(99)

	resp, err := a.HandleHello(mustEnvelope(t, ipc.TypeHello, ipc.HelloMessage{Team: "blue", Seed: &seed}))
	if err != nil {
		t.Fatalf("HandleHello failed: %v", err)
	}
	if resp == nil || resp.Type != ipc.TypeAck {
		t.Fatalf("expected ack, got %+v", resp)
	}
	if a.Team != "blue" {
		t.Errorf("expected team blue, got %q", a.Team)
	}
	if a.ai == nil || a.ai.seed != 99 {
		t.Errorf("expected AI seeded with 99, got %+v", a.ai)
	}
}

func TestHandleHello_DefaultSeed(t *testing.T) {
	a := New(nil, config.Default(), testEngine(t))
	if _, err := a.HandleHello(mustEnvelope(t, ipc.TypeHello, ipc.HelloMessage{Team: "yellow"})); err != nil {
		t.Fatalf("HandleHello failed: %v", err)
	}
	if a.ai.seed != config.DefaultSeed {
		t.Errorf("expected default seed %d, got %d", config.DefaultSeed, a.ai.seed)
	}
}

func TestHandleWorld_RepliesWithCommands(t *testing.T) {
	a := New(nil, config.Default(), testEngine(t))
	world := baseWorld(1.5)
	world.GameState = model.GameHalt

	resp, err := a.HandleWorld(mustEnvelope(t, ipc.TypeWorld, world))
	if err != nil {
		t.Fatalf("HandleWorld failed: %v", err)
	}
	if resp == nil || resp.Type != ipc.TypeIntents {
		t.Fatalf("expected intents reply, got %+v", resp)
	}

	var msg ipc.IntentsMessage
	if err := json.Unmarshal(resp.Data, &msg); err != nil {
		t.Fatalf("unmarshal intents: %v", err)
	}
	if msg.Timestamp != 1.5 || msg.Play != "halt" || msg.State != "halted" {
		t.Errorf("unexpected header %+v", msg)
	}
	if len(msg.Commands) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(msg.Commands))
	}
	for _, cmd := range msg.Commands {
		if cmd.Type != ipc.TypeStop {
			t.Errorf("expected stop command, got %q", cmd.Type)
		}
	}
}

func TestHandleWorld_BadPayload(t *testing.T) {
	a := New(nil, config.Default(), testEngine(t))
	_, err := a.HandleWorld(ipc.Envelope{Type: ipc.TypeWorld, Data: json.RawMessage(`{"timestamp":"soon"}`)})
	if err == nil {
		t.Fatal("expected error for malformed world")
	}
}

func TestCommandFor(t *testing.T) {
	kick := tactic.Intent{
		RobotID:     4,
		Kind:        tactic.IntentKick,
		Destination: model.Point{X: 1, Y: 2},
		Target:      model.Point{X: 4.5, Y: 0},
		Speed:       6,
	}
	env, err := commandFor(kick)
	if err != nil {
		t.Fatalf("commandFor failed: %v", err)
	}
	if env.Type != ipc.TypeKick {
		t.Fatalf("expected kick command, got %q", env.Type)
	}
	var cmd ipc.KickCommand
	if err := json.Unmarshal(env.Data, &cmd); err != nil {
		t.Fatalf("unmarshal kick: %v", err)
	}
	want := ipc.KickCommand{RobotID: 4, X: 1, Y: 2, TargetX: 4.5, TargetY: 0, Speed: 6}
	if cmd != want {
		t.Errorf("got %+v, want %+v", cmd, want)
	}

	chip, err := commandFor(tactic.Intent{RobotID: 2, Kind: tactic.IntentChip, Speed: 3})
	if err != nil {
		t.Fatalf("commandFor chip failed: %v", err)
	}
	var chipCmd ipc.ChipCommand
	if err := json.Unmarshal(chip.Data, &chipCmd); err != nil {
		t.Fatalf("unmarshal chip: %v", err)
	}
	if chipCmd.Distance != 3 {
		t.Errorf("expected chip distance 3, got %v", chipCmd.Distance)
	}

	if _, err := commandFor(tactic.Intent{RobotID: 1, Kind: "teleport"}); err == nil {
		t.Error("expected error for unknown intent kind")
	}
}

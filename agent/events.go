package agent

import (
	"fmt"
	"slices"

	"github.com/nstehr/striker/striker-core/evaluation"
	"github.com/nstehr/striker/striker-core/model"
)

// EventKind identifies a change between two consecutive world snapshots that
// the AI reacts to or logs.
type EventKind string

const (
	EventRefereeChanged    EventKind = "referee_changed"
	EventPossessionChanged EventKind = "possession_changed"
	EventBallKicked        EventKind = "ball_kicked"
	EventRobotLost         EventKind = "robot_lost"
)

// Event is a significant change detected by diffing world snapshots.
type Event struct {
	Kind      EventKind
	Timestamp float64
	Detail    string
}

// possession sides
const (
	sideNone     = "none"
	sideFriendly = "friendly"
	sideEnemy    = "enemy"
)

// kickedSpeed is the ball speed above which a ball that was slower on the
// previous frame counts as freshly kicked.
const kickedSpeed = 1.0

// worldSnapshot captures the diffable fields of one world.
type worldSnapshot struct {
	gameState  model.GameState
	possession string
	ballSpeed  float64
	robotIDs   map[int]bool // friendly robots on the field
}

func takeSnapshot(world *model.World, possessionThreshold float64) worldSnapshot {
	snap := worldSnapshot{
		gameState:  world.GameState,
		possession: possessionSide(world, possessionThreshold),
		ballSpeed:  world.Ball.Velocity.Len(),
		robotIDs:   make(map[int]bool, len(world.Friendly.Robots)),
	}
	for _, r := range world.Friendly.Robots {
		snap.robotIDs[r.ID] = true
	}
	return snap
}

// possessionSide prefers the friendly team when both sides are touching the ball.
func possessionSide(world *model.World, threshold float64) string {
	if _, ok := evaluation.Possessor(world.Friendly, world.Ball.Position, threshold); ok {
		return sideFriendly
	}
	if _, ok := evaluation.Possessor(world.Enemy, world.Ball.Position, threshold); ok {
		return sideEnemy
	}
	return sideNone
}

// detectEvents compares the snapshot of the world at timestamp against the
// previous one. The first world of a connection has nothing to compare against.
func detectEvents(cur worldSnapshot, prev *worldSnapshot, timestamp float64) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	if cur.gameState != prev.gameState {
		events = append(events, Event{
			Kind:      EventRefereeChanged,
			Timestamp: timestamp,
			Detail:    fmt.Sprintf("%s -> %s", prev.gameState, cur.gameState),
		})
	}

	if cur.possession != prev.possession {
		events = append(events, Event{
			Kind:      EventPossessionChanged,
			Timestamp: timestamp,
			Detail:    fmt.Sprintf("%s -> %s", prev.possession, cur.possession),
		})
	}

	if prev.ballSpeed < kickedSpeed && cur.ballSpeed >= kickedSpeed {
		events = append(events, Event{
			Kind:      EventBallKicked,
			Timestamp: timestamp,
			Detail:    fmt.Sprintf("ball at %.2f m/s", cur.ballSpeed),
		})
	}

	var lost []int
	for id := range prev.robotIDs {
		if !cur.robotIDs[id] {
			lost = append(lost, id)
		}
	}
	slices.Sort(lost)
	for _, id := range lost {
		events = append(events, Event{
			Kind:      EventRobotLost,
			Timestamp: timestamp,
			Detail:    fmt.Sprintf("robot %d no longer visible", id),
		})
	}

	return events
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type event struct{ n int }

func TestMachineFiresFirstMatchingGuard(t *testing.T) {
	var log []string
	m := New("test", "a", []Transition[event]{
		{From: "a", Guard: func(e event) bool { return e.n > 5 }, Action: func(event) { log = append(log, "big") }, To: "b"},
		{From: "a", Guard: func(e event) bool { return e.n > 0 }, Action: func(event) { log = append(log, "small") }, To: "c"},
		{From: "a", Action: func(event) { log = append(log, "stay") }, To: "a"},
	})

	assert.True(t, m.Process(event{n: 0}))
	assert.Equal(t, State("a"), m.Current())

	assert.True(t, m.Process(event{n: 9}))
	assert.True(t, m.Is("b"))
	assert.Equal(t, []string{"stay", "big"}, log)
}

func TestMachineNoTransition(t *testing.T) {
	m := New("test", "a", []Transition[event]{
		{From: "a", Guard: func(event) bool { return false }, To: "b"},
	})

	assert.False(t, m.Process(event{}))
	assert.True(t, m.Is("a"))
}

func TestMachineChainsThroughTransientStates(t *testing.T) {
	var actions []string
	record := func(name string) func(event) {
		return func(event) { actions = append(actions, name) }
	}
	m := New("test", "setup", []Transition[event]{
		{From: "setup", Guard: func(e event) bool { return e.n == 1 }, Action: record("setup"), To: "deciding"},
		{From: "setup", Action: record("align"), To: "setup"},
		{From: "deciding", Guard: func(e event) bool { return e.n == 1 }, Action: record("shoot"), To: "shooting"},
		{From: "deciding", Action: record("search"), To: "searching"},
		{From: "shooting", Action: record("kick"), To: "shooting"},
	}, "deciding")

	m.Process(event{n: 0})
	assert.True(t, m.Is("setup"))

	m.Process(event{n: 1})
	assert.True(t, m.Is("shooting"))
	assert.Equal(t, []string{"align", "setup", "shoot"}, actions)
}

func TestMachineBoundsTransientLoops(t *testing.T) {
	count := 0
	m := New("test", "loop", []Transition[event]{
		{From: "loop", Action: func(event) { count++ }, To: "loop"},
	}, "loop")

	assert.True(t, m.Process(event{}))
	assert.Equal(t, maxHops, count)
}

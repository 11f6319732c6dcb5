package play

import (
	"fmt"

	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/passing"
	"github.com/nstehr/striker/striker-core/tactic"
)

// Play names accepted by New and used by the selection rules.
const (
	NameHalt     = "halt"
	NameFreeKick = "free_kick"
	NameKeepAway = "keep_away"
)

// Play is a team-level behavior. Update is called once per tick and pushes the
// tactics to run through common.SetTactics.
type Play interface {
	Name() string
	Update(common tactic.Common)
	// Done reports that the play has finished and can be replaced.
	Done() bool
	State() fsm.State
}

// Deps are the long lived collaborators plays borrow from the AI.
type Deps struct {
	Config    config.Config
	Rater     *passing.FieldRater
	Receivers *passing.ReceiverSearch
}

// New builds a fresh play instance by name.
func New(name string, deps Deps) (Play, error) {
	switch name {
	case NameHalt:
		return NewHaltPlay(), nil
	case NameFreeKick:
		return NewFreeKickPlay(deps.Config), nil
	case NameKeepAway:
		return NewKeepAwayPlay(deps), nil
	default:
		return nil, fmt.Errorf("unknown play %q", name)
	}
}

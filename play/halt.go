package play

import (
	"github.com/nstehr/striker/striker-core/fsm"
	"github.com/nstehr/striker/striker-core/tactic"
)

const Halted fsm.State = "halted"

// HaltPlay stops every robot. It never finishes; the referee moving on is
// what replaces it.
type HaltPlay struct {
	stops []*tactic.Stop
}

func NewHaltPlay() *HaltPlay { return &HaltPlay{} }

func (p *HaltPlay) Name() string { return NameHalt }

func (p *HaltPlay) Update(c tactic.Common) {
	for len(p.stops) < len(c.World.Friendly.Robots) {
		p.stops = append(p.stops, tactic.NewStop())
	}
	tier := make([]tactic.Tactic, len(c.World.Friendly.Robots))
	for i := range tier {
		tier[i] = p.stops[i]
	}
	c.SetTactics(tactic.PriorityTactics{tier})
}

func (p *HaltPlay) Done() bool { return false }

func (p *HaltPlay) State() fsm.State { return Halted }

package session

import (
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
	"github.com/oisee/clogcalc/pkg/unit"
	"github.com/oisee/clogcalc/pkg/workgroup"
)

// Program is a compiled stack expression: a workgroup graph plus the ID of
// its output unit and of the to-rational accumulator wired to watch it.
type Program struct {
	WG    *workgroup.Workgroup
	Out   workgroup.UnitID
	ToRat workgroup.UnitID
	Root  *Node
}

// Compile parses expr and builds it into a fresh workgroup graph, mirroring
// the reference REPL's stack_into_workgroup: the final output unit is
// additionally wired into a passive (egest-disabled) Lft whose interval and
// rounding queries supply the session's rational readout.
func Compile(expr string) (*Program, error) {
	root, err := RollStackExpression(expr)
	if err != nil {
		return nil, err
	}

	wg := workgroup.New()
	out, err := StackIntoWorkgroup(wg, root)
	if err != nil {
		return nil, err
	}
	toRat := wg.AddLft(unit.Lft{Mat: [4]*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(1)}, EgestEnabled: false}, out)

	return &Program{WG: wg, Out: out, ToRat: toRat, Root: root}, nil
}

// Result is the outcome of running a Program for a fixed egest budget.
type Result struct {
	Terms     []term.Term
	Trunc     *big.Int
	Floor     *big.Int
	Ceil      *big.Int
	Round     *big.Int
	Endpoint0 unit.Interval
	Endpoint1 unit.Interval
}

// Run cycles the program's workgroup for egests*3 phase-cycles, collecting
// the output unit's egested term on every cycle that lands on IngestX
// (matching the reference REPL's collection point), then reads off the
// to_rat accumulator's rational bracket.
func Run(p *Program, egests uint32) Result {
	var terms []term.Term
	for i := uint32(0); i < egests*3; i++ {
		p.WG.Cycle()
		if p.WG.CurrentPhase == workgroup.IngestX {
			terms = append(terms, p.WG.GetUnit(p.Out).Z)
		}
	}

	lft, _ := p.WG.GetUnit(p.ToRat).Inner.(*unit.Lft)
	i0, i1 := lft.Intervals()
	return Result{
		Terms:     terms,
		Trunc:     lft.Trunc(),
		Floor:     lft.Floor(),
		Ceil:      lft.Ceil(),
		Round:     lft.Round(),
		Endpoint0: i0,
		Endpoint1: i1,
	}
}

package session

import (
	"fmt"
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
	"github.com/oisee/clogcalc/pkg/unit"
	"github.com/oisee/clogcalc/pkg/workgroup"
)

// BuildError reports why a parsed AST could not be compiled into a
// workgroup graph.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string { return e.Reason }

func mat8(a, b, c, d, e, f, g, h int64) [8]*big.Int {
	return [8]*big.Int{
		big.NewInt(a), big.NewInt(b), big.NewInt(c), big.NewInt(d),
		big.NewInt(e), big.NewInt(f), big.NewInt(g), big.NewInt(h),
	}
}

// StackIntoWorkgroup compiles a parsed AST into a workgroup graph and
// returns the ID of its root (final output) unit.
func StackIntoWorkgroup(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	switch n.Kind {
	case NodeAdd:
		return buildArith(wg, n, mat8(0, 1, 1, 0, 0, 0, 0, 1))
	case NodeSub:
		return buildArith(wg, n, mat8(0, 1, -1, 0, 0, 0, 0, 1))
	case NodeMul:
		return buildArith(wg, n, mat8(1, 0, 0, 0, 0, 0, 0, 1))
	case NodeDiv:
		return buildArith(wg, n, mat8(0, 1, 0, 0, 0, 0, 1, 0))
	case NodeMod:
		return buildModulo(wg, n)
	case NodeCompare:
		return buildCompare(wg, n)
	case NodeFloor, NodeCeil, NodeRound:
		return buildRounding(wg, n)
	case NodePow:
		return buildPow(wg, n)
	case NodeLog:
		return buildLog(wg, n)
	case NodeAbs:
		return buildAbs(wg, n)
	case NodeSqrt:
		x, err := StackIntoWorkgroup(wg, n.Left)
		if err != nil {
			return 0, err
		}
		return wg.AddSqrt(unit.NewSqrt(), x), nil
	case NodeExp:
		return buildExp(wg, n)
	case NodeLn:
		return buildLn(wg, n)
	case NodeLog2:
		x, err := StackIntoWorkgroup(wg, n.Left)
		if err != nil {
			return 0, err
		}
		l := workgroup.NewLog2()
		return wg.AddUnitWithX(&l, x), nil
	case NodeDecimal:
		return buildDecimal(wg, n), nil
	case NodeConstant:
		return buildConstant(wg, n), nil
	case NodeCLog:
		terms := append([]term.Term(nil), n.CLogTerms...)
		i := 0
		next := func() term.Term {
			if i >= len(terms) {
				return term.Inf
			}
			t := terms[i]
			i++
			return t
		}
		return wg.AddCLogs(unit.NewCLogs(next)), nil
	case NodeCFrac:
		terms := append([]int64(nil), n.CFracTerms...)
		i := 0
		next := func() (unit.CFracQuad, bool) {
			if i >= len(terms) {
				return unit.CFracQuad{}, false
			}
			q := unit.CFracQuad{P: terms[i], Q: 1, R: 1, S: 1}
			i++
			return q, true
		}
		return wg.AddFromCFrac(unit.NewFromCFrac(next)), nil
	default:
		return 0, &BuildError{Reason: "unhandled node kind"}
	}
}

func buildArith(wg *workgroup.Workgroup, n *Node, m [8]*big.Int) (workgroup.UnitID, error) {
	x, err := StackIntoWorkgroup(wg, n.Right)
	if err != nil {
		return 0, err
	}
	y, err := StackIntoWorkgroup(wg, n.Left)
	if err != nil {
		return 0, err
	}
	return wg.AddArith(unit.NewArith(m), x, y), nil
}

func buildModulo(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	x, err := StackIntoWorkgroup(wg, n.Right)
	if err != nil {
		return 0, err
	}
	y, err := StackIntoWorkgroup(wg, n.Left)
	if err != nil {
		return 0, err
	}
	return wg.AddModulo(unit.NewModulo(), x, y), nil
}

func buildCompare(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	x, err := StackIntoWorkgroup(wg, n.Left)
	if err != nil {
		return 0, err
	}
	y, err := StackIntoWorkgroup(wg, n.Right)
	if err != nil {
		return 0, err
	}
	return wg.AddCompare(unit.NewCompare(), x, y), nil
}

// buildRounding passes its first operand through unchanged. Fixed-precision
// rounding is an explicit non-goal, and floor/ceil/round as true binary
// stream operators were left unimplemented upstream; the real readout
// lives in the runner, which always reports trunc/floor/ceil/round of the
// whole expression's final rational bracket regardless of node kind. The
// second operand is parsed (so the stack discipline still holds) but not
// wired into the graph.
func buildRounding(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	return StackIntoWorkgroup(wg, n.Right)
}

// buildPow follows the same first-token-is-principal convention as Div
// ("a b /" = a/b): "base exp ^" pushes base first, so base is n.Right (the
// first-pushed, second-popped operand) and the exponent literal is n.Left.
func buildPow(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	base, err := StackIntoWorkgroup(wg, n.Right)
	if err != nil {
		return 0, err
	}
	if n.Left.Kind != NodeDecimal || n.Left.Pow != 0 {
		return 0, &BuildError{Reason: "pow exponent must be a non-negative integer literal"}
	}
	if !n.Left.Word.IsUint64() {
		return 0, &BuildError{Reason: "pow exponent out of range"}
	}
	exp := n.Left.Word.Uint64()
	if exp > uint64(^uint32(0)) {
		return 0, &BuildError{Reason: "pow exponent out of range"}
	}
	return workgroup.Pow(wg, base, uint32(exp)), nil
}

// buildLog mirrors Div's operand convention: "x base log" pushes x first,
// so x is n.Right and base is n.Left.
func buildLog(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	base, err := StackIntoWorkgroup(wg, n.Left)
	if err != nil {
		return 0, err
	}
	x, err := StackIntoWorkgroup(wg, n.Right)
	if err != nil {
		return 0, err
	}
	return workgroup.Log(wg, x, base), nil
}

// buildAbs expresses |x| as sqrt(x*x), grounded on the same identity used
// throughout the original's missing cases: squaring erases sign, and
// Sqrt's principal branch recovers the nonnegative root.
func buildAbs(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	x, err := StackIntoWorkgroup(wg, n.Left)
	if err != nil {
		return 0, err
	}
	sq := wg.AddArith(unit.NewArith(mat8(1, 0, 0, 0, 0, 0, 0, 1)), x, x)
	return wg.AddSqrt(unit.NewSqrt(), sq), nil
}

func buildExp(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	x, err := StackIntoWorkgroup(wg, n.Left)
	if err != nil {
		return 0, err
	}
	e := workgroup.NewExpTaylor()
	return wg.AddUnitWithX(&e, x), nil
}

// buildLn expresses ln(x) as log2(x)/log2(e), since the original leaves
// natural log unimplemented; workgroup.Log already composes two Log2
// macros through one dividing Arith, so this just supplies e as the base.
func buildLn(wg *workgroup.Workgroup, n *Node) (workgroup.UnitID, error) {
	x, err := StackIntoWorkgroup(wg, n.Left)
	if err != nil {
		return 0, err
	}
	base := wg.AddFromCFrac(unit.E())
	return workgroup.Log(wg, x, base), nil
}

// buildDecimal wires an exact-value Lft: with both corners of its mat
// equal to word/10^pow, its interval has zero width before a single term
// is ever ingested (it has no x source, so none ever will be).
func buildDecimal(wg *workgroup.Workgroup, n *Node) workgroup.UnitID {
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Pow)), nil)
	word := new(big.Int).Set(n.Word)
	l := unit.Lft{Mat: [4]*big.Int{word, new(big.Int).Set(word), den, new(big.Int).Set(den)}, EgestEnabled: true}
	return wg.AddLftRoot(l)
}

func buildConstant(wg *workgroup.Workgroup, n *Node) workgroup.UnitID {
	switch n.Constant {
	case ConstPi:
		return wg.AddFromCFrac(unit.Pi())
	case ConstE:
		return wg.AddFromCFrac(unit.E())
	case ConstInf:
		return wg.AddCLogs(unit.NewCLogs(func() term.Term { return term.Inf }))
	default:
		panic(fmt.Sprintf("unhandled constant kind %d", n.Constant))
	}
}

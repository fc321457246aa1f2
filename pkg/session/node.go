// Package session implements the REPL-facing layer: parsing a
// whitespace-separated stack (RPN) expression into an AST, compiling that
// AST into a workgroup DAG, running it for a fixed number of cycles, and
// exporting the resulting term stream and rational bounds.
package session

import (
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
)

// NodeKind tags which of the stack expression's operators or leaves a
// Node represents.
type NodeKind uint8

const (
	NodeAdd NodeKind = iota
	NodeSub
	NodeMul
	NodeDiv
	NodeFloor
	NodeCeil
	NodeRound
	NodeMod
	NodePow
	NodeLog
	NodeCompare
	NodeAbs
	NodeSqrt
	NodeExp
	NodeLn
	NodeLog2
	NodeDecimal
	NodeConstant
	NodeCLog
	NodeCFrac
)

// ConstantKind names a nullary built-in value.
type ConstantKind uint8

const (
	ConstPi ConstantKind = iota
	ConstE
	ConstInf
)

// Node is one AST node of a parsed stack expression. Only the fields
// relevant to its Kind are populated: binary ops use Left/Right, unary
// ops use Left, and the four leaf kinds (Decimal, Constant, CLog, CFrac)
// use their own dedicated fields.
type Node struct {
	Kind NodeKind

	Left, Right *Node

	// Decimal: value is Word * 10^(-Pow).
	Word *big.Int
	Pow  uint16

	Constant ConstantKind

	CLogTerms []term.Term

	CFracTerms []int64
}

// Package unit implements the continued-logarithm transducers: Lft, Arith,
// Sqrt, Modulo, Compare, FromCFrac and CLogs. Each is a small state machine
// over a matrix of *big.Int coefficients; ingesting a term refines the
// transducer's domain, egesting a term refines its range.
package unit

import "github.com/oisee/clogcalc/pkg/term"

// Unit is the common shape every transducer implements: feed terms in on
// X and Y, pull terms out on Z.
//
// The concrete family is closed by convention rather than by the type
// system (Go interfaces are open-world, and pkg/workgroup's ExpTaylor and
// Log2 macros are themselves Units defined in a separate package, so a
// sealed-interface trick would just have to be broken again): the only
// kinds meant to implement Unit are Lft, Arith, Sqrt, Modulo, Compare,
// FromCFrac, CLogs (all in this package) and ExpTaylor, Log2 (in
// pkg/workgroup). A Workgroup slot holds a Unit value and dispatches
// through this interface instead of a switch over a tag, which is the
// idiomatic Go rendering of the "tagged variant" design note.
type Unit interface {
	IngestX(x term.Term)
	IngestY(y term.Term)
	EgestZ() term.Term
}

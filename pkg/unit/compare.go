package unit

import "github.com/oisee/clogcalc/pkg/term"

// Compare watches x-y through an Arith and feeds the result into an
// egestion-disabled Lft, so the interval endpoints of x-y's sign are
// available via Endpoints. It never egests a term downstream of itself:
// a three-way ordering has no continued-logarithm representation, only
// an interval that may or may not contain zero.
type Compare struct {
	arith Arith
	lft   Lft
}

// NewCompare builds a transducer tracking the sign of x-y.
func NewCompare() Compare {
	return Compare{
		arith: NewArith(quadMat8([8]int64{0, 1, -1, 0, 0, 0, 0, 1})),
		lft:   Lft{Mat: linMat4([4]int64{1, 0, 0, 1}), EgestEnabled: false},
	}
}

// Endpoints exposes the x=oo and x=1 interval endpoints of x-y accumulated
// so far, without committing to a single three-way ordering verdict.
func (c *Compare) Endpoints() (Interval, Interval) {
	return c.lft.Intervals()
}

func (c *Compare) IngestX(x term.Term) {
	c.arith.IngestX(x)
}

func (c *Compare) IngestY(y term.Term) {
	c.arith.IngestY(y)
	c.lft.IngestX(c.arith.EgestZ())
}

// EgestZ always returns Empty: Compare has no downstream stream of its own.
func (c *Compare) EgestZ() term.Term {
	return term.Empty
}

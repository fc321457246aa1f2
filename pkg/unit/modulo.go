package unit

import (
	"math/big"

	"github.com/golang/glog"

	"github.com/oisee/clogcalc/pkg/term"
)

// Modulo computes r = x - trunc(x/y)*y. Unlike Arith's continuous
// refinement, a modulus has to commit to one side of an integer boundary
// before it can egest anything, so it runs a hidden Lft division to watch
// for that trunc point settling and only then allocates the Arith that
// actually produces output.
//
// Committing early is an accepted source of error: retracted input that
// turns out to sit exactly on the boundary can make Modulo latch onto the
// wrong side. There is no way around that short of waiting for x and y to
// be fully ingested, which defeats the point of a lazy stream.
type Modulo struct {
	div      Arith
	quotient Lft
	x        Lft
	y        Lft
	out      *Arith
}

// NewModulo builds a fresh x%y transducer.
func NewModulo() Modulo {
	return Modulo{
		div:      NewArith(quadMat8([8]int64{0, 1, 0, 0, 0, 0, 1, 0})),
		quotient: Lft{Mat: linMat4([4]int64{1, 0, 0, 1}), EgestEnabled: false},
		x:        NewIdentityLft(),
		y:        NewIdentityLft(),
	}
}

func (m *Modulo) IngestX(x term.Term) {
	m.div.IngestX(x)
	m.x.IngestX(x)
	if m.out != nil {
		m.out.IngestX(m.x.EgestZ())
	}
}

func (m *Modulo) IngestY(y term.Term) {
	m.div.IngestY(y)
	m.quotient.IngestX(m.div.EgestZ())
	m.y.IngestX(y)
	if m.out != nil {
		m.out.IngestY(m.y.EgestZ())
	}

	if m.out == nil {
		if m.quotient.IsInf() || m.quotient.IsUndefined() {
			z := NewArith(quadMat8([8]int64{0, 0, 0, 0, 0, 0, 0, 0}))
			m.out = &z
		}
		if !m.x.IsInf() && m.y.IsInf() {
			z := NewArith(quadMat8([8]int64{1, 0, 0, 0, 0, 0, 1, 0}))
			m.out = &z
		}
		if val := m.quotient.Trunc(); val != nil {
			glog.V(2).Infof("modulo: settling on trunc %s", val.String())
			z := NewArith([8]*big.Int{bi(0), bi(1), neg(val), bi(0), bi(0), bi(0), bi(0), bi(1)})
			m.out = &z
		}
	}
}

func (m *Modulo) EgestZ() term.Term {
	if m.out == nil {
		return term.Empty
	}
	return m.out.EgestZ()
}

package unit

import (
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
)

// CFracQuad is one generalized-continued-fraction step: it replaces x
// with p/q + (r/s)/x.
type CFracQuad struct {
	P, Q, R, S int64
}

// FromCFrac converts a generalized continued fraction, produced one
// quadruple at a time by Next, into a continued-logarithm stream. It
// never ingests: the only input it consumes is its own Next function,
// pulled once per egest.
//
// This is how Pi and E are exposed as CLog streams: both converge from a
// generalized continued fraction with a simple closed-form term rule,
// which is far cheaper than deriving them from Taylor series through
// Arith/ExpTaylor.
type FromCFrac struct {
	Next func() (CFracQuad, bool)
	Mat  [4]*big.Int
}

// NewFromCFrac wraps a quadruple generator as a CLog source.
func NewFromCFrac(next func() (CFracQuad, bool)) FromCFrac {
	return FromCFrac{Next: next, Mat: linMat4([4]int64{1, 0, 0, 1})}
}

// E returns the standard continued fraction for e: 2 + 1/(1 + 1/(2 + 1/(1
// + 1/(1 + 1/(4 + ...))))), generalized here as the coefficient pattern
// (2,1,1,1), then (1,1,1,1), (2+2k,1,1,1), (1,1,1,1) repeating every three
// steps for k = 0, 1, 2, ...
func E() FromCFrac {
	i := -1
	return NewFromCFrac(func() (CFracQuad, bool) {
		i++
		switch {
		case i == 0:
			return CFracQuad{2, 1, 1, 1}, true
		case i%3 == 2:
			return CFracQuad{2 + 2*(int64(i)/3), 1, 1, 1}, true
		default:
			return CFracQuad{1, 1, 1, 1}, true
		}
	})
}

// Pi returns the generalized continued fraction 4/(1 + 1^2/(3 + 2^2/(5 +
// 3^2/(7 + ...)))), seeded with an initial mat of [0,4,1,0].
func Pi() FromCFrac {
	i := int64(0)
	f := NewFromCFrac(func() (CFracQuad, bool) {
		i++
		return CFracQuad{i*2 - 1, 1, i * i, 1}, true
	})
	f.Mat = linMat4([4]int64{0, 4, 1, 0})
	return f
}

func (f *FromCFrac) IngestX(term.Term) {}
func (f *FromCFrac) IngestY(term.Term) {}

func (f *FromCFrac) EgestZ() term.Term {
	if quad, ok := f.Next(); ok {
		p, q, r, s := bi(quad.P), bi(quad.Q), bi(quad.R), bi(quad.S)
		i := clone(f.Mat[0])
		f.Mat[0] = add(mul(f.Mat[0], mul(p, s)), mul(f.Mat[1], mul(q, s)))
		f.Mat[1] = mul(i, mul(r, q))
		i = clone(f.Mat[2])
		f.Mat[2] = add(mul(f.Mat[2], mul(p, s)), mul(f.Mat[3], mul(q, s)))
		f.Mat[3] = mul(i, mul(r, q))
	} else {
		f.Mat[1] = clone(f.Mat[0])
		f.Mat[3] = clone(f.Mat[2])
	}

	n0 := clone(f.Mat[0])
	n1 := add(f.Mat[0], f.Mat[1])
	d0 := clone(f.Mat[2])
	d1 := add(f.Mat[2], f.Mat[3])

	if isZero(n0) && isZero(n1) && isZero(d0) && isZero(d1) {
		return term.Undefined
	}
	if isZero(d0) && isZero(d1) {
		return term.Inf
	}
	if (f.Mat[0].Sign() < 0) != (f.Mat[2].Sign() < 0) {
		f.Mat[0] = neg(f.Mat[0])
		f.Mat[1] = neg(f.Mat[1])
		return term.Neg
	} else if rsh(n0, 1).Cmp(d0) >= 0 && rsh(n1, 1).Cmp(d1) >= 0 {
		if !odd(f.Mat[0]) && !odd(f.Mat[1]) {
			f.Mat[0] = rsh(f.Mat[0], 1)
			f.Mat[1] = rsh(f.Mat[1], 1)
		} else {
			f.Mat[2] = lsh(f.Mat[2], 1)
			f.Mat[3] = lsh(f.Mat[3], 1)
		}
		return term.Ord
	} else if n0.Cmp(d0) >= 0 && n1.Cmp(d1) >= 0 && rsh(n0, 1).Cmp(d0) < 0 && rsh(n1, 1).Cmp(d1) < 0 {
		f.Mat[0] = sub(f.Mat[0], f.Mat[2])
		f.Mat[1] = sub(f.Mat[1], f.Mat[3])
		f.Mat[0], f.Mat[2] = f.Mat[2], f.Mat[0]
		f.Mat[1], f.Mat[3] = f.Mat[3], f.Mat[1]
		return term.DRec
	} else if n0.Cmp(d0) < 0 && n1.Cmp(d1) < 0 {
		f.Mat[0], f.Mat[2] = f.Mat[2], f.Mat[0]
		f.Mat[1], f.Mat[3] = f.Mat[3], f.Mat[1]
		return term.Rec
	}
	return term.Empty
}

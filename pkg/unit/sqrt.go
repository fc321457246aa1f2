package unit

import (
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
)

// SqrtSpeculate enables two additional speculative branches (ord_spec,
// drec_spec) in Sqrt's decision ladder, letting it egest before both
// endpoint samples fully agree. Disabling it makes Sqrt strictly
// interval-contracting at the cost of slower output.
const SqrtSpeculate = true

// Sqrt computes the square root of its single input stream x via a
// bivariate matrix [a,b,c,d,e,f,g,h] that represents a value y satisfying
// y^2 = x, tracked through the same corner-sampling technique as Arith
// but specialized to one variable appearing quadratically. It egests on
// the same ladder as Lft/Arith but must sample multiple points along each
// corner's linear-fractional slice to confirm monotonic well-definedness,
// since a naive two-endpoint check can't see a turning point in between.
type Sqrt struct {
	mat [8]*big.Int
}

// NewSqrt seeds the transducer for sqrt(x), x to be ingested via IngestX.
func NewSqrt() Sqrt {
	return Sqrt{mat: quadMat8([8]int64{0, 1, 0, 0, 0, 0, 1, 0})}
}

func (s *Sqrt) feedbackOrd() term.Term {
	if !odd(s.mat[0]) && !odd(s.mat[1]) && !odd(s.mat[2]) && !odd(s.mat[3]) {
		s.mat[0] = rsh(s.mat[0], 1)
		s.mat[1] = rsh(s.mat[1], 1)
		s.mat[2] = rsh(s.mat[2], 1)
		s.mat[3] = rsh(s.mat[3], 1)
	} else {
		s.mat[4] = lsh(s.mat[4], 1)
		s.mat[5] = lsh(s.mat[5], 1)
		s.mat[6] = lsh(s.mat[6], 1)
		s.mat[7] = lsh(s.mat[7], 1)
	}
	if !odd(s.mat[1]) && !odd(s.mat[3]) && !odd(s.mat[5]) && !odd(s.mat[7]) {
		s.mat[1] = rsh(s.mat[1], 1)
		s.mat[3] = rsh(s.mat[3], 1)
		s.mat[5] = rsh(s.mat[5], 1)
		s.mat[7] = rsh(s.mat[7], 1)
	} else {
		s.mat[0] = lsh(s.mat[0], 1)
		s.mat[2] = lsh(s.mat[2], 1)
		s.mat[4] = lsh(s.mat[4], 1)
		s.mat[6] = lsh(s.mat[6], 1)
	}
	return term.Ord
}

func (s *Sqrt) feedbackDRec() term.Term {
	s.mat[0] = sub(s.mat[0], s.mat[4])
	s.mat[1] = sub(s.mat[1], s.mat[5])
	s.mat[2] = sub(s.mat[2], s.mat[6])
	s.mat[3] = sub(s.mat[3], s.mat[7])
	s.mat[0], s.mat[4] = s.mat[4], s.mat[0]
	s.mat[1], s.mat[5] = s.mat[5], s.mat[1]
	s.mat[2], s.mat[6] = s.mat[6], s.mat[2]
	s.mat[3], s.mat[7] = s.mat[7], s.mat[3]
	s.mat[0], s.mat[1] = s.mat[1], s.mat[0]
	s.mat[2], s.mat[3] = s.mat[3], s.mat[2]
	s.mat[4], s.mat[5] = s.mat[5], s.mat[4]
	s.mat[6], s.mat[7] = s.mat[7], s.mat[6]
	s.mat[0] = add(s.mat[0], s.mat[1])
	s.mat[2] = add(s.mat[2], s.mat[3])
	s.mat[4] = add(s.mat[4], s.mat[5])
	s.mat[6] = add(s.mat[6], s.mat[7])
	return term.DRec
}

func (s *Sqrt) feedbackRec() term.Term {
	s.mat[0], s.mat[4] = s.mat[4], s.mat[0]
	s.mat[1], s.mat[5] = s.mat[5], s.mat[1]
	s.mat[2], s.mat[6] = s.mat[6], s.mat[2]
	s.mat[3], s.mat[7] = s.mat[7], s.mat[3]
	s.mat[0], s.mat[1] = s.mat[1], s.mat[0]
	s.mat[2], s.mat[3] = s.mat[3], s.mat[2]
	s.mat[4], s.mat[5] = s.mat[5], s.mat[4]
	s.mat[6], s.mat[7] = s.mat[7], s.mat[6]
	return term.Rec
}

func (s *Sqrt) feedbackNeg() term.Term {
	s.mat[1] = neg(s.mat[1])
	s.mat[3] = neg(s.mat[3])
	s.mat[4] = neg(s.mat[4])
	s.mat[6] = neg(s.mat[6])
	return term.Neg
}

func (s *Sqrt) IngestX(x term.Term) {
	switch x {
	case term.Empty:
	case term.Ord:
		if !odd(s.mat[2]) && !odd(s.mat[3]) && !odd(s.mat[6]) && !odd(s.mat[7]) {
			s.mat[2] = rsh(s.mat[2], 1)
			s.mat[3] = rsh(s.mat[3], 1)
			s.mat[6] = rsh(s.mat[6], 1)
			s.mat[7] = rsh(s.mat[7], 1)
		} else {
			s.mat[0] = lsh(s.mat[0], 1)
			s.mat[1] = lsh(s.mat[1], 1)
			s.mat[4] = lsh(s.mat[4], 1)
			s.mat[5] = lsh(s.mat[5], 1)
		}
	case term.DRec:
		s.mat[0], s.mat[2] = s.mat[2], s.mat[0]
		s.mat[1], s.mat[3] = s.mat[3], s.mat[1]
		s.mat[4], s.mat[6] = s.mat[6], s.mat[4]
		s.mat[5], s.mat[7] = s.mat[7], s.mat[5]
		s.mat[0] = add(s.mat[0], s.mat[2])
		s.mat[1] = add(s.mat[1], s.mat[3])
		s.mat[4] = add(s.mat[4], s.mat[6])
		s.mat[5] = add(s.mat[5], s.mat[7])
	case term.Rec:
		s.mat[0], s.mat[2] = s.mat[2], s.mat[0]
		s.mat[1], s.mat[3] = s.mat[3], s.mat[1]
		s.mat[4], s.mat[6] = s.mat[6], s.mat[4]
		s.mat[5], s.mat[7] = s.mat[7], s.mat[5]
	case term.Neg:
		s.mat[0] = neg(s.mat[0])
		s.mat[1] = neg(s.mat[1])
		s.mat[4] = neg(s.mat[4])
		s.mat[5] = neg(s.mat[5])
	case term.Inf:
		s.mat[2] = clone(s.mat[0])
		s.mat[3] = clone(s.mat[1])
		s.mat[6] = clone(s.mat[4])
		s.mat[7] = clone(s.mat[5])
	case term.Undefined:
		s.mat = quadMat8([8]int64{0, 0, 0, 0, 0, 0, 0, 0})
	}
}

// IngestY is unused: sqrt has a single input stream.
func (s *Sqrt) IngestY(term.Term) {}

type lftDecision struct {
	ord, drec, rec, neg, ordSpec, drecSpec bool
}

// decideLft classifies where y = (a*t+b)/(c*t+d) sits for t ranging over
// [1, oo], by sampling the asymptote and a handful of points (t=2, t=1,
// t=0, t=4, t=1/2) and checking which of the six output ranges (ord:
// [2,oo], drec: [1,2), rec: [0,1), neg: [-oo,0), and two speculative
// widenings of ord/drec) every sample point falls in.
func decideLft(a, b, c, d *big.Int) lftDecision {
	var dec lftDecision

	cZero := isZero(c)
	aNum, aDen := neg(d), clone(c)
	var aSign term.Sign
	if !cZero {
		aSign = term.Rationalize(aNum, aDen)
	}

	y2Num, y2Den := add(mul(bi(2), a), b), add(mul(bi(2), c), d)
	term.Rationalize(y2Num, y2Den)
	y1Num, y1Den := add(a, b), add(c, d)
	term.Rationalize(y1Num, y1Den)
	y0Num, y0Den := clone(b), clone(d)
	y0Sign := term.Rationalize(y0Num, y0Den)

	if aNum.Cmp(mul(bi(2), aDen)) >= 0 || y2Num.Cmp(mul(bi(2), y2Den)) >= 0 {
		dec.ord = true
	}
	if aNum.Cmp(mul(bi(2), aDen)) < 0 && y2Num.Cmp(mul(bi(2), y2Den)) < 0 &&
		(aNum.Cmp(aDen) >= 0 || y1Num.Cmp(y1Den) >= 0) {
		dec.drec = true
	}
	if aNum.Cmp(aDen) < 0 && y1Num.Cmp(y1Den) < 0 && (aNum.Sign() >= 0 || y0Num.Sign() >= 0) {
		dec.rec = true
	}
	if (cZero || aSign == term.Minus) && y0Sign == term.Minus {
		dec.neg = true
	}

	y4Num, y4Den := add(mul(bi(4), a), b), add(mul(bi(4), c), d)
	term.Rationalize(y4Num, y4Den)
	yhNum, yhDen := add(a, mul(bi(2), b)), add(c, mul(bi(2), d))
	term.Rationalize(yhNum, yhDen)

	if aNum.Cmp(mul(bi(4), aDen)) < 0 && y4Num.Cmp(mul(bi(4), y4Den)) < 0 &&
		(aNum.Cmp(aDen) >= 0 || y1Num.Cmp(y1Den) >= 0) {
		dec.ordSpec = true
	}
	if aNum.Cmp(mul(bi(2), aDen)) < 0 && y2Num.Cmp(mul(bi(2), y2Den)) < 0 &&
		(mul(bi(2), aNum).Cmp(aDen) >= 0 || mul(bi(2), yhNum).Cmp(yhDen) >= 0) {
		dec.drecSpec = true
	}
	return dec
}

func (s *Sqrt) EgestZ() term.Term {
	if isZero(s.mat[4]) && isZero(s.mat[6]) {
		allNonPositive := true
		for _, c := range s.mat {
			if c.Sign() > 0 {
				allNonPositive = false
				break
			}
		}
		if allNonPositive {
			return term.Undefined
		}
		return term.Inf
	}

	definedOo := mul(s.mat[0], s.mat[5]).Cmp(mul(s.mat[1], s.mat[4])) <= 0
	definedOne := mul(add(s.mat[0], s.mat[2]), add(s.mat[5], s.mat[7])).
		Cmp(mul(add(s.mat[1], s.mat[3]), add(s.mat[4], s.mat[6]))) <= 0
	if !definedOo || !definedOne {
		return term.Undefined
	}

	decOo := decideLft(s.mat[0], s.mat[1], s.mat[4], s.mat[5])
	decOne := decideLft(add(s.mat[0], s.mat[2]), add(s.mat[1], s.mat[3]), add(s.mat[4], s.mat[6]), add(s.mat[5], s.mat[7]))

	switch {
	case decOo.ord && decOne.ord:
		return s.feedbackOrd()
	case decOo.drec && decOne.drec:
		return s.feedbackDRec()
	case decOo.rec && decOne.rec:
		return s.feedbackRec()
	case decOo.neg && decOne.neg:
		return s.feedbackNeg()
	}

	if SqrtSpeculate {
		if decOo.ordSpec && decOne.ordSpec {
			return s.feedbackOrd()
		}
		if decOo.drecSpec && decOne.drecSpec {
			return s.feedbackDRec()
		}
	}

	return term.Empty
}

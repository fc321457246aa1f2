package unit

import (
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
)

// MoreAggressive relaxes Brabec's decision ladder: it allows egesting
// terms even when an endpoint denominator is still zero, and lets the
// singular Rec and Ord branches fire regardless of the singularity flag
// (without it, the singular Rec fires only while the flag is clear and the
// singular Ord only while it is set). With it false, Arith follows the ladder exactly
// as Brabec describes it; with it true, retracted input that walks back
// into a singularity without ever setting the flag is still handled.
const MoreAggressive = true

// Arith is a bivariate linear-fractional transducer over two continued-
// logarithm streams x, y:
//
//	z = (N0*x*y + N1*x + N2*y + N3) / (D0*x*y + D1*x + D2*y + D3)
//
// stored as Mat = [N0,N1,N2,N3,D0,D1,D2,D3].
type Arith struct {
	Mat         [8]*big.Int
	singularity bool
}

// NewArith seeds an Arith transducer with the given bilinear coefficients.
func NewArith(mat [8]*big.Int) Arith {
	return Arith{Mat: mat}
}

// Egest folds a term this transducer just emitted back into its own
// matrix, so callers (the speculative branches below, ExpTaylor's
// feedback of its preemptive next-layer accumulator) can drive the same
// refinement egestion normally performs as a side effect.
func (a *Arith) Egest(t term.Term) {
	switch t {
	case term.Empty, term.Inf:
	case term.Ord:
		if !odd(a.Mat[0]) && !odd(a.Mat[1]) && !odd(a.Mat[2]) && !odd(a.Mat[3]) {
			a.Mat[0] = rsh(a.Mat[0], 1)
			a.Mat[1] = rsh(a.Mat[1], 1)
			a.Mat[2] = rsh(a.Mat[2], 1)
			a.Mat[3] = rsh(a.Mat[3], 1)
		} else {
			a.Mat[4] = lsh(a.Mat[4], 1)
			a.Mat[5] = lsh(a.Mat[5], 1)
			a.Mat[6] = lsh(a.Mat[6], 1)
			a.Mat[7] = lsh(a.Mat[7], 1)
		}
	case term.DRec:
		a.Mat[0] = sub(a.Mat[0], a.Mat[4])
		a.Mat[1] = sub(a.Mat[1], a.Mat[5])
		a.Mat[2] = sub(a.Mat[2], a.Mat[6])
		a.Mat[3] = sub(a.Mat[3], a.Mat[7])
		a.Mat[0], a.Mat[4] = a.Mat[4], a.Mat[0]
		a.Mat[1], a.Mat[5] = a.Mat[5], a.Mat[1]
		a.Mat[2], a.Mat[6] = a.Mat[6], a.Mat[2]
		a.Mat[3], a.Mat[7] = a.Mat[7], a.Mat[3]
	case term.Rec:
		a.Mat[0], a.Mat[4] = a.Mat[4], a.Mat[0]
		a.Mat[1], a.Mat[5] = a.Mat[5], a.Mat[1]
		a.Mat[2], a.Mat[6] = a.Mat[6], a.Mat[2]
		a.Mat[3], a.Mat[7] = a.Mat[7], a.Mat[3]
	case term.Neg:
		a.Mat[0] = neg(a.Mat[0])
		a.Mat[1] = neg(a.Mat[1])
		a.Mat[2] = neg(a.Mat[2])
		a.Mat[3] = neg(a.Mat[3])
	case term.Undefined:
		a.Mat = quadMat8([8]int64{0, 0, 0, 0, 0, 0, 0, 0})
	}
}

func (a *Arith) IngestX(x term.Term) {
	switch x {
	case term.Empty:
	case term.Ord:
		if !odd(a.Mat[2]) && !odd(a.Mat[3]) && !odd(a.Mat[6]) && !odd(a.Mat[7]) {
			a.Mat[2] = rsh(a.Mat[2], 1)
			a.Mat[3] = rsh(a.Mat[3], 1)
			a.Mat[6] = rsh(a.Mat[6], 1)
			a.Mat[7] = rsh(a.Mat[7], 1)
		} else {
			a.Mat[0] = lsh(a.Mat[0], 1)
			a.Mat[1] = lsh(a.Mat[1], 1)
			a.Mat[4] = lsh(a.Mat[4], 1)
			a.Mat[5] = lsh(a.Mat[5], 1)
		}
	case term.DRec:
		a.Mat[0], a.Mat[2] = a.Mat[2], a.Mat[0]
		a.Mat[1], a.Mat[3] = a.Mat[3], a.Mat[1]
		a.Mat[4], a.Mat[6] = a.Mat[6], a.Mat[4]
		a.Mat[5], a.Mat[7] = a.Mat[7], a.Mat[5]
		a.Mat[0] = add(a.Mat[0], a.Mat[2])
		a.Mat[1] = add(a.Mat[1], a.Mat[3])
		a.Mat[4] = add(a.Mat[4], a.Mat[6])
		a.Mat[5] = add(a.Mat[5], a.Mat[7])
	case term.Rec:
		a.Mat[0], a.Mat[2] = a.Mat[2], a.Mat[0]
		a.Mat[1], a.Mat[3] = a.Mat[3], a.Mat[1]
		a.Mat[4], a.Mat[6] = a.Mat[6], a.Mat[4]
		a.Mat[5], a.Mat[7] = a.Mat[7], a.Mat[5]
	case term.Neg:
		a.Mat[0] = neg(a.Mat[0])
		a.Mat[1] = neg(a.Mat[1])
		a.Mat[4] = neg(a.Mat[4])
		a.Mat[5] = neg(a.Mat[5])
	case term.Inf:
		a.Mat[2] = clone(a.Mat[0])
		a.Mat[3] = clone(a.Mat[1])
		a.Mat[6] = clone(a.Mat[4])
		a.Mat[7] = clone(a.Mat[5])
	case term.Undefined:
		a.Mat = quadMat8([8]int64{0, 0, 0, 0, 0, 0, 0, 0})
	}
}

func (a *Arith) IngestY(y term.Term) {
	switch y {
	case term.Empty:
	case term.Ord:
		if !odd(a.Mat[1]) && !odd(a.Mat[3]) && !odd(a.Mat[5]) && !odd(a.Mat[7]) {
			a.Mat[1] = rsh(a.Mat[1], 1)
			a.Mat[3] = rsh(a.Mat[3], 1)
			a.Mat[5] = rsh(a.Mat[5], 1)
			a.Mat[7] = rsh(a.Mat[7], 1)
		} else {
			a.Mat[0] = lsh(a.Mat[0], 1)
			a.Mat[2] = lsh(a.Mat[2], 1)
			a.Mat[4] = lsh(a.Mat[4], 1)
			a.Mat[6] = lsh(a.Mat[6], 1)
		}
	case term.DRec:
		a.Mat[0], a.Mat[1] = a.Mat[1], a.Mat[0]
		a.Mat[2], a.Mat[3] = a.Mat[3], a.Mat[2]
		a.Mat[4], a.Mat[5] = a.Mat[5], a.Mat[4]
		a.Mat[6], a.Mat[7] = a.Mat[7], a.Mat[6]
		a.Mat[0] = add(a.Mat[0], a.Mat[1])
		a.Mat[2] = add(a.Mat[2], a.Mat[3])
		a.Mat[4] = add(a.Mat[4], a.Mat[5])
		a.Mat[6] = add(a.Mat[6], a.Mat[7])
	case term.Rec:
		a.Mat[0], a.Mat[1] = a.Mat[1], a.Mat[0]
		a.Mat[2], a.Mat[3] = a.Mat[3], a.Mat[2]
		a.Mat[4], a.Mat[5] = a.Mat[5], a.Mat[4]
		a.Mat[6], a.Mat[7] = a.Mat[7], a.Mat[6]
	case term.Neg:
		a.Mat[0] = neg(a.Mat[0])
		a.Mat[2] = neg(a.Mat[2])
		a.Mat[4] = neg(a.Mat[4])
		a.Mat[6] = neg(a.Mat[6])
	case term.Inf:
		a.Mat[1] = clone(a.Mat[0])
		a.Mat[3] = clone(a.Mat[2])
		a.Mat[5] = clone(a.Mat[4])
		a.Mat[7] = clone(a.Mat[6])
	case term.Undefined:
		a.Mat = quadMat8([8]int64{0, 0, 0, 0, 0, 0, 0, 0})
	}
}

func (a *Arith) EgestZ() term.Term {
	n0 := clone(a.Mat[0])
	n1 := add(a.Mat[0], a.Mat[1])
	n2 := add(a.Mat[0], a.Mat[2])
	n3 := add(add(a.Mat[0], a.Mat[1]), add(a.Mat[2], a.Mat[3]))
	d0 := clone(a.Mat[4])
	d1 := add(a.Mat[4], a.Mat[5])
	d2 := add(a.Mat[4], a.Mat[6])
	d3 := add(add(a.Mat[4], a.Mat[5]), add(a.Mat[6], a.Mat[7]))

	signs := [4]term.Sign{
		term.Rationalize(n0, d0),
		term.Rationalize(n1, d1),
		term.Rationalize(n2, d2),
		term.Rationalize(n3, d3),
	}
	hasPlus, hasMinus := false, false
	for _, s := range signs {
		switch s {
		case term.Plus:
			hasPlus = true
		case term.Minus:
			hasMinus = true
		}
	}
	denZeros := isZero(d0) || isZero(d1) || isZero(d2) || isZero(d3)
	wellDefined := !(hasPlus && hasMinus) && (!denZeros || MoreAggressive)

	allZero := true
	for _, c := range a.Mat {
		if !isZero(c) {
			allZero = false
			break
		}
	}
	if allZero {
		return term.Undefined
	}

	if isZero(d0) && isZero(d1) && isZero(d2) && isZero(d3) &&
		!isZero(n0) && !isZero(n1) && !isZero(n2) && !isZero(n3) {
		allMinus := signs[0] == term.Minus && signs[1] == term.Minus && signs[2] == term.Minus && signs[3] == term.Minus
		if allMinus {
			a.Mat[0] = neg(a.Mat[0])
			a.Mat[1] = neg(a.Mat[1])
			a.Mat[2] = neg(a.Mat[2])
			a.Mat[3] = neg(a.Mat[3])
			return term.Neg
		}
		return term.Inf
	}

	if wellDefined {
		a.singularity = false

		allMinus := signs[0] == term.Minus && signs[1] == term.Minus && signs[2] == term.Minus && signs[3] == term.Minus
		switch {
		case allMinus:
			a.Egest(term.Neg)
			return term.Neg
		case rsh(n0, 1).Cmp(d0) >= 0 && rsh(n1, 1).Cmp(d1) >= 0 && rsh(n2, 1).Cmp(d2) >= 0 && rsh(n3, 1).Cmp(d3) >= 0:
			a.Egest(term.Ord)
			return term.Ord
		case n0.Cmp(d0) >= 0 && n1.Cmp(d1) >= 0 && n2.Cmp(d2) >= 0 && n3.Cmp(d3) >= 0 &&
			rsh(n0, 1).Cmp(d0) < 0 && rsh(n1, 1).Cmp(d1) < 0 && rsh(n2, 1).Cmp(d2) < 0 && rsh(n3, 1).Cmp(d3) < 0:
			a.Egest(term.DRec)
			return term.DRec
		case n0.Cmp(d0) < 0 && n1.Cmp(d1) < 0 && n2.Cmp(d2) < 0 && n3.Cmp(d3) < 0:
			a.Egest(term.Rec)
			return term.Rec
		case d0.Cmp(n0) < 0 && n0.Cmp(lsh(d0, 2)) < 0 &&
			d1.Cmp(n1) < 0 && n1.Cmp(lsh(d1, 2)) < 0 &&
			d2.Cmp(n2) < 0 && n2.Cmp(lsh(d2, 2)) < 0 &&
			d3.Cmp(n3) < 0 && n3.Cmp(lsh(d3, 2)) < 0:
			// speculative: egest Ord while some corner may still be below 2.
			a.Egest(term.Ord)
			return term.Ord
		case d0.Cmp(lsh(n0, 1)) < 0 && n0.Cmp(lsh(d0, 1)) < 0 &&
			d1.Cmp(lsh(n1, 1)) < 0 && n1.Cmp(lsh(d1, 1)) < 0 &&
			d2.Cmp(lsh(n2, 1)) < 0 && n2.Cmp(lsh(d2, 1)) < 0 &&
			d3.Cmp(lsh(n3, 1)) < 0 && n3.Cmp(lsh(d3, 1)) < 0:
			// speculative: egest DRec, launching into the singularity.
			a.Egest(term.DRec)
			a.singularity = true
			return term.DRec
		}
	} else {
		absN0, absN1, absN2, absN3 := new(big.Int).Abs(n0), new(big.Int).Abs(n1), new(big.Int).Abs(n2), new(big.Int).Abs(n3)
		absD0, absD1, absD2, absD3 := new(big.Int).Abs(d0), new(big.Int).Abs(d1), new(big.Int).Abs(d2), new(big.Int).Abs(d3)

		if (!a.singularity || MoreAggressive) &&
			absN0.Cmp(absD0) < 0 && absN1.Cmp(absD1) < 0 && absN2.Cmp(absD2) < 0 && absN3.Cmp(absD3) < 0 {
			a.Egest(term.Rec)
			a.singularity = true
			return term.Rec
		}
		if a.singularity || MoreAggressive {
			twoD0, twoD1, twoD2, twoD3 := new(big.Int).Abs(lsh(d0, 1)), new(big.Int).Abs(lsh(d1, 1)), new(big.Int).Abs(lsh(d2, 1)), new(big.Int).Abs(lsh(d3, 1))
			if twoD0.Cmp(absN0) <= 0 && twoD1.Cmp(absN1) <= 0 && twoD2.Cmp(absN2) <= 0 && twoD3.Cmp(absN3) <= 0 {
				a.Egest(term.Ord)
				return term.Ord
			}
		}
	}

	return term.Empty
}

package unit

import (
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
)

// Lft is a univariate Möbius transducer: f(x) = (a*x + b) / (c*x + d),
// stored as Mat = [a,b,c,d]. It doubles as a rationalization endpoint
// (interval/trunc/floor/ceil/round queries) and, with EgestEnabled false,
// as a passive sampler that accumulates ingested terms without emitting.
type Lft struct {
	Mat          [4]*big.Int
	EgestEnabled bool
}

// NewIdentityLft returns the identity transform f(x) = x, egestion on.
func NewIdentityLft() Lft {
	return Lft{Mat: linMat4([4]int64{1, 0, 0, 1}), EgestEnabled: true}
}

// IsUndefined reports whether all four coefficients are zero.
func (l *Lft) IsUndefined() bool {
	for _, c := range l.Mat {
		if !isZero(c) {
			return false
		}
	}
	return true
}

// IsInf reports both denominators zero but not both numerators zero.
func (l *Lft) IsInf() bool {
	return isZero(l.Mat[2]) && isZero(l.Mat[3]) && !(isZero(l.Mat[0]) && isZero(l.Mat[1]))
}

// IsZero reports both numerators zero but not both denominators zero.
func (l *Lft) IsZero() bool {
	return isZero(l.Mat[0]) && isZero(l.Mat[1]) && !(isZero(l.Mat[2]) && isZero(l.Mat[3]))
}

// IsNonnegative requires both endpoints (x=oo via a/c, x=1 via (a+b)/(c+d))
// to agree that the represented value is >= 0.
func (l *Lft) IsNonnegative() bool {
	a, b, c, d := l.Mat[0], l.Mat[1], l.Mat[2], l.Mat[3]
	ab, cd := add(a, b), add(c, d)
	s0 := (a.Sign() < 0) != (c.Sign() < 0)
	s1 := (ab.Sign() < 0) != (cd.Sign() < 0)
	return !s0 && !s1
}

// IsNonpositive is the symmetric counterpart of IsNonnegative.
func (l *Lft) IsNonpositive() bool {
	a, b, c, d := l.Mat[0], l.Mat[1], l.Mat[2], l.Mat[3]
	ab, cd := add(a, b), add(c, d)
	s0 := ((a.Sign() < 0) != (c.Sign() < 0)) || isZero(a)
	s1 := ((ab.Sign() < 0) != (cd.Sign() < 0)) || (isZero(a) && isZero(b))
	return s0 && s1
}

// IsPositive requires both endpoints strictly positive and in agreement.
func (l *Lft) IsPositive() bool {
	a, b, c, d := l.Mat[0], l.Mat[1], l.Mat[2], l.Mat[3]
	ab, cd := add(a, b), add(c, d)
	if isZero(a) || isZero(ab) {
		return false
	}
	s0 := (a.Sign() < 0) != (c.Sign() < 0)
	s1 := (ab.Sign() < 0) != (cd.Sign() < 0)
	return !s0 && !s1
}

// IsNegative requires both endpoints strictly negative and in agreement.
func (l *Lft) IsNegative() bool {
	a, b, c, d := l.Mat[0], l.Mat[1], l.Mat[2], l.Mat[3]
	ab, cd := add(a, b), add(c, d)
	if isZero(a) || isZero(ab) {
		return false
	}
	s0 := (a.Sign() < 0) != (c.Sign() < 0)
	s1 := (ab.Sign() < 0) != (cd.Sign() < 0)
	return s0 && s1
}

// Interval is a (numerator, denominator) endpoint rational. It is not
// gcd-reduced; only trailing-zero-shifted and sign-unified.
type Interval struct {
	Num, Den *big.Int
}

// Intervals returns the two endpoint rationals (x=oo, then x=1), lightly
// normalized: common trailing-zero shift removed, and both negated
// together if both are negative.
func (l *Lft) Intervals() (Interval, Interval) {
	prettify := func(a, b *big.Int) Interval {
		a, b = clone(a), clone(b)
		tzA, tzB := uint(a.TrailingZeroBits()), uint(b.TrailingZeroBits())
		if isZero(a) {
			tzA = tzB
		}
		if isZero(b) {
			tzB = tzA
		}
		g := tzA
		if tzB < g {
			g = tzB
		}
		if a.Sign() < 0 && b.Sign() < 0 {
			a.Neg(a)
			b.Neg(b)
		}
		if g > 0 {
			a.Rsh(a, g)
			b.Rsh(b, g)
		}
		return Interval{Num: a, Den: b}
	}
	i0 := prettify(l.Mat[0], l.Mat[2])
	i1 := prettify(add(l.Mat[0], l.Mat[1]), add(l.Mat[2], l.Mat[3]))
	return i0, i1
}

// truncDiv returns n/d rounded toward zero, like big.Int.Quo.
func truncDiv(n, d *big.Int) *big.Int {
	return new(big.Int).Quo(n, d)
}

// Trunc rounds toward 0: returns the shared integer part of both endpoints,
// or nil if they disagree (more input is needed).
func (l *Lft) Trunc() *big.Int {
	i0, i1 := l.Intervals()
	if isZero(i0.Den) || isZero(i1.Den) {
		return nil
	}
	c0 := truncDiv(i0.Num, i0.Den)
	c1 := truncDiv(i1.Num, i1.Den)
	if c0.Cmp(c1) != 0 {
		return nil
	}
	return c0
}

// Floor rounds toward -oo: returns t such that both endpoints lie in
// [t, t+1), or nil.
func (l *Lft) Floor() *big.Int {
	i0, i1 := l.Intervals()
	if isZero(i0.Den) || isZero(i1.Den) {
		return nil
	}
	c0, c1 := truncDiv(i0.Num, i0.Den), truncDiv(i1.Num, i1.Den)
	exact0 := i0.Num.Cmp(mul(c0, i0.Den)) == 0
	exact1 := i1.Num.Cmp(mul(c1, i1.Den)) == 0
	positive := l.IsPositive()
	f0, f1 := c0, c1
	if !exact0 && !positive {
		f0 = sub(c0, bi(1))
	}
	if !exact1 && !positive {
		f1 = sub(c1, bi(1))
	}
	if f0.Cmp(f1) != 0 {
		return nil
	}
	return f0
}

// Ceil rounds toward +oo: returns t such that both endpoints lie in
// (t-1, t], or nil.
func (l *Lft) Ceil() *big.Int {
	i0, i1 := l.Intervals()
	if isZero(i0.Den) || isZero(i1.Den) {
		return nil
	}
	c0, c1 := truncDiv(i0.Num, i0.Den), truncDiv(i1.Num, i1.Den)
	exact0 := i0.Num.Cmp(mul(c0, i0.Den)) == 0
	exact1 := i1.Num.Cmp(mul(c1, i1.Den)) == 0
	negative := l.IsNegative()
	f0, f1 := c0, c1
	if !exact0 && !negative {
		f0 = add(c0, bi(1))
	}
	if !exact1 && !negative {
		f1 = add(c1, bi(1))
	}
	if f0.Cmp(f1) != 0 {
		return nil
	}
	return f0
}

// Round implements half-to-even: t if both endpoints are in [t, t+1/2), t+1
// if both are in (t+1/2, t+1), and the even choice at exactly t+1/2.
func (l *Lft) Round() *big.Int {
	i0, i1 := l.Intervals()
	if isZero(i0.Den) || isZero(i1.Den) {
		return nil
	}
	c0, c1 := truncDiv(i0.Num, i0.Den), truncDiv(i1.Num, i1.Den)
	if c0.Cmp(c1) != 0 {
		return nil
	}
	h0 := new(big.Int).Abs(sub(i0.Num, mul(c0, i0.Den)))
	h1 := new(big.Int).Abs(sub(i1.Num, mul(c1, i1.Den)))
	d0 := new(big.Int).Abs(i0.Den)
	d1 := new(big.Int).Abs(i1.Den)
	offset := int64(1)
	if !l.IsPositive() {
		offset = -1
	}
	twoH0 := mul(h0, bi(2))
	twoH1 := mul(h1, bi(2))
	switch {
	case twoH0.Cmp(d0) < 0 && twoH1.Cmp(d1) < 0:
		return c0
	case twoH0.Cmp(d0) > 0 && twoH1.Cmp(d1) > 0:
		return add(c0, bi(offset))
	case twoH0.Cmp(d0) == 0 && twoH1.Cmp(d1) == 0:
		if !odd(c0) {
			return c0
		}
		return add(c0, bi(offset))
	default:
		return nil
	}
}

func (l *Lft) IngestX(x term.Term) {
	switch x {
	case term.Empty:
	case term.Ord:
		if !odd(l.Mat[1]) && !odd(l.Mat[3]) {
			l.Mat[1] = rsh(l.Mat[1], 1)
			l.Mat[3] = rsh(l.Mat[3], 1)
		} else {
			l.Mat[0] = lsh(l.Mat[0], 1)
			l.Mat[2] = lsh(l.Mat[2], 1)
		}
	case term.DRec:
		l.Mat[0], l.Mat[1] = l.Mat[1], l.Mat[0]
		l.Mat[2], l.Mat[3] = l.Mat[3], l.Mat[2]
		l.Mat[0] = add(l.Mat[0], l.Mat[1])
		l.Mat[2] = add(l.Mat[2], l.Mat[3])
	case term.Rec:
		l.Mat[0], l.Mat[1] = l.Mat[1], l.Mat[0]
		l.Mat[2], l.Mat[3] = l.Mat[3], l.Mat[2]
	case term.Neg:
		l.Mat[0] = neg(l.Mat[0])
		l.Mat[2] = neg(l.Mat[2])
	case term.Inf:
		l.Mat[1] = clone(l.Mat[0])
		l.Mat[3] = clone(l.Mat[2])
	case term.Undefined:
		l.Mat = linMat4([4]int64{0, 0, 0, 0})
	}
}

// IngestY is a no-op: an Lft has no second input stream.
func (l *Lft) IngestY(term.Term) {}

func (l *Lft) EgestZ() term.Term {
	if !l.EgestEnabled {
		return term.Empty
	}
	if l.IsUndefined() {
		return term.Undefined
	}
	if l.IsInf() {
		if l.Mat[0].Sign() < 0 || l.Mat[1].Sign() < 0 {
			l.Mat[0] = neg(l.Mat[0])
			l.Mat[1] = neg(l.Mat[1])
			return term.Neg
		}
		return term.Inf
	}

	n0 := clone(l.Mat[0])
	n1 := add(l.Mat[0], l.Mat[1])
	d0 := clone(l.Mat[2])
	d1 := add(l.Mat[2], l.Mat[3])
	term.Rationalize(n0, d0)
	term.Rationalize(n1, d1)
	numsAgreed := (n0.Sign() < 0) == (n1.Sign() < 0)
	densAgreed := (d0.Sign() < 0) == (d1.Sign() < 0)
	denZeros := isZero(d0) || isZero(d1)
	wellDefined := numsAgreed && densAgreed && (!denZeros || MoreAggressive)

	if wellDefined {
		if n0.Sign() < 0 && n1.Sign() < 0 {
			l.Mat[0] = neg(l.Mat[0])
			l.Mat[1] = neg(l.Mat[1])
			return term.Neg
		} else if rsh(n0, 1).Cmp(d0) >= 0 && rsh(n1, 1).Cmp(d1) >= 0 {
			if !odd(l.Mat[0]) && !odd(l.Mat[1]) {
				l.Mat[0] = rsh(l.Mat[0], 1)
				l.Mat[1] = rsh(l.Mat[1], 1)
			} else {
				l.Mat[2] = lsh(l.Mat[2], 1)
				l.Mat[3] = lsh(l.Mat[3], 1)
			}
			return term.Ord
		} else if n0.Cmp(d0) >= 0 && n1.Cmp(d1) >= 0 && rsh(n0, 1).Cmp(d0) < 0 && rsh(n1, 1).Cmp(d1) < 0 {
			l.Mat[0] = sub(l.Mat[0], l.Mat[2])
			l.Mat[1] = sub(l.Mat[1], l.Mat[3])
			l.Mat[0], l.Mat[2] = l.Mat[2], l.Mat[0]
			l.Mat[1], l.Mat[3] = l.Mat[3], l.Mat[1]
			return term.DRec
		} else if n0.Cmp(d0) < 0 && n1.Cmp(d1) < 0 {
			l.Mat[0], l.Mat[2] = l.Mat[2], l.Mat[0]
			l.Mat[1], l.Mat[3] = l.Mat[3], l.Mat[1]
			return term.Rec
		}
	}

	return term.Empty
}

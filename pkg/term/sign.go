package term

import "math/big"

// Sign is the three-way result of Rationalize: NoSign distinguishes an
// exact-zero numerator from a merely-small one, which Lft/Arith egestion
// rely on when deciding whether a corner is well-defined.
type Sign int8

const (
	NoSign Sign = 0
	Plus   Sign = 1
	Minus  Sign = -1
)

// Rationalize canonicalizes num/den in place: if den is negative, both are
// negated, so den always ends up >= 0. It returns the sign of num/den under
// that convention, with NoSign reserved for num == 0 (there is no -0 in
// this representation, only -oo via an all-negative denominator having
// already been flipped away).
func Rationalize(num, den *big.Int) Sign {
	dSign := den.Sign()
	nSign := num.Sign()
	if dSign < 0 {
		num.Neg(num)
		den.Neg(den)
		nSign = -nSign
	}
	switch {
	case nSign == 0:
		return NoSign
	case nSign < 0:
		return Minus
	default:
		return Plus
	}
}

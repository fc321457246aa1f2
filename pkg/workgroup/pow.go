package workgroup

import (
	"math/bits"

	"github.com/oisee/clogcalc/pkg/unit"
)

// Pow2 builds the repeated-squaring chain [x, x^2, x^4, ..., x^(2^d)] by
// feeding each Arith multiplier unit both of its inputs from the
// previous entry, so x^n for any n can then be assembled in O(log n)
// multiplications instead of n-1 of them.
func Pow2(wg *Workgroup, x UnitID, d uint32) []UnitID {
	items := []UnitID{x}
	for i := uint32(0); i < d; i++ {
		last := items[len(items)-1]
		next := wg.AddUnit(&Slot{
			Inner: arithPtr(unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 1}))),
			X:     idPtr(last),
			Y:     idPtr(last),
		})
		items = append(items, next)
	}
	return items
}

// Pow builds x^n for a non-negative integer exponent n, by squaring
// (Pow2) up to n's highest set bit and then multiplying together the
// powers corresponding to n's set bits. n == 0 returns a constant stream
// of 1, independent of x.
func Pow(wg *Workgroup, x UnitID, n uint32) UnitID {
	if n == 0 {
		return wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(0, 1, 0, 1), EgestEnabled: true})})
	}

	depth := uint32(bits.Len32(n) - 1)
	powers := Pow2(wg, x, depth)

	var acc UnitID
	started := false
	for i := uint32(0); i <= depth; i++ {
		if n&(1<<i) == 0 {
			continue
		}
		if !started {
			acc = powers[i]
			started = true
			continue
		}
		acc = wg.AddUnit(&Slot{
			Inner: arithPtr(unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 1}))),
			X:     idPtr(acc),
			Y:     idPtr(powers[i]),
		})
	}
	return acc
}

// Log builds log_base(x) as log2(x)/log2(base), composing two Log2
// macros with a single dividing Arith. base must be fed values > 1, same
// restriction as Log2 itself.
func Log(wg *Workgroup, x, base UnitID) UnitID {
	logX := NewLog2()
	logXID := wg.AddUnitWithX(&logX, x)
	logBase := NewLog2()
	logBaseID := wg.AddUnitWithX(&logBase, base)

	// mat8{0,1,0,0,0,0,1,0} is z = x/y; logX must be x and logBase must
	// be y so the quotient comes out log2(x)/log2(base), not its
	// reciprocal.
	div := unit.NewArith(mat8([8]int64{0, 1, 0, 0, 0, 0, 1, 0}))
	return wg.AddUnit(&Slot{Inner: &div, X: idPtr(logXID), Y: idPtr(logBaseID)})
}

package workgroup

import (
	"math/big"
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
	"github.com/oisee/clogcalc/pkg/unit"
)

// exactSource wires a root Lft with both corners equal to num/den, the
// same zero-width-interval encoding pkg/session/build.go uses for
// decimal literals.
func exactSource(wg *Workgroup, num, den int64) UnitID {
	n, d := big.NewInt(num), big.NewInt(den)
	return wg.AddLftRoot(unit.Lft{Mat: [4]*big.Int{n, new(big.Int).Set(n), d, new(big.Int).Set(d)}, EgestEnabled: true})
}

// bracket cycles wg and reads back the rational bracket egested by out,
// the way pkg/session/run.go's to_rat accumulator does.
func bracket(wg *Workgroup, out UnitID, egests int) (unit.Interval, unit.Interval) {
	toRat := wg.AddLft(unit.Lft{Mat: [4]*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(1)}, EgestEnabled: false}, out)
	for i := 0; i < egests*3; i++ {
		wg.Cycle()
	}
	lft, _ := wg.GetUnit(toRat).Inner.(*unit.Lft)
	return lft.Intervals()
}

// intervalContains reports whether want lies between the two endpoint
// rationals, in either order (the bracket's two endpoints aren't
// guaranteed sorted the same way across every transducer).
func intervalContains(i0, i1 unit.Interval, want int64) bool {
	r0 := new(big.Rat).SetFrac(i0.Num, i0.Den)
	r1 := new(big.Rat).SetFrac(i1.Num, i1.Den)
	w := new(big.Rat).SetInt64(want)
	lo, hi := r0, r1
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	return lo.Cmp(w) <= 0 && w.Cmp(hi) <= 0
}

func TestPow2BuildsExpectedChainLength(t *testing.T) {
	wg := New()
	x := wg.AddCLogs(unit.NewCLogs(func() term.Term { return term.Ord }))
	chain := Pow2(wg, x, 4)
	if len(chain) != 5 {
		t.Errorf("Pow2(_, _, 4) chain length = %d, want 5 (x plus 4 squarings)", len(chain))
	}
	if chain[0] != x {
		t.Errorf("Pow2 chain[0] = %v, want the seed unit %v", chain[0], x)
	}
}

func TestPowZeroIsConstantOne(t *testing.T) {
	wg := New()
	x := wg.AddCLogs(unit.NewCLogs(func() term.Term { return term.Ord }))
	one := Pow(wg, x, 0)
	for i := 0; i < 3; i++ {
		wg.Cycle()
	}
	got := wg.GetUnit(one).Z
	if got != term.Ord && got != term.Empty {
		t.Errorf("Pow(_, _, 0) egested %v before settling; want Empty or the first bit of the constant 1 (Ord)", got)
	}
}

func TestLogAlwaysEgestsLegalTerm(t *testing.T) {
	wg := New()
	x := wg.AddCLogs(unit.NewCLogs(func() term.Term { return term.Ord }))
	base := wg.AddCLogs(unit.NewCLogs(func() term.Term { return term.Ord }))
	out := Log(wg, x, base)
	for i := 0; i < 16; i++ {
		wg.Cycle()
		if got := wg.GetUnit(out).Z; !legalTerms[got] {
			t.Fatalf("EgestZ() returned out-of-alphabet term %v at cycle %d", got, i)
		}
	}
}

func TestPowOfTwoCubedBracketsEight(t *testing.T) {
	wg := New()
	x := exactSource(wg, 2, 1)
	out := Pow(wg, x, 3)
	i0, i1 := bracket(wg, out, 64)
	if !intervalContains(i0, i1, 8) {
		t.Errorf("Pow(2, 3) bracket [%v/%v, %v/%v] does not contain 8", i0.Num, i0.Den, i1.Num, i1.Den)
	}
}

func TestPowOfTwoSquaredBracketsFour(t *testing.T) {
	wg := New()
	x := exactSource(wg, 2, 1)
	out := Pow(wg, x, 2)
	i0, i1 := bracket(wg, out, 64)
	if !intervalContains(i0, i1, 4) {
		t.Errorf("Pow(2, 2) bracket [%v/%v, %v/%v] does not contain 4 (would be 1/4 under the unfixed 1/(xy) matrix)", i0.Num, i0.Den, i1.Num, i1.Den)
	}
}

func TestLogOfEightBaseTwoBracketsThree(t *testing.T) {
	wg := New()
	x := exactSource(wg, 8, 1)
	base := exactSource(wg, 2, 1)
	out := Log(wg, x, base)
	i0, i1 := bracket(wg, out, 128)
	if !intervalContains(i0, i1, 3) {
		t.Errorf("Log(8, 2) bracket [%v/%v, %v/%v] does not contain 3 (would be 1/3 if x/base were swapped)", i0.Num, i0.Den, i1.Num, i1.Den)
	}
}

func TestLogOfEAsBaseEBracketsOne(t *testing.T) {
	// Exercises the same composition pkg/session/build.go's buildLn uses
	// (Log(x, e)) with x = e, so the expected answer is exactly 1.
	wg := New()
	x := wg.AddFromCFrac(unit.E())
	base := wg.AddFromCFrac(unit.E())
	out := Log(wg, x, base)
	i0, i1 := bracket(wg, out, 128)
	if !intervalContains(i0, i1, 1) {
		t.Errorf("Log(e, e) bracket [%v/%v, %v/%v] does not contain 1", i0.Num, i0.Den, i1.Num, i1.Den)
	}
}

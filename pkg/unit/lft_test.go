package unit

import (
	"math/big"
	"testing"
)

func exactLft(num, den int64) Lft {
	n, d := bi(num), bi(den)
	return Lft{Mat: [4]*big.Int{n, clone(n), d, clone(d)}, EgestEnabled: true}
}

func TestLftRoundingOnExactValues(t *testing.T) {
	tests := []struct {
		name         string
		num, den     int64
		trunc, floor int64
		ceil, round  int64
	}{
		{"three", 3, 1, 3, 3, 3, 3},
		{"five-halves", 5, 2, 2, 2, 3, 2},
		{"seven-halves", 7, 2, 3, 3, 4, 4},
		{"neg-seven-halves", -7, 2, -3, -4, -3, -4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := exactLft(tc.num, tc.den)
			if got := l.Trunc(); got == nil || got.Int64() != tc.trunc {
				t.Errorf("Trunc() = %v, want %d", got, tc.trunc)
			}
			l = exactLft(tc.num, tc.den)
			if got := l.Floor(); got == nil || got.Int64() != tc.floor {
				t.Errorf("Floor() = %v, want %d", got, tc.floor)
			}
			l = exactLft(tc.num, tc.den)
			if got := l.Ceil(); got == nil || got.Int64() != tc.ceil {
				t.Errorf("Ceil() = %v, want %d", got, tc.ceil)
			}
			l = exactLft(tc.num, tc.den)
			if got := l.Round(); got == nil || got.Int64() != tc.round {
				t.Errorf("Round() = %v, want %d", got, tc.round)
			}
		})
	}
}

func TestLftIntervalsAgreeWithRounding(t *testing.T) {
	l := exactLft(22, 7)
	i0, i1 := l.Intervals()
	if i0.Num.Cmp(i1.Num) != 0 || i0.Den.Cmp(i1.Den) != 0 {
		t.Fatalf("exact Lft should have equal endpoints, got %v/%v and %v/%v", i0.Num, i0.Den, i1.Num, i1.Den)
	}
}

func TestLftIsUndefinedAllZero(t *testing.T) {
	l := Lft{Mat: [4]*big.Int{bi(0), bi(0), bi(0), bi(0)}, EgestEnabled: true}
	if !l.IsUndefined() {
		t.Error("all-zero matrix should report IsUndefined")
	}
	if got := l.EgestZ(); got.String() != "!" {
		t.Errorf("EgestZ() on undefined matrix = %v, want Undefined", got)
	}
}

func TestLftSignPredicatesOnExactValues(t *testing.T) {
	pos := exactLft(3, 1)
	if !pos.IsPositive() || pos.IsNegative() || !pos.IsNonnegative() || pos.IsNonpositive() {
		t.Error("exactLft(3,1) should be strictly positive only")
	}
	neg := exactLft(-3, 1)
	if !neg.IsNegative() || neg.IsPositive() || !neg.IsNonpositive() || neg.IsNonnegative() {
		t.Error("exactLft(-3,1) should be strictly negative only")
	}
	zero := exactLft(0, 1)
	if !zero.IsNonnegative() || !zero.IsNonpositive() || zero.IsPositive() || zero.IsNegative() {
		t.Error("exactLft(0,1) should be both non-negative and non-positive, neither strict")
	}
}

func TestLftEgestDisabledReturnsEmpty(t *testing.T) {
	l := exactLft(5, 2)
	l.EgestEnabled = false
	if got := l.EgestZ(); got.String() != "ø" {
		t.Errorf("EgestZ() with EgestEnabled=false = %v, want Empty", got)
	}
}

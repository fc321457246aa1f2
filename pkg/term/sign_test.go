package term

import (
	"math/big"
	"testing"
)

func TestRationalizeSignsAndNormalizesDen(t *testing.T) {
	tests := []struct {
		num, den int64
		wantSign Sign
		wantDen  int64
	}{
		{3, 4, Plus, 4},
		{-3, 4, Minus, 4},
		{3, -4, Minus, 4},
		{-3, -4, Plus, 4},
		{0, 5, NoSign, 5},
		{0, -5, NoSign, 5},
	}
	for _, tc := range tests {
		num, den := big.NewInt(tc.num), big.NewInt(tc.den)
		sign := Rationalize(num, den)
		if sign != tc.wantSign {
			t.Errorf("Rationalize(%d,%d) sign = %v, want %v", tc.num, tc.den, sign, tc.wantSign)
		}
		if den.Int64() != tc.wantDen {
			t.Errorf("Rationalize(%d,%d) den = %v, want %v", tc.num, tc.den, den, tc.wantDen)
		}
		if den.Sign() < 0 {
			t.Errorf("Rationalize(%d,%d) left den negative: %v", tc.num, tc.den, den)
		}
	}
}

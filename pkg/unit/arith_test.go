package unit

import (
	"math/big"
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
)

func matEqual(a, b [8]*big.Int) bool {
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

func TestArithNegInvolution(t *testing.T) {
	a := NewArith(quadMat8([8]int64{1, 2, 3, 4, 5, 6, 7, 8}))
	before := a.Mat
	a.IngestX(term.Neg)
	a.IngestX(term.Neg)
	if !matEqual(a.Mat, before) {
		t.Errorf("ingesting Neg twice on x changed matrix: %v -> %v", before, a.Mat)
	}
}

func TestArithRecInvolution(t *testing.T) {
	a := NewArith(quadMat8([8]int64{1, 2, 3, 4, 5, 6, 7, 8}))
	before := a.Mat
	a.IngestX(term.Rec)
	a.IngestX(term.Rec)
	if !matEqual(a.Mat, before) {
		t.Errorf("ingesting Rec twice on x changed matrix: %v -> %v", before, a.Mat)
	}
}

func TestArithUndefinedAbsorbing(t *testing.T) {
	a := NewArith(quadMat8([8]int64{1, 2, 3, 4, 5, 6, 7, 8}))
	a.IngestX(term.Undefined)
	for _, c := range a.Mat {
		if !isZero(c) {
			t.Fatalf("Undefined should zero the matrix, got %v", a.Mat)
		}
	}
	if got := a.EgestZ(); got != term.Undefined {
		t.Errorf("EgestZ() after Undefined ingest = %v, want Undefined", got)
	}
}

func TestArithUndefinedIsAbsorbing(t *testing.T) {
	a := NewArith(quadMat8([8]int64{0, 1, 1, 0, 1, 0, 0, 0}))
	a.IngestX(term.Undefined)
	first := a.EgestZ()
	second := a.EgestZ()
	if first != term.Undefined || second != term.Undefined {
		t.Errorf("Undefined should stay absorbing across repeated egests, got %v then %v", first, second)
	}
}

func TestArithUndefinedOnEitherLegWins(t *testing.T) {
	a := NewArith(quadMat8([8]int64{0, 1, 1, 0, 1, 0, 0, 0}))
	a.IngestX(term.Ord)
	a.IngestY(term.Undefined)
	if got := a.EgestZ(); got != term.Undefined {
		t.Errorf("EgestZ() after one leg Undefined = %v, want Undefined", got)
	}
}

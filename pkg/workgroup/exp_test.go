package workgroup

import (
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
)

var legalTerms = map[term.Term]bool{
	term.Empty: true, term.Ord: true, term.DRec: true, term.Rec: true,
	term.Neg: true, term.Inf: true, term.Undefined: true,
}

func TestExpTaylorAlwaysEgestsLegalTerm(t *testing.T) {
	e := NewExpTaylor()
	for i := 0; i < 64; i++ {
		e.IngestX(term.DRec)
		if got := e.EgestZ(); !legalTerms[got] {
			t.Fatalf("EgestZ() returned out-of-alphabet term %v at step %d", got, i)
		}
	}
}

func TestExpTaylorStartsWithOneLayer(t *testing.T) {
	e := NewExpTaylor()
	if len(e.taylorTerms) != 1 {
		t.Errorf("NewExpTaylor() should start with exactly one Taylor layer beyond the init term, got %d", len(e.taylorTerms))
	}
}

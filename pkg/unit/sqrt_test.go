package unit

import (
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
)

func TestSqrtNoInputYieldsEmpty(t *testing.T) {
	s := NewSqrt()
	if got := s.EgestZ(); got != term.Empty {
		t.Errorf("EgestZ() with no ingestion = %v, want Empty", got)
	}
}

var legalSqrtTerms = map[term.Term]bool{
	term.Empty: true, term.Ord: true, term.DRec: true, term.Rec: true,
	term.Neg: true, term.Inf: true, term.Undefined: true,
}

func TestSqrtAlwaysEgestsLegalTerm(t *testing.T) {
	s := NewSqrt()
	for i := 0; i < 32; i++ {
		s.IngestX(term.Ord)
		got := s.EgestZ()
		if !legalSqrtTerms[got] {
			t.Fatalf("EgestZ() returned out-of-alphabet term %v at step %d", got, i)
		}
	}
}

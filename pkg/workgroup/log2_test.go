package workgroup

import (
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
)

func TestLog2AlwaysEgestsLegalTerm(t *testing.T) {
	l := NewLog2()
	// Feed a stream representing a value > 1 (Ord narrows toward larger
	// values, which is the documented valid input range for Log2).
	for i := 0; i < 32; i++ {
		l.IngestX(term.Ord)
		if got := l.EgestZ(); !legalTerms[got] {
			t.Fatalf("EgestZ() returned out-of-alphabet term %v at step %d", got, i)
		}
	}
}

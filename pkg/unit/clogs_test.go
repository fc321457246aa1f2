package unit

import (
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
)

func TestCLogsEgestsFromNextInOrder(t *testing.T) {
	items := []term.Term{term.Ord, term.Ord, term.DRec, term.Inf}
	i := 0
	c := NewCLogs(func() term.Term {
		if i >= len(items) {
			return term.Empty
		}
		t := items[i]
		i++
		return t
	})
	for _, want := range items {
		if got := c.EgestZ(); got != want {
			t.Errorf("EgestZ() = %v, want %v", got, want)
		}
	}
}

func TestCLogsIngestIsNoop(t *testing.T) {
	c := NewCLogs(func() term.Term { return term.Ord })
	c.IngestX(term.Undefined)
	c.IngestY(term.Neg)
	if got := c.EgestZ(); got != term.Ord {
		t.Errorf("EgestZ() after ingest calls = %v, want Ord (ingest is a no-op)", got)
	}
}

package unit

import (
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
)

func TestCompareEgestZAlwaysEmpty(t *testing.T) {
	c := NewCompare()
	if got := c.EgestZ(); got != term.Empty {
		t.Errorf("Compare.EgestZ() = %v, want Empty (it only exposes Endpoints)", got)
	}
}

func TestCompareEndpointsNoInput(t *testing.T) {
	c := NewCompare()
	i0, i1 := c.Endpoints()
	if i0.Num == nil || i0.Den == nil || i1.Num == nil || i1.Den == nil {
		t.Fatal("Endpoints() returned a nil component before any ingestion")
	}
}

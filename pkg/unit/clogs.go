package unit

import "github.com/oisee/clogcalc/pkg/term"

// CLogs wraps an arbitrary term generator as a Unit, for feeding a
// pre-recorded or raw literal CLog stream (the REPL's `c<symbols>`
// syntax) into a workgroup.
type CLogs struct {
	Next func() term.Term
}

// NewCLogs wraps next as a no-input CLog source.
func NewCLogs(next func() term.Term) CLogs {
	return CLogs{Next: next}
}

func (c *CLogs) IngestX(term.Term) {}
func (c *CLogs) IngestY(term.Term) {}

func (c *CLogs) EgestZ() term.Term {
	return c.Next()
}

// Package workgroup implements the DAG scheduler that wires pkg/unit
// transducers together: a directed graph of units is cycled through three
// synchronous phases (ingest x, ingest y, egest z) so that the whole graph
// advances in lockstep, one term per unit per cycle.
package workgroup

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/oisee/clogcalc/pkg/term"
	"github.com/oisee/clogcalc/pkg/unit"
)

// Phase is one of the three steps a Workgroup cycles through. The
// scheduling model is strictly single-threaded and synchronous: every
// unit completes a phase before any unit starts the next one.
type Phase int

const (
	IngestX Phase = iota
	IngestY
	EgestZ
)

func (p Phase) next() Phase {
	switch p {
	case IngestX:
		return IngestY
	case IngestY:
		return EgestZ
	default:
		return IngestX
	}
}

// UnitID addresses a unit within one Workgroup. IDs are not meaningful
// across different Workgroups.
type UnitID uint32

// Slot holds one unit plus the IDs of the units it reads x/y from (nil if
// it has no such input) and the last term it egested.
type Slot struct {
	Inner unit.Unit
	X, Y  *UnitID
	Z     term.Term
}

// Workgroup is the DAG scheduler: an ID-addressed collection of unit
// slots plus the phase the next Cycle will run.
type Workgroup struct {
	maxID        uint32
	units        map[UnitID]*Slot
	CurrentPhase Phase
}

// New returns an empty workgroup whose CurrentPhase is EgestZ, so its
// first Cycle runs an EgestZ phase and then leaves CurrentPhase at
// IngestX, matching the reference implementation's initial
// EgestZ-then-advance convention.
func New() *Workgroup {
	return &Workgroup{units: make(map[UnitID]*Slot), CurrentPhase: EgestZ}
}

func (w *Workgroup) newID() UnitID {
	id := UnitID(w.maxID)
	w.maxID++
	return id
}

// GetUnit fetches a slot by ID. A missing ID means the caller is holding
// an ID issued by a different workgroup, or holding on to a stale one
// after some impossible bookkeeping bug; either way there is no sensible
// recovery, so this is fatal.
func (w *Workgroup) GetUnit(id UnitID) *Slot {
	s, ok := w.units[id]
	if !ok {
		glog.Fatalf("workgroup: unit %d does not exist", id)
	}
	return s
}

// AddUnit inserts a pre-built slot (x/y may be nil) and returns its ID.
func (w *Workgroup) AddUnit(s *Slot) UnitID {
	id := w.newID()
	w.units[id] = s
	return id
}

func idPtr(id UnitID) *UnitID { return &id }

// AddArith wires a bivariate unit to its x and y sources.
func (w *Workgroup) AddArith(a unit.Arith, x, y UnitID) UnitID {
	return w.AddUnit(&Slot{Inner: &a, X: idPtr(x), Y: idPtr(y)})
}

// AddSqrt wires a Sqrt to its single x source.
func (w *Workgroup) AddSqrt(s unit.Sqrt, x UnitID) UnitID {
	return w.AddUnit(&Slot{Inner: &s, X: idPtr(x)})
}

// AddFromCFrac inserts a source unit with no x/y inputs.
func (w *Workgroup) AddFromCFrac(f unit.FromCFrac) UnitID {
	return w.AddUnit(&Slot{Inner: &f})
}

// AddCLogs inserts a raw term-generator source with no x/y inputs.
func (w *Workgroup) AddCLogs(c unit.CLogs) UnitID {
	return w.AddUnit(&Slot{Inner: &c})
}

// AddLft wires an Lft to its x source (use AddLftRoot for an Lft with
// none).
func (w *Workgroup) AddLft(l unit.Lft, x UnitID) UnitID {
	return w.AddUnit(&Slot{Inner: &l, X: idPtr(x)})
}

// AddLftRoot inserts an Lft with no x source, for passive accumulators
// fed directly by external code rather than by the graph.
func (w *Workgroup) AddLftRoot(l unit.Lft) UnitID {
	return w.AddUnit(&Slot{Inner: &l})
}

// AddModulo wires a Modulo to its dividend (x) and divisor (y).
func (w *Workgroup) AddModulo(m unit.Modulo, x, y UnitID) UnitID {
	return w.AddUnit(&Slot{Inner: &m, X: idPtr(x), Y: idPtr(y)})
}

// AddCompare wires a Compare to the two operands it tracks the sign of
// the difference of.
func (w *Workgroup) AddCompare(c unit.Compare, x, y UnitID) UnitID {
	return w.AddUnit(&Slot{Inner: &c, X: idPtr(x), Y: idPtr(y)})
}

// AddUnitWithX wires any Unit (including the self-extending macros
// ExpTaylor and Log2) to a single x source. Used instead of a dedicated
// Add* method for unit kinds that live outside this package.
func (w *Workgroup) AddUnitWithX(u unit.Unit, x UnitID) UnitID {
	return w.AddUnit(&Slot{Inner: u, X: idPtr(x)})
}

// Cycle runs one phase across every unit in the graph, then advances to
// the next phase. IngestX/IngestY pull the source slot's last egested
// term; EgestZ asks each unit to produce its next term and stores it.
func (w *Workgroup) Cycle() {
	for id, s := range w.units {
		switch w.CurrentPhase {
		case IngestX:
			if s.X != nil {
				src, ok := w.units[*s.X]
				if !ok {
					glog.Fatalf("workgroup: unit %d references missing x source %d", id, *s.X)
				}
				s.Inner.IngestX(src.Z)
			}
		case IngestY:
			if s.Y != nil {
				src, ok := w.units[*s.Y]
				if !ok {
					glog.Fatalf("workgroup: unit %d references missing y source %d", id, *s.Y)
				}
				s.Inner.IngestY(src.Z)
			}
		case EgestZ:
			s.Z = s.Inner.EgestZ()
		}
	}
	w.CurrentPhase = w.CurrentPhase.next()
}

// String renders the current phase and unit count, for diagnostics.
func (w *Workgroup) String() string {
	return fmt.Sprintf("workgroup(units=%d, phase=%v)", len(w.units), w.CurrentPhase)
}

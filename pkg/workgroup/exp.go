package workgroup

import (
	"math/big"

	"github.com/golang/glog"

	"github.com/oisee/clogcalc/pkg/term"
	"github.com/oisee/clogcalc/pkg/unit"
)

// ExpTaylor computes e^x from the Taylor series 1 + x + x^2/2! + x^3/3! +
// ..., one layer (one more power-of-x / factorial term) at a time. It is
// itself a small workgroup: each layer is an Arith that multiplies the
// previous partial sum's numerator growth by x and divides by the next
// factorial factor. Best accuracy is for 0 < x < 1; larger inputs need
// many more layers to converge.
//
// Layers grow on demand (see addLayer) rather than being bounded up
// front, so the series can serve arbitrarily precise output without the
// caller ever deciding how many terms "enough" is.
type ExpTaylor struct {
	inner    *Workgroup
	initTerm UnitID
	initOut  UnitID

	taylorTerms []UnitID
	outs        []UnitID

	nextTaylor     unit.Arith
	nextNextTaylor unit.Arith
	nextOut        unit.Arith

	realEgestsSinceLastLayer uint32
}

func mat8(c [8]int64) [8]*big.Int {
	var m [8]*big.Int
	for i, v := range c {
		m[i] = big.NewInt(v)
	}
	return m
}

// NewExpTaylor builds an ExpTaylor primed with its first Taylor layer
// (initTerm is x^2/2! and initOut is 1 + x + initTerm; the first genuine
// layer is x^3/3!, installed here as firstTerm/firstOut).
func NewExpTaylor() ExpTaylor {
	wg := New()

	initTerm := wg.AddUnit(&Slot{Inner: arithPtr(unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 2})))})
	initOut := wg.AddUnit(&Slot{Inner: arithPtr(unit.NewArith(mat8([8]int64{0, 1, 1, 1, 0, 0, 0, 1}))), Y: idPtr(initTerm)})
	firstTerm := wg.AddUnit(&Slot{Inner: arithPtr(unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 3}))), Y: idPtr(initTerm)})
	firstOut := wg.AddUnit(&Slot{Inner: arithPtr(unit.NewArith(mat8([8]int64{0, 1, 1, 0, 0, 0, 0, 1}))), X: idPtr(firstTerm), Y: idPtr(initOut)})

	return ExpTaylor{
		inner:          wg,
		initTerm:       initTerm,
		initOut:        initOut,
		taylorTerms:    []UnitID{firstTerm},
		outs:           []UnitID{firstOut},
		nextTaylor:     unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 4})),
		nextNextTaylor: unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 5})),
		nextOut:        unit.NewArith(mat8([8]int64{0, 1, 1, 0, 0, 0, 0, 1})),
	}
}

// arithPtr boxes an Arith value as a unit.Unit for slot storage.
func arithPtr(a unit.Arith) unit.Unit { return &a }

func (e *ExpTaylor) addLayer() {
	newLastTerm := e.inner.AddUnit(&Slot{
		Inner: arithPtr(unit.NewArith(e.nextTaylor.Mat)),
		Y:     idPtr(e.taylorTerms[len(e.taylorTerms)-1]),
	})

	e.nextTaylor.Mat = e.nextNextTaylor.Mat
	factorN := big.NewInt(int64(len(e.taylorTerms)) + 4)
	factorD := big.NewInt(int64(len(e.taylorTerms)) + 5)
	for i := 0; i < 4; i++ {
		e.nextNextTaylor.Mat[i] = new(big.Int).Mul(e.nextNextTaylor.Mat[i], factorN)
	}
	for i := 4; i < 8; i++ {
		e.nextNextTaylor.Mat[i] = new(big.Int).Mul(e.nextNextTaylor.Mat[i], factorD)
	}
	e.taylorTerms = append(e.taylorTerms, newLastTerm)

	out := e.inner.AddUnit(&Slot{
		Inner: arithPtr(unit.NewArith(e.nextOut.Mat)),
		X:     idPtr(e.taylorTerms[len(e.taylorTerms)-1]),
		Y:     idPtr(e.outs[len(e.outs)-1]),
	})
	e.outs = append(e.outs, out)
}

func (e *ExpTaylor) IngestX(x term.Term) {
	e.inner.GetUnit(e.initTerm).Inner.IngestX(x)
	e.inner.GetUnit(e.initTerm).Inner.IngestY(x)
	e.inner.GetUnit(e.initOut).Inner.IngestX(x)
	for _, id := range e.taylorTerms {
		e.inner.GetUnit(id).Inner.IngestX(x)
	}
	e.inner.Cycle()
	e.inner.Cycle()

	e.nextTaylor.IngestX(x)
	e.nextNextTaylor.IngestX(x)
}

// IngestY is unused: exp takes a single input stream. Cycling inner
// twice on every IngestX call already flushes x and y through the
// Taylor-term/out chain.
func (e *ExpTaylor) IngestY(term.Term) {}

func (e *ExpTaylor) EgestZ() term.Term {
	e.inner.Cycle()

	lastTaylor := e.inner.GetUnit(e.taylorTerms[len(e.taylorTerms)-1]).Z
	e.nextTaylor.IngestY(lastTaylor)

	outSlot := e.inner.GetUnit(e.outs[len(e.outs)-1])
	outTerm := outSlot.Z

	if outTerm != term.Empty {
		e.realEgestsSinceLastLayer++
	}
	if outTerm == term.Inf || e.realEgestsSinceLastLayer >= 16*uint32(len(e.taylorTerms)) {
		glog.V(2).Infof("exp: growing layer %d after %d egests", len(e.taylorTerms)+1, e.realEgestsSinceLastLayer)
		e.addLayer()
		e.realEgestsSinceLastLayer = 0
		return term.Empty
	}

	e.nextOut.IngestY(outTerm)
	e.nextOut.Egest(outTerm)

	return outTerm
}

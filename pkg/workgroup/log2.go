package workgroup

import (
	"math/big"

	"github.com/oisee/clogcalc/pkg/term"
	"github.com/oisee/clogcalc/pkg/unit"
)

// Log2 computes log base 2 of an input restricted to x > 1, by bisecting
// the interval [1, x] (held as a mediant-of-mediants ladder of locked
// Lfts) and reading off which half the true value falls in as one more
// bit of the output. Each bisection step re-enables egestion on the
// current left, mediant and right locks and installs fresh locks around
// the half the value fell into; once the mediant settles exactly on 1, the
// accumulator lft is closed to a single point.
//
// Unoptimized by design: a generalized logn built on the same ladder
// would let the power-of-two boundary be skipped directly, but this
// walks every bit.
type Log2 struct {
	wg *Workgroup

	x UnitID

	leftLock, rightLock, mediantLock UnitID

	// lft is hand-fed and hand-egested outside the graph: it accumulates
	// the output bits this bisection decides on.
	lft unit.Lft
}

func lftPtr(l unit.Lft) unit.Unit { return &l }

// NewLog2 builds a log2 transducer. Input must be fed values > 1.
func NewLog2() Log2 {
	wg := New()

	x := wg.AddUnit(&Slot{Inner: lftPtr(unit.NewIdentityLft())})
	left := wg.AddUnit(&Slot{Inner: lftPtr(unit.NewIdentityLft()), X: idPtr(x)})
	leftLock := wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(left)})
	right := wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 1, 2, 2), EgestEnabled: true})})
	rightLock := wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(right)})
	mediant := wg.AddUnit(&Slot{Inner: arithPtr(unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 1}))), X: idPtr(left), Y: idPtr(right)})
	mediantLock := wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(mediant)})

	return Log2{
		wg:          wg,
		x:           x,
		leftLock:    leftLock,
		rightLock:   rightLock,
		mediantLock: mediantLock,
		lft:         unit.Lft{Mat: linMat4(0, 1, 1, 0), EgestEnabled: true},
	}
}

func linMat4(a, b, c, d int64) [4]*big.Int {
	return [4]*big.Int{big.NewInt(a), big.NewInt(b), big.NewInt(c), big.NewInt(d)}
}

func (l *Log2) addLayer(left bool) {
	asLft := func(id UnitID) *unit.Lft {
		lf, _ := l.wg.GetUnit(id).Inner.(*unit.Lft)
		return lf
	}
	asLft(l.mediantLock).EgestEnabled = true
	asLft(l.leftLock).EgestEnabled = true
	asLft(l.rightLock).EgestEnabled = true

	if left {
		l.leftLock = l.wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(l.mediantLock)})
		mediant := l.wg.AddUnit(&Slot{Inner: arithPtr(unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 1}))), X: idPtr(l.mediantLock), Y: idPtr(l.rightLock)})
		l.mediantLock = l.wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(mediant)})
		l.rightLock = l.wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(l.rightLock)})
	} else {
		l.rightLock = l.wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(l.mediantLock)})
		mediant := l.wg.AddUnit(&Slot{Inner: arithPtr(unit.NewArith(mat8([8]int64{1, 0, 0, 0, 0, 0, 0, 1}))), X: idPtr(l.mediantLock), Y: idPtr(l.leftLock)})
		l.mediantLock = l.wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(mediant)})
		l.leftLock = l.wg.AddUnit(&Slot{Inner: lftPtr(unit.Lft{Mat: linMat4(1, 0, 0, 1), EgestEnabled: false}), X: idPtr(l.leftLock)})
	}
}

func (l *Log2) IngestX(x term.Term) {
	l.wg.GetUnit(l.x).Inner.IngestX(x)
	l.wg.Cycle()
	l.wg.Cycle()
}

// IngestY is unused: log2 takes a single input stream.
func (l *Log2) IngestY(term.Term) {}

func (l *Log2) EgestZ() term.Term {
	l.wg.Cycle()

	if l.lft.IsInf() {
		return l.lft.EgestZ()
	}

	med, _ := l.wg.GetUnit(l.mediantLock).Inner.(*unit.Lft)
	if med.IsNonpositive() {
		return term.Undefined
	}
	i1, i2 := med.Intervals()
	n1, d1 := i1.Num, i1.Den
	n2, d2 := i2.Num, i2.Den

	halved1 := new(big.Int).Lsh(n1, 1)
	halved2 := new(big.Int).Lsh(n2, 1)
	if halved1.Cmp(d1) <= 0 && halved2.Cmp(d2) <= 0 {
		return term.Undefined
	}

	if n1.Cmp(d1) > 0 && n2.Cmp(d2) > 0 {
		l.addLayer(true)
		l.lft.Mat[0] = new(big.Int).Add(l.lft.Mat[0], l.lft.Mat[1])
		l.lft.Mat[2] = new(big.Int).Add(l.lft.Mat[2], l.lft.Mat[3])
	}
	if n1.Cmp(d1) < 0 && n2.Cmp(d2) < 0 {
		l.addLayer(false)
		l.lft.Mat[1] = new(big.Int).Add(l.lft.Mat[1], l.lft.Mat[0])
		l.lft.Mat[3] = new(big.Int).Add(l.lft.Mat[3], l.lft.Mat[2])
	}
	if n1.Cmp(d1) == 0 && n2.Cmp(d2) == 0 {
		l.addLayer(true)
		l.lft.Mat[0] = new(big.Int).Add(l.lft.Mat[0], l.lft.Mat[1])
		l.lft.Mat[2] = new(big.Int).Add(l.lft.Mat[2], l.lft.Mat[3])
		l.lft.Mat[1] = l.lft.Mat[0]
		l.lft.Mat[3] = l.lft.Mat[2]
	}

	return l.lft.EgestZ()
}

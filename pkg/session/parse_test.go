package session

import (
	"math/big"
	"testing"

	"github.com/oisee/clogcalc/pkg/term"
)

func TestRollStackExpressionBinaryOperandOrder(t *testing.T) {
	// "a b -" pushes a then b; Sub must assign Left=b (last pushed, first
	// popped) and Right=a so that build.go's matrix computes a-b.
	n, err := RollStackExpression("5 3 -")
	if err != nil {
		t.Fatalf("RollStackExpression() error = %v", err)
	}
	if n.Kind != NodeSub {
		t.Fatalf("Kind = %v, want NodeSub", n.Kind)
	}
	if n.Left.Word.Cmp(big.NewInt(3)) != 0 {
		t.Errorf("Left.Word = %v, want 3 (the last-pushed token)", n.Left.Word)
	}
	if n.Right.Word.Cmp(big.NewInt(5)) != 0 {
		t.Errorf("Right.Word = %v, want 5 (the first-pushed token)", n.Right.Word)
	}
}

func TestRollStackExpressionUnaryUsesLeft(t *testing.T) {
	n, err := RollStackExpression("4 sqrt")
	if err != nil {
		t.Fatalf("RollStackExpression() error = %v", err)
	}
	if n.Kind != NodeSqrt {
		t.Fatalf("Kind = %v, want NodeSqrt", n.Kind)
	}
	if n.Left == nil || n.Left.Word.Cmp(big.NewInt(4)) != 0 {
		t.Errorf("Left = %v, want leaf for 4", n.Left)
	}
}

func TestRollStackExpressionConstant(t *testing.T) {
	n, err := RollStackExpression("pi")
	if err != nil {
		t.Fatalf("RollStackExpression() error = %v", err)
	}
	if n.Kind != NodeConstant || n.Constant != ConstPi {
		t.Errorf("got Kind=%v Constant=%v, want NodeConstant/ConstPi", n.Kind, n.Constant)
	}
}

func TestRollStackExpressionEmptyStackOnUnderflow(t *testing.T) {
	if _, err := RollStackExpression("+"); err == nil {
		t.Error("RollStackExpression(\"+\") did not error on stack underflow")
	}
}

func TestParseDecimalAllZeroDigits(t *testing.T) {
	n, err := parseDecimal("0.00")
	if err != nil {
		t.Fatalf("parseDecimal() error = %v", err)
	}
	if n.Word.Sign() != 0 || n.Pow != 0 {
		t.Errorf("got Word=%v Pow=%d, want Word=0 Pow=0", n.Word, n.Pow)
	}
}

func TestParseDecimalFractional(t *testing.T) {
	n, err := parseDecimal("3.14")
	if err != nil {
		t.Fatalf("parseDecimal() error = %v", err)
	}
	if n.Word.Cmp(big.NewInt(314)) != 0 {
		t.Errorf("Word = %v, want 314", n.Word)
	}
	if n.Pow != 2 {
		t.Errorf("Pow = %d, want 2", n.Pow)
	}
}

func TestParseDecimalRejectsMultipleDots(t *testing.T) {
	if _, err := parseDecimal("1.2.3"); err == nil {
		t.Error("parseDecimal(\"1.2.3\") did not error on multiple dots")
	}
}

func TestParseDecimalRejectsAllDots(t *testing.T) {
	if _, err := parseDecimal("..."); err == nil {
		t.Error("parseDecimal(\"...\") did not error when the token has no digits")
	}
}

func TestParseCFracSplitsOnCommas(t *testing.T) {
	n := parseCFrac("1,2,3")
	want := []int64{1, 2, 3}
	if len(n.CFracTerms) != len(want) {
		t.Fatalf("CFracTerms = %v, want %v", n.CFracTerms, want)
	}
	for i, v := range want {
		if n.CFracTerms[i] != v {
			t.Errorf("CFracTerms[%d] = %d, want %d", i, n.CFracTerms[i], v)
		}
	}
}

func TestParseCLogParsesWireSymbols(t *testing.T) {
	n := parseCLog("c" + term.Ord.String() + term.Inf.String())
	if len(n.CLogTerms) != 2 {
		t.Fatalf("CLogTerms = %v, want 2 entries", n.CLogTerms)
	}
	if n.CLogTerms[0] != term.Ord || n.CLogTerms[1] != term.Inf {
		t.Errorf("CLogTerms = %v, want [Ord, Inf]", n.CLogTerms)
	}
}

func TestParseLiteralRejectsInvalidName(t *testing.T) {
	if _, err := parseLiteral("bogus"); err == nil {
		t.Error("parseLiteral(\"bogus\") did not error on an unrecognized name")
	}
}

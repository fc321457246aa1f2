package session

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/oisee/clogcalc/pkg/term"
)

// ParseError reports why a stack expression failed to parse.
type ParseError struct {
	Kind  string
	Token string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return e.Kind
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Token)
}

var errEmptyStack = errors.New("empty stack")

var binaryOps = map[string]NodeKind{
	"+":     NodeAdd,
	"-":     NodeSub,
	"*":     NodeMul,
	"/":     NodeDiv,
	"%":     NodeMod,
	"^":     NodePow,
	"log":   NodeLog,
	"floor": NodeFloor,
	"ceil":  NodeCeil,
	"round": NodeRound,
	"cmp":   NodeCompare,
}

var unaryOps = map[string]NodeKind{
	"abs":  NodeAbs,
	"sqrt": NodeSqrt,
	"exp":  NodeExp,
	"ln":   NodeLn,
	"log2": NodeLog2,
}

var constants = map[string]ConstantKind{
	"pi":  ConstPi,
	"e":   ConstE,
	"inf": ConstInf,
}

// RollStackExpression parses a whitespace-separated RPN expression into
// an AST. Extra items left at the bottom of the stack are ignored; only
// the final top-of-stack node is returned.
func RollStackExpression(expr string) (*Node, error) {
	var stack []*Node

	pop := func() (*Node, error) {
		if len(stack) == 0 {
			return nil, errEmptyStack
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, nil
	}

	for _, token := range strings.Fields(strings.TrimSpace(expr)) {
		if kind, ok := binaryOps[token]; ok {
			t1, err := pop()
			if err != nil {
				return nil, err
			}
			t2, err := pop()
			if err != nil {
				return nil, err
			}
			stack = append(stack, &Node{Kind: kind, Left: t1, Right: t2})
			continue
		}
		if kind, ok := unaryOps[token]; ok {
			top, err := pop()
			if err != nil {
				return nil, err
			}
			stack = append(stack, &Node{Kind: kind, Left: top})
			continue
		}
		if kind, ok := constants[token]; ok {
			stack = append(stack, &Node{Kind: NodeConstant, Constant: kind})
			continue
		}

		node, err := parseLiteral(token)
		if err != nil {
			return nil, err
		}
		stack = append(stack, node)
	}

	return pop()
}

func parseLiteral(token string) (*Node, error) {
	switch {
	case strings.HasPrefix(token, "f:"):
		return parseCFrac(token[2:]), nil
	case strings.HasPrefix(token, "c"):
		return parseCLog(token), nil
	}

	allowed := true
	for _, c := range token {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '.' {
			allowed = false
			break
		}
	}
	if !allowed {
		return nil, &ParseError{Kind: "invalid token", Token: token}
	}

	switch {
	case isNumericLiteral(token):
		return parseDecimal(token)
	default:
		return nil, &ParseError{Kind: "invalid name", Token: token}
	}
}

func isNumericLiteral(s string) bool {
	for _, c := range s {
		if !unicode.IsDigit(c) && c != '.' {
			return false
		}
	}
	return s != ""
}

func parseCFrac(body string) *Node {
	var terms []int64
	for _, piece := range strings.Split(body, ",") {
		if v, err := strconv.ParseInt(piece, 10, 64); err == nil {
			terms = append(terms, v)
		}
	}
	return &Node{Kind: NodeCFrac, CFracTerms: terms}
}

func parseCLog(token string) *Node {
	var items []term.Term
	for _, c := range token {
		if t, ok := term.Parse(c); ok {
			items = append(items, t)
		}
	}
	return &Node{Kind: NodeCLog, CLogTerms: items}
}

func parseDecimal(token string) (*Node, error) {
	points := strings.Count(token, ".")
	if points > 1 || len([]rune(token)) == points {
		return nil, &ParseError{Kind: "invalid decimal", Token: token}
	}

	hasNonzeroDigit := strings.ContainsAny(token, "123456789")
	if !hasNonzeroDigit {
		return &Node{Kind: NodeDecimal, Word: big.NewInt(0), Pow: 0}, nil
	}

	dotIndex := strings.IndexByte(token, '.')
	length := len([]rune(token))
	pow := length
	if dotIndex >= 0 {
		pow = length - dotIndex - 1
	} else {
		pow = 0
	}
	if pow < 0 || pow > 0xFFFF {
		return nil, &ParseError{Kind: "decimal exponent out of range", Token: token}
	}

	word := strings.ReplaceAll(token, ".", "")
	w, ok := new(big.Int).SetString(word, 10)
	if !ok {
		return nil, &ParseError{Kind: "invalid decimal", Token: token}
	}
	return &Node{Kind: NodeDecimal, Word: w, Pow: uint16(pow)}, nil
}

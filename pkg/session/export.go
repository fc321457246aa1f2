package session

import "math/big"

// Export renders a Result into the REPL's JSON output shape: the term
// stream as wire symbols, the four rounding readouts (nil becomes the
// JSON null "no answer yet"), and the raw endpoint rationals.
type Export struct {
	Terms string       `json:"terms"`
	Trunc *string      `json:"trunc"`
	Floor *string      `json:"floor"`
	Ceil  *string      `json:"ceil"`
	Round *string      `json:"round"`
	Ends  [2]RatString `json:"endpoints"`
}

// RatString is a (numerator, denominator) pair rendered as decimal
// strings, since big.Int doesn't round-trip through JSON numbers without
// risking silent truncation in non-Go consumers.
type RatString struct {
	Num string `json:"num"`
	Den string `json:"den"`
}

func bigOrNil(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

// ToExport converts a Result to its JSON-ready shape.
func (r Result) ToExport() Export {
	var sb []byte
	for _, t := range r.Terms {
		sb = append(sb, []byte(t.String())...)
	}

	return Export{
		Terms: string(sb),
		Trunc: bigOrNil(r.Trunc),
		Floor: bigOrNil(r.Floor),
		Ceil:  bigOrNil(r.Ceil),
		Round: bigOrNil(r.Round),
		Ends: [2]RatString{
			{Num: r.Endpoint0.Num.String(), Den: r.Endpoint0.Den.String()},
			{Num: r.Endpoint1.Num.String(), Den: r.Endpoint1.Den.String()},
		},
	}
}

package unit

import "math/big"

// Small, allocation-obvious helpers over *big.Int. math/big's Int methods
// mutate the receiver and return it, which reads awkwardly inline with the
// matrix algebra below; these wrappers always allocate a fresh result so
// callers can write ordinary expressions.

func bi(v int64) *big.Int { return big.NewInt(v) }

func clone(a *big.Int) *big.Int { return new(big.Int).Set(a) }

func add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

func sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

func neg(a *big.Int) *big.Int { return new(big.Int).Neg(a) }

func mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

func lsh(a *big.Int, n uint) *big.Int { return new(big.Int).Lsh(a, n) }

func rsh(a *big.Int, n uint) *big.Int { return new(big.Int).Rsh(a, n) }

func isZero(a *big.Int) bool { return a.Sign() == 0 }

func odd(a *big.Int) bool { return a.Bit(0) == 1 }

// quadMat8 builds an 8-coefficient matrix from int64 literals, for the
// small constant matrices units are seeded with.
func quadMat8(c [8]int64) [8]*big.Int {
	var m [8]*big.Int
	for i, v := range c {
		m[i] = bi(v)
	}
	return m
}

// linMat4 builds a 4-coefficient matrix from int64 literals.
func linMat4(c [4]int64) [4]*big.Int {
	var m [4]*big.Int
	for i, v := range c {
		m[i] = bi(v)
	}
	return m
}

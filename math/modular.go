/*
Package math implements the number-theoretic helpers behind textbook RSA:
the extended Euclidean algorithm, modular inverses and least common multiples.

All functions allocate their results and never modify their arguments.
*/
package math

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// ErrNoInverse is returned by [ModInverse] when its arguments are not coprime
var ErrNoInverse = errors.New("modular inverse does not exist")

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x, y such that a*x + b*y = g.
// a and b must be non-negative
func ExtendedGCD(a *big.Int, b *big.Int) (g *big.Int, x *big.Int, y *big.Int) {
	if a.Sign() == 0 {
		return new(big.Int).Set(b), big.NewInt(0), big.NewInt(1)
	}

	// (g, x', y') <- egcd(b mod a, a)
	quotient, remainder := new(big.Int).DivMod(b, a, new(big.Int))
	g, x1, y1 := ExtendedGCD(remainder, a)

	// x <- y' - (b/a) * x'
	x = new(big.Int).Mul(quotient, x1)
	x.Sub(y1, x)

	return g, x, x1
}

// ModInverse returns x in [0, n) such that a*x ≡ 1 (mod n).
// If gcd(a, n) != 1 the returned error wraps [ErrNoInverse]
func ModInverse(a *big.Int, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive, got %v", n)
	}

	// reduce first so that ExtendedGCD only ever sees non-negative inputs
	aModN := new(big.Int).Mod(a, n)
	g, x, _ := ExtendedGCD(aModN, n)
	if g.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("cannot invert %v mod %v (gcd %v): %w", a, n, g, ErrNoInverse)
	}

	// big.Int.Mod is Euclidean, so the result is already in [0, n)
	return x.Mod(x, n), nil
}

// LCM returns the least common multiple a*b / gcd(a, b). LCM(0, 0) is 0
func LCM(a *big.Int, b *big.Int) *big.Int {
	g, _, _ := ExtendedGCD(a, b)
	if g.Cmp(bigZero) == 0 {
		return big.NewInt(0)
	}

	product := new(big.Int).Mul(a, b)
	return product.Div(product, g)
}

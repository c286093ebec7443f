/*
Package primality implements the Fermat and Miller–Rabin witness tests and the
random prime search used for textbook RSA key generation.

A witness test takes a candidate p and a base a (1 < a < p) and answers "probably prime"
or "composite". Neither test has false negatives for true primes. The Fermat test is fooled by
every Carmichael number (e.g. 561), which is kept on purpose so the two tests can be compared.
*/
package primality

import (
	"math/big"

	"go.uber.org/zap"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// A Witness decides whether base a attests that p is probably prime
type Witness func(a *big.Int, p *big.Int) bool

// Fermat reports whether a^p mod p equals a, the generalized form of Fermat's little theorem.
// The comparison is against a itself, so bases outside [0, p) are rejected even for a prime p
func Fermat(a *big.Int, p *big.Int) bool {
	ok, _ := fermat(a, p)
	return ok
}

func fermat(a *big.Int, p *big.Int) (bool, []zap.Field) {
	if p.Cmp(bigTwo) < 0 {
		return false, nil
	}

	b := new(big.Int).Exp(a, p, p)

	return b.Cmp(a) == 0, []zap.Field{zap.Stringer("a^p mod p", b)}
}

// MillerRabin runs a single Miller–Rabin round for base a. Writing p - 1 = d * 2^s with d odd,
// p passes if a^d ≡ 1 (mod p) or a^(d * 2^k) ≡ -1 (mod p) for some 0 <= k < s
func MillerRabin(a *big.Int, p *big.Int) bool {
	ok, _ := millerRabin(a, p)
	return ok
}

func millerRabin(a *big.Int, p *big.Int) (bool, []zap.Field) {
	if p.Cmp(bigTwo) < 0 {
		return false, nil
	}

	pMinusOne := new(big.Int).Sub(p, bigOne)
	d, s := oddPart(pMinusOne)

	// b <- a^d mod p
	b := new(big.Int).Exp(a, d, p)
	if b.Cmp(bigOne) == 0 {
		return true, []zap.Field{zap.Stringer("d", d), zap.Int("s", s), zap.String("witness", "a^d = 1")}
	}

	for k := 0; k < s; k++ {
		if b.Cmp(pMinusOne) == 0 {
			return true, []zap.Field{zap.Stringer("d", d), zap.Int("s", s), zap.Int("k", k), zap.String("witness", "a^(d*2^k) = -1")}
		}
		// b <- b^2 mod p, i.e. a^(d * 2^(k+1))
		b.Mul(b, b)
		b.Mod(b, p)
	}

	return false, []zap.Field{zap.Stringer("d", d), zap.Int("s", s)}
}

// oddPart splits n > 0 into d * 2^s with d odd by repeated halving
func oddPart(n *big.Int) (d *big.Int, s int) {
	d = new(big.Int).Set(n)
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}
	return d, s
}

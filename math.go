package textbookrsa

import (
	"math/big"

	rsamath "github.com/bastionzero/textbookrsa/math"
)

var bigOne = big.NewInt(1)

// calculate the Carmichael totient λ(n) = lcm(p0 - 1, p1 - 1, ...) from the prime factors of n
func carmichaelTotient(primes []*big.Int) *big.Int {
	// λ <- lcm(p[0] - 1, p[1] - 1)
	p0m1 := new(big.Int).Sub(primes[0], bigOne)
	p1m1 := new(big.Int).Sub(primes[1], bigOne)
	lambda := rsamath.LCM(p0m1, p1m1)

	// fold in any additional primes
	for i := 2; i < len(primes); i++ {
		pim1 := new(big.Int).Sub(primes[i], bigOne)
		lambda = rsamath.LCM(lambda, pim1)
	}

	return lambda
}

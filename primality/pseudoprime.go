package primality

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// how many random bases are tried before a candidate is discarded for having no strong liar
const liarDraws = 40

// RandomPseudoprime draws a composite n = p1 * p2 from [ceil(2^bitMin), ceil(2^bitMax)) where p1 and
// p2 = ratio*p1 - (ratio-1) are both prime. Since p2 - 1 = ratio * (p1 - 1), a large share of bases
// are strong liars for n, so Miller–Rabin with a few random bases can take it for a prime.
//
// liar is a base for which [MillerRabin] accepts n. The search runs until ctx is done
func RandomPseudoprime(ctx context.Context, random io.Reader, bitMin float64, bitMax float64, ratio int64) (n *big.Int, liar *big.Int, err error) {
	if ratio < 2 {
		return nil, nil, fmt.Errorf("pseudoprime ratio must be at least 2, got %d", ratio)
	}

	nMin := PowerOfTwoCeil(bitMin)
	nMax := PowerOfTwoCeil(bitMax)
	r := big.NewInt(ratio)
	rMinusOne := big.NewInt(ratio - 1)

	// ratio * p1^2 has to fall inside [nMin, nMax)
	p1Min := new(big.Int).Div(nMin, r)
	p1Min.Sqrt(p1Min).Add(p1Min, bigOne)
	p1Max := new(big.Int).Div(nMax, r)
	p1Max.Sqrt(p1Max)
	if p1Max.Cmp(p1Min) <= 0 {
		return nil, nil, fmt.Errorf("no room for a ratio %d pseudoprime between %v and %v", ratio, nMin, nMax)
	}

	isPrime := CheckerFor(bitMax)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		p1, err := randomPrimeBetween(random, p1Min, p1Max, isPrime)
		if err != nil {
			return nil, nil, err
		}

		// p2 <- ratio * p1 - (ratio - 1)
		p2 := new(big.Int).Mul(p1, r)
		p2.Sub(p2, rMinusOne)
		if !isPrime(p2) {
			continue
		}

		n = new(big.Int).Mul(p1, p2)
		if n.Cmp(nMin) < 0 {
			continue
		}

		liar, err = strongLiar(random, n)
		if err != nil {
			return nil, nil, err
		} else if liar != nil {
			return n, liar, nil
		}
	}
}

// strongLiar returns a random base in [2, n-1) that passes Miller–Rabin for n, or nil if none turned up
func strongLiar(random io.Reader, n *big.Int) (*big.Int, error) {
	width := new(big.Int).Sub(n, big.NewInt(3))
	if width.Sign() <= 0 {
		return nil, nil
	}

	for i := 0; i < liarDraws; i++ {
		a, err := rand.Int(random, width)
		if err != nil {
			return nil, fmt.Errorf("failed to draw base: %w", err)
		}

		a.Add(a, bigTwo)
		if MillerRabin(a, n) {
			return a, nil
		}
	}
	return nil, nil
}

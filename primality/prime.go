package primality

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"math/big"
)

// trial division stays tractable up to roughly this many bits per candidate
const trialDivisionMaxBits = 32

// smallPrimeBases makes ProbablyPrime deterministic for n < 3.3 * 10^24
var smallPrimeBases = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// RandomPrime draws uniformly random integers from [ceil(2^bitMin), ceil(2^bitMax)) until
// isPrime accepts one. Bit bounds may be fractional. There is no bound on the number of draws.
// If isPrime is nil, [CheckerFor] picks one suited to bitMax
func RandomPrime(random io.Reader, bitMin float64, bitMax float64, isPrime func(*big.Int) bool) (*big.Int, error) {
	if isPrime == nil {
		isPrime = CheckerFor(bitMax)
	}

	p, err := randomPrimeBetween(random, PowerOfTwoCeil(bitMin), PowerOfTwoCeil(bitMax), isPrime)
	if err != nil {
		return nil, fmt.Errorf("bit bounds %v..%v: %w", bitMin, bitMax, err)
	}
	return p, nil
}

// draw from [rMin, rMax) until isPrime accepts
func randomPrimeBetween(random io.Reader, rMin *big.Int, rMax *big.Int, isPrime func(*big.Int) bool) (*big.Int, error) {
	width := new(big.Int).Sub(rMax, rMin)
	if width.Sign() <= 0 {
		return nil, fmt.Errorf("empty prime search range [%v, %v)", rMin, rMax)
	}

	for {
		r, err := rand.Int(random, width)
		if err != nil {
			return nil, fmt.Errorf("failed to draw prime candidate: %w", err)
		}

		r.Add(r, rMin)
		if isPrime(r) {
			return r, nil
		}
	}
}

// PowerOfTwoCeil returns ceil(2^exp). The fractional part of exp is carried with float64 precision
func PowerOfTwoCeil(exp float64) *big.Int {
	whole := math.Floor(exp)

	// 2^exp = 2^frac * 2^whole with 2^frac in [1, 2)
	mantissa := new(big.Float).SetFloat64(math.Pow(2, exp-whole))
	power := new(big.Float).SetMantExp(mantissa, int(whole))

	result, accuracy := power.Int(nil)
	if accuracy == big.Below {
		result.Add(result, bigOne)
	}
	return result
}

// CheckerFor returns trial division for candidates of at most 32 bits and [ProbablyPrime] otherwise
func CheckerFor(bits float64) func(*big.Int) bool {
	if bits <= trialDivisionMaxBits {
		return TrialDivision
	}
	return ProbablyPrime
}

// TrialDivision reports whether n is prime by testing every divisor from 2 to floor(sqrt(n))
func TrialDivision(n *big.Int) bool {
	if n.Cmp(bigTwo) < 0 {
		return false
	}

	if n.IsUint64() {
		v := n.Uint64()
		for d := uint64(2); d <= v/d; d++ {
			if v%d == 0 {
				return false
			}
		}
		return true
	}

	limit := new(big.Int).Sqrt(n)
	remainder := new(big.Int)
	for d := big.NewInt(2); d.Cmp(limit) <= 0; d.Add(d, bigOne) {
		if remainder.Mod(n, d).Sign() == 0 {
			return false
		}
	}
	return true
}

// ProbablyPrime runs Miller–Rabin rounds over the first twelve primes as bases
func ProbablyPrime(n *big.Int) bool {
	if n.Cmp(bigTwo) < 0 {
		return false
	}

	remainder := new(big.Int)
	for _, b := range smallPrimeBases {
		base := big.NewInt(b)
		switch n.Cmp(base) {
		case 0:
			return true
		case -1:
			// n is smaller than every remaining base and was not divisible by the earlier ones
			return true
		}
		if remainder.Mod(n, base).Sign() == 0 {
			return false
		}
	}

	for _, b := range smallPrimeBases {
		if !MillerRabin(big.NewInt(b), n) {
			return false
		}
	}
	return true
}

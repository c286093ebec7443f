package textbookrsa

import (
	"fmt"
	"math/big"

	"go.uber.org/multierr"

	rsamath "github.com/bastionzero/textbookrsa/math"
	"github.com/bastionzero/textbookrsa/primality"
)

// Validate checks every key pair invariant and returns all violations combined with multierr:
//
//   - p and q are distinct primes (Miller–Rabin over fixed bases)
//   - n = p * q
//   - gcd(e, lcm(p-1, q-1)) = 1
//   - e * d ≡ 1 (mod lcm(p-1, q-1))
//
// None of the cipher operations call it; it exists for callers that want to reject malformed keys up front.
// Use multierr.Errors to list the individual failures
func Validate(pub *PublicKey, priv *PrivateKey) error {
	if pub == nil || priv == nil {
		return fmt.Errorf("cannot validate a nil key")
	}
	for name, v := range map[string]*big.Int{"n": pub.N, "e": pub.E, "p": priv.P, "q": priv.Q, "d": priv.D} {
		if v == nil {
			return fmt.Errorf("key component %s is missing", name)
		}
	}

	var err error

	if priv.P.Cmp(priv.Q) == 0 {
		err = multierr.Append(err, fmt.Errorf("p and q are equal (%v)", priv.P))
	}
	if !primality.ProbablyPrime(priv.P) {
		err = multierr.Append(err, fmt.Errorf("p = %v is not prime", priv.P))
	}
	if !primality.ProbablyPrime(priv.Q) {
		err = multierr.Append(err, fmt.Errorf("q = %v is not prime", priv.Q))
	}
	if priv.N().Cmp(pub.N) != 0 {
		err = multierr.Append(err, fmt.Errorf("n = %v is not p * q", pub.N))
	}

	// the remaining checks need p, q > 1 to form λ
	if priv.P.Cmp(bigOne) <= 0 || priv.Q.Cmp(bigOne) <= 0 {
		return multierr.Append(err, fmt.Errorf("factors must exceed 1"))
	}

	lambda := carmichaelTotient([]*big.Int{priv.P, priv.Q})
	if gcd := new(big.Int).GCD(nil, nil, pub.E, lambda); gcd.Cmp(bigOne) != 0 {
		err = multierr.Append(err, fmt.Errorf("gcd(e, λ) = %v, want 1", gcd))
	}
	ed := new(big.Int).Mul(pub.E, priv.D)
	if !rsamath.CongruentModN(ed, bigOne, lambda) {
		err = multierr.Append(err, fmt.Errorf("e * d ≢ 1 (mod λ = %v)", lambda))
	}

	return err
}

package textbookrsa

import (
	"fmt"
	"math/big"

	rsamath "github.com/bastionzero/textbookrsa/math"
)

const (
	// DefaultBits is the modulus length used by the worked examples
	DefaultBits = 32
	// DefaultPublicExponent is the public exponent used by the worked examples
	DefaultPublicExponent = 17
)

// A PublicKey is the public half of a key pair. It must not be modified after construction
type PublicKey struct {
	N *big.Int // modulus, p * q
	E *big.Int // public exponent
}

// A PrivateKey holds the two secret primes and the private exponent D, with e*D ≡ 1 (mod lcm(P-1, Q-1)).
// It carries no reference to its PublicKey
type PrivateKey struct {
	P *big.Int
	Q *big.Int
	D *big.Int
}

// A KeyPair is the product of one successful generation
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// N recomputes the modulus p * q
func (priv *PrivateKey) N() *big.Int {
	return new(big.Int).Mul(priv.P, priv.Q)
}

// CRTValues derives the Chinese Remainder Theorem parameters
//
//	dP = d mod (p-1), dQ = d mod (q-1), qInv = q^-1 mod p
//
// with a zero dP or dQ replaced by p-1 or q-1 respectively. They are recomputed on every call.
// An error wrapping [rsamath.ErrNoInverse] means q is not invertible mod p, which only happens for malformed keys
func (priv *PrivateKey) CRTValues() (dP *big.Int, dQ *big.Int, qInv *big.Int, err error) {
	pMinusOne := new(big.Int).Sub(priv.P, bigOne)
	qMinusOne := new(big.Int).Sub(priv.Q, bigOne)

	dP = new(big.Int).Mod(priv.D, pMinusOne)
	dQ = new(big.Int).Mod(priv.D, qMinusOne)

	// d > 0, so a reduced exponent of 0 stands for a positive multiple of p-1 (q = 2 gives q-1 = 1).
	// c^0 would be 1 even when the prime divides c
	if dP.Sign() == 0 {
		dP.Set(pMinusOne)
	}
	if dQ.Sign() == 0 {
		dQ.Set(qMinusOne)
	}

	qInv, err = rsamath.ModInverse(priv.Q, priv.P)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to derive CRT coefficient: %w", err)
	}
	return dP, dQ, qInv, nil
}

// NewKeyFromFactors builds a key pair from caller-chosen factors p and q and public exponent e.
//
// The factors are not checked for primality, so this can be used to build deliberately broken keys
// (see [Validate] for the strict checks). The error wraps [rsamath.ErrNoInverse] if e is not
// coprime to lcm(p-1, q-1)
func NewKeyFromFactors(p *big.Int, q *big.Int, e *big.Int) (*PublicKey, *PrivateKey, error) {
	if p == nil || q == nil || e == nil {
		return nil, nil, fmt.Errorf("p, q and e are all required")
	}

	d, err := rsamath.ModInverse(e, carmichaelTotient([]*big.Int{p, q}))
	if err != nil {
		return nil, nil, fmt.Errorf("no private exponent for e=%v: %w", e, err)
	}

	return &PublicKey{
			N: new(big.Int).Mul(p, q),
			E: new(big.Int).Set(e),
		}, &PrivateKey{
			P: new(big.Int).Set(p),
			Q: new(big.Int).Set(q),
			D: d,
		}, nil
}

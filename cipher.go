// PLEASE NOTE: this is raw RSA with no padding and no blinding. Every operation is a single
// modular exponentiation and is neither constant-time nor safe against the classic textbook attacks.

package textbookrsa

import (
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/bastionzero/textbookrsa/report"
)

// ErrMessageOutOfRange is returned by [EncryptStrict] for messages outside [0, n)
var ErrMessageOutOfRange = errors.New("message out of range [0, n)")

// A Decrypter applies the private-key transform c^d mod n
type Decrypter func(priv *PrivateKey, c *big.Int) (*big.Int, error)

var (
	// SimplePath exponentiates over the full modulus
	SimplePath Decrypter = func(priv *PrivateKey, c *big.Int) (*big.Int, error) {
		return DecryptSimple(priv, c), nil
	}
	// CRTPath exponentiates over p and q separately and recombines
	CRTPath Decrypter = DecryptCRT
)

// Encrypt returns c = m^e mod n. Callers are responsible for 0 <= m < n:
// anything else is silently reduced by the exponentiation
func Encrypt(pub *PublicKey, m *big.Int) *big.Int {
	return new(big.Int).Exp(m, pub.E, pub.N)
}

// EncryptStrict is [Encrypt] with an explicit range check on m
func EncryptStrict(pub *PublicKey, m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pub.N) >= 0 {
		return nil, fmt.Errorf("cannot encrypt %v with a %d-bit modulus: %w", m, pub.N.BitLen(), ErrMessageOutOfRange)
	}
	return Encrypt(pub, m), nil
}

// DecryptSimple returns m = c^d mod (p * q)
func DecryptSimple(priv *PrivateKey, c *big.Int) *big.Int {
	return new(big.Int).Exp(c, priv.D, priv.N())
}

// DecryptCRT computes c^d mod (p * q) with the Chinese Remainder Theorem:
//
//	cP = c^dP mod p, cQ = c^dQ mod q
//	h  = (cP - cQ) * qInv mod p
//	m  = cQ + h * q
//
// For a valid key it always agrees with [DecryptSimple]
func DecryptCRT(priv *PrivateKey, c *big.Int) (*big.Int, error) {
	dP, dQ, qInv, err := priv.CRTValues()
	if err != nil {
		return nil, err
	}

	cP := new(big.Int).Exp(c, dP, priv.P)
	cQ := new(big.Int).Exp(c, dQ, priv.Q)

	// cP - cQ may be negative; big.Int.Mod is Euclidean so h lands in [0, p)
	h := new(big.Int).Sub(cP, cQ)
	h.Mod(h, priv.P)
	h.Mul(h, qInv)
	h.Mod(h, priv.P)

	// m <- cQ + h * q
	m := h.Mul(h, priv.Q)
	return m.Add(m, cQ), nil
}

// Sign applies the private-key transform to msg directly; there is no digest step.
// useCRT selects [DecryptCRT] over [DecryptSimple]
func Sign(priv *PrivateKey, msg *big.Int, useCRT bool) (*big.Int, error) {
	if useCRT {
		return DecryptCRT(priv, msg)
	}
	return DecryptSimple(priv, msg), nil
}

// Verify reports whether sig^e mod n equals msg
func Verify(pub *PublicKey, msg *big.Int, sig *big.Int) bool {
	return Encrypt(pub, sig).Cmp(msg) == 0
}

// CheckRoundTrip encrypts every message, decrypts it with decrypt and counts how many come back unchanged.
// Per-message detail is logged according to mode. A decryption error counts as a failure
func CheckRoundTrip(messages []*big.Int, pub *PublicKey, priv *PrivateKey, decrypt Decrypter, mode report.OutputMode, logger *zap.Logger) report.Tally {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.Stringer("n", pub.N), zap.Stringer("e", pub.E))

	var tally report.Tally
	for _, m := range messages {
		c := Encrypt(pub, m)
		decrypted, err := decrypt(priv, c)
		ok := err == nil && decrypted.Cmp(m) == 0
		tally.Record(ok)

		if mode.Shows(ok) {
			logger.Info("round trip",
				zap.Stringer("m", m),
				zap.Stringer("c", c),
				zap.Stringer("decrypted", decrypted),
				zap.String("result", report.Verdict(ok)),
				zap.Error(err),
			)
		}
	}

	logger.Info("tally", zap.Int("passed", tally.Passed), zap.Int("total", tally.Total))
	return tally
}

package textbookrsa

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	rsamath "github.com/bastionzero/textbookrsa/math"
	"github.com/bastionzero/textbookrsa/primality"
)

// the smallest modulus length for which both prime search ranges are non-empty
const minBits = 4

// A KeyGenerator builds key pairs. The zero value draws from crypto/rand, retries until it succeeds
// and does not log
type KeyGenerator struct {
	// Random is the source for prime candidates. crypto/rand.Reader when nil
	Random io.Reader
	// PrimeTest decides primality of candidates. When nil, trial division is used for small
	// candidates and Miller–Rabin for the rest (see [primality.CheckerFor])
	PrimeTest func(*big.Int) bool
	// MaxAttempts caps the number of (p, q) draws. 0 retries until a usable pair is found
	MaxAttempts uint
	Logger      *zap.Logger
}

// GenerateKey is shorthand for a zero-value [KeyGenerator] reading from random
func GenerateKey(random io.Reader, bits int, e *big.Int) (*PublicKey, *PrivateKey, error) {
	g := &KeyGenerator{Random: random}
	return g.Generate(context.Background(), bits, e)
}

// Generate returns a key pair whose modulus is close to bits long, with public exponent e.
//
// The bit length is split asymmetrically: with h = bits/2, p is drawn from [2^h, 2^(h+0.5)) and
// q from [2^(h-1), 2^(h-0.5)), so the ranges never overlap and p != q.
// If e has no inverse modulo lcm(p-1, q-1), both primes are discarded and drawn again
func (g *KeyGenerator) Generate(ctx context.Context, bits int, e *big.Int) (*PublicKey, *PrivateKey, error) {
	return g.generate(ctx, bits, e, func(random io.Reader, h float64) (*big.Int, error) {
		return primality.RandomPrime(random, h, h+0.5, g.PrimeTest)
	})
}

// GenerateWithPseudoprime is [KeyGenerator.Generate] with p replaced by a composite drawn by
// [primality.RandomPseudoprime] for the given ratio. q is still prime. The result is a broken key:
// [Validate] rejects it, and decryption stops round-tripping for part of the message space
func (g *KeyGenerator) GenerateWithPseudoprime(ctx context.Context, bits int, e *big.Int, ratio int64) (*PublicKey, *PrivateKey, error) {
	return g.generate(ctx, bits, e, func(random io.Reader, h float64) (*big.Int, error) {
		p, liar, err := primality.RandomPseudoprime(ctx, random, h, h+0.5, ratio)
		if err != nil {
			return nil, err
		}
		g.logger().Debug("drew pseudoprime factor", zap.Stringer("p", p), zap.Stringer("liar", liar))
		return p, nil
	})
}

func (g *KeyGenerator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// generate runs the coprimality retry loop, drawing p with drawP and q as a prime
func (g *KeyGenerator) generate(ctx context.Context, bits int, e *big.Int, drawP func(random io.Reader, h float64) (*big.Int, error)) (*PublicKey, *PrivateKey, error) {
	if bits < minBits {
		return nil, nil, fmt.Errorf("cannot generate a %d-bit key: minimum is %d bits", bits, minBits)
	} else if e == nil || e.Sign() <= 0 {
		return nil, nil, fmt.Errorf("public exponent must be positive, got %v", e)
	} else if e.Bit(0) == 0 {
		// λ = lcm(p-1, q-1) is even for every pair we can draw, so no retry would ever succeed
		return nil, nil, fmt.Errorf("public exponent %v is even: %w", e, rsamath.ErrNoInverse)
	}

	random := g.Random
	if random == nil {
		random = rand.Reader
	}
	logger := g.logger()

	h := float64(bits) / 2

	pair, err := retry.DoWithData(
		func() (*KeyPair, error) {
			p, err := drawP(random, h)
			if err != nil {
				return nil, fmt.Errorf("failed to generate p: %w", err)
			}

			q, err := primality.RandomPrime(random, h-1, h-0.5, g.PrimeTest)
			if err != nil {
				return nil, fmt.Errorf("failed to generate q: %w", err)
			}

			// d <- e^-1 mod lcm(p-1, q-1); fails unless gcd(e, λ) = 1
			lambda := carmichaelTotient([]*big.Int{p, q})
			d, err := rsamath.ModInverse(e, lambda)
			if err != nil {
				return nil, err
			}

			return &KeyPair{
				Public: &PublicKey{
					N: new(big.Int).Mul(p, q),
					E: new(big.Int).Set(e),
				},
				Private: &PrivateKey{P: p, Q: q, D: d},
			}, nil
		},
		retry.Context(ctx),
		retry.Attempts(g.MaxAttempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, rsamath.ErrNoInverse)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("discarding primes", zap.Uint("attempt", n), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate %d-bit key with e=%v: %w", bits, e, err)
	}

	logger.Debug("generated key pair",
		zap.Int("bits", bits),
		zap.Int("modulusBits", pair.Public.N.BitLen()),
		zap.Stringer("e", e),
	)
	return pair.Public, pair.Private, nil
}

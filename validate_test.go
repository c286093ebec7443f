package textbookrsa

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/multierr"
)

var _ = Describe("Validate", func() {

	It("Accepts generated keys", func() {
		rng := seeded(31)
		for i := 0; i < keysPerProperty; i++ {
			pub, priv, err := GenerateKey(rng, 48, defaultE)
			Expect(err).To(BeNil())
			Expect(Validate(pub, priv)).To(Succeed())
		}
	})

	It("Flags a composite factor", func() {
		pub, priv, err := NewKeyFromFactors(big.NewInt(1891), big.NewInt(911), defaultE)
		Expect(err).To(BeNil())

		err = Validate(pub, priv)
		Expect(err).To(MatchError(ContainSubstring("p = 1891 is not prime")))
		Expect(multierr.Errors(err)).To(HaveLen(1))
	})

	It("Reports every violated invariant at once", func() {
		pub := &PublicKey{N: big.NewInt(3233), E: big.NewInt(17)}
		priv := &PrivateKey{P: big.NewInt(61), Q: big.NewInt(61), D: big.NewInt(413)}

		errs := multierr.Errors(Validate(pub, priv))
		Expect(errs).To(HaveLen(2))
		Expect(errs[0]).To(MatchError(ContainSubstring("p and q are equal")))
		Expect(errs[1]).To(MatchError(ContainSubstring("is not p * q")))
	})

	It("Flags a private exponent that does not invert e", func() {
		pub, priv, err := NewKeyFromFactors(big.NewInt(61), big.NewInt(53), defaultE)
		Expect(err).To(BeNil())

		wrong := &PrivateKey{P: priv.P, Q: priv.Q, D: new(big.Int).Add(priv.D, bigOne)}
		Expect(Validate(pub, wrong)).To(MatchError(ContainSubstring("e * d")))

		// e = 3 shares a factor with λ = 780
		badE := &PublicKey{N: pub.N, E: big.NewInt(3)}
		Expect(Validate(badE, priv)).To(MatchError(ContainSubstring("gcd(e, λ)")))
	})

	It("Rejects missing components", func() {
		Expect(Validate(nil, nil)).NotTo(Succeed())
		Expect(Validate(&PublicKey{N: big.NewInt(3233)}, &PrivateKey{})).NotTo(Succeed())
	})
})

package primality

import (
	"fmt"
	"math/big"
	mrand "math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Prime generation", func() {

	Context("PowerOfTwoCeil", func() {
		It("Is exact for whole exponents", func() {
			Expect(PowerOfTwoCeil(16).Int64()).To(Equal(int64(1 << 16)))
			Expect(PowerOfTwoCeil(200).Cmp(new(big.Int).Lsh(bigOne, 200))).To(Equal(0))
		})

		It("Rounds fractional exponents up", func() {
			// 2^16.5 = 92681.9...
			Expect(PowerOfTwoCeil(16.5).Int64()).To(Equal(int64(92682)))
			// 2^15.5 = 46340.95...
			Expect(PowerOfTwoCeil(15.5).Int64()).To(Equal(int64(46341)))
		})
	})

	Context("TrialDivision", func() {
		It("Agrees with math/big below 10000", func() {
			for n := int64(0); n < 10000; n++ {
				candidate := big.NewInt(n)
				Expect(TrialDivision(candidate)).To(Equal(candidate.ProbablyPrime(20)), fmt.Sprintf("n=%d", n))
			}
		})

		It("Handles values beyond 64 bits", func() {
			// 2^64 + 1 = 274177 * 67280421310721
			composite := new(big.Int).Lsh(bigOne, 64)
			composite.Add(composite, bigOne)
			Expect(TrialDivision(composite)).To(BeFalse())
		})
	})

	Context("RandomPrime", func() {
		It("Returns primes inside the requested range", func() {
			rng := mrand.New(mrand.NewSource(42))
			low, high := PowerOfTwoCeil(16), PowerOfTwoCeil(16.5)

			for i := 0; i < 50; i++ {
				p, err := RandomPrime(rng, 16, 16.5, nil)
				Expect(err).To(BeNil())
				Expect(p.ProbablyPrime(20)).To(BeTrue(), fmt.Sprintf("%v is not prime", p))
				Expect(p.Cmp(low)).To(BeNumerically(">=", 0))
				Expect(p.Cmp(high)).To(Equal(-1))
			}
		})

		It("Is reproducible for a seeded source", func() {
			first, err := RandomPrime(mrand.New(mrand.NewSource(3)), 20, 21, TrialDivision)
			Expect(err).To(BeNil())
			second, err := RandomPrime(mrand.New(mrand.NewSource(3)), 20, 21, TrialDivision)
			Expect(err).To(BeNil())
			Expect(first.Cmp(second)).To(Equal(0))
		})

		It("Uses Miller-Rabin for wide candidates", func() {
			p, err := RandomPrime(mrand.New(mrand.NewSource(9)), 255, 256, nil)
			Expect(err).To(BeNil())
			Expect(p.BitLen()).To(Equal(256))
			Expect(p.ProbablyPrime(20)).To(BeTrue())
		})

		It("Rejects an empty range", func() {
			_, err := RandomPrime(mrand.New(mrand.NewSource(1)), -0.5, 0, nil)
			Expect(err).NotTo(BeNil())
		})
	})
})

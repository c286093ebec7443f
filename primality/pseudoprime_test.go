package primality

import (
	"context"
	"fmt"
	mrand "math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RandomPseudoprime", func() {

	DescribeTable("Draws composites that Miller-Rabin can mistake for primes",
		func(ratio int64) {
			rng := mrand.New(mrand.NewSource(ratio))
			lower, upper := PowerOfTwoCeil(16), PowerOfTwoCeil(16.5)

			for i := 0; i < 10; i++ {
				n, liar, err := RandomPseudoprime(context.Background(), rng, 16, 16.5, ratio)
				Expect(err).To(BeNil())

				Expect(n.Cmp(lower)).To(BeNumerically(">=", 0), fmt.Sprintf("%v below range", n))
				Expect(n.Cmp(upper)).To(BeNumerically("<", 0), fmt.Sprintf("%v above range", n))
				Expect(TrialDivision(n)).To(BeFalse(), fmt.Sprintf("%v is prime", n))
				Expect(ProbablyPrime(n)).To(BeFalse(), fmt.Sprintf("%v passed every small prime base", n))

				Expect(liar.Cmp(bigTwo)).To(BeNumerically(">=", 0))
				Expect(MillerRabin(liar, n)).To(BeTrue(), fmt.Sprintf("base %v does not lie for %v", liar, n))
			}
		},
		Entry("ratio 2", int64(2)),
		Entry("ratio 3", int64(3)),
	)

	It("Has the form p1 * (ratio*p1 - (ratio-1))", func() {
		n, _, err := RandomPseudoprime(context.Background(), mrand.New(mrand.NewSource(8)), 16, 16.5, 2)
		Expect(err).To(BeNil())

		// 199 * 397 and 211 * 421 are the only such products in range
		Expect([]int64{199 * 397, 211 * 421}).To(ContainElement(n.Int64()))
	})

	It("Rejects a ratio below 2", func() {
		_, _, err := RandomPseudoprime(context.Background(), mrand.New(mrand.NewSource(1)), 16, 16.5, 1)
		Expect(err).NotTo(BeNil())
	})

	It("Rejects a range too narrow for any factor", func() {
		_, _, err := RandomPseudoprime(context.Background(), mrand.New(mrand.NewSource(1)), 4, 4.2, 2)
		Expect(err).NotTo(BeNil())
	})

	It("Stops when the context is done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := RandomPseudoprime(ctx, mrand.New(mrand.NewSource(1)), 16, 16.5, 2)
		Expect(err).To(MatchError(context.Canceled))
	})
})


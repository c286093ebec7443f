package textbookrsa

import (
	"context"
	"fmt"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GenerateMany", func() {

	It("Generates independent valid pairs concurrently", func() {
		g := &KeyGenerator{Random: seeded(41)}
		pairs, err := g.GenerateMany(context.Background(), 16, 64, defaultE)
		Expect(err).To(BeNil())
		Expect(pairs).To(HaveLen(16))

		seen := map[string]bool{}
		for i, pair := range pairs {
			Expect(pair).NotTo(BeNil(), fmt.Sprintf("pair #%d missing", i))
			expectValidPair(pair.Public, pair.Private, 64, defaultE)
			seen[pair.Public.N.String()] = true
		}
		Expect(len(seen)).To(BeNumerically(">", 1))
	})

	It("Returns nothing for a zero count", func() {
		pairs, err := (&KeyGenerator{}).GenerateMany(context.Background(), 0, 32, defaultE)
		Expect(err).To(BeNil())
		Expect(pairs).To(BeEmpty())
	})

	It("Propagates generation failures", func() {
		g := &KeyGenerator{Random: seeded(42), MaxAttempts: 2}
		_, err := g.GenerateMany(context.Background(), 4, 32, big.NewInt(2))
		Expect(err).NotTo(BeNil())

		_, err = g.GenerateMany(context.Background(), -1, 32, defaultE)
		Expect(err).NotTo(BeNil())
	})
})

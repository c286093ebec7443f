package textbookrsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// lockedReader serializes reads so that a single random source can feed concurrent generations
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(b)
}

// GenerateMany runs count independent generations concurrently, at most GOMAXPROCS at a time.
// Reads from g.Random are serialized. The first failure cancels the remaining generations
func (g *KeyGenerator) GenerateMany(ctx context.Context, count int, bits int, e *big.Int) ([]*KeyPair, error) {
	if count < 0 {
		return nil, fmt.Errorf("cannot generate %d key pairs", count)
	}

	random := g.Random
	if random == nil {
		random = rand.Reader
	}
	worker := *g
	worker.Random = &lockedReader{r: random}

	pairs := make([]*KeyPair, count)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < count; i++ {
		i := i
		group.Go(func() error {
			pub, priv, err := worker.Generate(groupCtx, bits, e)
			if err != nil {
				return fmt.Errorf("key pair #%d: %w", i, err)
			}
			pairs[i] = &KeyPair{Public: pub, Private: priv}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

package eval

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/mvbarbosa/gosc/internal/cipher"
	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

// RoundTripStats summarizes a round-trip sweep.
type RoundTripStats struct {
	Trials int
	Passed int
	Failed []string // seeds whose round trip did not recover the message
}

type roundTripResult struct {
	seed string
	ok   bool
}

// RoundTrip expands a fresh seed per trial, encrypts a random message of
// matching length and verifies that decryption recovers it.
func (r *Runner) RoundTrip(trials int) (RoundTripStats, error) {
	r.log.Debug().Int("trials", trials).Msg("running round-trip sweep")

	group := errgroup.Group{}
	group.SetLimit(r.parallel)

	results := make(chan roundTripResult, trials)
	done := make(chan struct{})

	stats := RoundTripStats{Trials: trials}

	go func() {
		defer close(done)

		for result := range results {
			if result.ok {
				stats.Passed++
			} else {
				stats.Failed = append(stats.Failed, result.seed)
			}
		}
	}()

	for i := 0; i < trials; i++ {
		group.Go(func() error {
			seed := fmt.Sprintf("test%04d", i)
			key := cipher.ExpandKey(seed)

			rng := rand.New(rand.NewPCG(r.rngSeed, uint64(i)))
			message := bitseq.Random(rng, len(key))

			ct, err := cipher.Encrypt(key, message)
			if err != nil {
				return fmt.Errorf("encrypting trial %d: %w", i, err)
			}

			pt, err := cipher.Decrypt(key, ct)
			if err != nil {
				return fmt.Errorf("decrypting trial %d: %w", i, err)
			}

			results <- roundTripResult{seed: seed, ok: pt.Equal(message)}

			return nil
		})
	}

	err := group.Wait()

	close(results)
	<-done

	if err != nil {
		return stats, fmt.Errorf("round-trip sweep: %w", err)
	}

	return stats, nil
}

package eval

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/mvbarbosa/gosc/internal/cipher"
	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

// collisionSeedLen is the seed length of the collision census; every seed
// then expands to a key of 4*collisionSeedLen bits.
const collisionSeedLen = 8

// CollisionGroup lists the seeds that produced one shared ciphertext.
type CollisionGroup struct {
	Ciphertext string
	Seeds      []string
}

// CollisionStats summarizes a ciphertext-collision census: many seeds, one
// fixed message.
type CollisionStats struct {
	Trials      int
	MessageBits int
	Unique      int
	Equivalent  int
	Groups      []CollisionGroup // only groups with more than one seed
}

type collisionResult struct {
	seed       string
	ciphertext string
}

// Collisions encrypts one fixed random message under trials distinct seeds
// and counts seeds whose ciphertexts coincide (equivalent keys).
func (r *Runner) Collisions(trials int) (CollisionStats, error) {
	r.log.Debug().Int("trials", trials).Msg("running collision census")

	rng := rand.New(rand.NewPCG(r.rngSeed, 0))
	message := bitseq.Random(rng, cipher.KeyBitsPerSeedByte*collisionSeedLen)

	group := errgroup.Group{}
	group.SetLimit(r.parallel)

	results := make(chan collisionResult, trials)
	done := make(chan struct{})

	bySeed := make(map[string][]string, trials)

	go func() {
		defer close(done)

		for result := range results {
			bySeed[result.ciphertext] = append(bySeed[result.ciphertext], result.seed)
		}
	}()

	for i := 0; i < trials; i++ {
		group.Go(func() error {
			seed := fmt.Sprintf("s%07d", i)

			ct, err := cipher.Encrypt(cipher.ExpandKey(seed), message)
			if err != nil {
				return fmt.Errorf("encrypting under seed %q: %w", seed, err)
			}

			results <- collisionResult{seed: seed, ciphertext: ct.String()}

			return nil
		})
	}

	err := group.Wait()

	close(results)
	<-done

	if err != nil {
		return CollisionStats{}, fmt.Errorf("collision census: %w", err)
	}

	stats := CollisionStats{
		Trials:      trials,
		MessageBits: len(message),
		Unique:      len(bySeed),
	}

	for ct, seeds := range bySeed {
		if len(seeds) > 1 {
			sort.Strings(seeds)
			stats.Equivalent += len(seeds) - 1
			stats.Groups = append(stats.Groups, CollisionGroup{Ciphertext: ct, Seeds: seeds})
		}
	}

	sort.Slice(stats.Groups, func(i, j int) bool {
		return stats.Groups[i].Seeds[0] < stats.Groups[j].Seeds[0]
	})

	return stats, nil
}

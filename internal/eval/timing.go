package eval

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/mvbarbosa/gosc/internal/cipher"
	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

// DefaultSeedSizes are the seed lengths the timing sweep covers when the
// caller does not choose its own.
var DefaultSeedSizes = []int{10, 50, 100, 200, 500}

// TimingRow holds mean per-operation durations for one seed size.
type TimingRow struct {
	SeedLen int
	KeyBits int
	Expand  time.Duration
	Encrypt time.Duration
	Decrypt time.Duration
}

// Total is the combined mean duration of one expand+encrypt+decrypt cycle.
func (t TimingRow) Total() time.Duration {
	return t.Expand + t.Encrypt + t.Decrypt
}

// Timing measures mean wall-clock cost of the three operations across seed
// sizes, reps repetitions each. Rows run sequentially so measurements do
// not contend with each other.
func (r *Runner) Timing(seedSizes []int, reps int) ([]TimingRow, error) {
	if len(seedSizes) == 0 {
		seedSizes = DefaultSeedSizes
	}

	if reps < 1 {
		reps = 1
	}

	rows := make([]TimingRow, 0, len(seedSizes))

	for _, size := range seedSizes {
		r.log.Debug().Int("seed_len", size).Int("reps", reps).Msg("timing sweep")

		seed := strings.Repeat("a", size)
		key := cipher.ExpandKey(seed)

		rng := rand.New(rand.NewPCG(r.rngSeed, uint64(size)))
		message := bitseq.Random(rng, len(key))

		start := time.Now()
		for i := 0; i < reps; i++ {
			_ = cipher.ExpandKey(seed)
		}
		expand := time.Since(start) / time.Duration(reps)

		start = time.Now()
		for i := 0; i < reps; i++ {
			if _, err := cipher.Encrypt(key, message); err != nil {
				return nil, fmt.Errorf("timing encrypt (seed length %d): %w", size, err)
			}
		}
		encrypt := time.Since(start) / time.Duration(reps)

		ct, err := cipher.Encrypt(key, message)
		if err != nil {
			return nil, fmt.Errorf("timing encrypt (seed length %d): %w", size, err)
		}

		start = time.Now()
		for i := 0; i < reps; i++ {
			if _, err := cipher.Decrypt(key, ct); err != nil {
				return nil, fmt.Errorf("timing decrypt (seed length %d): %w", size, err)
			}
		}
		decrypt := time.Since(start) / time.Duration(reps)

		rows = append(rows, TimingRow{
			SeedLen: size,
			KeyBits: len(key),
			Expand:  expand,
			Encrypt: encrypt,
			Decrypt: decrypt,
		})
	}

	return rows, nil
}

package eval

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/mvbarbosa/gosc/internal/baseline"
	"github.com/mvbarbosa/gosc/internal/cipher"
	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

// AvalancheStats summarizes a bit-flip propagation sweep.
type AvalancheStats struct {
	Seed   string
	Bits   int // block length in bits
	Trials int
	Mean   float64
	Min    int
	Max    int

	// Baseline fields are populated when the sweep also ran the AES-SIV
	// reference cipher on the same flips.
	HasBaseline  bool
	BaselineMean float64 // mean changed bits in the baseline ciphertext
	BaselineBits int     // baseline ciphertext length in bits
}

// MeanPercent is the mean changed-bit count as a percentage of the block.
func (s AvalancheStats) MeanPercent() float64 {
	if s.Bits == 0 {
		return 0
	}

	return s.Mean / float64(s.Bits) * 100
}

// BaselinePercent is the baseline mean as a percentage of its ciphertext.
func (s AvalancheStats) BaselinePercent() float64 {
	if s.BaselineBits == 0 {
		return 0
	}

	return s.BaselineMean / float64(s.BaselineBits) * 100
}

// Diffusion flips every message bit in turn and measures how many
// ciphertext bits change per flip. With withBaseline set, the same flips
// run through the AES-SIV reference cipher for comparison.
func (r *Runner) Diffusion(seed string, withBaseline bool) (AvalancheStats, error) {
	key := cipher.ExpandKey(seed)
	n := len(key)

	stats := AvalancheStats{Seed: seed, Bits: n, Trials: n}
	if n == 0 {
		return stats, nil
	}

	r.log.Debug().Str("seed", seed).Int("bits", n).Msg("running diffusion sweep")

	rng := rand.New(rand.NewPCG(r.rngSeed, uint64(n)))
	message := bitseq.Random(rng, n)

	base, err := cipher.Encrypt(key, message)
	if err != nil {
		return stats, fmt.Errorf("diffusion sweep: %w", err)
	}

	changed := make([]int, n)

	group := errgroup.Group{}
	group.SetLimit(r.parallel)

	for pos := 0; pos < n; pos++ {
		group.Go(func() error {
			flipped := message.Clone()
			flipped[pos] ^= 1

			ct, err := cipher.Encrypt(key, flipped)
			if err != nil {
				return fmt.Errorf("encrypting flip at %d: %w", pos, err)
			}

			changed[pos] = bitseq.Distance(base, ct)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return stats, fmt.Errorf("diffusion sweep: %w", err)
	}

	stats.Mean, stats.Min, stats.Max = aggregate(changed)

	if withBaseline {
		if err := r.baselineDiffusion(seed, message, &stats); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// baselineDiffusion applies the same single-bit flips to the packed message
// bytes and measures avalanche in the AES-SIV reference ciphertext.
func (r *Runner) baselineDiffusion(seed string, message bitseq.Bits, stats *AvalancheStats) error {
	primitive, err := baseline.New(seed)
	if err != nil {
		return fmt.Errorf("baseline diffusion: %w", err)
	}

	packed := message.Bytes()

	base, err := primitive.EncryptDeterministically(packed, nil)
	if err != nil {
		return fmt.Errorf("baseline diffusion: %w", err)
	}

	baseBits := bitseq.FromBytes(base)

	changed := make([]int, len(message))

	for pos := range message {
		flipped := make([]byte, len(packed))
		copy(flipped, packed)
		flipped[pos/8] ^= 1 << (7 - pos%8)

		ct, err := primitive.EncryptDeterministically(flipped, nil)
		if err != nil {
			return fmt.Errorf("baseline diffusion flip at %d: %w", pos, err)
		}

		changed[pos] = bitseq.Distance(baseBits, bitseq.FromBytes(ct))
	}

	mean, _, _ := aggregate(changed)

	stats.HasBaseline = true
	stats.BaselineMean = mean
	stats.BaselineBits = 8 * len(base)

	return nil
}

// Confusion perturbs every seed character in turn (printable-ASCII
// rotation), rederives the key and measures how many ciphertext bits change
// for a fixed message.
func (r *Runner) Confusion(seed string) (AvalancheStats, error) {
	key := cipher.ExpandKey(seed)
	n := len(key)

	stats := AvalancheStats{Seed: seed, Bits: n, Trials: len(seed)}
	if n == 0 {
		return stats, nil
	}

	r.log.Debug().Str("seed", seed).Int("bits", n).Msg("running confusion sweep")

	rng := rand.New(rand.NewPCG(r.rngSeed, uint64(n)+1))
	message := bitseq.Random(rng, n)

	base, err := cipher.Encrypt(key, message)
	if err != nil {
		return stats, fmt.Errorf("confusion sweep: %w", err)
	}

	changed := make([]int, len(seed))

	group := errgroup.Group{}
	group.SetLimit(r.parallel)

	for pos := 0; pos < len(seed); pos++ {
		group.Go(func() error {
			perturbed := []byte(seed)
			perturbed[pos] = byte((int(perturbed[pos])+1-32)%95 + 32)

			ct, err := cipher.Encrypt(cipher.ExpandKey(string(perturbed)), message)
			if err != nil {
				return fmt.Errorf("encrypting perturbed seed at %d: %w", pos, err)
			}

			changed[pos] = bitseq.Distance(base, ct)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return stats, fmt.Errorf("confusion sweep: %w", err)
	}

	stats.Mean, stats.Min, stats.Max = aggregate(changed)

	return stats, nil
}

func aggregate(values []int) (mean float64, minimum, maximum int) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	total := 0
	minimum, maximum = values[0], values[0]

	for _, v := range values {
		total += v

		if v < minimum {
			minimum = v
		}

		if v > maximum {
			maximum = v
		}
	}

	return float64(total) / float64(len(values)), minimum, maximum
}

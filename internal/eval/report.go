package eval

import (
	"fmt"
	"io"
)

// Reporter renders sweep results as console tables.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) section(title string) {
	fmt.Fprintf(r.w, "%s\n", title)
	fmt.Fprintf(r.w, "----------------------------------------------------------------------\n")
}

// RoundTrip prints the outcome of a round-trip sweep.
func (r *Reporter) RoundTrip(stats RoundTripStats) {
	r.section("ROUND-TRIP VERIFICATION")

	fmt.Fprintf(r.w, "  trials: %d  passed: %d  failed: %d\n", stats.Trials, stats.Passed, len(stats.Failed))

	for _, seed := range stats.Failed {
		fmt.Fprintf(r.w, "  round trip failed for seed %q\n", seed)
	}

	fmt.Fprintln(r.w)
}

// Timing prints one row per seed size with mean per-operation durations.
func (r *Reporter) Timing(rows []TimingRow, reps int) {
	r.section(fmt.Sprintf("EXECUTION TIME (mean of %d runs)", reps))

	fmt.Fprintf(r.w, "%10s | %12s | %12s | %12s | %12s | %12s\n",
		"seed len", "key bits", "expand", "encrypt", "decrypt", "total")

	for _, row := range rows {
		fmt.Fprintf(r.w, "%10d | %12d | %12s | %12s | %12s | %12s\n",
			row.SeedLen, row.KeyBits, row.Expand, row.Encrypt, row.Decrypt, row.Total())
	}

	fmt.Fprintln(r.w)
}

// Collisions prints the ciphertext-collision census.
func (r *Reporter) Collisions(stats CollisionStats) {
	r.section("EQUIVALENT KEYS")

	fmt.Fprintf(r.w, "  seeds tested: %d (message of %d bits)\n", stats.Trials, stats.MessageBits)
	fmt.Fprintf(r.w, "  unique ciphertexts: %d\n", stats.Unique)

	percent := 0.0
	if stats.Trials > 0 {
		percent = float64(stats.Equivalent) / float64(stats.Trials) * 100
	}

	fmt.Fprintf(r.w, "  equivalent keys: %d (%.3f%%)\n", stats.Equivalent, percent)

	const maxGroupsShown = 3

	for i, group := range stats.Groups {
		if i == maxGroupsShown {
			fmt.Fprintf(r.w, "  ... %d more groups\n", len(stats.Groups)-maxGroupsShown)

			break
		}

		fmt.Fprintf(r.w, "  collision group: %v\n", group.Seeds)
	}

	fmt.Fprintln(r.w)
}

// Avalanche prints a bit-flip propagation summary under the given title.
func (r *Reporter) Avalanche(title string, stats AvalancheStats) {
	r.section(title)

	fmt.Fprintf(r.w, "  seed: %q (%d key bits, %d trials)\n", stats.Seed, stats.Bits, stats.Trials)
	fmt.Fprintf(r.w, "  mean bits changed: %.2f of %d (%.1f%%)\n", stats.Mean, stats.Bits, stats.MeanPercent())
	fmt.Fprintf(r.w, "  min: %d  max: %d  ideal: ~%d (50%%)\n", stats.Min, stats.Max, stats.Bits/2)
	fmt.Fprintf(r.w, "  verdict: %s\n", verdict(stats.MeanPercent()))

	if stats.HasBaseline {
		fmt.Fprintf(r.w, "  aes-siv baseline: %.2f of %d bits (%.1f%%)\n",
			stats.BaselineMean, stats.BaselineBits, stats.BaselinePercent())
	}

	fmt.Fprintln(r.w)
}

func verdict(percent float64) string {
	switch {
	case percent >= 45:
		return "excellent (>=45%)"
	case percent >= 35:
		return "good (>=35%)"
	case percent >= 25:
		return "acceptable (>=25%)"
	default:
		return "low (<25%)"
	}
}

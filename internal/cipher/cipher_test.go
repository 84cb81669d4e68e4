package cipher_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/mvbarbosa/gosc/internal/cipher"
	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

func mustParse(t *testing.T, s string) bitseq.Bits {
	t.Helper()

	bits, err := bitseq.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}

	return bits
}

// Reference vectors computed with the reference implementation.
func TestEncryptVectors(t *testing.T) {
	tests := []struct {
		seed    string
		message string
		want    string
	}{
		{"ab", "10110010", "10100101"},
		// n = 12 is divisible by 3, so the permutation multiplier is 5.
		{"abc", "110100101110", "001010011001"},
		{"seed", "0000000000000000", "1111110001111000"},
	}

	for _, tt := range tests {
		key := cipher.ExpandKey(tt.seed)

		got, err := cipher.Encrypt(key, mustParse(t, tt.message))
		if err != nil {
			t.Fatalf("Encrypt(%q, %s): %v", tt.seed, tt.message, err)
		}

		if got.String() != tt.want {
			t.Errorf("Encrypt(%q, %s) = %s, want %s", tt.seed, tt.message, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 21))

	// Seed lengths that are multiples of 15 are excluded: their block
	// length is divisible by 15 and the round permutation is not
	// bijective there. See TestPermutationBijectivity.
	for _, seedLen := range []int{1, 2, 3, 5, 8, 10, 16, 25, 33, 64, 100} {
		seed := strings.Repeat("s", seedLen)
		key := cipher.ExpandKey(seed)
		message := bitseq.Random(rng, len(key))

		ct, err := cipher.Encrypt(key, message)
		if err != nil {
			t.Fatalf("Encrypt(seedLen=%d): %v", seedLen, err)
		}

		if len(ct) != len(message) {
			t.Fatalf("ciphertext length = %d, want %d", len(ct), len(message))
		}

		pt, err := cipher.Decrypt(key, ct)
		if err != nil {
			t.Fatalf("Decrypt(seedLen=%d): %v", seedLen, err)
		}

		if !pt.Equal(message) {
			t.Errorf("round trip failed for seed length %d", seedLen)
		}
	}
}

// Encrypt and Decrypt accept any key of matching length, not only expanded
// seeds, so odd block lengths are reachable too.
func TestRoundTripArbitraryKey(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))

	for _, n := range []int{1, 2, 7, 33, 101} {
		key := bitseq.Random(rng, n)
		message := bitseq.Random(rng, n)

		ct, err := cipher.Encrypt(key, message)
		if err != nil {
			t.Fatalf("Encrypt(n=%d): %v", n, err)
		}

		pt, err := cipher.Decrypt(key, ct)
		if err != nil {
			t.Fatalf("Decrypt(n=%d): %v", n, err)
		}

		if !pt.Equal(message) {
			t.Errorf("round trip failed for n=%d", n)
		}
	}
}

func TestInputsNotMutated(t *testing.T) {
	key := cipher.ExpandKey("immutable")
	message := mustParse(t, strings.Repeat("10", len(key)/2))

	keyCopy := key.Clone()
	messageCopy := message.Clone()

	if _, err := cipher.Encrypt(key, message); err != nil {
		t.Fatal(err)
	}

	if !key.Equal(keyCopy) || !message.Equal(messageCopy) {
		t.Fatal("Encrypt mutated its inputs")
	}
}

func TestLengthMismatch(t *testing.T) {
	key := cipher.ExpandKey("ab")
	short := mustParse(t, "1010")

	if _, err := cipher.Encrypt(key, short); !errors.Is(err, cipher.ErrLengthMismatch) {
		t.Errorf("Encrypt mismatch error = %v, want ErrLengthMismatch", err)
	}

	if _, err := cipher.Decrypt(key, short); !errors.Is(err, cipher.ErrLengthMismatch) {
		t.Errorf("Decrypt mismatch error = %v, want ErrLengthMismatch", err)
	}
}

func TestZeroLength(t *testing.T) {
	key := cipher.ExpandKey("")

	ct, err := cipher.Encrypt(key, bitseq.Bits{})
	if err != nil {
		t.Fatalf("Encrypt(empty): %v", err)
	}

	if len(ct) != 0 {
		t.Fatalf("Encrypt(empty) length = %d, want 0", len(ct))
	}

	pt, err := cipher.Decrypt(key, ct)
	if err != nil {
		t.Fatalf("Decrypt(empty): %v", err)
	}

	if len(pt) != 0 {
		t.Fatalf("Decrypt(empty) length = %d, want 0", len(pt))
	}
}

// The round permutation i -> (i*mult + r*7) mod n must visit every position
// exactly once for the cipher to be invertible. That holds exactly when
// gcd(mult, n) == 1, which the multiplier rule fails to guarantee for n
// divisible by 15. The rule is kept for compatibility, so the collision is
// pinned here rather than fixed.
func TestPermutationBijectivity(t *testing.T) {
	gcd := func(a, b int) int {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}

	for _, n := range []int{4, 5, 8, 9, 12, 20, 25, 32, 33, 40, 45, 60, 64, 90, 120, 128} {
		mult := cipher.Multiplier(n)
		wantBijective := gcd(mult, n) == 1

		if wantBijective != (n%15 != 0) {
			t.Fatalf("n=%d: multiplier rule expectation out of sync", n)
		}

		for r := 0; r < cipher.Rounds; r++ {
			seen := make(map[int]bool, n)
			for i := 0; i < n; i++ {
				seen[(i*mult+r*7)%n] = true
			}

			if bijective := len(seen) == n; bijective != wantBijective {
				t.Errorf("n=%d r=%d: image size %d of %d, want bijective=%v", n, r, len(seen), n, wantBijective)
			}
		}
	}
}

// For n=60 (seed length 15) the multiplier is 5 and the round image
// collapses to n/5 positions.
func TestPermutationCollapseAtSixty(t *testing.T) {
	const n = 60

	mult := cipher.Multiplier(n)
	if mult != 5 {
		t.Fatalf("Multiplier(60) = %d, want 5", mult)
	}

	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		seen[(i*mult)%n] = true
	}

	if len(seen) != 12 {
		t.Fatalf("round 0 image size = %d, want 12", len(seen))
	}
}

// With n=8 the multiplier is 3 and the round 0 mapping is a fixed,
// hash-independent bijection. Applying the forward scatter and then the
// inverse gather reconstructs the identity.
func TestPermutationMappingN8(t *testing.T) {
	want := []int{0, 3, 6, 1, 4, 7, 2, 5}

	const n = 8

	mult := cipher.Multiplier(n)
	for i := 0; i < n; i++ {
		if got := (i * mult) % n; got != want[i] {
			t.Fatalf("position %d maps to %d, want %d", i, got, want[i])
		}
	}

	src := bitseq.Bits{0, 1, 0, 1, 1, 0, 0, 1}
	scattered := make(bitseq.Bits, n)
	for i := 0; i < n; i++ {
		scattered[(i*mult)%n] = src[i]
	}

	gathered := make(bitseq.Bits, n)
	for i := 0; i < n; i++ {
		gathered[i] = scattered[(i*mult)%n]
	}

	if !gathered.Equal(src) {
		t.Fatalf("scatter+gather = %s, want %s", gathered, src)
	}
}

// The round structure is affine in the message: the key XOR contributes a
// constant and the permutations only move positions. A single flipped
// message bit therefore lands as exactly one flipped ciphertext bit. This
// pins the real (weak) diffusion of the scheme instead of asserting the
// half-block avalanche a nonlinear cipher would show.
func TestDiffusionSingleBit(t *testing.T) {
	key := cipher.ExpandKey(strings.Repeat("avalanche!", 4)) // 160 bits
	n := len(key)

	rng := rand.New(rand.NewPCG(11, 13))
	message := bitseq.Random(rng, n)

	base, err := cipher.Encrypt(key, message)
	if err != nil {
		t.Fatal(err)
	}

	const trials = 100

	for trial := 0; trial < trials; trial++ {
		flipped := message.Clone()
		flipped[rng.IntN(n)] ^= 1

		ct, err := cipher.Encrypt(key, flipped)
		if err != nil {
			t.Fatal(err)
		}

		if d := bitseq.Distance(base, ct); d != 1 {
			t.Fatalf("trial %d: %d ciphertext bits changed, want exactly 1", trial, d)
		}
	}
}

// Key sensitivity does avalanche: changing one seed character rederives the
// whole key through SHA-256 and flips roughly half the ciphertext bits.
// Statistical assertion with a broad band, not an exact value.
func TestKeySensitivityAvalanche(t *testing.T) {
	const seed = "avalanche!avalanche!avalanche!avalanche!"

	key := cipher.ExpandKey(seed)
	n := len(key)

	rng := rand.New(rand.NewPCG(17, 19))
	message := bitseq.Random(rng, n)

	base, err := cipher.Encrypt(key, message)
	if err != nil {
		t.Fatal(err)
	}

	total := 0

	for pos := 0; pos < len(seed); pos++ {
		perturbed := []byte(seed)
		perturbed[pos] = byte((int(perturbed[pos])+1-32)%95 + 32)

		ct, err := cipher.Encrypt(cipher.ExpandKey(string(perturbed)), message)
		if err != nil {
			t.Fatal(err)
		}

		total += bitseq.Distance(base, ct)
	}

	mean := float64(total) / float64(len(seed))
	ratio := mean / float64(n)

	if ratio < 0.25 || ratio > 0.75 {
		t.Fatalf("key sensitivity ratio = %.3f (mean %.1f of %d bits), want within [0.25, 0.75]", ratio, mean, n)
	}
}

package cipher

import (
	"fmt"

	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

const (
	// Rounds is the number of XOR+permutation passes per call.
	Rounds = 6

	// rotationStep offsets the key window by this many positions per round.
	rotationStep = 11

	// permutationStep offsets the position permutation per round.
	permutationStep = 7
)

// Multiplier returns the permutation multiplier used for block length n:
// 3 unless n is divisible by 3, in which case 5.
//
// The round permutation i -> (i*mult + r*7) mod n is bijective exactly when
// gcd(mult, n) == 1. For n divisible by 15 the selected multiplier is 5 and
// gcd(5, n) > 1, so the permutation collides and those block lengths are not
// invertible. The selection rule is kept as-is for compatibility with
// reference outputs; see TestPermutationBijectivity.
func Multiplier(n int) int {
	if n%3 != 0 {
		return 3
	}

	return 5
}

// Encrypt transforms message into a ciphertext of identical length under
// key. It applies six rounds, each a keyed XOR with a rotating key window
// followed by a linear position permutation. Inputs are not mutated.
//
// Returns ErrLengthMismatch when key and message lengths differ.
func Encrypt(key, message bitseq.Bits) (bitseq.Bits, error) {
	if len(key) != len(message) {
		return nil, fmt.Errorf("encrypt: %w: key=%d message=%d", ErrLengthMismatch, len(key), len(message))
	}

	n := len(message)
	out := message.Clone()

	if n == 0 {
		return out, nil
	}

	mult := Multiplier(n)
	snapshot := bitseq.New(n)

	for r := 0; r < Rounds; r++ {
		shift := (r * rotationStep) % n
		for i := 0; i < n; i++ {
			out[i] ^= key[(i+shift)%n]
		}

		copy(snapshot, out)
		for i := 0; i < n; i++ {
			out[(i*mult+r*permutationStep)%n] = snapshot[i]
		}
	}

	return out, nil
}

// Decrypt recovers the message from a ciphertext produced by Encrypt under
// the same key. Rounds run in reverse order and each round is undone in
// reverse sub-step order: the permutation is gathered back first, then the
// self-inverse XOR is reapplied. Inputs are not mutated.
//
// Returns ErrLengthMismatch when key and ciphertext lengths differ.
func Decrypt(key, ciphertext bitseq.Bits) (bitseq.Bits, error) {
	if len(key) != len(ciphertext) {
		return nil, fmt.Errorf("decrypt: %w: key=%d ciphertext=%d", ErrLengthMismatch, len(key), len(ciphertext))
	}

	n := len(ciphertext)
	out := ciphertext.Clone()

	if n == 0 {
		return out, nil
	}

	mult := Multiplier(n)
	snapshot := bitseq.New(n)

	for r := Rounds - 1; r >= 0; r-- {
		copy(snapshot, out)
		for i := 0; i < n; i++ {
			out[i] = snapshot[(i*mult+r*permutationStep)%n]
		}

		shift := (r * rotationStep) % n
		for i := 0; i < n; i++ {
			out[i] ^= key[(i+shift)%n]
		}
	}

	return out, nil
}

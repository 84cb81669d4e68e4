// Package bitseq provides an ordered bit sequence with parsing, formatting
// and byte packing helpers. Bits are stored one per byte with values 0 or 1,
// which keeps indexing and mutation trivial for bit-granular ciphers.
package bitseq

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Bits is an ordered sequence of bits. Each element holds 0 or 1.
type Bits []byte

// New returns a zeroed bit sequence of length n.
func New(n int) Bits {
	return make(Bits, n)
}

// Parse converts a string of '0' and '1' characters into a bit sequence.
func Parse(s string) (Bits, error) {
	bits := make(Bits, len(s))

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits[i] = 0
		case '1':
			bits[i] = 1
		default:
			return nil, fmt.Errorf("parsing bit sequence: invalid character %q at position %d", s[i], i)
		}
	}

	return bits, nil
}

// FromBytes unpacks data into a bit sequence of length 8*len(data),
// most significant bit of each byte first.
func FromBytes(data []byte) Bits {
	bits := make(Bits, 0, 8*len(data))

	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}

	return bits
}

// Random returns a bit sequence of length n drawn from rng.
func Random(rng *rand.Rand, n int) Bits {
	bits := make(Bits, n)

	for i := range bits {
		bits[i] = byte(rng.IntN(2))
	}

	return bits
}

// String renders the sequence as a '0'/'1' string.
func (b Bits) String() string {
	var sb strings.Builder

	sb.Grow(len(b))

	for _, bit := range b {
		sb.WriteByte('0' + bit)
	}

	return sb.String()
}

// Bytes packs the sequence into bytes, most significant bit first.
// If the length is not a multiple of 8, the final byte is zero padded
// in its low bits.
func (b Bits) Bytes() []byte {
	out := make([]byte, (len(b)+7)/8)

	for i, bit := range b {
		if bit != 0 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}

	return out
}

// Clone returns an independent copy of the sequence.
func (b Bits) Clone() Bits {
	out := make(Bits, len(b))
	copy(out, b)

	return out
}

// Equal reports whether two sequences have identical length and bits.
func (b Bits) Equal(other Bits) bool {
	if len(b) != len(other) {
		return false
	}

	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}

	return true
}

// Distance returns the Hamming distance between a and b, counted over
// the shorter of the two sequences.
func Distance(a, b Bits) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	count := 0

	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			count++
		}
	}

	return count
}

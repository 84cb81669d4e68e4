package cipher

import (
	"crypto/sha256"
	"strconv"

	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

// KeyBitsPerSeedByte is the expansion factor of ExpandKey: the key carries
// four bits per byte of the UTF-8 encoded seed.
const KeyBitsPerSeedByte = 4

// ExpandKey deterministically expands seed into a key of exactly
// 4*len(seed) bits, where len is the UTF-8 byte length of the seed.
//
// The key stream is SHA-256 in counter mode: block 0 is the digest of the
// seed itself, block k for k > 0 is the digest of seed followed by the
// decimal representation of k. Digest bytes are consumed most significant
// bit first and the stream is truncated to the target length. An empty seed
// yields an empty key.
func ExpandKey(seed string) bitseq.Bits {
	target := KeyBitsPerSeedByte * len(seed)
	key := make(bitseq.Bits, 0, target)

	digest := sha256.Sum256([]byte(seed))

	for counter := 0; len(key) < target; counter++ {
		if counter > 0 {
			digest = sha256.Sum256([]byte(seed + strconv.Itoa(counter)))
		}

		for _, b := range digest {
			for i := 7; i >= 0 && len(key) < target; i-- {
				key = append(key, (b>>i)&1)
			}

			if len(key) == target {
				break
			}
		}
	}

	return key
}

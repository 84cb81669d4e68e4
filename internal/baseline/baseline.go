// Package baseline provides a deterministic AEAD keyed from a seed, used by
// the evaluation harness as a reference point next to the round cipher.
// Same seed and same plaintext always produce the same ciphertext, matching
// the determinism of the seed-derived scheme under comparison.
package baseline

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/tink-crypto/tink-go/v2/daead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	aes_sivpb "github.com/tink-crypto/tink-go/v2/proto/aes_siv_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"golang.org/x/crypto/hkdf"

	"google.golang.org/protobuf/proto"
)

// aesSivKeySize is the raw key size required by AES-SIV.
const aesSivKeySize = 64

// New builds an AES-SIV deterministic AEAD whose key is derived from seed.
func New(seed string) (tink.DeterministicAEAD, error) {
	key, err := deriveKey(seed)
	if err != nil {
		return nil, err
	}

	handle, err := newKeyHandle(key)
	if err != nil {
		return nil, err
	}

	primitive, err := daead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("creating DeterministicAEAD: %w", err)
	}

	return primitive, nil
}

// deriveKey stretches the seed into the 64 raw key bytes AES-SIV needs,
// through HKDF-SHA256.
func deriveKey(seed string) ([]byte, error) {
	hkdfReader := hkdf.New(sha256.New, []byte(seed), nil, []byte("gosc/baseline"))
	key := make([]byte, aesSivKeySize)

	if _, err := io.ReadFull(hkdfReader, key); err != nil {
		return nil, fmt.Errorf("deriving baseline key: %w", err)
	}

	return key, nil
}

// newKeyHandle creates a Tink keyset handle for AES-SIV from raw key bytes.
func newKeyHandle(key []byte) (*keyset.Handle, error) {
	aesSivKey := &aes_sivpb.AesSivKey{
		Version:  0,
		KeyValue: key,
	}

	serializedKey, err := proto.Marshal(aesSivKey)
	if err != nil {
		return nil, fmt.Errorf("serializing AesSivKey: %w", err)
	}

	keyData := &tinkpb.KeyData{
		TypeUrl:         "type.googleapis.com/google.crypto.tink.AesSivKey",
		Value:           serializedKey,
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData:          keyData,
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	handle, err := insecurecleartextkeyset.Read(
		keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	return handle, nil
}

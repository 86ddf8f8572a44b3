package hash

import (
	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

	"github.com/outofforest/photon"
	"github.com/outofforest/robinhood/types"
)

const (
	// NameXXHash is the name of xxhash-based function.
	NameXXHash = "xxhash"

	// NameBlake3 is the name of blake3-based function.
	NameBlake3 = "blake3"
)

// Func computes hash of the key using the seed.
type Func func(key types.Key, seed types.Seed) types.Hash

// XXHash hashes the key using xxhash. Seed is prepended to the key bytes.
func XXHash(key types.Key, seed types.Seed) types.Hash {
	var b [2 * types.UInt64Length]byte
	copy(b[:], photon.NewFromValue(&seed).B)
	copy(b[types.UInt64Length:], photon.NewFromValue(&key).B)
	return types.Hash(xxhash.Sum64(b[:]))
}

// Blake3 hashes the key using blake3. Seed is prepended to the key bytes and first 8 bytes of the digest are used.
func Blake3(key types.Key, seed types.Seed) types.Hash {
	var b [2 * types.UInt64Length]byte
	copy(b[:], photon.NewFromValue(&seed).B)
	copy(b[types.UInt64Length:], photon.NewFromValue(&key).B)
	sum := blake3.Sum256(b[:])
	return *photon.FromBytes[types.Hash](sum[:types.UInt64Length])
}

// ByName returns hash function registered under the name.
func ByName(name string) (Func, error) {
	switch name {
	case NameXXHash:
		return XXHash, nil
	case NameBlake3:
		return Blake3, nil
	default:
		return nil, errors.Errorf("unknown hash function %q", name)
	}
}

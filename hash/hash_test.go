package hash

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	blake3luke "lukechampine.com/blake3"

	"github.com/outofforest/robinhood/types"
)

func reference(key types.Key, seed types.Seed) []byte {
	b := make([]byte, 2*types.UInt64Length)
	binary.LittleEndian.PutUint64(b, uint64(seed))
	binary.LittleEndian.PutUint64(b[types.UInt64Length:], uint64(key))
	return b
}

func TestXXHashMatchesReference(t *testing.T) {
	requireT := require.New(t)

	for _, key := range []types.Key{0, 1, 12, 900, 1 << 40, ^types.Key(0)} {
		for _, seed := range []types.Seed{0, 1, 0xdeadbeef, ^types.Seed(0)} {
			requireT.Equal(types.Hash(xxhash.Sum64(reference(key, seed))), XXHash(key, seed))
		}
	}
}

func TestBlake3MatchesReference(t *testing.T) {
	requireT := require.New(t)

	for _, key := range []types.Key{0, 1, 12, 900, 1 << 40, ^types.Key(0)} {
		for _, seed := range []types.Seed{0, 1, 0xdeadbeef, ^types.Seed(0)} {
			sum := blake3luke.Sum256(reference(key, seed))
			requireT.Equal(types.Hash(binary.LittleEndian.Uint64(sum[:])), Blake3(key, seed))
		}
	}
}

func TestSeedChangesHash(t *testing.T) {
	for _, f := range []Func{XXHash, Blake3} {
		differences := 0
		for _, key := range lo.Range(100) {
			if f(types.Key(key), 1) != f(types.Key(key), 2) {
				differences++
			}
		}
		assert.Equal(t, 100, differences)
	}
}

func TestDeterministic(t *testing.T) {
	for _, f := range []Func{XXHash, Blake3} {
		for _, key := range lo.Range(100) {
			assert.Equal(t, f(types.Key(key), 7), f(types.Key(key), 7))
		}
	}
}

func TestByName(t *testing.T) {
	requireT := require.New(t)

	f, err := ByName(NameXXHash)
	requireT.NoError(err)
	requireT.Equal(XXHash(5, 5), f(5, 5))

	f, err = ByName(NameBlake3)
	requireT.NoError(err)
	requireT.Equal(Blake3(5, 5), f(5, 5))

	_, err = ByName("md5")
	requireT.Error(err)
}

func BenchmarkXXHash(b *testing.B) {
	for i := range b.N {
		XXHash(types.Key(i), 1)
	}
}

func BenchmarkBlake3(b *testing.B) {
	for i := range b.N {
		Blake3(types.Key(i), 1)
	}
}

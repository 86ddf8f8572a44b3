package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	const size = 1000

	requireT := require.New(t)

	p, deallocF, err := Allocate(size, false)
	requireT.NoError(err)
	t.Cleanup(deallocF)

	b := unsafe.Slice((*byte)(p), size)
	for i := range size {
		requireT.Zero(b[i])
		b[i] = byte(i)
	}
}

func TestAllocateZero(t *testing.T) {
	_, _, err := Allocate(0, false)
	require.Error(t, err)
}

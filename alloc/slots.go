package alloc

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/outofforest/photon"
	"github.com/outofforest/robinhood/types"
)

// Allocator allocates slot arrays. Returned slots must be in StateEmpty.
// Returned function releases the array.
type Allocator interface {
	Allocate(capacity uint64) ([]types.Slot, func(), error)
}

// NewHeapAllocator creates allocator keeping slots on go heap.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

// HeapAllocator allocates slots on go heap.
type HeapAllocator struct{}

// Allocate allocates slot array.
func (a *HeapAllocator) Allocate(capacity uint64) ([]types.Slot, func(), error) {
	if capacity == 0 {
		return nil, nil, errors.New("capacity must be greater than zero")
	}
	return make([]types.Slot, capacity), func() {}, nil
}

// NewMmapAllocator creates allocator mapping slot arrays outside of go heap.
func NewMmapAllocator(useHugePages bool) *MmapAllocator {
	return &MmapAllocator{
		useHugePages: useHugePages,
	}
}

// MmapAllocator allocates slots in anonymous memory mappings.
type MmapAllocator struct {
	useHugePages bool
}

// Allocate allocates slot array.
func (a *MmapAllocator) Allocate(capacity uint64) ([]types.Slot, func(), error) {
	if capacity == 0 {
		return nil, nil, errors.New("capacity must be greater than zero")
	}

	p, deallocF, err := Allocate(capacity*uint64(unsafe.Sizeof(types.Slot{})), a.useHugePages)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "allocating %d slots failed", capacity)
	}
	return photon.SliceFromPointer[types.Slot](p, int(capacity)), deallocF, nil
}

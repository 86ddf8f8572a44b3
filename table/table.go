package table

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/robinhood/alloc"
	"github.com/outofforest/robinhood/hash"
	"github.com/outofforest/robinhood/seed"
	"github.com/outofforest/robinhood/types"
)

// ErrCapacityExhausted is raised when entry can't be placed within one full scan of the slot array.
// It never happens as long as table grows before reaching load factor 0.5.
var ErrCapacityExhausted = errors.New("table capacity exhausted")

// Config stores table configuration.
type Config struct {
	Hasher    hash.Func
	Seed      seed.Source
	Allocator alloc.Allocator
	Logger    *zap.Logger
}

// New creates new table.
func New(config Config) (*Table, error) {
	if config.Hasher == nil {
		config.Hasher = hash.XXHash
	}
	if config.Seed == nil {
		config.Seed = seed.NewRandom()
	}
	if config.Allocator == nil {
		config.Allocator = alloc.NewHeapAllocator()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	slots, deallocF, err := config.Allocator.Allocate(types.InitialCapacity)
	if err != nil {
		return nil, errors.Wrap(err, "allocating slot array failed")
	}

	return &Table{
		config:   config,
		slots:    slots,
		deallocF: deallocF,
		capacity: types.InitialCapacity,
		seed:     config.Seed.Seed(),
	}, nil
}

// Table maps keys to values using open addressing with Robin Hood displacement.
// It is not safe for concurrent use.
type Table struct {
	config   Config
	slots    []types.Slot
	deallocF func()
	capacity uint64
	count    uint64
	visited  uint64
	seed     types.Seed
}

// Count returns the number of stored entries.
func (t *Table) Count() uint64 {
	return t.count
}

// Capacity returns the number of slots.
func (t *Table) Capacity() uint64 {
	return t.capacity
}

// Visited returns the number of slots which have been taken out of the empty state.
// Lookups never scan more slots than that.
func (t *Table) Visited() uint64 {
	return t.visited
}

// Seed returns the seed mixed into the key hash.
func (t *Table) Seed() types.Seed {
	return t.seed
}

// Contains returns true if key exists in the table.
func (t *Table) Contains(key types.Key) bool {
	_, exists := t.find(key)
	return exists
}

// Get returns pointer to the value stored for the key or nil if key does not exist.
// Pointer is valid only until next Insert or Delete.
func (t *Table) Get(key types.Key) *types.Value {
	index, exists := t.find(key)
	if !exists {
		return nil
	}
	return &t.slots[index].Value
}

// Insert sets the value for the key.
// Error is returned only if slot array can't be grown, in that case table is left untouched.
func (t *Table) Insert(key types.Key, value types.Value) error {
	if 2*t.count >= t.capacity {
		if err := t.resize(); err != nil {
			return err
		}
	}

	t.place(key, value, false)
	return nil
}

// Delete deletes the key. It returns false if key does not exist.
func (t *Table) Delete(key types.Key) bool {
	index, exists := t.find(key)
	if !exists {
		t.config.Logger.Debug("Key does not exist, nothing to delete", zap.Uint64("key", uint64(key)))
		return false
	}

	t.slots[index] = types.Slot{State: types.StateDeleted}
	t.count--
	t.shiftBackward(index)

	return true
}

// Close releases the slot array. Table must not be used afterwards.
func (t *Table) Close() {
	if t.deallocF != nil {
		t.deallocF()
		t.deallocF = nil
	}
	t.slots = nil
	t.capacity = 0
	t.count = 0
	t.visited = 0
}

// Iterator iterates over entries stored in the table. Order is unspecified.
// Table must not be modified during iteration.
func (t *Table) Iterator() func(func(types.Key, types.Value) bool) {
	return func(yield func(types.Key, types.Value) bool) {
		for i := range t.slots {
			slot := &t.slots[i]
			if slot.State != types.StateOccupied {
				continue
			}
			if !yield(slot.Key, slot.Value) {
				return
			}
		}
	}
}

func (t *Table) index(key types.Key) uint64 {
	return uint64(t.config.Hasher(key, t.seed)) % t.capacity
}

func (t *Table) next(index uint64) uint64 {
	index++
	if index == t.capacity {
		return 0
	}
	return index
}

func (t *Table) find(key types.Key) (uint64, bool) {
	if t.capacity == 0 {
		return 0, false
	}

	index := t.index(key)
	for range min(t.visited, t.capacity) {
		slot := &t.slots[index]
		switch slot.State {
		case types.StateEmpty:
			return 0, false
		case types.StateOccupied:
			if slot.Key == key {
				return index, true
			}
		}
		index = t.next(index)
	}

	return 0, false
}

// place puts entry into the slot array. Reinsertion skips count and visited bookkeeping.
func (t *Table) place(key types.Key, value types.Value, reinsert bool) {
	index := t.index(key)
	candidate := types.Slot{
		Key:   key,
		Value: value,
		State: types.StateOccupied,
	}

	for range t.capacity {
		slot := &t.slots[index]
		if slot.State != types.StateOccupied || slot.Key == candidate.Key {
			if !reinsert {
				if slot.State != types.StateOccupied {
					t.count++
				}
				if slot.State == types.StateEmpty {
					t.visited++
				}
			}
			*slot = candidate
			return
		}

		// Entry which is further from its ideal slot takes the place.
		if candidate.ProbeDistance > slot.ProbeDistance {
			candidate, *slot = *slot, candidate
		}

		candidate.ProbeDistance++
		if candidate.ProbeDistance >= t.capacity {
			break
		}
		index = t.next(index)
	}

	panic(errors.WithStack(ErrCapacityExhausted))
}

func (t *Table) resize() error {
	capacity := t.capacity + types.InitialCapacity

	t.config.Logger.Info("Resizing table",
		zap.Uint64("capacity", t.capacity),
		zap.Uint64("newCapacity", capacity),
		zap.Uint64("count", t.count))

	slots, deallocF, err := t.config.Allocator.Allocate(capacity)
	if err != nil {
		return errors.Wrapf(err, "resizing table to %d slots failed", capacity)
	}

	oldSlots, oldDeallocF := t.slots, t.deallocF
	t.slots, t.deallocF, t.capacity = slots, deallocF, capacity

	for i := range oldSlots {
		if oldSlots[i].State != types.StateOccupied {
			continue
		}
		t.place(oldSlots[i].Key, oldSlots[i].Value, true)
	}
	t.visited = max(t.visited, t.count)

	if oldDeallocF != nil {
		oldDeallocF()
	}

	return nil
}

// shiftBackward moves following entries one slot back, as long as they are not in their ideal slots.
// The slot vacated last stays deleted.
func (t *Table) shiftBackward(hole uint64) {
	for {
		next := t.next(hole)
		slot := &t.slots[next]
		if slot.State != types.StateOccupied || slot.ProbeDistance == 0 {
			return
		}

		t.slots[hole] = *slot
		t.slots[hole].ProbeDistance--
		*slot = types.Slot{State: types.StateDeleted}
		hole = next
	}
}

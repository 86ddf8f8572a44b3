package types

const (
	// UInt64Length is the number of bytes taken by uint64.
	UInt64Length = 8

	// InitialCapacity is the number of slots a new table starts with. Each resize adds the same number of slots.
	InitialCapacity = 1024
)

// State enumerates possible slot states.
type State byte

const (
	// StateEmpty means slot has never been written since the slot array was allocated.
	StateEmpty State = iota

	// StateDeleted means slot is free but was occupied before.
	StateDeleted

	// StateOccupied means slot contains live key-value pair.
	StateOccupied
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDeleted:
		return "deleted"
	case StateOccupied:
		return "occupied"
	default:
		return "unknown"
	}
}

type (
	// Key is the type of table key.
	Key uint64

	// Value is the type of table value.
	Value uint32

	// Seed is the per-table value mixed into the hash function.
	Seed uint64

	// Hash is the type for key hash.
	Hash uint64
)

// Slot is the single cell of the slot array.
// Key, Value and ProbeDistance are meaningful only if State is StateOccupied.
type Slot struct {
	Key           Key
	ProbeDistance uint64
	Value         Value
	State         State
}

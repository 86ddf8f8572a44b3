package table

import (
	"github.com/pkg/errors"

	"github.com/outofforest/robinhood/types"
)

// Stats describes the slot array.
type Stats struct {
	Capacity           uint64
	Count              uint64
	Visited            uint64
	Empty              uint64
	Tombstones         uint64
	MaxProbeDistance   uint64
	TotalProbeDistance uint64
}

// LoadFactor returns ratio of occupied slots to capacity.
func (s Stats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Count) / float64(s.Capacity)
}

// MeanProbeDistance returns average probe distance of stored entries.
func (s Stats) MeanProbeDistance() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.TotalProbeDistance) / float64(s.Count)
}

// Stats scans the slot array and returns its stats.
func (t *Table) Stats() Stats {
	stats := Stats{
		Capacity: t.capacity,
		Count:    t.count,
		Visited:  t.visited,
	}
	for i := range t.slots {
		slot := &t.slots[i]
		switch slot.State {
		case types.StateEmpty:
			stats.Empty++
		case types.StateDeleted:
			stats.Tombstones++
		case types.StateOccupied:
			stats.TotalProbeDistance += slot.ProbeDistance
			if slot.ProbeDistance > stats.MaxProbeDistance {
				stats.MaxProbeDistance = slot.ProbeDistance
			}
		}
	}
	return stats
}

// Verify checks the structural invariants of the table.
func (t *Table) Verify() error {
	if uint64(len(t.slots)) != t.capacity {
		return errors.Errorf("slot array has %d slots but capacity is %d", len(t.slots), t.capacity)
	}

	keys := make(map[types.Key]uint64, t.count)
	var occupied, nonEmpty uint64
	for i := range t.slots {
		slot := &t.slots[i]
		if slot.State == types.StateEmpty {
			continue
		}
		nonEmpty++
		if slot.State != types.StateOccupied {
			continue
		}
		occupied++

		index := uint64(i)
		if prev, exists := keys[slot.Key]; exists {
			return errors.Errorf("key %d is stored in slots %d and %d", slot.Key, prev, index)
		}
		keys[slot.Key] = index

		if expected := (index + t.capacity - t.index(slot.Key)) % t.capacity; slot.ProbeDistance != expected {
			return errors.Errorf("key %d in slot %d has probe distance %d, expected %d", slot.Key, index,
				slot.ProbeDistance, expected)
		}
	}

	if occupied != t.count {
		return errors.Errorf("%d slots are occupied but count is %d", occupied, t.count)
	}
	if nonEmpty > t.visited {
		return errors.Errorf("%d slots are not empty but only %d were visited", nonEmpty, t.visited)
	}

	for key, index := range keys {
		found, exists := t.find(key)
		if !exists {
			return errors.Errorf("key %d stored in slot %d can't be found", key, index)
		}
		if found != index {
			return errors.Errorf("key %d stored in slot %d was found in slot %d", key, index, found)
		}
	}

	return nil
}

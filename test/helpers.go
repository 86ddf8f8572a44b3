package test

import (
	"sort"

	"github.com/outofforest/robinhood/table"
	"github.com/outofforest/robinhood/types"
)

// CollectKeys collects keys available in table.
func CollectKeys(tbl *table.Table) []types.Key {
	keys := []types.Key{}
	for key := range tbl.Iterator() {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// CollectValues collects values available in table.
func CollectValues(tbl *table.Table) []types.Value {
	values := []types.Value{}
	for _, value := range tbl.Iterator() {
		values = append(values, value)
	}

	sort.Slice(values, func(i, j int) bool {
		return values[i] < values[j]
	})
	return values
}

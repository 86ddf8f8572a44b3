package table

import (
	"testing"

	"github.com/outofforest/logger"
)

// NewInTest creates table for unit tests. Table is closed when test finishes.
func NewInTest(t *testing.T, config Config) *Table {
	if config.Logger == nil {
		config.Logger = logger.New(logger.DefaultConfig)
	}

	tbl, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tbl.Close)

	return tbl
}

package workload

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
	"github.com/outofforest/robinhood/table"
	"github.com/outofforest/robinhood/types"
)

// ScenarioCount is the number of keys used by the scenario.
const ScenarioCount = 900

// ScenarioValue returns value stored for the i-th key of the scenario.
func ScenarioValue(i int) types.Value {
	return types.Value(i ^ (2 << i))
}

// Scenario inserts keys 1..900, verifies them and deletes them in ascending order checking that
// the following key survives each deletion.
func Scenario(ctx context.Context, tbl *table.Table) error {
	log := logger.Get(ctx)

	if err := tbl.Insert(12, 22222); err != nil {
		return err
	}
	if v := tbl.Get(12); v == nil || *v != 22222 {
		return errors.New("key 12 has not been stored")
	}

	for _, i := range lo.Range(ScenarioCount) {
		if err := tbl.Insert(types.Key(i+1), ScenarioValue(i)); err != nil {
			return err
		}
	}
	if tbl.Count() != ScenarioCount {
		return errors.Errorf("expected %d entries, got %d", ScenarioCount, tbl.Count())
	}

	for _, i := range lo.Range(ScenarioCount) {
		key := types.Key(i + 1)
		v := tbl.Get(key)
		if v == nil {
			return errors.Errorf("key %d does not exist", key)
		}
		if *v != ScenarioValue(i) {
			return errors.Errorf("key %d has value %d, expected %d", key, *v, ScenarioValue(i))
		}
	}

	log.Info("Entries inserted", zap.Uint64("count", tbl.Count()), zap.Uint64("capacity", tbl.Capacity()))

	for _, i := range lo.Range(ScenarioCount) {
		key := types.Key(i + 1)
		if !tbl.Delete(key) {
			return errors.Errorf("key %d can't be deleted", key)
		}
		if key+1 < ScenarioCount && !tbl.Contains(key+1) {
			return errors.Errorf("key %d disappeared after deleting key %d", key+1, key)
		}
	}
	if tbl.Count() != 0 {
		return errors.Errorf("expected empty table, got %d entries", tbl.Count())
	}

	stats := tbl.Stats()
	log.Info("Entries deleted",
		zap.Uint64("capacity", stats.Capacity),
		zap.Uint64("visited", stats.Visited),
		zap.Uint64("tombstones", stats.Tombstones))

	return tbl.Verify()
}

// Result summarizes operations executed by Check.
type Result struct {
	Inserts uint64
	Updates uint64
	Deletes uint64
	Misses  uint64
	Stats   table.Stats
}

// Check executes random operations on the table and compares results with built-in map.
func Check(ctx context.Context, tbl *table.Table, rnd *rand.Rand, operations int, keySpace uint64) (Result, error) {
	var result Result
	if keySpace == 0 {
		return result, errors.New("key space must not be empty")
	}

	reference := map[types.Key]types.Value{}
	for i := range operations {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return result, errors.WithStack(err)
			}
		}

		key := types.Key(rnd.Uint64N(keySpace))
		_, exists := reference[key]

		switch rnd.IntN(4) {
		case 0:
			if tbl.Delete(key) != exists {
				return result, errors.Errorf("delete of key %d returned %t", key, !exists)
			}
			if exists {
				result.Deletes++
				delete(reference, key)
			} else {
				result.Misses++
			}
		case 1:
			v := tbl.Get(key)
			if exists != (v != nil) {
				return result, errors.Errorf("presence of key %d is %t, expected %t", key, v != nil, exists)
			}
			if exists && *v != reference[key] {
				return result, errors.Errorf("key %d has value %d, expected %d", key, *v, reference[key])
			}
		default:
			value := types.Value(rnd.Uint32())
			if err := tbl.Insert(key, value); err != nil {
				return result, err
			}
			if exists {
				result.Updates++
			} else {
				result.Inserts++
			}
			reference[key] = value
		}
	}

	if tbl.Count() != uint64(len(reference)) {
		return result, errors.Errorf("table contains %d entries, expected %d", tbl.Count(), len(reference))
	}
	for _, key := range lo.Keys(reference) {
		v := tbl.Get(key)
		if v == nil || *v != reference[key] {
			return result, errors.Errorf("key %d is missing or has invalid value", key)
		}
	}

	result.Stats = tbl.Stats()
	return result, tbl.Verify()
}

// Config stores configuration of parallel check.
type Config struct {
	Workers    int
	Operations int
	KeySpace   uint64
	Table      table.Config
}

// Run runs Check in parallel workers, each one operating on its own table.
func Run(ctx context.Context, config Config) error {
	if config.Workers <= 0 {
		return errors.New("number of workers must be greater than zero")
	}

	return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for i := range config.Workers {
			spawn(fmt.Sprintf("worker-%02d", i), parallel.Continue, func(ctx context.Context) error {
				log := logger.Get(ctx)

				tbl, err := table.New(config.Table)
				if err != nil {
					return err
				}
				defer tbl.Close()

				rnd := rand.New(rand.NewPCG(uint64(i), uint64(time.Now().UnixNano())))
				result, err := Check(ctx, tbl, rnd, config.Operations, config.KeySpace)
				if err != nil {
					return errors.Wrapf(err, "worker %d failed", i)
				}

				log.Info("Check passed",
					zap.Uint64("inserts", result.Inserts),
					zap.Uint64("updates", result.Updates),
					zap.Uint64("deletes", result.Deletes),
					zap.Uint64("misses", result.Misses),
					zap.Uint64("capacity", result.Stats.Capacity),
					zap.Uint64("tombstones", result.Stats.Tombstones),
					zap.Uint64("maxProbeDistance", result.Stats.MaxProbeDistance),
					zap.Float64("meanProbeDistance", result.Stats.MeanProbeDistance()))

				return nil
			})
		}
		return nil
	})
}

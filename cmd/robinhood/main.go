package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/robinhood/alloc"
	"github.com/outofforest/robinhood/hash"
	"github.com/outofforest/robinhood/table"
	"github.com/outofforest/robinhood/workload"
)

func main() {
	var (
		hasherName   string
		useMmap      bool
		useHugePages bool
		skipScenario bool
		verbose      bool
		config       workload.Config
	)

	flags := pflag.NewFlagSet("robinhood", pflag.ExitOnError)
	flags.StringVar(&hasherName, "hasher", hash.NameXXHash, "key hash function: xxhash or blake3")
	flags.BoolVar(&useMmap, "mmap", false, "allocate slot arrays using mmap")
	flags.BoolVar(&useHugePages, "huge-pages", false, "use huge pages for mmap allocations")
	flags.BoolVar(&skipScenario, "skip-scenario", false, "skip the reference scenario")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log table internals")
	flags.IntVar(&config.Workers, "workers", 4, "number of parallel workers, each with its own table")
	flags.IntVar(&config.Operations, "ops", 1_000_000, "number of random operations executed by each worker")
	flags.Uint64Var(&config.KeySpace, "keys", 100_000, "number of distinct keys used by random operations")
	_ = flags.Parse(os.Args[1:])

	log := logger.New(logger.DefaultConfig)
	ctx, cancel := signal.NotifyContext(logger.WithLogger(context.Background(), log), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log, hasherName, useMmap, useHugePages, skipScenario, verbose, config); err != nil {
		log.Error("Failed", zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *zap.Logger,
	hasherName string,
	useMmap, useHugePages, skipScenario, verbose bool,
	config workload.Config,
) error {
	hasher, err := hash.ByName(hasherName)
	if err != nil {
		return err
	}

	config.Table = table.Config{
		Hasher: hasher,
	}
	if useMmap {
		config.Table.Allocator = alloc.NewMmapAllocator(useHugePages)
	}
	if verbose {
		config.Table.Logger = log
	}

	if !skipScenario {
		tbl, err := table.New(config.Table)
		if err != nil {
			return err
		}
		defer tbl.Close()

		if err := workload.Scenario(ctx, tbl); err != nil {
			return err
		}
		log.Info("Scenario passed")
	}

	return workload.Run(ctx, config)
}

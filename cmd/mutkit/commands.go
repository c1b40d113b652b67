package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/AgnopraxLab/mutkit/benchmark"
	"github.com/AgnopraxLab/mutkit/config"
	"github.com/AgnopraxLab/mutkit/flags"
	"github.com/AgnopraxLab/mutkit/fuzzer"
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/mutation/strategies"
	"github.com/AgnopraxLab/mutkit/rng"
	"github.com/AgnopraxLab/mutkit/utils"
)

var (
	mutateCommand = &cli.Command{
		Name:      "mutate",
		Usage:     "Mutate a single test case and print the results",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			flags.FileFlag,
			flags.SeedFlag,
			flags.StrategyFlag,
			flags.CountFlag,
			flags.HexFlag,
			flags.MinSeedIndexFlag,
		},
		Action: mutate,
	}
	fuzzCommand = &cli.Command{
		Name:  "fuzz",
		Usage: "Mutate a seed corpus and write the distinct results to disk",
		Flags: []cli.Flag{
			flags.ConfigFlag,
			flags.CorpusFlag,
			flags.LocationFlag,
			flags.ThreadsFlag,
			flags.CountFlag,
			flags.SeedFlag,
			flags.StrategyFlag,
			flags.MinSeedIndexFlag,
		},
		Action: fuzz,
	}
	listCommand = &cli.Command{
		Name:   "list",
		Usage:  "List the available mutation strategies",
		Action: list,
	}
	benchCommand = &cli.Command{
		Name:  "bench",
		Usage: "Time the mutation strategies",
		Flags: []cli.Flag{
			flags.CountFlag,
			flags.SeedFlag,
		},
		Action: bench,
	}
)

func readInput(ctx *cli.Context) ([]byte, error) {
	path := ctx.String(flags.FileFlag.Name)
	if path == "" {
		path = ctx.Args().First()
	}
	var (
		raw []byte
		err error
	)
	if path == "" || path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read test case: %w", err)
	}
	if ctx.Bool(flags.HexFlag.Name) {
		return hexutil.Decode(strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

func mutationConfig(ctx *cli.Context, base *mutation.MutationConfig) *mutation.MutationConfig {
	cfg := base.Clone()
	if ctx.IsSet(flags.StrategyFlag.Name) {
		cfg.Strategies = ctx.StringSlice(flags.StrategyFlag.Name)
	}
	if ctx.IsSet(flags.MinSeedIndexFlag.Name) {
		cfg.MinSeedIndex = ctx.Int(flags.MinSeedIndexFlag.Name)
	}
	if ctx.IsSet(flags.SeedFlag.Name) {
		cfg.Seed = ctx.Int64(flags.SeedFlag.Name)
	}
	return cfg
}

func mutate(ctx *cli.Context) error {
	data, err := readInput(ctx)
	if err != nil {
		return err
	}
	cfg := mutationConfig(ctx, mutation.DefaultMutationConfig())
	if err := cfg.Validate(); err != nil {
		return err
	}
	src := rng.New(cfg.Seed)
	engine := mutation.NewEngine(cfg, src, utils.NopLogger())
	if err := strategies.RegisterAll(engine); err != nil {
		return err
	}
	if len(engine.GetStrategies()) == 0 {
		return errors.New("no mutation strategy enabled")
	}
	log.Debug("Mutating test case", "size", len(data), "seed", src.Seed(), "strategies", len(engine.GetStrategies()))

	asHex := ctx.Bool(flags.HexFlag.Name)
	for i := 0; i < ctx.Int(flags.CountFlag.Name); i++ {
		result, err := engine.Mutate(data)
		if err != nil {
			return err
		}
		log.Info("Mutated test case", "strategy", result.Strategy, "size", len(result.MutatedData), "noop", result.NoOp)
		if asHex {
			fmt.Println(hexutil.Encode(result.MutatedData))
		} else if _, err := os.Stdout.Write(result.MutatedData); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := ctx.String(flags.ConfigFlag.Name); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if ctx.IsSet(flags.CorpusFlag.Name) {
		cfg.Corpus.Directory = ctx.String(flags.CorpusFlag.Name)
	}
	if ctx.IsSet(flags.LocationFlag.Name) {
		cfg.Output.Directory = ctx.String(flags.LocationFlag.Name)
	} else {
		cfg.Output.Directory = fuzzer.OutputDir(cfg.Output.Directory)
	}
	if ctx.IsSet(flags.ThreadsFlag.Name) {
		cfg.Fuzzing.Threads = ctx.Int(flags.ThreadsFlag.Name)
	}
	if ctx.IsSet(flags.CountFlag.Name) {
		cfg.Fuzzing.MaxIterations = ctx.Int(flags.CountFlag.Name)
	}
	if ctx.IsSet(flags.SeedFlag.Name) {
		cfg.Fuzzing.Seed = ctx.Int64(flags.SeedFlag.Name)
	}
	cfg.Mutation = *mutationConfig(ctx, &cfg.Mutation)
	return cfg, cfg.Validate()
}

func fuzz(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if !cfg.IsFuzzingEnabled() {
		log.Warn("Fuzzing disabled by configuration")
		return nil
	}
	if cfg.Mutation.Verbose {
		cfg.PrintConfig()
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.GetLogPath(), level)
	if err != nil {
		return err
	}
	defer logger.Close()

	corpus, err := utils.ReadCorpus(cfg.GetCorpusPath())
	if err != nil {
		return err
	}
	log.Info("Starting fuzzer", "seeds", len(corpus), "threads", cfg.Fuzzing.Threads,
		"iterations", cfg.Fuzzing.MaxIterations, "outdir", cfg.GetOutputPath())

	start := time.Now()
	stats, err := fuzzer.Run(fuzzer.Options{
		Corpus:     corpus,
		OutputDir:  cfg.GetOutputPath(),
		Prefix:     cfg.Output.Prefix,
		Iterations: cfg.Fuzzing.MaxIterations,
		Threads:    cfg.Fuzzing.Threads,
		Seed:       cfg.Fuzzing.Seed,
		Mutation:   &cfg.Mutation,
		Logger:     logger,
	})
	if stats != nil {
		log.Info("Fuzzing finished", "seed", stats.Seed, "executions", stats.Executions,
			"written", stats.Written, "duplicates", stats.Duplicates, "noops", stats.NoOps,
			"failures", stats.Failures, "elapsed", time.Since(start))
	}
	return err
}

func list(ctx *cli.Context) error {
	for _, name := range strategies.Names() {
		fmt.Println(name)
	}
	return nil
}

func bench(ctx *cli.Context) error {
	n := ctx.Int(flags.CountFlag.Name)
	if !ctx.IsSet(flags.CountFlag.Name) {
		n = 1000
	}
	seed := ctx.Int64(flags.SeedFlag.Name)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	benchmark.RunFullBench(os.Stdout, n, seed)
	return nil
}

package flags

import (
	"runtime"

	"github.com/urfave/cli/v2"
)

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the YAML configuration file",
	}
	SeedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for the RNG, (Default = RandomSeed)",
		Value: 0,
	}
	StrategyFlag = &cli.StringSliceFlag{
		Name:    "strategy",
		Aliases: []string{"s"},
		Usage:   "Mutation strategy to use, repeatable (default = all)",
	}
	FileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Specify the file containing the seed test case",
	}
	HexFlag = &cli.BoolFlag{
		Name:  "hex",
		Usage: "Read and print test cases as 0x-prefixed hex",
	}
	CorpusFlag = &cli.StringFlag{
		Name:  "corpus",
		Usage: "Directory holding the seed test cases",
	}
	LocationFlag = &cli.StringFlag{
		Name:  "outdir",
		Usage: "Location to place artefacts",
	}
	ThreadsFlag = &cli.IntFlag{
		Name:  "threads",
		Usage: "Number of mutation workers started (default = NUMCPU)",
		Value: runtime.NumCPU(),
	}
	CountFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "Number of tests that should be benched/executed/generated",
		Value: 1,
	}
	MinSeedIndexFlag = &cli.IntFlag{
		Name:  "min-seed-index",
		Usage: "First byte the sequence mutators may touch",
	}
	VerbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "sets the verbosity level (-4: DEBUG, 0: INFO, 4: WARN, 8: ERROR)",
		Value: 0,
	}
)

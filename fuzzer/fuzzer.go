// Copyright 2024 Fudong and Hosen
// This file is part of the mutkit library.
//
// The mutkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The mutkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the mutkit library. If not, see <http://www.gnu.org/licenses/>.

// Package fuzzer drives the mutation engine over a seed corpus and is the
// entry point for go-fuzz.
package fuzzer

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/AgnopraxLab/mutkit/filler"
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/mutation/strategies"
	"github.com/AgnopraxLab/mutkit/rng"
	"github.com/AgnopraxLab/mutkit/utils"
)

// EnvKey names the environment variable that overrides the output
// directory.
const EnvKey = "MUTKIT_OUTDIR"

// OutputDir returns the directory from EnvKey if set, otherwise def.
func OutputDir(def string) string {
	if dir, ok := os.LookupEnv(EnvKey); ok && dir != "" {
		return dir
	}
	return def
}

// Options controls a fuzzing run.
type Options struct {
	Corpus     []utils.CorpusFile
	OutputDir  string
	Prefix     string // output file prefix, "Mut" if empty
	Iterations int    // mutations per worker
	Threads    int
	Seed       int64 // base seed, worker i uses Seed+i; 0 picks one from the clock
	Mutation   *mutation.MutationConfig
	Logger     mutation.Logger
}

// Stats summarizes a run. Every execution ends up in exactly one counter.
type Stats struct {
	Executions int
	Written    int
	Duplicates int
	NoOps      int
	Failures   int
	Seed       int64
}

func (s *Stats) add(o Stats) {
	s.Executions += o.Executions
	s.Written += o.Written
	s.Duplicates += o.Duplicates
	s.NoOps += o.NoOps
	s.Failures += o.Failures
}

// Run mutates randomly chosen corpus entries on opts.Threads workers and
// writes every distinct result into opts.OutputDir, named after its hash.
func Run(opts Options) (*Stats, error) {
	if len(opts.Corpus) == 0 {
		return nil, errors.New("empty seed corpus")
	}
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("invalid iteration count: %d", opts.Iterations)
	}
	if opts.OutputDir == "" {
		return nil, errors.New("no output directory")
	}
	// Ensure at least one thread
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	if opts.Prefix == "" {
		opts.Prefix = "Mut"
	}
	if opts.Mutation == nil {
		opts.Mutation = mutation.DefaultMutationConfig()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NopLogger()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	var (
		wg      sync.WaitGroup
		errChan = make(chan error, opts.Threads)
		mu      sync.Mutex
		total   = Stats{Seed: opts.Seed}
		seen    = make(map[string]struct{})
	)

	claim := func(name string) bool {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := seen[name]; ok {
			return false
		}
		seen[name] = struct{}{}
		return true
	}

	for i := 0; i < opts.Threads; i++ {
		wg.Add(1)
		go func(threadID int) {
			defer wg.Done()
			stats, err := runWorker(opts, threadID, claim)
			mu.Lock()
			total.add(stats)
			mu.Unlock()
			if err != nil {
				errChan <- fmt.Errorf("thread %d error: %w", threadID, err)
			}
		}(i)
	}

	// Wait for all goroutines to complete
	go func() {
		wg.Wait()
		close(errChan)
	}()

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &total, errs[0]
	}
	return &total, nil
}

func runWorker(opts Options, threadID int, claim func(string) bool) (Stats, error) {
	var stats Stats
	src := rng.New(opts.Seed + int64(threadID))
	engine := mutation.NewEngine(opts.Mutation.Clone(), src, opts.Logger)
	if err := strategies.RegisterAll(engine); err != nil {
		return stats, err
	}
	if len(engine.GetStrategies()) == 0 {
		return stats, errors.New("no mutation strategy enabled")
	}

	for i := 0; i < opts.Iterations; i++ {
		stats.Executions++
		seed := opts.Corpus[src.Below(len(opts.Corpus))]
		result, err := engine.Mutate(seed.Data)
		if err != nil {
			stats.Failures++
			opts.Logger.Warn("Mutating %s failed: %v", seed.Name, err)
			continue
		}
		if result.NoOp {
			stats.NoOps++
			continue
		}
		name := fmt.Sprintf("%s-%v", opts.Prefix, common.Bytes2Hex(hash(result.MutatedData)))
		if !claim(name) {
			stats.Duplicates++
			continue
		}
		if _, err := utils.WriteTestCase(opts.OutputDir, name, result.MutatedData); err != nil {
			return stats, err
		}
		stats.Written++
		opts.Logger.Debug("%s: %s -> %s", result.Strategy, seed.Name, name)
	}
	return stats, nil
}

func hash(data []byte) []byte {
	h := sha3.New256()
	h.Write(data)
	return h.Sum(nil)
}

// Fuzz is the go-fuzz entry point. The first byte selects how much of the
// input is the test case; the rest drives the random decisions of one call
// to every strategy.
func Fuzz(data []byte) int {
	if len(data) < 2 {
		return -1
	}
	n := int(data[0])%(len(data)-1) + 1
	testCase := data[1 : 1+n]
	decisions := data[1+n:]

	mutated := 0
	for _, s := range strategies.All(nil) {
		res, err := s.Mutate(testCase, filler.NewFiller(decisions))
		if err == nil && !res.NoOp {
			mutated++
		}
	}
	if mutated == 0 {
		return 0
	}
	return 1
}

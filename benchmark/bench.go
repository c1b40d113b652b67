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
package benchmark

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/AgnopraxLab/mutkit/fuzzer"
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/mutation/strategies"
	"github.com/AgnopraxLab/mutkit/rng"
	"github.com/AgnopraxLab/mutkit/utils"
)

// Result is the timing of one benchmark.
type Result struct {
	Name     string
	Runs     int
	Duration time.Duration
	Err      error
}

// PerRun returns the average time of a single run.
func (r Result) PerRun() time.Duration {
	if r.Runs == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Runs)
}

// RunFullBench runs every benchmark N times and prints the results to w.
func RunFullBench(w io.Writer, N int, seed int64) []Result {
	results := []Result{
		timed("BenchmarkFuzzEntry", N, func() error { return fuzzEntry(N, seed) }),
		timed("BenchmarkEngine", N, func() error { return engineMutations(N, seed) }),
	}
	results = append(results, perStrategy(N, seed)...)
	for _, r := range results {
		printResult(w, r)
	}
	return results
}

func printResult(w io.Writer, r Result) {
	if r.Err != nil {
		fmt.Fprintf(w, "Benchmark %v produced error: %v\n", r.Name, r.Err)
		return
	}
	fmt.Fprintf(w, "Benchmark %v took %v (%v/op)\n", r.Name, r.Duration.String(), r.PerRun())
}

func timed(name string, N int, fn func() error) Result {
	start := time.Now()
	err := fn()
	return Result{Name: name, Runs: N, Duration: time.Since(start), Err: err}
}

// sample builds a deterministic input that every strategy accepts: numbered
// text lines that also form the root value of a bracket tree.
func sample(seed int64) []byte {
	r := rng.New(seed)
	text := []byte("root 12\nsecond line -7\nthird line 4096\n")
	for i := 0; i < 64; i++ {
		b := byte(r.Between(32, 126))
		if b == '(' || b == ')' {
			b = '_'
		}
		text = append(text, b)
	}
	return append(text, "(alpha 1)(beta(gamma))"...)
}

// fuzzEntry runs the go-fuzz entry point.
func fuzzEntry(N int, seed int64) error {
	r := rng.New(seed)
	rnd := make([]byte, 40)
	for i := 0; i < N; i++ {
		for j := range rnd {
			rnd[j] = byte(r.Below(256))
		}
		fuzzer.Fuzz(rnd)
	}
	return nil
}

func engineMutations(N int, seed int64) error {
	e := mutation.NewEngine(nil, rng.New(seed), utils.NopLogger())
	if err := strategies.RegisterAll(e); err != nil {
		return err
	}
	data := sample(seed)
	for i := 0; i < N; i++ {
		if _, err := e.Mutate(data); err != nil {
			return err
		}
	}
	return nil
}

func perStrategy(N int, seed int64) []Result {
	all := strategies.All(nil)
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	data := sample(seed)
	var results []Result
	for _, s := range all {
		r := rng.New(seed)
		results = append(results, timed(s.Name(), N, func() error {
			for i := 0; i < N; i++ {
				if _, err := s.Mutate(data, r); err != nil {
					return err
				}
			}
			return nil
		}))
	}
	return results
}

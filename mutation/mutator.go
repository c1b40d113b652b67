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

// Package mutation defines the mutator contract, its error taxonomy and the
// Engine that dispatches test cases to registered strategies.
package mutation

import (
	"fmt"
	"sync"
	"time"

	"github.com/AgnopraxLab/mutkit/rng"
	"github.com/AgnopraxLab/mutkit/testcase"
	"github.com/AgnopraxLab/mutkit/utils"
)

// Strategy is a single mutation algorithm. Implementations hold no state
// between calls; every random decision is drawn from r.
type Strategy interface {
	// Name returns the name of the mutation strategy
	Name() string

	// CanMutate is a cheap check whether Mutate may succeed on data
	CanMutate(data []byte) bool

	// Mutate produces a new buffer derived from data. data is never modified.
	Mutate(data []byte, r rng.Source) (Result, error)
}

// Result is the outcome of a successful mutation call.
type Result struct {
	Data []byte
	// NoOp is set when the input had nothing to mutate and Data is a
	// verbatim copy of it.
	NoOp bool
}

// Mutated wraps a freshly built buffer.
func Mutated(data []byte) Result {
	return Result{Data: data}
}

// Unchanged returns a no-op result holding a copy of data.
func Unchanged(data []byte) Result {
	return Result{Data: append([]byte(nil), data...), NoOp: true}
}

// Logger is the logging surface the engine needs; *utils.Logger satisfies it.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// MutationResult represents the result of an engine mutation
type MutationResult struct {
	OriginalData []byte
	MutatedData  []byte
	Strategy     string
	Timestamp    time.Time
	NoOp         bool
	Success      bool
	Error        error
}

// StrategyStats counts the outcomes of one strategy.
type StrategyStats struct {
	Mutations int
	NoOps     int
	Failures  int
}

// Engine is the mutation manager that coordinates the registered strategies.
// Once registration is done the engine is safe for concurrent use if its
// random source is.
type Engine struct {
	strategies []Strategy
	byName     map[string]Strategy
	config     *MutationConfig
	logger     Logger
	rng        rng.Source

	registry    *testcase.Registry
	testCaseKey testcase.Key

	mu    sync.Mutex
	stats map[string]*StrategyStats
}

// NewEngine creates a new mutation manager. A nil source is replaced by a
// generator seeded from config.Seed, a nil logger discards everything.
func NewEngine(config *MutationConfig, src rng.Source, logger Logger) *Engine {
	if config == nil {
		config = DefaultMutationConfig()
	}
	if src == nil {
		src = rng.New(config.Seed)
	}
	if logger == nil {
		logger = utils.NopLogger()
	}
	registry := testcase.NewRegistry()
	return &Engine{
		byName:      make(map[string]Strategy),
		config:      config,
		logger:      logger,
		rng:         src,
		registry:    registry,
		testCaseKey: registry.RegisterKey(testcase.TestCaseKey, testcase.ReadWrite),
		stats:       make(map[string]*StrategyStats),
	}
}

// RegisterStrategy registers a new mutation strategy. Strategies disabled
// by the configuration are skipped.
func (e *Engine) RegisterStrategy(strategy Strategy) error {
	name := strategy.Name()
	if _, ok := e.byName[name]; ok {
		return fmt.Errorf("strategy %q already registered", name)
	}
	if !e.config.IsEnabled(name) {
		e.logger.Debug("Skipping disabled mutation strategy: %s", name)
		return nil
	}
	e.strategies = append(e.strategies, strategy)
	e.byName[name] = strategy
	e.stats[name] = &StrategyStats{}
	e.logger.Debug("Registered mutation strategy: %s", name)
	return nil
}

// GetStrategies returns all registered strategies
func (e *Engine) GetStrategies() []Strategy {
	return e.strategies
}

// Strategy returns the registered strategy with the given name.
func (e *Engine) Strategy(name string) (Strategy, bool) {
	s, ok := e.byName[name]
	return s, ok
}

// Registry returns the buffer registry the engine set up.
func (e *Engine) Registry() *testcase.Registry {
	return e.registry
}

// TestCaseKey returns the key of the test case buffer.
func (e *Engine) TestCaseKey() testcase.Key {
	return e.testCaseKey
}

// Mutate applies one randomly selected suitable strategy to data.
func (e *Engine) Mutate(data []byte) (*MutationResult, error) {
	if err := e.checkInput(data); err != nil {
		return nil, err
	}

	suitable := make([]Strategy, 0, len(e.strategies))
	for _, strategy := range e.strategies {
		if strategy.CanMutate(data) {
			suitable = append(suitable, strategy)
		}
	}
	if len(suitable) == 0 {
		return nil, Errorf(UsageError, "engine", "no suitable mutation strategy found")
	}

	return e.apply(suitable[e.rng.Below(len(suitable))], data)
}

// MutateWith applies the named strategy to data.
func (e *Engine) MutateWith(name string, data []byte) (*MutationResult, error) {
	strategy, ok := e.byName[name]
	if !ok {
		return nil, Errorf(UsageError, "engine", "unknown strategy %q", name)
	}
	if err := e.checkInput(data); err != nil {
		return nil, err
	}
	return e.apply(strategy, data)
}

// MutateMultiple applies count independent mutations to the same data.
// Failed mutations are logged and skipped.
func (e *Engine) MutateMultiple(data []byte, count int) ([]*MutationResult, error) {
	if count <= 0 {
		return nil, Errorf(UsageError, "engine", "invalid mutation count: %d", count)
	}

	results := make([]*MutationResult, 0, count)
	for i := 0; i < count; i++ {
		result, err := e.Mutate(data)
		if err != nil {
			e.logger.Warn("Mutation %d/%d failed: %v", i+1, count, err)
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

// MutateEntry reads the test case buffer of base, mutates it with a random
// suitable strategy and allocates the result on next.
func (e *Engine) MutateEntry(base, next *testcase.Entry) (*MutationResult, error) {
	data, err := readBuffer("engine", base, e.testCaseKey)
	if err != nil {
		return nil, err
	}
	result, err := e.Mutate(data)
	if err != nil {
		return result, err
	}
	if err := writeBuffer("engine", next, e.testCaseKey, result.MutatedData); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) checkInput(data []byte) error {
	if len(data) == 0 {
		return Errorf(UsageError, "engine", "empty input data")
	}
	if len(data) > e.config.MaxMutationSize {
		return Errorf(UsageError, "engine", "input of %d bytes exceeds max_mutation_size %d", len(data), e.config.MaxMutationSize)
	}
	return nil
}

func (e *Engine) apply(strategy Strategy, data []byte) (*MutationResult, error) {
	name := strategy.Name()
	result := &MutationResult{
		OriginalData: append([]byte(nil), data...),
		Strategy:     name,
		Timestamp:    time.Now(),
	}

	out, err := strategy.Mutate(data, e.rng)
	if err != nil {
		result.Error = err
		e.record(name, func(s *StrategyStats) { s.Failures++ })
		e.logger.Error("Mutation failed with strategy %s: %v", name, err)
		return result, err
	}

	result.MutatedData = out.Data
	result.NoOp = out.NoOp
	result.Success = true
	e.record(name, func(s *StrategyStats) {
		if out.NoOp {
			s.NoOps++
		} else {
			s.Mutations++
		}
	})
	if e.config.LogMutations {
		e.logger.Info("%s: %d -> %d bytes (noop=%t)", name, len(data), len(out.Data), out.NoOp)
	} else {
		e.logger.Debug("Successfully mutated %d bytes using strategy %s", len(data), name)
	}

	return result, nil
}

func (e *Engine) record(name string, update func(*StrategyStats)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.stats[name]
	if !ok {
		s = &StrategyStats{}
		e.stats[name] = s
	}
	update(s)
}

// GetConfig returns the current mutation configuration
func (e *Engine) GetConfig() *MutationConfig {
	return e.config
}

// StrategyStats returns a snapshot of the per strategy counters.
func (e *Engine) StrategyStats() map[string]StrategyStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]StrategyStats, len(e.stats))
	for name, s := range e.stats {
		out[name] = *s
	}
	return out
}

// GetStats returns mutation statistics
func (e *Engine) GetStats() map[string]interface{} {
	var total StrategyStats
	for _, s := range e.StrategyStats() {
		total.Mutations += s.Mutations
		total.NoOps += s.NoOps
		total.Failures += s.Failures
	}
	stats := make(map[string]interface{})
	stats["registered_strategies"] = len(e.strategies)
	stats["mutations"] = total.Mutations
	stats["noops"] = total.NoOps
	stats["failures"] = total.Failures
	stats["config"] = e.config
	return stats
}

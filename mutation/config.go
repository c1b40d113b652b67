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

package mutation

import (
	"fmt"
)

// MutationConfig holds configuration for mutation operations
type MutationConfig struct {
	Enabled bool  `yaml:"enabled"`
	Seed    int64 `yaml:"seed"` // Random seed, 0 means use current time

	// Strategies lists the enabled strategy names. Empty enables all.
	Strategies []string `yaml:"strategies"`

	// MinSeedIndex is the first byte the sequence mutators may touch.
	MinSeedIndex int `yaml:"min_seed_index"`

	// Maximum size of data to mutate
	MaxMutationSize int `yaml:"max_mutation_size"`

	// Logging and debugging
	Verbose      bool `yaml:"verbose"`       // Enable verbose logging
	LogMutations bool `yaml:"log_mutations"` // Log all mutations
}

// DefaultMutationConfig returns a default mutation configuration
func DefaultMutationConfig() *MutationConfig {
	return &MutationConfig{
		Enabled:         true,
		Seed:            0,
		MinSeedIndex:    0,
		MaxMutationSize: 1024 * 1024, // 1MB
		Verbose:         false,
		LogMutations:    false,
	}
}

// Validate validates the mutation configuration
func (c *MutationConfig) Validate() error {
	if c.MaxMutationSize <= 0 {
		return fmt.Errorf("max_mutation_size must be positive, got %d", c.MaxMutationSize)
	}

	if c.MinSeedIndex < 0 {
		return fmt.Errorf("min_seed_index must not be negative, got %d", c.MinSeedIndex)
	}

	seen := make(map[string]bool, len(c.Strategies))
	for _, name := range c.Strategies {
		if name == "" {
			return fmt.Errorf("strategies must not contain empty names")
		}
		if seen[name] {
			return fmt.Errorf("strategy %q listed twice", name)
		}
		seen[name] = true
	}

	return nil
}

// IsEnabled reports whether the named strategy may be used.
func (c *MutationConfig) IsEnabled(name string) bool {
	if len(c.Strategies) == 0 {
		return true
	}
	for _, s := range c.Strategies {
		if s == name {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the mutation configuration
func (c *MutationConfig) Clone() *MutationConfig {
	clone := *c
	if c.Strategies != nil {
		clone.Strategies = append([]string(nil), c.Strategies...)
	}
	return &clone
}

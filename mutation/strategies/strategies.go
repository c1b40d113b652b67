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

// Package strategies contains the mutation algorithms. The afl.* strategies
// keep the buffer length unless they delete; the radamsa.* strategies end
// every output with a single terminator byte.
package strategies

import (
	"sort"

	"github.com/AgnopraxLab/mutkit/mutation"
)

// Terminator is appended to the output of the radamsa family.
const Terminator byte = 0x00

// terminated concatenates parts and appends the terminator.
func terminated(parts ...[]byte) []byte {
	size := 1
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return append(out, Terminator)
}

// All returns one instance of every strategy, configured from cfg.
func All(cfg *mutation.MutationConfig) []mutation.Strategy {
	if cfg == nil {
		cfg = mutation.DefaultMutationConfig()
	}
	all := []mutation.Strategy{
		NewFlip(1),
		NewFlip(2),
		NewFlip(4),
		NewInteresting(8),
		NewInteresting(16),
		NewInteresting(32),
		&OverwriteCopy{},
		&DeleteBlock{},
	}
	all = append(all, ByteMutators()...)
	all = append(all,
		NewRepeatSequence(cfg.MinSeedIndex),
		NewDeleteSequence(cfg.MinSeedIndex),
		&DuplicateLine{},
		&DeleteLine{},
		&PermuteLines{},
		&ReplaceLine{},
		&DuplicateNode{},
		&DeleteNode{},
		&WidenCodePoint{},
		&InsertCodePoint{},
		&TextualNumber{},
	)
	return all
}

// Names returns the sorted names of all strategies.
func Names() []string {
	var names []string
	for _, s := range All(nil) {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}

// RegisterAll registers every strategy enabled by the engine configuration.
func RegisterAll(e *mutation.Engine) error {
	for _, s := range All(e.GetConfig()) {
		if err := e.RegisterStrategy(s); err != nil {
			return err
		}
	}
	return nil
}

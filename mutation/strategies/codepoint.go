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

package strategies

import (
	"github.com/AgnopraxLab/mutkit/fuzzing"
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/rng"
)

// WidenCodePoint replaces a printable ASCII byte with its overlong two byte
// encoding.
type WidenCodePoint struct{}

func (*WidenCodePoint) Name() string {
	return "radamsa.widen-codepoint"
}

func (*WidenCodePoint) CanMutate(data []byte) bool {
	for _, b := range data {
		if fuzzing.IsPrintable(b) {
			return true
		}
	}
	return false
}

func (m *WidenCodePoint) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(m.Name(), data, 1); err != nil {
		return mutation.Result{}, err
	}
	// bounded number of probes, no scan
	for attempt := 0; attempt < len(data); attempt++ {
		i := r.Between(0, len(data)-1)
		if !fuzzing.IsPrintable(data[i]) {
			continue
		}
		wide := fuzzing.WidenByte(data[i])
		return mutation.Mutated(terminated(data[:i], wide[:], data[i+1:])), nil
	}
	return mutation.Unchanged(data), nil
}

// InsertCodePoint inserts the UTF-8 encoding of a code point from a table of
// unusual values at a random position.
type InsertCodePoint struct{}

func (*InsertCodePoint) Name() string {
	return "radamsa.insert-codepoint"
}

func (*InsertCodePoint) CanMutate(data []byte) bool {
	return len(data) > 0
}

func (m *InsertCodePoint) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(m.Name(), data, 1); err != nil {
		return mutation.Result{}, err
	}
	i := r.Between(0, len(data))
	enc := fuzzing.EncodeUTF8(fuzzing.FunnyCodePoint(r))
	return mutation.Mutated(terminated(data[:i], enc, data[i:])), nil
}

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
	"bytes"

	"github.com/AgnopraxLab/mutkit/fuzzing"
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/rng"
)

// sequence picks a sub-range [start, end) of the buffer that begins at or
// after MinSeedIndex.
type sequence struct {
	name         string
	MinSeedIndex int
}

func (s *sequence) Name() string {
	return s.name
}

func (s *sequence) CanMutate(data []byte) bool {
	return len(data) >= 2 && s.MinSeedIndex >= 0 && s.MinSeedIndex < len(data)-1
}

func (s *sequence) pick(data []byte, r rng.Source) (int, int, error) {
	if err := mutation.CheckBuffer(s.name, data, 2); err != nil {
		return 0, 0, err
	}
	n := len(data)
	if s.MinSeedIndex < 0 || s.MinSeedIndex >= n-1 {
		return 0, 0, mutation.Errorf(mutation.IndexOutOfRange, s.name, "min seed index %d outside [0, %d)", s.MinSeedIndex, n-1)
	}
	start := r.Between(s.MinSeedIndex, n-1)
	end := r.Between(start+1, n)
	return start, end, nil
}

// RepeatSequence repeats a random sub-range of the buffer in place.
type RepeatSequence struct {
	sequence
}

// NewRepeatSequence creates the mutator; minSeedIndex is the first byte it
// may repeat.
func NewRepeatSequence(minSeedIndex int) *RepeatSequence {
	return &RepeatSequence{sequence{name: "radamsa.repeat-sequence", MinSeedIndex: minSeedIndex}}
}

func (m *RepeatSequence) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	start, end, err := m.pick(data, r)
	if err != nil {
		return mutation.Result{}, err
	}
	count := fuzzing.RepetitionLength(r)
	return mutation.Mutated(terminated(data[:end], bytes.Repeat(data[start:end], count), data[end:])), nil
}

// DeleteSequence removes a random sub-range of the buffer.
type DeleteSequence struct {
	sequence
}

// NewDeleteSequence creates the mutator; minSeedIndex is the first byte it
// may delete.
func NewDeleteSequence(minSeedIndex int) *DeleteSequence {
	return &DeleteSequence{sequence{name: "radamsa.delete-sequence", MinSeedIndex: minSeedIndex}}
}

func (m *DeleteSequence) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	start, end, err := m.pick(data, r)
	if err != nil {
		return mutation.Result{}, err
	}
	return mutation.Mutated(terminated(data[:start], data[end:])), nil
}

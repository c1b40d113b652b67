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

// byteOp is a single byte edit of the radamsa family.
type byteOp struct {
	name string
	fn   func(data []byte, r rng.Source) []byte
}

func (b *byteOp) Name() string {
	return b.name
}

func (b *byteOp) CanMutate(data []byte) bool {
	return len(data) > 0
}

func (b *byteOp) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(b.name, data, 1); err != nil {
		return mutation.Result{}, err
	}
	return mutation.Mutated(b.fn(data, r)), nil
}

// ByteMutators returns the single byte radamsa mutators.
func ByteMutators() []mutation.Strategy {
	return []mutation.Strategy{
		&byteOp{"radamsa.flip-byte", flipByte},
		&byteOp{"radamsa.increment-byte", incrementByte},
		&byteOp{"radamsa.decrement-byte", decrementByte},
		&byteOp{"radamsa.insert-byte", insertByte},
		&byteOp{"radamsa.repeat-byte", repeatByte},
		&byteOp{"radamsa.delete-byte", deleteByte},
		&byteOp{"radamsa.random-byte", randomByte},
	}
}

// editByte copies data with a terminator and applies edit to one random
// position.
func editByte(data []byte, r rng.Source, edit func(b byte) byte) []byte {
	out := terminated(data)
	i := r.Below(len(data))
	out[i] = edit(out[i])
	return out
}

func flipByte(data []byte, r rng.Source) []byte {
	return editByte(data, r, func(b byte) byte {
		return b ^ 1<<uint(r.Below(8))
	})
}

func incrementByte(data []byte, r rng.Source) []byte {
	return editByte(data, r, func(b byte) byte { return b + 1 })
}

func decrementByte(data []byte, r rng.Source) []byte {
	return editByte(data, r, func(b byte) byte { return b - 1 })
}

func randomByte(data []byte, r rng.Source) []byte {
	return editByte(data, r, func(byte) byte { return byte(r.Below(256)) })
}

func insertByte(data []byte, r rng.Source) []byte {
	i := r.Between(0, len(data))
	b := byte(r.Below(256))
	return terminated(data[:i], []byte{b}, data[i:])
}

func repeatByte(data []byte, r rng.Source) []byte {
	i := r.Below(len(data))
	count := fuzzing.RepetitionLength(r)
	return terminated(data[:i+1], bytes.Repeat(data[i:i+1], count), data[i+1:])
}

func deleteByte(data []byte, r rng.Source) []byte {
	i := r.Below(len(data))
	return terminated(data[:i], data[i+1:])
}

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
	"fmt"

	"github.com/AgnopraxLab/mutkit/fuzzing"
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/rng"
)

// Flip inverts Width contiguous bytes. Shorter inputs are returned as a
// no-op copy.
type Flip struct {
	Width int
}

// NewFlip creates a flipper for 1, 2 or 4 bytes.
func NewFlip(width int) *Flip {
	return &Flip{Width: width}
}

func (f *Flip) Name() string {
	return fmt.Sprintf("afl.flip%d", f.Width)
}

func (f *Flip) CanMutate(data []byte) bool {
	return len(data) >= f.Width
}

func (f *Flip) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(f.Name(), data, 1); err != nil {
		return mutation.Result{}, err
	}
	if len(data) < f.Width {
		return mutation.Unchanged(data), nil
	}
	out := append([]byte(nil), data...)
	start := r.Between(0, len(data)-f.Width)
	for i := start; i < start+f.Width; i++ {
		out[i] ^= 0xff
	}
	return mutation.Mutated(out), nil
}

// Interesting overwrites Width bits at a random offset with a boundary
// value. Multi-byte values are stored in a random byte order.
type Interesting struct {
	Width int
}

// NewInteresting creates a mutator for 8, 16 or 32 bit values.
func NewInteresting(width int) *Interesting {
	return &Interesting{Width: width}
}

func (m *Interesting) Name() string {
	return fmt.Sprintf("afl.interesting%d", m.Width)
}

func (m *Interesting) size() int {
	return m.Width / 8
}

func (m *Interesting) CanMutate(data []byte) bool {
	return len(data) >= m.size()
}

func (m *Interesting) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(m.Name(), data, 1); err != nil {
		return mutation.Result{}, err
	}
	size := m.size()
	if len(data) < size {
		return mutation.Unchanged(data), nil
	}
	out := append([]byte(nil), data...)
	offset := r.Between(0, len(data)-size)
	switch m.Width {
	case 8:
		out[offset] = fuzzing.Interesting8(r)
	case 16:
		v := fuzzing.Interesting16(r)
		fuzzing.ByteOrder(r).PutUint16(out[offset:], v)
	case 32:
		v := fuzzing.Interesting32(r)
		fuzzing.ByteOrder(r).PutUint32(out[offset:], v)
	default:
		return mutation.Result{}, mutation.Errorf(mutation.ConfigurationError, m.Name(), "unsupported width %d", m.Width)
	}
	return mutation.Mutated(out), nil
}

// OverwriteCopy copies a block of the buffer over another position of the
// same buffer.
type OverwriteCopy struct{}

func (*OverwriteCopy) Name() string {
	return "afl.overwrite-copy"
}

func (*OverwriteCopy) CanMutate(data []byte) bool {
	return len(data) >= 2
}

func (o *OverwriteCopy) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(o.Name(), data, 1); err != nil {
		return mutation.Result{}, err
	}
	n := len(data)
	if n < 2 {
		return mutation.Unchanged(data), nil
	}
	copyLen := fuzzing.ChooseBlockLen(r, n-1)
	from := r.Below(n - copyLen + 1)
	to := r.Below(n - copyLen + 1)
	if from == to {
		return mutation.Unchanged(data), nil
	}
	out := append([]byte(nil), data...)
	copy(out[to:to+copyLen], out[from:from+copyLen])
	return mutation.Mutated(out), nil
}

// DeleteBlock removes a block of the buffer.
type DeleteBlock struct{}

func (*DeleteBlock) Name() string {
	return "afl.delete-block"
}

func (*DeleteBlock) CanMutate(data []byte) bool {
	return len(data) >= 2
}

func (d *DeleteBlock) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(d.Name(), data, 2); err != nil {
		return mutation.Result{}, err
	}
	n := len(data)
	delLen := fuzzing.ChooseBlockLen(r, n-1)
	from := r.Below(n - delLen + 1)
	out := make([]byte, 0, n-delLen)
	out = append(out, data[:from]...)
	out = append(out, data[from+delLen:]...)
	return mutation.Mutated(out), nil
}

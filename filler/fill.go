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

// Package filler turns an arbitrary byte string into a stream of random
// decisions. A Filler satisfies rng.Source, which lets go-fuzz style
// harnesses steer every choice a mutator makes.
package filler

import (
	"encoding/binary"
)

// Filler can be used to draw values from a data source.
type Filler struct {
	data    []byte
	pointer int
	usedUp  bool
}

// NewFiller creates a new Filler.
func NewFiller(data []byte) *Filler {
	if len(data) == 0 {
		data = make([]byte, 1)
	}
	return &Filler{
		data:    data,
		pointer: 0,
		usedUp:  false,
	}
}

// incPointer increments the internal pointer
// to the next position to be read.
func (f *Filler) incPointer(i int) {
	if f.pointer+i >= len(f.data) {
		f.usedUp = true
	}
	f.pointer = (f.pointer + i) % len(f.data)
}

// Byte returns a new byte.
func (f *Filler) Byte() byte {
	b := f.data[f.pointer]
	f.incPointer(1)
	return b
}

// ByteSlice returns a byteslice with `items` values.
// The source wraps around when it runs out of data.
func (f *Filler) ByteSlice(items int) []byte {
	b := make([]byte, items)
	if f.pointer+items < len(f.data) {
		copy(b, f.data[f.pointer:])
		f.incPointer(items)
		return b
	}
	for i := 0; i < items; {
		n := copy(b[i:], f.data[f.pointer:])
		i += n
		f.pointer = (f.pointer + n) % len(f.data)
	}
	f.usedUp = true
	return b
}

// Uint16 returns a new uint16.
func (f *Filler) Uint16() uint16 {
	return binary.BigEndian.Uint16(f.ByteSlice(2))
}

// Uint64 returns a new uint64.
func (f *Filler) Uint64() uint64 {
	return binary.BigEndian.Uint64(f.ByteSlice(8))
}

// Below returns a value in [0, n). Small ranges only consume a single
// byte so that short fuzz inputs still drive many decisions.
func (f *Filler) Below(n int) int {
	switch {
	case n <= 0:
		return 0
	case n <= 1<<8:
		return int(f.Byte()) % n
	case n <= 1<<16:
		return int(f.Uint16()) % n
	default:
		return int(f.Uint64() % uint64(n))
	}
}

// Between returns a value in [lo, hi].
func (f *Filler) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + f.Below(hi-lo+1)
}

// Reset resets a filler.
func (f *Filler) Reset() {
	f.pointer = 0
	f.usedUp = false
}

// UsedUp returns whether all bytes from the source have been used.
func (f *Filler) UsedUp() bool {
	return f.usedUp
}

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

// Package fuzzing holds the helpers shared by the mutation strategies:
// interesting value tables, the length choosers, a UTF-8 encoder and
// numeral extraction.
package fuzzing

import (
	"encoding/binary"

	"github.com/AgnopraxLab/mutkit/rng"
)

var (
	interesting8  = []int8{-128, -1, 0, 1, 16, 32, 64, 100, 127}
	interesting16 = []int16{-32768, -129, 128, 255, 256, 512, 1000, 1024, 4096, 32767}
	interesting32 = []int32{-2147483648, -100663046, -32769, 32768, 65535, 65536, 100663045, 2147483647}
)

func init() {
	for _, v := range interesting8 {
		interesting16 = append(interesting16, int16(v))
	}
	for _, v := range interesting16 {
		interesting32 = append(interesting32, int32(v))
	}
}

const (
	// MinGrowLimit is the starting upper bound of the length choosers.
	MinGrowLimit = 0x2
	// MaxBlockLen caps the upper bound of the length choosers.
	MaxBlockLen = 0x20000
)

// Interesting8 returns a random 8-bit boundary value.
func Interesting8(r rng.Source) byte {
	return byte(interesting8[r.Below(len(interesting8))])
}

// Interesting16 returns a random 16-bit boundary value. The table includes
// the promoted 8-bit values.
func Interesting16(r rng.Source) uint16 {
	return uint16(interesting16[r.Below(len(interesting16))])
}

// Interesting32 returns a random 32-bit boundary value. The table includes
// the promoted 8 and 16-bit values.
func Interesting32(r rng.Source) uint32 {
	return uint32(interesting32[r.Below(len(interesting32))])
}

// InterestingTableLen returns the size of the table for width bits.
func InterestingTableLen(width int) int {
	switch width {
	case 8:
		return len(interesting8)
	case 16:
		return len(interesting16)
	case 32:
		return len(interesting32)
	}
	return 0
}

// ByteOrder picks little or big endian with equal probability.
func ByteOrder(r rng.Source) binary.ByteOrder {
	if r.Below(2) == 0 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// growLimit starts at MinGrowLimit and doubles while a 2-in-3 coin says
// continue, stopping at MaxBlockLen.
func growLimit(r rng.Source) int {
	limit := MinGrowLimit
	for r.Between(0, MinGrowLimit) != 0 {
		if limit >= MaxBlockLen {
			break
		}
		limit <<= 1
	}
	return limit
}

// ChooseBlockLen chooses a block length in [1, limit]. Short blocks are
// preferred: the bound grows geometrically before the uniform draw.
func ChooseBlockLen(r rng.Source, limit int) int {
	if limit < 1 {
		return 1
	}
	n := r.Between(1, growLimit(r))
	if n > limit {
		n = limit
	}
	return n
}

// RepetitionLength chooses how often a repeated element occurs, in
// [1, bound+1] where bound follows the same geometric growth.
func RepetitionLength(r rng.Source) int {
	return r.Between(0, growLimit(r)) + 1
}

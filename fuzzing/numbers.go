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

package fuzzing

import (
	"math"
	"strconv"

	"github.com/AgnopraxLab/mutkit/rng"
)

// NumInfo is a decimal numeral found in a buffer.
type NumInfo struct {
	Value  int64
	Offset int
	Length int
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// FindNumbers returns every decimal numeral in data, in order. A '-'
// directly in front of the digits is part of the numeral. Numerals that do
// not fit an int64 are skipped.
func FindNumbers(data []byte) []NumInfo {
	var nums []NumInfo
	for i := 0; i < len(data); {
		if !isDigit(data[i]) {
			i++
			continue
		}
		start := i
		for i < len(data) && isDigit(data[i]) {
			i++
		}
		if start > 0 && data[start-1] == '-' {
			start--
		}
		v, err := strconv.ParseInt(string(data[start:i]), 10, 64)
		if err != nil {
			continue
		}
		nums = append(nums, NumInfo{Value: v, Offset: start, Length: i - start})
	}
	return nums
}

// InterestingNumber derives a new value from v: a small step, a sign flip,
// a power of two boundary or one of the 32-bit interesting values.
func InterestingNumber(r rng.Source, v int64) int64 {
	switch r.Below(11) {
	case 0:
		return v + 1
	case 1:
		return v - 1
	case 2:
		return -v
	case 3:
		return 0
	case 4:
		return 1
	case 5:
		return -1
	case 6:
		return int64(1) << uint(r.Below(63))
	case 7:
		return int64(1)<<uint(r.Below(63)) - 1
	case 8:
		return int64(1)<<uint(r.Below(63)) + 1
	case 9:
		return int64(int32(Interesting32(r)))
	default:
		if r.Below(2) == 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
}

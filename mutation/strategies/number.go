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
	"strconv"

	"github.com/AgnopraxLab/mutkit/fuzzing"
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/rng"
)

// TextualNumber rewrites one decimal numeral of the buffer with an
// interesting neighbour value.
type TextualNumber struct{}

func (*TextualNumber) Name() string {
	return "radamsa.textual-number"
}

func (*TextualNumber) CanMutate(data []byte) bool {
	return len(fuzzing.FindNumbers(data)) > 0
}

func (m *TextualNumber) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if err := mutation.CheckBuffer(m.Name(), data, 1); err != nil {
		return mutation.Result{}, err
	}
	nums := fuzzing.FindNumbers(data)
	if len(nums) == 0 {
		return mutation.Unchanged(data), nil
	}
	num := nums[r.Below(len(nums))]
	text := strconv.FormatInt(fuzzing.InterestingNumber(r, num.Value), 10)
	return mutation.Mutated(terminated(data[:num.Offset], []byte(text), data[num.Offset+num.Length:])), nil
}

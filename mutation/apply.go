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
	"errors"

	"github.com/AgnopraxLab/mutkit/rng"
	"github.com/AgnopraxLab/mutkit/testcase"
)

// Apply runs strategy on the buffer stored under key in base and writes the
// result to the same key in next. The destination is only allocated once
// the mutation succeeded, so no partial buffer escapes on error.
func Apply(strategy Strategy, base, next *testcase.Entry, key testcase.Key, r rng.Source) (Result, error) {
	op := strategy.Name()
	data, err := readBuffer(op, base, key)
	if err != nil {
		return Result{}, err
	}
	result, err := strategy.Mutate(data, r)
	if err != nil {
		return Result{}, err
	}
	if err := writeBuffer(op, next, key, result.Data); err != nil {
		return Result{}, err
	}
	return result, nil
}

func readBuffer(op string, entry *testcase.Entry, key testcase.Key) ([]byte, error) {
	if entry == nil {
		return nil, Errorf(UnexpectedError, op, "source entry is nil")
	}
	data, err := entry.GetBuffer(key)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, testcase.ErrNotAllocated):
		return nil, Errorf(UsageError, op, "%v", err)
	default:
		return nil, Errorf(UnexpectedError, op, "%v", err)
	}
}

func writeBuffer(op string, entry *testcase.Entry, key testcase.Key, data []byte) error {
	if entry == nil {
		return Errorf(UnexpectedError, op, "destination entry is nil")
	}
	err := entry.Put(key, data)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, testcase.ErrAlreadyAllocated):
		return Errorf(UsageError, op, "%v", err)
	default:
		return Errorf(UnexpectedError, op, "%v", err)
	}
}

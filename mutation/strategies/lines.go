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
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/mutation/lines"
	"github.com/AgnopraxLab/mutkit/rng"
)

// countLines validates data and returns its line count. Inputs with fewer
// than min lines are a usage error.
func countLines(op string, data []byte, min int) (int, error) {
	if err := mutation.CheckBuffer(op, data, 1); err != nil {
		return 0, err
	}
	total := lines.Count(data, 0)
	if total < min {
		return 0, mutation.Errorf(mutation.UsageError, op, "need at least %d lines, got %d", min, total)
	}
	return total, nil
}

// DuplicateLine inserts a copy of a random line right after it. A line owns
// its newline, so copying an unterminated last line joins the copy onto it:
// "one" becomes "oneone" and the line count stays the same.
type DuplicateLine struct{}

func (*DuplicateLine) Name() string {
	return "radamsa.duplicate-line"
}

func (*DuplicateLine) CanMutate(data []byte) bool {
	return lines.Count(data, 0) >= 1
}

func (m *DuplicateLine) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	total, err := countLines(m.Name(), data, 1)
	if err != nil {
		return mutation.Result{}, err
	}
	l := lines.At(data, r.Below(total), total)
	return mutation.Mutated(terminated(data[:l.End()], l.Bytes(data), data[l.End():])), nil
}

// DeleteLine removes a random line.
type DeleteLine struct{}

func (*DeleteLine) Name() string {
	return "radamsa.delete-line"
}

func (*DeleteLine) CanMutate(data []byte) bool {
	return lines.Count(data, 0) >= 1
}

func (m *DeleteLine) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	total, err := countLines(m.Name(), data, 1)
	if err != nil {
		return mutation.Result{}, err
	}
	l := lines.At(data, r.Below(total), total)
	return mutation.Mutated(terminated(data[:l.Start], data[l.End():])), nil
}

// PermuteLines shuffles all lines.
type PermuteLines struct{}

func (*PermuteLines) Name() string {
	return "radamsa.permute-lines"
}

func (*PermuteLines) CanMutate(data []byte) bool {
	return lines.Count(data, 0) >= 3
}

func (m *PermuteLines) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	if _, err := countLines(m.Name(), data, 3); err != nil {
		return mutation.Result{}, err
	}
	ls := lines.Split(data)
	// Fisher-Yates
	for i := len(ls) - 1; i > 0; i-- {
		j := r.Between(0, i)
		ls[i], ls[j] = ls[j], ls[i]
	}
	return mutation.Mutated(append(lines.Join(data, ls, 1), Terminator)), nil
}

// ReplaceLine moves a random line to a random position.
type ReplaceLine struct{}

func (*ReplaceLine) Name() string {
	return "radamsa.replace-line"
}

func (*ReplaceLine) CanMutate(data []byte) bool {
	return lines.Count(data, 0) >= 2
}

func (m *ReplaceLine) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	total, err := countLines(m.Name(), data, 2)
	if err != nil {
		return mutation.Result{}, err
	}
	ls := lines.Split(data)
	src := r.Between(0, total-1)
	dst := r.Between(0, total-2)

	moved := ls[src]
	rest := append(ls[:src:src], ls[src+1:]...)
	order := make([]lines.Line, 0, total)
	order = append(order, rest[:dst]...)
	order = append(order, moved)
	order = append(order, rest[dst:]...)
	return mutation.Mutated(append(lines.Join(data, order, 1), Terminator)), nil
}

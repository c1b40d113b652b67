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

// Package lines segments a buffer into '\n' delimited lines. A line owns
// its delimiter, so concatenating all lines in any order preserves the
// buffer length. The last line may be unterminated.
package lines

import "bytes"

// Delimiter separates lines.
const Delimiter = '\n'

// Line locates one line inside a buffer.
type Line struct {
	Start  int
	Length int
	Valid  bool
}

// End returns the index one past the last byte of the line.
func (l Line) End() int {
	return l.Start + l.Length
}

// Bytes returns the line's bytes within data.
func (l Line) Bytes(data []byte) []byte {
	if !l.Valid {
		return nil
	}
	return data[l.Start:l.End()]
}

// Count returns the number of lines in data starting at index from.
func Count(data []byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from >= len(data) {
		return 0
	}
	rest := data[from:]
	n := bytes.Count(rest, []byte{Delimiter})
	if rest[len(rest)-1] != Delimiter {
		n++
	}
	return n
}

// At returns the i-th line of data, counting from zero. total is the
// number of lines as returned by Count(data, 0); the result is invalid if
// i is outside [0, total).
func At(data []byte, i, total int) Line {
	if i < 0 || i >= total {
		return Line{}
	}
	start := 0
	for ; i > 0; i-- {
		next := bytes.IndexByte(data[start:], Delimiter)
		if next < 0 {
			return Line{}
		}
		start += next + 1
	}
	if start >= len(data) {
		return Line{}
	}
	end := bytes.IndexByte(data[start:], Delimiter)
	if end < 0 {
		return Line{Start: start, Length: len(data) - start, Valid: true}
	}
	return Line{Start: start, Length: end + 1, Valid: true}
}

// Split returns all lines of data in order.
func Split(data []byte) []Line {
	out := make([]Line, 0, Count(data, 0))
	for start := 0; start < len(data); {
		end := bytes.IndexByte(data[start:], Delimiter)
		if end < 0 {
			out = append(out, Line{Start: start, Length: len(data) - start, Valid: true})
			break
		}
		out = append(out, Line{Start: start, Length: end + 1, Valid: true})
		start += end + 1
	}
	return out
}

// Join concatenates the given lines of data in the listed order, reserving
// extra bytes of capacity for the caller to append.
func Join(data []byte, ls []Line, extra int) []byte {
	size := extra
	for _, l := range ls {
		size += l.Length
	}
	out := make([]byte, 0, size)
	for _, l := range ls {
		out = append(out, l.Bytes(data)...)
	}
	return out
}

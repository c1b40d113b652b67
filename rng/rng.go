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

// Package rng holds the random sources that are injected into every
// mutation call. Mutators never own generator state themselves.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies uniformly distributed integers.
type Source interface {
	// Below returns a value in [0, n). It returns 0 if n <= 0.
	Below(n int) int
	// Between returns a value in [lo, hi]. It returns lo if hi <= lo.
	Between(lo, hi int) int
}

// Rand is a seeded Source backed by math/rand. It is not safe for
// concurrent use; wrap it with NewLocked to share it between goroutines.
type Rand struct {
	r    *rand.Rand
	seed int64
}

// New creates a new Rand. A zero seed selects a time based seed.
func New(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{
		r:    rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

func (r *Rand) Below(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.Intn(n)
}

func (r *Rand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Intn(hi-lo+1)
}

// Locked serializes access to an underlying Source.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src so it can be shared by concurrent mutation calls.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

func (l *Locked) Below(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Below(n)
}

func (l *Locked) Between(lo, hi int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Between(lo, hi)
}

// Scripted replays a fixed list of values. Each draw consumes one value and
// clamps it into the requested range; once the script is used up every draw
// returns the lowest value of its range.
type Scripted struct {
	values []int
	pos    int
}

// Script returns a Scripted source replaying values.
func Script(values ...int) *Scripted {
	return &Scripted{values: values}
}

func (s *Scripted) next(lo, hi int) int {
	if s.pos >= len(s.values) {
		return lo
	}
	v := s.values[s.pos]
	s.pos++
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Scripted) Below(n int) int {
	if n <= 0 {
		return 0
	}
	return s.next(0, n-1)
}

func (s *Scripted) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return s.next(lo, hi)
}

// Remaining reports how many scripted values have not been drawn yet.
func (s *Scripted) Remaining() int {
	return len(s.values) - s.pos
}

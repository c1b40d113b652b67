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

// Package testcase is the in-memory buffer store a host fuzzer hands to the
// mutators: named buffers registered once at setup, read from a source
// entry and allocated exactly once on a destination entry.
package testcase

import (
	"errors"
	"fmt"
)

// TestCaseKey is the buffer name every mutator reads and writes.
const TestCaseKey = "TEST_CASE"

var (
	ErrUnknownKey       = errors.New("unknown buffer key")
	ErrNotAllocated     = errors.New("buffer not allocated")
	ErrAlreadyAllocated = errors.New("buffer already allocated")
	ErrAccessDenied     = errors.New("buffer access denied")
	ErrInvalidSize      = errors.New("invalid buffer size")
)

// AccessMode describes how a module uses a registered buffer.
type AccessMode int

const (
	Read AccessMode = 1 << iota
	Write

	ReadWrite = Read | Write
)

func (m AccessMode) String() string {
	switch m {
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	case ReadWrite:
		return "READ_WRITE"
	default:
		return fmt.Sprintf("AccessMode(%d)", int(m))
	}
}

// Key identifies a registered buffer.
type Key int

// Registry records which named buffers exist and how they may be used.
// Registration happens once at setup, never per mutation call.
type Registry struct {
	keys  map[string]Key
	names []string
	modes []AccessMode
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{keys: make(map[string]Key)}
}

// RegisterKey registers name with the given mode. Registering an existing
// name widens its access mode and returns the existing key.
func (r *Registry) RegisterKey(name string, mode AccessMode) Key {
	if k, ok := r.keys[name]; ok {
		r.modes[k] |= mode
		return k
	}
	k := Key(len(r.names))
	r.keys[name] = k
	r.names = append(r.names, name)
	r.modes = append(r.modes, mode)
	return k
}

// Lookup returns the key registered for name.
func (r *Registry) Lookup(name string) (Key, bool) {
	k, ok := r.keys[name]
	return k, ok
}

// Mode returns the access mode of k, or 0 if k is unknown.
func (r *Registry) Mode(k Key) AccessMode {
	if !r.valid(k) {
		return 0
	}
	return r.modes[k]
}

// Name returns the buffer name of k.
func (r *Registry) Name(k Key) string {
	if !r.valid(k) {
		return ""
	}
	return r.names[k]
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.names)
}

func (r *Registry) valid(k Key) bool {
	return k >= 0 && int(k) < len(r.names)
}

// NewEntry creates an entry without any allocated buffers.
func (r *Registry) NewEntry() *Entry {
	return &Entry{
		registry: r,
		buffers:  make(map[Key][]byte),
	}
}

// Entry is one test case: a set of named buffers.
type Entry struct {
	registry *Registry
	buffers  map[Key][]byte
}

// GetBuffer returns the buffer stored under k. The returned slice must be
// treated as read-only.
func (e *Entry) GetBuffer(k Key) ([]byte, error) {
	if !e.registry.valid(k) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, k)
	}
	if e.registry.modes[k]&Read == 0 {
		return nil, fmt.Errorf("%w: %s is not readable", ErrAccessDenied, e.registry.names[k])
	}
	buf, ok := e.buffers[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAllocated, e.registry.names[k])
	}
	return buf, nil
}

// BufferSize returns the size of the buffer under k, or -1 if it has not
// been allocated.
func (e *Entry) BufferSize(k Key) int {
	buf, ok := e.buffers[k]
	if !ok {
		return -1
	}
	return len(buf)
}

// AllocateBuffer allocates a zeroed buffer of size n under k. A buffer can
// only be allocated once per entry.
func (e *Entry) AllocateBuffer(k Key, n int) ([]byte, error) {
	if !e.registry.valid(k) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, k)
	}
	if e.registry.modes[k]&Write == 0 {
		return nil, fmt.Errorf("%w: %s is not writable", ErrAccessDenied, e.registry.names[k])
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if _, ok := e.buffers[k]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAllocated, e.registry.names[k])
	}
	buf := make([]byte, n)
	e.buffers[k] = buf
	return buf, nil
}

// Put allocates the buffer under k and fills it with a copy of data.
func (e *Entry) Put(k Key, data []byte) error {
	buf, err := e.AllocateBuffer(k, len(data))
	if err != nil {
		return err
	}
	copy(buf, data)
	return nil
}

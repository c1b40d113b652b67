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
	"fmt"
)

// ErrorCode classifies mutation failures.
type ErrorCode int

const (
	// UsageError means a precondition on the input was violated.
	UsageError ErrorCode = iota + 1
	// IndexOutOfRange means a seed or selection index is out of bounds.
	IndexOutOfRange
	// ConfigurationError means structured input is malformed.
	ConfigurationError
	// UnexpectedError means a missing buffer or a broken internal invariant.
	UnexpectedError
)

func (c ErrorCode) String() string {
	switch c {
	case UsageError:
		return "usage error"
	case IndexOutOfRange:
		return "index out of range"
	case ConfigurationError:
		return "configuration error"
	case UnexpectedError:
		return "unexpected error"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// Error is the error type returned by all mutators.
type Error struct {
	Code ErrorCode
	Op   string // strategy or operation that failed
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Msg)
}

// Is reports whether target is an *Error with the same code. A target with
// an Op only matches errors from that operation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// Sentinels for errors.Is.
var (
	ErrUsage           = &Error{Code: UsageError}
	ErrIndexOutOfRange = &Error{Code: IndexOutOfRange}
	ErrConfiguration   = &Error{Code: ConfigurationError}
	ErrUnexpected      = &Error{Code: UnexpectedError}
)

// Errorf builds an *Error.
func Errorf(code ErrorCode, op, format string, args ...interface{}) error {
	return &Error{Code: code, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain, or 0.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// CheckBuffer validates the common preconditions of a mutation input.
func CheckBuffer(op string, data []byte, minSize int) error {
	if data == nil {
		return Errorf(UnexpectedError, op, "input buffer is nil")
	}
	if len(data) < minSize {
		return Errorf(UsageError, op, "buffer size %d is below the minimum of %d", len(data), minSize)
	}
	return nil
}

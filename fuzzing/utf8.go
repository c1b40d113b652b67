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

import "github.com/AgnopraxLab/mutkit/rng"

// EncodeUTF8 encodes a 21-bit code point into 1 to 4 bytes. Unlike
// utf8.EncodeRune it does not replace surrogates or values above
// U+10FFFF, those are exactly the encodings a fuzzer wants to emit.
func EncodeUTF8(cp uint32) []byte {
	switch {
	case cp <= 0x7f:
		return []byte{byte(cp)}
	case cp <= 0x7ff:
		return []byte{
			0xc0 | byte(cp>>6),
			0x80 | byte(cp&0x3f),
		}
	case cp <= 0xffff:
		return []byte{
			0xe0 | byte(cp>>12),
			0x80 | byte((cp>>6)&0x3f),
			0x80 | byte(cp&0x3f),
		}
	default:
		return []byte{
			0xf0 | byte((cp>>18)&0x07),
			0x80 | byte((cp>>12)&0x3f),
			0x80 | byte((cp>>6)&0x3f),
			0x80 | byte(cp&0x3f),
		}
	}
}

// WidenByte returns the overlong two byte form of a 6-bit ASCII value.
func WidenByte(b byte) [2]byte {
	return [2]byte{0xc0, b | 0x80}
}

// IsPrintable reports whether b is printable ASCII.
func IsPrintable(b byte) bool {
	return b >= 32 && b <= 126
}

var funnyCodePoints = []uint32{
	0x0000,   // NUL
	0x007f,   // DEL
	0x0080,   // first two byte value
	0x00a0,   // no-break space
	0x07ff,   // last two byte value
	0x0800,   // first three byte value
	0x200b,   // zero width space
	0x202e,   // right-to-left override
	0xd800,   // high surrogate
	0xdfff,   // low surrogate
	0xfeff,   // byte order mark
	0xfffd,   // replacement character
	0xffff,   // noncharacter
	0x10000,  // first four byte value
	0x1f600,  // emoji
	0x10ffff, // last code point
	0x110000, // beyond the code space
}

// FunnyCodePoint returns a code point known to upset text handling.
func FunnyCodePoint(r rng.Source) uint32 {
	return funnyCodePoints[r.Below(len(funnyCodePoints))]
}

package fuzzing

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/AgnopraxLab/mutkit/rng"
)

func TestEncodeUTF8(t *testing.T) {
	tests := []struct {
		cp   uint32
		want []byte
	}{
		{0x00, []byte{0x00}},
		{'g', []byte{'g'}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0xc2, 0x80}},
		{0x7ff, []byte{0xdf, 0xbf}},
		{0x800, []byte{0xe0, 0xa0, 0x80}},
		{0xd800, []byte{0xed, 0xa0, 0x80}},
		{0xffff, []byte{0xef, 0xbf, 0xbf}},
		{0x10000, []byte{0xf0, 0x90, 0x80, 0x80}},
		{0x10ffff, []byte{0xf4, 0x8f, 0xbf, 0xbf}},
		{0x110000, []byte{0xf4, 0x90, 0x80, 0x80}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeUTF8(tt.cp), "code point %#x", tt.cp)
	}
}

func TestEncodeUTF8MatchesStdlib(t *testing.T) {
	for _, cp := range []rune{'a', 0xe9, 0x20ac, 0x1f600, 0xfeff} {
		buf := make([]byte, utf8.UTFMax)
		n := utf8.EncodeRune(buf, cp)
		assert.Equal(t, buf[:n], EncodeUTF8(uint32(cp)))
	}
}

func TestWidenByte(t *testing.T) {
	assert.Equal(t, [2]byte{0xc0, 0xe7}, WidenByte('g'))
	assert.Equal(t, [2]byte{0xc0, 0xa0}, WidenByte(' '))
}

func TestIsPrintable(t *testing.T) {
	assert.True(t, IsPrintable(' '))
	assert.True(t, IsPrintable('~'))
	assert.False(t, IsPrintable(31))
	assert.False(t, IsPrintable(127))
	assert.False(t, IsPrintable(0xff))
}

func TestFunnyCodePoint(t *testing.T) {
	assert.Equal(t, uint32(0x0000), FunnyCodePoint(rng.Script(0)))
	assert.Equal(t, uint32(0x110000), FunnyCodePoint(rng.Script(len(funnyCodePoints)-1)))

	r := rng.New(5)
	for i := 0; i < 100; i++ {
		assert.Contains(t, funnyCodePoints, FunnyCodePoint(r))
	}
}

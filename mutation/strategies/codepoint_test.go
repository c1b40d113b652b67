package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AgnopraxLab/mutkit/rng"
)

func TestWidenCodePoint(t *testing.T) {
	res := mutate(t, "radamsa.widen-codepoint", "g", rng.Script(0))
	assert.Equal(t, []byte{0xc0, 0xe7, 0x00}, res.Data)

	// first probe hits the control byte, second the letter
	res = mutate(t, "radamsa.widen-codepoint", "a\x01", rng.Script(1, 0))
	assert.Equal(t, []byte{0xc0, 0xe1, 0x01, 0x00}, res.Data)
}

func TestWidenCodePointNothingPrintable(t *testing.T) {
	m := &WidenCodePoint{}
	input := []byte{0x01, 0x02, 0x7f}
	assert.False(t, m.CanMutate(input))

	res, err := m.Mutate(input, rng.New(1))
	assert.NoError(t, err)
	assert.True(t, res.NoOp)
	assert.Equal(t, input, res.Data)
}

func TestInsertCodePoint(t *testing.T) {
	// table entry 14 is U+1F600
	res := mutate(t, "radamsa.insert-codepoint", "ab", rng.Script(1, 14))
	assert.Equal(t, []byte{'a', 0xf0, 0x9f, 0x98, 0x80, 'b', 0x00}, res.Data)

	res = mutate(t, "radamsa.insert-codepoint", "ab", rng.Script(2, 0))
	assert.Equal(t, []byte{'a', 'b', 0x00, 0x00}, res.Data)
}

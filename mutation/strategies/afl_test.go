package strategies

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/rng"
)

func TestFlip4(t *testing.T) {
	res := mutate(t, "afl.flip4", "ABCDEFGH", rng.Script(2))
	assert.False(t, res.NoOp)
	want := []byte{'A', 'B', ^byte('C'), ^byte('D'), ^byte('E'), ^byte('F'), 'G', 'H'}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Errorf("flip4 mismatch (-want +got):\n%s", diff)
	}
}

func TestFlip4Property(t *testing.T) {
	r := rng.New(42)
	f := NewFlip(4)
	for size := 4; size < 40; size++ {
		input := make([]byte, size)
		for i := range input {
			input[i] = byte(i * 7)
		}
		res, err := f.Mutate(input, r)
		require.NoError(t, err)
		require.Len(t, res.Data, size)

		var changed []int
		for i := range input {
			if input[i] != res.Data[i] {
				assert.Equal(t, input[i]^0xff, res.Data[i])
				changed = append(changed, i)
			}
		}
		require.Len(t, changed, 4)
		assert.Equal(t, changed[0]+3, changed[3])
	}
}

func TestFlipUndersized(t *testing.T) {
	input := []byte("abc")
	res, err := NewFlip(4).Mutate(input, rng.New(1))
	require.NoError(t, err)
	assert.True(t, res.NoOp)
	assert.Equal(t, input, res.Data)
	res.Data[0] = 'x'
	assert.Equal(t, byte('a'), input[0])
}

func TestFlip1And2(t *testing.T) {
	assert.Equal(t, []byte{'a', ^byte('b'), 'c'}, mutate(t, "afl.flip1", "abc", rng.Script(1)).Data)
	assert.Equal(t, []byte{^byte('a'), ^byte('b'), 'c'}, mutate(t, "afl.flip2", "abc", rng.Script(0)).Data)
}

func TestInteresting8(t *testing.T) {
	res := mutate(t, "afl.interesting8", "\x00\x00\x00\x00", rng.Script(1, 0))
	assert.Equal(t, []byte{0x00, 0x80, 0x00, 0x00}, res.Data)
}

func TestInteresting16ByteOrder(t *testing.T) {
	little := mutate(t, "afl.interesting16", "\x11\x22\x33", rng.Script(1, 0, 0))
	assert.Equal(t, []byte{0x11, 0x00, 0x80}, little.Data)

	big := mutate(t, "afl.interesting16", "\x11\x22\x33", rng.Script(1, 0, 1))
	assert.Equal(t, []byte{0x11, 0x80, 0x00}, big.Data)
}

func TestInteresting32(t *testing.T) {
	// 0x7fffffff big endian at offset 0
	res := mutate(t, "afl.interesting32", "abcdef", rng.Script(0, 7, 1))
	assert.Equal(t, []byte{0x7f, 0xff, 0xff, 0xff, 'e', 'f'}, res.Data)

	short := mutate(t, "afl.interesting32", "abc", rng.New(1))
	assert.True(t, short.NoOp)
	assert.Equal(t, []byte("abc"), short.Data)
}

func TestInterestingUnsupportedWidth(t *testing.T) {
	_, err := NewInteresting(64).Mutate([]byte("12345678"), rng.New(1))
	assert.ErrorIs(t, err, mutation.ErrConfiguration)
}

func TestOverwriteCopy(t *testing.T) {
	// block length 2, from 0, to 5
	res := mutate(t, "afl.overwrite-copy", "ABCDEFGH", rng.Script(0, 2, 0, 5))
	assert.Equal(t, []byte("ABCDEABH"), res.Data)
}

func TestOverwriteCopyOverlapping(t *testing.T) {
	// grow to 8, pick 4, from 0, to 2
	res := mutate(t, "afl.overwrite-copy", "ABCDEFGH", rng.Script(1, 1, 0, 4, 0, 2))
	assert.Equal(t, []byte("ABABCDGH"), res.Data)

	res = mutate(t, "afl.overwrite-copy", "ABCDEFGH", rng.Script(1, 1, 0, 4, 2, 0))
	assert.Equal(t, []byte("CDEFEFGH"), res.Data)
}

func TestOverwriteCopySameOffset(t *testing.T) {
	res := mutate(t, "afl.overwrite-copy", "ABCDEFGH", rng.Script(0, 1, 3, 3))
	assert.True(t, res.NoOp)
	assert.Equal(t, []byte("ABCDEFGH"), res.Data)

	single := mutate(t, "afl.overwrite-copy", "A", rng.New(1))
	assert.True(t, single.NoOp)
}

func TestOverwriteCopyKeepsLength(t *testing.T) {
	r := rng.New(8)
	input := []byte("0123456789abcdefghij")
	for i := 0; i < 500; i++ {
		res, err := (&OverwriteCopy{}).Mutate(input, r)
		require.NoError(t, err)
		require.Len(t, res.Data, len(input))
	}
}

func TestDeleteBlock(t *testing.T) {
	res := mutate(t, "afl.delete-block", "ABCDEF", rng.Script(0, 2, 1))
	assert.Equal(t, []byte("ADEF"), res.Data)

	_, err := (&DeleteBlock{}).Mutate([]byte("A"), rng.New(1))
	assert.ErrorIs(t, err, mutation.ErrUsage)

	r := rng.New(4)
	for i := 0; i < 200; i++ {
		res, err := (&DeleteBlock{}).Mutate([]byte("ABCDEF"), r)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Data)
		assert.Less(t, len(res.Data), 6)
	}
}

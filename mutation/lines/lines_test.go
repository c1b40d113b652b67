package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		input string
		from  int
		want  int
	}{
		{"", 0, 0},
		{"a", 0, 1},
		{"\n", 0, 1},
		{"4\n", 0, 1},
		{"4\n5\n6\n", 0, 3},
		{"4\n5\n6", 0, 3},
		{"4\n5\n6", 2, 2},
		{"4\n5\n6", 5, 0},
		{"\n\n\n", 0, 3},
		{"ab", -1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count([]byte(tt.input), tt.from), "%q from %d", tt.input, tt.from)
	}
}

func TestAt(t *testing.T) {
	data := []byte("one\ntwo\nthree")
	total := Count(data, 0)
	assert.Equal(t, 3, total)

	assert.Equal(t, Line{Start: 0, Length: 4, Valid: true}, At(data, 0, total))
	assert.Equal(t, Line{Start: 4, Length: 4, Valid: true}, At(data, 1, total))
	assert.Equal(t, Line{Start: 8, Length: 5, Valid: true}, At(data, 2, total))
	assert.False(t, At(data, 3, total).Valid)
	assert.False(t, At(data, -1, total).Valid)

	assert.Equal(t, []byte("two\n"), At(data, 1, total).Bytes(data))
	assert.Nil(t, Line{}.Bytes(data))
}

func TestSplitMatchesAt(t *testing.T) {
	for _, input := range []string{"", "x", "x\n", "a\nb", "a\n\nb\n", "\n\n"} {
		data := []byte(input)
		total := Count(data, 0)
		ls := Split(data)
		assert.Len(t, ls, total, "%q", input)
		for i, l := range ls {
			assert.Equal(t, At(data, i, total), l, "%q line %d", input, i)
		}
		assert.Equal(t, data, append([]byte{}, Join(data, ls, 0)...), "%q", input)
	}
}

func TestJoinReorders(t *testing.T) {
	data := []byte("a\nbb\nccc\n")
	ls := Split(data)
	out := Join(data, []Line{ls[2], ls[0], ls[1]}, 1)
	assert.Equal(t, []byte("ccc\na\nbb\n"), out)
	assert.Equal(t, len(data)+1, cap(out))
}

package strategies

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/rng"
)

func TestDuplicateLine(t *testing.T) {
	res := mutate(t, "radamsa.duplicate-line", "a\nb\nc", rng.Script(1))
	assert.Equal(t, []byte("a\nb\nb\nc\x00"), res.Data)

	res = mutate(t, "radamsa.duplicate-line", "one", rng.Script(0))
	assert.Equal(t, []byte("oneone\x00"), res.Data)
}

func TestDeleteLine(t *testing.T) {
	res := mutate(t, "radamsa.delete-line", "a\nb\nc\n", rng.Script(0))
	assert.Equal(t, []byte("b\nc\n\x00"), res.Data)

	res = mutate(t, "radamsa.delete-line", "a\nb\nc", rng.Script(2))
	assert.Equal(t, []byte("a\nb\n\x00"), res.Data)
}

func TestPermuteLines(t *testing.T) {
	// swap(2,0) then swap(1,0)
	res := mutate(t, "radamsa.permute-lines", "1\n2\n3\n", rng.Script(0, 0))
	assert.Equal(t, []byte("2\n3\n1\n\x00"), res.Data)
}

func sortedLines(s string) []string {
	out := strings.SplitAfter(s, "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	sort.Strings(out)
	return out
}

func TestPermuteLinesPreservesLines(t *testing.T) {
	input := "alpha\nbeta\ngamma\ndelta\n"
	r := rng.New(13)
	reordered := false
	for i := 0; i < 100; i++ {
		res, err := (&PermuteLines{}).Mutate([]byte(input), r)
		require.NoError(t, err)
		require.Len(t, res.Data, len(input)+1)
		out := string(res.Data[:len(input)])
		if diff := cmp.Diff(sortedLines(input), sortedLines(out)); diff != "" {
			t.Fatalf("lines changed (-want +got):\n%s", diff)
		}
		if out != input {
			reordered = true
		}
	}
	assert.True(t, reordered)
}

func TestReplaceLine(t *testing.T) {
	res := mutate(t, "radamsa.replace-line", "a\nb\nc\n", rng.Script(0, 1))
	assert.Equal(t, []byte("b\na\nc\n\x00"), res.Data)

	res = mutate(t, "radamsa.replace-line", "a\nb\nc\n", rng.Script(2, 0))
	assert.Equal(t, []byte("c\na\nb\n\x00"), res.Data)
}

func TestLineMutatorsUndersized(t *testing.T) {
	tests := []struct {
		strategy mutation.Strategy
		input    string
	}{
		{&PermuteLines{}, "a\nb\n"},
		{&ReplaceLine{}, "only\n"},
	}
	for _, tt := range tests {
		assert.False(t, tt.strategy.CanMutate([]byte(tt.input)), tt.strategy.Name())
		_, err := tt.strategy.Mutate([]byte(tt.input), rng.New(1))
		assert.ErrorIs(t, err, mutation.ErrUsage, tt.strategy.Name())
	}
}

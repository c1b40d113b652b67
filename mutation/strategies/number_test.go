package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AgnopraxLab/mutkit/rng"
)

func TestTextualNumber(t *testing.T) {
	tests := []struct {
		input  string
		script []int
		want   string
	}{
		{"x=10;", []int{0, 0}, "x=11;\x00"},
		{"-5 and 7", []int{1, 2}, "-5 and -7\x00"},
		{"-5 and 7", []int{0, 2}, "5 and 7\x00"},
		{"v 100", []int{0, 3}, "v 0\x00"},
		{"9", []int{0, 10, 0}, "9223372036854775807\x00"},
	}
	for _, tt := range tests {
		res := mutate(t, "radamsa.textual-number", tt.input, rng.Script(tt.script...))
		assert.Equal(t, []byte(tt.want), res.Data, "%q", tt.input)
	}
}

func TestTextualNumberWithoutNumerals(t *testing.T) {
	res := mutate(t, "radamsa.textual-number", "no digits here", rng.New(1))
	assert.True(t, res.NoOp)
	assert.Equal(t, []byte("no digits here"), res.Data)
}

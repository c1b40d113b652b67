package strategies

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/rng"
	"github.com/AgnopraxLab/mutkit/utils"
)

func strategy(t *testing.T, name string) mutation.Strategy {
	t.Helper()
	for _, s := range All(nil) {
		if s.Name() == name {
			return s
		}
	}
	t.Fatalf("no strategy named %s", name)
	return nil
}

func mutate(t *testing.T, name string, input string, r rng.Source) mutation.Result {
	t.Helper()
	res, err := strategy(t, name).Mutate([]byte(input), r)
	require.NoError(t, err)
	return res
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 26)
	assert.True(t, sort.StringsAreSorted(names))
	seen := make(map[string]bool)
	for _, name := range names {
		assert.False(t, seen[name], name)
		seen[name] = true
		assert.True(t, strings.HasPrefix(name, "afl.") || strings.HasPrefix(name, "radamsa."), name)
	}
}

func TestCommonInputErrors(t *testing.T) {
	for _, s := range All(nil) {
		_, err := s.Mutate(nil, rng.New(1))
		assert.ErrorIs(t, err, mutation.ErrUnexpected, s.Name())

		_, err = s.Mutate([]byte{}, rng.New(1))
		assert.ErrorIs(t, err, mutation.ErrUsage, s.Name())
		assert.False(t, s.CanMutate([]byte{}), s.Name())
	}
}

func TestTerminator(t *testing.T) {
	input := []byte("alpha 12\nbeta(gamma)\ndelta 7\n")
	r := rng.New(5)
	for _, s := range All(nil) {
		if !strings.HasPrefix(s.Name(), "radamsa.") || !s.CanMutate(input) {
			continue
		}
		for i := 0; i < 20; i++ {
			res, err := s.Mutate(input, r)
			require.NoError(t, err, s.Name())
			if res.NoOp {
				assert.Equal(t, input, res.Data, s.Name())
				continue
			}
			require.NotEmpty(t, res.Data, s.Name())
			assert.Equal(t, Terminator, res.Data[len(res.Data)-1], s.Name())
		}
	}
}

func TestInputNotModified(t *testing.T) {
	input := []byte("1(2)(3)\n4\n5 -6\n")
	orig := append([]byte(nil), input...)
	r := rng.New(9)
	for _, s := range All(nil) {
		for i := 0; i < 10; i++ {
			_, _ = s.Mutate(input, r)
		}
		require.Equal(t, orig, input, s.Name())
	}
}

func TestRegisterAll(t *testing.T) {
	e := mutation.NewEngine(nil, rng.New(1), utils.NopLogger())
	require.NoError(t, RegisterAll(e))
	assert.Len(t, e.GetStrategies(), len(Names()))

	// registering twice is rejected
	assert.Error(t, RegisterAll(e))
}

func TestRegisterAllFiltered(t *testing.T) {
	cfg := mutation.DefaultMutationConfig()
	cfg.Strategies = []string{"afl.flip4", "radamsa.delete-line"}
	e := mutation.NewEngine(cfg, rng.New(1), utils.NopLogger())
	require.NoError(t, RegisterAll(e))

	var names []string
	for _, s := range e.GetStrategies() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, cfg.Strategies, names)
}

func TestEngineNeverFailsOnSuitableStrategies(t *testing.T) {
	e := mutation.NewEngine(nil, rng.New(77), utils.NopLogger())
	require.NoError(t, RegisterAll(e))

	inputs := [][]byte{
		{0x00},
		[]byte("ab"),
		[]byte("G(IJ)"),
		[]byte("line one\nline two\nline three"),
		{0xff, 0xfe, 0x80, 0x01, 0x7f},
	}
	for _, input := range inputs {
		for i := 0; i < 200; i++ {
			res, err := e.Mutate(input)
			require.NoError(t, err, "%q", input)
			require.True(t, res.Success)
		}
	}
	stats := e.GetStats()
	assert.Equal(t, 0, stats["failures"])
}

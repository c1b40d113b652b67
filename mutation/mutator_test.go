package mutation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/mutkit/rng"
	"github.com/AgnopraxLab/mutkit/testcase"
	"github.com/AgnopraxLab/mutkit/utils"
)

// fakeStrategy appends a fixed suffix, or fails, or reports a no-op.
type fakeStrategy struct {
	name   string
	suffix string
	minLen int
	noop   bool
	fail   bool
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) CanMutate(data []byte) bool { return len(data) >= f.minLen }

func (f *fakeStrategy) Mutate(data []byte, _ rng.Source) (Result, error) {
	switch {
	case f.fail:
		return Result{}, Errorf(UnexpectedError, f.name, "forced failure")
	case f.noop:
		return Unchanged(data), nil
	}
	return Mutated(append(append([]byte(nil), data...), f.suffix...)), nil
}

func newTestEngine(t *testing.T, cfg *MutationConfig, r rng.Source, strategies ...Strategy) *Engine {
	t.Helper()
	e := NewEngine(cfg, r, utils.NopLogger())
	for _, s := range strategies {
		require.NoError(t, e.RegisterStrategy(s))
	}
	return e
}

func TestRegisterStrategy(t *testing.T) {
	e := newTestEngine(t, nil, rng.New(1), &fakeStrategy{name: "a"})
	assert.Error(t, e.RegisterStrategy(&fakeStrategy{name: "a"}))

	s, ok := e.Strategy("a")
	assert.True(t, ok)
	assert.Equal(t, "a", s.Name())
	_, ok = e.Strategy("missing")
	assert.False(t, ok)
}

func TestNewEngineNilDefaults(t *testing.T) {
	e := NewEngine(nil, nil, nil)
	require.NoError(t, e.RegisterStrategy(&fakeStrategy{name: "fake.suffix", suffix: "!"}))

	res, err := e.Mutate([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc!"), res.MutatedData)
	assert.Equal(t, "fake.suffix", res.Strategy)
}

func TestRegisterStrategySkipsDisabled(t *testing.T) {
	cfg := DefaultMutationConfig()
	cfg.Strategies = []string{"keep"}
	e := newTestEngine(t, cfg, rng.New(1), &fakeStrategy{name: "keep"}, &fakeStrategy{name: "drop"})
	require.Len(t, e.GetStrategies(), 1)
	assert.Equal(t, "keep", e.GetStrategies()[0].Name())
}

func TestEngineRegistersTestCaseKey(t *testing.T) {
	e := NewEngine(nil, nil, utils.NopLogger())
	key, ok := e.Registry().Lookup(testcase.TestCaseKey)
	require.True(t, ok)
	assert.Equal(t, key, e.TestCaseKey())
	assert.Equal(t, testcase.ReadWrite, e.Registry().Mode(key))
}

func TestEngineMutateSelectsSuitable(t *testing.T) {
	// the long strategy never accepts three bytes
	e := newTestEngine(t, nil, rng.New(3),
		&fakeStrategy{name: "short", suffix: "!"},
		&fakeStrategy{name: "long", suffix: "?", minLen: 10},
	)
	for i := 0; i < 50; i++ {
		res, err := e.Mutate([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, "short", res.Strategy)
		assert.Equal(t, []byte("abc!"), res.MutatedData)
		assert.Equal(t, []byte("abc"), res.OriginalData)
		assert.True(t, res.Success)
	}
}

func TestEngineMutateScripted(t *testing.T) {
	e := newTestEngine(t, nil, rng.Script(1, 0),
		&fakeStrategy{name: "x", suffix: "x"},
		&fakeStrategy{name: "y", suffix: "y"},
	)
	res, err := e.Mutate([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "y", res.Strategy)
	res, err = e.Mutate([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "x", res.Strategy)
}

func TestEngineMutateErrors(t *testing.T) {
	cfg := DefaultMutationConfig()
	cfg.MaxMutationSize = 4
	e := newTestEngine(t, cfg, rng.New(1), &fakeStrategy{name: "big", minLen: 3})

	_, err := e.Mutate(nil)
	assert.ErrorIs(t, err, ErrUsage)
	_, err = e.Mutate([]byte("12345"))
	assert.ErrorIs(t, err, ErrUsage)
	_, err = e.Mutate([]byte("1"))
	assert.ErrorIs(t, err, ErrUsage)
	_, err = e.MutateWith("nope", []byte("123"))
	assert.ErrorIs(t, err, ErrUsage)
}

func TestEngineStats(t *testing.T) {
	e := newTestEngine(t, nil, rng.New(1),
		&fakeStrategy{name: "ok", suffix: "1"},
		&fakeStrategy{name: "same", noop: true},
		&fakeStrategy{name: "bad", fail: true},
	)
	_, err := e.MutateWith("ok", []byte("a"))
	require.NoError(t, err)
	res, err := e.MutateWith("same", []byte("a"))
	require.NoError(t, err)
	assert.True(t, res.NoOp)
	res, err = e.MutateWith("bad", []byte("a"))
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.False(t, res.Success)
	assert.Equal(t, err, res.Error)

	stats := e.StrategyStats()
	assert.Equal(t, StrategyStats{Mutations: 1}, stats["ok"])
	assert.Equal(t, StrategyStats{NoOps: 1}, stats["same"])
	assert.Equal(t, StrategyStats{Failures: 1}, stats["bad"])

	summary := e.GetStats()
	assert.Equal(t, 3, summary["registered_strategies"])
	assert.Equal(t, 1, summary["mutations"])
	assert.Equal(t, 1, summary["noops"])
	assert.Equal(t, 1, summary["failures"])
}

func TestMutateMultiple(t *testing.T) {
	e := newTestEngine(t, nil, rng.New(1), &fakeStrategy{name: "s", suffix: "s"})
	results, err := e.MutateMultiple([]byte("a"), 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)

	_, err = e.MutateMultiple([]byte("a"), 0)
	assert.ErrorIs(t, err, ErrUsage)

	failing := newTestEngine(t, nil, rng.New(1), &fakeStrategy{name: "f", fail: true})
	results, err = failing.MutateMultiple([]byte("a"), 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLogMutations(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultMutationConfig()
	cfg.LogMutations = true
	e := NewEngine(cfg, rng.New(1), utils.NewWriterLogger(&buf, utils.LevelInfo))
	require.NoError(t, e.RegisterStrategy(&fakeStrategy{name: "s", suffix: "s"}))

	_, err := e.Mutate([]byte("ab"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "s: 2 -> 3 bytes (noop=false)")
	assert.NotContains(t, buf.String(), "Registered")
}

func TestMutateEntry(t *testing.T) {
	e := newTestEngine(t, nil, rng.New(1), &fakeStrategy{name: "s", suffix: "!"})
	base := e.Registry().NewEntry()
	next := e.Registry().NewEntry()
	require.NoError(t, base.Put(e.TestCaseKey(), []byte("seed")))

	res, err := e.MutateEntry(base, next)
	require.NoError(t, err)
	assert.Equal(t, "s", res.Strategy)

	out, err := next.GetBuffer(e.TestCaseKey())
	require.NoError(t, err)
	assert.Equal(t, []byte("seed!"), out)

	// the destination can only be filled once
	_, err = e.MutateEntry(base, next)
	assert.ErrorIs(t, err, ErrUsage)
}

package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflib/declgen/internal/extract"
	"github.com/prooflib/declgen/internal/store"
)

// Test Plan for Runner and Partition:
// - Partition produces at most 2^depth contiguous pieces whose
//   concatenation reproduces the input
// - Depth 0 is a single pass; short inputs drop empty pieces
// - Run emits records in store enumeration order for any depth
// - Run reports whether anything was emitted
// - Sink errors stop the run; extraction errors skip one declaration
// - Per-declaration progress callbacks fire for every name

func names(ss ...string) []store.Name {
	out := make([]store.Name, len(ss))
	for i, s := range ss {
		out[i] = store.Name(s)
	}
	return out
}

func TestPartition_ConcatenationReproducesInput(t *testing.T) {
	t.Parallel()

	input := names("a", "b", "c", "d", "e", "f", "g")

	for depth := 0; depth <= 4; depth++ {
		parts := Partition(input, depth)

		var flat []store.Name
		for _, p := range parts {
			require.NotEmpty(t, p)
			flat = append(flat, p...)
		}
		assert.Equal(t, input, flat, "depth %d", depth)
		assert.LessOrEqual(t, len(parts), 1<<depth, "depth %d", depth)
	}
}

func TestPartition_DepthZeroSinglePass(t *testing.T) {
	t.Parallel()

	input := names("a", "b", "c")
	parts := Partition(input, 0)
	require.Len(t, parts, 1)
	assert.Equal(t, input, parts[0])
}

func TestPartition_MorePartsThanNames(t *testing.T) {
	t.Parallel()

	input := names("a", "b")
	parts := Partition(input, 3)

	var flat []store.Name
	for _, p := range parts {
		require.NotEmpty(t, p)
		flat = append(flat, p...)
	}
	assert.Equal(t, input, flat)
}

func testStore(t *testing.T, declNames ...string) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	for i, name := range declNames {
		st.Add(&store.Decl{
			Name:       store.Name(name),
			Kind:       store.KindDef,
			ResultType: store.Expr{Raw: "ℕ"},
			Location:   &store.Location{Filename: "src/a.lean", Line: uint(i + 1)},
		})
	}
	return st
}

func TestRunner_Run_PreservesEnumerationOrder(t *testing.T) {
	t.Parallel()

	declNames := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	st := testStore(t, declNames...)
	ex := extract.NewExtractor(st, extract.RawRenderer{}, nil)

	for depth := 0; depth <= 4; depth++ {
		var got []string
		runner := NewRunner(ex, depth, nil)
		emitted, err := runner.Run(st, func(d *extract.DeclInfo) error {
			got = append(got, d.Name)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, emitted)
		assert.Equal(t, declNames, got, "depth %d", depth)
	}
}

func TestRunner_Run_NothingEmitted(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	ex := extract.NewExtractor(st, extract.RawRenderer{}, nil)
	runner := NewRunner(ex, DefaultSplitDepth, nil)

	emitted, err := runner.Run(st, func(d *extract.DeclInfo) error {
		t.Fatal("sink must not be called")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, emitted)
}

func TestRunner_Run_SinkErrorStops(t *testing.T) {
	t.Parallel()

	st := testStore(t, "a", "b", "c")
	ex := extract.NewExtractor(st, extract.RawRenderer{}, nil)
	runner := NewRunner(ex, 0, nil)

	sinkErr := errors.New("disk full")
	calls := 0
	_, err := runner.Run(st, func(d *extract.DeclInfo) error {
		calls++
		if calls == 2 {
			return sinkErr
		}
		return nil
	})
	require.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 2, calls)
}

type countingProgress struct {
	started   int
	declNames []string
	completed int
}

func (c *countingProgress) OnStart(total int)      { c.started = total }
func (c *countingProgress) OnDecl(name string)     { c.declNames = append(c.declNames, name) }
func (c *countingProgress) OnComplete(emitted int) { c.completed = emitted }

func TestRunner_Run_ProgressCallbacks(t *testing.T) {
	t.Parallel()

	st := testStore(t, "a", "b", "c")
	// Internal declaration is counted by progress but not emitted.
	st.Add(&store.Decl{
		Name:       "c._aux",
		Kind:       store.KindDef,
		ResultType: store.Expr{Raw: "ℕ"},
		Location:   &store.Location{Filename: "src/a.lean", Line: 9},
	})

	ex := extract.NewExtractor(st, extract.RawRenderer{}, nil)
	progress := &countingProgress{}
	runner := NewRunner(ex, 1, progress)

	emitted, err := runner.Run(st, func(d *extract.DeclInfo) error { return nil })
	require.NoError(t, err)
	assert.True(t, emitted)

	assert.Equal(t, 4, progress.started)
	assert.Equal(t, []string{"a", "b", "c", "c._aux"}, progress.declNames)
	assert.Equal(t, 3, progress.completed)
}

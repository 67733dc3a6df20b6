package dataset

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"linematch/internal/pkg/search"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func requireGrep(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("grep"); err != nil {
		t.Skip("grep not installed")
	}
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(line + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestStaticLookup(t *testing.T) {
	path := writeDataset(t, "alpha\nbeta\n")
	store, err := NewStaticStore(path, search.AlgorithmSet)
	require.NoError(t, err)

	res, err := store.Lookup(context.Background(), "alpha")
	require.NoError(t, err)
	require.True(t, res.Matched)

	res, err = store.Lookup(context.Background(), "gamma")
	require.NoError(t, err)
	require.False(t, res.Matched)
}

func TestStaticSnapshotIgnoresAppends(t *testing.T) {
	for _, alg := range []search.Algorithm{
		search.AlgorithmSet,
		search.AlgorithmList,
		search.AlgorithmBinary,
		search.AlgorithmMmap,
		search.AlgorithmGrep,
	} {
		t.Run(string(alg), func(t *testing.T) {
			if alg == search.AlgorithmGrep {
				requireGrep(t)
			}
			path := writeDataset(t, "alpha\n")
			store, err := NewStaticStore(path, alg)
			require.NoError(t, err)

			res, err := store.Lookup(context.Background(), "gamma")
			require.NoError(t, err)
			require.False(t, res.Matched)

			appendLine(t, path, "gamma")

			res, err = store.Lookup(context.Background(), "gamma")
			require.NoError(t, err)
			require.False(t, res.Matched, "cached store must not see appends")
		})
	}
}

func TestDynamicSeesAppendOnNextLookup(t *testing.T) {
	for _, alg := range []search.Algorithm{
		search.AlgorithmSet,
		search.AlgorithmList,
		search.AlgorithmMmap,
		search.AlgorithmGrep,
	} {
		t.Run(string(alg), func(t *testing.T) {
			if alg == search.AlgorithmGrep {
				requireGrep(t)
			}
			path := writeDataset(t, "alpha\n")
			store, err := NewDynamicStore(path, alg)
			require.NoError(t, err)

			res, err := store.Lookup(context.Background(), "gamma")
			require.NoError(t, err)
			require.False(t, res.Matched)

			appendLine(t, path, "gamma")

			res, err = store.Lookup(context.Background(), "gamma")
			require.NoError(t, err)
			require.True(t, res.Matched, "dynamic store must see the append immediately")
		})
	}
}

func TestStaticMissingFileFailsConstruction(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent.txt")
	for _, alg := range []search.Algorithm{
		search.AlgorithmSet,
		search.AlgorithmList,
		search.AlgorithmBinary,
		search.AlgorithmMmap,
		search.AlgorithmGrep,
	} {
		_, err := NewStaticStore(absent, alg)
		require.Errorf(t, err, "algorithm %s", alg)
	}
}

func TestDynamicMissingFileFailsPerLookup(t *testing.T) {
	path := writeDataset(t, "alpha\n")
	store, err := NewDynamicStore(path, search.AlgorithmSet)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = store.Lookup(context.Background(), "alpha")
	require.Error(t, err, "missing dataset is a fault, not a miss")

	// The store recovers once the file is back; the failure was local to
	// the one lookup.
	require.NoError(t, os.WriteFile(path, []byte("alpha\n"), 0o644))
	res, err := store.Lookup(context.Background(), "alpha")
	require.NoError(t, err)
	require.True(t, res.Matched)
}

func TestDynamicRejectsBinary(t *testing.T) {
	_, err := NewDynamicStore(writeDataset(t, "alpha\n"), search.AlgorithmBinary)
	require.ErrorIs(t, errors.Cause(err), ErrBinaryRequiresSnapshot)
}

func TestUnknownAlgorithm(t *testing.T) {
	path := writeDataset(t, "alpha\n")
	_, err := NewStaticStore(path, "bloom")
	require.ErrorIs(t, errors.Cause(err), ErrUnknownAlgorithm)
	_, err = NewDynamicStore(path, "bloom")
	require.ErrorIs(t, errors.Cause(err), ErrUnknownAlgorithm)
}

func TestLookupIdempotent(t *testing.T) {
	path := writeDataset(t, "alpha\nbeta\n")
	store, err := New(path, search.AlgorithmSet, false)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		res, err := store.Lookup(context.Background(), "beta")
		require.NoError(t, err)
		require.True(t, res.Matched)
	}
}

func TestLookupTrimsPadding(t *testing.T) {
	path := writeDataset(t, "alpha\n")
	store, err := New(path, search.AlgorithmSet, true)
	require.NoError(t, err)
	res, err := store.Lookup(context.Background(), "alpha\r\x00\x00")
	require.NoError(t, err)
	require.True(t, res.Matched)
}

func TestReadLines(t *testing.T) {
	path := writeDataset(t, "alpha\r\nbeta\x00\x00\n\ngamma")
	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "", "gamma"}, lines)
}

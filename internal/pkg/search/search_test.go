package search

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func trimmedLines(content string) []string {
	if content == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	lines := make([]string, len(raw))
	for i := range raw {
		lines[i] = Trim(raw[i])
	}
	return lines
}

// strategies builds every algorithm over the same dataset content.
func strategies(t *testing.T, content string) map[Algorithm]Strategy {
	t.Helper()
	path := writeDataset(t, content)
	lines := trimmedLines(content)
	mm, err := NewMmap(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, mm.Close()) })
	out := map[Algorithm]Strategy{
		AlgorithmSet:    NewSet(lines),
		AlgorithmList:   NewList(lines),
		AlgorithmBinary: NewBinary(lines),
		AlgorithmMmap:   mm,
	}
	if _, err := exec.LookPath("grep"); err == nil {
		out[AlgorithmGrep] = NewGrep(path)
	}
	return out
}

func TestStrategiesAgree(t *testing.T) {
	content := "zebra\nalpha\n10;0;1;26;0;8;3;0;\nbeta\n"
	cases := []struct {
		needle string
		want   bool
	}{
		{"alpha", true},
		{"zebra", true},
		{"beta", true},
		{"10;0;1;26;0;8;3;0;", true},
		{"gamma", false},
		{"alph", false},
		{"alphaa", false},
		{"10;0;1;26;0;8;3;0", false},
		{"", false},
	}
	all := strategies(t, content)
	for alg, s := range all {
		for _, tc := range cases {
			got, err := s.Query(tc.needle)
			require.NoError(t, err)
			require.Equalf(t, tc.want, got, "algorithm %s query %q", alg, tc.needle)
		}
	}
}

func TestSubstringNeverMatches(t *testing.T) {
	// "alpha" is a suffix of the first line and a prefix of the second;
	// neither may count as a whole-line match.
	for alg, s := range strategies(t, "xalpha\nalphax\n") {
		got, err := s.Query("alpha")
		require.NoError(t, err)
		require.Falsef(t, got, "algorithm %s matched a substring", alg)
	}
}

func TestEmptyDataset(t *testing.T) {
	for alg, s := range strategies(t, "") {
		got, err := s.Query("anything")
		require.NoError(t, err)
		require.Falsef(t, got, "algorithm %s matched against an empty dataset", alg)
	}
}

func TestEmptyLineInDataset(t *testing.T) {
	for alg, s := range strategies(t, "alpha\n\nbeta\n") {
		got, err := s.Query("")
		require.NoError(t, err)
		require.Truef(t, got, "algorithm %s missed the empty line", alg)
	}
}

func TestTrimStripsPaddingOnly(t *testing.T) {
	require.Equal(t, "alpha", Trim("alpha\r\n"))
	require.Equal(t, "alpha", Trim("alpha\x00\x00"))
	require.Equal(t, "alpha ", Trim("alpha \n"))
	require.Equal(t, " alpha", Trim(" alpha"))
	require.Equal(t, "", Trim("\r\n\x00"))
}

func TestMmapDatasetWithoutTrailingNewline(t *testing.T) {
	path := writeDataset(t, "alpha\nbeta")
	mm, err := NewMmap(path)
	require.NoError(t, err)
	defer mm.Close()
	got, err := mm.Query("beta")
	require.NoError(t, err)
	require.True(t, got)
}

func TestMmapMissingFile(t *testing.T) {
	_, err := NewMmap(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func TestGrepMissingFile(t *testing.T) {
	if _, err := exec.LookPath("grep"); err != nil {
		t.Skip("grep not installed")
	}
	_, err := NewGrep(filepath.Join(t.TempDir(), "absent.txt")).Query("alpha")
	require.Error(t, err)
}

func TestBinaryHandlesUnsortedInput(t *testing.T) {
	s := NewBinary([]string{"mu", "alpha", "zeta", "beta"})
	for _, needle := range []string{"mu", "alpha", "zeta", "beta"} {
		got, err := s.Query(needle)
		require.NoError(t, err)
		require.True(t, got, needle)
	}
	got, err := s.Query("omega")
	require.NoError(t, err)
	require.False(t, got)
}

func TestAlgorithmValid(t *testing.T) {
	for _, alg := range Algorithms() {
		require.True(t, alg.Valid())
	}
	require.False(t, Algorithm("bloom").Valid())
	require.False(t, Algorithm("").Valid())
}

package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cyclic/internal/fileutil"
)

// #nosec G304 -- test helper with controlled paths from t.TempDir()
func contents(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		perm     os.FileMode
	}{
		{name: "new file", perm: 0o600},
		{name: "replaces contents", existing: "version: 0", perm: 0o600},
		{name: "applies perm on replace", existing: "old", perm: 0o640},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			target := filepath.Join(t.TempDir(), "properties.json")
			if tc.existing != "" {
				require.NoError(t, os.WriteFile(target, []byte(tc.existing), 0o644)) //nolint:gosec // G306: test file
			}

			require.NoError(t, fileutil.WriteAtomic(target, []byte("version: 1"), tc.perm))
			assert.Equal(t, "version: 1", contents(t, target))

			info, err := os.Stat(target)
			require.NoError(t, err)
			assert.Equal(t, tc.perm, info.Mode().Perm())

			stray, err := filepath.Glob(target + ".tmp-*")
			require.NoError(t, err)
			assert.Empty(t, stray, "temp file left behind")
		})
	}
}

func TestWriteAtomic_ReadOnlyDirKeepsOriginal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not restrict root")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0o600))

	require.NoError(t, os.Chmod(dir, 0o500)) //nolint:gosec // G302: read-only directory under test
	t.Cleanup(func() {
		_ = os.Chmod(dir, 0o700) //nolint:gosec // G302: restore for TempDir removal
	})

	require.Error(t, fileutil.WriteAtomic(target, []byte("replacement"), 0o600))
	assert.Equal(t, "original", contents(t, target))
}

func TestWriteAtomicMkdir_CreatesParents(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "home", ".cyclic", "config.yaml")
	require.NoError(t, fileutil.WriteAtomicMkdir(target, []byte("code: {}"), 0o600, 0o750))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "code: {}", contents(t, target))
}

func TestWriteAtomic_EmptyPath(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, fileutil.WriteAtomic("", []byte("data"), 0o600), fileutil.ErrEmptyPath)
	require.ErrorIs(t, fileutil.WriteAtomicMkdir("", []byte("data"), 0o600, 0o750), fileutil.ErrEmptyPath)
}

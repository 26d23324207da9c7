package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "staging", "sub")

	got, err := EnsureDir(dir)
	require.NoError(t, err)

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"/tmp/abs.txt", "abs.txt"},
		{"dir\\sub\\win.txt", "win.txt"},
		{"nul\x00byte.bin", "nulbyte.bin"},
		{"..", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in), "input %q", tt.in)
	}
}

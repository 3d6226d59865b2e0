package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/HendryAvila/xmind-mcp/internal/mindmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- SanitizeFilename ---

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"My:Map", "My-Map"},
		{`a\b/c:d*e?f"g<h>i|j`, "a-b-c-d-e-f-g-h-i-j"},
		{"with spaces ok", "with spaces ok"},
		{"思维导图 · plan", "思维导图 · plan"},
		{"émoji 🚀?", "émoji 🚀-"},
		{"dots.are.fine", "dots.are.fine"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{"My:Map", `x\y/z`, "<<>>", "already-clean", "日本:語"}
	for _, in := range inputs {
		once := SanitizeFilename(in)
		assert.Equal(t, once, SanitizeFilename(once), in)
	}
}

func TestSanitizeFilename_NoReservedCharsRemain(t *testing.T) {
	got := SanitizeFilename(`\/:*?"<>|`)
	assert.Equal(t, "---------", got)
	assert.NotContains(t, got, ":")
}

// --- Resolve precedence ---

func TestResolve_RequestFilePathWins(t *testing.T) {
	r := NewResolver("/cfg/dir", "/tmp/scratch")
	got, err := r.Resolve("ignored name", "/a/b.xmind")
	require.NoError(t, err)
	assert.Equal(t, "/a/b.xmind", got)
}

func TestResolve_RequestDirectory(t *testing.T) {
	r := NewResolver("/cfg/dir", "/tmp/scratch")
	got, err := r.Resolve("notes", "/req/out")
	require.NoError(t, err)
	assert.Equal(t, "/req/out/notes.xmind", got)
}

func TestResolve_ConfiguredDirectory(t *testing.T) {
	r := NewResolver("/cfg/dir", "/tmp/scratch")
	got, err := r.Resolve("My:Map", "")
	require.NoError(t, err)
	assert.Equal(t, "/cfg/dir/My-Map.xmind", got)
}

func TestResolve_ConfiguredFilePath(t *testing.T) {
	r := NewResolver("/cfg/fixed.xmind", "/tmp/scratch")
	got, err := r.Resolve("whatever", "")
	require.NoError(t, err)
	assert.Equal(t, "/cfg/fixed.xmind", got)
}

func TestResolve_ScratchFallback(t *testing.T) {
	r := NewResolver("", "/tmp/scratch")
	got, err := r.Resolve("a|b", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/scratch/a-b.xmind", got)
}

func TestResolve_DefaultScratchDir(t *testing.T) {
	r := NewResolver("", "")
	assert.Equal(t, filepath.Join(os.TempDir(), ScratchDirName), r.ScratchDir)
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	r := NewResolver("", "/tmp/scratch")
	got, err := r.Resolve("doc", "relative/out")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "doc.xmind", filepath.Base(got))
}

func TestResolve_ExtensionIsCaseSensitive(t *testing.T) {
	r := NewResolver("", "/tmp/scratch")
	got, err := r.Resolve("doc", "/out/Upper.XMIND")
	require.NoError(t, err)
	assert.Equal(t, "/out/Upper.XMIND/doc.xmind", got)
}

// --- Prepare ---

func TestPrepare_CreatesAncestors(t *testing.T) {
	base := filepath.Join(t.TempDir(), "a", "b", "c")
	r := NewResolver("", t.TempDir())

	got, err := r.Prepare("map", base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "map.xmind"), got)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(got)
	assert.True(t, os.IsNotExist(err), "Prepare must not create the document itself")
}

func TestPrepare_Idempotent(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir, t.TempDir())

	first, err := r.Prepare("x", "")
	require.NoError(t, err)
	second, err := r.Prepare("x", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPrepare_FileSystemError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	r := NewResolver("", dir)
	_, err := r.Prepare("doc", filepath.Join(blocker, "sub"))

	var fsErr *mindmap.FileSystemError
	require.True(t, errors.As(err, &fsErr), "got %T", err)
	assert.Equal(t, "create directory", fsErr.Op)
}

func TestPrepare_InjectedFailure(t *testing.T) {
	denied := errors.New("permission denied")
	r := NewResolver("", "/tmp/scratch")
	r.mkdirAll = func(string, os.FileMode) error { return denied }

	_, err := r.Prepare("doc", "/nope")
	assert.ErrorIs(t, err, denied)
}

func TestEnsureScratchDir(t *testing.T) {
	scratch := filepath.Join(t.TempDir(), ScratchDirName)
	r := NewResolver("", scratch)

	require.NoError(t, r.EnsureScratchDir())
	require.NoError(t, r.EnsureScratchDir())

	info, err := os.Stat(scratch)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

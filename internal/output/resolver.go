// Package output decides where a generated document is written.
//
// The base location comes from, in order: the request's outputPath, the
// process-wide configured path, and the scratch directory. A base ending
// in the document extension is a complete file path; anything else is a
// directory that receives "<sanitized filename>.xmind".
package output

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/xmind-mcp/internal/mindmap"
	"github.com/HendryAvila/xmind-mcp/internal/xmind"
)

// reservedChars are illegal in a path component on at least one common
// file system.
const reservedChars = `\/:*?"<>|`

// ScratchDirName is the directory created under the OS temp root.
const ScratchDirName = "xmind-generator-mcp"

// DefaultScratchDir returns <os temp dir>/xmind-generator-mcp.
func DefaultScratchDir() string {
	return filepath.Join(os.TempDir(), ScratchDirName)
}

// SanitizeFilename replaces every reserved character with a hyphen.
// All other runes, including spaces and non-ASCII text, are kept.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(reservedChars, r) {
			return '-'
		}
		return r
	}, name)
}

// Resolver computes output paths. It is built once from configuration and
// is safe to share between requests.
type Resolver struct {
	ConfiguredPath string
	ScratchDir     string

	mkdirAll func(path string, perm os.FileMode) error
}

// NewResolver creates a Resolver. An empty scratchDir means DefaultScratchDir.
func NewResolver(configuredPath, scratchDir string) *Resolver {
	if scratchDir == "" {
		scratchDir = DefaultScratchDir()
	}
	return &Resolver{
		ConfiguredPath: configuredPath,
		ScratchDir:     scratchDir,
		mkdirAll:       os.MkdirAll,
	}
}

// Base returns the location chosen by precedence, before any joining.
func (r *Resolver) Base(requestPath string) string {
	switch {
	case requestPath != "":
		return requestPath
	case r.ConfiguredPath != "":
		return r.ConfiguredPath
	default:
		return r.ScratchDir
	}
}

// Resolve returns the absolute document path without touching the disk.
func (r *Resolver) Resolve(filename, requestPath string) (string, error) {
	base := r.Base(requestPath)

	path := base
	if !strings.HasSuffix(base, xmind.Extension) {
		path = filepath.Join(base, SanitizeFilename(filename)+xmind.Extension)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &mindmap.FileSystemError{Op: "resolve path", Path: path, Err: err}
	}
	return abs, nil
}

// Prepare resolves the path and creates every missing ancestor directory.
// Directories created before a failure are left in place.
func (r *Resolver) Prepare(filename, requestPath string) (string, error) {
	path, err := r.Resolve(filename, requestPath)
	if err != nil {
		return "", err
	}
	if err := r.ensureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, nil
}

// EnsureScratchDir creates the scratch directory if it does not exist.
func (r *Resolver) EnsureScratchDir() error {
	return r.ensureDir(r.ScratchDir)
}

func (r *Resolver) ensureDir(dir string) error {
	mkdir := r.mkdirAll
	if mkdir == nil {
		mkdir = os.MkdirAll
	}
	if err := mkdir(dir, 0o755); err != nil {
		return &mindmap.FileSystemError{Op: "create directory", Path: dir, Err: err}
	}
	return nil
}

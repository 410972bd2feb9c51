package locate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// candidates are the file names probed inside a directory argument, in
// preference order.
var candidates = []string{
	"CLAUDE.md",
	"CLAUDE.local.md",
	filepath.Join(".claude", "CLAUDE.md"),
}

// maxFileBytes caps how large a file this tool will load. CLAUDE.md files
// are hand-written instructions; anything bigger is a mistake.
const maxFileBytes = 10 << 20 // 10 MiB

// File holds a located CLAUDE.md and its content.
type File struct {
	Path    string
	Content string
	Size    int
}

// Resolve maps a file-or-directory argument to the path to load. A file
// argument passes through untouched; a directory is searched for the first
// candidate present.
func Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range candidates {
		candidate := filepath.Join(path, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no CLAUDE.md found in %s (tried %s)", path, strings.Join(candidates, ", "))
}

// Load resolves path and reads the file. Files over the size cap and files
// containing NUL bytes are rejected before any content reaches a provider.
func Load(path string) (*File, error) {
	resolved, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", resolved, err)
	}
	if info.Size() > maxFileBytes {
		return nil, fmt.Errorf("%s is %d bytes, over the %d byte limit", resolved, info.Size(), maxFileBytes)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%s is not a text file", resolved)
	}

	return &File{
		Path:    resolved,
		Content: string(data),
		Size:    len(data),
	}, nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seliware/mocksite/pkg/render"
)

// FileLoader reads template documents from a directory. Every Load is a
// cold read: the file handle is released as soon as the text is in
// memory, and nothing is cached between calls, so edited templates show
// up on the next request.
type FileLoader struct {
	dir string
}

// NewFileLoader creates a loader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{dir: dir}
}

// Load returns the full text of the named template file. Logical names
// are flat: any path components are stripped so a crafted name cannot
// escape the template directory.
func (l *FileLoader) Load(name string) (string, error) {
	path := filepath.Join(l.dir, filepath.Base(name))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", render.ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return string(data), nil
}

// Package source provides the places device library files are read from: a
// local directory tree or a GitHub repository directory.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/homed-tools/hddl/internal/catalog"
)

// Dir lists *.json files under Root recursively
type Dir struct {
	Root string
}

// NewDir creates a directory source
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// List walks Root and returns every *.json file in lexical order
func (d *Dir) List(ctx context.Context) ([]catalog.FileRef, error) {
	info, err := os.Stat(d.Root)
	if err != nil {
		return nil, fmt.Errorf("path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", d.Root)
	}

	var refs []catalog.FileRef
	err = filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.HasSuffix(entry.Name(), ".json") {
			refs = append(refs, catalog.FileRef{Name: entry.Name(), Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// Read returns the content of the file at ref.Path
func (d *Dir) Read(ctx context.Context, ref catalog.FileRef) (string, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

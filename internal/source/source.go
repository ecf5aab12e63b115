// Package source opens the raw CSV files a dataset is built from.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/i474232898/airport-weather/internal/weather"
)

// Source abstracts where data files live (local directory, HTTP server).
type Source interface {
	Name() string
	Open(ctx context.Context, file string) (io.ReadCloser, error)
}

// Dir reads files from a local directory.
type Dir struct {
	root string
}

// NewDir creates a Source rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{root: dir}
}

func (d *Dir) Name() string {
	return "dir:" + d.root
}

// Open opens root/file. A missing file is reported as weather.ErrMissingFile.
func (d *Dir) Open(ctx context.Context, file string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(d.root, file)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", weather.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

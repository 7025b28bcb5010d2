package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes exports into a local directory.
type FileSink struct {
	dir string
}

// NewFileSink creates the directory if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

func (f *FileSink) Name() string { return "file" }

// Put writes data to dir/key through a temporary file so readers never see
// a partial export.
func (f *FileSink) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(f.dir, filepath.Base(key))
	tmp, err := os.CreateTemp(f.dir, ".export-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Package fuse serves one database table as a read-only filesystem: a
// flat root directory whose files are rows. Names come from the name
// column, content from the data column, and sizes are computed from
// live row state on every request.
package fuse

import (
	"context"
	"io"
	"log/slog"

	"bazil.org/fuse/fs"
)

// RowSource is the slice of the row store the filesystem consumes.
// *sqlutils.Store implements it; tests substitute an in-memory one.
type RowSource interface {
	// ForEachName streams every name value in ascending order.
	ForEachName(ctx context.Context, fn func(name string) error) error
	// SizeOf reports the content byte length for the row named key.
	// found is false when no row matches; err only reports storage
	// failures.
	SizeOf(ctx context.Context, key string) (size uint64, found bool, err error)
	// ContentOf fetches the content bytes for the row named key.
	ContentOf(ctx context.Context, key string) (data []byte, found bool, err error)
}

// FS represents the filesystem itself.
type FS struct {
	source RowSource
	logger *slog.Logger
}

var _ fs.FS = (*FS)(nil)

// New builds a filesystem over source. A nil logger discards logs.
func New(source RowSource, logger *slog.Logger) *FS {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FS{source: source, logger: logger}
}

// Root returns the only directory.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{source: f.source, logger: f.logger}, nil
}

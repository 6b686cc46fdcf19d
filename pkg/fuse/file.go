package fuse

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// File is one row exposed as a read-only regular file. It holds only
// the row key; every operation re-reads live row state, so reported
// sizes and read bytes always reflect the table as it is now.
type File struct {
	source RowSource
	logger *slog.Logger
	key    string
}

var _ fs.Node = (*File)(nil)
var _ = fs.NodeOpener(&File{})

// Attr reports the row's current metadata. Size is the live byte
// length of the content column; a row deleted since lookup reports
// ENOENT.
func (f *File) Attr(ctx context.Context, attr *fuse.Attr) error {
	size, found, err := f.source.SizeOf(ctx, f.key)
	if err != nil {
		f.logger.ErrorContext(ctx, "row attr failed", "key", f.key, "error", err)
		return errnoFor(err)
	}
	if !found {
		return fuse.ENOENT
	}

	attr.Valid = attrValid
	attr.Inode = fs.GenerateDynamicInode(rootInode, f.key)
	attr.Mode = 0o444
	attr.Nlink = 1
	attr.Size = size
	attr.Uid = uint32(os.Getuid())
	attr.Gid = uint32(os.Getgid())
	return nil
}

// Open hands out a read handle. Any write intent is rejected with
// EROFS before touching the database; a vanished row reports ENOENT.
// The handle requests direct IO so reads always see live content.
func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, res *fuse.OpenResponse) (fs.Handle, error) {
	if !req.Flags.IsReadOnly() || req.Flags&fuse.OpenTruncate != 0 || req.Flags&fuse.OpenAppend != 0 {
		return nil, fuse.Errno(syscall.EROFS)
	}

	_, found, err := f.source.SizeOf(ctx, f.key)
	if err != nil {
		f.logger.ErrorContext(ctx, "row open failed", "key", f.key, "error", err)
		return nil, errnoFor(err)
	}
	if !found {
		return nil, fuse.ENOENT
	}

	res.Flags |= fuse.OpenDirectIO
	return &FileHandle{source: f.source, logger: f.logger, key: f.key}, nil
}

// FileHandle reads row content. It keeps no state beyond the key, so
// an open handle never serves stale bytes.
type FileHandle struct {
	source RowSource
	logger *slog.Logger
	key    string
}

var _ fs.Handle = (*FileHandle)(nil)
var _ = fs.HandleReader(&FileHandle{})

// Read returns the requested slice of the row's content, clamped to
// the content's current length. Reads at or past the end return zero
// bytes, which direct IO surfaces as EOF.
func (fh *FileHandle) Read(ctx context.Context, req *fuse.ReadRequest, res *fuse.ReadResponse) error {
	data, found, err := fh.source.ContentOf(ctx, fh.key)
	if err != nil {
		fh.logger.ErrorContext(ctx, "row read failed", "key", fh.key, "error", err)
		return errnoFor(err)
	}
	if !found {
		return fuse.ENOENT
	}

	res.Data = sliceRange(data, req.Offset, req.Size)
	return nil
}

var _ = fs.HandleWriter(&FileHandle{})

// Write always fails; handles are handed out read-only.
func (fh *FileHandle) Write(ctx context.Context, req *fuse.WriteRequest, res *fuse.WriteResponse) error {
	return fuse.Errno(syscall.EROFS)
}

var _ fs.NodeSetattrer = (*File)(nil)

// Setattr always fails; truncation and time or mode changes would all
// mutate the row.
func (f *File) Setattr(ctx context.Context, req *fuse.SetattrRequest, res *fuse.SetattrResponse) error {
	return fuse.Errno(syscall.EROFS)
}

var _ fs.HandleReleaser = (*FileHandle)(nil)

// Release has nothing to clean up; handles hold no resources.
func (fh *FileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return nil
}

// sliceRange extracts [offset, offset+size) from data, clamped to the
// data's bounds.
func sliceRange(data []byte, offset int64, size int) []byte {
	if offset < 0 || size <= 0 || offset >= int64(len(data)) {
		return nil
	}
	end := offset + int64(size)
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return data[offset:end]
}

package fuse

import (
	"context"
	"log/slog"
	"os"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/rowfs/rowfs/pkg/rowpath"
)

// rootInode is the fixed inode of the filesystem root.
const rootInode = 1

// attrValid bounds how long the kernel may cache attributes. Content
// reads bypass the page cache entirely, so this only delays visibility
// of size changes.
const attrValid = time.Second

// Dir is the root directory, the only directory on the filesystem.
type Dir struct {
	source RowSource
	logger *slog.Logger
}

var _ fs.Node = (*Dir)(nil)
var _ = fs.NodeStringLookuper(&Dir{})
var _ = fs.HandleReadDirAller(&Dir{})

// Attr reports the root's fixed metadata: traverse-and-read only,
// owned by the serving process, link count 2 for self and parent.
func (d *Dir) Attr(ctx context.Context, attr *fuse.Attr) error {
	attr.Valid = attrValid
	attr.Inode = rootInode
	attr.Mode = os.ModeDir | 0o555
	attr.Nlink = 2
	attr.Uid = uint32(os.Getuid())
	attr.Gid = uint32(os.Getgid())
	return nil
}

// Lookup resolves one name under the root. Names that are not
// digit-only row keys can never match a row and are rejected without
// touching the database; everything else is probed live.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if !rowpath.ValidKey(name) {
		return nil, fuse.ENOENT
	}

	_, found, err := d.source.SizeOf(ctx, name)
	if err != nil {
		d.logger.ErrorContext(ctx, "row lookup failed", "key", name, "error", err)
		return nil, errnoFor(err)
	}
	if !found {
		return nil, fuse.ENOENT
	}
	return &File{source: d.source, logger: d.logger, key: name}, nil
}

var _ fs.NodeMkdirer = (*Dir)(nil)
var _ fs.NodeCreater = (*Dir)(nil)
var _ fs.NodeRemover = (*Dir)(nil)
var _ fs.NodeRenamer = (*Dir)(nil)
var _ fs.NodeSetattrer = (*Dir)(nil)

// Mkdir always fails; the tree is flat and read-only.
func (d *Dir) Mkdir(ctx context.Context, req *fuse.MkdirRequest) (fs.Node, error) {
	return nil, fuse.Errno(syscall.EROFS)
}

// Create always fails; rows cannot be added through the filesystem.
func (d *Dir) Create(ctx context.Context, req *fuse.CreateRequest, res *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	return nil, nil, fuse.Errno(syscall.EROFS)
}

// Remove always fails; rows cannot be deleted through the filesystem.
func (d *Dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	return fuse.Errno(syscall.EROFS)
}

// Rename always fails; row names belong to the table.
func (d *Dir) Rename(ctx context.Context, req *fuse.RenameRequest, newDir fs.Node) error {
	return fuse.Errno(syscall.EROFS)
}

// Setattr always fails; the root's attributes are fixed.
func (d *Dir) Setattr(ctx context.Context, req *fuse.SetattrRequest, res *fuse.SetattrResponse) error {
	return fuse.Errno(syscall.EROFS)
}

// ReadDirAll lists the self and parent entries followed by one entry
// per row, in the store's ascending name order. Rows whose name is not
// a valid key still appear; they are simply not resolvable.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries := []fuse.Dirent{
		{Inode: rootInode, Name: ".", Type: fuse.DT_Dir},
		{Inode: rootInode, Name: "..", Type: fuse.DT_Dir},
	}

	err := d.source.ForEachName(ctx, func(name string) error {
		entries = append(entries, fuse.Dirent{
			Inode: fs.GenerateDynamicInode(rootInode, name),
			Name:  name,
			Type:  fuse.DT_File,
		})
		return nil
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "directory listing failed", "error", err)
		return nil, errnoFor(err)
	}
	return entries, nil
}

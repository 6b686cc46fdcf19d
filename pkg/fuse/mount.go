package fuse

import (
	"fmt"
	"log/slog"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// Mount mounts the filesystem at mountpoint and serves requests until
// the filesystem is unmounted or the connection fails. The mount is
// flagged read-only at the kernel level on top of the per-operation
// rejections.
func Mount(mountpoint string, source RowSource, logger *slog.Logger) error {
	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("rowfs"),
		fuse.Subtype("rowfs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("mounting at %s: %w", mountpoint, err)
	}
	defer c.Close()

	if err := fs.Serve(c, New(source, logger)); err != nil {
		return fmt.Errorf("serving filesystem: %w", err)
	}

	<-c.Ready
	if err := c.MountError; err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}

	return nil
}

// Unmount asks the kernel to detach the filesystem at mountpoint; the
// corresponding Mount call returns once the connection drains.
func Unmount(mountpoint string) error {
	return fuse.Unmount(mountpoint)
}

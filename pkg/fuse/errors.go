package fuse

import (
	"syscall"

	"bazil.org/fuse"

	"github.com/rowfs/rowfs/pkg/fserr"
)

// errnoFor maps error kinds onto the POSIX errnos the kernel
// understands. This is the only place kinds become errnos; everything
// below this boundary reports kinds. Storage failures and anything
// unrecognized surface as EIO, with the detail preserved in the log.
func errnoFor(err error) fuse.Errno {
	switch fserr.KindOf(err) {
	case fserr.KindInvalidPath, fserr.KindNotFound:
		return fuse.ENOENT
	case fserr.KindIsDirectory:
		return fuse.Errno(syscall.EISDIR)
	case fserr.KindNotDirectory:
		return fuse.Errno(syscall.ENOTDIR)
	case fserr.KindReadOnly:
		return fuse.Errno(syscall.EROFS)
	case fserr.KindOutOfResources:
		return fuse.Errno(syscall.ENOMEM)
	default:
		return fuse.EIO
	}
}

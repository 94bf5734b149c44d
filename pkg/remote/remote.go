// Package remote defines the transport capability used to place photos on a
// NAS. The transfer engine only ever talks to these interfaces, so the
// mechanism (SMB today, anything else tomorrow) is swappable without touching
// orchestration logic.
package remote

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// 🔌 Session is an authenticated connection to a single NAS endpoint. It is
// acquired once per run and must be released with Logoff on every exit path.
type Session interface {
	// Mount attaches a named share and returns a handle for file operations
	Mount(name string) (Share, error)
	// Logoff tears down the session
	Logoff() error
}

// 📁 Share is a mounted remote storage endpoint. Paths are relative to the
// share root and use forward slashes.
type Share interface {
	// Mkdir creates a single directory. It is not recursive; callers create
	// parents first. A collision-class error (see IsCollision) means the
	// directory is already there.
	Mkdir(path string) error
	// Create opens a remote file for writing, truncating any existing content
	Create(path string) (io.WriteCloser, error)
	// Umount detaches the share
	Umount() error
}

// 🔍 IsCollision reports whether err is a collision-class error: the remote
// object already exists. Directory provisioning treats these as success,
// every other remote error is fatal.
func IsCollision(err error) bool {
	return os.IsExist(err) || errors.Is(err, fs.ErrExist)
}

package transfer

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/KiranTheRam/SnapVault/pkg/remote"
)

// 🚚 ship copies one local file byte-for-byte to remotePath on the share.
// The source is opened read-only and never deleted, moved, or modified.
// Close errors on the remote side count as transfer failures — SMB flushes
// on close, so a clean Close is part of a complete write.
func ship(ctx context.Context, localPath string, sh remote.Share, shareName, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return &ShipError{Share: shareName, Path: remotePath, Local: localPath, Err: err}
	}
	defer src.Close()

	dst, err := sh.Create(remotePath)
	if err != nil {
		return &ShipError{Share: shareName, Path: remotePath, Local: localPath, Err: err}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return &ShipError{Share: shareName, Path: remotePath, Local: localPath, Err: err}
	}
	if err := dst.Close(); err != nil {
		return &ShipError{Share: shareName, Path: remotePath, Local: localPath, Err: err}
	}

	zerolog.Ctx(ctx).Debug().
		Str("local", localPath).
		Str("share", shareName).
		Str("remote", remotePath).
		Msg("shipped file")
	return nil
}

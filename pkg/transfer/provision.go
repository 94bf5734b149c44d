package transfer

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KiranTheRam/SnapVault/pkg/remote"
)

// 🔑 dirKey identifies one remote directory across the whole run
type dirKey struct {
	share string
	path  string
}

// 🗃️ dirCache remembers which remote directories this run has provisioned.
// Grows monotonically, never persisted. A present key means the directory
// exists (or the run has already failed) — no false positives.
type dirCache map[dirKey]struct{}

// 📁 ensureDir makes sure relPath exists on the share, creating missing
// prefixes parent-first since remote mkdir is not recursive. Collision-class
// errors are success: two photos on the same date both provision the same
// directory. Every attempted prefix is cached regardless of outcome, because
// a non-collision failure aborts the run anyway.
func ensureDir(ctx context.Context, sh remote.Share, shareName, relPath string, cache dirCache) error {
	if relPath == "" {
		return nil
	}

	var current string
	for _, segment := range strings.Split(relPath, "/") {
		if segment == "" {
			continue
		}
		if current == "" {
			current = segment
		} else {
			current = current + "/" + segment
		}

		key := dirKey{share: shareName, path: current}
		if _, done := cache[key]; done {
			continue
		}

		err := sh.Mkdir(current)
		cache[key] = struct{}{}
		if err != nil && !remote.IsCollision(err) {
			return &ProvisionError{Share: shareName, Path: current, Err: err}
		}

		zerolog.Ctx(ctx).Debug().
			Str("share", shareName).
			Str("path", current).
			Bool("existed", err != nil).
			Msg("provisioned remote directory")
	}
	return nil
}

// 🔗 joinRemote joins path segments for remote operations without duplicate
// separators; empty segments drop out.
func joinRemote(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/\\")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, "/")
}

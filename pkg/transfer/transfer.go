// Package transfer is the engine of SnapVault: it enumerates the source
// photos, derives the dated remote layout, provisions remote directories
// idempotently, deduplicates destination filenames, and streams each file to
// every destination in turn. One failure past enumeration aborts the whole
// run — there is no retry, no skip-and-continue, and no rollback of files
// already shipped.
package transfer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/KiranTheRam/SnapVault/pkg/config"
	"github.com/KiranTheRam/SnapVault/pkg/exifdate"
	"github.com/KiranTheRam/SnapVault/pkg/remote"
	"github.com/KiranTheRam/SnapVault/pkg/scan"
	"github.com/KiranTheRam/SnapVault/pkg/status"
)

// 🎯 Target pairs a configured destination with its mounted share
type Target struct {
	Dest  config.Destination
	Share remote.Share
}

// 📅 DateFunc classifies a photo's capture date as YYYY-MM-DD. It must not
// fail; implementations fall back internally (see pkg/exifdate).
type DateFunc func(ctx context.Context, path string) string

// 🔧 Options configures a single run
type Options struct {
	// SourceRoot is the mounted source volume to enumerate
	SourceRoot string
	// RunLabel is the top-level remote folder name for this session
	RunLabel string
	// Targets is the fixed destination set, in configuration order
	Targets []Target
	// IgnorePatterns are doublestar globs skipped during enumeration
	IgnorePatterns []string
	// Classify determines capture dates; defaults to exifdate.DateTaken
	Classify DateFunc
	// Reporter receives one progress unit per (file, destination) copy;
	// defaults to status.Noop
	Reporter status.Reporter
}

type runState int

const (
	stateNotStarted runState = iota
	stateEnumerating
	stateTransferring
	stateCompleted
	stateFailed
)

// 🎮 Run is one single-use transfer run. The directory cache and name
// registry live exactly as long as the run and are not thread-safe: all
// access happens on the one orchestration goroutine.
type Run struct {
	opts  Options
	state runState
	cache dirCache
	names nameRegistry
}

// 🏭 New creates a run. Option defaults are filled in here so the zero
// collaborators never need nil checks in the hot loop.
func New(opts Options) *Run {
	if opts.Classify == nil {
		opts.Classify = exifdate.DateTaken
	}
	if opts.Reporter == nil {
		opts.Reporter = status.Noop{}
	}
	return &Run{
		opts:  opts,
		cache: dirCache{},
		names: nameRegistry{},
	}
}

// 🏃 Execute performs the transfer and returns the final statistics. On any
// fatal error the returned stats are nil: the run is all-or-nothing and
// partial counts are not reported. A Run can execute only once.
func (r *Run) Execute(ctx context.Context) (*Stats, error) {
	logger := zerolog.Ctx(ctx)

	if r.state != stateNotStarted {
		return nil, errors.Errorf("run already executed")
	}

	if len(r.opts.Targets) == 0 {
		r.state = stateFailed
		return nil, ErrNoDestinations
	}

	r.state = stateEnumerating
	files, err := scan.Enumerate(ctx, r.opts.SourceRoot, r.opts.IgnorePatterns)
	if err != nil {
		r.state = stateFailed
		return nil, err
	}
	if len(files) == 0 {
		r.state = stateFailed
		return nil, ErrNoFiles
	}

	r.state = stateTransferring
	stats := newStats()
	start := time.Now()

	r.opts.Reporter.Start(ctx, len(files)*len(r.opts.Targets))
	defer r.opts.Reporter.Finish(ctx)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			r.state = stateFailed
			return nil, errors.Errorf("transfer interrupted: %w", err)
		}

		date := r.opts.Classify(ctx, file.Path)
		stats.record(date)

		for _, tgt := range r.opts.Targets {
			remoteDir := joinRemote(tgt.Dest.Path, r.opts.RunLabel, date)

			if err := ensureDir(ctx, tgt.Share, tgt.Dest.Share, remoteDir, r.cache); err != nil {
				r.state = stateFailed
				return nil, err
			}

			name := r.names.resolve(tgt.Dest.Share, remoteDir, file.Base)
			remotePath := joinRemote(remoteDir, name)

			if err := ship(ctx, file.Path, tgt.Share, tgt.Dest.Share, remotePath); err != nil {
				r.state = stateFailed
				return nil, err
			}

			r.opts.Reporter.Increment(ctx)
		}
	}

	stats.Duration = time.Since(start)
	r.state = stateCompleted

	logger.Info().
		Int("total_photos", stats.TotalPhotos).
		Int("date_folders", stats.DateFolders()).
		Dur("duration", stats.Duration).
		Msg("transfer complete")
	return stats, nil
}

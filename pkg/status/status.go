// Package status reports transfer progress to the operator. One progress
// unit is one (file, destination) copy; the reporter is observability only
// and never affects the outcome of a run.
package status

import (
	"context"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📈 Reporter tracks progress through a transfer run
type Reporter interface {
	// Start begins an operation with a known number of progress units
	Start(ctx context.Context, total int)
	// Increment records one completed unit
	Increment(ctx context.Context)
	// Finish completes the operation
	Finish(ctx context.Context)
}

// 📊 Bar is the interactive Reporter: a pterm progress bar for the operator
// plus structured progress entries for the log.
type Bar struct {
	mu        sync.Mutex
	bar       *pterm.ProgressbarPrinter
	total     int
	processed int
}

// 🏭 NewBar creates a progress-bar reporter
func NewBar() *Bar {
	return &Bar{}
}

func (b *Bar) Start(ctx context.Context, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total = total
	b.processed = 0
	bar, err := pterm.DefaultProgressbar.WithTotal(total).WithTitle("Transferring").Start()
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("could not start progress bar")
		return
	}
	b.bar = bar
	zerolog.Ctx(ctx).Info().Int("total", total).Msg("transfer started")
}

func (b *Bar) Increment(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.processed++
	if b.bar != nil {
		b.bar.Increment()
	}
	zerolog.Ctx(ctx).Debug().
		Int("processed", b.processed).
		Int("total", b.total).
		Msg("progress")
}

func (b *Bar) Finish(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar != nil {
		if _, err := b.bar.Stop(); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("could not stop progress bar")
		}
		b.bar = nil
	}
	zerolog.Ctx(ctx).Info().
		Int("processed", b.processed).
		Int("total", b.total).
		Msg("transfer finished")
}

// 🔇 Noop is a Reporter that does nothing; used in tests and quiet mode
type Noop struct{}

func (Noop) Start(ctx context.Context, total int) {}
func (Noop) Increment(ctx context.Context)        {}
func (Noop) Finish(ctx context.Context)           {}

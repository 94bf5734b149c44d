package status

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Console provides user-friendly feedback alongside the structured log
type Console struct {
	log zerolog.Logger
}

// 🎯 NewConsole creates a console writer bound to the context logger
func NewConsole(ctx context.Context) *Console {
	return &Console{log: *zerolog.Ctx(ctx)}
}

// 📝 Header prints a section header
func (c *Console) Header(msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("snapvault")
	fmt.Printf("\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	c.log.Info().Msg(msg)
}

// ✅ Success prints a success line
func (c *Console) Success(msg string) {
	pterm.Success.Println(msg)
	c.log.Info().Msg(msg)
}

// ⚠️ Warning prints a warning line
func (c *Console) Warning(msg string) {
	pterm.Warning.Println(msg)
	c.log.Warn().Msg(msg)
}

// ❌ Error prints an error line
func (c *Console) Error(msg string, err error) {
	pterm.Error.Println(msg)
	if err != nil {
		pterm.Error.Println(err)
		c.log.Error().Err(err).Msg(msg)
		return
	}
	c.log.Error().Msg(msg)
}

// ℹ️ Info prints an informational line
func (c *Console) Info(msg string) {
	pterm.Info.Println(msg)
	c.log.Info().Msg(msg)
}

// 📊 Summary prints the end-of-run transfer summary
func (c *Console) Summary(totalPhotos int, breakdown map[string]int, duration time.Duration) {
	fmt.Println()
	c.Header("transfer summary")

	dates := make([]string, 0, len(breakdown))
	for date := range breakdown {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Printf("  %s %s %s\n",
			color.New(color.FgMagenta).Sprint("◆"),
			color.New(color.Bold).Sprint(date),
			color.New(color.Faint).Sprintf("%d photos", breakdown[date]))
	}

	fmt.Printf("\n  %s photos across %s dates in %s\n",
		color.New(color.FgGreen).Sprintf("%d", totalPhotos),
		color.New(color.FgGreen).Sprintf("%d", len(breakdown)),
		duration.Round(time.Second))

	c.log.Info().
		Int("total_photos", totalPhotos).
		Int("date_folders", len(breakdown)).
		Dur("duration", duration).
		Msg("transfer summary")
}

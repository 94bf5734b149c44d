package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/KiranTheRam/SnapVault/pkg/config"
	"github.com/KiranTheRam/SnapVault/pkg/media"
	"github.com/KiranTheRam/SnapVault/pkg/notify"
	"github.com/KiranTheRam/SnapVault/pkg/remote/smb"
	"github.com/KiranTheRam/SnapVault/pkg/status"
	"github.com/KiranTheRam/SnapVault/pkg/transfer"
)

var (
	// Flags
	configFile  string
	sourcePath  string
	shootName   string
	destFilter  string
	dialTimeout time.Duration
	debug       bool
)

// 🏭 newRootCmd builds the snapvault command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapvault",
		Short: "Stream photos from an SD card to NAS shares organized by date",
		Long: `snapvault detects a removable source volume, determines each photo's
capture date from EXIF metadata, and replicates the files to one or more
NAS shares over SMB, organized into per-date folders under the photoshoot
name. Progress is shown live and a Discord webhook can announce the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd)
		},
	}
	addRootFlags(cmd)
	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "snapvault.hcl", "config file path (.hcl or .yaml)")
	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "override the auto-detected SD card path")
	cmd.Flags().StringVarP(&shootName, "name", "n", "", "photoshoot name (prompted if omitted)")
	cmd.Flags().StringVar(&destFilter, "destination", "all", "destination to copy to: all or a configured destination name")
	cmd.Flags().DurationVar(&dialTimeout, "timeout", 30*time.Second, "NAS connection timeout")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// 🏃 runTransfer is the whole run: config, source, label, session, transfer,
// notifications. Fatal errors are reported to console, log, and webhook
// before they bubble up.
func runTransfer(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		status.NewConsole(ctx).Error("Configuration error", err)
		return err
	}

	ctx, logPath, err := setupLogging(ctx, cfg.LogDir)
	if err != nil {
		status.NewConsole(ctx).Error("Could not open log file", err)
		return err
	}
	console := status.NewConsole(ctx)

	dests := cfg.SelectDestinations(destFilter)
	if len(dests) == 0 {
		err := errors.Errorf("no destinations match filter %q", destFilter)
		console.Error("Configuration error", err)
		return err
	}

	source, err := resolveSource(ctx)
	if err != nil {
		console.Error("Unable to locate source volume", err)
		return err
	}

	runLabel, err := resolveRunLabel(shootName, time.Now())
	if err != nil {
		console.Error("Invalid photoshoot name", err)
		return err
	}

	console.Header("photo transfer")
	fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint("source"), source)
	fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint("label "), runLabel)
	fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint("log   "), logPath)
	for _, d := range dests {
		fmt.Printf("  %s %s: //%s/%s\n",
			color.New(color.FgMagenta).Sprint("◆"),
			color.New(color.Bold).Sprint(d.Name),
			cfg.NAS.Host,
			joinDisplayPath(d.Share, d.Path))
	}

	notifier := notify.New(cfg.WebhookURL)
	notifier.Started(ctx, runLabel, source)

	stats, err := doTransfer(ctx, cfg, dests, source, runLabel)
	if err != nil {
		console.Error("Transfer failed", err)
		notifier.Failed(ctx, runLabel, err.Error(), fmt.Sprintf("%+v", err))
		return err
	}

	console.Summary(stats.TotalPhotos, stats.DateBreakdown, stats.Duration)
	notifier.Completed(ctx, runLabel, stats.TotalPhotos, stats.DateBreakdown, stats.Duration)
	console.Success("Transfer complete")
	return nil
}

// 📡 doTransfer brackets the transfer in one SMB session: acquired before
// the first remote call, released on every exit path after the last.
func doTransfer(ctx context.Context, cfg *config.Config, dests []config.Destination, source, runLabel string) (*transfer.Stats, error) {
	dialer := &smb.Dialer{
		Host:     cfg.NAS.Host,
		Port:     cfg.NAS.Port,
		Username: cfg.NAS.Username,
		Password: cfg.NAS.Password,
		Domain:   cfg.NAS.Domain,
		Timeout:  dialTimeout,
	}

	sess, err := dialer.Dial(ctx)
	if err != nil {
		return nil, errors.Errorf("connecting to NAS: %w", err)
	}
	defer func() {
		if err := sess.Logoff(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("error closing NAS session")
		}
	}()

	shares, err := smb.MountAll(ctx, sess, config.ShareNames(dests))
	if err != nil {
		return nil, errors.Errorf("mounting shares: %w", err)
	}
	defer func() {
		for name, sh := range shares {
			if err := sh.Umount(); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("share", name).Msg("error unmounting share")
			}
		}
	}()

	targets := make([]transfer.Target, 0, len(dests))
	for _, d := range dests {
		targets = append(targets, transfer.Target{Dest: d, Share: shares[d.Share]})
	}

	run := transfer.New(transfer.Options{
		SourceRoot:     source,
		RunLabel:       runLabel,
		Targets:        targets,
		IgnorePatterns: cfg.IgnorePatterns,
		Reporter:       status.NewBar(),
	})
	return run.Execute(ctx)
}

// 🔍 resolveSource returns the source volume path: the --source override if
// given, the single detected removable mount, or an interactive pick.
func resolveSource(ctx context.Context) (string, error) {
	if sourcePath != "" {
		info, err := os.Stat(sourcePath)
		if err != nil {
			return "", errors.Errorf("source path %s: %w", sourcePath, err)
		}
		if !info.IsDir() {
			return "", errors.Errorf("source path %s is not a directory", sourcePath)
		}
		return sourcePath, nil
	}

	mounts := media.DetectMounts(ctx)
	switch len(mounts) {
	case 0:
		return "", errors.Errorf("no removable volumes detected; pass --source")
	case 1:
		zerolog.Ctx(ctx).Info().Str("mount", mounts[0]).Msg("detected SD card mount")
		return mounts[0], nil
	default:
		picked, err := pterm.DefaultInteractiveSelect.
			WithOptions(mounts).
			Show("Select the source volume")
		if err != nil {
			return "", errors.Errorf("selecting source volume: %w", err)
		}
		return picked, nil
	}
}

// 🏷️ resolveRunLabel prompts for the photoshoot name when the flag is empty
// and prefixes it with the current year.
func resolveRunLabel(name string, now time.Time) (string, error) {
	if name == "" {
		entered, err := pterm.DefaultInteractiveTextInput.
			Show("Enter folder name for this photoshoot")
		if err != nil {
			return "", errors.Errorf("reading photoshoot name: %w", err)
		}
		name = entered
	}
	return composeRunLabel(name, now)
}

// composeRunLabel builds "<year> - <name>" from a raw photoshoot name
func composeRunLabel(name string, now time.Time) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Errorf("folder name cannot be empty")
	}
	return fmt.Sprintf("%d - %s", now.Year(), name), nil
}

// 📝 setupLogging replaces the bootstrap logger with one writing to both the
// console and a timestamped file under logDir.
func setupLogging(ctx context.Context, logDir string) (context.Context, string, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return ctx, "", errors.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("snapvault_%s.log", time.Now().Format("20060102_150405")))
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ctx, "", errors.Errorf("opening log file: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(zerolog.NewConsoleWriter(), f)).
		With().Timestamp().Logger().Level(level)
	return logger.WithContext(ctx), logPath, nil
}

func joinDisplayPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

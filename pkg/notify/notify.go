// Package notify delivers run lifecycle notifications to a Discord webhook.
// Delivery is fire-and-forget: a failed or missing webhook never fails the
// run, it only leaves a line in the log.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Discord embed accent colors
const (
	colorStarted   = 0x5865F2
	colorCompleted = 0x57F287
	colorFailed    = 0xED4245
)

const sendTimeout = 10 * time.Second

// 📨 Notifier posts embed messages to a Discord webhook
type Notifier struct {
	webhookURL string
	client     *http.Client
}

// 🏭 New creates a notifier. An empty webhook URL disables delivery.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: sendTimeout},
	}
}

// Enabled reports whether a webhook is configured
func (n *Notifier) Enabled() bool {
	return n.webhookURL != ""
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp"`
	Footer      struct {
		Text string `json:"text"`
	} `json:"footer"`
	Fields []field `json:"fields,omitempty"`
}

type payload struct {
	Embeds []embed `json:"embeds"`
}

// 📤 Started announces the beginning of a run
func (n *Notifier) Started(ctx context.Context, runLabel, source string) {
	n.send(ctx, "📸 SnapVault Started",
		fmt.Sprintf("Processing photoshoot: **%s**", runLabel),
		colorStarted,
		[]field{{Name: "Source", Value: source}})
}

// ✅ Completed announces a successful run with its statistics
func (n *Notifier) Completed(ctx context.Context, runLabel string, totalPhotos int, breakdown map[string]int, duration time.Duration) {
	fields := []field{
		{Name: "📊 Total Photos", Value: fmt.Sprintf("%d", totalPhotos), Inline: true},
		{Name: "📅 Date Folders", Value: fmt.Sprintf("%d", len(breakdown)), Inline: true},
		{Name: "⏱️ Duration", Value: duration.Round(time.Second).String(), Inline: true},
	}

	if len(breakdown) > 0 {
		dates := make([]string, 0, len(breakdown))
		for date := range breakdown {
			dates = append(dates, date)
		}
		sort.Strings(dates)

		var b strings.Builder
		for _, date := range dates {
			fmt.Fprintf(&b, "%s: %d photos\n", date, breakdown[date])
		}
		fields = append(fields, field{
			Name:  "Date Breakdown",
			Value: fmt.Sprintf("```%s```", strings.TrimRight(b.String(), "\n")),
		})
	}

	n.send(ctx, "✅ SnapVault Completed",
		fmt.Sprintf("Successfully processed: **%s**", runLabel),
		colorCompleted, fields)
}

// ❌ Failed announces a failed run with the error and optional diagnostic
func (n *Notifier) Failed(ctx context.Context, runLabel, errMsg, diagnostic string) {
	var fields []field
	if diagnostic != "" {
		if len(diagnostic) > 1000 {
			diagnostic = diagnostic[:1000]
		}
		fields = append(fields, field{
			Name:  "Details",
			Value: fmt.Sprintf("```%s```", diagnostic),
		})
	}

	n.send(ctx, "❌ SnapVault Error",
		fmt.Sprintf("Failed while processing: **%s**\n\n**Error:**\n```%s```", runLabel, errMsg),
		colorFailed, fields)
}

func (n *Notifier) send(ctx context.Context, title, description string, color int, fields []field) {
	if !n.Enabled() {
		return
	}
	logger := zerolog.Ctx(ctx)

	e := embed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Fields:      fields,
	}
	e.Footer.Text = "SnapVault"

	body, err := json.Marshal(payload{Embeds: []embed{e}})
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode Discord notification")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		logger.Error().Err(err).Msg("failed to build Discord notification request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("failed to send Discord notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Error().Int("status", resp.StatusCode).Msg("Discord webhook rejected notification")
	}
}

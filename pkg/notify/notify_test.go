package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureWebhook(t *testing.T) (*httptest.Server, *[][]byte) {
	t.Helper()
	var bodies [][]byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, body)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func decodeEmbed(t *testing.T, body []byte) embed {
	t.Helper()
	var p payload
	require.NoError(t, json.Unmarshal(body, &p))
	require.Len(t, p.Embeds, 1)
	return p.Embeds[0]
}

func TestStarted(t *testing.T) {
	srv, bodies := captureWebhook(t)

	n := New(srv.URL)
	n.Started(context.Background(), "2024 - Wedding", "/media/sdcard")

	require.Len(t, *bodies, 1)
	e := decodeEmbed(t, (*bodies)[0])
	assert.Equal(t, "📸 SnapVault Started", e.Title)
	assert.Contains(t, e.Description, "2024 - Wedding")
	assert.Equal(t, colorStarted, e.Color)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "/media/sdcard", e.Fields[0].Value)
	assert.Equal(t, "SnapVault", e.Footer.Text)
}

func TestCompleted_IncludesBreakdown(t *testing.T) {
	srv, bodies := captureWebhook(t)

	n := New(srv.URL)
	n.Completed(context.Background(), "2024 - Wedding", 3,
		map[string]int{"2024-05-02": 1, "2024-05-01": 2}, 90*time.Second)

	require.Len(t, *bodies, 1)
	e := decodeEmbed(t, (*bodies)[0])
	assert.Equal(t, colorCompleted, e.Color)
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "3", e.Fields[0].Value)
	assert.Equal(t, "2", e.Fields[1].Value)
	// breakdown is sorted by date
	assert.Contains(t, e.Fields[3].Value, "2024-05-01: 2 photos\n2024-05-02: 1 photos")
}

func TestFailed_TruncatesDiagnostic(t *testing.T) {
	srv, bodies := captureWebhook(t)

	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'x'
	}

	n := New(srv.URL)
	n.Failed(context.Background(), "2024 - Wedding", "mkdir failed", string(long))

	require.Len(t, *bodies, 1)
	e := decodeEmbed(t, (*bodies)[0])
	assert.Equal(t, colorFailed, e.Color)
	assert.Contains(t, e.Description, "mkdir failed")
	require.Len(t, e.Fields, 1)
	assert.LessOrEqual(t, len(e.Fields[0].Value), 1010, "diagnostic truncated to 1000 chars plus fencing")
}

func TestDisabledNotifierSendsNothing(t *testing.T) {
	n := New("")
	assert.False(t, n.Enabled())
	// must not panic or attempt network calls
	n.Started(context.Background(), "label", "src")
	n.Completed(context.Background(), "label", 0, nil, 0)
	n.Failed(context.Background(), "label", "err", "")
}

func TestDeliveryFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	n := New(srv.URL)
	// no error surfaces; the run must never fail on notification problems
	n.Started(context.Background(), "label", "src")
}

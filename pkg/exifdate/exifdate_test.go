package exifdate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTaken_FallsBackToModTime(t *testing.T) {
	// A plain file with no EXIF data classifies by its modification time.
	path := filepath.Join(t.TempDir(), "IMG_0001.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))

	mtime := time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	assert.Equal(t, "2024-05-01", DateTaken(context.Background(), path))
}

func TestDateTaken_MissingFileStillReturnsADate(t *testing.T) {
	// Classification must never fail the run, even for a vanished file.
	got := DateTaken(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))

	_, err := time.Parse(DateLayout, got)
	assert.NoError(t, err, "result is always a valid YYYY-MM-DD date")
}

func TestTaken_PreservesTimeOfDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "IMG_0002.nef")
	require.NoError(t, os.WriteFile(path, []byte("raw bytes"), 0o644))

	mtime := time.Date(2023, 12, 31, 23, 59, 58, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	assert.True(t, Taken(context.Background(), path).Equal(mtime))
}

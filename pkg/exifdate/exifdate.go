// Package exifdate determines when a photo was taken. EXIF wins; the file
// modification time is the fallback. Classification never fails a run — a
// photo with unreadable metadata still lands somewhere sensible.
package exifdate

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// 📅 DateLayout is the folder-name form of a capture date
const DateLayout = "2006-01-02"

func init() {
	// Register maker note handlers
	exif.RegisterParsers(mknote.All...)
}

// 📅 DateTaken returns the capture date of the photo at path as YYYY-MM-DD.
// Order of preference: EXIF DateTimeOriginal, file modification time, today.
func DateTaken(ctx context.Context, path string) string {
	return Taken(ctx, path).Format(DateLayout)
}

// 🕐 Taken returns the full capture timestamp, falling back as DateTaken does
func Taken(ctx context.Context, path string) time.Time {
	logger := zerolog.Ctx(ctx)

	if tm, err := exifTime(path); err == nil {
		return tm
	} else {
		logger.Debug().Str("file", path).Err(err).Msg("could not read EXIF date")
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Str("file", path).Err(err).Msg("could not stat file, using current time")
		return time.Now()
	}
	return info.ModTime()
}

func exifTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}

	// DateTime prefers DateTimeOriginal and falls back to DateTime
	return x.DateTime()
}

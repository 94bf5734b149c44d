// Package scan enumerates the photos on a source volume. Enumeration is the
// first step of every run; its ordering must be deterministic because remote
// filename disambiguation depends on processing order.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🗺️ imageExtensions is the fixed allow-list of recognized photo formats
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".raw":  true,
	".cr2":  true,
	".nef":  true,
	".arw":  true,
	".dng":  true,
	".orf":  true,
	".rw2":  true,
	".raf":  true,
	".heic": true,
	".tif":  true,
	".tiff": true,
	".gif":  true,
	".bmp":  true,
}

// 📄 File is one photo found on the source volume. Identity is the absolute
// local path; the struct is never mutated after enumeration.
type File struct {
	Path string // absolute local path
	Base string // base filename, used as the desired remote name
	Ext  string // lowercased extension including the dot
}

// 🔍 Enumerate walks root recursively and returns every recognized image file
// in lexicographic path order. Ignore patterns are doublestar globs matched
// against the path relative to root. A missing or unreadable root is an
// error; a readable root with no matching files returns an empty slice and
// nil error — the caller decides whether that is fatal.
func Enumerate(ctx context.Context, root string, ignorePatterns []string) ([]File, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("root", root).Msg("scanning for images")

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The root itself must be readable; anything below it too — a
			// half-enumerated card would silently drop photos.
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if ignored(ctx, rel, ignorePatterns) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		files = append(files, File{
			Path: path,
			Base: filepath.Base(path),
			Ext:  ext,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", root, err)
	}

	// WalkDir visits entries in lexical order per directory, but sort the
	// full result anyway so ordering is an explicit contract.
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	logger.Info().Int("count", len(files)).Msg("found image files")
	return files, nil
}

// 🔍 ignored checks a relative path against the ignore patterns
func ignored(ctx context.Context, rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

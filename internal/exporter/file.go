package exporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/fieldworks/i3dgo/internal/config"
)

// sharedPrefix marks an engine-relative shared asset reference.
const sharedPrefix = "$"

// resolveFile returns the file id for an asset path, creating the
// Files entry on first encounter. Two input paths that resolve to the
// same key collapse into one entry. ok is false when the reference
// had to be skipped.
func (ex *Exporter) resolveFile(path string) (int, bool) {
	if path == "" {
		ex.log.Warnw("empty asset path skipped")
		return 0, false
	}

	resolved := filepath.ToSlash(path)

	// Paths under the engine's shared data folder are rewritten to a
	// symbolic reference and never copied.
	if idx := strings.Index(resolved, ex.cfg.SharedFolder); idx >= 0 && ex.cfg.SharedFolder != "" {
		resolved = sharedPrefix + resolved[idx:]
	} else if ex.cfg.CopyFiles {
		copied, ok := ex.copyFile(path)
		if !ok {
			return 0, false
		}
		resolved = copied
	}

	if id, ok := ex.fileIDs[resolved]; ok {
		return id, true
	}

	id := ex.nextFileID
	ex.nextFileID++
	ex.fileIDs[resolved] = id

	el := ex.doc.Files.Sub("File")
	el.SetInt("fileId", id)
	el.SetString("filename", resolved)
	return id, true
}

// copyFile relocates an asset next to the output file under the
// configured layout and returns the registration key. Copy failures
// are diagnostics, not errors; only a missing source skips the
// reference.
func (ex *Exporter) copyFile(src string) (string, bool) {
	if _, err := os.Stat(src); err != nil {
		ex.log.Warnw("referenced asset not found, reference skipped",
			"path", src, "error", err)
		return "", false
	}

	rel := ex.destinationPath(src)
	dest := filepath.FromSlash(rel)
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(ex.outDir, dest)
	}

	if sameFile(src, dest) {
		return rel, true
	}
	if _, known := ex.fileIDs[rel]; known {
		// Already copied earlier in this run.
		return rel, true
	}

	if _, err := os.Stat(dest); err == nil && !ex.cfg.OverwriteFiles {
		return rel, true
	}

	if err := copyContents(src, dest); err != nil {
		ex.log.Warnw("asset copy failed", "source", src, "destination", dest, "error", err)
	}
	return rel, true
}

// destinationPath computes the slash-separated destination key of a
// copied asset, relative to the output directory.
func (ex *Exporter) destinationPath(src string) string {
	filename := filepath.Base(src)

	switch ex.cfg.FileStructure {
	case config.LayoutModHub:
		return joinSlash(ex.cfg.TextureFolder, filename)
	case config.LayoutRelative:
		rel, err := filepath.Rel(ex.outDir, src)
		// Cap how far away a mirrored file may live; beyond three
		// upward steps fall back to the absolute source path, which
		// degrades the copy to a same-file no-op.
		if err != nil || strings.Count(rel, "..") > 3 {
			abs, absErr := filepath.Abs(src)
			if absErr != nil {
				return filepath.ToSlash(src)
			}
			return filepath.ToSlash(abs)
		}
		return filepath.ToSlash(rel)
	default:
		return filename
	}
}

func joinSlash(dir, filename string) string {
	return filepath.ToSlash(filepath.Join(dir, filename))
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

func copyContents(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrap(err, "creating destination directory")
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source")
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrap(err, "creating destination")
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrap(err, "copying contents")
	}
	return errors.Wrap(out.Close(), "closing destination")
}

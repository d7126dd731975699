package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/logger"
)

// adsFile is hoisted from the asset directory to the site root so ad
// networks can fetch it at /ads.txt.
const adsFile = "ads.txt"

var errNotStaged = errors.New("no staging area: call Stage first")

// Writer writes the generated site under a staging directory and
// promotes it over the output directory when the build succeeds.
type Writer struct {
	outputDir  string
	stagingDir string
}

var _ driven.SiteWriter = (*Writer)(nil)

// NewWriter returns a writer that publishes into outputDir.
func NewWriter(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "dist"
	}
	return &Writer{outputDir: outputDir}
}

// Stage creates a fresh staging directory next to the output directory
// so the final rename stays on one filesystem.
func (w *Writer) Stage() error {
	parent := filepath.Dir(w.outputDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("creating site parent directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".staging-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	w.stagingDir = staging
	return nil
}

// WritePage writes one rendered document. A trailing slash marks a
// directory route and lands in path/index.html; any other path is
// written verbatim.
func (w *Writer) WritePage(path string, data []byte) error {
	rel := strings.TrimPrefix(path, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}
	return w.WriteFile(rel, data)
}

// WriteFile writes an artifact at an exact path under the staged root.
func (w *Writer) WriteFile(path string, data []byte) error {
	if w.stagingDir == "" {
		return errNotStaged
	}

	dst := filepath.Join(w.stagingDir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CopyAssets mirrors the asset directory into static/ under the staged
// root. An ads.txt at the top of the asset directory is additionally
// copied to the site root. A missing asset directory is skipped.
func (w *Writer) CopyAssets(ctx context.Context, dir string) error {
	if w.stagingDir == "" {
		return errNotStaged
	}
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("Asset directory %s not found, skipping", dir)
		return nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return w.copyFile(path, filepath.Join(w.stagingDir, "static", rel))
	})
	if err != nil {
		return fmt.Errorf("copying assets from %s: %w", dir, err)
	}

	ads := filepath.Join(dir, adsFile)
	if _, err := os.Stat(ads); err == nil {
		if err := w.copyFile(ads, filepath.Join(w.stagingDir, adsFile)); err != nil {
			return fmt.Errorf("copying %s: %w", adsFile, err)
		}
	}
	return nil
}

func (w *Writer) copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// Promote replaces the output directory with the staged tree. The
// previous site is parked at <output>.old during the swap and restored
// if the swap fails.
func (w *Writer) Promote() error {
	if w.stagingDir == "" {
		return errNotStaged
	}

	old := w.outputDir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clearing %s: %w", old, err)
	}

	parked := false
	if _, err := os.Stat(w.outputDir); err == nil {
		if err := os.Rename(w.outputDir, old); err != nil {
			return fmt.Errorf("parking previous site: %w", err)
		}
		parked = true
	}

	if err := os.Rename(w.stagingDir, w.outputDir); err != nil {
		if parked {
			if rerr := os.Rename(old, w.outputDir); rerr != nil {
				logger.Warn("Could not restore previous site from %s: %v", old, rerr)
			}
		}
		return fmt.Errorf("promoting staged site: %w", err)
	}
	w.stagingDir = ""

	if err := os.RemoveAll(old); err != nil {
		logger.Warn("Could not remove previous site at %s: %v", old, err)
	}
	return nil
}

// Discard removes the staging directory without touching the output.
func (w *Writer) Discard() error {
	if w.stagingDir == "" {
		return nil
	}
	if err := os.RemoveAll(w.stagingDir); err != nil {
		return fmt.Errorf("removing staging directory: %w", err)
	}
	w.stagingDir = ""
	return nil
}

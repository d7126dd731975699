package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/greenpaws/vetsite/internal/config"
	"github.com/greenpaws/vetsite/internal/logger"
)

// watchDebounce coalesces bursts of file events into one rebuild.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the site when data changes",
	Long: `Builds the site, then watches the data and asset directories and
rebuilds on changes. Events are debounced so editors that write in
bursts trigger one rebuild. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		return errNoConfig
	}

	b, cleanup, err := siteBuilder()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The first build runs unconditionally; a failure is reported but
	// watching continues so the next save can fix it.
	if _, err := b.Build(ctx); err != nil {
		logger.Error("Build failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // release on exit

	watched := 0
	for _, dir := range watchDirs(cfg) {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("Cannot watch %s: %v", dir, err)
			continue
		}
		logger.Info("Watching %s", dir)
		watched++
	}
	if watched == 0 {
		return errors.New("no watchable directories")
	}

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")

	// Stopped-timer debounce: events reset the timer, expiry rebuilds.
	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !rebuildEvent(event) {
				continue
			}
			logger.Debug("Change detected: %s (%s)", event.Name, event.Op)
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-debounce.C:
			if _, err := b.Build(ctx); err != nil {
				logger.Error("Rebuild failed: %v", err)
			}
		}
	}
}

// rebuildEvent reports whether a filesystem event should trigger a
// rebuild. Chmod-only events and hidden files are ignored.
func rebuildEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return !isHidden(event.Name)
}

// isHidden reports whether the path's base name starts with a dot.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// watchDirs returns the data directory plus the assets tree. Watches
// are per-directory, so asset subdirectories are walked in.
func watchDirs(c *config.Config) []string {
	dirs := []string{c.Build.DataDir}
	if c.Build.AssetsDir == "" {
		return dirs
	}

	err := filepath.WalkDir(c.Build.AssetsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != c.Build.AssetsDir && isHidden(path) {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		logger.Warn("Could not walk assets directory: %v", err)
	}
	return dirs
}

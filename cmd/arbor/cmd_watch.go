package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce time.Duration

// watchCmd revalidates a document whenever it changes
var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Revalidate a model document whenever it changes",
	Long: `Watches the directory containing the document (so editor save-and-
replace is caught) and re-runs validation on every write, until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "wait after a change before revalidating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save.
	dir := filepath.Dir(path)
	filename := filepath.Base(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	report := func() {
		violations, err := validateFile(path)
		switch {
		case err != nil:
			logger.Warn("document failed to load", zap.String("path", path), zap.Error(err))
		case len(violations) == 0:
			logger.Info("document ok", zap.String("path", path))
		default:
			for _, v := range violations {
				logger.Warn("invariant violation", zap.String("path", path), zap.String("violation", v.String()))
			}
		}
	}
	report()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var pending *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			report()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-stop:
			return nil
		}
	}
}

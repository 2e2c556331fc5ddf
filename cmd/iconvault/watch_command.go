package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"iconvault/internal/icon"
	"iconvault/internal/logging"
	"iconvault/internal/shortcuts"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch shortcut roots and extract icons for new shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(true, func(eng *engine) error {
				return runWatch(cmd.Context(), eng)
			})
		},
	}
}

// runWatch runs the fsnotify loop on one goroutine and extraction
// sequentially on another, connected by a channel of debounced
// additions. SIGINT and SIGTERM stop both.
func runWatch(cmdCtx context.Context, eng *engine) error {
	if len(eng.cfg.Shortcuts.Roots) == 0 {
		return errors.New("no shortcut roots configured; set shortcuts.roots in the config file")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pending := make(chan []string, 16)
	watcher := shortcuts.NewWatcher(eng.index, shortcuts.WatcherOptions{
		Debounce: eng.cfg.Debounce(),
		OnAdded: func(paths []string) {
			select {
			case pending <- paths:
			case <-signalCtx.Done():
			}
		},
		Logger: eng.logger,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-signalCtx.Done():
				return
			case paths := <-pending:
				extractAdded(signalCtx, eng, paths)
			}
		}
	}()

	err := watcher.Run(signalCtx)
	cancel()
	wg.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// extractAdded extracts each new shortcut under its own request id so
// every log line of one extraction correlates.
func extractAdded(ctx context.Context, eng *engine, paths []string) {
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		requestCtx := logging.WithRequestID(ctx, uuid.NewString())
		log := logging.WithContext(requestCtx, eng.logger)
		if err := eng.extractor.ExtractPath(requestCtx, path); err != nil {
			log.Warn("extract new shortcut failed",
				logging.String("path", path),
				logging.String("name", shortcuts.DisplayName(path)),
				logging.String("kind", icon.Classify(err)),
				logging.Error(err))
			continue
		}
		log.Info("extracted new shortcut",
			logging.String("path", path),
			logging.String("name", shortcuts.DisplayName(path)))
	}
}

// Package daemonrun assembles and runs the daemon process: logging, stores,
// the search index, the provider client, workflow lanes, and the daemon
// lifecycle. Both pagemarkd and `pagemark daemon` call into it.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"pagemark/internal/bookmarks"
	"pagemark/internal/config"
	"pagemark/internal/daemon"
	"pagemark/internal/llm"
	"pagemark/internal/logging"
	"pagemark/internal/notifications"
	"pagemark/internal/queue"
	"pagemark/internal/search"
	"pagemark/internal/tagging"
	"pagemark/internal/workflow"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the pagemark daemon runtime loop and blocks until the context
// is cancelled or a termination signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "pagemark.log")
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "pagemark.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := bookmarks.Open(cfg)
	if err != nil {
		logger.Error("open bookmark store", logging.Error(err))
		return err
	}
	defer store.Close()

	jobs, err := queue.Open(cfg)
	if err != nil {
		logger.Error("open queue store", logging.Error(err))
		return err
	}
	defer jobs.Close()

	var index *search.Index
	if cfg.Search.Enabled {
		index, err = search.Open(cfg.IndexDir(), logger)
		if err != nil {
			logger.Error("open search index", logging.Error(err))
			return err
		}
		defer index.Close()
	}

	client := llm.NewClient(llm.Config{
		APIKey:         cfg.Provider.APIKey,
		BaseURL:        cfg.Provider.BaseURL,
		Model:          cfg.Provider.Model,
		TimeoutSeconds: cfg.Provider.TimeoutSeconds,
	})
	if !client.Configured() {
		logger.Warn("provider api key not set; bookmarks will be marked enriched without tags")
	}

	notifier := notifications.NewService(cfg)
	handlers := []workflow.Handler{tagging.NewStage(store, jobs, client, logger)}
	if index != nil {
		handlers = append(handlers, search.NewStage(store, index, logger))
	} else {
		// Tagging and removal still emit index jobs; drain them so the
		// queue does not grow while search is disabled.
		handlers = append(handlers, workflow.NewDrainHandler(queue.KindIndex))
	}
	manager := workflow.NewManager(cfg, jobs, store, logger, notifier, handlers...)

	d, err := daemon.New(cfg, store, jobs, index, manager, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}

	if err := d.Start(signalCtx); err != nil {
		return err
	}
	defer d.Stop()

	<-signalCtx.Done()
	logger.Info("pagemark daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

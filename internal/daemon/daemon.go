package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gofrs/flock"

	"pagemark/internal/bookmarks"
	"pagemark/internal/config"
	"pagemark/internal/logging"
	"pagemark/internal/queue"
	"pagemark/internal/search"
	"pagemark/internal/workflow"
)

// Daemon coordinates the background services and enforces single-instance
// execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *bookmarks.Store
	jobs      *queue.Store
	index     *search.Index
	workflow  *workflow.Manager
	apiServer *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Queue        queue.HealthSummary
	LastError    error
	DatabasePath string
	QueueDBPath  string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *bookmarks.Store, jobs *queue.Store, index *search.Index, wf *workflow.Manager, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || jobs == nil || wf == nil {
		return nil, errors.New("daemon requires config, stores, and workflow manager")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.Paths.LockFile
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		jobs:     jobs,
		index:    index,
		workflow: wf,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	server, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.apiServer = server
	return d, nil
}

// Start acquires the daemon lock and launches the workflow manager and the
// HTTP API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another pagemark daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if err := d.workflow.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return fmt.Errorf("start workflow: %w", err)
	}
	if d.apiServer != nil {
		if err := d.apiServer.start(runCtx); err != nil {
			d.workflow.Stop()
			_ = d.lock.Unlock()
			cancel()
			d.cancel = nil
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("pagemark daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.apiServer.stop()
	d.workflow.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("pagemark daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	var errs []error
	if d.index != nil {
		errs = append(errs, d.index.Close())
	}
	if d.jobs != nil {
		errs = append(errs, d.jobs.Close())
	}
	if d.store != nil {
		errs = append(errs, d.store.Close())
	}
	return errors.Join(errs...)
}

// Status reports current daemon state.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: d.cfg.DatabasePath(),
		QueueDBPath:  d.cfg.QueuePath(),
		LockFilePath: d.lockPath,
		LastError:    d.workflow.LastError(),
	}
	if health, err := d.jobs.Health(ctx); err == nil {
		status.Queue = health
	}
	return status
}

// APIAddr returns the bound address of the HTTP API, empty when disabled.
func (d *Daemon) APIAddr() string {
	if d.apiServer == nil {
		return ""
	}
	return d.apiServer.addr()
}

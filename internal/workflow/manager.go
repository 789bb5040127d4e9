package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pagemark/internal/bookmarks"
	"pagemark/internal/config"
	"pagemark/internal/logging"
	"pagemark/internal/notifications"
	"pagemark/internal/queue"
)

// Manager coordinates queue processing using registered lane handlers.
type Manager struct {
	cfg       *config.Config
	jobs      *queue.Store
	bookmarks *bookmarks.Store
	logger    *slog.Logger
	notifier  notifications.Service

	heartbeat          *HeartbeatMonitor
	pollInterval       time.Duration
	errorRetryInterval time.Duration

	lanes []*laneState

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	lastErr error
}

type laneState struct {
	name    string
	handler Handler
	logger  *slog.Logger
}

// NewManager constructs a workflow manager with one lane per handler.
func NewManager(cfg *config.Config, jobs *queue.Store, store *bookmarks.Store, logger *slog.Logger, notifier notifications.Service, handlers ...Handler) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	m := &Manager{
		cfg:       cfg,
		jobs:      jobs,
		bookmarks: store,
		logger:    logging.NewComponentLogger(logger, "workflow"),
		notifier:  notifier,
		heartbeat: NewHeartbeatMonitor(
			jobs,
			logger,
			time.Duration(cfg.Workflow.HeartbeatInterval)*time.Second,
			time.Duration(cfg.Workflow.HeartbeatTimeout)*time.Second,
		),
		pollInterval:       time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		errorRetryInterval: time.Duration(cfg.Workflow.ErrorRetryInterval) * time.Second,
	}
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		m.lanes = append(m.lanes, &laneState{
			name:    laneName(handler.Kind()),
			handler: handler,
			logger:  m.logger.With(logging.String(logging.FieldLane, laneName(handler.Kind()))),
		})
	}
	return m
}

func laneName(kind queue.Kind) string {
	switch kind {
	case queue.KindTagging:
		return "enrichment"
	case queue.KindIndex:
		return "indexing"
	default:
		return string(kind)
	}
}

// Start begins background processing. Jobs left in processing by a previous
// run are reset to pending before the lanes start polling.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}
	if len(m.lanes) == 0 {
		m.mu.Unlock()
		return errors.New("workflow lanes not configured")
	}

	reset, err := m.jobs.ResetStuckProcessing(ctx)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if reset > 0 {
		m.logger.Info("reset stuck processing jobs", logging.Int64("count", reset))
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(len(m.lanes))
	m.mu.Unlock()

	for _, lane := range m.lanes {
		go m.runLane(runCtx, lane)
	}
	return nil
}

// Stop terminates background processing and waits for the lanes to drain.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

// Running reports whether the manager's lanes are active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// LastError returns the most recent processing error, if any.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) runLane(ctx context.Context, lane *laneState) {
	defer m.wg.Done()
	logger := lane.logger

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := m.heartbeat.ReclaimStaleJobs(ctx, logger); err != nil {
			logger.Warn("reclaim stale processing failed; stuck jobs may remain", logging.Error(err))
		}

		job, err := m.jobs.Claim(ctx, lane.handler.Kind())
		if err != nil {
			m.setLastError(err)
			logger.Error("failed to claim next job", logging.Error(err))
			if !m.waitOrShutdown(ctx, m.errorRetryInterval) {
				return
			}
			continue
		}
		if job == nil {
			if !m.waitOrShutdown(ctx, m.pollInterval) {
				return
			}
			continue
		}

		if err := m.processJob(ctx, lane, job); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
		}
	}
}

func (m *Manager) waitOrShutdown(ctx context.Context, wait time.Duration) bool {
	if wait <= 0 {
		wait = time.Second
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(wait):
		return true
	}
}

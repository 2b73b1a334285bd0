package workers

import (
	"context"
	"time"

	"github.com/alimgiray/reviewboard/internal/services"
	"github.com/alimgiray/reviewboard/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Syncer copies pull requests from the upstream source into the store
type Syncer interface {
	Sync(ctx context.Context) (services.SyncResult, error)
}

// Refresher swaps in a snapshot built from the store
type Refresher interface {
	Refresh() error
}

// PullRequestWorker is the single consumer of refresh events. For each event
// it synchronizes from GitHub (when a syncer is configured) and then hands a
// freshly built snapshot to the dashboard.
type PullRequestWorker struct {
	*BaseWorker
	events    <-chan RefreshEvent
	syncer    Syncer
	refresher Refresher
}

// NewPullRequestWorker creates the worker; syncer may be nil when no
// upstream repository is configured
func NewPullRequestWorker(workerID string, events <-chan RefreshEvent, syncer Syncer, refresher Refresher) *PullRequestWorker {
	return &PullRequestWorker{
		BaseWorker: NewBaseWorker(workerID),
		events:     events,
		syncer:     syncer,
		refresher:  refresher,
	}
}

// Start begins the pull request worker process
func (w *PullRequestWorker) Start(ctx context.Context) error {
	w.setRunning(true)
	defer w.setRunning(false)
	log := logger.Component("pull_request_worker").WithField("worker", w.WorkerID)
	log.Info("Pull request worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Pull request worker stopping due to context cancellation")
			return ctx.Err()
		case <-w.StopChan:
			log.Info("Pull request worker stopping")
			return nil
		case event := <-w.events:
			w.process(ctx, log, event)
		}
	}
}

// process never leaves a partial snapshot behind: the dashboard keeps the
// previous one until Refresh succeeds
func (w *PullRequestWorker) process(ctx context.Context, log *logrus.Entry, event RefreshEvent) {
	started := time.Now()
	log = log.WithField("reason", string(event.Reason))

	if w.syncer != nil {
		if _, err := w.syncer.Sync(ctx); err != nil {
			log.WithError(err).Warn("Synchronization failed, refreshing from stored data")
		}
	}

	if ctx.Err() != nil {
		return
	}

	if err := w.refresher.Refresh(); err != nil {
		log.WithError(err).Error("Snapshot refresh failed")
		return
	}

	log.WithField("duration_ms", time.Since(started).Milliseconds()).Info("Refresh completed")
}

package workers

import (
	"context"
	"time"

	"github.com/alimgiray/reviewboard/pkg/logger"
)

// RefreshReason tells why a refresh was requested
type RefreshReason string

const (
	RefreshOnStartup RefreshReason = "startup"
	RefreshOnTimer   RefreshReason = "timer"
	RefreshOnPush    RefreshReason = "push"
)

// RefreshEvent asks the consumer to rebuild the snapshot
type RefreshEvent struct {
	Reason      RefreshReason
	RequestedAt time.Time
}

// RefreshScheduler emits refresh events on a fixed interval and whenever
// Trigger is called. Events are coalesced: while one is waiting to be
// consumed further requests are dropped, since the pending refresh will
// observe their changes anyway.
type RefreshScheduler struct {
	*BaseWorker
	interval time.Duration
	events   chan RefreshEvent
}

func NewRefreshScheduler(workerID string, interval time.Duration) *RefreshScheduler {
	return &RefreshScheduler{
		BaseWorker: NewBaseWorker(workerID),
		interval:   interval,
		events:     make(chan RefreshEvent, 1),
	}
}

// Events is consumed by exactly one worker
func (s *RefreshScheduler) Events() <-chan RefreshEvent {
	return s.events
}

// Trigger requests a refresh in response to a push notification. It never blocks.
func (s *RefreshScheduler) Trigger() bool {
	return s.emit(RefreshOnPush)
}

func (s *RefreshScheduler) emit(reason RefreshReason) bool {
	select {
	case s.events <- RefreshEvent{Reason: reason, RequestedAt: time.Now()}:
		return true
	default:
		return false
	}
}

// Start emits a startup event and then ticks until stopped
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.setRunning(true)
	defer s.setRunning(false)
	log := logger.Component("scheduler").WithField("worker", s.WorkerID)
	log.WithField("interval", s.interval.String()).Info("Refresh scheduler started")

	s.emit(RefreshOnStartup)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Refresh scheduler stopping due to context cancellation")
			return ctx.Err()
		case <-s.StopChan:
			log.Info("Refresh scheduler stopping")
			return nil
		case <-ticker.C:
			if !s.emit(RefreshOnTimer) {
				log.Debug("Refresh already pending, tick skipped")
			}
		}
	}
}

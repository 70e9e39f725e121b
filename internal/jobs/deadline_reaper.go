package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/session"
)

// DeadlineReaperJob sweeps live sessions and terminates any whose round
// countdown has run out. The per-request expiry check is the primary
// enforcement; the reaper catches candidates who simply walk away.
type DeadlineReaperJob struct {
	manager  *session.Manager
	executor *session.Executor
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewDeadlineReaperJob(manager *session.Manager, executor *session.Executor, schedule string, logger *zap.Logger) *DeadlineReaperJob {
	return &DeadlineReaperJob{
		manager:  manager,
		executor: executor,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins the scheduled sweep.
func (drj *DeadlineReaperJob) Start() error {
	_, err := drj.cron.AddFunc(drj.schedule, drj.RunSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule deadline reaper: %w", err)
	}

	drj.cron.Start()
	drj.logger.Info("Deadline reaper started", zap.String("schedule", drj.schedule))
	return nil
}

// Stop stops the scheduled sweep.
func (drj *DeadlineReaperJob) Stop() {
	if drj.cron != nil {
		drj.cron.Stop()
	}
	drj.logger.Info("Deadline reaper stopped")
}

// RunSweep terminates every session whose countdown has expired, then evicts
// sessions that were already terminal when the sweep began. Sessions closed
// by this sweep stay resident until the next one, so a client polling right
// after expiry still sees the terminal outcome instead of a missing session.
func (drj *DeadlineReaperJob) RunSweep() {
	for _, candidateID := range drj.manager.Terminal() {
		drj.manager.Remove(candidateID)
		drj.logger.Debug("Closed session evicted", zap.Uint("candidate_id", candidateID))
	}

	expired := drj.manager.Expired()
	if len(expired) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), drj.timeout)
	defer cancel()

	for _, candidateID := range expired {
		sess, cmds, err := drj.manager.Apply(candidateID, session.DeadlineExpired{})
		if err != nil {
			// already closed by a racing request
			if errors.Is(err, session.ErrSessionClosed) {
				continue
			}
			drj.logger.Warn("Failed to expire session",
				zap.Uint("candidate_id", candidateID),
				zap.Error(err))
			continue
		}

		if _, err := drj.executor.Execute(ctx, sess, cmds); err != nil {
			drj.logger.Error("Failed to execute expiry commands",
				zap.Uint("candidate_id", candidateID),
				zap.Error(err))
			continue
		}

		drj.logger.Info("Session expired by reaper", zap.Uint("candidate_id", candidateID))
	}
}

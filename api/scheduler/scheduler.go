package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/databases"
)

const (
	overdueSweepJob  = "overdue_sweep_job"
	overdueSweepLock = 15 * time.Minute
)

// OverdueSweeper emails the overdue case digests
type OverdueSweeper interface {
	SendOverdueDigests(ctx context.Context) (int, error)
}

// Scheduler handles periodic background jobs of the dispute service
type Scheduler struct {
	cron       *cron.Cron
	Sweeper    OverdueSweeper
	LockDB     databases.SchedulerLockDatabase
	instanceID string
}

// NewScheduler creates a new scheduler instance running the overdue sweep on spec
func NewScheduler(spec string, sweeper OverdueSweeper, lockDB databases.SchedulerLockDatabase) (*Scheduler, error) {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Sweeper:    sweeper,
		LockDB:     lockDB,
		instanceID: instanceID,
	}
	if _, err := s.cron.AddFunc(spec, s.sweepOverdue); err != nil {
		return nil, fmt.Errorf("invalid overdue sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	zap.S().Info("Overdue sweep scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Overdue sweep scheduler stopped")
}

// sweepOverdue sends the overdue digests on whichever instance holds the lock
func (s *Scheduler) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, overdueSweepJob, s.instanceID, overdueSweepLock)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for overdue sweep", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Overdue sweep already running on another instance, skipping")
		return
	}
	defer func() {
		if err := s.LockDB.ReleaseLock(context.Background(), overdueSweepJob, s.instanceID); err != nil {
			zap.S().Warnw("failed to release overdue sweep lock", "error", err)
		}
	}()

	sent, err := s.Sweeper.SendOverdueDigests(ctx)
	if err != nil {
		zap.S().Errorw("overdue sweep failed", "instance", s.instanceID, "error", err)
		return
	}
	zap.S().Infow("Overdue sweep complete", "instance", s.instanceID, "digestsQueued", sent)
}

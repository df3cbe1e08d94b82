package controllers

import (
	"context"
	"time"

	"cryptoportfolio/src/scheduler"
	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"

	"github.com/sirupsen/logrus"
)

const (
	SnapshotJob        = "portfolio_snapshots"
	snapshotJobTimeout = 5 * time.Minute
)

// RunSnapshots records the portfolio value of every user on date.
func (c *Controller) RunSnapshots(ctx context.Context, date time.Time) (*schemas.SnapshotRun, error) {
	return c.Snapshots.RecordSnapshots(utils.WithLogger(ctx, c.Logger), date)
}

// ScheduleSnapshots (re)schedules the daily snapshot job on cronSpec.
func (c *Controller) ScheduleSnapshots(cronSpec string) error {
	c.SchedulerMutex.Lock()
	if existingTask, exists := c.Schedulers[SnapshotJob]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, SnapshotJob)
	}
	c.SchedulerMutex.Unlock()

	newTask, err := scheduler.NewScheduledTask(cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotJobTimeout)
		defer cancel()

		if _, err := c.RunSnapshots(ctx, time.Now()); err != nil {
			c.Logger.WithField("job", SnapshotJob).WithError(err).Error("scheduled job failed")
		}
	})
	if err != nil {
		return err
	}

	c.SchedulerMutex.Lock()
	c.Schedulers[SnapshotJob] = newTask
	c.SchedulerMutex.Unlock()

	c.Logger.WithFields(logrus.Fields{
		"job":  SnapshotJob,
		"cron": cronSpec,
		"next": newTask.Next().Format(time.RFC3339),
	}).Info("job scheduled")
	return nil
}

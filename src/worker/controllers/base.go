package controllers

import (
	"sync"

	"cryptoportfolio/src/scheduler"
	"cryptoportfolio/src/services"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	Snapshots      services.SnapshotServiceI
	Logger         *logrus.Logger
	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(snapshots services.SnapshotServiceI, logger *logrus.Logger) *Controller {
	return &Controller{
		Snapshots:  snapshots,
		Logger:     logger,
		Schedulers: map[string]*scheduler.ScheduledTask{},
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	schedulers := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		schedulers[name] = task
	}
	return schedulers
}

// Stop cancels every scheduled job.
func (c *Controller) Stop() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}

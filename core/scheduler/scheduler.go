package scheduler

import (
	"context"
	"fmt"

	"backoffice/core/logger"

	"github.com/robfig/cron/v3"
)

// CronTask describes a scheduled job
type CronTask struct {
	Name        string
	Description string
	CronExpr    string
	Handler     func(ctx context.Context) error
	Enabled     bool
}

// CronScheduler wraps robfig/cron with logging and task bookkeeping
type CronScheduler struct {
	cron   *cron.Cron
	logger logger.Logger
	tasks  map[string]*CronTask
}

// NewCronScheduler creates a stopped scheduler
func NewCronScheduler(log logger.Logger) *CronScheduler {
	return &CronScheduler{
		cron:   cron.New(),
		logger: log,
		tasks:  make(map[string]*CronTask),
	}
}

// RegisterTask adds a task to the schedule. Disabled tasks are recorded but
// never run.
func (s *CronScheduler) RegisterTask(task *CronTask) error {
	if task.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if _, exists := s.tasks[task.Name]; exists {
		return fmt.Errorf("task %s is already registered", task.Name)
	}

	s.tasks[task.Name] = task
	if !task.Enabled {
		return nil
	}

	_, err := s.cron.AddFunc(task.CronExpr, func() {
		s.logger.Info("running scheduled task", logger.String("task", task.Name))
		if err := task.Handler(context.Background()); err != nil {
			s.logger.Error("scheduled task failed",
				logger.String("task", task.Name),
				logger.String("error", err.Error()))
			return
		}
		s.logger.Info("scheduled task completed", logger.String("task", task.Name))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule task %s: %w", task.Name, err)
	}
	return nil
}

// Start begins executing scheduled tasks
func (s *CronScheduler) Start() {
	s.cron.Start()
	s.logger.Info("cron scheduler started", logger.Int("tasks", len(s.tasks)))
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *CronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

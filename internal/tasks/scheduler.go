package tasks

import (
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/ESPSA/El-Wataneya/internal/config"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// Scheduler handles periodic task scheduling
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *logger.Logger
}

// NewScheduler creates a new task scheduler
func NewScheduler(cfg config.RedisConfig, logger *logger.Logger) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		&asynq.SchedulerOpts{},
	)

	return &Scheduler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if err := s.registerTasks(); err != nil {
		return fmt.Errorf("failed to register tasks: %w", err)
	}

	s.logger.Info("starting task scheduler")
	return s.scheduler.Run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
	s.logger.Info("task scheduler stopped")
}

// registerTasks registers all periodic tasks
func (s *Scheduler) registerTasks() error {
	// Offer statuses track the calendar, so recompute hourly.
	entryID, err := s.scheduler.Register("0 * * * *",
		asynq.NewTask(TaskTypeOffersRefresh, nil, asynq.Queue(QueueDefault)))
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", TaskTypeOffersRefresh, err)
	}
	s.logger.Info("registered %s entry=%s", TaskTypeOffersRefresh, entryID)

	// Dead refresh tokens only accumulate, purge nightly.
	entryID, err = s.scheduler.Register("0 3 * * *",
		asynq.NewTask(TaskTypeTokensCleanup, nil, asynq.Queue(QueueLow)))
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", TaskTypeTokensCleanup, err)
	}
	s.logger.Info("registered %s entry=%s", TaskTypeTokensCleanup, entryID)

	return nil
}

// RegisterCustomTask registers a custom periodic task
func (s *Scheduler) RegisterCustomTask(spec string, taskType string, payload []byte, opts ...asynq.Option) error {
	entryID, err := s.scheduler.Register(spec, asynq.NewTask(taskType, payload, opts...))
	if err != nil {
		return fmt.Errorf("failed to register custom task: %w", err)
	}

	s.logger.Info("registered custom task %s %s %s", taskType, spec, entryID)
	return nil
}

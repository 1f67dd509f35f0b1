package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"articles-backend/internal/config"
	"articles-backend/internal/domains/consistency/job"
	"articles-backend/internal/shared"
	"articles-backend/pkg/logger"
)

type Scheduler struct {
	scheduler    *asynq.Scheduler
	workerConfig config.WorkerConfig
}

// RedisClientOpt maps the Redis config onto an asynq connection option,
// carrying the password and database index along with the address.
func RedisClientOpt(redisConfig config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     redisConfig.Host,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	}
}

func NewScheduler(redisConfig config.RedisConfig, workerConfig config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		RedisClientOpt(redisConfig),
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:    scheduler,
		workerConfig: workerConfig,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerReconcileItemCountsJob(); err != nil {
		return err
	}

	return s.registerWarmOwnerViewsJob()
}

// ================================================
// JOB: Reconcile Item Counts (default: every 10 minutes)
// ================================================
// Item counts on owners are adjusted outside the item write, so a failed
// adjustment leaves a stale count until this job resets it from the
// actual item rows.
func (s *Scheduler) registerReconcileItemCountsJob() error {
	payload, err := json.Marshal(job.ReconcileItemCountsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileItemCounts, payload)

	_, err = s.scheduler.Register(
		s.workerConfig.ReconcileInterval,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReconcileItemCounts job", err)
		return err
	}

	logger.Info("✓ Registered ReconcileItemCounts", map[string]interface{}{
		"interval": s.workerConfig.ReconcileInterval,
	})
	return nil
}

// ================================================
// JOB: Warm Owner Views (default: every 30 minutes)
// ================================================
func (s *Scheduler) registerWarmOwnerViewsJob() error {
	task := asynq.NewTask(shared.TypeWarmOwnerViews, nil)

	_, err := s.scheduler.Register(
		s.workerConfig.WarmViewsInterval,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(0),
		asynq.Timeout(2*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register WarmOwnerViews job", err)
		return err
	}

	logger.Info("✓ Registered WarmOwnerViews", map[string]interface{}{
		"interval": s.workerConfig.WarmViewsInterval,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ESPSA/El-Wataneya/internal/config"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// TaskClient handles task enqueuing with shared Redis connection state.
type TaskClient struct {
	client      *asynq.Client
	redisClient *redis.Client
	logger      *logger.Logger
}

// ContactNotifyPayload carries the id of the stored contact message.
type ContactNotifyPayload struct {
	MessageID string `json:"message_id"`
}

// NewTaskClient creates a new TaskClient from the Redis configuration.
func NewTaskClient(cfg config.RedisConfig) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &TaskClient{
		client:      asynq.NewClient(redisOpt),
		redisClient: redisClient,
		logger:      logger.New("TASKS"),
	}
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

// Redis exposes the shared connection for the rate limiter.
func (c *TaskClient) Redis() *redis.Client {
	return c.redisClient
}

// EnqueueContactNotify queues a staff notification for a contact message.
func (c *TaskClient) EnqueueContactNotify(ctx context.Context, messageID string) error {
	payload, err := json.Marshal(ContactNotifyPayload{MessageID: messageID})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeContactNotify, payload,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue contact notification: %w", err)
	}

	c.logger.Info("enqueued %s id=%s queue=%s", task.Type(), info.ID, info.Queue)
	return nil
}

// Close closes the underlying clients
func (c *TaskClient) Close() error {
	if err := c.client.Close(); err != nil {
		return err
	}
	return c.redisClient.Close()
}

package rankinginfra

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking"
)

// RedisQueue implements the rebuild queue on a Redis list. Members are the
// plain position strings; a position queued twice just rebuilds twice.
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a position to the rebuild queue.
func (q *RedisQueue) Enqueue(ctx context.Context, position kernel.Position) error {
	if err := q.client.LPush(ctx, q.queueName, position.String()).Err(); err != nil {
		return ranking.ErrQueue(fmt.Errorf("enqueue rebuild for %s: %w", position, err))
	}
	return nil
}

// Dequeue gets the next position (blocking with timeout). An empty
// position means the timeout elapsed with nothing queued.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (kernel.Position, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", ranking.ErrQueue(fmt.Errorf("dequeue rebuild: %w", err))
	}

	if len(result) < 2 {
		return "", ranking.ErrQueue(fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result)))
	}
	return kernel.Position(result[1]), nil
}

// EnqueueDelayed schedules a rebuild for later (used when a rebuild fails).
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, position kernel.Position, delay time.Duration) error {
	score := float64(time.Now().Add(delay).Unix())
	delayedQueue := q.queueName + ":delayed"

	if err := q.client.ZAdd(ctx, delayedQueue, &redis.Z{
		Score:  score,
		Member: position.String(),
	}).Err(); err != nil {
		return ranking.ErrQueue(fmt.Errorf("enqueue delayed rebuild for %s: %w", position, err))
	}
	return nil
}

// NotifyRebuild lets posting registration signal a rebuild without
// depending on queue mechanics.
func (q *RedisQueue) NotifyRebuild(ctx context.Context, position kernel.Position) error {
	return q.Enqueue(ctx, position)
}

// MoveDelayedToReady moves due delayed rebuilds to the main queue.
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	delayedQueue := q.queueName + ":delayed"
	now := float64(time.Now().Unix())

	due, err := q.client.ZRangeByScore(ctx, delayedQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, ranking.ErrQueue(fmt.Errorf("get delayed rebuilds: %w", err))
	}
	if len(due) == 0 {
		return 0, nil
	}

	pipe := q.client.Pipeline()
	for _, member := range due {
		pipe.LPush(ctx, q.queueName, member)
		pipe.ZRem(ctx, delayedQueue, member)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, ranking.ErrQueue(fmt.Errorf("move delayed rebuilds to ready: %w", err))
	}

	return len(due), nil
}

// QueueSize returns the number of pending rebuilds.
func (q *RedisQueue) QueueSize(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, ranking.ErrQueue(fmt.Errorf("get queue size: %w", err))
	}
	return size, nil
}

// Ping checks the Redis connection.
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const (
	redisRunListKey   = "vrp:runs"
	redisRunKeyPrefix = "vrp:run:"
)

// Redis-backed implementation of the RunRepository port.
//
// Summaries are pushed as JSON onto a capped list (newest at the head) and
// mirrored under a per-id key for lookups. Per-id keys expire after TTL so
// they do not outlive the list by much. Re-saving a known id is a no-op.
type RedisRunRepository struct {
	Client *redis.Client
	Limit  int
	TTL    time.Duration
}

func NewRedisRunRepository(client *redis.Client, limit int) *RedisRunRepository {
	if limit < 1 {
		limit = 1
	}
	return &RedisRunRepository{Client: client, Limit: limit, TTL: 7 * 24 * time.Hour}
}

func (r *RedisRunRepository) Save(ctx context.Context, run domain.RunSummary) (err error) {
	defer obs.Time(ctx, "runs.redis.Save")(&err)

	if r.Client == nil {
		return errors.New("redis run repository: client is nil")
	}
	if run.ID == "" {
		return fmt.Errorf("save run: %w: id is required", domain.ErrInvalidInput)
	}

	b, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("save run id=%s: marshal: %w", run.ID, err)
	}

	// The per-id key doubles as the "already saved" marker.
	created, err := r.Client.SetNX(ctx, redisRunKeyPrefix+run.ID, b, r.TTL).Result()
	if err != nil {
		return fmt.Errorf("save run id=%s: setnx: %w", run.ID, err)
	}
	if !created {
		return nil
	}

	_, err = r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, redisRunListKey, b)
		pipe.LTrim(ctx, redisRunListKey, 0, int64(r.Limit-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save run id=%s: redis pipeline: %w", run.ID, err)
	}
	return nil
}

func (r *RedisRunRepository) List(ctx context.Context, limit int) (_ []domain.RunSummary, err error) {
	defer obs.Time(ctx, "runs.redis.List")(&err)

	if r.Client == nil {
		return nil, errors.New("redis run repository: client is nil")
	}
	if limit < 1 || limit > r.Limit {
		limit = r.Limit
	}

	items, err := r.Client.LRange(ctx, redisRunListKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list runs: lrange: %w", err)
	}

	runs := make([]domain.RunSummary, 0, len(items))
	for i, item := range items {
		var run domain.RunSummary
		if err := json.Unmarshal([]byte(item), &run); err != nil {
			return nil, fmt.Errorf("list runs: decode item #%d: %w", i, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r *RedisRunRepository) Get(ctx context.Context, id string) (_ domain.RunSummary, err error) {
	defer obs.Time(ctx, "runs.redis.Get")(&err)

	if r.Client == nil {
		return domain.RunSummary{}, errors.New("redis run repository: client is nil")
	}

	b, err := r.Client.Get(ctx, redisRunKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RunSummary{}, fmt.Errorf("get run %q: %w", id, domain.ErrRunNotFound)
	}
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("get run %q: %w", id, err)
	}

	var run domain.RunSummary
	if err := json.Unmarshal(b, &run); err != nil {
		return domain.RunSummary{}, fmt.Errorf("get run %q: decode: %w", id, err)
	}
	return run, nil
}

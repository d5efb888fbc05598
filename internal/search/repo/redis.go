package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/soundbymood/server/internal/core/error"
	"github.com/soundbymood/server/internal/search/model"
	logx "github.com/soundbymood/server/pkg/logger"
)

// RedisStore keeps jobs and results as JSON values with a TTL refreshed on
// every write.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func jobKey(jobID string) string     { return fmt.Sprintf("job:%s", jobID) }
func resultsKey(jobID string) string { return fmt.Sprintf("results:%s", jobID) }

func (s *RedisStore) PutJob(ctx context.Context, jobID string, job *model.Job) error {
	return s.put(ctx, jobKey(jobID), job)
}

func (s *RedisStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	ok, err := s.get(ctx, jobKey(jobID), &job)
	if err != nil || !ok {
		return nil, err
	}
	return &job, nil
}

func (s *RedisStore) JobExists(ctx context.Context, jobID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, jobKey(jobID)).Result()
	if err != nil {
		return false, errx.WrapRedis(err)
	}
	return n > 0, nil
}

func (s *RedisStore) PutResults(ctx context.Context, jobID string, results *model.SearchResults) error {
	return s.put(ctx, resultsKey(jobID), results)
}

func (s *RedisStore) GetResults(ctx context.Context, jobID string) (*model.SearchResults, error) {
	var results model.SearchResults
	ok, err := s.get(ctx, resultsKey(jobID), &results)
	if err != nil || !ok {
		return nil, err
	}
	return &results, nil
}

func (s *RedisStore) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to marshal store value")
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// get reports (false, nil) for an absent or expired key.
func (s *RedisStore) get(ctx context.Context, key string, v any) (bool, error) {
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to read from redis")
		return false, errx.WrapRedis(err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

var _ JobStore = (*RedisStore)(nil)

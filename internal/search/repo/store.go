// Package repo persists jobs and final results across the asynchronous
// request lifecycle. The store is a plain key-value collaborator with TTL:
// last write for a key wins, and reads may return absent for an expired or
// not-yet-written key.
package repo

import (
	"context"
	"time"

	"github.com/soundbymood/server/internal/search/model"
	logx "github.com/soundbymood/server/pkg/logger"
	pkgredis "github.com/soundbymood/server/pkg/redis"
)

// JobStore stores conversation jobs and their final results under a TTL.
// Get methods return (nil, nil) for an absent key.
type JobStore interface {
	PutJob(ctx context.Context, jobID string, job *model.Job) error
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	JobExists(ctx context.Context, jobID string) (bool, error)

	PutResults(ctx context.Context, jobID string, results *model.SearchResults) error
	GetResults(ctx context.Context, jobID string) (*model.SearchResults, error)
}

// NewStore returns a Redis-backed store when Redis is reachable, falling
// back to the in-memory store with a warning otherwise. The core only needs
// key-value semantics, so a process-local fallback is a valid degraded mode.
func NewStore(cfg pkgredis.Config, ttl time.Duration) JobStore {
	rdb, err := cfg.New()
	if err != nil {
		logx.Warn().Err(err).Msg("redis unavailable, falling back to in-memory job store")
		return NewMemoryStore(ttl)
	}
	logx.Info().Msg("using redis job store")
	return NewRedisStore(rdb, ttl)
}

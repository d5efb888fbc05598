package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/soundbymood/server/internal/search/model"
)

// MemoryStore is the process-local fallback when Redis is unavailable.
// Values are stored as JSON bytes so the round-trip behaves exactly like
// the Redis-backed store; entries expire lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) PutJob(ctx context.Context, jobID string, job *model.Job) error {
	return s.put(jobKey(jobID), job)
}

func (s *MemoryStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	ok, err := s.get(jobKey(jobID), &job)
	if err != nil || !ok {
		return nil, err
	}
	return &job, nil
}

func (s *MemoryStore) JobExists(ctx context.Context, jobID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[jobKey(jobID)]
	return ok && !s.expired(e), nil
}

func (s *MemoryStore) PutResults(ctx context.Context, jobID string, results *model.SearchResults) error {
	return s.put(resultsKey(jobID), results)
}

func (s *MemoryStore) GetResults(ctx context.Context, jobID string) (*model.SearchResults, error) {
	var results model.SearchResults
	ok, err := s.get(resultsKey(jobID), &results)
	if err != nil || !ok {
		return nil, err
	}
	return &results, nil
}

func (s *MemoryStore) put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var expires time.Time
	if s.ttl > 0 {
		expires = s.now().Add(s.ttl)
	}
	s.entries[key] = memoryEntry{data: b, expiresAt: expires}
	return nil
}

func (s *MemoryStore) get(key string, v any) (bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.expired(e) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.data, v); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}

var _ JobStore = (*MemoryStore)(nil)

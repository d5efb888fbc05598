package repo

import (
	"context"
	"testing"
	"time"

	"github.com/soundbymood/server/internal/search/model"
)

func TestMemoryStoreJobRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	count := 87
	job := &model.Job{
		Status:      model.JobDone,
		QueryText:   "rainy evening piano",
		StartedAt:   started,
		Model:       "gemini-2.5-flash",
		ResultCount: &count,
		Conversation: &model.ConversationState{
			OriginalQuery: "rainy evening piano",
			Steps: []model.RefinementStep{
				{
					StepNumber:  1,
					Kind:        model.StepInitial,
					UserInput:   "rainy evening piano",
					ResultCount: 87,
					Filters:     &model.FilterParameters{GenresIncludeAny: "classical"},
					TargetRange: "50-150",
					Timestamp:   started,
				},
			},
			CurrentStep: 1,
		},
	}

	if err := store.PutJob(ctx, "j1", job); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.JobDone || got.QueryText != job.QueryText {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.ResultCount == nil || *got.ResultCount != 87 {
		t.Fatalf("result count = %v", got.ResultCount)
	}

	// The conversation history must survive storage intact, including the
	// nested filter parameters.
	if got.Conversation == nil || len(got.Conversation.Steps) != 1 {
		t.Fatalf("conversation lost: %+v", got.Conversation)
	}
	step := got.Conversation.Steps[0]
	if step.Kind != model.StepInitial || step.Filters.GenresIncludeAny != "classical" {
		t.Fatalf("step lost fields: %+v", step)
	}
}

func TestMemoryStoreAbsentKeyIsNilNil(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	job, err := store.GetJob(ctx, "nope")
	if err != nil || job != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", job, err)
	}
	results, err := store.GetResults(ctx, "nope")
	if err != nil || results != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", results, err)
	}
	exists, err := store.JobExists(ctx, "nope")
	if err != nil || exists {
		t.Fatalf("got (%v, %v), want (false, nil)", exists, err)
	}
}

func TestMemoryStoreEntriesExpire(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	if err := store.PutJob(ctx, "j1", &model.Job{Status: model.JobQueued}); err != nil {
		t.Fatalf("put: %v", err)
	}

	clock = clock.Add(30 * time.Second)
	if job, _ := store.GetJob(ctx, "j1"); job == nil {
		t.Fatalf("entry expired too early")
	}

	clock = clock.Add(31 * time.Second)
	if job, _ := store.GetJob(ctx, "j1"); job != nil {
		t.Fatalf("entry did not expire")
	}
	if exists, _ := store.JobExists(ctx, "j1"); exists {
		t.Fatalf("expired entry still reported existing")
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	if err := store.PutJob(ctx, "j1", &model.Job{Status: model.JobQueued}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.PutJob(ctx, "j1", &model.Job{Status: model.JobRunning}); err != nil {
		t.Fatalf("put: %v", err)
	}

	job, err := store.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if job.Status != model.JobRunning {
		t.Fatalf("status = %s, want running", job.Status)
	}
}

func TestMemoryStoreResultsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	results := &model.SearchResults{
		JobID:       "j1",
		ResultCount: 2,
		LLMMessage:  "Two tracks for you.",
		Tracks: []model.TrackResult{
			{SpotifyTrackID: "a", RankPosition: 1, RelevanceScore: 20},
			{SpotifyTrackID: "b", RankPosition: 2, RelevanceScore: 10},
		},
	}
	if err := store.PutResults(ctx, "j1", results); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetResults(ctx, "j1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ResultCount != 2 || len(got.Tracks) != 2 || got.Tracks[0].SpotifyTrackID != "a" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

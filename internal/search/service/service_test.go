package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	errx "github.com/soundbymood/server/internal/core/error"
	"github.com/soundbymood/server/internal/search/catalog"
	"github.com/soundbymood/server/internal/search/engine"
	"github.com/soundbymood/server/internal/search/model"
	"github.com/soundbymood/server/internal/search/refine"
	"github.com/soundbymood/server/internal/search/repo"
)

type scriptedGateway struct {
	responses []*model.FilterParameters
	err       error
	calls     int
}

func (g *scriptedGateway) Generate(ctx context.Context, req model.GenerateRequest) (*model.FilterParameters, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	p := g.responses[0]
	if len(g.responses) > 1 {
		g.responses = g.responses[1:]
	}
	return p, nil
}

func inBandParams() *model.FilterParameters {
	return &model.FilterParameters{
		GenresIncludeAny: "pop",
		UserMessage:      "Here you go.",
		Reflection:       "Kept the pop filter.",
	}
}

func testService(t *testing.T, gw model.Gateway) (*Service, *repo.MemoryStore) {
	t.Helper()

	tracks := make([]model.Track, 0, 120)
	for i := 0; i < 120; i++ {
		genre := "pop"
		if i%3 == 0 {
			genre = "rock"
		}
		tracks = append(tracks, model.Track{
			SpotifyTrackID: fmt.Sprintf("id-%03d", i),
			Genres:         genre,
			EnergyDecile:   1 + i%10,
		})
	}
	holder := catalog.NewHolder(catalog.New(tracks))

	cfg := model.SearchConfig{
		TargetMin:        50,
		TargetMax:        150,
		MaxLLMCalls:      3,
		SummaryTopK:      5,
		GenreBoostPoints: 50,
		MaxRankedResults: 150,
		JobTTL:           "1h",
		JobTimeout:       "3m",
	}
	eng := engine.New(model.DefaultFeatureConfig(), cfg)
	ctrl := refine.New(gw, eng, holder, cfg)
	store := repo.NewMemoryStore(time.Hour)

	svc, err := New(store, ctrl, eng, cfg, "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	// Run turns inline so assertions see the finished job.
	svc.launch = func(fn func()) { fn() }
	return svc, store
}

func TestStartConversationCompletesJob(t *testing.T) {
	ctx := context.Background()
	gw := &scriptedGateway{responses: []*model.FilterParameters{inBandParams()}}
	svc, _ := testService(t, gw)

	jobID, err := svc.StartConversation(ctx, "upbeat pop", nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if jobID == "" {
		t.Fatalf("empty job id")
	}

	job, err := svc.GetJob(ctx, jobID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if job.Status != model.JobDone {
		t.Fatalf("status = %s (%s), want done", job.Status, job.ErrorMessage)
	}
	if job.FinishedAt == nil || job.ResultCount == nil {
		t.Fatalf("completion fields missing: %+v", job)
	}
	// 80 of the 120 test tracks are tagged pop.
	if *job.ResultCount != 80 {
		t.Fatalf("result count = %d, want 80", *job.ResultCount)
	}
	if len(job.Conversation.Steps) != 2 {
		t.Fatalf("steps = %d, want 2 (initial + one refinement)", len(job.Conversation.Steps))
	}

	results, err := svc.GetResults(ctx, jobID)
	if err != nil || results == nil {
		t.Fatalf("results: (%v, %v)", results, err)
	}
	if results.JobID != jobID || len(results.Tracks) != 80 {
		t.Fatalf("results = %d tracks for %s", len(results.Tracks), results.JobID)
	}
	if results.Tracks[0].RankPosition != 1 {
		t.Fatalf("rank = %d, want 1", results.Tracks[0].RankPosition)
	}
	if results.LLMMessage != "Here you go." {
		t.Fatalf("message = %q", results.LLMMessage)
	}
}

func TestStartConversationGatewayFailureMarksJobError(t *testing.T) {
	ctx := context.Background()
	gw := &scriptedGateway{err: errors.New("model unavailable")}
	svc, _ := testService(t, gw)

	jobID, err := svc.StartConversation(ctx, "anything", nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	job, err := svc.GetJob(ctx, jobID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if job.Status != model.JobError {
		t.Fatalf("status = %s, want error", job.Status)
	}
	if job.ErrorMessage == "" {
		t.Fatalf("error message missing")
	}
	if results, _ := svc.GetResults(ctx, jobID); results != nil {
		t.Fatalf("failed job stored results")
	}
}

func TestResumeConversationAppendsToHistory(t *testing.T) {
	ctx := context.Background()
	gw := &scriptedGateway{responses: []*model.FilterParameters{inBandParams()}}
	svc, _ := testService(t, gw)

	jobID, err := svc.StartConversation(ctx, "upbeat pop", nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	callsAfterStart := gw.calls

	if err := svc.ResumeConversation(ctx, jobID, "fewer ballads please"); err != nil {
		t.Fatalf("resume: %v", err)
	}

	job, err := svc.GetJob(ctx, jobID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if job.Status != model.JobDone {
		t.Fatalf("status = %s (%s), want done", job.Status, job.ErrorMessage)
	}
	if got := len(job.Conversation.Steps); got != 3 {
		t.Fatalf("steps = %d, want 3", got)
	}
	last := job.Conversation.LastStep()
	if last.Kind != model.StepUserRefine || last.UserInput != "fewer ballads please" {
		t.Fatalf("last step = %+v", last)
	}
	if gw.calls != callsAfterStart+1 {
		t.Fatalf("resume used %d calls, want 1", gw.calls-callsAfterStart)
	}
}

func TestResumeConversationRejectsUnfinishedJob(t *testing.T) {
	ctx := context.Background()
	svc, store := testService(t, &scriptedGateway{responses: []*model.FilterParameters{inBandParams()}})

	if err := store.PutJob(ctx, "j-running", &model.Job{Status: model.JobRunning}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := svc.ResumeConversation(ctx, "j-running", "feedback"); err == nil {
		t.Fatalf("expected error for running job")
	}
}

func TestResumeConversationUnknownJob(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService(t, &scriptedGateway{})

	err := svc.ResumeConversation(ctx, "missing", "feedback")
	if err == nil {
		t.Fatalf("expected error")
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Status != 404 {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestGetJobUnknownIs404(t *testing.T) {
	svc, _ := testService(t, &scriptedGateway{})

	_, err := svc.GetJob(context.Background(), "missing")
	var e *errx.Error
	if !errors.As(err, &e) || e.Status != 404 {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestGetStepSummaries(t *testing.T) {
	svc, _ := testService(t, &scriptedGateway{})

	state := model.NewConversationState("q")
	state.AppendStep(model.RefinementStep{Kind: model.StepInitial, UserInput: "q", ResultCount: 500, TargetRange: "50-150"})
	state.AppendStep(model.RefinementStep{Kind: model.StepAutoRefine, ResultCount: 90, TargetRange: "50-150"})

	digests := svc.GetStepSummaries(state)
	if len(digests) != 2 {
		t.Fatalf("digests = %d, want 2", len(digests))
	}
	if digests[0].StepNumber != 1 || digests[0].Kind != model.StepInitial || digests[0].ResultCount != 500 {
		t.Fatalf("digest = %+v", digests[0])
	}
	if digests[1].StepNumber != 2 || digests[1].Kind != model.StepAutoRefine {
		t.Fatalf("digest = %+v", digests[1])
	}
	if svc.GetStepSummaries(nil) != nil {
		t.Fatalf("nil state should yield nil digests")
	}
}

// Package service exposes the core's operations to the API layer: start a
// conversation, resume it with feedback, poll job state, and read per-step
// digests. Each conversation turn runs as one independent background task;
// the catalog is the only shared state and it is immutable.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	errx "github.com/soundbymood/server/internal/core/error"
	"github.com/soundbymood/server/internal/search/engine"
	"github.com/soundbymood/server/internal/search/model"
	"github.com/soundbymood/server/internal/search/refine"
	"github.com/soundbymood/server/internal/search/repo"
	logx "github.com/soundbymood/server/pkg/logger"
)

// Service wires the refinement controller, the engine and the job store.
type Service struct {
	store      repo.JobStore
	controller *refine.Controller
	engine     *engine.Engine
	modelName  string
	timeout    time.Duration

	// launch runs a turn in the background; replaced in tests to run inline.
	launch func(func())
}

// New builds a Service. The job timeout comes from SearchConfig.JobTimeout.
func New(store repo.JobStore, controller *refine.Controller, eng *engine.Engine, cfg model.SearchConfig, modelName string) (*Service, error) {
	timeout, err := time.ParseDuration(cfg.JobTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid job timeout %q: %w", cfg.JobTimeout, err)
	}
	return &Service{
		store:      store,
		controller: controller,
		engine:     eng,
		modelName:  modelName,
		timeout:    timeout,
		launch:     func(fn func()) { go fn() },
	}, nil
}

// StartConversation creates a job for the query and processes it in the
// background. The returned job id is the handle the API layer polls.
func (s *Service) StartConversation(ctx context.Context, queryText string, image *model.ImageAttachment) (string, error) {
	jobID := uuid.NewString()
	job := &model.Job{
		Status:    model.JobQueued,
		QueryText: queryText,
		StartedAt: time.Now(),
		Model:     s.modelName,
	}
	if err := s.store.PutJob(ctx, jobID, job); err != nil {
		return "", err
	}

	s.launch(func() { s.processSearch(jobID, queryText, image) })
	return jobID, nil
}

// ResumeConversation continues a completed job's conversation with new user
// feedback, appending further steps to the same history.
func (s *Service) ResumeConversation(ctx context.Context, jobID, feedback string) error {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return errx.New(nil, http.StatusNotFound, errx.JobNotFoundMessage)
	}
	if job.Status != model.JobDone {
		return fmt.Errorf("job %s is %s, only completed jobs can be refined", jobID, job.Status)
	}
	if job.Conversation == nil || len(job.Conversation.Steps) == 0 {
		return fmt.Errorf("job %s has no conversation history", jobID)
	}

	job.Status = model.JobRunning
	job.FinishedAt = nil
	if err := s.store.PutJob(ctx, jobID, job); err != nil {
		return err
	}

	state := job.Conversation
	s.launch(func() { s.processResume(jobID, state, feedback) })
	return nil
}

// GetJob returns the stored job state, or a not-found error for an unknown
// or expired id.
func (s *Service) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errx.New(nil, http.StatusNotFound, errx.JobNotFoundMessage)
	}
	return job, nil
}

// GetResults returns the final ranked results of a completed job, or nil
// when not (yet) available.
func (s *Service) GetResults(ctx context.Context, jobID string) (*model.SearchResults, error) {
	return s.store.GetResults(ctx, jobID)
}

// GetStepSummaries flattens a conversation into ordered per-step digests.
func (s *Service) GetStepSummaries(state *model.ConversationState) []model.StepDigest {
	if state == nil {
		return nil
	}
	digests := make([]model.StepDigest, 0, len(state.Steps))
	for _, step := range state.Steps {
		digests = append(digests, model.StepDigest{
			StepNumber:  step.StepNumber,
			Kind:        step.Kind,
			UserInput:   step.UserInput,
			ResultCount: step.ResultCount,
			UserMessage: step.UserMessage,
			Rationale:   step.Rationale,
			TargetRange: step.TargetRange,
		})
	}
	return digests
}

func (s *Service) processSearch(jobID, queryText string, image *model.ImageAttachment) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	state := model.NewConversationState(queryText)
	s.markRunning(ctx, jobID, state)

	outcome, err := s.controller.Run(ctx, state, image)
	s.finishTurn(jobID, state, outcome, err)
}

func (s *Service) processResume(jobID string, state *model.ConversationState, feedback string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	outcome, err := s.controller.Resume(ctx, state, feedback)
	s.finishTurn(jobID, state, outcome, err)
}

func (s *Service) markRunning(ctx context.Context, jobID string, state *model.ConversationState) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil || job == nil {
		logx.Error().Err(err).Str("job_id", jobID).Msg("failed to load job for running transition")
		return
	}
	job.Status = model.JobRunning
	job.Conversation = state
	if err := s.store.PutJob(ctx, jobID, job); err != nil {
		logx.Error().Err(err).Str("job_id", jobID).Msg("failed to mark job running")
	}
}

// finishTurn persists the turn's terminal state. Steps appended before a
// failure remain in the stored history; a failed turn is reported with its
// cause and is never conflated with a successful empty result.
func (s *Service) finishTurn(jobID string, state *model.ConversationState, outcome *refine.Outcome, runErr error) {
	// The turn context may already be canceled or expired; persist under a
	// fresh one.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil || job == nil {
		logx.Error().Err(err).Str("job_id", jobID).Msg("failed to load job for completion")
		return
	}

	now := time.Now()
	job.FinishedAt = &now
	job.Conversation = state

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			job.Status = model.JobCanceled
		} else {
			job.Status = model.JobError
		}
		job.ErrorMessage = runErr.Error()
		if err := s.store.PutJob(ctx, jobID, job); err != nil {
			logx.Error().Err(err).Str("job_id", jobID).Msg("failed to store failed job")
		}
		logx.Error().Err(runErr).Str("job_id", jobID).Msg("conversation turn failed")
		return
	}

	results := s.engine.Rank(jobID, outcome.Results, outcome.Params)
	count := outcome.Results.Count()

	job.Status = model.JobDone
	job.CurrentFilters = outcome.Params
	job.ResultCount = &count

	if err := s.store.PutJob(ctx, jobID, job); err != nil {
		logx.Error().Err(err).Str("job_id", jobID).Msg("failed to store completed job")
		return
	}
	if err := s.store.PutResults(ctx, jobID, results); err != nil {
		logx.Error().Err(err).Str("job_id", jobID).Msg("failed to store results")
		return
	}

	logx.Info().
		Str("job_id", jobID).
		Int("result_count", count).
		Int("steps", len(state.Steps)).
		Msg("conversation turn completed")
}

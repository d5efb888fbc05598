// Package refine orchestrates the multi-turn refinement loop: build prompt,
// call the gateway, apply the parameters to the catalog, summarize, then
// decide whether to keep refining. Each completed iteration appends one
// immutable step to the conversation history.
package refine

import (
	"context"
	"fmt"
	"time"

	"github.com/soundbymood/server/internal/search/catalog"
	"github.com/soundbymood/server/internal/search/engine"
	"github.com/soundbymood/server/internal/search/model"
	"github.com/soundbymood/server/internal/search/prompts"
	logx "github.com/soundbymood/server/pkg/logger"
)

// Outcome is the terminal result of one conversation turn: the last
// parameters, the scored rows they produced, and their summary.
type Outcome struct {
	Params  *model.FilterParameters
	Results *engine.ResultSet
	Summary *model.Summary
}

// Controller drives the budgeted refine/evaluate loop for one conversation
// at a time. LLM calls within a turn are strictly sequential: step N's
// prompt embeds step N-1's summary.
type Controller struct {
	gateway model.Gateway
	engine  *engine.Engine
	holder  *catalog.Holder
	cfg     model.SearchConfig
	now     func() time.Time
}

// New constructs a Controller.
func New(gw model.Gateway, eng *engine.Engine, holder *catalog.Holder, cfg model.SearchConfig) *Controller {
	return &Controller{
		gateway: gw,
		engine:  eng,
		holder:  holder,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Run executes a fresh conversation turn: one initial call, then automatic
// refinements until the result count lands in the target band or the call
// budget runs out. The first pass is never accepted as final even when it
// lands in-band; at least one refinement always happens.
func (c *Controller) Run(ctx context.Context, state *model.ConversationState, image *model.ImageAttachment) (*Outcome, error) {
	cat := c.holder.Current()

	params, err := c.gateway.Generate(ctx, model.GenerateRequest{
		Prompt: prompts.Initial(state.OriginalQuery),
		Image:  image,
	})
	if err != nil {
		return nil, err
	}
	current := c.applyAndRecord(cat, state, model.StepInitial, state.OriginalQuery, params)

	return c.loop(ctx, cat, state, current, 1, 0, "")
}

// Resume continues a completed conversation with new user feedback: one
// user-seeded refinement call, then the same automatic loop on whatever call
// budget remains for this turn. Steps append to the same history.
func (c *Controller) Resume(ctx context.Context, state *model.ConversationState, feedback string) (*Outcome, error) {
	last := state.LastStep()
	if last == nil {
		return nil, fmt.Errorf("cannot resume a conversation with no steps")
	}
	cat := c.holder.Current()

	prompt, err := prompts.Refine(prompts.RefineInput{
		OriginalQuery: state.OriginalQuery,
		Feedback:      feedback,
		Previous:      last.Filters,
		Summary:       last.Summary,
		Attempt:       1,
		Budget:        c.cfg.MaxLLMCalls,
		TargetMin:     c.cfg.TargetMin,
		TargetMax:     c.cfg.TargetMax,
	})
	if err != nil {
		return nil, err
	}

	params, err := c.gateway.Generate(ctx, model.GenerateRequest{
		Prompt:  prompt,
		History: historyTurns(state),
	})
	if err != nil {
		return nil, err
	}
	current := c.applyAndRecord(cat, state, model.StepUserRefine, feedback, params)

	return c.loop(ctx, cat, state, current, 1, 1, feedback)
}

// loop runs automatic refinements until the stop condition holds: count in
// band with at least one refinement done, or the turn's LLM call budget
// exhausted. Budget exhaustion out of band is a valid terminal outcome; the
// last-computed result set stands.
func (c *Controller) loop(ctx context.Context, cat *catalog.Catalog, state *model.ConversationState, current *Outcome, callsUsed, refinements int, feedback string) (*Outcome, error) {
	for callsUsed < c.cfg.MaxLLMCalls {
		// Cancellation is honored between iterations only; appended steps
		// stay valid history.
		if err := ctx.Err(); err != nil {
			return current, err
		}

		count := current.Results.Count()
		if c.cfg.InBand(count) && refinements >= 1 {
			break
		}

		prompt, err := prompts.Refine(prompts.RefineInput{
			OriginalQuery: state.OriginalQuery,
			Feedback:      feedback,
			Previous:      current.Params,
			Summary:       current.Summary,
			Attempt:       refinements + 1,
			Budget:        c.cfg.MaxLLMCalls,
			TargetMin:     c.cfg.TargetMin,
			TargetMax:     c.cfg.TargetMax,
		})
		if err != nil {
			return nil, err
		}

		params, err := c.gateway.Generate(ctx, model.GenerateRequest{
			Prompt:  prompt,
			History: historyTurns(state),
		})
		if err != nil {
			return nil, err
		}

		input := fmt.Sprintf("Auto-refine iteration %d (previous count: %d)", refinements+1, count)
		current = c.applyAndRecord(cat, state, model.StepAutoRefine, input, params)
		callsUsed++
		refinements++
	}
	return current, nil
}

// applyAndRecord runs the synchronous filter/score/summarize pass and
// appends one completed step.
func (c *Controller) applyAndRecord(cat *catalog.Catalog, state *model.ConversationState, kind model.StepKind, input string, params *model.FilterParameters) *Outcome {
	rs := c.engine.Apply(cat, params)
	summary := c.engine.Summarize(rs)

	state.AppendStep(model.RefinementStep{
		Kind:        kind,
		UserInput:   input,
		Filters:     params,
		ResultCount: rs.Count(),
		UserMessage: params.UserMessage,
		Rationale:   params.Reflection,
		Summary:     summary,
		Timestamp:   c.now(),
		TargetRange: c.cfg.TargetRange(),
	})

	logx.Debug().
		Str("kind", string(kind)).
		Int("step", state.CurrentStep).
		Int("result_count", rs.Count()).
		Str("target_range", c.cfg.TargetRange()).
		Msg("refinement step recorded")

	return &Outcome{Params: params, Results: rs, Summary: summary}
}

// historyTurns maps completed steps onto the rolling history replayed to
// the model: the input that triggered each step and the model's user-facing
// message for it.
func historyTurns(state *model.ConversationState) []model.HistoryTurn {
	turns := make([]model.HistoryTurn, 0, len(state.Steps))
	for _, step := range state.Steps {
		turns = append(turns, model.HistoryTurn{
			Input:  step.UserInput,
			Output: step.UserMessage,
		})
	}
	return turns
}

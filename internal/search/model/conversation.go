package model

import "time"

// StepKind identifies what triggered a refinement step.
type StepKind string

const (
	StepInitial    StepKind = "initial"
	StepAutoRefine StepKind = "auto_refine"
	StepUserRefine StepKind = "user_refine"
)

// RefinementStep is one completed LLM call plus its filter/score/summarize
// pass. Steps are immutable once appended to a conversation.
type RefinementStep struct {
	StepNumber  int               `json:"step_number"`
	Kind        StepKind          `json:"step_type"`
	UserInput   string            `json:"user_input"`
	Filters     *FilterParameters `json:"filters_json"`
	ResultCount int               `json:"result_count"`
	UserMessage string            `json:"user_message"`
	Rationale   string            `json:"rationale"`
	Summary     *Summary          `json:"result_summary,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	TargetRange string            `json:"target_range,omitempty"`
}

// ConversationState is the append-only log of refinement steps for one
// search conversation. Insertion order is chronological order is step-number
// order; steps are never removed or reordered. The state is owned by the
// job that created it and is never shared mutably across concurrent turns.
type ConversationState struct {
	OriginalQuery        string           `json:"original_query"`
	Steps                []RefinementStep `json:"steps"`
	CurrentStep          int              `json:"current_step"`
	TotalAutoRefinements int              `json:"total_auto_refinements"`
}

// NewConversationState starts a conversation for the given query.
func NewConversationState(query string) *ConversationState {
	return &ConversationState{
		OriginalQuery: query,
		Steps:         []RefinementStep{},
	}
}

// AppendStep assigns the next step number, appends the step and advances the
// cursor. At most one active refinement loop runs per conversation, so no
// locking is needed here.
func (c *ConversationState) AppendStep(step RefinementStep) {
	step.StepNumber = len(c.Steps) + 1
	c.Steps = append(c.Steps, step)
	c.CurrentStep = step.StepNumber
	if step.Kind == StepAutoRefine {
		c.TotalAutoRefinements++
	}
}

// LastStep returns the most recent step, or nil for a fresh conversation.
func (c *ConversationState) LastStep() *RefinementStep {
	if len(c.Steps) == 0 {
		return nil
	}
	return &c.Steps[len(c.Steps)-1]
}

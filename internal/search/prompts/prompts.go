// Package prompts renders the text sent to the language model. Exact wording
// is not part of the gateway contract; the data carried by each prompt is.
package prompts

import (
	"encoding/json"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/soundbymood/server/internal/search/model"
)

//go:embed template/system_prompt.txt
var systemPrompt string

// DebugTag is echoed back by the model under debug_tag; it marks responses
// produced by this system instruction.
const DebugTag = "SYS_TAG_8425"

// SystemInstruction renders the system prompt for the given search tuning.
func SystemInstruction(cfg model.SearchConfig) string {
	return strings.NewReplacer(
		"{target_min}", strconv.Itoa(cfg.TargetMin),
		"{target_max}", strconv.Itoa(cfg.TargetMax),
		"{max_calls}", strconv.Itoa(cfg.MaxLLMCalls),
		"{boost_points}", strconv.FormatFloat(cfg.GenreBoostPoints, 'f', -1, 64),
		"{debug_tag}", DebugTag,
	).Replace(systemPrompt)
}

// Initial builds the first prompt of a new conversation.
func Initial(query string) string {
	return fmt.Sprintf("User query: %s\nReturn ONLY JSON per schema.", query)
}

// RefineInput carries everything a refinement prompt embeds: the original
// query, the latest feedback if any, the previous parameters as context, the
// latest summary, and which attempt this is out of the turn's budget.
type RefineInput struct {
	OriginalQuery string
	Feedback      string
	Previous      *model.FilterParameters
	Summary       *model.Summary
	Attempt       int
	Budget        int
	TargetMin     int
	TargetMax     int
}

// Refine builds a refinement prompt.
func Refine(in RefineInput) (string, error) {
	prev, err := json.Marshal(in.Previous)
	if err != nil {
		return "", fmt.Errorf("marshal previous filters: %w", err)
	}
	summary, err := json.Marshal(in.Summary)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Refine your previous JSON to better match the user intent. This is refinement attempt %d of %d.\n", in.Attempt, in.Budget)
	fmt.Fprintf(&b, "Aim to have between %d and %d results. Inspect the top results to ensure they are relevant and of high quality.\n", in.TargetMin, in.TargetMax)
	b.WriteString("Adjust your criteria as needed: broaden or narrow filters depending on the current result count.\n")
	b.WriteString("If the result count is under 10, or almost all example results are obviously irrelevant, make drastic changes. If results are in the 10-50 range but relevant and high quality, only make slight alterations.\n\n")
	fmt.Fprintf(&b, "Original user query: %s\n", in.OriginalQuery)
	if in.Feedback != "" {
		fmt.Fprintf(&b, "Latest user feedback: %s\n", in.Feedback)
	}
	fmt.Fprintf(&b, "Previous JSON: %s\n", prev)
	fmt.Fprintf(&b, "Summary: %s\n\n", summary)
	b.WriteString("Return ONLY JSON per schema.")
	return b.String(), nil
}

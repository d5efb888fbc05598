package model

import "fmt"

// SearchConfig tunes the refinement loop and result shaping.
type SearchConfig struct {
	// Target result-count band the loop refines toward.
	TargetMin int `envconfig:"SEARCH_TARGET_MIN" default:"50"`
	TargetMax int `envconfig:"SEARCH_TARGET_MAX" default:"150"`

	// Total LLM calls allowed per conversation turn, initial call included.
	MaxLLMCalls int `envconfig:"SEARCH_MAX_LLM_CALLS" default:"3"`

	SummaryTopK      int     `envconfig:"SEARCH_SUMMARY_TOP_K" default:"5"`
	GenreBoostPoints float64 `envconfig:"SEARCH_GENRE_BOOST_POINTS" default:"50"`
	MaxRankedResults int     `envconfig:"SEARCH_MAX_RANKED_RESULTS" default:"150"`

	// TTL for stored jobs and results, parsed as a Go duration.
	JobTTL string `envconfig:"SEARCH_JOB_TTL" default:"1h"`
	// Wall-clock budget for one background conversation turn.
	JobTimeout string `envconfig:"SEARCH_JOB_TIMEOUT" default:"3m"`
}

// TargetRange renders the band the way it is recorded on steps, e.g. "50-150".
func (c SearchConfig) TargetRange() string {
	return fmt.Sprintf("%d-%d", c.TargetMin, c.TargetMax)
}

// InBand reports whether a result count falls inside the target band.
func (c SearchConfig) InBand(count int) bool {
	return count >= c.TargetMin && count <= c.TargetMax
}

// GeminiConfig configures the language model behind the gateway.
type GeminiConfig struct {
	Model       string  `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"GEMINI_MAX_TOKENS" default:"8000"`
	Temperature float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.3"`
}

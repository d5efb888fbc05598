// Package engine translates an LLM-authored FilterParameters object into a
// deterministic boolean mask and weighted relevance score over the catalog,
// and reduces scored result sets into compact digests and ranked output.
//
// All entry points are pure functions of (catalog snapshot, parameters,
// feature config): no hidden state, no randomness, no mutation of the
// catalog. Identical inputs always yield identical outputs.
package engine

import (
	"github.com/soundbymood/server/internal/search/catalog"
	"github.com/soundbymood/server/internal/search/model"
)

// ScoredTrack pairs a catalog row with its relevance score. Index is the
// original catalog position and breaks score ties everywhere rows are sorted.
type ScoredTrack struct {
	Track *model.Track
	Score float64
	Index int
}

// ResultSet holds the filtered, scored rows for one refinement step, in
// original catalog order. It is derived data: recomputed from the catalog
// and parameters on every step, never cached beyond the step.
type ResultSet struct {
	Rows []ScoredTrack
}

// Count returns the number of included rows.
func (rs *ResultSet) Count() int { return len(rs.Rows) }

// Engine applies filter parameters to a catalog. The feature lists and
// tuning knobs are explicit inputs, fixed at construction.
type Engine struct {
	features   model.FeatureConfig
	topK       int
	maxRanked  int
	truncateAt int
}

// New builds an Engine. The genre boost point value from cfg overrides the
// feature config when set.
func New(features model.FeatureConfig, cfg model.SearchConfig) *Engine {
	if cfg.GenreBoostPoints != 0 {
		features.GenreBoostPoints = cfg.GenreBoostPoints
	}
	topK := cfg.SummaryTopK
	if topK <= 0 {
		topK = 5
	}
	maxRanked := cfg.MaxRankedResults
	if maxRanked <= 0 {
		maxRanked = 150
	}
	return &Engine{
		features:   features,
		topK:       topK,
		maxRanked:  maxRanked,
		truncateAt: 120,
	}
}

// Apply runs the filter compiler and scorer in one pass: compile the
// inclusion mask, then score only the included rows. Filtering the entire
// catalog away is a valid outcome, not an error.
func (e *Engine) Apply(cat *catalog.Catalog, p *model.FilterParameters) *ResultSet {
	tracks := cat.Tracks()
	mask := compileMask(tracks, p, e.features)

	rows := make([]ScoredTrack, 0, 64)
	boost := newGenreBooster(p.GenresBoosted, e.features.GenreBoostPoints)
	for i := range tracks {
		if !mask[i] {
			continue
		}
		t := &tracks[i]
		rows = append(rows, ScoredTrack{
			Track: t,
			Score: scoreTrack(t, p, e.features) + boost.bonus(t.Genres),
			Index: i,
		})
	}
	return &ResultSet{Rows: rows}
}

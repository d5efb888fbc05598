package engine

import (
	"strings"

	"github.com/soundbymood/server/internal/search/model"
)

// compileMask produces the boolean inclusion value for every track. Final
// inclusion is the AND of all active clauses; a clause whose bounds are
// absent or equal to the feature's default sentinel pair contributes no
// constraint. An active clause with min > max matches nothing, which is the
// documented policy for that edge case (deterministic, never a panic).
func compileMask(tracks []model.Track, p *model.FilterParameters, fc model.FeatureConfig) []bool {
	include := splitTerms(p.GenresIncludeAny)
	exclude := splitTerms(p.GenresExcludeAny)

	mask := make([]bool, len(tracks))
	for i := range tracks {
		mask[i] = includeTrack(&tracks[i], p, fc, include, exclude)
	}
	return mask
}

func includeTrack(t *model.Track, p *model.FilterParameters, fc model.FeatureConfig, include, exclude []string) bool {
	for _, f := range fc.DecileFeatures {
		min, max := f.Bounds(p)
		if !decileClauseActive(min, max) {
			continue
		}
		d := f.Decile(t)
		if d < *min || d > *max {
			return false
		}
	}

	// Direct-use features range-test the raw value, never the decile.
	for _, f := range fc.DirectFeatures {
		min, max := f.Bounds(p)
		if min == nil || max == nil || (*min == f.DefaultMin && *max == f.DefaultMax) {
			continue
		}
		v := f.Value(t)
		if v < *min || v > *max {
			return false
		}
	}

	for _, f := range fc.RangeFeatures {
		min, max := f.Bounds(p)
		if min == nil || max == nil || (*min == f.DefaultMin && *max == f.DefaultMax) {
			continue
		}
		v := f.Value(t)
		if v < *min || v > *max {
			return false
		}
	}

	if len(include) > 0 || len(exclude) > 0 {
		genres := strings.ToLower(t.Genres)
		if len(include) > 0 && !matchesAny(genres, include) {
			return false
		}
		if len(exclude) > 0 && matchesAny(genres, exclude) {
			return false
		}
	}
	return true
}

func decileClauseActive(min, max *int) bool {
	if min == nil || max == nil {
		return false
	}
	return *min != model.DefaultDecileMin || *max != model.DefaultDecileMax
}

// matchesAny reports whether any term is a substring of the genre text.
// Substring matching is the documented mechanism: an include term "pop"
// also captures "k-pop". Tracks with empty genre text match nothing.
func matchesAny(genres string, terms []string) bool {
	if genres == "" {
		return false
	}
	for _, term := range terms {
		if strings.Contains(genres, term) {
			return true
		}
	}
	return false
}

// splitTerms breaks a comma-separated term list into trimmed, case-normalized
// terms, dropping empties.
func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		term := strings.ToLower(strings.TrimSpace(part))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

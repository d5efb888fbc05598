package engine

import (
	"sort"
	"strings"

	"github.com/soundbymood/server/internal/search/model"
)

// Summarize reduces a scored result set to the compact digest fed back into
// the next refinement prompt and into the final API response. A zero-row set
// yields only the count: there are no score or year statistics to take on an
// empty frame. The digest is the only channel of catalog data exposed to the
// LLM context; it never carries the full row set.
func (e *Engine) Summarize(rs *ResultSet) *model.Summary {
	s := &model.Summary{ResultCount: rs.Count()}
	if rs.Count() == 0 {
		return s
	}

	top := topByScore(rs.Rows, e.topK)
	s.TopExamples = make([]model.TrackExample, 0, len(top))
	for _, row := range top {
		s.TopExamples = append(s.TopExamples, e.example(row))
	}

	s.ScoreStats = scoreStats(rs.Rows)
	s.YearRange = yearRange(rs.Rows)
	s.TopGenresFound = topGenres(rs.Rows, 5)
	return s
}

func (e *Engine) example(row ScoredTrack) model.TrackExample {
	t := row.Track
	return model.TrackExample{
		SpotifyTrackID:         t.SpotifyTrackID,
		Title:                  t.Title,
		Artist:                 t.Artist,
		Genres:                 t.Genres,
		DanceabilityDecile:     t.DanceabilityDecile,
		EnergyDecile:           t.EnergyDecile,
		AcousticnessDecile:     t.AcousticnessDecile,
		InstrumentalnessDecile: t.InstrumentalnessDecile,
		LivenessDecile:         t.LivenessDecile,
		ValenceDecile:          t.ValenceDecile,
		ViewsDecile:            t.ViewsDecile,
		Loudness:               t.Loudness,
		Tempo:                  t.Tempo,
		Instrumentalness:       t.Instrumentalness,
		AlbumReleaseYear:       t.AlbumReleaseYear,
		DurationMs:             t.DurationMs,
		Explicit:               t.Explicit,
		RelevanceScore:         row.Score,
		URLYouTube:             t.URLYouTube,
		Description:            truncate(t.Description, e.truncateAt),
	}
}

// topByScore returns the k highest-scored rows, score descending, ties
// broken by original catalog order.
func topByScore(rows []ScoredTrack, k int) []ScoredTrack {
	sorted := make([]ScoredTrack, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Score > sorted[b].Score
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

func scoreStats(rows []ScoredTrack) *model.ScoreStats {
	scores := make([]float64, len(rows))
	for i, r := range rows {
		scores[i] = r.Score
	}
	sort.Float64s(scores)

	n := len(scores)
	var median float64
	if n%2 == 1 {
		median = scores[n/2]
	} else {
		median = (scores[n/2-1] + scores[n/2]) / 2
	}
	return &model.ScoreStats{Min: scores[0], Median: median, Max: scores[n-1]}
}

func yearRange(rows []ScoredTrack) *model.YearRange {
	yr := &model.YearRange{
		Min: rows[0].Track.AlbumReleaseYear,
		Max: rows[0].Track.AlbumReleaseYear,
	}
	for _, r := range rows[1:] {
		y := r.Track.AlbumReleaseYear
		if y < yr.Min {
			yr.Min = y
		}
		if y > yr.Max {
			yr.Max = y
		}
	}
	return yr
}

// topGenres splits each row's comma-joined genre field into trimmed tokens
// and returns the k most frequent across the set. A track contributes once
// per distinct token position; frequency ties keep first-seen order.
func topGenres(rows []ScoredTrack, k int) []string {
	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		if r.Track.Genres == "" {
			continue
		}
		for _, raw := range strings.Split(r.Track.Genres, ",") {
			tok := strings.TrimSpace(raw)
			if tok == "" {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if k > len(order) {
		k = len(order)
	}
	return order[:k]
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

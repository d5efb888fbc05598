package engine

import (
	"fmt"

	"github.com/soundbymood/server/internal/search/model"
)

// Rank converts a scored result set into the final output shape: at most
// MaxRankedResults tracks sorted by score descending with 1-based ranks
// assigned in that order, plus the total unranked count and the latest
// parameters' user-facing message and rationale.
func (e *Engine) Rank(jobID string, rs *ResultSet, p *model.FilterParameters) *model.SearchResults {
	top := topByScore(rs.Rows, e.maxRanked)

	tracks := make([]model.TrackResult, 0, len(top))
	for i, row := range top {
		t := row.Track
		tracks = append(tracks, model.TrackResult{
			SpotifyTrackID:         t.SpotifyTrackID,
			Title:                  t.Title,
			Artist:                 t.Artist,
			AlbumReleaseYear:       t.AlbumReleaseYear,
			Genres:                 t.Genres,
			Explicit:               t.Explicit,
			DurationMs:             t.DurationMs,
			URLYouTube:             t.URLYouTube,
			SpotifyURL:             fmt.Sprintf("https://open.spotify.com/track/%s", t.SpotifyTrackID),
			DanceabilityDecile:     t.DanceabilityDecile,
			EnergyDecile:           t.EnergyDecile,
			AcousticnessDecile:     t.AcousticnessDecile,
			InstrumentalnessDecile: t.InstrumentalnessDecile,
			LivenessDecile:         t.LivenessDecile,
			ValenceDecile:          t.ValenceDecile,
			ViewsDecile:            t.ViewsDecile,
			Views:                  t.Views,
			Loudness:               t.Loudness,
			Tempo:                  t.Tempo,
			Instrumentalness:       t.Instrumentalness,
			RelevanceScore:         row.Score,
			RankPosition:           i + 1,
		})
	}

	res := &model.SearchResults{
		JobID:       jobID,
		ResultCount: rs.Count(),
		Tracks:      tracks,
	}
	if p != nil {
		res.LLMMessage = p.UserMessage
		res.LLMReflection = p.Reflection
	}
	return res
}

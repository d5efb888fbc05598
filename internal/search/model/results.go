package model

// ScoreStats describes the score distribution of one step's result set.
type ScoreStats struct {
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// YearRange is the release-year span of a filtered result set.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TrackExample is the fixed field projection used for the top-K example rows
// in a summary. It is the only row-level catalog data that ever flows back
// into the LLM context.
type TrackExample struct {
	SpotifyTrackID string `json:"spotify_track_id"`
	Title          string `json:"track"`
	Artist         string `json:"artist"`
	Genres         string `json:"spotify_artist_genres"`

	DanceabilityDecile     int `json:"danceability_decile"`
	EnergyDecile           int `json:"energy_decile"`
	AcousticnessDecile     int `json:"acousticness_decile"`
	InstrumentalnessDecile int `json:"instrumentalness_decile"`
	LivenessDecile         int `json:"liveness_decile"`
	ValenceDecile          int `json:"valence_decile"`
	ViewsDecile            int `json:"views_decile"`

	Loudness         float64 `json:"loudness"`
	Tempo            float64 `json:"tempo"`
	Instrumentalness float64 `json:"instrumentalness"`

	AlbumReleaseYear int  `json:"album_release_year"`
	DurationMs       int  `json:"duration_ms"`
	Explicit         bool `json:"track_is_explicit"`

	RelevanceScore float64 `json:"relevance_score"`
	URLYouTube     string  `json:"url_youtube,omitempty"`
	Description    string  `json:"description_short,omitempty"`
}

// Summary is the compact digest of one step's scored result set. It feeds
// both the next refinement prompt and the final API response. A zero-row
// result carries only the count.
type Summary struct {
	ResultCount    int            `json:"result_count"`
	TopExamples    []TrackExample `json:"top_examples,omitempty"`
	ScoreStats     *ScoreStats    `json:"score_stats,omitempty"`
	YearRange      *YearRange     `json:"year_range,omitempty"`
	TopGenresFound []string       `json:"top_genres_found,omitempty"`
}

// TrackResult is one ranked row of the final output.
type TrackResult struct {
	SpotifyTrackID   string `json:"spotify_track_id"`
	Title            string `json:"track"`
	Artist           string `json:"artist"`
	AlbumReleaseYear int    `json:"album_release_year"`
	Genres           string `json:"spotify_artist_genres"`
	Explicit         bool   `json:"track_is_explicit"`
	DurationMs       int    `json:"duration_ms"`

	URLYouTube string `json:"url_youtube,omitempty"`
	SpotifyURL string `json:"spotify_url"`

	DanceabilityDecile     int `json:"danceability_decile"`
	EnergyDecile           int `json:"energy_decile"`
	AcousticnessDecile     int `json:"acousticness_decile"`
	InstrumentalnessDecile int `json:"instrumentalness_decile"`
	LivenessDecile         int `json:"liveness_decile"`
	ValenceDecile          int `json:"valence_decile"`
	ViewsDecile            int `json:"views_decile"`

	Views            int64   `json:"views"`
	Loudness         float64 `json:"loudness"`
	Tempo            float64 `json:"tempo"`
	Instrumentalness float64 `json:"instrumentalness"`

	RelevanceScore float64 `json:"relevance_score"`
	RankPosition   int     `json:"rank_position"`
}

// SearchResults is the final output of a completed conversation turn: the
// ranked track list (capped), the total unranked count, and the latest
// step's user-facing message and rationale.
type SearchResults struct {
	JobID         string        `json:"job_id"`
	ResultCount   int           `json:"result_count"`
	Tracks        []TrackResult `json:"tracks"`
	LLMMessage    string        `json:"llm_message,omitempty"`
	LLMReflection string        `json:"llm_reflection,omitempty"`
}

// StepDigest is the per-step view returned to the API layer.
type StepDigest struct {
	StepNumber  int      `json:"step_number"`
	Kind        StepKind `json:"step_type"`
	UserInput   string   `json:"user_input"`
	ResultCount int      `json:"result_count"`
	UserMessage string   `json:"user_message"`
	Rationale   string   `json:"rationale"`
	TargetRange string   `json:"target_range,omitempty"`
}

package model

// Track is one immutable row of the catalog. Raw feature values are the basis
// for min/max filters on direct-use features; deciles (always 1-10) are the
// basis for filters on pure-decile features and for all score multiplications.
type Track struct {
	SpotifyTrackID   string  `json:"spotify_track_id"`
	Title            string  `json:"track"`
	Artist           string  `json:"artist"`
	AlbumReleaseYear int     `json:"album_release_year"`
	Genres           string  `json:"spotify_artist_genres"`
	Explicit         bool    `json:"track_is_explicit"`
	DurationMs       int     `json:"duration_ms"`
	URLYouTube       string  `json:"url_youtube,omitempty"`
	Description      string  `json:"description,omitempty"`
	Views            int64   `json:"views"`
	Loudness         float64 `json:"loudness"`
	Tempo            float64 `json:"tempo"`
	Instrumentalness float64 `json:"instrumentalness"`

	DanceabilityDecile     int `json:"danceability_decile"`
	EnergyDecile           int `json:"energy_decile"`
	AcousticnessDecile     int `json:"acousticness_decile"`
	LivenessDecile         int `json:"liveness_decile"`
	ValenceDecile          int `json:"valence_decile"`
	ViewsDecile            int `json:"views_decile"`
	LoudnessDecile         int `json:"loudness_decile"`
	TempoDecile            int `json:"tempo_decile"`
	DurationMsDecile       int `json:"duration_ms_decile"`
	InstrumentalnessDecile int `json:"instrumentalness_decile"`
}

// ExplicitFlag returns the explicit marker as 0/1 for min/max range tests.
func (t *Track) ExplicitFlag() int {
	if t.Explicit {
		return 1
	}
	return 0
}

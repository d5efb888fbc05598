package model

// FilterParameters is the structured object the language model returns for
// every conversation step. The field names mirror the prompt/response
// boundary exactly: <feature>_min_decile / _max_decile / _decile_weight for
// decile features, <feature>_min / _max in raw units for direct-use features.
// Bounds are pointers so an absent pair reads as "clause inactive" rather
// than a zero-width range.
type FilterParameters struct {
	DanceabilityMinDecile *int    `json:"danceability_min_decile"`
	DanceabilityMaxDecile *int    `json:"danceability_max_decile"`
	DanceabilityWeight    float64 `json:"danceability_decile_weight"`

	EnergyMinDecile *int    `json:"energy_min_decile"`
	EnergyMaxDecile *int    `json:"energy_max_decile"`
	EnergyWeight    float64 `json:"energy_decile_weight"`

	AcousticnessMinDecile *int    `json:"acousticness_min_decile"`
	AcousticnessMaxDecile *int    `json:"acousticness_max_decile"`
	AcousticnessWeight    float64 `json:"acousticness_decile_weight"`

	LivenessMinDecile *int    `json:"liveness_min_decile"`
	LivenessMaxDecile *int    `json:"liveness_max_decile"`
	LivenessWeight    float64 `json:"liveness_decile_weight"`

	ValenceMinDecile *int    `json:"valence_min_decile"`
	ValenceMaxDecile *int    `json:"valence_max_decile"`
	ValenceWeight    float64 `json:"valence_decile_weight"`

	ViewsMinDecile *int    `json:"views_min_decile"`
	ViewsMaxDecile *int    `json:"views_max_decile"`
	ViewsWeight    float64 `json:"views_decile_weight"`

	LoudnessMin    *float64 `json:"loudness_min"`
	LoudnessMax    *float64 `json:"loudness_max"`
	LoudnessWeight float64  `json:"loudness_decile_weight"`

	TempoMin    *float64 `json:"tempo_min"`
	TempoMax    *float64 `json:"tempo_max"`
	TempoWeight float64  `json:"tempo_decile_weight"`

	DurationMsMin    *float64 `json:"duration_ms_min"`
	DurationMsMax    *float64 `json:"duration_ms_max"`
	DurationMsWeight float64  `json:"duration_ms_decile_weight"`

	InstrumentalnessMin    *float64 `json:"instrumentalness_min"`
	InstrumentalnessMax    *float64 `json:"instrumentalness_max"`
	InstrumentalnessWeight float64  `json:"instrumentalness_decile_weight"`

	AlbumReleaseYearMin *int `json:"album_release_year_min"`
	AlbumReleaseYearMax *int `json:"album_release_year_max"`

	TrackIsExplicitMin *int `json:"track_is_explicit_min"`
	TrackIsExplicitMax *int `json:"track_is_explicit_max"`

	GenresIncludeAny string `json:"spotify_artist_genres_include_any"`
	GenresExcludeAny string `json:"spotify_artist_genres_exclude_any"`
	GenresBoosted    string `json:"spotify_artist_genres_boosted"`

	DebugTag    string `json:"debug_tag"`
	Reflection  string `json:"reflection"`
	UserMessage string `json:"user_message"`
}

// Default bound sentinels. A min/max pair equal to its sentinel pair means
// "no filtering" and must compile to no constraint at all, so legitimate
// boundary values are never excluded.
const (
	DefaultDecileMin = 0
	DefaultDecileMax = 10

	DefaultDirectMin = -100.0
	DefaultDirectMax = 99999999.0

	DefaultInstrumentalnessMin = 0.0
	DefaultInstrumentalnessMax = 1.0

	DefaultYearMin = 1900
	DefaultYearMax = 2025

	DefaultExplicitMin = 0
	DefaultExplicitMax = 1
)

// DefaultGenreBoostPoints is the fixed bonus added to a track's score per
// matching boosted genre term. Matches stack.
const DefaultGenreBoostPoints = 50.0

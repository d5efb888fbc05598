package model

// FeatureConfig makes the feature lists an explicit input of the filter
// compiler and scorer instead of package-level globals: which features are
// pure-decile, which are direct-use (raw-value filter, decile score), which
// are min/max-only, and the genre boost point value.
type FeatureConfig struct {
	DecileFeatures []DecileFeature
	DirectFeatures []DirectFeature
	RangeFeatures  []RangeFeature

	GenreBoostPoints float64
}

// DecileFeature filters and scores against the precomputed 1-10 decile.
type DecileFeature struct {
	Name   string
	Bounds func(*FilterParameters) (min, max *int)
	Weight func(*FilterParameters) float64
	Decile func(*Track) int
}

// DirectFeature filters against the raw value but scores against the decile.
// This asymmetry is deliberate; do not "fix" it to be uniform.
type DirectFeature struct {
	Name       string
	DefaultMin float64
	DefaultMax float64
	Bounds     func(*FilterParameters) (min, max *float64)
	Weight     func(*FilterParameters) float64
	Value      func(*Track) float64
	Decile     func(*Track) int
}

// RangeFeature only supports a min/max filter, no score weight.
type RangeFeature struct {
	Name       string
	DefaultMin int
	DefaultMax int
	Bounds     func(*FilterParameters) (min, max *int)
	Value      func(*Track) int
}

// DefaultFeatureConfig enumerates the catalog's scorable and filterable
// features with their bound accessors and default sentinels.
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		DecileFeatures: []DecileFeature{
			{
				Name:   "danceability",
				Bounds: func(p *FilterParameters) (*int, *int) { return p.DanceabilityMinDecile, p.DanceabilityMaxDecile },
				Weight: func(p *FilterParameters) float64 { return p.DanceabilityWeight },
				Decile: func(t *Track) int { return t.DanceabilityDecile },
			},
			{
				Name:   "energy",
				Bounds: func(p *FilterParameters) (*int, *int) { return p.EnergyMinDecile, p.EnergyMaxDecile },
				Weight: func(p *FilterParameters) float64 { return p.EnergyWeight },
				Decile: func(t *Track) int { return t.EnergyDecile },
			},
			{
				Name:   "acousticness",
				Bounds: func(p *FilterParameters) (*int, *int) { return p.AcousticnessMinDecile, p.AcousticnessMaxDecile },
				Weight: func(p *FilterParameters) float64 { return p.AcousticnessWeight },
				Decile: func(t *Track) int { return t.AcousticnessDecile },
			},
			{
				Name:   "liveness",
				Bounds: func(p *FilterParameters) (*int, *int) { return p.LivenessMinDecile, p.LivenessMaxDecile },
				Weight: func(p *FilterParameters) float64 { return p.LivenessWeight },
				Decile: func(t *Track) int { return t.LivenessDecile },
			},
			{
				Name:   "valence",
				Bounds: func(p *FilterParameters) (*int, *int) { return p.ValenceMinDecile, p.ValenceMaxDecile },
				Weight: func(p *FilterParameters) float64 { return p.ValenceWeight },
				Decile: func(t *Track) int { return t.ValenceDecile },
			},
			{
				Name:   "views",
				Bounds: func(p *FilterParameters) (*int, *int) { return p.ViewsMinDecile, p.ViewsMaxDecile },
				Weight: func(p *FilterParameters) float64 { return p.ViewsWeight },
				Decile: func(t *Track) int { return t.ViewsDecile },
			},
		},
		DirectFeatures: []DirectFeature{
			{
				Name:       "loudness",
				DefaultMin: DefaultDirectMin,
				DefaultMax: DefaultDirectMax,
				Bounds:     func(p *FilterParameters) (*float64, *float64) { return p.LoudnessMin, p.LoudnessMax },
				Weight:     func(p *FilterParameters) float64 { return p.LoudnessWeight },
				Value:      func(t *Track) float64 { return t.Loudness },
				Decile:     func(t *Track) int { return t.LoudnessDecile },
			},
			{
				Name:       "tempo",
				DefaultMin: DefaultDirectMin,
				DefaultMax: DefaultDirectMax,
				Bounds:     func(p *FilterParameters) (*float64, *float64) { return p.TempoMin, p.TempoMax },
				Weight:     func(p *FilterParameters) float64 { return p.TempoWeight },
				Value:      func(t *Track) float64 { return t.Tempo },
				Decile:     func(t *Track) int { return t.TempoDecile },
			},
			{
				Name:       "duration_ms",
				DefaultMin: DefaultDirectMin,
				DefaultMax: DefaultDirectMax,
				Bounds:     func(p *FilterParameters) (*float64, *float64) { return p.DurationMsMin, p.DurationMsMax },
				Weight:     func(p *FilterParameters) float64 { return p.DurationMsWeight },
				Value:      func(t *Track) float64 { return float64(t.DurationMs) },
				Decile:     func(t *Track) int { return t.DurationMsDecile },
			},
			{
				Name:       "instrumentalness",
				DefaultMin: DefaultInstrumentalnessMin,
				DefaultMax: DefaultInstrumentalnessMax,
				Bounds:     func(p *FilterParameters) (*float64, *float64) { return p.InstrumentalnessMin, p.InstrumentalnessMax },
				Weight:     func(p *FilterParameters) float64 { return p.InstrumentalnessWeight },
				Value:      func(t *Track) float64 { return t.Instrumentalness },
				Decile:     func(t *Track) int { return t.InstrumentalnessDecile },
			},
		},
		RangeFeatures: []RangeFeature{
			{
				Name:       "album_release_year",
				DefaultMin: DefaultYearMin,
				DefaultMax: DefaultYearMax,
				Bounds:     func(p *FilterParameters) (*int, *int) { return p.AlbumReleaseYearMin, p.AlbumReleaseYearMax },
				Value:      func(t *Track) int { return t.AlbumReleaseYear },
			},
			{
				Name:       "track_is_explicit",
				DefaultMin: DefaultExplicitMin,
				DefaultMax: DefaultExplicitMax,
				Bounds:     func(p *FilterParameters) (*int, *int) { return p.TrackIsExplicitMin, p.TrackIsExplicitMax },
				Value:      func(t *Track) int { return t.ExplicitFlag() },
			},
		},
		GenreBoostPoints: DefaultGenreBoostPoints,
	}
}

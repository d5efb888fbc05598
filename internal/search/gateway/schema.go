package gateway

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// filtersResponseSchema is the statically enumerated response schema handed
// to the model. Every field of FilterParameters appears here by name; the
// schema is built once at startup, not reflected at runtime.
func filtersResponseSchema() *openapi3.Schema {
	props := openapi3.Schemas{}
	var required []string

	add := func(name string, s *openapi3.Schema) {
		props[name] = &openapi3.SchemaRef{Value: s}
		required = append(required, name)
	}
	integer := func(desc string) *openapi3.Schema {
		return &openapi3.Schema{Type: "integer", Description: desc}
	}
	number := func(desc string) *openapi3.Schema {
		return &openapi3.Schema{Type: "number", Description: desc}
	}
	str := func(desc string) *openapi3.Schema {
		return &openapi3.Schema{Type: "string", Description: desc}
	}

	for _, f := range []string{"danceability", "energy", "acousticness", "liveness", "valence", "views"} {
		add(f+"_min_decile", integer("Minimum "+f+" decile, 0-10. Default 0 for no filter."))
		add(f+"_max_decile", integer("Maximum "+f+" decile, 0-10. Default 10 for no filter."))
		add(f+"_decile_weight", number("Relevance weight multiplied by the "+f+" decile. 0 for no contribution."))
	}

	add("loudness_min", number("Minimum loudness in dB. Default -100 for no filter."))
	add("loudness_max", number("Maximum loudness in dB. Default 99999999 for no filter."))
	add("loudness_decile_weight", number("Relevance weight multiplied by the loudness decile."))

	add("tempo_min", number("Minimum tempo in BPM. Default -100 for no filter."))
	add("tempo_max", number("Maximum tempo in BPM. Default 99999999 for no filter."))
	add("tempo_decile_weight", number("Relevance weight multiplied by the tempo decile."))

	add("duration_ms_min", number("Minimum duration in milliseconds. Default -100 for no filter."))
	add("duration_ms_max", number("Maximum duration in milliseconds. Default 99999999 for no filter."))
	add("duration_ms_decile_weight", number("Relevance weight multiplied by the duration decile."))

	add("instrumentalness_min", number("Minimum instrumentalness, 0.0-1.0. Default 0.0 for no filter."))
	add("instrumentalness_max", number("Maximum instrumentalness, 0.0-1.0. Default 1.0 for no filter."))
	add("instrumentalness_decile_weight", number("Relevance weight multiplied by the instrumentalness decile."))

	add("album_release_year_min", integer("Earliest release year. Default 1900 for no filter."))
	add("album_release_year_max", integer("Latest release year. Default 2025 for no filter."))
	add("track_is_explicit_min", integer("0 or 1. Default 0 for no filter."))
	add("track_is_explicit_max", integer("0 or 1. Default 1 for no filter."))

	add("spotify_artist_genres_include_any", str("Comma separated genre substrings; keep tracks matching any. Empty for no filter."))
	add("spotify_artist_genres_exclude_any", str("Comma separated genre substrings; drop tracks matching any. Empty for no filter."))
	add("spotify_artist_genres_boosted", str("Comma separated genre substrings; each match adds a fixed score boost. Empty for none."))

	add("debug_tag", str("Echo the debug tag from the system instruction."))
	add("reflection", str("Your reasoning about how you set or changed filters and what to try next."))
	add("user_message", str("Brief user-facing explanation of the filters plus one follow-up question."))

	return &openapi3.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

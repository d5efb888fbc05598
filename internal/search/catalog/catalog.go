package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/soundbymood/server/internal/search/model"
	logx "github.com/soundbymood/server/pkg/logger"
)

// Catalog is the immutable in-memory track table. It is loaded once at
// startup and shared freely across concurrent requests without locking.
type Catalog struct {
	tracks []model.Track
}

// New wraps an already-built track slice. The caller must not mutate the
// slice afterwards.
func New(tracks []model.Track) *Catalog {
	return &Catalog{tracks: tracks}
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// Tracks exposes the underlying rows in original catalog order. Read-only.
func (c *Catalog) Tracks() []model.Track {
	return c.tracks
}

// Holder supports hot-swapping the catalog: the whole immutable reference is
// replaced atomically so in-flight requests keep a consistent snapshot.
type Holder struct {
	ptr atomic.Pointer[Catalog]
}

func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.ptr.Store(c)
	return h
}

func (h *Holder) Current() *Catalog { return h.ptr.Load() }

func (h *Holder) Swap(c *Catalog) { h.ptr.Store(c) }

// decileSpec names a feature whose decile the loader needs: read from the
// <name>_decile column when present, otherwise ranked from the raw column.
type decileSpec struct {
	name   string
	assign func(*model.Track, int)
	raw    func(*model.Track) float64
}

var decileSpecs = []decileSpec{
	{"danceability", func(t *model.Track, d int) { t.DanceabilityDecile = d }, nil},
	{"energy", func(t *model.Track, d int) { t.EnergyDecile = d }, nil},
	{"acousticness", func(t *model.Track, d int) { t.AcousticnessDecile = d }, nil},
	{"liveness", func(t *model.Track, d int) { t.LivenessDecile = d }, nil},
	{"valence", func(t *model.Track, d int) { t.ValenceDecile = d }, nil},
	{"views", func(t *model.Track, d int) { t.ViewsDecile = d }, func(t *model.Track) float64 { return float64(t.Views) }},
	{"loudness", func(t *model.Track, d int) { t.LoudnessDecile = d }, func(t *model.Track) float64 { return t.Loudness }},
	{"tempo", func(t *model.Track, d int) { t.TempoDecile = d }, func(t *model.Track) float64 { return t.Tempo }},
	{"duration_ms", func(t *model.Track, d int) { t.DurationMsDecile = d }, func(t *model.Track) float64 { return float64(t.DurationMs) }},
	{"instrumentalness", func(t *model.Track, d int) { t.InstrumentalnessDecile = d }, func(t *model.Track) float64 { return t.Instrumentalness }},
}

// Load reads the track table from a CSV export. Any parse or validation
// failure is fatal; no partial catalog is ever returned.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalog %s: no data rows", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}

	tracks := make([]model.Track, 0, len(rows)-1)
	for n, row := range rows[1:] {
		t, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", n+2, err)
		}
		tracks = append(tracks, t)
	}

	for _, spec := range decileSpecs {
		col, ok := cols[spec.name+"_decile"]
		if ok {
			for i := range tracks {
				d, err := strconv.Atoi(rows[i+1][col])
				if err != nil {
					return nil, fmt.Errorf("catalog row %d: %s_decile: %w", i+2, spec.name, err)
				}
				if d < 1 || d > 10 {
					return nil, fmt.Errorf("catalog row %d: %s_decile %d out of range [1,10]", i+2, spec.name, d)
				}
				spec.assign(&tracks[i], d)
			}
			continue
		}
		if spec.raw == nil {
			return nil, fmt.Errorf("catalog %s: missing column %s_decile", path, spec.name)
		}
		rankDeciles(tracks, spec)
	}

	logx.Info().Int("tracks", len(tracks)).Str("path", path).Msg("catalog loaded")
	return New(tracks), nil
}

func parseRow(cols map[string]int, row []string) (model.Track, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	reqInt := func(name string) (int, error) {
		v, err := strconv.Atoi(get(name))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}
	reqFloat := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(get(name), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}

	t := model.Track{
		SpotifyTrackID: get("spotify_track_id"),
		Title:          get("track"),
		Artist:         get("artist"),
		Genres:         get("spotify_artist_genres"),
		URLYouTube:     get("url_youtube"),
		Description:    get("description"),
	}
	if t.SpotifyTrackID == "" {
		return t, fmt.Errorf("missing spotify_track_id")
	}

	var err error
	if t.AlbumReleaseYear, err = reqInt("album_release_year"); err != nil {
		return t, err
	}
	if t.DurationMs, err = reqInt("duration_ms"); err != nil {
		return t, err
	}
	if t.Loudness, err = reqFloat("loudness"); err != nil {
		return t, err
	}
	if t.Tempo, err = reqFloat("tempo"); err != nil {
		return t, err
	}
	if t.Instrumentalness, err = reqFloat("instrumentalness"); err != nil {
		return t, err
	}

	// ~40% of rows have no genre text and some have no view count; both stay zero-valued.
	if s := get("views"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return t, fmt.Errorf("views: %w", err)
		}
		t.Views = int64(v)
	}
	switch get("track_is_explicit") {
	case "1", "true", "True":
		t.Explicit = true
	}
	return t, nil
}

// rankDeciles assigns 1-10 deciles by ranking the raw value across the whole
// catalog. Used only when the export lacks a precomputed decile column.
func rankDeciles(tracks []model.Track, spec decileSpec) {
	idx := make([]int, len(tracks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return spec.raw(&tracks[idx[a]]) < spec.raw(&tracks[idx[b]])
	})
	n := len(idx)
	for rank, i := range idx {
		d := 1 + rank*10/n
		if d > 10 {
			d = 10
		}
		spec.assign(&tracks[i], d)
	}
}

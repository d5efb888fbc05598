package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullHeader = "spotify_track_id,track,artist,album_release_year,spotify_artist_genres,track_is_explicit," +
	"duration_ms,loudness,tempo,instrumentalness,views,url_youtube,description," +
	"danceability_decile,energy_decile,acousticness_decile,liveness_decile,valence_decile," +
	"views_decile,loudness_decile,tempo_decile,duration_ms_decile,instrumentalness_decile"

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fullRow(id string, deciles int) string {
	d := fmt.Sprint(deciles)
	return fmt.Sprintf("%s,Song %s,Artist,2015,\"pop, rock\",1,210000,-7.5,128.0,0.02,1500000,https://youtu.be/%s,A description,%s",
		id, id, id, strings.TrimSuffix(strings.Repeat(d+",", 10), ","))
}

func TestLoadReadsPrecomputedDeciles(t *testing.T) {
	path := writeCSV(t, fullHeader, fullRow("a", 7), fullRow("b", 3))
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("len = %d, want 2", cat.Len())
	}

	tr := cat.Tracks()[0]
	if tr.SpotifyTrackID != "a" || tr.Title != "Song a" || tr.AlbumReleaseYear != 2015 {
		t.Fatalf("row parsed wrong: %+v", tr)
	}
	if tr.Genres != "pop, rock" || !tr.Explicit || tr.DurationMs != 210000 {
		t.Fatalf("row parsed wrong: %+v", tr)
	}
	if tr.Loudness != -7.5 || tr.Tempo != 128.0 || tr.Instrumentalness != 0.02 || tr.Views != 1500000 {
		t.Fatalf("row parsed wrong: %+v", tr)
	}
	if tr.EnergyDecile != 7 || tr.InstrumentalnessDecile != 7 {
		t.Fatalf("deciles not read: %+v", tr)
	}
	if cat.Tracks()[1].EnergyDecile != 3 {
		t.Fatalf("deciles not read: %+v", cat.Tracks()[1])
	}
}

func TestLoadRanksDecilesWhenColumnMissing(t *testing.T) {
	// No tempo_decile column: the loader ranks the raw tempo across the
	// catalog instead. 20 rows with strictly increasing tempo get two rows
	// per decile.
	header := "spotify_track_id,track,artist,album_release_year,spotify_artist_genres,track_is_explicit," +
		"duration_ms,loudness,tempo,instrumentalness,views," +
		"danceability_decile,energy_decile,acousticness_decile,liveness_decile,valence_decile," +
		"views_decile,loudness_decile,duration_ms_decile,instrumentalness_decile"

	lines := []string{header}
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf("id%02d,T,A,2000,pop,0,200000,-6.0,%d.0,0.1,100,5,5,5,5,5,5,5,5,5", i, 60+i*5))
	}
	cat, err := Load(writeCSV(t, lines...))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tracks := cat.Tracks()
	if tracks[0].TempoDecile != 1 || tracks[1].TempoDecile != 1 {
		t.Fatalf("slowest rows = deciles %d,%d, want 1,1", tracks[0].TempoDecile, tracks[1].TempoDecile)
	}
	if tracks[18].TempoDecile != 10 || tracks[19].TempoDecile != 10 {
		t.Fatalf("fastest rows = deciles %d,%d, want 10,10", tracks[18].TempoDecile, tracks[19].TempoDecile)
	}
	for _, tr := range tracks {
		if tr.TempoDecile < 1 || tr.TempoDecile > 10 {
			t.Fatalf("decile out of range: %+v", tr)
		}
	}
}

func TestLoadOptionalColumnsDefaultToZeroValues(t *testing.T) {
	header := "spotify_track_id,track,artist,album_release_year,spotify_artist_genres,track_is_explicit," +
		"duration_ms,loudness,tempo,instrumentalness,views," +
		"danceability_decile,energy_decile,acousticness_decile,liveness_decile,valence_decile," +
		"views_decile,loudness_decile,tempo_decile,duration_ms_decile,instrumentalness_decile"
	row := "x1,T,A,1999,,0,180000,-9.0,100.0,0.5,,4,4,4,4,4,4,4,4,4"

	cat, err := Load(writeCSV(t, header, row))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tr := cat.Tracks()[0]
	if tr.Genres != "" || tr.Views != 0 || tr.URLYouTube != "" || tr.Description != "" {
		t.Fatalf("optional fields not zero: %+v", tr)
	}
}

func TestLoadFailures(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
	}{
		{"missing file entirely", nil},
		{"header only", []string{fullHeader}},
		{"missing track id", []string{fullHeader, strings.Replace(fullRow("a", 5), "a,", ",", 1)}},
		{"bad year", []string{fullHeader, strings.Replace(fullRow("a", 5), "2015", "soon", 1)}},
		{"decile zero", []string{fullHeader, fullRow("a", 0)}},
		{"decile eleven", []string{fullHeader, fullRow("a", 11)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.csv")
			if tc.lines != nil {
				path = writeCSV(t, tc.lines...)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestHolderSwapsAtomically(t *testing.T) {
	first := New(nil)
	second := New(nil)

	h := NewHolder(first)
	if h.Current() != first {
		t.Fatalf("holder did not return initial catalog")
	}
	h.Swap(second)
	if h.Current() != second {
		t.Fatalf("holder did not swap")
	}
}

package engine

import (
	"testing"

	"github.com/soundbymood/server/internal/search/model"
)

func scoreOf(t *testing.T, rs *ResultSet, id string) float64 {
	t.Helper()
	for _, r := range rs.Rows {
		if r.Track.SpotifyTrackID == id {
			return r.Score
		}
	}
	t.Fatalf("track %s not in result set", id)
	return 0
}

func TestScoreIsWeightedDecileSum(t *testing.T) {
	p := &model.FilterParameters{
		EnergyWeight:       2,
		DanceabilityWeight: 1,
	}
	rs := testEngine().Apply(testCatalog(), p)

	// t3: energy decile 10, danceability decile 9.
	if got, want := scoreOf(t, rs, "t3"), 2.0*10+1.0*9; got != want {
		t.Fatalf("score = %v, want %v", got, want)
	}
	// t1: energy decile 1, danceability decile 3.
	if got, want := scoreOf(t, rs, "t1"), 2.0*1+1.0*3; got != want {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestScoreZeroWeightsYieldZero(t *testing.T) {
	rs := testEngine().Apply(testCatalog(), &model.FilterParameters{})
	for _, r := range rs.Rows {
		if r.Score != 0 {
			t.Fatalf("track %s scored %v with no weights", r.Track.SpotifyTrackID, r.Score)
		}
	}
}

func TestScoreDirectFeatureUsesDecileNotRawValue(t *testing.T) {
	// Tempo weight multiplies the tempo decile, never the BPM. t3 has tempo
	// 174 but tempo decile 10.
	p := &model.FilterParameters{TempoWeight: 1}
	rs := testEngine().Apply(testCatalog(), p)
	if got := scoreOf(t, rs, "t3"); got != 10 {
		t.Fatalf("tempo-weighted score = %v, want 10", got)
	}
}

func TestScoreNegativeWeightsPassThroughUnclamped(t *testing.T) {
	p := &model.FilterParameters{EnergyWeight: -1.5}
	rs := testEngine().Apply(testCatalog(), p)
	if got := scoreOf(t, rs, "t3"); got != -15 {
		t.Fatalf("score = %v, want -15", got)
	}
}

func TestScoreGenreBoostStacks(t *testing.T) {
	// t3's genre text "pop, electropop" matches both boosted terms, so the
	// fixed bonus is applied twice. t2 matches neither.
	p := &model.FilterParameters{GenresBoosted: "pop, electropop"}
	rs := testEngine().Apply(testCatalog(), p)

	if got := scoreOf(t, rs, "t3"); got != 2*model.DefaultGenreBoostPoints {
		t.Fatalf("boosted score = %v, want %v", got, 2*model.DefaultGenreBoostPoints)
	}
	if got := scoreOf(t, rs, "t2"); got != 0 {
		t.Fatalf("unboosted score = %v, want 0", got)
	}
	if got := scoreOf(t, rs, "t4"); got != 0 {
		t.Fatalf("genre-less track score = %v, want 0", got)
	}
}

func TestScoreBoostPointValueIsConfigurable(t *testing.T) {
	eng := New(model.DefaultFeatureConfig(), model.SearchConfig{GenreBoostPoints: 7})
	p := &model.FilterParameters{GenresBoosted: "rock"}
	rs := eng.Apply(testCatalog(), p)
	if got := scoreOf(t, rs, "t2"); got != 7 {
		t.Fatalf("score = %v, want 7", got)
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	eng := testEngine()
	cat := testCatalog()
	p := &model.FilterParameters{
		EnergyWeight:  1.25,
		ValenceWeight: -0.5,
		GenresBoosted: "pop",
	}

	first := eng.Apply(cat, p)
	second := eng.Apply(cat, p)

	if first.Count() != second.Count() {
		t.Fatalf("counts differ: %d vs %d", first.Count(), second.Count())
	}
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		if a.Track.SpotifyTrackID != b.Track.SpotifyTrackID || a.Score != b.Score {
			t.Fatalf("row %d differs: %v vs %v", i, a, b)
		}
	}
}

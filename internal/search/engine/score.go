package engine

import (
	"strings"

	"github.com/soundbymood/server/internal/search/model"
)

// scoreTrack computes the weighted decile sum for one row. Every feature
// with a non-zero weight contributes weight * decile — always the decile,
// even for direct-use features whose filter bound tested the raw value.
// Weights are advisory and pass through unclamped; the score is an
// unbounded signed real.
func scoreTrack(t *model.Track, p *model.FilterParameters, fc model.FeatureConfig) float64 {
	var score float64
	for _, f := range fc.DecileFeatures {
		if w := f.Weight(p); w != 0 {
			score += w * float64(f.Decile(t))
		}
	}
	for _, f := range fc.DirectFeatures {
		if w := f.Weight(p); w != 0 {
			score += w * float64(f.Decile(t))
		}
	}
	return score
}

// genreBooster adds a fixed point bonus per boosted genre term matching a
// track's genre text. Matches stack: two matching terms, two bonuses.
type genreBooster struct {
	terms  []string
	points float64
}

func newGenreBooster(boosted string, points float64) genreBooster {
	return genreBooster{terms: splitTerms(boosted), points: points}
}

func (b genreBooster) bonus(genres string) float64 {
	if len(b.terms) == 0 || genres == "" {
		return 0
	}
	genres = strings.ToLower(genres)
	hits := 0
	for _, term := range b.terms {
		if strings.Contains(genres, term) {
			hits++
		}
	}
	return b.points * float64(hits)
}

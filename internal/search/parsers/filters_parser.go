// Package parsers validates language model output against the
// FilterParameters contract. The contract is fail-fast: anything that does
// not decode cleanly into the typed record is a schema violation and an
// error, never silently coerced.
package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/soundbymood/server/internal/search/model"
)

// maxContentLen guards against pathological model output.
const maxContentLen = 256 * 1024

// ParseFilters decodes one model response into FilterParameters. Unknown
// fields, malformed JSON, trailing content and out-of-range decile bounds
// all fail the parse.
func ParseFilters(content string) (*model.FilterParameters, error) {
	if len(content) > maxContentLen {
		return nil, fmt.Errorf("response too large: %d bytes", len(content))
	}

	body := stripFences(strings.TrimSpace(content))
	if body == "" {
		return nil, fmt.Errorf("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()

	var p model.FilterParameters
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode filters: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing content after filters object")
	}

	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func validate(p *model.FilterParameters) error {
	checks := []struct {
		name     string
		min, max *int
	}{
		{"danceability", p.DanceabilityMinDecile, p.DanceabilityMaxDecile},
		{"energy", p.EnergyMinDecile, p.EnergyMaxDecile},
		{"acousticness", p.AcousticnessMinDecile, p.AcousticnessMaxDecile},
		{"liveness", p.LivenessMinDecile, p.LivenessMaxDecile},
		{"valence", p.ValenceMinDecile, p.ValenceMaxDecile},
		{"views", p.ViewsMinDecile, p.ViewsMaxDecile},
	}
	for _, c := range checks {
		for _, b := range []*int{c.min, c.max} {
			if b != nil && (*b < model.DefaultDecileMin || *b > model.DefaultDecileMax) {
				return fmt.Errorf("%s decile bound %d out of range [%d,%d]",
					c.name, *b, model.DefaultDecileMin, model.DefaultDecileMax)
			}
		}
	}
	return nil
}

// stripFences removes a markdown code fence wrapper when the model adds one
// despite the JSON response mode. Transport cleanup only; the JSON inside is
// still validated strictly.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

package match

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Experience fit levels the model is asked to choose from.
const (
	ExperienceLow    = "LOW"
	ExperienceMedium = "MEDIUM"
	ExperienceHigh   = "HIGH"
)

// Recommendation values the model is asked to choose from.
const (
	RecommendApply = "APPLY"
	RecommendSkip  = "SKIP"
)

// Result is the model's structured judgment of how well a resume matches a
// job description. The named fields are the guaranteed part of the schema;
// Extra collects every other key the model decided to return. Raw holds the
// exact JSON substring the response was parsed from, so downstream consumers
// receive the object byte-for-byte as the model produced it.
type Result struct {
	MatchScore     int      `mapstructure:"match_score"`
	MatchedSkills  []string `mapstructure:"matched_skills"`
	MissingSkills  []string `mapstructure:"missing_skills"`
	ExperienceFit  string   `mapstructure:"experience_fit"`
	Recommendation string   `mapstructure:"recommendation"`
	Summary        string   `mapstructure:"summary"`

	Extra map[string]any `mapstructure:",remain"`
	Raw   string         `mapstructure:"-"`
}

// Lookup reads an arbitrary key (or gjson path) from the raw object. Missing
// keys yield a zero-valued result, so callers can display optional fields
// without checking presence first.
func (r *Result) Lookup(path string) gjson.Result {
	return gjson.Get(r.Raw, path)
}

// Pretty returns the raw object indented for display.
func (r *Result) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(r.Raw), "", "  "); err != nil {
		return r.Raw
	}
	return buf.String()
}

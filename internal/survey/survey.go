// Package survey holds the fixed college and hostel question sets and
// validates submitted responses against a compiled JSON schema.
package survey

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// Track identifies one of the two survey dimensions.
type Track string

const (
	TrackCollege Track = "college"
	TrackHostel  Track = "hostel"
)

// Options is the answer scale for every option question.
var Options = []string{"Excellent", "Good", "Average", "Poor"}

// CollegeQuestions and HostelQuestions are fixed; the last entry of each is a
// free-text question answered through the `improvements` field.
var CollegeQuestions = []string{
	"1. Quality of Teaching",
	"2. Course Curriculum",
	"3. Library Facilities",
	"4. Laboratory Facilities",
	"5. Classroom Infrastructure",
	"6. Faculty Availability",
	"7. Placement Support",
	"8. Extracurricular Activities",
	"9. Overall College Experience",
	"10. Improvement Measures",
}

var HostelQuestions = []string{
	"1. Room Cleanliness",
	"2. Food Quality",
	"3. Drinking Water",
	"4. Washroom Maintenance",
	"5. Warden Support",
	"6. Security Arrangements",
	"7. Wi-Fi Connectivity",
	"8. Recreation Facilities",
	"9. Overall Hostel Experience",
	"10. Improvement Measures",
}

// Response is a student's answer sheet for one track: one option per option
// question plus the free-text improvement suggestion.
type Response struct {
	Answers      []string `json:"answers"`
	Improvements string   `json:"improvements,omitempty"`
}

// Questions returns the question list for a track, or false for an unknown
// track.
func Questions(track Track) ([]string, bool) {
	switch track {
	case TrackCollege:
		return CollegeQuestions, true
	case TrackHostel:
		return HostelQuestions, true
	default:
		return nil, false
	}
}

// Validator checks survey responses against a schema compiled once at
// construction time.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	optCount := len(CollegeQuestions) - 1

	raw := fmt.Sprintf(`{
		"type": "object",
		"required": ["answers"],
		"properties": {
			"answers": {
				"type": "array",
				"minItems": %d,
				"maxItems": %d,
				"items": {"type": "string", "enum": ["%s"]}
			},
			"improvements": {"type": "string", "maxLength": 2000}
		}
	}`, optCount, optCount, strings.Join(Options, `", "`))

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(raw), rs); err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}

	return &Validator{schema: rs}, nil
}

// Validate reports the first schema violation found in the encoded response,
// or nil when the response is well formed.
func (v *Validator) Validate(ctx context.Context, raw json.RawMessage) error {
	keyErrs, err := v.schema.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("validate response: %w", err)
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("invalid response: %s", keyErrs[0].Message)
	}

	return nil
}

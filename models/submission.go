package models

import (
	"strconv"
	"strings"
	"time"
)

// SubmissionData maps a positional step key ("step_<i>") to a mapping from
// positional field key ("field_<j>") to the raw answer.
//
// Keys are positional, not field ids: reordering fields after submissions
// exist misaligns historical answers. SchemaVersion on [Submission] records
// which schema revision the keys refer to.
type SubmissionData map[string]map[string]any

// Answer returns the raw answer stored for step i, field j.
func (d SubmissionData) Answer(i, j int) (any, bool) {
	step, ok := d[StepKey(i)]
	if !ok {
		return nil, false
	}
	v, ok := step[FieldKey(j)]
	return v, ok
}

// ParseStepKey parses a "step_<i>" key. It reports false for any other key.
func ParseStepKey(key string) (int, bool) {
	return parseIndexKey(key, "step_")
}

// ParseFieldKey parses a "field_<j>" key. It reports false for any other key.
func ParseFieldKey(key string) (int, bool) {
	return parseIndexKey(key, "field_")
}

func parseIndexKey(key, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || strconv.Itoa(i) != rest {
		return 0, false
	}
	return i, true
}

// Submission is one completed wizard run. It is created exactly once per
// successful final-step submit and never edited afterwards.
type Submission struct {
	ID int64 `json:"id"`

	// FormID weakly references the form whose schema was used.
	FormID int64 `json:"formId"`

	// PageKey is a denormalized copy of the owning form's page key.
	PageKey string `json:"pageKey"`

	// SchemaVersion is the form version the answers were collected against.
	SchemaVersion int64 `json:"schemaVersion"`

	// UserEmail and UserName come from a verified session, when present.
	UserEmail string `json:"userEmail,omitempty"`
	UserName  string `json:"userName,omitempty"`

	Data SubmissionData `json:"data"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubmissionFilter selects a page of submissions for a form.
type SubmissionFilter struct {
	PageKey string
	Offset  uint64
	Limit   uint64
}

package models

import "time"

// Draft is an unfinished wizard run kept by the terminal client so that a
// visitor can resume where they left off.
type Draft struct {
	PageKey       string         `json:"pageKey"`
	Locale        string         `json:"locale"`
	Step          int            `json:"step"`
	SchemaVersion int64          `json:"schemaVersion"`
	Data          SubmissionData `json:"data"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

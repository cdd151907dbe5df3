package models

import "encoding/json"

// FormResponse is the body of GET /forms/{pageKey}.
type FormResponse struct {
	Form Form `json:"form"`
}

// FormsResponse is the body of the admin form listing.
type FormsResponse struct {
	Forms []Form `json:"forms"`
}

// SaveFormRequest is the body of PUT /forms/{pageKey}.
//
// Version is the form version the editor loaded (zero for a new form).
// A save against a version that has since advanced is rejected.
type SaveFormRequest struct {
	Steps   []FormStep `json:"steps"`
	Version int64      `json:"version"`
}

// SaveFormResponse is returned after a successful schema save.
type SaveFormResponse struct {
	Success bool  `json:"success"`
	Version int64 `json:"version"`
}

// SubmitRequest is the body of POST /forms/{pageKey}/submit.
type SubmitRequest struct {
	Data SubmissionData `json:"data"`
}

// SuccessResponse is the generic success body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubmissionsResponse is one page of stored submissions.
type SubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int64        `json:"total"`
	Offset      uint64       `json:"offset"`
	Limit       uint64       `json:"limit"`
}

// UploadResponse describes a stored upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// SaveContentRequest is the body of PUT /content/{pageKey}/{locale}.
type SaveContentRequest struct {
	Data json.RawMessage `json:"data"`
}

// ServerInfo is the JSON form of GET /api/version/.
type ServerInfo struct {
	Version       string   `json:"version"`
	DefaultLocale string   `json:"defaultLocale"`
	Locales       []string `json:"locales"`
}

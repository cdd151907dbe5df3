package models

import (
	"encoding/json"
	"time"
)

// PageContent is the localized content document of one page.
//
// Data is an arbitrary JSON document. Text values are forked per locale while
// shared values (images, positions, links) are kept equal across locales.
type PageContent struct {
	PageKey   string          `json:"pageKey"`
	Locale    string          `json:"locale"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ContentFieldUpdate replaces the text at one JSON Pointer of a document.
type ContentFieldUpdate struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

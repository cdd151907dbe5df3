package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client used for
// outbound calls to third-party JSON APIs such as the OAuth user-info
// endpoint.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client that accepts JSON and gives
// up after timeout. A zero timeout means no limit.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &HTTPClient{Client: client}
}

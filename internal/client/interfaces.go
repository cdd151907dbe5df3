package client

import (
	"context"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/locale"
)

// Client is a runnable terminal client. Run returns nil when the user quits.
type Client interface {
	Run() error
}

// Runner runs one wizard session in the terminal.
type Runner interface {
	Run(ctx context.Context, cfg config.ClientWizard, l locale.Locale) error
}

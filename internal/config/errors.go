package config

import "errors"

// Each error names the configuration group that failed validation; the
// wrapped message says which field.
var (
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")
	// ErrInvalidWizardConfigs is returned when the client has no page to open.
	ErrInvalidWizardConfigs = errors.New("invalid wizard configuration")
	ErrInvalidAdminConfigs  = errors.New("invalid admin configuration")
)

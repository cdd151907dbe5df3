package config

import "fmt"

// AdminConfig is the view of [StructuredConfig] used by the schema
// publishing tool. It reuses the client adapter settings.
type AdminConfig struct {
	Adapter  ClientAdapter
	Login    string
	Password string
}

// GetAdminConfig loads the structured configuration and maps the fields the
// publishing tool needs.
func GetAdminConfig() (*AdminConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	adminCfg := &AdminConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Login:    cfg.Admin.Login,
		Password: cfg.Admin.Password,
	}

	return adminCfg, adminCfg.validate()
}

func (cfg *AdminConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}
	return nil
}

// CheckCredentials reports whether the tool can sign in. Offline schema
// checks run without credentials.
func (cfg *AdminConfig) CheckCredentials() error {
	if cfg.Login == "" || cfg.Password == "" {
		return fmt.Errorf("%w: login and password are required", ErrInvalidAdminConfigs)
	}
	return nil
}

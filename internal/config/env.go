// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment through the env and
// envPrefix tags of [StructuredConfig] (APP_TOKEN_SIGN_KEY, WIZARD_PAGE_KEY
// and so on). The default locale is lower-cased so that APP_DEFAULT_LOCALE=HY
// is accepted.
func parseEnv(cfg *StructuredConfig) error {
	parsed, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	parsed.App.DefaultLocale = strings.ToLower(strings.TrimSpace(parsed.App.DefaultLocale))
	*cfg = parsed
	return nil
}

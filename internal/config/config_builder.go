package config

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// source is one layer of configuration together with the name used in error
// messages.
type source struct {
	name string
	cfg  *StructuredConfig
}

// configBuilder stacks configuration layers. Later layers override the
// non-zero fields of earlier ones.
type configBuilder struct {
	sources []source
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		sources: make([]source, 0, 4),
	}
}

func (b *configBuilder) add(name string, cfg *StructuredConfig) *configBuilder {
	b.sources = append(b.sources, source{name: name, cfg: cfg})
	return b
}

func (b *configBuilder) fail(name string, err error) *configBuilder {
	b.err = errors.Join(b.err, fmt.Errorf("%s: %w", name, err))
	return b
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, src := range b.sources {
		if err := mergo.Merge(merged, src.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", src.name, err)
		}
	}
	merged.normalize()

	return merged, merged.validate()
}

// withDefaults seeds the builder with [Defaults] so that every later
// source only overrides what it actually sets.
func (b *configBuilder) withDefaults() *configBuilder {
	return b.add("defaults", Defaults())
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		return b.fail("env", err)
	}
	return b.add("env", envCfg)
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add("flags", ParseFlags())
}

// withJSON loads the file named by the last source that set JSONFilePath.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	if err != nil {
		return b.fail("json "+path, err)
	}
	return b.add("json", jsonCfg)
}

func (b *configBuilder) jsonPath() string {
	var path string
	for _, src := range b.sources {
		if src.cfg.JSONFilePath != "" {
			path = src.cfg.JSONFilePath
		}
	}
	return path
}

// normalize tidies values every source may spell differently.
func (cfg *StructuredConfig) normalize() {
	cfg.App.DefaultLocale = strings.ToLower(strings.TrimSpace(cfg.App.DefaultLocale))
	cfg.Server.PublicURL = strings.TrimRight(cfg.Server.PublicURL, "/")
	cfg.Wizard.PageKey = strings.TrimSpace(cfg.Wizard.PageKey)

	keys := cfg.Content.SharedKeys[:0]
	for _, k := range cfg.Content.SharedKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		keys = nil
	}
	cfg.Content.SharedKeys = keys
}

// Package config loads pyskel settings and ignore rules from a project
// directory.
package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mvp-joe/pyskel/internal/skeleton"
)

// ConfigFileName is the project-local settings file, read from the project
// root. Settings live under the [pyskel] table.
const ConfigFileName = "pyskel.toml"

// Settings exposes merged configuration: pyskel.toml values over built-in
// defaults. A missing config file silently yields the defaults; a malformed
// one additionally logs a warning.
type Settings struct {
	v *viper.Viper
}

// Load reads settings for the given project root.
func Load(rootDir string) *Settings {
	v := viper.New()
	v.SetConfigName("pyskel")
	v.SetConfigType("toml")
	v.AddConfigPath(rootDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			// Lenient by design: a broken config file must not stop a
			// run, it just loses its overrides.
			log.Printf("warning: ignoring malformed %s: %v", filepath.Join(rootDir, ConfigFileName), err)
		}
	}

	return &Settings{v: v}
}

// setDefaults registers the built-in defaults under the [pyskel] table.
func setDefaults(v *viper.Viper) {
	v.SetDefault("pyskel.min_level", skeleton.DefaultMinLevel)
	v.SetDefault("pyskel.preserve_imports", true)
	v.SetDefault("pyskel.include_private", false)
	v.SetDefault("pyskel.smart_calls", true)
	v.SetDefault("pyskel.max_call_depth", 2)
}

// Get returns the raw value for a key within the [pyskel] table, or the
// fallback when the key is unknown.
func (s *Settings) Get(key string, fallback any) any {
	full := "pyskel." + key
	if !s.v.IsSet(full) {
		return fallback
	}
	return s.v.Get(full)
}

// MinLevel is the configured elision threshold.
func (s *Settings) MinLevel() int {
	return s.v.GetInt("pyskel.min_level")
}

// SmartCalls reports whether elided bodies keep an "Important calls:"
// summary.
func (s *Settings) SmartCalls() bool {
	return s.v.GetBool("pyskel.smart_calls")
}

// PreserveImports is reserved for collaborator-side filtering.
func (s *Settings) PreserveImports() bool {
	return s.v.GetBool("pyskel.preserve_imports")
}

// IncludePrivate is reserved for collaborator-side filtering.
func (s *Settings) IncludePrivate() bool {
	return s.v.GetBool("pyskel.include_private")
}

// MaxCallDepth is reserved for collaborator-side filtering.
func (s *Settings) MaxCallDepth() int {
	return s.v.GetInt("pyskel.max_call_depth")
}

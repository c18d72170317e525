// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ Defaults used when neither a config file nor a flag sets a value
const (
	DefaultExtension   = ".ts"
	DefaultORMPackage  = "typeorm"
	DefaultConcurrency = 10
)

// DefaultIgnore keeps installed packages out of the walk
var DefaultIgnore = []string{"**/node_modules/**"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes. Unset fields stay at their zero value.
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Extension   string   `json:"extension,omitempty" yaml:"extension,omitempty" hcl:"extension,optional"`
	ORMPackage  string   `json:"orm_package,omitempty" yaml:"orm_package,omitempty" hcl:"orm_package,optional"`
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	DryRun      bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`

	location string
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Extension:   DefaultExtension,
		ORMPackage:  DefaultORMPackage,
		Concurrency: DefaultConcurrency,
		Ignore:      append([]string(nil), DefaultIgnore...),
	}
}

// Location is the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔀 Merge overlays every value set in other onto cfg.
// A non-nil Ignore list replaces the current one, so an empty list clears it.
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Extension != "" {
		cfg.Extension = other.Extension
	}
	if other.ORMPackage != "" {
		cfg.ORMPackage = other.ORMPackage
	}
	if other.Concurrency != 0 {
		cfg.Concurrency = other.Concurrency
	}
	if other.Ignore != nil {
		cfg.Ignore = append([]string{}, other.Ignore...)
	}
	if other.DryRun {
		cfg.DryRun = true
	}
	if other.location != "" {
		cfg.location = other.location
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Extension == "" {
		return errors.Errorf("extension is required")
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		return errors.Errorf("extension %q must start with a dot", cfg.Extension)
	}
	if strings.ContainsAny(cfg.Extension, `*?[]{}\/`) {
		return errors.Errorf("extension %q must not contain glob characters or separators", cfg.Extension)
	}
	if cfg.ORMPackage == "" {
		return errors.Errorf("orm_package is required")
	}
	if strings.ContainsAny(cfg.ORMPackage, "\"'\r\n") {
		return errors.Errorf("orm_package %q must not contain quotes or line breaks", cfg.ORMPackage)
	}
	if cfg.Concurrency < 1 {
		return errors.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore[%d]: invalid pattern %q", i, pattern)
		}
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("ext=%s orm=%s concurrency=%d ignore=[%s] dry_run=%t",
		cfg.Extension, cfg.ORMPackage, cfg.Concurrency, strings.Join(cfg.Ignore, ","), cfg.DryRun)
}

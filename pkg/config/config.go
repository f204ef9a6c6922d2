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

// Package config holds the run configuration: the roster path, the image
// directories, and scan options. Configuration can come from a YAML or HCL
// file, from CLI flags, or both (flags win).
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/pixmatch/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers is a list of available parsers
var parsers []Parser

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

// 📚 Config represents the complete run configuration
type Config struct {
	// TablePath is the client roster spreadsheet (.xlsx or .csv)
	TablePath string `json:"table" yaml:"table"`
	// ImagesDir is the primary images directory
	ImagesDir string `json:"images" yaml:"images"`
	// OutputDir receives copies of matched images
	OutputDir string `json:"output" yaml:"output"`
	// FallbackDir is scanned for identifiers the primary pass missed;
	// empty disables the fallback pass
	FallbackDir string `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	// IgnorePatterns are glob patterns for directory entries to skip
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	// OnConflict decides what happens when a matched image already exists
	// in the output directory: "overwrite" (default) or "skip"
	OnConflict match.ConflictPolicy `json:"on_conflict,omitempty" yaml:"on_conflict,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Check required fields
	if cfg.TablePath == "" {
		return errors.Errorf("table is required")
	}
	if cfg.ImagesDir == "" {
		return errors.Errorf("images is required")
	}
	if cfg.OutputDir == "" {
		return errors.Errorf("output is required")
	}

	// Clean up paths
	cfg.TablePath = filepath.Clean(cfg.TablePath)
	cfg.ImagesDir = filepath.Clean(cfg.ImagesDir)
	cfg.OutputDir = filepath.Clean(cfg.OutputDir)
	if cfg.FallbackDir != "" {
		cfg.FallbackDir = filepath.Clean(cfg.FallbackDir)
	}

	// Set defaults
	switch cfg.OnConflict {
	case "":
		cfg.OnConflict = match.Overwrite
	case match.Overwrite, match.Skip:
	default:
		return errors.Errorf("on_conflict must be %q or %q, got %q", match.Overwrite, match.Skip, cfg.OnConflict)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	s := fmt.Sprintf("%s + %s -> %s", cfg.TablePath, cfg.ImagesDir, cfg.OutputDir)
	if cfg.FallbackDir != "" {
		s += fmt.Sprintf(" (fallback %s)", cfg.FallbackDir)
	}
	return s
}

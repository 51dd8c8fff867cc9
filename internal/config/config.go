// Copyright 2024 The cppbind Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads and merges the typed configuration a cppbind run
// needs: module identity, header/include roots, the movable-class and
// name-blocklist sets, and the per-environment C++ build settings the
// checker collaborator uses. Grounded on kati's cmdline.go
// (ParseCommandLine/initVars): a base layer loaded from file, then
// overridden var-by-var by command-line flags, applied in order.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Environment is one target build environment a module is checked and
// generated against (architecture, OS, C++ build flags).
type Environment struct {
	Arch string `json:"arch"`
	OS string `json:"os"`
	Family string `json:"family"`

	Predefines string `json:"predefines"`
	Includes []string `json:"includes"`
}

// Config is the full typed configuration of one cppbind invocation.
type Config struct {
	ModuleName string `json:"module_name"`
	ModuleVersion string `json:"module_version"`

	// Headers lists the C++ headers to parse, in inclusion order.
	Headers []string `json:"headers"`
	// IncludePaths are search roots the parser resolves #include
	// directives against.
	IncludePaths []string `json:"include_paths"`
	// TargetIncludePaths is passed to the parser in each request. The
	// parser does not filter declarations by it, and module names are
	// not derived from it.
	TargetIncludePaths []string `json:"target_include_paths"`

	// MovableClasses are C++ class paths (qualified names) to be exposed
	// as by-value, copyable TL types instead of opaque pointer handles.
	MovableClasses []string `json:"movable_classes"`

	// NameBlocklist is a list of C++ path patterns. It is loaded but no
	// pipeline step reads it, so it excludes nothing from generation.
	NameBlocklist []string `json:"name_blocklist"`

	// StripQtPrefix enables the leading Q/Qt prefix-stripping rule in
	// name resolution; off by default for non-Qt modules.
	StripQtPrefix bool `json:"strip_qt_prefix"`

	// Environments are the target build environments generation runs
	// against; at least one is required.
	Environments []Environment `json:"environments"`

	// DatabasePath is where the incremental database is loaded from and
	// saved to between runs.
	DatabasePath string `json:"database_path"`
	// OutputDir is the root directory generated Go source is written
	// under.
	OutputDir string `json:"output_dir"`
}

// Load reads a JSON configuration file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants generation and checking depend on:
// a non-empty module name, at least one header, and at least one
// environment.
func (c *Config) Validate() error {
	if c.ModuleName == "" {
		return errors.New("config: module_name is required")
	}
	if len(c.Headers) == 0 {
		return errors.New("config: at least one header is required")
	}
	if len(c.Environments) == 0 {
		return errors.New("config: at least one environment is required")
	}
	if c.DatabasePath == "" {
		c.DatabasePath = c.ModuleName + ".cppbinddb"
	}
	if c.OutputDir == "" {
		c.OutputDir = "generated"
	}
	return nil
}

// Override applies flag-sourced overrides onto a file-loaded Config,
// layering the way ParseCommandLine's vars override a makefile's
// defaults: a zero value on the override side leaves the base
// untouched.
type Override struct {
	DatabasePath string
	OutputDir string
	StripQtPrefix *bool
}

// Apply merges o into c in place.
func (o Override) Apply(c *Config) {
	if o.DatabasePath != "" {
		c.DatabasePath = o.DatabasePath
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.StripQtPrefix != nil {
		c.StripQtPrefix = *o.StripQtPrefix
	}
}

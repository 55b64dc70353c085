// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config holds the campaign configuration shared by the
// abitest subcommands.
package config

import (
	"flag"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/GenuineRex/abitest/errors"
)

// Config describes one compatibility test campaign. The output root is
// always explicit so that tests can point a campaign at a temporary
// directory.
type Config struct {
	// Executor is the path of the external test executor.
	Executor string `yaml:"executor"`
	// Compiler selects the executor's compiler configuration.
	Compiler string `yaml:"compiler"`
	// Mode selects the executor's build mode.
	Mode string `yaml:"mode"`
	// Suite names the test suite target passed to the executor.
	Suite string `yaml:"suite"`
	// OldestVersion and NewestVersion bound the supported ABI version
	// range, inclusive. A run is made for each version in the range,
	// plus one baseline run without a version override.
	OldestVersion int `yaml:"oldest_version"`
	NewestVersion int `yaml:"newest_version"`
	// OutDir is the output root under which per-run directories and the
	// merged report are written.
	OutDir string `yaml:"out_dir"`
}

// Default returns a Config with default values. The executor and the
// version range have no usable defaults and must be provided by a
// config file or flags.
func Default() *Config {
	return &Config{
		Compiler: "bytecode",
		Mode:     "release",
		Suite:    "corelib",
		OutDir:   "out",
	}
}

// Load reads a YAML config file. Unknown fields are rejected to catch
// typos early.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	cfg := Default()
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// SetFlags registers override flags on f. Flag values left at their
// zero value do not override the config.
func (o *Config) SetFlags(f *flag.FlagSet) {
	f.StringVar(&o.Executor, "executor", o.Executor, "path of the test executor")
	f.StringVar(&o.Compiler, "compiler", o.Compiler, "compiler configuration passed to the executor")
	f.StringVar(&o.Mode, "mode", o.Mode, "build mode passed to the executor")
	f.StringVar(&o.Suite, "suite", o.Suite, "test suite target")
	f.IntVar(&o.OldestVersion, "oldest", o.OldestVersion, "oldest supported ABI version")
	f.IntVar(&o.NewestVersion, "newest", o.NewestVersion, "newest (current) ABI version")
	f.StringVar(&o.OutDir, "outdir", o.OutDir, "output root directory")
}

// Apply copies o's non-zero fields over cfg. Flags win over the config
// file.
func (o *Config) Apply(cfg *Config) {
	if o.Executor != "" {
		cfg.Executor = o.Executor
	}
	if o.Compiler != "" {
		cfg.Compiler = o.Compiler
	}
	if o.Mode != "" {
		cfg.Mode = o.Mode
	}
	if o.Suite != "" {
		cfg.Suite = o.Suite
	}
	if o.OldestVersion != 0 {
		cfg.OldestVersion = o.OldestVersion
	}
	if o.NewestVersion != 0 {
		cfg.NewestVersion = o.NewestVersion
	}
	if o.OutDir != "" {
		cfg.OutDir = o.OutDir
	}
}

// Validate reports whether the config describes a runnable campaign.
func (c *Config) Validate() error {
	if c.Executor == "" {
		return errors.New("executor must be specified")
	}
	return c.ValidateMerge()
}

// ValidateMerge checks the subset of the config needed to reconcile an
// existing output root, where no executor is invoked.
func (c *Config) ValidateMerge() error {
	if c.OutDir == "" {
		return errors.New("output root must be specified")
	}
	if c.OldestVersion <= 0 || c.NewestVersion <= 0 {
		return errors.New("ABI version range must be specified")
	}
	if c.OldestVersion > c.NewestVersion {
		return errors.Errorf("oldest version %d is newer than newest version %d", c.OldestVersion, c.NewestVersion)
	}
	return nil
}

// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"github.com/GenuineRex/abitest/internal/config"
)

// loadConfig assembles the effective config: defaults, then the YAML
// file at path (if any), then non-zero flag overrides.
func loadConfig(path string, overrides *config.Config) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	overrides.Apply(cfg)
	return cfg, nil
}

// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/GenuineRex/abitest/internal/campaign"
	"github.com/GenuineRex/abitest/internal/config"
	"github.com/GenuineRex/abitest/internal/logging"
	"github.com/GenuineRex/abitest/internal/reconcile"
)

// mergeCmd implements subcommands.Command for the "merge" subcommand,
// which reconciles the per-run files of an already-executed campaign
// without running the executor again.
type mergeCmd struct {
	configPath string
	overrides  config.Config
}

func newMergeCmd() *mergeCmd {
	return &mergeCmd{}
}

func (*mergeCmd) Name() string { return "merge" }
func (*mergeCmd) Synopsis() string {
	return "merge per-run results in an existing output root"
}
func (*mergeCmd) Usage() string {
	return `Usage: abitest merge [flag]...

Merges the per-run result and log files already present under the
output root into a divergence report, without running any tests.

`
}

func (m *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&m.configPath, "config", "", "path of a YAML campaign config file")
	m.overrides.SetFlags(f)
}

func (m *mergeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(m.configPath, &m.overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		return subcommands.ExitFailure
	}
	if err := cfg.ValidateMerge(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, m.Usage())
		return subcommands.ExitUsageError
	}

	runs := campaign.BuildRuns(cfg)
	report, err := reconcile.Reconcile(ctx, campaign.Inputs(runs), cfg.OutDir)
	if err != nil {
		logging.Info(ctx, "Failed to merge results: ", err)
		return subcommands.ExitFailure
	}
	reconcile.WriteSummary(ctx, report, cfg.OutDir)
	return subcommands.ExitSuccess
}

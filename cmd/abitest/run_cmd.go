// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/GenuineRex/abitest/internal/campaign"
	"github.com/GenuineRex/abitest/internal/config"
	"github.com/GenuineRex/abitest/internal/logging"
	"github.com/GenuineRex/abitest/internal/reconcile"
)

const fullLogName = "full.txt" // file in the output root containing full output

// runCmd implements subcommands.Command for the "run" subcommand.
type runCmd struct {
	configPath string
	overrides  config.Config
}

func newRunCmd() *runCmd {
	return &runCmd{}
}

func (*runCmd) Name() string { return "run" }
func (*runCmd) Synopsis() string {
	return "run the test suite under every ABI version and merge the results"
}
func (*runCmd) Usage() string {
	return `Usage: abitest run [flag]...

Runs the test suite once per supported ABI version plus a baseline run,
then merges the per-run results into a divergence report under the
output root.

`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.configPath, "config", "", "path of a YAML campaign config file")
	r.overrides.SetFlags(f)
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(r.configPath, &r.overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		return subcommands.ExitFailure
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, r.Usage())
		return subcommands.ExitUsageError
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create output root:", err)
		return subcommands.ExitFailure
	}

	// Tee all messages, including debug ones, into full.txt.
	fullLog, err := os.Create(filepath.Join(cfg.OutDir, fullLogName))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to open log file:", err)
		return subcommands.ExitFailure
	}
	defer fullLog.Close()
	fileSink := logging.NewStrippingSink(logging.NewWriterSink(fullLog))
	logger := logging.NewSinkLogger(logging.LevelDebug, true, fileSink)
	ctx = logging.AttachLogger(ctx, logger)

	logging.Debug(ctx, "Command line: ", strings.Join(os.Args, " "))

	runs := campaign.BuildRuns(cfg)
	summary, err := campaign.NewOrchestrator(cfg.Executor, runs).RunAll(ctx)
	if err != nil {
		logging.Info(ctx, "Campaign failed: ", err)
		return subcommands.ExitFailure
	}
	if err := summary.Write(filepath.Join(cfg.OutDir, campaign.SummaryFileName)); err != nil {
		// The summary is evidence, not an input; a failed write should
		// not stop reconciliation.
		logging.Info(ctx, "Failed to write campaign summary: ", err)
	}

	report, err := reconcile.Reconcile(ctx, campaign.Inputs(runs), cfg.OutDir)
	if err != nil {
		logging.Info(ctx, "Failed to merge results: ", err)
		return subcommands.ExitFailure
	}
	reconcile.WriteSummary(ctx, report, cfg.OutDir)
	return subcommands.ExitSuccess
}

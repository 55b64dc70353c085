// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package campaign builds and executes the sequence of test runs that
// make up one ABI compatibility campaign.
package campaign

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GenuineRex/abitest/internal/abi"
	"github.com/GenuineRex/abitest/internal/config"
	"github.com/GenuineRex/abitest/internal/reconcile"
)

const (
	runDirPrefix = "test"         // per-run directory name, version appended
	logsDirName  = "logs"         // subdirectory holding a run's output files
	resultsName  = "results.json" // result file written by the executor
	logsName     = "logs.json"    // log file written by the executor
)

// Run is one execution of the test suite under a specific ABI version
// setting. Runs are immutable once built; their files persist as
// evidence after the campaign.
type Run struct {
	// Version is the forced ABI version, or abi.Baseline.
	Version abi.Version
	// Dir is the run's output directory under the campaign root.
	Dir string
	// ResultsFile and LogsFile are where the executor writes its
	// output for this run.
	ResultsFile string
	LogsFile    string
	// Args is the executor argument list for this run.
	Args []string
}

// buildRun constructs the run for one version setting.
func buildRun(cfg *config.Config, v abi.Version) *Run {
	name := runDirPrefix
	if !v.IsBaseline() {
		name += strconv.Itoa(int(v))
	}
	dir := filepath.Join(cfg.OutDir, name)
	logDir := filepath.Join(dir, logsDirName)

	vmOptions := []string{"--enable-interpreter"}
	if !v.IsBaseline() {
		vmOptions = append(vmOptions, "--use-abi-version="+strconv.Itoa(int(v)))
	}
	args := []string{
		"--compiler=" + cfg.Compiler,
		"--mode=" + cfg.Mode,
		"--write-results",
		"--write-logs",
		"--output_directory=" + logDir,
		"--vm-options=" + strings.Join(vmOptions, " "),
		cfg.Suite,
	}

	return &Run{
		Version:     v,
		Dir:         dir,
		ResultsFile: filepath.Join(logDir, resultsName),
		LogsFile:    filepath.Join(logDir, logsName),
		Args:        args,
	}
}

// BuildRuns constructs the baseline run followed by one run per
// supported version, ascending. It only computes paths; directories are
// created when the orchestrator invokes each run.
func BuildRuns(cfg *config.Config) []*Run {
	runs := []*Run{buildRun(cfg, abi.Baseline)}
	for _, v := range abi.Range(cfg.OldestVersion, cfg.NewestVersion) {
		runs = append(runs, buildRun(cfg, v))
	}
	return runs
}

// Inputs converts runs into reconciler inputs.
func Inputs(runs []*Run) []reconcile.Input {
	ins := make([]reconcile.Input, len(runs))
	for i, r := range runs {
		ins[i] = reconcile.Input{
			Version:     r.Version,
			ResultsFile: r.ResultsFile,
			LogsFile:    r.LogsFile,
		}
	}
	return ins
}

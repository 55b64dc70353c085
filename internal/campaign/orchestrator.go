// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package campaign

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/GenuineRex/abitest/errors"
	"github.com/GenuineRex/abitest/internal/logging"
)

// clk is replaced in unit tests to use fake clocks.
var clk = clock.NewClock()

// SummaryFileName is the campaign summary file written under the
// output root.
const SummaryFileName = "campaign.json"

// RunStatus records how one run went.
type RunStatus struct {
	// Version is the run's version label ("baseline" or a number).
	Version string `json:"version"`
	// ExitStatus is the executor's exit status. -1 means the executor
	// could not be started or was killed by a signal.
	ExitStatus int `json:"exitStatus"`

	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationSec float64   `json:"durationSec"`
}

// Summary records the outcome of a whole campaign. It is written to
// SummaryFileName under the output root as evidence for later
// inspection; reconciliation does not read it.
type Summary struct {
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
	Runs  []RunStatus `json:"runs"`
}

// Write writes the summary as indented JSON to path.
func (s *Summary) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create campaign summary")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Orchestrator invokes the external test executor once per run,
// strictly in sequence. It never retries and never aborts the campaign
// on executor failure: reconciliation later decides what the surviving
// files mean.
type Orchestrator struct {
	executor string
	runs     []*Run
}

// NewOrchestrator creates an Orchestrator that invokes executor for
// each of runs.
func NewOrchestrator(executor string, runs []*Run) *Orchestrator {
	return &Orchestrator{executor: executor, runs: runs}
}

// RunAll executes every run in order, baseline first, blocking on each
// executor process until it exits. The returned summary covers every
// run, including failed ones. The only errors reported are local ones
// (e.g. the output directory cannot be created).
func (o *Orchestrator) RunAll(ctx context.Context) (*Summary, error) {
	summary := &Summary{Start: clk.Now()}
	for _, run := range o.runs {
		status, err := o.runOne(ctx, run)
		if err != nil {
			return nil, err
		}
		summary.Runs = append(summary.Runs, *status)
	}
	summary.End = clk.Now()
	return summary, nil
}

func (o *Orchestrator) runOne(ctx context.Context, run *Run) (*RunStatus, error) {
	if run.Version.IsBaseline() {
		logging.Info(ctx, "=== Running tests without an ABI version ===")
	} else {
		logging.Infof(ctx, "=== Running tests for ABI version %s ===", run.Version)
	}

	logDir := filepath.Dir(run.ResultsFile)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output dir for run %s", run.Version)
	}

	cmd := exec.Command(o.executor, run.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	logging.Info(ctx, "Command line: ", quoteCmd(append([]string{o.executor}, run.Args...)))

	status := &RunStatus{Version: run.Version.String(), Start: clk.Now()}
	err := cmd.Run()
	status.End = clk.Now()
	status.DurationSec = status.End.Sub(status.Start).Seconds()

	switch {
	case err == nil:
		status.ExitStatus = 0
	case cmd.ProcessState != nil:
		// Non-zero exit or signal. Record it and move on; whatever
		// files the run produced are judged at reconciliation time.
		status.ExitStatus = cmd.ProcessState.ExitCode()
		logging.Infof(ctx, "Executor for run %s failed: %v", run.Version, err)
	default:
		status.ExitStatus = -1
		logging.Infof(ctx, "Failed to start executor for run %s: %v", run.Version, err)
	}
	return status, nil
}

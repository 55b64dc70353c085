// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package reconcile merges per-version test results into a single
// divergence report.
//
// Every run of the campaign produces a result file and a log file in
// JSON Lines form, keyed by test name. Reconciliation groups records by
// test name across runs, computes a merged verdict per test, and emits
// one merged result file plus one merged log file covering only tests
// whose verdicts disagree across versions.
package reconcile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GenuineRex/abitest/errors"
	"github.com/GenuineRex/abitest/internal/abi"
	"github.com/GenuineRex/abitest/internal/logging"
	"github.com/GenuineRex/abitest/internal/results"
)

const (
	// MergedDirName is the directory under the output root holding the
	// merged files.
	MergedDirName = "logs"
	// ResultsFileName is the merged result file name.
	ResultsFileName = "results.json"
	// LogsFileName is the merged log file name.
	LogsFileName = "logs.json"

	// logSeparator joins the sections of a merged log body. Two blank
	// lines keep per-version stack traces visually apart.
	logSeparator = "\n\n\n"
)

// Input identifies one run's output files.
type Input struct {
	// Version is the ABI version the run forced, or abi.Baseline.
	Version abi.Version
	// ResultsFile is the path of the run's result file. It must exist.
	ResultsFile string
	// LogsFile is the path of the run's log file. A missing log file
	// means the run contributes no log records.
	LogsFile string
}

// Report summarizes one reconciliation for callers that render a
// human-readable summary.
type Report struct {
	// Merged holds every merged record, sorted by test name.
	Merged []results.MergedRecord
	// Diverged maps a test name to its diverging versions, ascending.
	// Tests whose versions all agree are absent.
	Diverged map[string][]abi.Version
}

// Reconcile reads every input's result and log files, merges records by
// test name, and writes the merged result and log files under
// outRoot/logs. It returns a Report describing what was written.
//
// A missing result file or an unparsable line aborts the whole
// reconciliation: a missing result file is not the same as a run with
// zero tests, and a malformed file cannot be partially trusted.
func Reconcile(ctx context.Context, inputs []Input, outRoot string) (*Report, error) {
	allResults, err := loadResults(inputs)
	if err != nil {
		return nil, err
	}
	allLogs, err := loadLogs(ctx, inputs)
	if err != nil {
		return nil, err
	}

	mergedDir := filepath.Join(outRoot, MergedDirName)
	if err := os.MkdirAll(mergedDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create merged log dir")
	}
	resFile, err := os.Create(filepath.Join(mergedDir, ResultsFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create merged result file")
	}
	defer resFile.Close()
	logFile, err := os.Create(filepath.Join(mergedDir, LogsFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create merged log file")
	}
	defer logFile.Close()

	resWriter := results.NewWriter(resFile)
	logWriter := results.NewWriter(logFile)

	report := &Report{Diverged: make(map[string][]abi.Version)}

	// Emit in sorted name order so reruns produce identical files.
	names := make([]string, 0, len(allResults))
	for name := range allResults {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		merged, diffs := diff(allResults[name])
		if err := resWriter.Write(merged); err != nil {
			return nil, errors.Wrapf(err, "failed to write merged record for %s", name)
		}
		report.Merged = append(report.Merged, merged)
		if len(diffs) == 0 {
			continue
		}
		report.Diverged[name] = diffs
		if err := logWriter.Write(mergeLog(merged, diffs, allLogs[name])); err != nil {
			return nil, errors.Wrapf(err, "failed to write merged log for %s", name)
		}
	}

	if err := resWriter.Flush(); err != nil {
		return nil, errors.Wrap(err, "failed to flush merged results")
	}
	if err := logWriter.Flush(); err != nil {
		return nil, errors.Wrap(err, "failed to flush merged logs")
	}
	return report, nil
}

// loadResults reads every input's result file and groups records as
// test name -> version -> record. A missing or malformed result file is
// fatal.
func loadResults(inputs []Input) (map[string]map[abi.Version]results.Record, error) {
	all := make(map[string]map[abi.Version]results.Record)
	for _, in := range inputs {
		recs, err := results.ReadFile(in.ResultsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "run %s has no usable result file", in.Version)
		}
		for name, rec := range recs {
			if _, ok := all[name]; !ok {
				all[name] = make(map[abi.Version]results.Record)
			}
			all[name][in.Version] = rec
		}
	}
	return all, nil
}

// loadLogs reads every input's log file and groups records as test
// name -> version -> record. A missing log file contributes nothing,
// but a malformed one is fatal like a malformed result file: a file
// that cannot be parsed cannot be partially trusted.
func loadLogs(ctx context.Context, inputs []Input) (map[string]map[abi.Version]results.LogRecord, error) {
	all := make(map[string]map[abi.Version]results.LogRecord)
	for _, in := range inputs {
		recs, err := results.ReadLogFile(in.LogsFile)
		if err != nil {
			var missing *results.MissingFileError
			if errors.As(err, &missing) {
				logging.Debugf(ctx, "Run %s has no log file; continuing without it", in.Version)
				continue
			}
			return nil, errors.Wrapf(err, "run %s has an unusable log file", in.Version)
		}
		for name, rec := range recs {
			if _, ok := all[name]; !ok {
				all[name] = make(map[abi.Version]results.LogRecord)
			}
			all[name][in.Version] = rec
		}
	}
	return all, nil
}

// diff reconciles one test's per-version records into a merged record
// and the ascending set of diverging versions.
//
// The expected result comes from the baseline record when present,
// otherwise from the lowest present version. When versions diverge, the
// merged result reports the lowest diverging version's result; this
// replaces the original last-write-wins behavior, which depended on map
// iteration order.
func diff(recs map[abi.Version]results.Record) (results.MergedRecord, []abi.Version) {
	vs := abi.Sorted(recs)
	rep := recs[vs[0]] // baseline if present; abi.Baseline sorts first

	merged := results.MergedRecord{
		Name:          rep.Name,
		Configuration: rep.Configuration,
		Result:        rep.Result,
		Expected:      rep.Result,
		Matches:       true,
	}
	var diffs []abi.Version
	for _, v := range vs {
		if v.IsBaseline() {
			continue
		}
		if act := recs[v].Result; act != merged.Expected {
			if len(diffs) == 0 {
				merged.Result = act
			}
			diffs = append(diffs, v)
			merged.Matches = false
		}
	}
	return merged, diffs
}

// mergeLog builds the combined log record for a diverging test. The
// body opens with the diverging-version set and then concatenates each
// available per-version log, prefixed with its version label, baseline
// first.
func mergeLog(merged results.MergedRecord, diffs []abi.Version, logs map[abi.Version]results.LogRecord) results.LogRecord {
	sections := []string{renderVersions(diffs)}
	for _, v := range abi.Sorted(logs) {
		sections = append(sections, fmt.Sprintf("%s: %s", v, logs[v].Log))
	}
	return results.LogRecord{
		Name:          merged.Name,
		Configuration: merged.Configuration,
		Result:        merged.Result,
		Log:           strings.Join(sections, logSeparator),
	}
}

// renderVersions renders a version set as e.g. "[5, 6]".
func renderVersions(vs []abi.Version) string {
	labels := make([]string, len(vs))
	for i, v := range vs {
		labels[i] = v.String()
	}
	return "[" + strings.Join(labels, ", ") + "]"
}

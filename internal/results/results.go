// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package results defines the records exchanged with the external test
// executor and the merged records produced by reconciliation.
//
// Result and log files are JSON Lines: one JSON object per line, keyed
// by test name. The name is unique within one file but not across
// runs.
package results

import (
	"fmt"
)

// Record is one line of a run's result file, as written by the test
// executor.
type Record struct {
	// Name is the test name, unique within one result file.
	Name string `json:"name"`
	// Result is the executor's pass/fail/error classification. It is
	// treated as an opaque string.
	Result string `json:"result"`
	// Configuration identifies the executor configuration that produced
	// this record. Some executors omit it on versioned runs.
	Configuration string `json:"configuration,omitempty"`
}

// LogRecord is one line of a run's log file. Log records exist only for
// tests with anomalies; most tests have none.
type LogRecord struct {
	Name          string `json:"name"`
	Configuration string `json:"configuration,omitempty"`
	Result        string `json:"result,omitempty"`
	// Log carries free-form diagnostic text.
	Log string `json:"log"`
}

// MergedRecord is the reconciled view of one test name across all runs.
// It is always constructed fresh from named fields, never by mutating a
// record read from an input file.
type MergedRecord struct {
	Name          string `json:"name"`
	Configuration string `json:"configuration,omitempty"`
	// Result equals Expected when all versions agree. When versions
	// diverge it is the result of the lowest diverging version.
	Result string `json:"result"`
	// Expected is the baseline run's result, or the representative
	// run's result when no baseline record exists.
	Expected string `json:"expected"`
	// Matches is true iff every version's result equals Expected.
	Matches bool `json:"matches"`
}

// ParseError reports a line of an input file that is not valid JSON or
// does not conform to the record schema. A ParseError is fatal for the
// whole reconciliation; partial trust in a malformed file risks
// corrupting comparisons.
type ParseError struct {
	File string // input file path
	Line int    // 1-based line number
	Err  error  // underlying JSON or schema error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFileError reports an input file that does not exist. Callers
// decide severity: a missing result file is fatal, a missing log file
// contributes zero log records.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file %s does not exist", e.Path)
}

// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package results

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/gowebpki/jcs"
	"github.com/kaptinlin/jsonschema"

	"github.com/GenuineRex/abitest/errors"
)

// maxLineSize bounds a single record line. Executor log bodies can be
// large, so this is generous.
const maxLineSize = 16 * 1024 * 1024

// ReadFile parses a result file and returns its records keyed by test
// name. A nonexistent file yields a *MissingFileError; a malformed or
// schema-violating line yields a *ParseError.
func ReadFile(path string) (map[string]Record, error) {
	sch, _, err := schemas()
	if err != nil {
		return nil, err
	}
	return readKeyed[Record](path, sch)
}

// ReadLogFile parses a log file and returns its records keyed by test
// name. Error conditions match ReadFile.
func ReadLogFile(path string) (map[string]LogRecord, error) {
	_, sch, err := schemas()
	if err != nil {
		return nil, err
	}
	return readKeyed[LogRecord](path, sch)
}

// keyed is implemented by record types stored by test name.
type keyed interface {
	key() string
}

func (r Record) key() string    { return r.Name }
func (r LogRecord) key() string { return r.Name }

func readKeyed[T keyed](path string, sch *jsonschema.Schema) (map[string]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	recs := make(map[string]T)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		if res := sch.ValidateJSON(b); !res.IsValid() {
			return nil, &ParseError{File: path, Line: line, Err: errors.Errorf("record does not match schema: %v", res.Errors)}
		}
		var rec T
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, &ParseError{File: path, Line: line, Err: err}
		}
		recs[rec.key()] = rec
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return recs, nil
}

// Writer appends records to a stream as JSON Lines. Each line is
// canonicalized per RFC 8785 so that output is byte-deterministic.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a Writer that appends to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write appends one record as a single canonical JSON line.
func (w *Writer) Write(rec interface{}) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if b, err = jcs.Transform(b); err != nil {
		return errors.Wrap(err, "failed to canonicalize record")
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush writes buffered records to the underlying stream.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

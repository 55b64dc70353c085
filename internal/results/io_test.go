// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package results

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GenuineRex/abitest/internal/testutil"
)

func TestReadFile(t *testing.T) {
	td := testutil.TempDir(t)
	p := filepath.Join(td, "results.json")
	if err := testutil.WriteFiles(td, map[string]string{
		"results.json": `{"name": "lib/t1", "result": "PASS", "configuration": "c1"}
{"name": "lib/t2", "result": "FAIL"}

{"name": "lib/t3", "result": "CRASH", "configuration": "c1", "extra": 3}
`,
	}); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(p)
	if err != nil {
		t.Fatal("ReadFile failed: ", err)
	}
	want := map[string]Record{
		"lib/t1": {Name: "lib/t1", Result: "PASS", Configuration: "c1"},
		"lib/t2": {Name: "lib/t2", Result: "FAIL"},
		"lib/t3": {Name: "lib/t3", Result: "CRASH", Configuration: "c1"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("Records mismatch (-got +want):\n", diff)
	}
}

func TestReadFileMissing(t *testing.T) {
	td := testutil.TempDir(t)
	_, err := ReadFile(filepath.Join(td, "nonexistent.json"))
	if err == nil {
		t.Fatal("ReadFile unexpectedly succeeded for missing file")
	}
	if _, ok := err.(*MissingFileError); !ok {
		t.Errorf("ReadFile returned %T; want *MissingFileError", err)
	}
}

func TestReadFileBadLine(t *testing.T) {
	for name, content := range map[string]string{
		"invalid JSON": `{"name": "t1", "result": "PASS"}` + "\nnot json\n",
		"missing name": `{"result": "PASS"}` + "\n",
		"no result":    `{"name": "t1"}` + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			td := testutil.TempDir(t)
			if err := testutil.WriteFiles(td, map[string]string{"results.json": content}); err != nil {
				t.Fatal(err)
			}
			_, err := ReadFile(filepath.Join(td, "results.json"))
			pe, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("ReadFile returned %v (%T); want *ParseError", err, err)
			}
			if pe.File == "" || pe.Line == 0 {
				t.Errorf("ParseError lacks context: %+v", pe)
			}
		})
	}
}

func TestReadLogFile(t *testing.T) {
	td := testutil.TempDir(t)
	if err := testutil.WriteFiles(td, map[string]string{
		"logs.json": `{"name": "lib/t1", "log": "stack trace", "result": "CRASH", "configuration": "c1"}` + "\n",
	}); err != nil {
		t.Fatal(err)
	}

	got, err := ReadLogFile(filepath.Join(td, "logs.json"))
	if err != nil {
		t.Fatal("ReadLogFile failed: ", err)
	}
	want := map[string]LogRecord{
		"lib/t1": {Name: "lib/t1", Log: "stack trace", Result: "CRASH", Configuration: "c1"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("Log records mismatch (-got +want):\n", diff)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	recs := []MergedRecord{
		{Name: "lib/t1", Configuration: "c1", Result: "FAIL", Expected: "PASS", Matches: false},
		{Name: "lib/t2", Configuration: "c1", Result: "PASS", Expected: "PASS", Matches: true},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			t.Fatal("Write failed: ", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal("Flush failed: ", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(recs) {
		t.Fatalf("Got %d lines; want %d", len(lines), len(recs))
	}
	for i, line := range lines {
		var got MergedRecord
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Fatalf("Line %d is not valid JSON: %v", i+1, err)
		}
		if diff := cmp.Diff(got, recs[i]); diff != "" {
			t.Errorf("Record %d mismatch (-got +want):\n%s", i, diff)
		}
	}
}

// Canonical form sorts object keys, so a line must start with the
// lexicographically first field.
func TestWriterCanonical(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(MergedRecord{Name: "t", Configuration: "c", Result: "PASS", Expected: "PASS", Matches: true}); err != nil {
		t.Fatal("Write failed: ", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal("Flush failed: ", err)
	}
	if got := buf.String(); !strings.HasPrefix(got, `{"configuration":`) {
		t.Errorf("Line %q is not in canonical key order", got)
	}
}

// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging_test

import (
	"bytes"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GenuineRex/abitest/internal/logging"
)

// memorySink accumulates log lines in memory.
type memorySink struct {
	mu   sync.Mutex
	msgs []string
}

func (ms *memorySink) Log(msg string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.msgs = append(ms.msgs, msg)
}

func (ms *memorySink) Get() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.msgs...)
}

func TestSinkLoggerLevel(t *testing.T) {
	for _, tc := range []struct {
		name  string
		level logging.Level
		want  []string
	}{
		{"debug passes all", logging.LevelDebug, []string{"running tests", "exit status 0"}},
		{"info drops debug", logging.LevelInfo, []string{"running tests"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var sink memorySink
			logger := logging.NewSinkLogger(tc.level, false, &sink)
			logger.Log(logging.LevelInfo, time.Time{}, "running tests")
			logger.Log(logging.LevelDebug, time.Time{}, "exit status 0")
			if diff := cmp.Diff(sink.Get(), tc.want); diff != "" {
				t.Errorf("Messages mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestSinkLoggerTimestamp(t *testing.T) {
	var sink memorySink
	logger := logging.NewSinkLogger(logging.LevelInfo, true, &sink)
	logger.Log(logging.LevelInfo, time.Unix(1234567890, 0), "running tests")

	msgs := sink.Get()
	if len(msgs) != 1 {
		t.Fatalf("Got %d messages; want 1", len(msgs))
	}
	re := regexp.MustCompile(`^2009-02-13T23:31:30\.000000Z running tests$`)
	if !re.MatchString(msgs[0]) {
		t.Errorf("Message %q should match %q", msgs[0], re)
	}
}

func TestStrippingSink(t *testing.T) {
	var sink memorySink
	s := logging.NewStrippingSink(&sink)
	s.Log("t1 \x1b[1;32m[ SAME ]\x1b[0m")
	s.Log("no escapes")

	want := []string{"t1 [ SAME ]", "no escapes"}
	if diff := cmp.Diff(sink.Get(), want); diff != "" {
		t.Errorf("Messages mismatch (-got +want):\n%s", diff)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := logging.NewWriterSink(&buf)
	sink.Log("running tests")
	sink.Log("exit status 0")

	const want = "running tests\nexit status 0\n"
	if got := buf.String(); got != want {
		t.Errorf("Written logs %q; want %q", got, want)
	}
}

// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GenuineRex/abitest/internal/logging"
)

type recordingLogger struct {
	msgs []string
}

func (l *recordingLogger) Log(level logging.Level, ts time.Time, msg string) {
	l.msgs = append(l.msgs, msg)
}

func TestAttachLogger(t *testing.T) {
	// It is okay to log via a context without a logger.
	logging.Info(context.Background(), "ab")
	logging.Debugf(context.Background(), "c%s", "d")

	var logger recordingLogger
	ctx := logging.AttachLogger(context.Background(), &logger)

	logging.Info(ctx, "ef")
	logging.Infof(ctx, "g%s", "h")
	logging.Debug(ctx, "ij")

	want := []string{"ef", "gh", "ij"}
	if diff := cmp.Diff(logger.msgs, want); diff != "" {
		t.Error("Unexpected msgs (-got +want):\n", diff)
	}
}

func TestAttachLogger_Propagation(t *testing.T) {
	var outer, inner recordingLogger
	ctx := logging.AttachLogger(context.Background(), &outer)
	ctx = logging.AttachLogger(ctx, &inner)

	logging.Info(ctx, "foo")

	for name, logger := range map[string]*recordingLogger{"outer": &outer, "inner": &inner} {
		if diff := cmp.Diff(logger.msgs, []string{"foo"}); diff != "" {
			t.Errorf("Unexpected msgs for %s logger (-got +want):\n%s", name, diff)
		}
	}
}

func TestAttachLoggerNoPropagation(t *testing.T) {
	var outer, inner recordingLogger
	ctx := logging.AttachLogger(context.Background(), &outer)
	ctx = logging.AttachLoggerNoPropagation(ctx, &inner)

	logging.Info(ctx, "foo")

	if len(outer.msgs) != 0 {
		t.Errorf("Outer logger got %v; want none", outer.msgs)
	}
	if diff := cmp.Diff(inner.msgs, []string{"foo"}); diff != "" {
		t.Error("Unexpected msgs for inner logger (-got +want):\n", diff)
	}
}

func TestHasLogger(t *testing.T) {
	ctx := context.Background()
	if logging.HasLogger(ctx) {
		t.Error("HasLogger(ctx) = true for plain context; want false")
	}
	ctx = logging.AttachLogger(ctx, &recordingLogger{})
	if !logging.HasLogger(ctx) {
		t.Error("HasLogger(ctx) = false after AttachLogger; want true")
	}
}

func TestMultiLogger_RemoveLogger(t *testing.T) {
	var a, b recordingLogger
	ml := logging.NewMultiLogger(&a)
	ml.AddLogger(&b)
	ml.Log(logging.LevelInfo, time.Time{}, "one")
	ml.RemoveLogger(&b)
	ml.Log(logging.LevelInfo, time.Time{}, "two")

	if diff := cmp.Diff(a.msgs, []string{"one", "two"}); diff != "" {
		t.Error("Unexpected msgs for kept logger (-got +want):\n", diff)
	}
	if diff := cmp.Diff(b.msgs, []string{"one"}); diff != "" {
		t.Error("Unexpected msgs for removed logger (-got +want):\n", diff)
	}
}

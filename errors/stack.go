// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	maxStackDepth = 8 // maximum number of stack frames to record

	ellipsis = "\t..." // trailing marker line added if a stack trace is too long
)

// stack holds a snapshot of program counters.
type stack []uintptr

// newStack captures a stack trace. skip specifies the number of frames
// to skip; skip=0 records the newStack call as the innermost frame.
func newStack(skip int) stack {
	pc := make([]uintptr, maxStackDepth+1)
	pc = pc[:runtime.Callers(skip+2, pc)]
	return stack(pc)
}

// String formats a stack trace as human-friendly text.
func (s stack) String() string {
	var lines []string
	cf := runtime.CallersFrames(s)
	for {
		f, more := cf.Next()
		lines = append(lines, fmt.Sprintf("\tat %s (%s:%d)", f.Function, filepath.Base(f.File), f.Line))
		if !more {
			break
		} else if len(lines) >= maxStackDepth {
			lines = append(lines, ellipsis)
			break
		}
	}
	return strings.Join(lines, "\n")
}

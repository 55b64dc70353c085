// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging

import (
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"
)

// timestampFormat prefixes messages when a SinkLogger is created with
// timestamps enabled. Microsecond precision keeps executor invocations
// distinguishable in full.txt.
const timestampFormat = "2006-01-02T15:04:05.000000Z "

// Sink is a destination for rendered log lines, such as a file or the
// console.
type Sink interface {
	Log(msg string)
}

// SinkLogger renders messages at or above a minimum level and hands
// them to a Sink.
type SinkLogger struct {
	level     Level
	timestamp bool
	sink      Sink
}

// NewSinkLogger creates a SinkLogger passing messages of at least level
// to sink. If timestamp is true, each message is prefixed with its UTC
// timestamp.
func NewSinkLogger(level Level, timestamp bool, sink Sink) *SinkLogger {
	return &SinkLogger{
		level:     level,
		timestamp: timestamp,
		sink:      sink,
	}
}

// Log renders a message and sends it to the sink, dropping it if its
// level is below the logger's threshold.
func (l *SinkLogger) Log(level Level, ts time.Time, msg string) {
	if level < l.level {
		return
	}
	if l.timestamp {
		msg = ts.UTC().Format(timestampFormat) + msg
	}
	l.sink.Log(msg)
}

// WriterSink writes each log line to an io.Writer. Writes are
// serialized so that the campaign's executor output and the driver's
// own messages do not interleave mid-line.
type WriterSink struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWriterSink creates a WriterSink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Log writes one line to the underlying writer.
func (s *WriterSink) Log(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, msg)
}

// sgrEscape matches ANSI SGR escape sequences (colors and attributes).
var sgrEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// StrippingSink removes terminal escape sequences before forwarding a
// message to another sink. The run command wraps its log-file sink in
// one so colored summary rows stay readable in full.txt.
type StrippingSink struct {
	sink Sink
}

// NewStrippingSink creates a StrippingSink forwarding to sink.
func NewStrippingSink(sink Sink) *StrippingSink {
	return &StrippingSink{sink: sink}
}

// Log strips escape sequences from msg and forwards it.
func (s *StrippingSink) Log(msg string) {
	s.sink.Log(sgrEscape.ReplaceAllString(msg, ""))
}

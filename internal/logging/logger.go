// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package logging provides context-based logging for the abitest
// executable. Loggers are attached to a context.Context and messages
// are emitted through the package-level Info/Debug functions.
package logging

import (
	"sync"
	"time"
)

// Level classifies a message's importance. Larger is more important.
type Level int

const (
	// LevelDebug marks messages useful only when diagnosing the driver
	// itself; they reach full.txt but not the console by default.
	LevelDebug Level = iota
	// LevelInfo marks messages shown to the user during a campaign.
	LevelInfo
)

// Logger consumes messages emitted via a context.Context. Attach one
// with AttachLogger.
type Logger interface {
	Log(level Level, ts time.Time, msg string)
}

// MultiLogger fans a message out to a mutable set of loggers. The run
// command uses it to tee console output into full.txt.
type MultiLogger struct {
	mu      sync.Mutex
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger starting with loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log forwards a message to every logger currently in the set.
func (ml *MultiLogger) Log(level Level, ts time.Time, msg string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	for _, logger := range ml.loggers {
		logger.Log(level, ts, msg)
	}
}

// AddLogger adds logger to the set.
func (ml *MultiLogger) AddLogger(logger Logger) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.loggers = append(ml.loggers, logger)
}

// RemoveLogger removes logger from the set if present.
func (ml *MultiLogger) RemoveLogger(logger Logger) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	j := 0
	for i, l := range ml.loggers {
		if l == logger {
			continue
		}
		ml.loggers[j] = ml.loggers[i]
		j++
	}
	ml.loggers = ml.loggers[:j]
}

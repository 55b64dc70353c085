// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package errors provides basic utilities to construct errors.
//
// To construct new errors or wrap other errors, use this package rather
// than the standard library (errors.New, fmt.Errorf). This package
// records stack traces and chained errors so that failures deep inside
// the reconciler leave usable diagnostics.
//
// To construct a new error, use New or Errorf.
//
//	errors.New("result file empty")
//	errors.Errorf("unknown ABI version %d", v)
//
// To add context to an existing error, use Wrap or Wrapf.
//
//	errors.Wrap(err, "failed to read results")
//	errors.Wrapf(err, "failed to start %s", cmd)
//
// A full chain with stack traces can be printed with the "%+v" verb.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// Is is the standard errors.Is, re-exported so that callers need only
// import this package.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As is the standard errors.As, re-exported so that callers need only
// import this package.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// impl is the error implementation used by this package.
type impl struct {
	msg   string // message to be prepended to cause
	stk   stack  // stack trace where this error was created
	cause error  // original error that caused this error, if non-nil
}

// Error implements the error interface.
func (e *impl) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
}

// Unwrap returns the wrapped error. It allows standard errors.Is and
// errors.As to inspect the chain.
func (e *impl) Unwrap() error {
	return e.cause
}

// formatChain formats an error chain.
func formatChain(err error) string {
	var chain []string
	for err != nil {
		if e, ok := err.(*impl); ok {
			chain = append(chain, fmt.Sprintf("%s\n%v", e.msg, e.stk))
			err = e.cause
		} else {
			chain = append(chain, fmt.Sprintf("%s\n\tat ???", err.Error()))
			err = nil
		}
	}
	return strings.Join(chain, "\n")
}

// Format implements the fmt.Formatter interface.
// In particular, an error chain can be formatted by the "%+v" verb.
func (e *impl) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		io.WriteString(s, formatChain(e))
	} else {
		io.WriteString(s, e.Error())
	}
}

// New creates a new error with the given message.
// This is similar to the standard errors.New, but also records the
// location where it was called.
func New(msg string) error {
	return &impl{msg: msg, stk: newStack(1)}
}

// Errorf creates a new error with the given message.
// This is similar to the standard fmt.Errorf, but also records the
// location where it was called.
func Errorf(format string, args ...interface{}) error {
	return &impl{msg: fmt.Sprintf(format, args...), stk: newStack(1)}
}

// Wrap creates a new error with the given message, wrapping another
// error. It also records the location where it was called.
func Wrap(cause error, msg string) error {
	return &impl{msg: msg, stk: newStack(1), cause: cause}
}

// Wrapf creates a new error with the given message, wrapping another
// error. It also records the location where it was called.
func Wrapf(cause error, format string, args ...interface{}) error {
	return &impl{msg: fmt.Sprintf(format, args...), stk: newStack(1), cause: cause}
}

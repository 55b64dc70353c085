// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package errors

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"testing"
)

func check(t *testing.T, err error, msg string, traceRegexp *regexp.Regexp) {
	t.Helper()
	if s := err.Error(); s != msg {
		t.Errorf("Wrong error message %q; want %q", s, msg)
	}
	if s := fmt.Sprintf("%v", err); s != msg {
		t.Errorf("Wrong default value %q; want %q", s, msg)
	}
	if tr := fmt.Sprintf("%+v", err); !traceRegexp.MatchString(tr) {
		t.Errorf("Wrong trace %q; should match %q", tr, traceRegexp)
	}
}

func TestNew(t *testing.T) {
	const msg = "bad record"
	traceRegexp := regexp.MustCompile(`^bad record
	at github\.com/GenuineRex/abitest/errors\.TestNew \(errors_test.go:\d+\)`)

	check(t, New(msg), msg, traceRegexp)
}

func TestErrorf(t *testing.T) {
	const msg = "bad record"
	traceRegexp := regexp.MustCompile(`^bad record
	at github\.com/GenuineRex/abitest/errors\.TestErrorf \(errors_test.go:\d+\)`)

	check(t, Errorf("bad %s", "record"), msg, traceRegexp)
}

func TestWrap(t *testing.T) {
	const msg = "read failed: bad record"
	traceRegexp := regexp.MustCompile(`(?s)^read failed
	at github\.com/GenuineRex/abitest/errors\.TestWrap \(errors_test.go:\d+\)
.*
bad record
	at github\.com/GenuineRex/abitest/errors\.TestWrap \(errors_test.go:\d+\)`)

	check(t, Wrap(New("bad record"), "read failed"), msg, traceRegexp)
}

// Wrapping an error from another package still formats a full chain;
// the foreign frame just has no recorded location.
func TestWrapForeignError(t *testing.T) {
	const msg = "read failed: bad record"
	traceRegexp := regexp.MustCompile(`(?s)^read failed
	at github\.com/GenuineRex/abitest/errors\.TestWrapForeignError \(errors_test.go:\d+\)
.*
bad record
	at \?\?\?$`)

	check(t, Wrap(stderrors.New("bad record"), "read failed"), msg, traceRegexp)
}

func TestWrapNil(t *testing.T) {
	const msg = "read failed"
	traceRegexp := regexp.MustCompile(`^read failed
	at github\.com/GenuineRex/abitest/errors\.TestWrapNil \(errors_test.go:\d+\)`)

	check(t, Wrap(nil, msg), msg, traceRegexp)
}

func TestWrapf(t *testing.T) {
	const msg = "read failed: bad record"
	traceRegexp := regexp.MustCompile(`(?s)^read failed
	at github\.com/GenuineRex/abitest/errors\.TestWrapf \(errors_test.go:\d+\)
.*
bad record
	at github\.com/GenuineRex/abitest/errors\.TestWrapf \(errors_test.go:\d+\)`)

	check(t, Wrapf(New("bad record"), "read %s", "failed"), msg, traceRegexp)
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("bad record")
	err := Wrap(cause, "read failed")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is failed to find the wrapped cause")
	}
}

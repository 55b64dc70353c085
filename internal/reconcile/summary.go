// Copyright 2021 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reconcile

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/GenuineRex/abitest/internal/logging"
)

const (
	sameStr = " [ SAME ]"
	diffStr = " [ DIFF ] "

	red   = "\033[1;31m"
	green = "\033[1;32m"
	reset = "\033[0m"
)

// WriteSummary logs a per-test summary of the merged report and where
// the merged files were saved. Rows are colored when stdout is a
// terminal.
func WriteSummary(ctx context.Context, report *Report, outRoot string) {
	ml := 0
	for _, rec := range report.Merged {
		if len(rec.Name) > ml {
			ml = len(rec.Name)
		}
	}
	color := term.IsTerminal(int(os.Stdout.Fd()))

	sep := strings.Repeat("-", 80)
	logging.Info(ctx, sep)
	for _, rec := range report.Merged {
		pn := fmt.Sprintf("%-"+strconv.Itoa(ml)+"s", rec.Name)
		if rec.Matches {
			logging.Info(ctx, pn+colorize(sameStr, green, color))
		} else {
			detail := fmt.Sprintf("expected %s, versions %s got %s",
				rec.Expected, renderVersions(report.Diverged[rec.Name]), rec.Result)
			logging.Info(ctx, pn+colorize(diffStr, red, color)+detail)
		}
	}
	logging.Info(ctx, sep)

	if n := len(report.Diverged); n > 0 {
		logging.Infof(ctx, "%d of %d test(s) diverged across ABI versions", n, len(report.Merged))
	} else {
		logging.Infof(ctx, "All %d test(s) behaved identically across ABI versions", len(report.Merged))
	}
	logging.Info(ctx, "Merged results saved to ", outRoot)
}

func colorize(s, code string, enabled bool) string {
	if !enabled {
		return s
	}
	return code + s + reset
}

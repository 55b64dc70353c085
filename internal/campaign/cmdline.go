// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package campaign

import (
	"strings"
)

// shellUnsafe lists characters that force an argument to be quoted when
// a command line is rendered for logging.
const shellUnsafe = " \t\n\"'\\$&|;<>()`*?[]#~"

// quoteArg renders a single argument so the logged command line can be
// pasted into a shell.
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, shellUnsafe) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// quoteCmd renders an argument vector as a shell command line.
func quoteCmd(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = quoteArg(a)
	}
	return strings.Join(quoted, " ")
}

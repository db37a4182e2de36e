// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the implicitblocking command line tool.
//
// Exit codes:
//
//	0  No problems found
//	1  One or more diagnostics were reported
//	2  Bad invocation, unloadable packages or conflicting fixes
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Exit codes of the command line tool.
const (
	ExitOK       = 0
	ExitFindings = 1
	ExitError    = 2
)

// exitCode signals a process exit status without an additional error message.
type exitCode int

func (e exitCode) Error() string { return "exit status " + strconv.Itoa(int(e)) }

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	var code exitCode

	switch {
	case err == nil:
		return ExitOK

	case errors.As(err, &code):
		return int(code)

	default:
		_, _ = fmt.Fprintln(stderr, "implicitblocking:", err)

		return ExitError
	}
}

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

package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Report implicitly blocking publisher conversions",
		Long: `Report implicitly blocking publisher conversions in the given packages.

Diagnostics are printed as "file:line:col: message (check)".

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation or packages that can't be loaded

To suppress diagnostics for a declaration, add a comment directly above it:
  //nolint:implicitblocking`,
		Example: `  implicitblocking check ./...
  implicitblocking check --generated --tests ./internal/...`,
		RunE: a.check,
	}
}

func (a *app) check(cmd *cobra.Command, args []string) error {
	p, err := newPrinter(a.stdout, a.color)
	if err != nil {
		return err
	}

	an, err := a.analyze(cmd.Context(), args)
	if err != nil {
		return err
	}

	var count int

	for pkg, r := range an.results {
		for _, f := range r.Findings {
			pos := pkg.Fset.Position(r.Doc.Pos(f.Diagnostic.Span.Start))
			if err := p.diagnostic(pos, f.Diagnostic); err != nil {
				return err
			}

			count++
		}
	}

	a.log.Info("Check finished", slog.Int("diagnostics", count))

	if err := an.Err(); err != nil {
		a.log.Error("Incomplete check", slog.Any("error", err))

		return exitCode(ExitError)
	}

	if count > 0 {
		return exitCode(ExitFindings)
	}

	return nil
}

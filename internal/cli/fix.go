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
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"fillmore-labs.com/implicitblocking/internal/engine"
)

type fixFlags struct {
	strategy string
	write    bool
}

func newFixCommand(a *app) *cobra.Command {
	var f fixFlags

	cmd := &cobra.Command{
		Use:   "fix [packages]",
		Short: "Rewrite implicitly blocking publisher conversions",
		Long: `Rewrite implicitly blocking publisher conversions with the selected strategy.

Strategies:
  suppress, first  Suppress the check for the enclosing declaration
  second           Collect with the preferred accumulator, when available
  third            Collect with the baseline accumulator

Sites without a fix for the selected strategy are left unchanged.
Without --write a unified diff of the changes is printed.

Exit codes:
  0  Files are unchanged or were rewritten
  1  Changes are pending (without --write)
  2  Bad invocation, packages that can't be loaded or conflicting edits`,
		Example: `  implicitblocking fix --strategy=third ./...
  implicitblocking fix --write ./...`,
		RunE: func(cmd *cobra.Command, args []string) error { return a.fix(cmd, args, f) },
	}

	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "fix strategy: suppress, first, second, third or a number (default from configuration)")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write the result to the source files")

	return cmd
}

func (a *app) fix(cmd *cobra.Command, args []string, f fixFlags) error {
	s := a.settings
	if f.strategy != "" {
		s.Strategy = f.strategy
	}

	strategy, err := s.strategy()
	if err != nil {
		return err
	}

	an, err := a.analyze(cmd.Context(), args)
	if err != nil {
		return err
	}

	var (
		changed int
		errs    []error
	)

	for _, r := range an.results {
		name := r.Doc.Name()

		out, sel, err := engine.Rewrite(cmd.Context(), r.Doc, r.Findings, strategy)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))

			continue
		}

		if sel.Skipped > 0 {
			a.log.Warn("Sites without a fix for the selected strategy",
				slog.String("file", name), slog.String("strategy", strategy.String()), slog.Int("sites", sel.Skipped))
		}

		if bytes.Equal(out, r.Doc.Source()) {
			continue
		}

		changed++

		if f.write {
			if err := writeFile(name, out); err != nil {
				errs = append(errs, err)
			}

			a.log.Info("Rewrote file", slog.String("file", name), slog.Int("sites", len(r.Findings)-sel.Skipped))

			continue
		}

		if err := a.diff(name, r.Doc.Source(), out); err != nil {
			return err
		}
	}

	errs = append(errs, an.Err())
	if err := errors.Join(errs...); err != nil {
		a.log.Error("Incomplete fix", slog.Any("error", err))

		return exitCode(ExitError)
	}

	if changed > 0 && !f.write {
		return exitCode(ExitFindings)
	}

	return nil
}

// diff prints the changes of one file as a unified diff.
func (a *app) diff(name string, before, after []byte) error {
	return difflib.WriteUnifiedDiff(a.stdout, difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	})
}

// writeFile replaces the contents of name, keeping its permissions.
func writeFile(name string, data []byte) error {
	info, err := os.Stat(name)
	if err != nil {
		return err
	}

	return os.WriteFile(name, data, info.Mode().Perm())
}

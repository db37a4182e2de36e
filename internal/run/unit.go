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

package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"runtime/trace"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/implicitblocking/internal/astutil"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/engine"
	"fillmore-labs.com/implicitblocking/internal/goast"
)

// ErrInvalidFile is returned for files without position information.
var ErrInvalidFile = errors.New("file without valid info")

// Unit is one type-checked package.
type Unit struct {
	Fset     *token.FileSet
	Root     inspector.Cursor
	Pkg      *types.Package
	Info     *types.Info
	ReadFile func(filename string) ([]byte, error)
}

// Result holds the findings of one source file.
type Result struct {
	Doc      *goast.File
	Findings []engine.Finding
}

// FailFunc receives files that could not be analyzed.
type FailFunc func(file *ast.File, err error)

// Analyze checks all files of u and returns the files with findings.
//
// Generated files are skipped unless enabled, as are files with a //nolint directive in their package comment.
func (r *Options) Analyze(ctx context.Context, e *engine.Engine, u Unit, fail FailFunc) []Result {
	defer trace.StartRegion(ctx, "AnalyzeUnit").End()

	// The capability set is computed once per package
	closure := goast.NewClosure(u.Pkg)
	caps := e.Probe(closure)

	check := e.Target().Check

	var results []Result

	// Loop over all files
	for f := range u.Root.Children() {
		file, ok := f.Node().(*ast.File)
		if !ok {
			continue
		}

		currentFile := astutil.NewCurrentFile(u.Fset, file)
		if !currentFile.Valid() {
			fail(file, fmt.Errorf("%w: %s", ErrInvalidFile, file.Name.Name))

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if astutil.DocHasNoLint(file.Doc, check) {
			continue
		}

		src, err := u.ReadFile(currentFile.Name())
		if err != nil {
			fail(file, fmt.Errorf("can't read %s: %w", currentFile.Name(), err))

			continue
		}

		doc, err := goast.New(currentFile, f, u.Info, closure, src, check)
		if err != nil {
			fail(file, err)

			continue
		}

		if findings := e.Analyze(ctx, doc, caps); len(findings) > 0 {
			results = append(results, Result{Doc: doc, Findings: findings})
		}
	}

	return results
}

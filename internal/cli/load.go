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
	"context"
	"errors"
	"fmt"
	"go/ast"
	"log/slog"
	"os"
	"runtime/trace"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/implicitblocking/internal/engine"
	"fillmore-labs.com/implicitblocking/internal/run"
)

// ErrLoad is returned when packages can't be loaded or type-checked.
var ErrLoad = errors.New("can't load packages")

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// unit is the analysis result of one package.
type unit struct {
	pkg     *packages.Package
	results []run.Result
	errs    []error
}

// analysis is the outcome of analyzing all loaded packages.
type analysis struct {
	units []unit
	errs  []error
}

// Err returns all load and analysis errors.
func (an analysis) Err() error {
	errs := an.errs
	for _, u := range an.units {
		errs = append(errs, u.errs...)
	}

	return errors.Join(errs...)
}

// results returns the per-file results in package order. Files shared by several
// package variants are only returned once.
func (an analysis) results(yield func(*packages.Package, run.Result) bool) {
	seen := make(map[string]struct{})

	for _, u := range an.units {
		for _, r := range u.results {
			name := r.Doc.Name()
			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}

			if !yield(u.pkg, r) {
				return
			}
		}
	}
}

// analyze loads the packages matching patterns and analyzes them in parallel.
func (a *app) analyze(ctx context.Context, patterns []string) (analysis, error) {
	ctx, task := trace.NewTask(ctx, "ImplicitBlockingCLI")
	defer task.End()

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     a.dir,
		Tests:   a.settings.Tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return analysis{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var (
		an       analysis
		loadable []*packages.Package
	)

	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			for _, e := range p.Errors {
				an.errs = append(an.errs, fmt.Errorf("%w: %w", ErrLoad, e))
			}

			continue
		}

		loadable = append(loadable, p)
	}

	a.log.Debug("Loaded packages", slog.Int("packages", len(pkgs)), slog.Int("failed", len(pkgs)-len(loadable)))

	opts := a.settings.options()

	// Result slots are unique per goroutine, no mutex needed
	an.units = make([]unit, len(loadable))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.settings.Jobs)

	for i, p := range loadable {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			u := run.Unit{
				Fset:     p.Fset,
				Root:     inspector.New(p.Syntax).Root(),
				Pkg:      p.Types,
				Info:     p.TypesInfo,
				ReadFile: os.ReadFile,
			}

			var errs []error

			fail := func(file *ast.File, err error) {
				errs = append(errs, fmt.Errorf("%s: %w", p.Fset.Position(file.Pos()).Filename, err))
			}

			results := opts.Analyze(gctx, engine.New(opts.Target), u, fail)
			an.units[i] = unit{pkg: p, results: results, errs: errs}

			a.log.Debug("Analyzed package", slog.String("package", p.PkgPath), slog.Int("files", len(results)))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return analysis{}, err
	}

	return an, nil
}

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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/implicitblocking/internal/apply"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/run"
)

// Strategy selects one ranked fix for every diagnostic.
type Strategy = apply.Strategy

// Fix selection strategies.
const (
	Suppress = apply.Suppress // Suppress the check for the enclosing declaration
	First    = apply.First    // Same as Suppress
	Second   = apply.Second   // Collect with the preferred accumulator
	Third    = apply.Third    // Collect with the baseline accumulator
)

// Target describes the checked publisher type and the rewrite vocabulary.
type Target = config.Target

// DefaultTarget returns the [Target] for the reactor.dev libraries.
func DefaultTarget() Target { return config.DefaultTarget() }

// Option configures specific behavior of a [New] implicitblocking analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithStrategy is an [Option] to report only the fix selected by strategy.
func WithStrategy(strategy Strategy) Option { return strategyOption{strategy: strategy} }

type strategyOption struct{ strategy Strategy }

func (o strategyOption) apply(r *run.Options) {
	r.AllFixes, r.Strategy = false, o.strategy
}

func (o strategyOption) LogAttr() slog.Attr {
	return slog.String("strategy", o.strategy.String())
}

// WithAllFixes is an [Option] to report every fix with each diagnostic, overriding [WithStrategy].
func WithAllFixes(all bool) Option { return allFixesOption{all: all} }

type allFixesOption struct{ all bool }

func (o allFixesOption) apply(r *run.Options) {
	r.AllFixes = o.all
}

func (o allFixesOption) LogAttr() slog.Attr {
	return slog.Bool("all-fixes", o.all)
}

// WithTarget is an [Option] to check a different publisher type or rewrite with different accumulators.
func WithTarget(target Target) Option { return targetOption{target: target} }

type targetOption struct{ target Target }

func (o targetOption) apply(r *run.Options) {
	r.Target = o.target
}

func (o targetOption) LogAttr() slog.Attr {
	return slog.Group("target",
		slog.String("check", o.target.Check),
		slog.String("publisher", o.target.Publisher),
	)
}

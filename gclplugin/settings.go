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

package gclplugin

import implicitblocking "fillmore-labs.com/implicitblocking/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// AllFixes suggests every applicable fix with each diagnostic.
	AllFixes *bool `json:"all-fixes,omitzero"`
	// Strategy selects the single suggested fix: suppress, first, second, third or a number.
	Strategy *implicitblocking.Strategy `json:"strategy,omitzero"`
	// Target replaces the checked publisher type and the rewrite vocabulary.
	Target *implicitblocking.Target `json:"target,omitzero"`
}

// Validate checks a configured target for completeness.
func (s Settings) Validate() error {
	if s.Target == nil {
		return nil
	}

	return s.Target.Validate()
}

// Options converts [Settings] into a list of [implicitblocking.Option] for the implicitblocking analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
//
// A strategy disables reporting all fixes, unless all-fixes is set explicitly.
func (s Settings) Options() []implicitblocking.Option {
	var opts []implicitblocking.Option

	opts = appendOption(opts, s.Strategy, implicitblocking.WithStrategy)
	opts = appendOption(opts, s.AllFixes, implicitblocking.WithAllFixes)
	opts = appendOption(opts, s.Target, implicitblocking.WithTarget)

	return opts
}

// appendOption appends a non-nil setting to a [implicitblocking.Option] list.
func appendOption[T any](opts []implicitblocking.Option, value *T, constructor func(T) implicitblocking.Option) []implicitblocking.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}

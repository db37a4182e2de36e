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

// Package analyzer implements the implicitblocking static analysis pass.
//
// # Overview
//
// Reactive publishers like reactor.dev/flux.Flux offer conversions to iterables and streams.
// ToIterable and ToStream look like cheap conversions, but block the calling goroutine
// until the publisher completes. implicitblocking reports these calls and suggests
// replacements that make the blocking explicit.
//
// # Example
//
// Before:
//
//	func total(f *flux.Flux[int]) int {
//	    return f.ToStream().Count() // blocks implicitly
//	}
//
// After applying the baseline fix:
//
//	func total(f *flux.Flux[int]) int {
//	    return f.Collect(flux.ToList).Block().Stream().Count()
//	}
//
// # Suggested Fixes
//
// Every diagnostic carries up to three fixes, in this order:
//
//   - Suppress: add a //nolint:implicitblocking directive to the enclosing declaration
//   - Collect with immutable.ToList, when reactor.dev/immutable is available to the package
//   - Collect with flux.ToList
//
// Use -strategy to report only one of them, e.g. -strategy=third to rewrite with the baseline accumulator.
// Calls with arguments, like ToStream(16), select an explicit buffer size and are not reported.
package analyzer

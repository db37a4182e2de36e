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

// Package immutable provides immutable collections.
package immutable

import (
	"iter"
	"slices"

	"reactor.dev/flux"
)

// List is an immutable list.
type List[T any] struct{ values []T }

// ToList accumulates into an immutable list.
func ToList[T any](seq iter.Seq[T]) flux.Collection[T] { return List[T]{values: slices.Collect(seq)} }

func (l List[T]) All() iter.Seq[T] { return slices.Values(l.values) }

func (l List[T]) Len() int { return len(l.values) }

func (l List[T]) Stream() *flux.Stream[T] { return flux.StreamOf(l.All()) }

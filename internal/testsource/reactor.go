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

package testsource

// Import paths of the reactive library used in tests.
const (
	FluxPath      = "reactor.dev/flux"
	ImmutablePath = "reactor.dev/immutable"
)

// FluxSource is a minimal reactive publisher library.
const FluxSource = `// Package flux is a minimal reactive publisher.
package flux

import (
	"iter"
	"slices"
)

// Publisher emits values to subscribers.
type Publisher[T any] interface {
	Subscribe(fn func(T))
}

// Iterable can be ranged over.
type Iterable[T any] interface {
	All() iter.Seq[T]
}

// Collection is an unmodifiable collection.
type Collection[T any] interface {
	Iterable[T]
	Len() int
	Stream() *Stream[T]
}

// Flux is a publisher of zero or more values.
type Flux[T any] struct{ values []T }

func Just[T any](values ...T) *Flux[T] { return &Flux[T]{values: values} }

func Range(start, count int) *Flux[int] {
	values := make([]int, count)
	for i := range values {
		values[i] = start + i
	}

	return &Flux[int]{values: values}
}

func (f *Flux[T]) Subscribe(fn func(T)) {
	for _, v := range f.values {
		fn(v)
	}
}

func (f *Flux[T]) Map(fn func(T) T) *Flux[T] {
	values := make([]T, 0, len(f.values))
	for _, v := range f.values {
		values = append(values, fn(v))
	}

	return &Flux[T]{values: values}
}

func (f *Flux[T]) All() iter.Seq[T] { return slices.Values(f.values) }

// ToIterable blocks until all values are emitted.
func (f *Flux[T]) ToIterable() Iterable[T] { return list[T](f.values) }

// ToStream blocks until all values are emitted.
func (f *Flux[T]) ToStream(bufferSize ...int) *Stream[T] { return StreamOf(f.All()) }

func (f *Flux[T]) Collect(acc func(iter.Seq[T]) Collection[T]) *Mono[Collection[T]] {
	return &Mono[Collection[T]]{value: acc(f.All())}
}

// Mono is a publisher of one value.
type Mono[T any] struct{ value T }

func (m *Mono[T]) Block() T { return m.value }

// Stream is a sequence of values.
type Stream[T any] struct{ seq iter.Seq[T] }

func StreamOf[T any](seq iter.Seq[T]) *Stream[T] { return &Stream[T]{seq: seq} }

func (s *Stream[T]) Count() int {
	n := 0
	for range s.seq {
		n++
	}

	return n
}

func (s *Stream[T]) FindAny() (T, bool) {
	for v := range s.seq {
		return v, true
	}

	var zero T

	return zero, false
}

// ToList accumulates into an unmodifiable list.
func ToList[T any](seq iter.Seq[T]) Collection[T] { return list[T](slices.Collect(seq)) }

type list[T any] []T

func (l list[T]) All() iter.Seq[T] { return slices.Values(l) }

func (l list[T]) Len() int { return len(l) }

func (l list[T]) Stream() *Stream[T] { return StreamOf(l.All()) }
`

// ImmutableSource is a minimal immutable collection library.
const ImmutableSource = `// Package immutable provides immutable collections.
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
`

// Reactor returns the sources of the reactive libraries, keyed by import path.
func Reactor() map[string]string {
	return map[string]string{
		FluxPath:      FluxSource,
		ImmutablePath: ImmutableSource,
	}
}

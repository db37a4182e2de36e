// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

// Package capability determines which optional helper libraries are available to a compilation unit.
package capability

import (
	"log/slog"

	"fillmore-labs.com/implicitblocking/internal/config"
)

// Capability is an optional helper that changes which fixes can be offered.
type Capability uint8

const (
	// ImmutableCollections indicates the preferred accumulator's helper type is resolvable.
	ImmutableCollections Capability = 1 << iota
)

// Set is the immutable result of a [Probe] for one compilation unit.
type Set struct {
	flags config.BitMask[Capability]
}

// Of returns a [Set] with the given capabilities, mainly for tests.
func Of(caps ...Capability) Set {
	return Set{flags: config.NewBitMask(caps...)}
}

// Has reports whether capability c is available.
func (s Set) Has(c Capability) bool { return s.flags.Enabled(c) }

// LogValue implements [slog.LogValuer].
func (s Set) LogValue() slog.Value {
	return slog.GroupValue(slog.Bool("immutableCollections", s.Has(ImmutableCollections)))
}

// Resolver answers whether a qualified type name is resolvable in the dependency closure of a unit.
type Resolver interface {
	Resolvable(qualified string) bool
}

// ResolverFunc adapts a function to the [Resolver] interface.
type ResolverFunc func(qualified string) bool

// Resolvable implements [Resolver].
func (f ResolverFunc) Resolvable(qualified string) bool { return f(qualified) }

// Probe computes the capabilities of one compilation unit for the given target.
func Probe(r Resolver, t config.Target) Set {
	var s Set

	s.flags.Set(ImmutableCollections, available(r, t.Preferred))

	return s
}

func available(r Resolver, a config.Accumulator) bool {
	if a.Helper == "" {
		return true
	}

	return r != nil && r.Resolvable(a.Helper)
}

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

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Target describes the reactive API family that is checked and the vocabulary used to rewrite it.
//
// Qualified names have the form "path.Name", where path is a Go import path
// (or a dotted package name for other hosts) and Name a type or function in it.
type Target struct {
	// Check is the check identifier used in diagnostics and suppression markers.
	Check string `json:"check" mapstructure:"check" yaml:"check"`

	// Publisher is the qualified name of the reactive publisher type.
	Publisher string `json:"publisher" mapstructure:"publisher" yaml:"publisher"`

	// ToIterable and ToStream are the method names of the blocking conversion terminals.
	ToIterable string `json:"to-iterable" mapstructure:"to-iterable" yaml:"to-iterable"`
	ToStream   string `json:"to-stream"   mapstructure:"to-stream"   yaml:"to-stream"`

	// Collect, Block and Stream are the method names used by the rewritten chain:
	// receiver.Collect(accumulator).Block().Stream().
	Collect string `json:"collect" mapstructure:"collect" yaml:"collect"`
	Block   string `json:"block"   mapstructure:"block"   yaml:"block"`
	Stream  string `json:"stream"  mapstructure:"stream"  yaml:"stream"`

	// Preferred is the accumulator of the optional helper library.
	Preferred Accumulator `json:"preferred" mapstructure:"preferred" yaml:"preferred"`

	// Baseline is the accumulator that is always available.
	Baseline Accumulator `json:"baseline" mapstructure:"baseline" yaml:"baseline"`
}

// Accumulator names a function producing an unmodifiable collection from a publisher.
type Accumulator struct {
	// Path is the import path (or owning type) of the accumulator function.
	Path string `json:"path" mapstructure:"path" yaml:"path"`

	// Name is the accumulator function name.
	Name string `json:"name" mapstructure:"name" yaml:"name"`

	// Call indicates the accumulator is invoked, "toList()", instead of passed as a function value, "ToList".
	Call bool `json:"call,omitzero" mapstructure:"call" yaml:"call,omitempty"`

	// Helper is the qualified type whose presence makes this accumulator available.
	// Empty means always available.
	Helper string `json:"helper,omitzero" mapstructure:"helper" yaml:"helper,omitempty"`
}

// Default import paths of the Go reactive library family.
const (
	fluxPath      = "reactor.dev/flux"
	immutablePath = "reactor.dev/immutable"
)

// DefaultTarget returns the [Target] for Go sources using the reactor.dev libraries.
func DefaultTarget() Target {
	return Target{
		Check:      "implicitblocking",
		Publisher:  fluxPath + ".Flux",
		ToIterable: "ToIterable",
		ToStream:   "ToStream",
		Collect:    "Collect",
		Block:      "Block",
		Stream:     "Stream",
		Preferred: Accumulator{
			Path:   immutablePath,
			Name:   "ToList",
			Helper: immutablePath + ".List",
		},
		Baseline: Accumulator{
			Path: fluxPath,
			Name: "ToList",
		},
	}
}

// ErrInvalidTarget is returned for incomplete [Target] configurations.
var ErrInvalidTarget = errors.New("invalid target")

// Validate checks that all required names are present.
func (t Target) Validate() error {
	var missing []string

	for _, f := range [...]struct{ name, value string }{
		{"check", t.Check},
		{"publisher", t.Publisher},
		{"to-iterable", t.ToIterable},
		{"to-stream", t.ToStream},
		{"collect", t.Collect},
		{"block", t.Block},
		{"stream", t.Stream},
		{"preferred.path", t.Preferred.Path},
		{"preferred.name", t.Preferred.Name},
		{"baseline.path", t.Baseline.Path},
		{"baseline.name", t.Baseline.Name},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidTarget, strings.Join(missing, ", "))
	}

	if _, _, ok := SplitQualified(t.Publisher); !ok {
		return fmt.Errorf("%w: publisher %q is not a qualified name", ErrInvalidTarget, t.Publisher)
	}

	return nil
}

// SplitQualified splits a qualified name "path.Name" at the last dot.
func SplitQualified(qualified string) (path, name string, ok bool) {
	i := strings.LastIndexByte(qualified, '.')
	if i <= 0 || i == len(qualified)-1 {
		return "", "", false
	}

	return qualified[:i], qualified[i+1:], true
}

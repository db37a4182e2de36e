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

package goast

import (
	"go/types"

	"fillmore-labs.com/implicitblocking/internal/config"
)

// Closure is the transitive import closure of a package, as far as type information reaches.
//
// It implements [capability.Resolver].
type Closure struct {
	pkg  *types.Package
	pkgs map[string]*types.Package
}

// NewClosure collects pkg and all packages reachable through its imports.
func NewClosure(pkg *types.Package) *Closure {
	pkgs := make(map[string]*types.Package)

	for queue := []*types.Package{pkg}; len(queue) > 0; queue = queue[1:] {
		p := queue[0]
		if p == nil {
			continue
		}

		if _, ok := pkgs[p.Path()]; ok {
			continue
		}

		pkgs[p.Path()] = p
		queue = append(queue, p.Imports()...)
	}

	return &Closure{pkg: pkg, pkgs: pkgs}
}

// Package returns the package with the given import path, or nil when it is not part of the closure.
func (c *Closure) Package(path string) *types.Package {
	return c.pkgs[path]
}

// Lookup resolves a qualified name "path.Name" to a package-level object.
func (c *Closure) Lookup(qualified string) types.Object {
	path, name, ok := config.SplitQualified(qualified)
	if !ok {
		return nil
	}

	p := c.pkgs[path]
	if p == nil {
		return nil
	}

	return p.Scope().Lookup(name)
}

// Resolvable implements [capability.Resolver].
func (c *Closure) Resolvable(qualified string) bool {
	return c.Lookup(qualified) != nil
}

// Len returns the number of packages in the closure.
func (c *Closure) Len() int { return len(c.pkgs) }

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

package match

import (
	"iter"

	"fillmore-labs.com/implicitblocking/internal/source"
)

// Node is a syntax node with a position in the document.
type Node interface {
	Span() source.Span
}

// Call is a function or method invocation.
type Call interface {
	Node

	// Method returns the name of the invoked method or function.
	Method() string

	// NumArgs returns the number of arguments passed.
	NumArgs() int

	// Receiver returns the expression the method is selected from,
	// or false for invocations without a receiver.
	Receiver() (Node, bool)

	// Chained returns the invocation that directly uses the result of this call
	// as its receiver, as `next` in r.m().next().
	Chained() (Call, bool)
}

// Decl is a member declaration, the scope of a suppression marker.
type Decl interface {
	Node

	// Name returns the declared name, for messages.
	Name() string
}

// Tree is the syntax and type query interface of one document.
type Tree interface {
	// Calls returns all invocations of the document in source order.
	Calls() iter.Seq[Call]

	// AssignableTo reports whether the static type of e is assignable to the qualified type name.
	// Types with the same simple name in another package are not assignable.
	AssignableTo(e Node, qualified string) bool

	// Enclosing returns the smallest member declaration containing n.
	Enclosing(n Node) (Decl, bool)

	// Commented reports whether a comment starts within s.
	Commented(s source.Span) bool
}

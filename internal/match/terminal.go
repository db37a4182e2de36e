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

import "fmt"

// Terminal identifies the blocking conversion method of a [Site].
type Terminal uint8

//go:generate go tool stringer -type Terminal -linecomment
const (
	// ToIterable drains the publisher into a blocking iterable.
	ToIterable Terminal = iota // to-iterable

	// ToStream drains the publisher into a blocking stream.
	ToStream // to-stream
)

// Streams reports whether the terminal produced a stream, so that a collection
// replacing it has to be streamed again before the continuation is re-attached.
func (t Terminal) Streams() bool {
	switch t {
	case ToIterable:
		return false

	case ToStream:
		return true

	default:
		panic(fmt.Sprintf("unknown terminal %d", t))
	}
}

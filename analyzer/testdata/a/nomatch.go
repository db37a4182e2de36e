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

package a

import "reactor.dev/flux"

type notFlux struct{}

func (notFlux) ToStream() int { return 0 }

func (notFlux) ToIterable() int { return 0 }

func buffered() int {
	return flux.Just(1).ToStream(16).Count()
}

func explicit() int {
	return flux.Just(1).Collect(flux.ToList).Block().Len()
}

func others() {
	_ = notFlux{}.ToStream()
	_ = notFlux{}.ToIterable()
	_ = flux.ToList(flux.Just(1).All())
}

func lineSuppressed() {
	_ = flux.Just(1).ToIterable() //nolint:implicitblocking
}

//nolint:implicitblocking
func declSuppressed() {
	_ = flux.Just(1).ToIterable()
}

func methodValue() func(...int) *flux.Stream[int] {
	return flux.Just(1).ToStream
}

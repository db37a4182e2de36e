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

import (
	"fmt"

	"reactor.dev/flux"
	"reactor.dev/immutable"
)

var _ immutable.List[int]

func iterable() {
	for v := range flux.Just(1, 2).ToIterable().All() { // want `Flux\.ToIterable\(\) blocks implicitly; use Collect\(immutable\.ToList\)\.Block\(\) or Collect\(flux\.ToList\)\.Block\(\) to make the blocking explicit`
		fmt.Println(v)
	}
}

func stream() int {
	return flux.Range(1, 3).Map(double).ToStream().Count() // want `Flux\.ToStream\(\) blocks implicitly`
}

func double(i int) int { return 2 * i }

type service struct {
	values *flux.Flux[string]
}

func (s *service) first() (string, bool) {
	return s.values.ToStream().FindAny() // want `Flux\.ToStream\(\) blocks implicitly`
}

func nested() {
	f := func() int { return flux.Just(1).ToStream().Count() } // want `Flux\.ToStream\(\) blocks implicitly`

	fmt.Println(f())
}

var global = flux.Just("a").ToIterable() // want `Flux\.ToIterable\(\) blocks implicitly`

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

package cli

import (
	"errors"
	"fmt"
	"go/token"
	"io"

	"github.com/fatih/color"

	"fillmore-labs.com/implicitblocking/internal/report"
)

// ErrColorMode is returned for unknown --color values.
var ErrColorMode = errors.New(`color mode must be "auto", "always", or "never"`)

// printer writes diagnostics in the "file:line:col: message (check)" format.
type printer struct {
	w        io.Writer
	position *color.Color
	message  *color.Color
	check    *color.Color
}

func newPrinter(w io.Writer, mode string) (*printer, error) {
	p := &printer{
		w:        w,
		position: color.New(color.Bold),
		message:  color.New(color.FgYellow),
		check:    color.New(color.Faint),
	}

	switch mode {
	case "auto":

	case "always":
		for _, c := range p.colors() {
			c.EnableColor()
		}

	case "never":
		for _, c := range p.colors() {
			c.DisableColor()
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrColorMode, mode)
	}

	return p, nil
}

func (p *printer) colors() []*color.Color {
	return []*color.Color{p.position, p.message, p.check}
}

// diagnostic prints one diagnostic at pos.
func (p *printer) diagnostic(pos token.Position, d report.Diagnostic) error {
	_, err := fmt.Fprintf(p.w, "%s: %s %s\n",
		p.position.Sprint(pos), p.message.Sprint(d.Message), p.check.Sprintf("(%s)", d.Check))

	return err
}

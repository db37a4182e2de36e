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

package memtree

import (
	"errors"
	"fmt"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/source"
)

type tokenKind uint8

const (
	tIdent tokenKind = iota
	tNumber
	tString
	tPunct
)

type token struct {
	kind       tokenKind
	text       string
	start, end int
}

// ErrSyntax is returned for documents the lexer cannot tokenize.
var ErrSyntax = errors.New("syntax error")

// lex splits src into tokens, dropping whitespace. Comments are returned separately.
func lex(src string) (toks []token, comments []source.Span, err error) {
	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case strings.HasPrefix(src[i:], "//"):
			j := strings.IndexByte(src[i:], '\n')
			if j < 0 {
				j = len(src) - i
			}

			comments = append(comments, source.Span{Start: i, End: i + j})
			i += j

		case strings.HasPrefix(src[i:], "/*"):
			j := strings.Index(src[i+2:], "*/")
			if j < 0 {
				return nil, nil, fmt.Errorf("%w: unterminated comment at offset %d", ErrSyntax, i)
			}

			comments = append(comments, source.Span{Start: i, End: i + j + 4})
			i += j + 4

		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}

			toks = append(toks, token{tIdent, src[i:j], i, j})
			i = j

		case '0' <= c && c <= '9':
			j := i + 1
			for j < len(src) && (isIdentPart(src[j]) || src[j] == '.' && j+1 < len(src) && '0' <= src[j+1] && src[j+1] <= '9') {
				j++
			}

			toks = append(toks, token{tNumber, src[i:j], i, j})
			i = j

		case c == '"' || c == '\'':
			j := i + 1
			for j < len(src) && src[j] != c && src[j] != '\n' {
				if src[j] == '\\' {
					j++
				}
				j++
			}

			if j >= len(src) || src[j] != c {
				return nil, nil, fmt.Errorf("%w: unterminated literal at offset %d", ErrSyntax, i)
			}

			toks = append(toks, token{tString, src[i : j+1], i, j + 1})
			i = j + 1

		case strings.HasPrefix(src[i:], "->"), strings.HasPrefix(src[i:], "::"):
			toks = append(toks, token{tPunct, src[i : i+2], i, i + 2})
			i += 2

		default:
			toks = append(toks, token{tPunct, src[i : i+1], i, i + 1})
			i++
		}
	}

	return toks, comments, nil
}

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || '0' <= c && c <= '9'
}

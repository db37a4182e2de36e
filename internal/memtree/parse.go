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
	"fmt"
	"maps"
	"strconv"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/source"
)

// Parse reads a Java-like compilation unit.
//
// Types declared in the document are qualified with the package name, nested types included.
// Expressions are parsed leniently: anything not part of a call chain is skipped.
func Parse(src string, t config.Target, types Types) (*Doc, error) {
	toks, comments, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{
		src:     src,
		toks:    toks,
		types:   types,
		classes: make(map[string]string),
		vars:    make(map[string]string),
		doc:     &Doc{src: []byte(src), check: t.Check, types: types, comments: comments},
	}

	if err := p.file(); err != nil {
		return nil, err
	}

	sortCalls(p.doc.calls)

	return p.doc, nil
}

type parser struct {
	src     string
	toks    []token
	pos     int
	pkg     string
	types   Types
	classes map[string]string // Simple name to qualified type
	vars    map[string]string // Variable name to qualified type
	doc     *Doc
}

var typeKeywords = map[string]struct{}{"class": {}, "interface": {}, "enum": {}, "record": {}}

var modifiers = map[string]struct{}{
	"public": {}, "protected": {}, "private": {}, "static": {}, "final": {}, "abstract": {},
	"transient": {}, "volatile": {}, "synchronized": {}, "native": {}, "default": {}, "strictfp": {},
}

var statementKeywords = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {}, "synchronized": {}, "try": {},
	"return": {}, "throw": {}, "else": {}, "do": {}, "case": {}, "yield": {}, "var": {},
	"final": {}, "assert": {},
}

func (p *parser) eof() bool { return p.pos >= len(p.toks) }

func (p *parser) peek(k int) token {
	if i := p.pos + k; i < len(p.toks) {
		return p.toks[i]
	}

	return token{kind: tPunct, start: len(p.src), end: len(p.src)}
}

func (p *parser) is(text string) bool {
	return !p.eof() && p.toks[p.pos].text == text && p.toks[p.pos].kind != tString
}

func (p *parser) errorf(format string, a ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.peek(0).start, fmt.Sprintf(format, a...))
}

func (p *parser) expect(text string) (token, error) {
	if !p.is(text) {
		return token{}, p.errorf("expected %q, found %q", text, p.peek(0).text)
	}

	t := p.toks[p.pos]
	p.pos++

	return t, nil
}

// lineEnd returns the offset after the line containing off.
func (p *parser) lineEnd(off int) int {
	if i := strings.IndexByte(p.src[off:], '\n'); i >= 0 {
		return off + i + 1
	}

	return len(p.src)
}

func (p *parser) file() error {
	if p.is("package") {
		p.pos++
		p.pkg = p.qualifiedName()

		semi, err := p.expect(";")
		if err != nil {
			return err
		}

		p.doc.header = p.lineEnd(semi.end)
	}

	for p.is("import") {
		start := p.toks[p.pos].start
		p.pos++

		static := p.is("static")
		if static {
			p.pos++
		}

		name := p.qualifiedName()

		semi, err := p.expect(";")
		if err != nil {
			return err
		}

		p.doc.imports = append(p.doc.imports, importDecl{
			start:   start,
			lineEnd: p.lineEnd(semi.end),
			static:  static,
			name:    name,
		})

		if !static && !strings.HasSuffix(name, "*") {
			p.classes[name[strings.LastIndexByte(name, '.')+1:]] = name
		}
	}

	for i, t := range p.toks[:max(len(p.toks)-1, 0)] {
		if _, ok := typeKeywords[t.text]; ok && t.kind == tIdent && p.toks[i+1].kind == tIdent {
			name := p.toks[i+1].text
			if _, ok := p.classes[name]; !ok {
				p.classes[name] = p.qualify(name)
			}
		}
	}

	for !p.eof() {
		if err := p.member(); err != nil {
			return err
		}
	}

	return nil
}

func (p *parser) qualify(name string) string {
	if p.pkg == "" {
		return name
	}

	return p.pkg + "." + name
}

// qualifiedName consumes a dotted name, including a trailing wildcard.
func (p *parser) qualifiedName() string {
	var b strings.Builder

	for !p.eof() {
		t := p.toks[p.pos]
		if t.kind != tIdent && t.text != "." && t.text != "*" {
			break
		}

		b.WriteString(t.text) // ignore error
		p.pos++
	}

	return b.String()
}

// member parses a type or class member declaration.
func (p *parser) member() error {
	var m member

	start := p.peek(0).start

	for p.is("@") && p.peek(1).text != "interface" {
		p.pos++

		name := p.qualifiedName()
		if !p.is("(") {
			continue
		}

		if name == "SuppressWarnings" || name == "java.lang.SuppressWarnings" {
			if err := p.suppressWarnings(&m); err != nil {
				return err
			}

			continue
		}

		p.pos++
		if _, _, _, err := p.region(")"); err != nil {
			return err
		}
	}

	switch {
	case p.is(";"):
		p.pos++

		return nil

	case p.is("{"), p.is("static") && p.peek(1).text == "{":
		// Initializer blocks belong to the enclosing type.
		for !p.is("{") {
			p.pos++
		}

		p.pos++
		_, _, _, err := p.region("}")

		return err
	}

	m.span.Start = start
	m.indent = p.indent(start)

	var header []string

	for {
		if p.eof() {
			return p.errorf("unterminated declaration")
		}

		t := p.toks[p.pos]

		switch {
		case t.kind == tIdent:
			if _, ok := typeKeywords[t.text]; ok {
				return p.typeDecl(&m)
			}

			header = append(header, t.text)
			p.pos++

		case t.text == "<":
			p.skipAngles()

		case t.text == "(":
			return p.method(&m, header)

		case t.text == "=", t.text == ";":
			return p.field(&m, header)

		default:
			p.pos++
		}
	}
}

func (p *parser) typeDecl(m *member) error {
	p.pos++

	if p.peek(0).kind != tIdent {
		return p.errorf("missing type name")
	}

	m.name = p.toks[p.pos].text

	for !p.is("{") {
		if p.eof() {
			return p.errorf("missing body of %s", m.name)
		}

		p.pos++
	}

	p.pos++

	for !p.is("}") {
		if p.eof() {
			return p.errorf("unterminated body of %s", m.name)
		}

		if err := p.member(); err != nil {
			return err
		}
	}

	m.span.End = p.toks[p.pos].end
	p.pos++
	p.doc.members = append(p.doc.members, m)

	return nil
}

func (p *parser) method(m *member, header []string) error {
	if len(header) == 0 {
		return p.errorf("missing method name")
	}

	m.name = header[len(header)-1]

	saved := maps.Clone(p.vars)
	defer func() { p.vars = saved }()

	p.pos++
	if _, _, _, err := p.region(")"); err != nil {
		return err
	}

	for !p.is("{") && !p.is(";") {
		if p.eof() {
			return p.errorf("unterminated method %s", m.name)
		}

		p.pos++
	}

	if p.is(";") {
		m.span.End = p.toks[p.pos].end
		p.pos++
	} else {
		p.pos++

		end, _, _, err := p.region("}")
		if err != nil {
			return err
		}

		m.span.End = end
	}

	p.doc.members = append(p.doc.members, m)

	return nil
}

func (p *parser) field(m *member, header []string) error {
	var names []string
	for _, h := range header {
		if _, ok := modifiers[h]; !ok {
			names = append(names, h)
		}
	}

	if len(names) == 0 {
		return p.errorf("missing field name")
	}

	m.name = names[len(names)-1]
	if len(names) > 1 {
		if typ, ok := p.classes[names[0]]; ok {
			p.vars[m.name] = typ
		}
	}

	if p.is("=") {
		p.pos++
	}

	end, _, _, err := p.region(";")
	if err != nil {
		return err
	}

	m.span.End = end
	p.doc.members = append(p.doc.members, m)

	return nil
}

// suppressWarnings records the values of a @SuppressWarnings annotation.
func (p *parser) suppressWarnings(m *member) error {
	p.pos++ // (

	if p.is("value") && p.peek(1).text == "=" {
		p.pos += 2
	}

	switch t := p.peek(0); {
	case t.kind == tString:
		m.suppressed = append(m.suppressed, unquote(t.text))
		m.annotation = t.span()
		p.pos++

	case t.text == "{":
		m.array = true
		p.pos++

		for !p.is("}") {
			if p.eof() {
				return p.errorf("unterminated annotation")
			}

			if s := p.toks[p.pos]; s.kind == tString {
				m.suppressed = append(m.suppressed, unquote(s.text))
			}

			p.pos++
		}

		m.annotation = source.Span{Start: t.start, End: p.toks[p.pos].end}
		p.pos++
	}

	_, _, _, err := p.region(")")

	return err
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}

	return strings.Trim(s, `"`)
}

// indent returns the whitespace preceding off on its line.
func (p *parser) indent(off int) string {
	ls := strings.LastIndexByte(p.src[:off], '\n') + 1
	if ind := p.src[ls:off]; strings.TrimLeft(ind, " \t") == "" {
		return ind
	}

	return ""
}

// skipAngles skips a balanced type argument list.
func (p *parser) skipAngles() {
	for depth := 0; !p.eof(); p.pos++ {
		switch p.toks[p.pos].text {
		case "<":
			depth++

		case ">":
			depth--
			if depth == 0 {
				p.pos++

				return
			}
		}
	}
}

// region parses expressions up to and including the closing token.
// It returns the end offset of the closing token, the number of top-level commas,
// and whether there was anything besides the closing token.
func (p *parser) region(closing string) (end, commas int, nonempty bool, err error) {
	for {
		if p.eof() {
			return 0, 0, false, p.errorf("missing %q", closing)
		}

		t := p.toks[p.pos]

		if t.kind == tPunct {
			switch t.text {
			case closing:
				p.pos++

				return t.end, commas, nonempty, nil

			case ",":
				commas++
				p.pos++

			case "{":
				p.pos++
				if _, _, _, err := p.region("}"); err != nil {
					return 0, 0, false, err
				}

			case "[":
				p.pos++
				if _, _, _, err := p.region("]"); err != nil {
					return 0, 0, false, err
				}

			case ")", "}", "]":
				return 0, 0, false, p.errorf("unexpected %q, expected %q", t.text, closing)

			case "(":
				if _, err := p.postfix(); err != nil {
					return 0, 0, false, err
				}

			default:
				p.pos++
			}

			nonempty = true

			continue
		}

		nonempty = true

		if p.declaration() {
			continue
		}

		if _, err := p.postfix(); err != nil {
			return 0, 0, false, err
		}
	}
}

// declaration binds a local variable or parameter declared with a known type.
func (p *parser) declaration() bool {
	t := p.toks[p.pos]
	if t.kind != tIdent {
		return false
	}

	typ, ok := p.classes[t.text]
	if !ok {
		return false
	}

	saved := p.pos
	p.pos++

	if p.is("<") {
		p.skipAngles()
	}

	for p.is("[") && p.peek(1).text == "]" {
		p.pos += 2
	}

	if name, next := p.peek(0), p.peek(1); name.kind == tIdent && next.kind == tPunct {
		switch next.text {
		case "=", ";", ",", ")", ":":
			p.vars[name.text] = typ
			p.pos++

			return true
		}
	}

	p.pos = saved

	return false
}

// postfix parses a primary expression followed by selections and invocations.
func (p *parser) postfix() (*expr, error) {
	cur, err := p.primary()
	if err != nil || cur == nil {
		return nil, err
	}

	for {
		switch {
		case p.is("::"):
			p.pos += 2

			return cur, nil

		case !p.is("."):
			return cur, nil
		}

		p.pos++
		if p.is("<") {
			p.skipAngles()
		}

		name := p.peek(0)
		if name.kind != tIdent {
			return cur, nil
		}

		p.pos++

		if !p.is("(") {
			cur = &expr{span: source.Span{Start: cur.span.Start, End: name.end}, recv: cur}

			continue
		}

		p.pos++

		end, commas, nonempty, err := p.region(")")
		if err != nil {
			return nil, err
		}

		call := &expr{
			span:   source.Span{Start: cur.span.Start, End: end},
			typ:    p.returns(cur, name.text),
			call:   true,
			method: name.text,
			nargs:  numArgs(commas, nonempty),
			recv:   cur,
		}

		if cur.call {
			cur.chained = call
		}

		p.doc.calls = append(p.doc.calls, call)
		cur = call
	}
}

func (p *parser) primary() (*expr, error) {
	t := p.toks[p.pos]

	switch {
	case t.text == "(" && t.kind == tPunct:
		p.pos++

		inner, err := p.postfix()
		if err != nil {
			return nil, err
		}

		if p.is(")") && inner != nil {
			end := p.toks[p.pos].end
			p.pos++

			return &expr{span: source.Span{Start: t.start, End: end}, typ: inner.typ}, nil
		}

		end, _, _, err := p.region(")")
		if err != nil {
			return nil, err
		}

		return &expr{span: source.Span{Start: t.start, End: end}}, nil

	case t.kind == tIdent && t.text == "new":
		return p.creation()

	case t.kind == tIdent:
		if _, ok := statementKeywords[t.text]; ok {
			p.pos++

			return nil, nil
		}

		p.pos++

		if p.is("(") {
			p.pos++

			end, commas, nonempty, err := p.region(")")
			if err != nil {
				return nil, err
			}

			call := &expr{
				span:   source.Span{Start: t.start, End: end},
				call:   true,
				method: t.text,
				nargs:  numArgs(commas, nonempty),
			}
			p.doc.calls = append(p.doc.calls, call)

			return call, nil
		}

		e := &expr{span: t.span()}
		if typ, ok := p.vars[t.text]; ok {
			e.typ = typ
		} else if typ, ok := p.classes[t.text]; ok {
			e.typ, e.static = typ, true
		}

		return e, nil

	case t.kind == tNumber, t.kind == tString:
		p.pos++

		return &expr{span: t.span()}, nil

	default:
		p.pos++

		return nil, nil
	}
}

// creation parses an instance or array creation expression.
func (p *parser) creation() (*expr, error) {
	start := p.toks[p.pos].start
	p.pos++

	name := p.qualifiedName()
	if p.is("<") {
		p.skipAngles()
	}

	end := p.peek(-1).end

	for _, pair := range [...][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}} {
		for p.is(pair[0]) {
			p.pos++

			e, _, _, err := p.region(pair[1])
			if err != nil {
				return nil, err
			}

			end = e
		}
	}

	typ, ok := p.classes[name]
	if !ok && strings.Contains(name, ".") {
		typ = name
	}

	return &expr{span: source.Span{Start: start, End: end}, typ: typ}, nil
}

// returns resolves the result type of calling method on recv, searching supertypes.
func (p *parser) returns(recv *expr, method string) string {
	if recv.typ == "" {
		return ""
	}

	seen := make(map[string]struct{})

	for queue := []string{recv.typ}; len(queue) > 0; queue = queue[1:] {
		t := queue[0]
		if r, ok := p.types.Returns[t+"."+method]; ok {
			return r
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		queue = append(queue, p.types.Supertypes[t]...)
	}

	return ""
}

func numArgs(commas int, nonempty bool) int {
	if !nonempty {
		return 0
	}

	return commas + 1
}

func (t token) span() source.Span { return source.Span{Start: t.start, End: t.end} }

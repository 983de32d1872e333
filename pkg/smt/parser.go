// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package smt

import "fmt"

// Parse a given string into an expression, or return an error if the string
// is malformed.  This is used for decoding replies sent back by the solver,
// such as the value bindings produced by a "(get-value ...)" command.
func Parse(s string) (Expr, error) {
	p := newParser(s)
	// Parse the input
	expr, err := p.parse()
	// Sanity check everything was parsed
	if err == nil && expr == nil {
		return nil, fmt.Errorf("empty solver reply")
	}
	//
	return expr, err
}

// Parser represents a parser in the process of parsing a given string into
// one or more expressions.
type parser struct {
	// Text being parsed
	text []rune
	// Determine current position within text
	index int
}

func newParser(text string) *parser {
	return &parser{
		text:  []rune(text),
		index: 0,
	}
}

// Parse one expression from the current position, or produce an error.
func (p *parser) parse() (Expr, error) {
	token := p.next()

	if token == nil {
		return nil, nil
	} else if len(token) == 1 && token[0] == ')' {
		// Leave the offending brace for the error position
		p.index--
		return nil, p.error("unexpected end-of-list")
	} else if len(token) == 1 && token[0] == '(' {
		var elements []Expr

		for c := p.lookahead(); c == nil || *c != ')'; c = p.lookahead() {
			element, err := p.parse()
			if err != nil {
				return nil, err
			} else if element == nil {
				p.index--
				return nil, p.error("unexpected end-of-file")
			}
			//
			elements = append(elements, element)
		}
		// Closing brace
		p.next()
		//
		return &Application{elements}, nil
	}

	return &Atom{string(token)}, nil
}

// Consume and return the next token, or nil at end of input.
func (p *parser) next() []rune {
	// Skip whitespace
	for p.index < len(p.text) && isWhitespace(p.text[p.index]) {
		p.index++
	}
	//
	if p.index == len(p.text) {
		return nil
	}
	//
	index := p.index

	switch p.text[index] {
	case '(', ')':
		// List begin / end
		p.index = p.index + 1
		return p.text[index:p.index]
	case '"':
		// String literal, as found in error replies.  Keep the enclosing
		// quotes so the token remains distinguishable from a symbol.
		p.index++
		//
		for p.index < len(p.text) && p.text[p.index] != '"' {
			p.index++
		}
		//
		if p.index < len(p.text) {
			p.index++
		}
		//
		return p.text[index:p.index]
	}
	// Symbol or numeral
	for p.index < len(p.text) && !isWhitespace(p.text[p.index]) &&
		p.text[p.index] != '(' && p.text[p.index] != ')' {
		p.index++
	}
	//
	return p.text[index:p.index]
}

// Lookahead returns the next non-whitespace character, or nil if none remains.
func (p *parser) lookahead() *rune {
	for i := p.index; i < len(p.text); i++ {
		if !isWhitespace(p.text[i]) {
			return &p.text[i]
		}
	}
	//
	return nil
}

func (p *parser) error(msg string) error {
	return fmt.Errorf("%d: %s", p.index, msg)
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

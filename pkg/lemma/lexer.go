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
package lemma

import "strings"

// Lex splits a proof script into tokens, skipping whitespace and comments
// (which run from '#' to end of line).  Newlines are kept as tokens since
// they separate statements.  The returned slice always ends with an EOF
// token carrying the final source position.
func Lex(source string) ([]Token, error) {
	l := &lexer{source: []rune(source), line: 1, col: 1}
	//
	return l.scan()
}

type lexer struct {
	source []rune
	index  int
	line   int
	col    int
}

func (p *lexer) scan() ([]Token, error) {
	var tokens []Token
	//
	for p.index < len(p.source) {
		c := p.source[p.index]
		//
		switch {
		case c == '\n':
			tokens = append(tokens, p.token(TokNewline, "\n"))
			p.index++
			p.line++
			p.col = 1
		case c == ' ' || c == '\t' || c == '\r':
			p.advance(1)
		case c == '#':
			p.skipComment()
		case c == '"':
			token, err := p.scanString()
			if err != nil {
				return nil, err
			}
			//
			tokens = append(tokens, token)
		case isDigit(c):
			tokens = append(tokens, p.scanNumber())
		case isLetter(c):
			tokens = append(tokens, p.scanWord())
		default:
			token, err := p.scanOperator()
			if err != nil {
				return nil, err
			}
			//
			tokens = append(tokens, token)
		}
	}
	//
	return append(tokens, p.token(TokEOF, "")), nil
}

func (p *lexer) token(kind TokenKind, value string) Token {
	return Token{kind, value, p.line, p.col}
}

func (p *lexer) advance(n int) {
	p.index += n
	p.col += n
}

func (p *lexer) skipComment() {
	for p.index < len(p.source) && p.source[p.index] != '\n' {
		p.advance(1)
	}
}

func (p *lexer) scanString() (Token, error) {
	start := p.index + 1
	//
	for i := start; i < len(p.source); i++ {
		if p.source[i] == '"' {
			token := p.token(TokString, string(p.source[start:i]))
			p.advance(i + 1 - p.index)
			//
			return token, nil
		}
		//
		if p.source[i] == '\n' {
			break
		}
	}
	//
	return Token{}, syntaxErrorf(p.token(TokString, ""), "Unterminated string literal")
}

// Scan a numeric literal: digits with an optional fractional part.
func (p *lexer) scanNumber() Token {
	i, dot := p.index, false
	//
	for i < len(p.source) {
		c := p.source[i]
		//
		if c == '.' && !dot {
			dot = true
		} else if !isDigit(c) {
			break
		}
		//
		i++
	}
	//
	token := p.token(TokNumber, string(p.source[p.index:i]))
	p.advance(i - p.index)
	//
	return token
}

// Scan an identifier-shaped word and classify it as a keyword, built-in
// function, number-set name or plain identifier.
func (p *lexer) scanWord() Token {
	i := p.index
	//
	for i < len(p.source) && (isLetter(p.source[i]) || isDigit(p.source[i])) {
		i++
	}
	//
	word := string(p.source[p.index:i])
	token := p.token(p.classify(word), word)
	// Set names are reported in canonical form.
	if token.Kind == TokSet {
		token.Value = numberSets[word]
	}
	//
	p.advance(i - p.index)
	//
	return token
}

func (p *lexer) classify(word string) TokenKind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	//
	if kind, ok := keywords[strings.ToLower(word)]; ok {
		return kind
	}
	//
	if functions[word] {
		return TokFunc
	}
	//
	if _, ok := numberSets[word]; ok {
		return TokSet
	}
	//
	return TokIdent
}

func (p *lexer) scanOperator() (Token, error) {
	// Two-character operators first.
	if p.index+1 < len(p.source) {
		switch string(p.source[p.index : p.index+2]) {
		case "<=":
			return p.operator(TokLe, 2), nil
		case ">=":
			return p.operator(TokGe, 2), nil
		case "!=":
			return p.operator(TokNe, 2), nil
		case "=>":
			return p.operator(TokImplies, 2), nil
		}
	}
	//
	var kind TokenKind
	//
	switch p.source[p.index] {
	case '=':
		kind = TokEq
	case '<':
		kind = TokLt
	case '>':
		kind = TokGt
	case '+':
		kind = TokPlus
	case '-':
		kind = TokMinus
	case '*':
		kind = TokStar
	case '/':
		kind = TokSlash
	case '^':
		kind = TokCaret
	case '(':
		kind = TokLParen
	case ')':
		kind = TokRParen
	case ',':
		kind = TokComma
	case ':':
		kind = TokColon
	case '.':
		kind = TokDot
	case '|':
		kind = TokPipe
	default:
		return Token{}, syntaxErrorf(p.token(TokEOF, ""),
			"Unexpected character: %q", p.source[p.index])
	}
	//
	return p.operator(kind, 1), nil
}

func (p *lexer) operator(kind TokenKind, width int) Token {
	token := p.token(kind, string(p.source[p.index:p.index+width]))
	p.advance(width)
	//
	return token
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

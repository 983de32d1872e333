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

// TokenKind distinguishes the kinds of token produced by the lexer.
type TokenKind uint8

const (
	// TokEOF marks the end of the token stream.
	TokEOF TokenKind = iota
	// TokNewline is a statement separator.
	TokNewline
	// TokNumber is a numeric literal.
	TokNumber
	// TokIdent is a variable or theorem name.
	TokIdent
	// TokString is a quoted string literal, as used by import.
	TokString
	// TokSet is a number-set name (canonicalised to R, Z, N or Q).
	TokSet
	// TokFunc is a built-in function name (abs, sqrt, min, max).
	TokFunc
	// Statement keywords.  Each subsumes its English aliases.
	TokAssume
	TokProve
	TokHave
	TokLet
	TokTheorem
	TokApply
	TokImport
	TokCases
	TokCase
	// Connectives and quantifiers.
	TokAnd
	TokOr
	TokNot
	TokImplies
	TokForall
	TokExists
	TokTrue
	TokFalse
	TokIn
	TokInt
	TokReal
	// Operators and punctuation.
	TokLe
	TokGe
	TokNe
	TokEq
	TokLt
	TokGt
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokCaret
	TokLParen
	TokRParen
	TokComma
	TokColon
	TokDot
	TokPipe
)

var tokenNames = map[TokenKind]string{
	TokEOF:     "end of file",
	TokNewline: "newline",
	TokNumber:  "number",
	TokIdent:   "identifier",
	TokString:  "string",
	TokSet:     "set name",
	TokFunc:    "function",
	TokAssume:  "'assume'",
	TokProve:   "'prove'",
	TokHave:    "'have'",
	TokLet:     "'let'",
	TokTheorem: "'theorem'",
	TokApply:   "'apply'",
	TokImport:  "'import'",
	TokCases:   "'cases'",
	TokCase:    "'case'",
	TokAnd:     "'and'",
	TokOr:      "'or'",
	TokNot:     "'not'",
	TokImplies: "'implies'",
	TokForall:  "'forall'",
	TokExists:  "'exists'",
	TokTrue:    "'true'",
	TokFalse:   "'false'",
	TokIn:      "'in'",
	TokInt:     "'Int'",
	TokReal:    "'Real'",
	TokLe:      "'<='",
	TokGe:      "'>='",
	TokNe:      "'!='",
	TokEq:      "'='",
	TokLt:      "'<'",
	TokGt:      "'>'",
	TokPlus:    "'+'",
	TokMinus:   "'-'",
	TokStar:    "'*'",
	TokSlash:   "'/'",
	TokCaret:   "'^'",
	TokLParen:  "'('",
	TokRParen:  "')'",
	TokComma:   "','",
	TokColon:   "':'",
	TokDot:     "'.'",
	TokPipe:    "'|'",
}

func (k TokenKind) String() string {
	return tokenNames[k]
}

// Token is one lexeme of a proof script, located by line and column for
// error reporting.
type Token struct {
	Kind  TokenKind
	Value string
	Line  int
	Col   int
}

// Statement keywords together with their English aliases, which let proofs
// read as prose ("suppose x > 0 ... therefore x >= 0").  Matching is
// case-insensitive except for the type names Int and Real.
var keywords = map[string]TokenKind{
	"assume": TokAssume, "suppose": TokAssume, "given": TokAssume,
	"assuming": TokAssume, "if": TokAssume,
	//
	"prove": TokProve, "show": TokProve, "therefore": TokProve,
	"thus": TokProve, "hence": TokProve, "conclude": TokProve, "qed": TokProve,
	//
	"have": TokHave, "assert": TokHave, "then": TokHave, "so": TokHave,
	"know": TokHave, "note": TokHave, "observe": TokHave, "since": TokHave,
	"get": TokHave,
	//
	"let": TokLet, "where": TokLet, "define": TokLet, "set": TokLet,
	//
	"theorem": TokTheorem, "lemma": TokTheorem,
	//
	"apply": TokApply, "use": TokApply, "using": TokApply, "by": TokApply,
	//
	"import": TokImport,
	"cases":  TokCases,
	"case":   TokCase, "when": TokCase, "whenever": TokCase,
	//
	"and": TokAnd, "but": TokAnd,
	"or":  TokOr,
	"not": TokNot,
	//
	"implies": TokImplies, "iff": TokImplies,
	//
	"forall": TokForall, "all": TokForall, "every": TokForall, "each": TokForall,
	"exists": TokExists, "some": TokExists, "any": TokExists,
	//
	"true":  TokTrue,
	"false": TokFalse,
	"in":    TokIn,
	"Int":   TokInt,
	"Real":  TokReal,
}

// Number-set names, canonicalised for "let x in ..." membership.
var numberSets = map[string]string{
	"R": "R", "Reals": "R", "reals": "R",
	"Z": "Z", "Integers": "Z", "integers": "Z",
	"N": "N", "Naturals": "N", "naturals": "N", "Nat": "N",
	"Q": "Q", "Rationals": "Q", "rationals": "Q",
}

// Built-in functions of the term language.
var functions = map[string]bool{
	"abs": true, "sqrt": true, "min": true, "max": true,
}

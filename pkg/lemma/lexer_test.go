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

import (
	"strings"
	"testing"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestLex_1(t *testing.T) {
	CheckKinds(t, "assume x > 0", TokAssume, TokIdent, TokGt, TokNumber)
}

func TestLex_2(t *testing.T) {
	CheckKinds(t, "prove x >= 0", TokProve, TokIdent, TokGe, TokNumber)
}

// keyword aliases
func TestLex_3(t *testing.T) {
	CheckKinds(t, "suppose therefore thus hence", TokAssume, TokProve, TokProve, TokProve)
}

func TestLex_4(t *testing.T) {
	CheckKinds(t, "given if qed conclude", TokAssume, TokAssume, TokProve, TokProve)
}

func TestLex_5(t *testing.T) {
	CheckKinds(t, "then so know note observe since get", TokHave, TokHave, TokHave, TokHave, TokHave, TokHave, TokHave)
}

func TestLex_6(t *testing.T) {
	CheckKinds(t, "where define set lemma", TokLet, TokLet, TokLet, TokTheorem)
}

func TestLex_7(t *testing.T) {
	CheckKinds(t, "use using by when whenever but", TokApply, TokApply, TokApply, TokCase, TokCase, TokAnd)
}

func TestLex_8(t *testing.T) {
	CheckKinds(t, "all every each some any iff", TokForall, TokForall, TokForall, TokExists, TokExists, TokImplies)
}

// keywords match case-insensitively
func TestLex_9(t *testing.T) {
	CheckKinds(t, "ASSUME Prove hAvE", TokAssume, TokProve, TokHave)
}

// ...except the type names, which are exact
func TestLex_10(t *testing.T) {
	CheckKinds(t, "let x : Int", TokLet, TokIdent, TokColon, TokInt)
}

func TestLex_11(t *testing.T) {
	tokens := lex(t, "int INT")
	//
	for i := 0; i < 2; i++ {
		if tokens[i].Kind != TokIdent {
			t.Errorf("token %d: expected identifier, got %s", i, tokens[i].Kind)
		}
	}
}

// number sets canonicalise to their short name
func TestLex_12(t *testing.T) {
	tokens := lex(t, "Reals Z Naturals Rationals")
	expected := []string{"R", "Z", "N", "Q"}
	//
	for i, value := range expected {
		if tokens[i].Kind != TokSet || tokens[i].Value != value {
			t.Errorf("token %d: expected set %s, got %s %q", i, value, tokens[i].Kind, tokens[i].Value)
		}
	}
}

func TestLex_13(t *testing.T) {
	CheckKinds(t, "abs sqrt min max", TokFunc, TokFunc, TokFunc, TokFunc)
}

func TestLex_14(t *testing.T) {
	CheckKinds(t, "<= >= != => < > =", TokLe, TokGe, TokNe, TokImplies, TokLt, TokGt, TokEq)
}

func TestLex_15(t *testing.T) {
	CheckKinds(t, "+ - * / ^ ( ) , : . |", TokPlus, TokMinus, TokStar, TokSlash, TokCaret,
		TokLParen, TokRParen, TokComma, TokColon, TokDot, TokPipe)
}

func TestLex_16(t *testing.T) {
	tokens := lex(t, "3.14 42 0.5")
	expected := []string{"3.14", "42", "0.5"}
	//
	for i, value := range expected {
		if tokens[i].Kind != TokNumber || tokens[i].Value != value {
			t.Errorf("token %d: expected number %s, got %q", i, value, tokens[i].Value)
		}
	}
}

// comments run to end of line
func TestLex_17(t *testing.T) {
	CheckKinds(t, "x # ignored > 0\ny", TokIdent, TokNewline, TokIdent)
}

// string literals drop their quotes
func TestLex_18(t *testing.T) {
	tokens := lex(t, `import "lib.proof"`)
	//
	if tokens[1].Kind != TokString || tokens[1].Value != "lib.proof" {
		t.Errorf("expected string token, got %s %q", tokens[1].Kind, tokens[1].Value)
	}
}

// line and column positions count from 1
func TestLex_19(t *testing.T) {
	tokens := lex(t, "x\n  y")
	//
	if tokens[0].Line != 1 || tokens[0].Col != 1 {
		t.Errorf("x at %d:%d", tokens[0].Line, tokens[0].Col)
	}
	//
	if tokens[2].Line != 2 || tokens[2].Col != 3 {
		t.Errorf("y at %d:%d", tokens[2].Line, tokens[2].Col)
	}
}

// ============================================================================
// Negative Tests
// ============================================================================

func TestLex_Err1(t *testing.T) {
	CheckLexErr(t, "x @ y", "Unexpected character")
}

func TestLex_Err2(t *testing.T) {
	CheckLexErr(t, `import "unterminated`, "Unterminated string literal")
}

func TestLex_Err3(t *testing.T) {
	CheckLexErr(t, "import \"broken\nstring\"", "Unterminated string literal")
}

// ============================================================================
// Helpers
// ============================================================================

func lex(t *testing.T, source string) []Token {
	tokens, err := Lex(source)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	//
	return tokens
}

func CheckKinds(t *testing.T, source string, kinds ...TokenKind) {
	tokens := lex(t, source)
	//
	if len(tokens) != len(kinds)+1 {
		t.Fatalf("expected %d tokens, got %d: %v", len(kinds)+1, len(tokens), tokens)
	}
	//
	for i, kind := range kinds {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %s, got %s (%q)", i, kind, tokens[i].Kind, tokens[i].Value)
		}
	}
	//
	if tokens[len(kinds)].Kind != TokEOF {
		t.Errorf("expected trailing EOF, got %s", tokens[len(kinds)].Kind)
	}
}

func CheckLexErr(t *testing.T, source string, fragment string) {
	_, err := Lex(source)
	if err == nil {
		t.Fatalf("expected lex error for %q", source)
	}
	//
	if !strings.Contains(err.Error(), fragment) {
		t.Errorf("%q does not mention %q", err.Error(), fragment)
	}
}

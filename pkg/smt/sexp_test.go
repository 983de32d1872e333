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

import (
	"reflect"
	"testing"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestSexp_1(t *testing.T) {
	e1 := Atom{"sat"}
	CheckOk(t, &e1, "sat")
}

func TestSexp_2(t *testing.T) {
	e1 := Atom{"12345"}
	CheckOk(t, &e1, "12345")
}

func TestSexp_3(t *testing.T) {
	e1 := Atom{"+"}
	e2 := Atom{"1"}
	e3 := Application{[]Expr{&e1, &e2}}
	CheckOk(t, &e3, "(+ 1)")
}

func TestSexp_4(t *testing.T) {
	e1 := Atom{">="}
	e2 := Atom{"x"}
	e3 := Atom{"0"}
	e4 := Application{[]Expr{&e1, &e2, &e3}}
	CheckOk(t, &e4, "(>= x 0)")
}

func TestSexp_5(t *testing.T) {
	e1 := Atom{"x"}
	e2 := Atom{"5"}
	e3 := Application{[]Expr{&e1, &e2}}
	e4 := Application{[]Expr{&e3}}
	// Shape of a get-value reply
	CheckOk(t, &e4, "((x 5))")
}

func TestSexp_6(t *testing.T) {
	e1 := Atom{"-"}
	e2 := Atom{"2"}
	e3 := Application{[]Expr{&e1, &e2}}
	CheckOk(t, &e3, "(- 2)")
}

func TestSexp_7(t *testing.T) {
	e1 := Atom{"error"}
	e2 := Atom{"\"unknown constant y\""}
	e3 := Application{[]Expr{&e1, &e2}}
	// String literals keep their quotes, whitespace included.
	CheckOk(t, &e3, "(error \"unknown constant y\")")
}

func TestSexp_8(t *testing.T) {
	e1 := Atom{"ite"}
	e2 := Atom{"c"}
	e3 := Atom{"a"}
	e4 := Atom{"b"}
	e5 := Application{[]Expr{&e1, &e2, &e3, &e4}}
	CheckOk(t, &e5, "  ( ite c\n a b )")
}

// ============================================================================
// Construction Tests
// ============================================================================

func TestSexp_Build1(t *testing.T) {
	CheckStr(t, Sym("x"), "x")
}

func TestSexp_Build2(t *testing.T) {
	CheckStr(t, Fn("and", Sym("a"), Sym("b")), "(and a b)")
}

func TestSexp_Build3(t *testing.T) {
	CheckStr(t, Fn("not", Fn(">", Sym("x"), Sym("0"))), "(not (> x 0))")
}

func TestSexp_Build4(t *testing.T) {
	binder := App(App(Sym("x"), Sym("Real")))
	CheckStr(t, Fn("forall", binder, Fn("=", Sym("x"), Sym("x"))),
		"(forall ((x Real)) (= x x))")
}

func TestSexp_Match1(t *testing.T) {
	expr := Fn("-", Sym("2")).(*Application)
	//
	if !expr.MatchSymbol(2, "-") {
		t.Errorf("expected match")
	}
	//
	if expr.MatchSymbol(3, "-") || expr.MatchSymbol(2, "/") {
		t.Errorf("unexpected match")
	}
}

// ============================================================================
// Negative Tests
// ============================================================================

// unexpected end-of-list
func TestSexp_Err1(t *testing.T) {
	CheckErr(t, ")")
}

// unexpected end-of-file
func TestSexp_Err2(t *testing.T) {
	CheckErr(t, "(")
}

// unexpected end-of-file
func TestSexp_Err3(t *testing.T) {
	CheckErr(t, "(a (b)")
}

// empty reply
func TestSexp_Err4(t *testing.T) {
	CheckErr(t, "")
}

// ============================================================================
// Helpers
// ============================================================================

func CheckOk(t *testing.T, expr1 Expr, input string) {
	expr2, err := Parse(input)
	//
	if err != nil {
		t.Error(err)
	} else if !reflect.DeepEqual(expr1, expr2) {
		t.Errorf("%s != %s", expr1, expr2)
	}
}

func CheckStr(t *testing.T, expr Expr, expected string) {
	if expr.String() != expected {
		t.Errorf("%s != %s", expr, expected)
	}
}

func CheckErr(t *testing.T, input string) {
	_, err := Parse(input)
	//
	if err == nil {
		t.Errorf("input should not have parsed!")
	}
}

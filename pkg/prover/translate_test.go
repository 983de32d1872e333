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
package prover

import (
	"testing"

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/smt"
)

// ============================================================================
// Term Tests
// ============================================================================

func TestTranslateTerm_1(t *testing.T) {
	CheckTerm(t, &ast.Num{Value: "42"}, "42")
}

func TestTranslateTerm_2(t *testing.T) {
	CheckTerm(t, &ast.Num{Value: "3.14"}, "3.14")
}

func TestTranslateTerm_3(t *testing.T) {
	CheckTerm(t, &ast.Num{Value: "-7"}, "(- 7)")
}

// exponent forms are rendered as exact rationals
func TestTranslateTerm_4(t *testing.T) {
	CheckTerm(t, &ast.Num{Value: "1e2"}, "100")
}

func TestTranslateTerm_5(t *testing.T) {
	CheckTerm(t, &ast.Num{Value: "2.5e-1"}, "(/ 1 4)")
}

func TestTranslateTerm_6(t *testing.T) {
	CheckTerm(t, &ast.Var{Name: "x"}, "x")
}

func TestTranslateTerm_7(t *testing.T) {
	e1 := ast.Binary{Op: "+", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Num{Value: "1"}}
	CheckTerm(t, &e1, "(+ x 1)")
}

func TestTranslateTerm_8(t *testing.T) {
	e1 := ast.Neg{Arg: &ast.Var{Name: "x"}}
	CheckTerm(t, &e1, "(- x)")
}

// absolute value is a case split
func TestTranslateTerm_9(t *testing.T) {
	e1 := ast.Abs{Arg: &ast.Var{Name: "x"}}
	CheckTerm(t, &e1, "(ite (>= x 0) x (- x))")
}

func TestTranslateTerm_10(t *testing.T) {
	e1 := ast.Pow{Base: &ast.Var{Name: "x"}, Exp: &ast.Num{Value: "2"}}
	CheckTerm(t, &e1, "(^ x 2)")
}

// square root is exponentiation by a half
func TestTranslateTerm_11(t *testing.T) {
	e1 := ast.Sqrt{Arg: &ast.Var{Name: "x"}}
	CheckTerm(t, &e1, "(^ x 0.5)")
}

// min folds left over case splits
func TestTranslateTerm_12(t *testing.T) {
	e1 := ast.Min{Args: []ast.Term{&ast.Var{Name: "a"}, &ast.Var{Name: "b"}}}
	CheckTerm(t, &e1, "(ite (<= a b) a b)")
}

func TestTranslateTerm_13(t *testing.T) {
	e1 := ast.Max{Args: []ast.Term{&ast.Var{Name: "a"}, &ast.Var{Name: "b"}, &ast.Var{Name: "c"}}}
	CheckTerm(t, &e1, "(ite (>= (ite (>= a b) a b) c) (ite (>= a b) a b) c)")
}

func TestTranslateTerm_Err1(t *testing.T) {
	env := NewEnvironment(nil)
	//
	_, err := TranslateTerm(&ast.Num{Value: "abc"}, env)
	//
	if err == nil {
		t.Errorf("term should not have translated!")
	} else if err.Error() != "Invalid numeric literal: abc" {
		t.Errorf("unexpected error: %v", err)
	}
}

// ============================================================================
// Formula Tests
// ============================================================================

func TestTranslateFormula_1(t *testing.T) {
	e1 := ast.Rel{Op: ">", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Num{Value: "0"}}
	CheckFormula(t, &e1, "(> x 0)")
}

// disequality becomes distinct
func TestTranslateFormula_2(t *testing.T) {
	e1 := ast.Rel{Op: "!=", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Num{Value: "0"}}
	CheckFormula(t, &e1, "(distinct x 0)")
}

// empty conjunction is true
func TestTranslateFormula_3(t *testing.T) {
	CheckFormula(t, ast.True(), "true")
}

// empty disjunction is false
func TestTranslateFormula_4(t *testing.T) {
	CheckFormula(t, ast.False(), "false")
}

func TestTranslateFormula_5(t *testing.T) {
	e1 := ast.Rel{Op: ">", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Num{Value: "0"}}
	e2 := ast.Rel{Op: ">", Lhs: &ast.Var{Name: "y"}, Rhs: &ast.Num{Value: "0"}}
	e3 := ast.Conjunct{Args: []ast.Formula{&e1, &e2}}
	CheckFormula(t, &e3, "(and (> x 0) (> y 0))")
}

func TestTranslateFormula_6(t *testing.T) {
	e1 := ast.Rel{Op: "<", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Num{Value: "0"}}
	e2 := ast.Negation{Arg: &e1}
	CheckFormula(t, &e2, "(not (< x 0))")
}

func TestTranslateFormula_7(t *testing.T) {
	e1 := ast.Rel{Op: ">", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Num{Value: "0"}}
	e2 := ast.Rel{Op: ">=", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Num{Value: "0"}}
	e3 := ast.Implication{Lhs: &e1, Rhs: &e2}
	CheckFormula(t, &e3, "(=> (> x 0) (>= x 0))")
}

func TestTranslateFormula_8(t *testing.T) {
	e1 := ast.Rel{Op: ">=", Lhs: &ast.Abs{Arg: &ast.Var{Name: "x"}}, Rhs: &ast.Num{Value: "0"}}
	e2 := ast.Forall{Vars: []string{"x"}, Body: &e1}
	CheckFormula(t, &e2, "(forall ((x Real)) (>= (ite (>= x 0) x (- x)) 0))")
}

func TestTranslateFormula_9(t *testing.T) {
	e1 := ast.Rel{Op: "=", Lhs: &ast.Var{Name: "x"}, Rhs: &ast.Var{Name: "y"}}
	e2 := ast.Exists{Vars: []string{"x", "y"}, Body: &e1}
	CheckFormula(t, &e2, "(exists ((x Real) (y Real)) (= x y))")
}

// quantified variables respect the type map
func TestTranslateFormula_10(t *testing.T) {
	env := NewEnvironment(map[string]string{"n": ast.TypeInt})
	e1 := ast.Rel{Op: ">=", Lhs: &ast.Var{Name: "n"}, Rhs: &ast.Num{Value: "0"}}
	e2 := ast.Forall{Vars: []string{"n"}, Body: &e1}
	//
	expr, err := TranslateFormula(&e2, env)
	if err != nil {
		t.Fatal(err)
	}
	//
	if expr.String() != "(forall ((n Int)) (>= n 0))" {
		t.Errorf("unexpected translation: %s", expr)
	}
}

// ============================================================================
// Environment Tests
// ============================================================================

// the first binding wins
func TestEnvironment_1(t *testing.T) {
	env := NewEnvironment(nil)
	//
	h1 := env.GetOrCreate("x")
	h2 := env.GetOrCreate("x")
	//
	if h1 != h2 {
		t.Errorf("expected the same handle")
	}
}

func TestEnvironment_2(t *testing.T) {
	env := NewEnvironment(map[string]string{"n": ast.TypeInt})
	//
	if env.GetOrCreate("n").Sort != smt.SortInt {
		t.Errorf("expected an integer handle")
	}
	//
	if env.GetOrCreate("x").Sort != smt.SortReal {
		t.Errorf("expected a real handle")
	}
}

// pending handles are reported once, in creation order
func TestEnvironment_3(t *testing.T) {
	env := NewEnvironment(nil)
	//
	env.GetOrCreate("b")
	env.GetOrCreate("a")
	//
	pending := env.Pending()
	if len(pending) != 2 || pending[0].Name != "b" || pending[1].Name != "a" {
		t.Errorf("unexpected pending handles: %v", pending)
	}
	//
	if len(env.Pending()) != 0 {
		t.Errorf("expected no pending handles")
	}
	//
	env.GetOrCreate("c")
	//
	if pending = env.Pending(); len(pending) != 1 || pending[0].Name != "c" {
		t.Errorf("unexpected pending handles: %v", pending)
	}
}

// names are reported sorted
func TestEnvironment_4(t *testing.T) {
	env := NewEnvironment(nil)
	//
	env.GetOrCreate("y")
	env.GetOrCreate("x")
	//
	names := env.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("unexpected names: %v", names)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func CheckTerm(t *testing.T, term ast.Term, expected string) {
	env := NewEnvironment(nil)
	//
	expr, err := TranslateTerm(term, env)
	//
	if err != nil {
		t.Error(err)
	} else if expr.String() != expected {
		t.Errorf("%s != %s", expr, expected)
	}
}

func CheckFormula(t *testing.T, formula ast.Formula, expected string) {
	env := NewEnvironment(nil)
	//
	expr, err := TranslateFormula(formula, env)
	//
	if err != nil {
		t.Error(err)
	} else if expr.String() != expected {
		t.Errorf("%s != %s", expr, expected)
	}
}

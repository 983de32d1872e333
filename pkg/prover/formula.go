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
	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/smt"
)

// TranslateFormula converts a formula into a boolean constraint expression,
// delegating arithmetic subterms to TranslateTerm.  Quantifier-bound
// variables are introduced into the shared environment, overwriting any
// prior binding of the same name (see Environment.Bind); their handles
// persist after translation.
func TranslateFormula(formula ast.Formula, env *Environment) (smt.Expr, error) {
	switch f := formula.(type) {
	case *ast.Rel:
		return translateRel(f, env)
	case *ast.Conjunct:
		return translateNary("and", smt.Sym("true"), f.Args, env)
	case *ast.Disjunct:
		return translateNary("or", smt.Sym("false"), f.Args, env)
	case *ast.Negation:
		arg, err := TranslateFormula(f.Arg, env)
		if err != nil {
			return nil, err
		}
		//
		return smt.Fn("not", arg), nil
	case *ast.Implication:
		lhs, err := TranslateFormula(f.Lhs, env)
		if err != nil {
			return nil, err
		}
		//
		rhs, err := TranslateFormula(f.Rhs, env)
		if err != nil {
			return nil, err
		}
		//
		return smt.Fn("=>", lhs, rhs), nil
	case *ast.Forall:
		return translateQuantifier("forall", f.Vars, f.Body, env)
	case *ast.Exists:
		return translateQuantifier("exists", f.Vars, f.Body, env)
	}
	// Decoding only ever yields the cases above.
	panic("unreachable")
}

func translateRel(f *ast.Rel, env *Environment) (smt.Expr, error) {
	lhs, err := TranslateTerm(f.Lhs, env)
	if err != nil {
		return nil, err
	}
	//
	rhs, err := TranslateTerm(f.Rhs, env)
	if err != nil {
		return nil, err
	}
	// Disequality has no direct operator in the constraint language.
	if f.Op == "!=" {
		return smt.Fn("distinct", lhs, rhs), nil
	}
	//
	return smt.Fn(f.Op, lhs, rhs), nil
}

// Translate an n-ary connective, with the empty argument list yielding the
// connective's identity element rather than an error.
func translateNary(op string, identity smt.Expr, args []ast.Formula, env *Environment) (smt.Expr, error) {
	if len(args) == 0 {
		return identity, nil
	}
	//
	exprs := make([]smt.Expr, len(args)+1)
	exprs[0] = smt.Sym(op)
	//
	for i, arg := range args {
		expr, err := TranslateFormula(arg, env)
		if err != nil {
			return nil, err
		}
		//
		exprs[i+1] = expr
	}
	//
	return smt.App(exprs...), nil
}

// Translate a quantified formula.  Each bound name is entered into the
// shared environment before the body is translated, and the body is wrapped
// in a binder over exactly those names in declaration order.  Within the
// binder the names shadow the declared constants of the same name.
func translateQuantifier(op string, vars []string, body ast.Formula, env *Environment) (smt.Expr, error) {
	binders := make([]smt.Expr, len(vars))
	//
	for i, name := range vars {
		handle := env.Bind(name)
		binders[i] = smt.App(smt.Sym(handle.Name), smt.Sym(handle.Sort.String()))
	}
	//
	bodyExpr, err := TranslateFormula(body, env)
	if err != nil {
		return nil, err
	}
	//
	return smt.Fn(op, smt.App(binders...), bodyExpr), nil
}

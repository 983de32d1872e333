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
	"fmt"
	"math/big"
	"strings"

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/smt"
)

// TranslateTerm converts a term into a constraint-language arithmetic
// expression, consulting (and populating) the given environment for variable
// references.  This is a pure structural recursion: nothing is sent to the
// solver here, and newly created handles remain pending in the environment
// until the orchestrator flushes their declarations.
func TranslateTerm(term ast.Term, env *Environment) (smt.Expr, error) {
	switch t := term.(type) {
	case *ast.Num:
		return translateNum(t)
	case *ast.Var:
		return env.GetOrCreate(t.Name).Expr, nil
	case *ast.Binary:
		lhs, err := TranslateTerm(t.Lhs, env)
		if err != nil {
			return nil, err
		}
		//
		rhs, err := TranslateTerm(t.Rhs, env)
		if err != nil {
			return nil, err
		}
		// Division here is the constraint language's own real division, not
		// floor division.
		return smt.Fn(t.Op, lhs, rhs), nil
	case *ast.Neg:
		arg, err := TranslateTerm(t.Arg, env)
		if err != nil {
			return nil, err
		}
		//
		return smt.Fn("-", arg), nil
	case *ast.Abs:
		// No native primitive exists for absolute value, so encode it as a
		// case split.
		arg, err := TranslateTerm(t.Arg, env)
		if err != nil {
			return nil, err
		}
		//
		return ite(smt.Fn(">=", arg, smt.Sym("0")), arg, smt.Fn("-", arg)), nil
	case *ast.Pow:
		base, err := TranslateTerm(t.Base, env)
		if err != nil {
			return nil, err
		}
		//
		exp, err := TranslateTerm(t.Exp, env)
		if err != nil {
			return nil, err
		}
		//
		return smt.Fn("^", base, exp), nil
	case *ast.Sqrt:
		arg, err := TranslateTerm(t.Arg, env)
		if err != nil {
			return nil, err
		}
		//
		return smt.Fn("^", arg, smt.Sym("0.5")), nil
	case *ast.Min:
		return translateFold(t.Args, "<=", env)
	case *ast.Max:
		return translateFold(t.Args, ">=", env)
	}
	// Decoding only ever yields the cases above.
	panic("unreachable")
}

// Translate an n-ary min or max as a left-to-right fold of binary case
// splits.  Tie-breaking is irrelevant since equal values yield either branch
// with the same result.
func translateFold(args []ast.Term, op string, env *Environment) (smt.Expr, error) {
	result, err := TranslateTerm(args[0], env)
	if err != nil {
		return nil, err
	}
	//
	for _, arg := range args[1:] {
		other, err := TranslateTerm(arg, env)
		if err != nil {
			return nil, err
		}
		//
		result = ite(smt.Fn(op, result, other), result, other)
	}
	//
	return result, nil
}

// Translate a numeric literal into a real-valued constant.  Plain integer
// and decimal forms pass through verbatim; anything else the literal parser
// accepts (exponents, explicit rationals) is rendered as an exact rational.
func translateNum(t *ast.Num) (smt.Expr, error) {
	value := strings.TrimSpace(t.Value)
	//
	rat, ok := new(big.Rat).SetString(value)
	if !ok || value == "" {
		return nil, &ast.TermError{Message: fmt.Sprintf("Invalid numeric literal: %s", t.Value)}
	}
	//
	if plainNumeral(value) {
		if strings.HasPrefix(value, "-") {
			return smt.Fn("-", smt.Sym(value[1:])), nil
		}
		//
		return smt.Sym(value), nil
	}
	// Exact rational form.
	num := numeral(rat.Num())
	//
	if rat.IsInt() {
		return num, nil
	}
	//
	return smt.Fn("/", num, numeral(rat.Denom())), nil
}

// Render a (possibly negative) integer as a numeral expression.
func numeral(value *big.Int) smt.Expr {
	if value.Sign() < 0 {
		return smt.Fn("-", smt.Sym(new(big.Int).Neg(value).String()))
	}
	//
	return smt.Sym(value.String())
}

// Check for a plain decimal form: an optional minus sign, digits, and an
// optional fractional part.
func plainNumeral(value string) bool {
	digits, dot := 0, false
	//
	for i, c := range value {
		switch {
		case c == '-' && i == 0:
			// leading sign
		case c == '.' && !dot && digits > 0:
			dot = true
		case c >= '0' && c <= '9':
			digits++
		default:
			return false
		}
	}
	// Reject a trailing dot
	return digits > 0 && !strings.HasSuffix(value, ".")
}

// Construct an if-then-else case split.
func ite(condition, then, otherwise smt.Expr) smt.Expr {
	return smt.Fn("ite", condition, then, otherwise)
}

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

import "github.com/lemma-lang/go-lemma/pkg/ast"

// Formulas and terms share one grammar, since a parenthesised subexpression
// may turn out to be either: in "(x + y) * 2" the parens hold a term, in
// "(x > 0) and (y > 0)" a formula.  The ambiguous productions therefore
// return an untyped node, and each context coerces where it demands one kind
// or the other.

// Coerce a node into a formula.
func (p *parser) asFormula(node any, tok Token) (ast.Formula, error) {
	if formula, ok := node.(ast.Formula); ok {
		return formula, nil
	}
	//
	return nil, syntaxErrorf(tok, "Expected a formula, found an arithmetic expression")
}

// Coerce a node into a term.
func (p *parser) asTerm(node any, tok Token) (ast.Term, error) {
	if term, ok := node.(ast.Term); ok {
		return term, nil
	}
	//
	return nil, syntaxErrorf(tok, "Expected an arithmetic expression, found a formula")
}

// Parse a formula in a context which requires one, such as the body of an
// assume or prove statement.
func (p *parser) parseFormula() (ast.Formula, error) {
	tok := p.current()
	//
	node, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	//
	return p.asFormula(node, tok)
}

// Implication binds loosest and associates to the right.
func (p *parser) parseImplies() (any, error) {
	tok := p.current()
	//
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	//
	if !p.match(TokImplies) {
		return left, nil
	}
	//
	p.advance()
	//
	lhs, err := p.asFormula(left, tok)
	if err != nil {
		return nil, err
	}
	//
	tok = p.current()
	//
	right, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	//
	rhs, err := p.asFormula(right, tok)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Implication{Lhs: lhs, Rhs: rhs}, nil
}

// Disjunction is n-ary: "a or b or c" parses as one node.
func (p *parser) parseOr() (any, error) {
	tok := p.current()
	//
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	//
	if !p.match(TokOr) {
		return first, nil
	}
	//
	args, err := p.parseConnectiveTail(first, tok, TokOr, p.parseAnd)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Disjunct{Args: args}, nil
}

// Conjunction is n-ary, like disjunction.
func (p *parser) parseAnd() (any, error) {
	tok := p.current()
	//
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	//
	if !p.match(TokAnd) {
		return first, nil
	}
	//
	args, err := p.parseConnectiveTail(first, tok, TokAnd, p.parseNot)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Conjunct{Args: args}, nil
}

// Collect the remaining operands of an n-ary connective whose first operand
// is already parsed.
func (p *parser) parseConnectiveTail(first any, firstTok Token, kind TokenKind,
	operand func() (any, error)) ([]ast.Formula, error) {
	//
	lhs, err := p.asFormula(first, firstTok)
	if err != nil {
		return nil, err
	}
	//
	args := []ast.Formula{lhs}
	//
	for p.match(kind) {
		p.advance()
		//
		tok := p.current()
		//
		node, err := operand()
		if err != nil {
			return nil, err
		}
		//
		next, err := p.asFormula(node, tok)
		if err != nil {
			return nil, err
		}
		//
		args = append(args, next)
	}
	//
	return args, nil
}

func (p *parser) parseNot() (any, error) {
	if !p.match(TokNot) {
		return p.parseQuantifier()
	}
	//
	p.advance()
	//
	tok := p.current()
	//
	node, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	//
	arg, err := p.asFormula(node, tok)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Negation{Arg: arg}, nil
}

// Parse a quantified formula: "forall x, y. body".  Bound names are also
// recorded as variables of the whole proof.
func (p *parser) parseQuantifier() (any, error) {
	if !p.match(TokForall, TokExists) {
		return p.parseRelation()
	}
	//
	kind := p.advance().Kind
	//
	var names []string
	//
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	//
	names = append(names, nameTok.Value)
	//
	for p.match(TokComma) {
		p.advance()
		//
		if nameTok, err = p.expect(TokIdent); err != nil {
			return nil, err
		}
		//
		names = append(names, nameTok.Value)
	}
	//
	if _, err := p.expect(TokDot); err != nil {
		return nil, err
	}
	//
	for _, name := range names {
		p.declare(name)
	}
	//
	body, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	//
	if kind == TokForall {
		return &ast.Forall{Vars: names, Body: body}, nil
	}
	//
	return &ast.Exists{Vars: names, Body: body}, nil
}

var relOps = map[TokenKind]string{
	TokLt: "<", TokLe: "<=", TokEq: "=", TokNe: "!=", TokGt: ">", TokGe: ">=",
}

// Parse a relational formula, including chained comparisons: "0 < x <= y"
// becomes the conjunction of 0 < x and x <= y.  With no relational operator
// present the expression itself is passed through.
func (p *parser) parseRelation() (any, error) {
	tok := p.current()
	//
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	//
	if !p.matchRel() {
		return left, nil
	}
	//
	lhs, err := p.asTerm(left, tok)
	if err != nil {
		return nil, err
	}
	//
	var comparisons []ast.Formula
	//
	for p.matchRel() {
		op := relOps[p.advance().Kind]
		//
		tok = p.current()
		//
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		rhs, err := p.asTerm(right, tok)
		if err != nil {
			return nil, err
		}
		//
		comparisons = append(comparisons, &ast.Rel{Op: op, Lhs: lhs, Rhs: rhs})
		// The right operand feeds the next comparison in the chain.
		lhs = rhs
	}
	//
	if len(comparisons) == 1 {
		return comparisons[0], nil
	}
	//
	return &ast.Conjunct{Args: comparisons}, nil
}

func (p *parser) matchRel() bool {
	return p.match(TokLt, TokLe, TokEq, TokNe, TokGt, TokGe)
}

// Additive expressions.
func (p *parser) parseExpr() (any, error) {
	return p.parseBinary(p.parseMul, map[TokenKind]string{TokPlus: "+", TokMinus: "-"})
}

// Multiplicative expressions.
func (p *parser) parseMul() (any, error) {
	return p.parseBinary(p.parsePower, map[TokenKind]string{TokStar: "*", TokSlash: "/"})
}

// Parse a left-associative chain of binary operators at one precedence
// level.
func (p *parser) parseBinary(operand func() (any, error), ops map[TokenKind]string) (any, error) {
	tok := p.current()
	//
	left, err := operand()
	if err != nil {
		return nil, err
	}
	//
	for {
		op, ok := ops[p.current().Kind]
		if !ok {
			return left, nil
		}
		//
		p.advance()
		//
		lhs, err := p.asTerm(left, tok)
		if err != nil {
			return nil, err
		}
		//
		tok = p.current()
		//
		right, err := operand()
		if err != nil {
			return nil, err
		}
		//
		rhs, err := p.asTerm(right, tok)
		if err != nil {
			return nil, err
		}
		//
		left = &ast.Binary{Op: op, Lhs: lhs, Rhs: rhs}
	}
}

// Exponentiation binds tighter than multiplication and associates to the
// right.
func (p *parser) parsePower() (any, error) {
	tok := p.current()
	//
	node, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	if !p.match(TokCaret) {
		return node, nil
	}
	//
	p.advance()
	//
	base, err := p.asTerm(node, tok)
	if err != nil {
		return nil, err
	}
	//
	tok = p.current()
	//
	right, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	//
	exp, err := p.asTerm(right, tok)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Pow{Base: base, Exp: exp}, nil
}

func (p *parser) parseUnary() (any, error) {
	if !p.match(TokMinus) {
		return p.parseAtom()
	}
	//
	p.advance()
	//
	tok := p.current()
	//
	node, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	arg, err := p.asTerm(node, tok)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Neg{Arg: arg}, nil
}

func (p *parser) parseAtom() (any, error) {
	tok := p.current()
	//
	switch tok.Kind {
	case TokNumber:
		p.advance()
		return &ast.Num{Value: tok.Value}, nil
	case TokIdent:
		p.advance()
		p.declare(tok.Value)
		//
		return &ast.Var{Name: tok.Value}, nil
	case TokFunc:
		return p.parseCall()
	case TokLParen:
		p.advance()
		// Parens may hold a full formula, not just a term.
		node, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		//
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		//
		return node, nil
	case TokPipe:
		// |x| is absolute value.
		p.advance()
		//
		inner := p.current()
		//
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		arg, err := p.asTerm(node, inner)
		if err != nil {
			return nil, err
		}
		//
		if _, err := p.expect(TokPipe); err != nil {
			return nil, err
		}
		//
		return &ast.Abs{Arg: arg}, nil
	case TokTrue:
		p.advance()
		return ast.True(), nil
	case TokFalse:
		p.advance()
		return ast.False(), nil
	}
	//
	return nil, syntaxErrorf(tok, "Unexpected token: %s (%q)", tok.Kind, tok.Value)
}

// Parse a built-in function call, checking arity at parse time.
func (p *parser) parseCall() (any, error) {
	funcTok := p.advance()
	//
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	//
	var args []ast.Term
	//
	for {
		tok := p.current()
		//
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		//
		arg, err := p.asTerm(node, tok)
		if err != nil {
			return nil, err
		}
		//
		args = append(args, arg)
		//
		if !p.match(TokComma) {
			break
		}
		//
		p.advance()
	}
	//
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	//
	switch funcTok.Value {
	case "abs":
		if len(args) != 1 {
			return nil, syntaxErrorf(funcTok, "abs() takes 1 argument, got %d", len(args))
		}
		//
		return &ast.Abs{Arg: args[0]}, nil
	case "sqrt":
		if len(args) != 1 {
			return nil, syntaxErrorf(funcTok, "sqrt() takes 1 argument, got %d", len(args))
		}
		//
		return &ast.Sqrt{Arg: args[0]}, nil
	case "min":
		if len(args) < 2 {
			return nil, syntaxErrorf(funcTok, "min() requires at least 2 arguments")
		}
		//
		return &ast.Min{Args: args}, nil
	default:
		if len(args) < 2 {
			return nil, syntaxErrorf(funcTok, "max() requires at least 2 arguments")
		}
		//
		return &ast.Max{Args: args}, nil
	}
}

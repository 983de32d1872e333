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

import "strings"

// Expr is an expression in the solver's constraint language, represented as an
// S-expression.  An expression is either an Atom (a symbol, numeral or string
// literal) or an Application of zero or more subexpressions.  Expressions are
// immutable once constructed.
type Expr interface {
	// IsAtom checks whether this expression is an atom.
	IsAtom() bool
	// String renders this expression in SMT-LIB 2 concrete syntax.
	String() string
}

// ===================================================================
// Atom
// ===================================================================

// Atom represents a terminating symbol or numeral.
type Atom struct {
	Value string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Atom)(nil)

// Sym constructs an atomic expression from a given symbol or numeral.
func Sym(value string) Expr {
	return &Atom{value}
}

// IsAtom sets that an Atom is an atom.
func (p *Atom) IsAtom() bool { return true }

func (p *Atom) String() string { return p.Value }

// ===================================================================
// Application
// ===================================================================

// Application represents the application of zero or more subexpressions, such
// as "(+ x 1)".  The first element is conventionally the operator.
type Application struct {
	Elements []Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Application)(nil)

// App constructs an application from the given elements.
func App(elements ...Expr) Expr {
	return &Application{elements}
}

// Fn constructs the application of a named operator to zero or more arguments.
func Fn(op string, args ...Expr) Expr {
	elements := make([]Expr, len(args)+1)
	elements[0] = Sym(op)
	copy(elements[1:], args)
	//
	return &Application{elements}
}

// IsAtom sets that an Application is not an atom.
func (p *Application) IsAtom() bool { return false }

// Len gets the number of elements in this application.
func (p *Application) Len() int { return len(p.Elements) }

func (p *Application) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, e := range p.Elements {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(e.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// MatchSymbol checks whether this application has at least n elements, with
// the first being an atom holding the given symbol.
func (p *Application) MatchSymbol(n int, symbol string) bool {
	if len(p.Elements) < n || n == 0 {
		return false
	}
	//
	if atom, ok := p.Elements[0].(*Atom); ok {
		return atom.Value == symbol
	}
	//
	return false
}

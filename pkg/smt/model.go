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

// Model represents a satisfying assignment held by the solver after a
// successful Check.  Values are extracted one expression at a time via the
// solver's value query, which completes partial models itself.
type Model struct {
	solver *Solver
}

// Eval determines the value a given expression takes under this model,
// rendered in the solver's numeral notation.  The completion flag is part of
// the decision-procedure contract; the underlying value query always
// completes partial models, so it has no further effect here.
func (p *Model) Eval(expr Expr, completion bool) (string, error) {
	if err := p.solver.send(fmt.Sprintf("(get-value (%s))", expr)); err != nil {
		return "", err
	}
	//
	reply, err := p.solver.read()
	if err != nil {
		return "", err
	}
	// Reply has the shape ((expr value))
	parsed, err := Parse(reply)
	if err != nil {
		return "", fmt.Errorf("malformed value reply: %w", err)
	}
	//
	outer, ok := parsed.(*Application)
	if !ok || outer.Len() != 1 {
		return "", fmt.Errorf("malformed value reply: %s", reply)
	}
	//
	binding, ok := outer.Elements[0].(*Application)
	if !ok || binding.Len() != 2 {
		return "", fmt.Errorf("malformed value reply: %s", reply)
	}
	//
	return renderNumeral(binding.Elements[1]), nil
}

// Render a value expression as a numeral string.  Atoms pass straight
// through; negation and rational applications are flattened to the usual
// "-n" and "a/b" notations.  Anything else (e.g. an algebraic root object)
// is rendered as-is.
func renderNumeral(value Expr) string {
	app, ok := value.(*Application)
	if !ok {
		return value.String()
	}
	//
	if app.MatchSymbol(2, "-") && app.Len() == 2 {
		return "-" + renderNumeral(app.Elements[1])
	}
	//
	if app.MatchSymbol(3, "/") && app.Len() == 3 {
		return renderNumeral(app.Elements[1]) + "/" + renderNumeral(app.Elements[2])
	}
	//
	return app.String()
}

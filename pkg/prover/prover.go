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

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/smt"
)

// ValidateRequest checks that a request is structurally complete.  Used to
// reject a claimless request before any solver is launched.
func ValidateRequest(request *ast.Request) error {
	if request.Claim == nil {
		return &RequestError{"Missing 'claim' field"}
	}
	//
	return nil
}

// Prove checks one proof obligation against a fresh solver instance, which
// is released before returning.  Every failure mode, including an
// unlaunchable solver, yields a well-formed error result rather than an
// error return.
func Prove(request *ast.Request) *ast.Result {
	if err := ValidateRequest(request); err != nil {
		return ast.ErrorResult(err.Error())
	}
	//
	solver, err := smt.NewSolver()
	if err != nil {
		return ast.ErrorResult((&ProcedureError{err}).Error())
	}
	//
	defer solver.Close()
	//
	return ProveWith(solver, request)
}

// ProveWith checks one proof obligation against the given solver, which must
// be fresh: the obligation's constraints are asserted into it and remain
// there afterwards.  The claim is established by refutation: it holds iff
// the assumptions together with its negation are unsatisfiable.
func ProveWith(solver *smt.Solver, request *ast.Request) *ast.Result {
	result, err := run(solver, request)
	if err == nil {
		return result
	}
	// Classify the failure.
	switch err.(type) {
	case *ast.TermError, *ast.FormulaError, *RequestError:
		return ast.ErrorResult(err.Error())
	}
	//
	return ast.ErrorResult(procedureError(err).Error())
}

func run(solver *smt.Solver, request *ast.Request) (*ast.Result, error) {
	if err := ValidateRequest(request); err != nil {
		return nil, err
	}
	//
	env := NewEnvironment(request.VarTypes)
	// Explicitly declared variables come first, so the type map applies to
	// them even if a quantifier later reuses a name.
	for _, name := range request.Vars {
		env.GetOrCreate(name)
	}
	//
	session := &session{solver, env}
	//
	for _, assumption := range request.Assumptions {
		if err := session.assert(assumption); err != nil {
			return nil, err
		}
	}
	// Verify intermediate steps before the claim; proven steps accumulate
	// into the assumption context.
	stepResults, err := session.runSteps(request.Steps)
	if err != nil {
		return nil, err
	}
	// Refute the claim itself.
	claim, err := TranslateFormula(request.Claim, env)
	if err != nil {
		return nil, err
	}
	//
	if err := session.flush(); err != nil {
		return nil, err
	}
	//
	if err := solver.Assert(smt.Fn("not", claim)); err != nil {
		return nil, procedureError(err)
	}
	//
	status, err := solver.Check()
	if err != nil {
		return nil, procedureError(err)
	}
	//
	result := &ast.Result{StepResults: stepResults}
	//
	switch status {
	case smt.StatusUnsat:
		result.Ok = true
		result.Status = ast.StatusProven
	case smt.StatusSat:
		result.Status = ast.StatusDisproven
		//
		model, err := counterexample(solver.Model(), env)
		if err != nil {
			return nil, err
		}
		//
		result.Model = model
	default:
		result.Status = ast.StatusUnknown
		result.Message = unknownMessage(solver)
	}
	//
	return result, nil
}

// session holds the moving parts of one proof obligation: the solver being
// driven and the environment whose pending declarations must reach the
// solver before any constraint referring to them.
type session struct {
	solver *smt.Solver
	env    *Environment
}

// Flush pending variable declarations to the solver.  This must happen
// outside any backtracking point whose pop should leave the declarations
// standing.
func (p *session) flush() error {
	for _, handle := range p.env.Pending() {
		if err := p.solver.DeclareConst(handle.Name, handle.Sort); err != nil {
			return procedureError(err)
		}
	}
	//
	return nil
}

// Assert a formula into the solver's current context.
func (p *session) assert(formula ast.Formula) error {
	expr, err := TranslateFormula(formula, p.env)
	if err != nil {
		return err
	}
	//
	if err := p.flush(); err != nil {
		return err
	}
	//
	if err := p.solver.Assert(expr); err != nil {
		return procedureError(err)
	}
	//
	return nil
}

// Attempt to refute a formula under the current context: assert its negation
// within a backtracking point and check satisfiability.  Unsat means the
// formula follows from the context.  On sat, the witnessing assignment is
// extracted before the backtracking point is popped.
func (p *session) refute(formula ast.Formula) (smt.Status, map[string]string, error) {
	expr, err := TranslateFormula(formula, p.env)
	if err != nil {
		return smt.StatusUnknown, nil, err
	}
	//
	if err := p.flush(); err != nil {
		return smt.StatusUnknown, nil, err
	}
	//
	if err := p.solver.Push(); err != nil {
		return smt.StatusUnknown, nil, procedureError(err)
	}
	//
	if err := p.solver.Assert(smt.Fn("not", expr)); err != nil {
		return smt.StatusUnknown, nil, procedureError(err)
	}
	//
	status, err := p.solver.Check()
	if err != nil {
		return smt.StatusUnknown, nil, procedureError(err)
	}
	//
	var model map[string]string
	//
	if status == smt.StatusSat {
		if model, err = counterexample(p.solver.Model(), p.env); err != nil {
			return smt.StatusUnknown, nil, err
		}
	}
	//
	if err := p.solver.Pop(); err != nil {
		return smt.StatusUnknown, nil, procedureError(err)
	}
	//
	return status, model, nil
}

// Verify the intermediate steps of a request in order.  A proven step is
// asserted into the context for the benefit of later steps and the final
// claim; a failed step is reported but does not abort the request.
func (p *session) runSteps(steps []ast.Step) ([]ast.StepResult, error) {
	var results []ast.StepResult
	//
	for i, step := range steps {
		number := i + 1
		//
		if step.IsCases {
			result, err := p.runCases(number, step.Cases)
			if err != nil {
				return nil, err
			}
			// A cases step without cases yields no verdict.
			if result != nil {
				results = append(results, *result)
			}
			//
			continue
		}
		//
		if step.Formula == nil {
			results = append(results, ast.StepResult{Step: number, Error: "Step missing formula"})
			continue
		}
		//
		status, model, err := p.refute(step.Formula)
		if err != nil {
			return nil, err
		}
		//
		switch status {
		case smt.StatusUnsat:
			results = append(results, ast.StepResult{Step: number, Ok: true, Status: ast.StatusProven})
			// The step now holds, so later steps may rely on it.
			if err := p.assert(step.Formula); err != nil {
				return nil, err
			}
		case smt.StatusSat:
			results = append(results, ast.StepResult{Step: number, Status: ast.StatusDisproven, Model: model})
		default:
			results = append(results, ast.StepResult{Step: number, Status: ast.StatusUnknown})
		}
	}
	//
	return results, nil
}

// Verify a proof-by-cases step: each case's formulas are checked under its
// condition, and the conditions together must cover every possibility
// permitted by the current assumptions.
func (p *session) runCases(number int, cases []ast.Case) (*ast.StepResult, error) {
	if len(cases) == 0 {
		return nil, nil
	}
	//
	conditions := make([]ast.Formula, len(cases))
	caseResults := make([]ast.CaseResult, len(cases))
	//
	for i, c := range cases {
		conditions[i] = c.Condition
		//
		if err := p.runCase(c); err != nil {
			return nil, err
		}
		//
		caseResults[i] = ast.CaseResult{Case: i + 1, Ok: true}
	}
	// Exhaustiveness: the disjunction of conditions must follow from the
	// current assumptions.
	status, _, err := p.refute(&ast.Disjunct{Args: conditions})
	if err != nil {
		return nil, err
	}
	//
	if status != smt.StatusUnsat {
		return &ast.StepResult{
			Step:    number,
			Type:    "cases",
			Status:  ast.StatusNonExhaustive,
			Message: "Cases may not cover all possibilities",
		}, nil
	}
	//
	return &ast.StepResult{
		Step:        number,
		Type:        "cases",
		Ok:          true,
		Status:      ast.StatusProven,
		CaseResults: caseResults,
	}, nil
}

// Verify the formulas of one case under its condition.  The condition holds
// only within the case, so it is asserted inside a backtracking point; each
// formula that follows is asserted there too, feeding later formulas of the
// same case.
func (p *session) runCase(c ast.Case) error {
	condition, err := TranslateFormula(c.Condition, p.env)
	if err != nil {
		return err
	}
	// Bring every variable of this case into scope now, so that its
	// declaration lands outside the backtracking point and survives the pop.
	for _, formula := range c.Steps {
		if _, err := TranslateFormula(formula, p.env); err != nil {
			return err
		}
	}
	//
	if err := p.flush(); err != nil {
		return err
	}
	//
	if err := p.solver.Push(); err != nil {
		return procedureError(err)
	}
	//
	if err := p.solver.Assert(condition); err != nil {
		return procedureError(err)
	}
	//
	for _, formula := range c.Steps {
		status, _, err := p.refute(formula)
		if err != nil {
			return err
		}
		//
		if status == smt.StatusUnsat {
			if err := p.assert(formula); err != nil {
				return err
			}
		}
	}
	//
	if err := p.solver.Pop(); err != nil {
		return procedureError(err)
	}
	//
	return nil
}

// Construct the explanatory message for an undecided check, folding in the
// solver's own reason where it offers one.
func unknownMessage(solver *smt.Solver) string {
	message := "The decision procedure could not determine satisfiability"
	//
	if reason := solver.ReasonUnknown(); reason != "" {
		message = fmt.Sprintf("%s (%s)", message, reason)
	}
	//
	return message
}

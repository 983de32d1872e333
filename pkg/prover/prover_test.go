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
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/smt"
)

// x > 0 entails x >= 0
func TestProve_1(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x"],
		"assumptions": [{"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}],
		"claim": {"type":"rel","op":">=","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}
	}`)
	//
	checkProven(t, result)
}

// nothing entails x > 0, and the counterexample sets x at most zero
func TestProve_2(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x"],
		"assumptions": [],
		"claim": {"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}
	}`)
	//
	if result.Status != ast.StatusDisproven || result.Ok {
		t.Fatalf("expected disproven, got %v", result)
	}
	//
	value, ok := result.Model["x"]
	if !ok {
		t.Fatalf("expected a counterexample for x, got %v", result.Model)
	}
	//
	if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && v > 0 {
		t.Errorf("counterexample %s does not refute x > 0", value)
	}
}

// 1 + 2 = 3
func TestProve_3(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"claim": {"type":"rel","op":"=",
			"lhs":{"type":"bin","op":"+","lhs":{"type":"num","value":"1"},"rhs":{"type":"num","value":"2"}},
			"rhs":{"type":"num","value":"3"}}
	}`)
	//
	checkProven(t, result)
}

// a missing claim is an error, solver or no solver
func TestProve_4(t *testing.T) {
	result := proveJSON(t, `{}`)
	//
	checkError(t, result, "Missing 'claim' field")
}

// an unknown formula type is an error naming the tag
func TestProve_5(t *testing.T) {
	result := proveJSON(t, `{"claim": {"type":"bogus"}}`)
	//
	checkError(t, result, "Unknown formula type: bogus")
}

// min(1, 2) > 0
func TestProve_6(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"claim": {"type":"rel","op":">",
			"lhs":{"type":"min","args":[{"type":"num","value":"1"},{"type":"num","value":"2"}]},
			"rhs":{"type":"num","value":"0"}}
	}`)
	//
	checkProven(t, result)
}

// an empty conjunction claim is provable from anything
func TestProve_7(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x"],
		"assumptions": [{"type":"rel","op":"<","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}],
		"claim": {"type":"and","args":[]}
	}`)
	//
	checkProven(t, result)
}

// an empty disjunction assumption proves any claim vacuously
func TestProve_8(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x"],
		"assumptions": [{"type":"or","args":[]}],
		"claim": {"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}
	}`)
	//
	checkProven(t, result)
}

// integer typing matters: n > 0 entails n >= 1 over Int
func TestProve_9(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["n"],
		"var_types": {"n": "Int"},
		"assumptions": [{"type":"rel","op":">","lhs":{"type":"var","name":"n"},"rhs":{"type":"num","value":"0"}}],
		"claim": {"type":"rel","op":">=","lhs":{"type":"var","name":"n"},"rhs":{"type":"num","value":"1"}}
	}`)
	//
	checkProven(t, result)
}

// abs(x) >= 0 unconditionally
func TestProve_10(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"claim": {"type":"rel","op":">=",
			"lhs":{"type":"abs","arg":{"type":"var","name":"x"}},
			"rhs":{"type":"num","value":"0"}}
	}`)
	//
	checkProven(t, result)
}

// min yields the same value whatever the argument order
func TestProve_11(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"claim": {"type":"rel","op":"=",
			"lhs":{"type":"min","args":[{"type":"num","value":"2"},{"type":"num","value":"1"},{"type":"num","value":"3"}]},
			"rhs":{"type":"min","args":[{"type":"num","value":"3"},{"type":"num","value":"1"},{"type":"num","value":"2"}]}}
	}`)
	//
	checkProven(t, result)
}

// likewise max, including over unconstrained variables
func TestProve_12(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x", "y", "z"],
		"claim": {"type":"rel","op":"=",
			"lhs":{"type":"max","args":[{"type":"var","name":"x"},{"type":"var","name":"y"},{"type":"var","name":"z"}]},
			"rhs":{"type":"max","args":[{"type":"var","name":"z"},{"type":"var","name":"x"},{"type":"var","name":"y"}]}}
	}`)
	//
	checkProven(t, result)
}

// a proven step feeds the final claim
func TestProve_Steps1(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["n"],
		"var_types": {"n": "Int"},
		"assumptions": [{"type":"rel","op":">","lhs":{"type":"var","name":"n"},"rhs":{"type":"num","value":"0"}}],
		"steps": [{"formula":{"type":"rel","op":">=","lhs":{"type":"var","name":"n"},"rhs":{"type":"num","value":"1"}}}],
		"claim": {"type":"rel","op":">=","lhs":{"type":"var","name":"n"},"rhs":{"type":"num","value":"1"}}
	}`)
	//
	checkProven(t, result)
	//
	if len(result.StepResults) != 1 {
		t.Fatalf("expected one step result, got %v", result.StepResults)
	}
	//
	step := result.StepResults[0]
	if !step.Ok || step.Status != ast.StatusProven || step.Step != 1 {
		t.Errorf("unexpected step result: %v", step)
	}
}

// a disproven step carries its own counterexample, but the claim is still
// checked
func TestProve_Steps2(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x"],
		"assumptions": [{"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}],
		"steps": [{"formula":{"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"1"}}}],
		"claim": {"type":"rel","op":">=","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}
	}`)
	//
	checkProven(t, result)
	//
	if len(result.StepResults) != 1 {
		t.Fatalf("expected one step result, got %v", result.StepResults)
	}
	//
	step := result.StepResults[0]
	if step.Ok || step.Status != ast.StatusDisproven || len(step.Model) == 0 {
		t.Errorf("unexpected step result: %v", step)
	}
}

// a step without a formula is reported but does not abort
func TestProve_Steps3(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"steps": [{}],
		"claim": {"type":"and","args":[]}
	}`)
	//
	checkProven(t, result)
	//
	if len(result.StepResults) != 1 || result.StepResults[0].Error != "Step missing formula" {
		t.Errorf("unexpected step results: %v", result.StepResults)
	}
}

// exhaustive case analysis proves x*x > 0 for nonzero x
func TestProve_Cases1(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x"],
		"assumptions": [{"type":"rel","op":"!=","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}],
		"steps": [{"type":"cases","cases":[
			{"condition":{"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}},
			 "steps":[{"formula":{"type":"rel","op":">","lhs":{"type":"bin","op":"*","lhs":{"type":"var","name":"x"},"rhs":{"type":"var","name":"x"}},"rhs":{"type":"num","value":"0"}}}]},
			{"condition":{"type":"rel","op":"<","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}},
			 "steps":[{"formula":{"type":"rel","op":">","lhs":{"type":"bin","op":"*","lhs":{"type":"var","name":"x"},"rhs":{"type":"var","name":"x"}},"rhs":{"type":"num","value":"0"}}}]}
		]}],
		"claim": {"type":"rel","op":">","lhs":{"type":"bin","op":"*","lhs":{"type":"var","name":"x"},"rhs":{"type":"var","name":"x"}},"rhs":{"type":"num","value":"0"}}
	}`)
	//
	checkProven(t, result)
	//
	if len(result.StepResults) != 1 {
		t.Fatalf("expected one step result, got %v", result.StepResults)
	}
	//
	step := result.StepResults[0]
	if !step.Ok || step.Type != "cases" || len(step.CaseResults) != 2 {
		t.Errorf("unexpected step result: %v", step)
	}
}

// cases which fail to cover all possibilities are flagged
func TestProve_Cases2(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"vars": ["x"],
		"steps": [{"type":"cases","cases":[
			{"condition":{"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}},"steps":[]}
		]}],
		"claim": {"type":"and","args":[]}
	}`)
	//
	checkProven(t, result)
	//
	if len(result.StepResults) != 1 {
		t.Fatalf("expected one step result, got %v", result.StepResults)
	}
	//
	step := result.StepResults[0]
	if step.Ok || step.Status != ast.StatusNonExhaustive {
		t.Errorf("unexpected step result: %v", step)
	}
	//
	if step.Message != "Cases may not cover all possibilities" {
		t.Errorf("unexpected message: %s", step.Message)
	}
}

// quantified claims work, and quantifier-bound names report model values
func TestProve_Quantifier1(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"claim": {"type":"forall","vars":["x"],
			"body":{"type":"rel","op":">=",
				"lhs":{"type":"abs","arg":{"type":"var","name":"x"}},
				"rhs":{"type":"num","value":"0"}}}
	}`)
	//
	checkProven(t, result)
}

func TestProve_Quantifier2(t *testing.T) {
	requireSolver(t)
	//
	result := proveJSON(t, `{
		"claim": {"type":"exists","vars":["x"],
			"body":{"type":"rel","op":">","lhs":{"type":"var","name":"x"},"rhs":{"type":"num","value":"0"}}}
	}`)
	//
	checkProven(t, result)
}

// counterexamples render one variable per line, in lexicographic order
func TestFormatCounterexample_1(t *testing.T) {
	report := FormatCounterexample(map[string]string{"y": "1/2", "x": "-1"})
	expected := "Counterexample found:\n  x = -1\n  y = 1/2"
	//
	if report != expected {
		t.Errorf("%q != %q", report, expected)
	}
}

func TestFormatCounterexample_2(t *testing.T) {
	if report := FormatCounterexample(nil); report != "Counterexample found:" {
		t.Errorf("unexpected report: %q", report)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func requireSolver(t *testing.T) {
	if _, err := exec.LookPath(smt.Binary()); err != nil {
		t.Skipf("solver %q not available", smt.Binary())
	}
}

// Decode and prove a request, converting decode failures into error results
// exactly as the process boundary does.
func proveJSON(t *testing.T, input string) *ast.Result {
	request, err := ast.DecodeRequest([]byte(input))
	if err != nil {
		return ast.ErrorResult(err.Error())
	}
	//
	return Prove(request)
}

func checkProven(t *testing.T, result *ast.Result) {
	if !result.Ok || result.Status != ast.StatusProven {
		t.Fatalf("expected proven, got %v", result)
	}
}

func checkError(t *testing.T, result *ast.Result, message string) {
	if result.Ok || result.Status != ast.StatusError {
		t.Fatalf("expected an error result, got %v", result)
	}
	//
	if result.Error != message {
		t.Errorf("%q != %q", result.Error, message)
	}
}

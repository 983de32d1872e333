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
package ast

// Status describes the verdict on a proof obligation.
type Status string

const (
	// StatusProven indicates the claim follows from the assumptions.
	StatusProven Status = "proven"
	// StatusDisproven indicates a counterexample was found.
	StatusDisproven Status = "disproven"
	// StatusUnknown indicates the decision procedure could not decide.
	StatusUnknown Status = "unknown"
	// StatusError indicates the request itself was defective.
	StatusError Status = "error"
	// StatusNonExhaustive indicates the conditions of a cases step may not
	// cover all possibilities.  Only ever appears on a step result.
	StatusNonExhaustive Status = "non-exhaustive"
)

// Result is the response envelope for one proof request.  Exactly one result
// is produced per request, whatever happens.
type Result struct {
	Ok     bool   `json:"ok"`
	Status Status `json:"status"`
	// Counterexample assignment; present iff status is disproven.
	Model map[string]string `json:"model,omitempty"`
	// Explanatory message; present iff status is unknown.
	Message string `json:"message,omitempty"`
	// Failure description; present iff status is error.
	Error string `json:"error,omitempty"`
	// Per-step verdicts; present iff the request carried steps.
	StepResults []StepResult `json:"step_results,omitempty"`
}

// StepResult is the verdict on one intermediate proof step.
type StepResult struct {
	// Step number, counting from 1.
	Step int    `json:"step"`
	Type string `json:"type,omitempty"`
	Ok   bool   `json:"ok"`
	// Verdict for this step; empty when the step was malformed.
	Status      Status            `json:"status,omitempty"`
	Model       map[string]string `json:"model,omitempty"`
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
	CaseResults []CaseResult      `json:"case_results,omitempty"`
}

// CaseResult is the verdict on one branch of a proof-by-cases step.
type CaseResult struct {
	// Case number, counting from 1.
	Case int  `json:"case"`
	Ok   bool `json:"ok"`
}

// ErrorResult constructs an error verdict carrying the given message.
func ErrorResult(message string) *Result {
	return &Result{Ok: false, Status: StatusError, Error: message}
}

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

import (
	"encoding/json"
	"fmt"
)

// TypeInt is the name of the integer domain in a variable type map.  Any
// other entry (and any absent entry) is treated as the real domain.
const TypeInt = "Int"

// TypeReal is the name of the real domain in a variable type map.
const TypeReal = "Real"

// Request describes one proof obligation: a set of declared variables,
// optional typing information, assumptions, optional intermediate steps, and
// the claim to be established.
type Request struct {
	// Names of declared free variables.
	Vars []string `json:"vars,omitempty"`
	// Optional mapping of variable names to their domain.
	VarTypes map[string]string `json:"var_types,omitempty"`
	// Formulas assumed to hold.
	Assumptions []Formula `json:"assumptions"`
	// Optional intermediate proof steps, verified in order before the claim.
	Steps []Step `json:"steps,omitempty"`
	// The claim to prove; nil when absent from the request.
	Claim Formula `json:"claim"`
}

// Step is one intermediate proof step: either a single formula to establish
// from the assumptions accumulated so far, or a proof-by-cases block.
type Step struct {
	// Formula to establish.  Nil for a cases step, or when the step was
	// missing its formula entirely (reported at proving time).
	Formula Formula
	// Cases of a proof-by-cases step.
	Cases []Case
	// IsCases distinguishes an (possibly empty) cases step from a plain one.
	IsCases bool
}

// Case is one branch of a proof-by-cases step: a condition assumed within
// the branch, and the formulas established under it.
type Case struct {
	Condition Formula
	Steps     []Formula
}

// MarshalJSON renders a plain step as {"formula": ...} and a cases step as a
// tagged object, mirroring the shapes accepted by decoding.
func (p Step) MarshalJSON() ([]byte, error) {
	if p.IsCases {
		return json.Marshal(struct {
			Type  string `json:"type"`
			Cases []Case `json:"cases"`
		}{"cases", p.Cases})
	}
	//
	return json.Marshal(struct {
		Formula Formula `json:"formula"`
	}{p.Formula})
}

// MarshalJSON renders this case with its steps in wrapped form.
func (p Case) MarshalJSON() ([]byte, error) {
	steps := make([]stepFormula, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = stepFormula{s}
	}
	//
	return json.Marshal(struct {
		Condition Formula       `json:"condition"`
		Steps     []stepFormula `json:"steps"`
	}{p.Condition, steps})
}

type stepFormula struct {
	Formula Formula `json:"formula"`
}

// DecodeRequest decodes a request envelope.  Unparseable JSON produces an
// error; malformed term or formula nodes surface as TermError or
// FormulaError; a missing claim is left as a nil Claim for the orchestrator
// to reject.
func DecodeRequest(data []byte) (*Request, error) {
	var envelope struct {
		Vars        []string          `json:"vars"`
		VarTypes    map[string]string `json:"var_types"`
		Assumptions []json.RawMessage `json:"assumptions"`
		Steps       []json.RawMessage `json:"steps"`
		Claim       json.RawMessage   `json:"claim"`
	}
	//
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("Invalid JSON: %w", err)
	}
	//
	request := &Request{
		Vars:     envelope.Vars,
		VarTypes: envelope.VarTypes,
	}
	//
	for _, raw := range envelope.Assumptions {
		assumption, err := DecodeFormula(raw)
		if err != nil {
			return nil, err
		}
		//
		request.Assumptions = append(request.Assumptions, assumption)
	}
	//
	for _, raw := range envelope.Steps {
		step, err := decodeStep(raw)
		if err != nil {
			return nil, err
		}
		//
		request.Steps = append(request.Steps, step)
	}
	//
	if envelope.Claim != nil && !isNull(envelope.Claim) {
		claim, err := DecodeFormula(envelope.Claim)
		if err != nil {
			return nil, err
		}
		//
		request.Claim = claim
	}
	//
	return request, nil
}

func decodeStep(data json.RawMessage) (Step, error) {
	fields, ok := asObject(data)
	if !ok {
		return Step{}, formulaErrorf("Step must be an object, got: %s", jsonKind(data))
	}
	// Cases step?
	if ty, ok := typeTag(fields); ok && ty == "cases" {
		return decodeCases(fields)
	}
	// Plain step; a missing formula is tolerated here and reported as a
	// failed step by the orchestrator.
	raw, ok := fields["formula"]
	if !ok || isNull(raw) {
		return Step{}, nil
	}
	//
	formula, err := DecodeFormula(raw)
	if err != nil {
		return Step{}, err
	}
	//
	return Step{Formula: formula}, nil
}

func decodeCases(fields map[string]json.RawMessage) (Step, error) {
	var elements []json.RawMessage
	//
	if raw, ok := fields["cases"]; ok {
		if err := json.Unmarshal(raw, &elements); err != nil {
			return Step{}, formulaErrorf("Cases step has malformed 'cases' field")
		}
	}
	//
	step := Step{IsCases: true}
	//
	for _, element := range elements {
		caseFields, ok := asObject(element)
		if !ok {
			return Step{}, formulaErrorf("Case must be an object, got: %s", jsonKind(element))
		}
		//
		rawCondition, ok := caseFields["condition"]
		if !ok {
			return Step{}, formulaErrorf("Case missing 'condition' field")
		}
		//
		condition, err := DecodeFormula(rawCondition)
		if err != nil {
			return Step{}, err
		}
		//
		c := Case{Condition: condition}
		// Decode the formulas established within this case.
		var caseSteps []json.RawMessage
		//
		if raw, ok := caseFields["steps"]; ok {
			if err := json.Unmarshal(raw, &caseSteps); err != nil {
				return Step{}, formulaErrorf("Case has malformed 'steps' field")
			}
		}
		//
		for _, rawStep := range caseSteps {
			stepFields, ok := asObject(rawStep)
			if !ok {
				continue
			}
			//
			raw, ok := stepFields["formula"]
			if !ok || isNull(raw) {
				continue
			}
			//
			formula, err := DecodeFormula(raw)
			if err != nil {
				return Step{}, err
			}
			//
			c.Steps = append(c.Steps, formula)
		}
		//
		step.Cases = append(step.Cases, c)
	}
	//
	return step, nil
}

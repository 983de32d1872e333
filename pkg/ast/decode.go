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
	"bytes"
	"encoding/json"
)

// DecodeTerm decodes a tagged JSON object into a term, producing a TermError
// if the node is malformed: not an object, missing or unrecognised type tag,
// missing required field, or too few arguments.
func DecodeTerm(data json.RawMessage) (Term, error) {
	fields, ok := asObject(data)
	if !ok {
		return nil, termErrorf("Term must be an object, got: %s", jsonKind(data))
	}
	//
	ty, ok := typeTag(fields)
	if !ok {
		return nil, termErrorf("Term missing 'type' field: %s", string(data))
	}
	//
	switch ty {
	case "num":
		return decodeNum(fields)
	case "var":
		name, ok := stringField(fields, "name")
		if !ok {
			return nil, termErrorf("Variable term missing 'name' field")
		}
		//
		return &Var{name}, nil
	case "bin":
		return decodeBinary(fields)
	case "neg":
		arg, err := termField(fields, "arg", "Neg")
		if err != nil {
			return nil, err
		}
		//
		return &Neg{arg}, nil
	case "abs":
		arg, err := termField(fields, "arg", "Abs")
		if err != nil {
			return nil, err
		}
		//
		return &Abs{arg}, nil
	case "sqrt":
		arg, err := termField(fields, "arg", "Sqrt")
		if err != nil {
			return nil, err
		}
		//
		return &Sqrt{arg}, nil
	case "pow":
		return decodePow(fields)
	case "min":
		args, err := termArgs(fields, "Min")
		if err != nil {
			return nil, err
		}
		//
		return &Min{args}, nil
	case "max":
		args, err := termArgs(fields, "Max")
		if err != nil {
			return nil, err
		}
		//
		return &Max{args}, nil
	}
	//
	return nil, termErrorf("Unknown term type: %s", ty)
}

// DecodeFormula decodes a tagged JSON object into a formula, producing a
// FormulaError under the same categories of malformed input as DecodeTerm.
func DecodeFormula(data json.RawMessage) (Formula, error) {
	fields, ok := asObject(data)
	if !ok {
		return nil, formulaErrorf("Formula must be an object, got: %s", jsonKind(data))
	}
	//
	ty, ok := typeTag(fields)
	if !ok {
		return nil, formulaErrorf("Formula missing 'type' field: %s", string(data))
	}
	//
	switch ty {
	case "rel":
		return decodeRel(fields)
	case "and":
		args, err := formulaArgs(fields, "And")
		if err != nil {
			return nil, err
		}
		//
		return &Conjunct{args}, nil
	case "or":
		args, err := formulaArgs(fields, "Or")
		if err != nil {
			return nil, err
		}
		//
		return &Disjunct{args}, nil
	case "not":
		raw, ok := fields["arg"]
		if !ok {
			return nil, formulaErrorf("Not formula missing 'arg' field")
		}
		//
		arg, err := DecodeFormula(raw)
		if err != nil {
			return nil, err
		}
		//
		return &Negation{arg}, nil
	case "implies":
		lhs, rhs, err := formulaPair(fields, "Implies")
		if err != nil {
			return nil, err
		}
		//
		return &Implication{lhs, rhs}, nil
	case "forall":
		vars, body, err := decodeQuantifier(fields, "Forall")
		if err != nil {
			return nil, err
		}
		//
		return &Forall{vars, body}, nil
	case "exists":
		vars, body, err := decodeQuantifier(fields, "Exists")
		if err != nil {
			return nil, err
		}
		//
		return &Exists{vars, body}, nil
	}
	//
	return nil, formulaErrorf("Unknown formula type: %s", ty)
}

func decodeNum(fields map[string]json.RawMessage) (Term, error) {
	raw, ok := fields["value"]
	if !ok || isNull(raw) {
		return nil, termErrorf("Numeric term missing 'value' field")
	}
	// Accept string, integer and floating forms.
	var value string
	if err := json.Unmarshal(raw, &value); err == nil {
		return &Num{value}, nil
	}
	//
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return &Num{number.String()}, nil
	}
	//
	return nil, termErrorf("Invalid numeric literal: %s", string(raw))
}

func decodeBinary(fields map[string]json.RawMessage) (Term, error) {
	op, ok := stringField(fields, "op")
	if !ok {
		return nil, termErrorf("Binary term missing 'op' field")
	}
	//
	rawLhs, okLhs := fields["lhs"]
	rawRhs, okRhs := fields["rhs"]
	//
	if !okLhs || !okRhs {
		return nil, termErrorf("Binary term missing 'lhs' or 'rhs' field")
	}
	//
	switch op {
	case "+", "-", "*", "/":
		// fine
	default:
		return nil, termErrorf("Unknown binary operator: %s", op)
	}
	//
	lhs, err := DecodeTerm(rawLhs)
	if err != nil {
		return nil, err
	}
	//
	rhs, err := DecodeTerm(rawRhs)
	if err != nil {
		return nil, err
	}
	//
	return &Binary{op, lhs, rhs}, nil
}

func decodePow(fields map[string]json.RawMessage) (Term, error) {
	rawBase, okBase := fields["base"]
	rawExp, okExp := fields["exp"]
	//
	if !okBase || !okExp {
		return nil, termErrorf("Pow term missing 'base' or 'exp' field")
	}
	//
	base, err := DecodeTerm(rawBase)
	if err != nil {
		return nil, err
	}
	//
	exp, err := DecodeTerm(rawExp)
	if err != nil {
		return nil, err
	}
	//
	return &Pow{base, exp}, nil
}

func decodeRel(fields map[string]json.RawMessage) (Formula, error) {
	op, ok := stringField(fields, "op")
	if !ok {
		return nil, formulaErrorf("Relational formula missing 'op' field")
	}
	//
	rawLhs, okLhs := fields["lhs"]
	rawRhs, okRhs := fields["rhs"]
	//
	if !okLhs || !okRhs {
		return nil, formulaErrorf("Relational formula missing 'lhs' or 'rhs' field")
	}
	//
	switch op {
	case "<", "<=", "=", "!=", ">", ">=":
		// fine
	default:
		return nil, formulaErrorf("Unknown relational operator: %s", op)
	}
	//
	lhs, err := DecodeTerm(rawLhs)
	if err != nil {
		return nil, err
	}
	//
	rhs, err := DecodeTerm(rawRhs)
	if err != nil {
		return nil, err
	}
	//
	return &Rel{op, lhs, rhs}, nil
}

func decodeQuantifier(fields map[string]json.RawMessage, kind string) ([]string, Formula, error) {
	var vars []string
	//
	raw, ok := fields["vars"]
	if ok {
		if err := json.Unmarshal(raw, &vars); err != nil {
			vars = nil
		}
	}
	//
	if len(vars) == 0 {
		return nil, nil, formulaErrorf("%s formula missing 'vars' field", kind)
	}
	//
	rawBody, ok := fields["body"]
	if !ok {
		return nil, nil, formulaErrorf("%s formula missing 'body' field", kind)
	}
	//
	body, err := DecodeFormula(rawBody)
	if err != nil {
		return nil, nil, err
	}
	//
	return vars, body, nil
}

// ===================================================================
// Helpers
// ===================================================================

func asObject(data json.RawMessage) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	//
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, false
	}
	//
	return fields, true
}

func typeTag(fields map[string]json.RawMessage) (string, bool) {
	return stringField(fields, "type")
}

func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok {
		return "", false
	}
	//
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	//
	return value, true
}

func termField(fields map[string]json.RawMessage, name, kind string) (Term, error) {
	raw, ok := fields[name]
	if !ok {
		return nil, termErrorf("%s term missing '%s' field", kind, name)
	}
	//
	return DecodeTerm(raw)
}

func termArgs(fields map[string]json.RawMessage, kind string) ([]Term, error) {
	var elements []json.RawMessage
	//
	if raw, ok := fields["args"]; ok {
		if err := json.Unmarshal(raw, &elements); err != nil {
			elements = nil
		}
	}
	//
	if len(elements) < 2 {
		return nil, termErrorf("%s requires at least 2 arguments", kind)
	}
	//
	args := make([]Term, len(elements))
	//
	for i, e := range elements {
		arg, err := DecodeTerm(e)
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	return args, nil
}

func formulaArgs(fields map[string]json.RawMessage, kind string) ([]Formula, error) {
	raw, ok := fields["args"]
	if !ok {
		return nil, formulaErrorf("%s formula missing 'args' field", kind)
	}
	//
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, formulaErrorf("%s formula missing 'args' field", kind)
	}
	//
	args := make([]Formula, len(elements))
	//
	for i, e := range elements {
		arg, err := DecodeFormula(e)
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	return args, nil
}

func formulaPair(fields map[string]json.RawMessage, kind string) (Formula, Formula, error) {
	rawLhs, okLhs := fields["lhs"]
	rawRhs, okRhs := fields["rhs"]
	//
	if !okLhs || !okRhs {
		return nil, nil, formulaErrorf("%s formula missing 'lhs' or 'rhs' field", kind)
	}
	//
	lhs, err := DecodeFormula(rawLhs)
	if err != nil {
		return nil, nil, err
	}
	//
	rhs, err := DecodeFormula(rawRhs)
	if err != nil {
		return nil, nil, err
	}
	//
	return lhs, rhs, nil
}

func isNull(data json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// Describe the JSON kind of a given fragment, for error reporting.
func jsonKind(data json.RawMessage) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "empty"
	}
	//
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

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

import "encoding/json"

// Formula represents a logical expression which evaluates to true or false.
// Like Term, this is a closed sum over the formula structs in this file.
type Formula interface {
	isFormula()
}

// Rel represents a relational comparison between two terms, with operator one
// of "<", "<=", "=", "!=", ">" or ">=".
type Rel struct {
	Op  string
	Lhs Term
	Rhs Term
}

// Conjunct represents the logical AND of zero or more formulas.  Observe that
// an empty conjunct is equivalent to logical truth.
type Conjunct struct {
	Args []Formula
}

// Disjunct represents the logical OR of zero or more formulas.  Observe that
// an empty disjunct is equivalent to logical falsehood.
type Disjunct struct {
	Args []Formula
}

// Negation represents the logical negation of its argument.
type Negation struct {
	Arg Formula
}

// Implication represents logical implication of Lhs into Rhs.
type Implication struct {
	Lhs Formula
	Rhs Formula
}

// Forall represents universal quantification of the body over one or more
// named variables, in declaration order.
type Forall struct {
	Vars []string
	Body Formula
}

// Exists represents existential quantification of the body over one or more
// named variables, in declaration order.
type Exists struct {
	Vars []string
	Body Formula
}

// True constructs logical truth, which in this system corresponds to an
// empty conjunct.
func True() Formula { return &Conjunct{} }

// False constructs logical falsehood, which in this system corresponds to an
// empty disjunct.
func False() Formula { return &Disjunct{} }

func (p *Rel) isFormula()         {}
func (p *Conjunct) isFormula()    {}
func (p *Disjunct) isFormula()    {}
func (p *Negation) isFormula()    {}
func (p *Implication) isFormula() {}
func (p *Forall) isFormula()      {}
func (p *Exists) isFormula()      {}

// MarshalJSON renders this formula as a tagged object.
func (p *Rel) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Op   string `json:"op"`
		Lhs  Term   `json:"lhs"`
		Rhs  Term   `json:"rhs"`
	}{"rel", p.Op, p.Lhs, p.Rhs})
}

// MarshalJSON renders this formula as a tagged object.
func (p *Conjunct) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string    `json:"type"`
		Args []Formula `json:"args"`
	}{"and", nonNil(p.Args)})
}

// MarshalJSON renders this formula as a tagged object.
func (p *Disjunct) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string    `json:"type"`
		Args []Formula `json:"args"`
	}{"or", nonNil(p.Args)})
}

// MarshalJSON renders this formula as a tagged object.
func (p *Negation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"type"`
		Arg  Formula `json:"arg"`
	}{"not", p.Arg})
}

// MarshalJSON renders this formula as a tagged object.
func (p *Implication) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"type"`
		Lhs  Formula `json:"lhs"`
		Rhs  Formula `json:"rhs"`
	}{"implies", p.Lhs, p.Rhs})
}

// MarshalJSON renders this formula as a tagged object.
func (p *Forall) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string   `json:"type"`
		Vars []string `json:"vars"`
		Body Formula  `json:"body"`
	}{"forall", p.Vars, p.Body})
}

// MarshalJSON renders this formula as a tagged object.
func (p *Exists) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string   `json:"type"`
		Vars []string `json:"vars"`
		Body Formula  `json:"body"`
	}{"exists", p.Vars, p.Body})
}

// Ensure empty argument lists marshal as [] rather than null.
func nonNil(args []Formula) []Formula {
	if args == nil {
		return []Formula{}
	}
	//
	return args
}

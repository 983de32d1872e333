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

// Term represents an arithmetic expression over numbers and variables.  This
// is a closed sum: the only implementations are the term structs in this
// file, and every consumer performs exhaustive case analysis over them.
// Terms are immutable, with children owned by their parent.
type Term interface {
	isTerm()
}

// Num represents a numeric literal, held as its original decimal string.
type Num struct {
	Value string
}

// Var represents a reference to a named variable.
type Var struct {
	Name string
}

// Binary represents the application of a binary arithmetic operator, one of
// "+", "-", "*" or "/".
type Binary struct {
	Op  string
	Lhs Term
	Rhs Term
}

// Neg represents arithmetic negation.
type Neg struct {
	Arg Term
}

// Abs represents the absolute value of its argument.
type Abs struct {
	Arg Term
}

// Pow represents exponentiation of a base by an arbitrary exponent.
type Pow struct {
	Base Term
	Exp  Term
}

// Sqrt represents the square root of its argument.
type Sqrt struct {
	Arg Term
}

// Min represents the minimum of two or more arguments.
type Min struct {
	Args []Term
}

// Max represents the maximum of two or more arguments.
type Max struct {
	Args []Term
}

func (p *Num) isTerm()    {}
func (p *Var) isTerm()    {}
func (p *Binary) isTerm() {}
func (p *Neg) isTerm()    {}
func (p *Abs) isTerm()    {}
func (p *Pow) isTerm()    {}
func (p *Sqrt) isTerm()   {}
func (p *Min) isTerm()    {}
func (p *Max) isTerm()    {}

// MarshalJSON renders this term as a tagged object.
func (p *Num) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{"num", p.Value})
}

// MarshalJSON renders this term as a tagged object.
func (p *Var) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{"var", p.Name})
}

// MarshalJSON renders this term as a tagged object.
func (p *Binary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Op   string `json:"op"`
		Lhs  Term   `json:"lhs"`
		Rhs  Term   `json:"rhs"`
	}{"bin", p.Op, p.Lhs, p.Rhs})
}

// MarshalJSON renders this term as a tagged object.
func (p *Neg) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Arg  Term   `json:"arg"`
	}{"neg", p.Arg})
}

// MarshalJSON renders this term as a tagged object.
func (p *Abs) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Arg  Term   `json:"arg"`
	}{"abs", p.Arg})
}

// MarshalJSON renders this term as a tagged object.
func (p *Pow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Base Term   `json:"base"`
		Exp  Term   `json:"exp"`
	}{"pow", p.Base, p.Exp})
}

// MarshalJSON renders this term as a tagged object.
func (p *Sqrt) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Arg  Term   `json:"arg"`
	}{"sqrt", p.Arg})
}

// MarshalJSON renders this term as a tagged object.
func (p *Min) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Args []Term `json:"args"`
	}{"min", p.Args})
}

// MarshalJSON renders this term as a tagged object.
func (p *Max) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Args []Term `json:"args"`
	}{"max", p.Args})
}

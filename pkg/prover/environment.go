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
	"sort"

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/smt"
)

// Handle is the symbolic handle bound to a variable name, tagged with its
// domain.
type Handle struct {
	// Variable name.
	Name string
	// Domain of the variable.
	Sort smt.Sort
	// Symbolic expression referring to the variable.
	Expr smt.Expr
}

// Environment registers exactly one symbolic handle per variable name for
// the lifetime of one request.  Handles are created lazily on first
// reference and reused thereafter; there is no removal operation.  The
// environment is shared by reference across the whole translation of a
// request, and the result formatter iterates it to build counterexample
// models.  It is not safe for concurrent use, nor designed for sharing
// across requests.
type Environment struct {
	// Declared variable domains; absent entries default to Real.
	varTypes map[string]string
	// One handle per name.
	bindings map[string]Handle
	// Names in creation order.
	order []string
	// Number of handles already declared with the solver.
	declared int
}

// NewEnvironment constructs an empty environment resolving domains against
// the given variable type map.
func NewEnvironment(varTypes map[string]string) *Environment {
	return &Environment{
		varTypes: varTypes,
		bindings: make(map[string]Handle),
	}
}

// GetOrCreate returns the handle bound to the given name, creating one on
// first reference.  The first binding wins: once a name has a handle, later
// references return it unchanged.
func (p *Environment) GetOrCreate(name string) Handle {
	if handle, ok := p.bindings[name]; ok {
		return handle
	}
	//
	handle := Handle{name, p.sortOf(name), smt.Sym(name)}
	p.bindings[name] = handle
	p.order = append(p.order, name)
	//
	return handle
}

// Bind creates a handle for a quantifier-bound variable, overwriting any
// existing binding of that name in this shared environment.  Since domains
// are resolved from the same type map as free variables, the overwriting
// handle is indistinguishable from the one it replaces; the name remains in
// the environment afterwards and so appears in any counterexample model.
func (p *Environment) Bind(name string) Handle {
	return p.GetOrCreate(name)
}

// Pending returns the handles created since declarations were last flushed
// to the solver, in creation order, and marks them declared.
func (p *Environment) Pending() []Handle {
	handles := make([]Handle, 0, len(p.order)-p.declared)
	//
	for _, name := range p.order[p.declared:] {
		handles = append(handles, p.bindings[name])
	}
	//
	p.declared = len(p.order)
	//
	return handles
}

// Names returns every bound variable name in lexicographic order.
func (p *Environment) Names() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	sort.Strings(names)
	//
	return names
}

// Handle returns the handle bound to a given name, which must exist.
func (p *Environment) Handle(name string) Handle {
	return p.bindings[name]
}

// Resolve the domain of a variable from the type map, defaulting to Real.
func (p *Environment) sortOf(name string) smt.Sort {
	if p.varTypes[name] == ast.TypeInt {
		return smt.SortInt
	}
	//
	return smt.SortReal
}

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

import (
	"os/exec"
	"testing"
)

func TestSolver_Sat(t *testing.T) {
	solver := requireSolver(t)
	defer solver.Close()
	//
	declare(t, solver, "x", SortReal)
	assert(t, solver, Fn(">", Sym("x"), Sym("0")))
	//
	checkStatus(t, solver, StatusSat)
}

func TestSolver_Unsat(t *testing.T) {
	solver := requireSolver(t)
	defer solver.Close()
	//
	declare(t, solver, "x", SortReal)
	assert(t, solver, Fn(">", Sym("x"), Sym("0")))
	assert(t, solver, Fn("<", Sym("x"), Sym("0")))
	//
	checkStatus(t, solver, StatusUnsat)
}

func TestSolver_PushPop(t *testing.T) {
	solver := requireSolver(t)
	defer solver.Close()
	//
	declare(t, solver, "x", SortReal)
	assert(t, solver, Fn(">", Sym("x"), Sym("0")))
	//
	if err := solver.Push(); err != nil {
		t.Fatal(err)
	}
	//
	assert(t, solver, Fn("<", Sym("x"), Sym("0")))
	checkStatus(t, solver, StatusUnsat)
	//
	if err := solver.Pop(); err != nil {
		t.Fatal(err)
	}
	//
	checkStatus(t, solver, StatusSat)
}

func TestSolver_Model(t *testing.T) {
	solver := requireSolver(t)
	defer solver.Close()
	//
	declare(t, solver, "n", SortInt)
	assert(t, solver, Fn("=", Sym("n"), Sym("5")))
	checkStatus(t, solver, StatusSat)
	//
	checkValue(t, solver, Sym("n"), "5")
}

func TestSolver_NegativeModel(t *testing.T) {
	solver := requireSolver(t)
	defer solver.Close()
	//
	declare(t, solver, "n", SortInt)
	assert(t, solver, Fn("=", Sym("n"), Fn("-", Sym("2"))))
	checkStatus(t, solver, StatusSat)
	// (- 2) flattens to -2
	checkValue(t, solver, Sym("n"), "-2")
}

// An assertion over an undeclared constant produces an error reply, which
// surfaces on the next read.
func TestSolver_Error(t *testing.T) {
	solver := requireSolver(t)
	defer solver.Close()
	//
	assert(t, solver, Fn(">", Sym("y"), Sym("0")))
	//
	if _, err := solver.Check(); err == nil {
		t.Errorf("expected a solver error")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func requireSolver(t *testing.T) *Solver {
	if _, err := exec.LookPath(Binary()); err != nil {
		t.Skipf("solver %q not available", Binary())
	}
	//
	solver, err := NewSolver()
	if err != nil {
		t.Fatal(err)
	}
	//
	return solver
}

func declare(t *testing.T, solver *Solver, name string, sort Sort) {
	if err := solver.DeclareConst(name, sort); err != nil {
		t.Fatal(err)
	}
}

func assert(t *testing.T, solver *Solver, constraint Expr) {
	if err := solver.Assert(constraint); err != nil {
		t.Fatal(err)
	}
}

func checkStatus(t *testing.T, solver *Solver, expected Status) {
	status, err := solver.Check()
	//
	if err != nil {
		t.Fatal(err)
	} else if status != expected {
		t.Errorf("expected %s, got %s", expected, status)
	}
}

func checkValue(t *testing.T, solver *Solver, expr Expr, expected string) {
	value, err := solver.Model().Eval(expr, true)
	//
	if err != nil {
		t.Fatal(err)
	} else if value != expected {
		t.Errorf("expected %s, got %s", expected, value)
	}
}

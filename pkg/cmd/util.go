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
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/prover"
	"github.com/lemma-lang/go-lemma/pkg/smt"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Determine the solver executable to use, preferring the --solver flag over
// the environment.
func solverBinary(cmd *cobra.Command) string {
	if binary := GetString(cmd, "solver"); binary != "" {
		return binary
	}
	//
	return smt.Binary()
}

// Prove one request against a fresh solver, using the executable selected on
// the command line.
func proveRequest(cmd *cobra.Command, request *ast.Request) *ast.Result {
	return proveWithBinary(solverBinary(cmd), request)
}

// Prove one request against a fresh solver launched from the given
// executable.
func proveWithBinary(binary string, request *ast.Request) *ast.Result {
	if err := prover.ValidateRequest(request); err != nil {
		return ast.ErrorResult(err.Error())
	}
	//
	solver, err := smt.NewSolverWithBinary(binary)
	if err != nil {
		return ast.ErrorResult((&prover.ProcedureError{Cause: err}).Error())
	}
	//
	defer solver.Close()
	//
	return prover.ProveWith(solver, request)
}

// Write a response envelope to the given stream as a single line of JSON.
func writeResult(w io.Writer, result *ast.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		// A result envelope always marshals.
		panic(err)
	}
	//
	fmt.Fprintln(w, string(data))
}

// ANSI colours for terminal reports.
const (
	ansiGreen  = "\033[92m"
	ansiRed    = "\033[91m"
	ansiYellow = "\033[93m"
	ansiBlue   = "\033[94m"
	ansiBold   = "\033[1m"
	ansiReset  = "\033[0m"
)

// Wrap text in an ANSI colour when the output stream is a terminal.
func colorize(text string, color string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	//
	return color + text + ansiReset
}

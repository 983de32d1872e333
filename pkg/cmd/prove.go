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
	"io"
	"os"

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/spf13/cobra"
)

// proveCmd represents the prove command
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Prove a claim given as a JSON request on stdin.",
	Long: `Prove a claim given as a JSON request on stdin.
	The request carries variables, assumptions, optional proof steps and the
	claim; the response envelope is written to stdout as a single line of
	JSON.  The exit code is zero exactly when the claim was proven.  Every
	failure mode, including unparseable input, still produces a response
	envelope.`,
	Run: func(cmd *cobra.Command, args []string) {
		result := proveStdin(cmd)
		//
		writeResult(os.Stdout, result)
		//
		if !result.Ok {
			os.Exit(1)
		}
	},
}

func proveStdin(cmd *cobra.Command) *ast.Result {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ast.ErrorResult(err.Error())
	}
	//
	request, err := ast.DecodeRequest(data)
	if err != nil {
		return ast.ErrorResult(err.Error())
	}
	//
	return proveRequest(cmd, request)
}

func init() {
	rootCmd.AddCommand(proveCmd)
}

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
	"fmt"
	"os"
	"strings"

	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/lemma"
	"github.com/lemma-lang/go-lemma/pkg/prover"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] proof_file...",
	Short: "Check one or more proof scripts.",
	Long: `Check one or more proof scripts, reporting the verdict of each.
	The report is coloured when stdout is a terminal; with --json the raw
	response envelope is emitted instead, one line per file.  The exit code
	is zero exactly when every proof succeeded.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		ok := true
		//
		for _, filename := range args {
			ok = checkFile(cmd, filename, GetFlag(cmd, "json")) && ok
		}
		//
		if !ok {
			os.Exit(1)
		}
	},
}

func checkFile(cmd *cobra.Command, filename string, jsonOutput bool) bool {
	request, err := lemma.ParseFile(filename)
	//
	if err != nil {
		if jsonOutput {
			writeResult(os.Stdout, ast.ErrorResult(err.Error()))
		} else {
			fmt.Println(colorize(fmt.Sprintf("Parse error: %v", err), ansiRed))
		}
		//
		return false
	}
	//
	result := proveRequest(cmd, request)
	//
	if jsonOutput {
		writeResult(os.Stdout, result)
		return result.Ok
	}
	//
	fmt.Println(colorize(fmt.Sprintf("Verifying: %s", filename), ansiBlue))
	fmt.Printf("  Variables: %s\n", variableList(request))
	fmt.Printf("  Assumptions: %d\n", len(request.Assumptions))
	//
	reportSteps(result.StepResults)
	reportVerdict(result)
	//
	return result.Ok
}

func variableList(request *ast.Request) string {
	if len(request.Vars) == 0 {
		return "(none)"
	}
	//
	return strings.Join(request.Vars, ", ")
}

func reportSteps(steps []ast.StepResult) {
	if len(steps) == 0 {
		return
	}
	//
	fmt.Println("Proof Steps:")
	//
	for _, step := range steps {
		switch {
		case step.Ok:
			fmt.Printf("  Step %d: %s\n", step.Step, colorize("✓ Proven", ansiGreen))
		case step.Status == ast.StatusDisproven:
			fmt.Printf("  Step %d: %s\n", step.Step, colorize("✗ Disproven", ansiRed))
		case step.Status == ast.StatusUnknown:
			fmt.Printf("  Step %d: %s\n", step.Step, colorize("? Unknown", ansiYellow))
		case step.Status == ast.StatusNonExhaustive:
			fmt.Printf("  Step %d: %s\n", step.Step,
				colorize(fmt.Sprintf("✗ %s", step.Message), ansiRed))
		default:
			fmt.Printf("  Step %d: %s\n", step.Step,
				colorize(fmt.Sprintf("✗ Error: %s", step.Error), ansiRed))
		}
	}
}

func reportVerdict(result *ast.Result) {
	switch result.Status {
	case ast.StatusProven:
		fmt.Println(colorize("✓ Proof successful!", ansiGreen))
	case ast.StatusDisproven:
		fmt.Println(colorize("✗ Proof failed", ansiRed))
		fmt.Println(prover.FormatCounterexample(result.Model))
	case ast.StatusUnknown:
		fmt.Println(colorize("? Proof inconclusive", ansiYellow))
		//
		if result.Message != "" {
			fmt.Printf("    %s\n", result.Message)
		}
	default:
		fmt.Println(colorize(fmt.Sprintf("Error: %s", result.Error), ansiRed))
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "emit the raw response envelope instead of a report")
}

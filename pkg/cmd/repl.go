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
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lemma-lang/go-lemma/pkg/lemma"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively parse proof statements.",
	Long: `Interactively parse proof statements, printing the compiled request
	of each.  Useful for exploring the proof language.  Type exit or quit to
	leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		repl()
	},
}

func repl() {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	//
	if interactive {
		fmt.Println("go-lemma parser REPL")
		fmt.Println("Type a proof statement (e.g. 'let x = 5', 'assume x > 0') or 'exit' to quit.")
	}
	//
	scanner := bufio.NewScanner(os.Stdin)
	//
	for {
		if interactive {
			fmt.Print("parser> ")
		}
		//
		if !scanner.Scan() {
			break
		}
		//
		line := strings.TrimSpace(scanner.Text())
		//
		if line == "" {
			continue
		}
		//
		if line == "exit" || line == "quit" {
			break
		}
		//
		request, err := lemma.ParseSnippet(line)
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			continue
		}
		//
		data, err := json.MarshalIndent(request, "", "  ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		//
		fmt.Println(string(data))
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}

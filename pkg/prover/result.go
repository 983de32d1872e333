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
	"fmt"
	"sort"
	"strings"

	"github.com/lemma-lang/go-lemma/pkg/smt"
)

// Build the counterexample assignment over every variable bound during the
// request, including quantifier-bound names whose handles persist after
// translation.  The solver completes the model, so every variable receives a
// value.
func counterexample(model *smt.Model, env *Environment) (map[string]string, error) {
	names := env.Names()
	values := make(map[string]string, len(names))
	//
	for _, name := range names {
		value, err := model.Eval(env.Handle(name).Expr, true)
		if err != nil {
			return nil, procedureError(err)
		}
		//
		values[name] = value
	}
	//
	return values, nil
}

// FormatCounterexample renders a counterexample assignment for human
// consumption, one variable per line in lexicographic order.
func FormatCounterexample(model map[string]string) string {
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	var builder strings.Builder
	//
	builder.WriteString("Counterexample found:")
	//
	for _, name := range names {
		builder.WriteString(fmt.Sprintf("\n  %s = %s", name, model[name]))
	}
	//
	return builder.String()
}

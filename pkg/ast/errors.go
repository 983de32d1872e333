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

import "fmt"

// TermError indicates a malformed term node: a missing or unrecognised type
// tag, a missing required field, or an arity violation.
type TermError struct {
	Message string
}

func (p *TermError) Error() string { return p.Message }

// FormulaError indicates a malformed formula node, under the same categories
// as TermError.
type FormulaError struct {
	Message string
}

func (p *FormulaError) Error() string { return p.Message }

func termErrorf(format string, args ...any) *TermError {
	return &TermError{fmt.Sprintf(format, args...)}
}

func formulaErrorf(format string, args ...any) *FormulaError {
	return &FormulaError{fmt.Sprintf(format, args...)}
}

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
package lemma

import "fmt"

// SyntaxError reports a defect in a proof script, located by line and column
// where known.  A parse run which recovered past several defects reports
// them all through a single error whose message enumerates them.
type SyntaxError struct {
	Message string
	// Line of the offending token, or zero when no location applies.
	Line int
	// Column of the offending token.
	Col int
}

func (p *SyntaxError) Error() string {
	if p.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", p.Line, p.Col, p.Message)
	}
	//
	return p.Message
}

// Construct a syntax error located at the given token.
func syntaxErrorf(token Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{fmt.Sprintf(format, args...), token.Line, token.Col}
}

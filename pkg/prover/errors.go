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

import "fmt"

// RequestError indicates a structurally invalid request, such as a missing
// claim.
type RequestError struct {
	Message string
}

func (p *RequestError) Error() string { return p.Message }

// ProcedureError indicates an internal failure of the external decision
// procedure: the subprocess could not be driven, or replied with an error.
type ProcedureError struct {
	Cause error
}

func (p *ProcedureError) Error() string {
	return fmt.Sprintf("Solver error: %v", p.Cause)
}

func (p *ProcedureError) Unwrap() error { return p.Cause }

// Wrap a solver-level failure, unless it is already classified.
func procedureError(err error) error {
	if err == nil {
		return nil
	}
	//
	if _, ok := err.(*ProcedureError); ok {
		return err
	}
	//
	return &ProcedureError{err}
}

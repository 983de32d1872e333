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
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultBinary is the solver executable used when no explicit path is given.
// It can be overridden through the LEMMA_Z3 environment variable.
const DefaultBinary = "z3"

// Sort describes the domain of a constant declared with the solver.
type Sort uint8

const (
	// SortReal is the sort of real-valued constants.
	SortReal Sort = iota
	// SortInt is the sort of integer-valued constants.
	SortInt
)

func (s Sort) String() string {
	if s == SortInt {
		return "Int"
	}
	//
	return "Real"
}

// Status represents the outcome of a satisfiability check.
type Status int

const (
	// StatusUnsat indicates the asserted constraints have no model.
	StatusUnsat Status = iota
	// StatusSat indicates the asserted constraints have a model.
	StatusSat
	// StatusUnknown indicates the solver could not decide satisfiability.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusUnsat:
		return "unsat"
	case StatusSat:
		return "sat"
	default:
		return "unknown"
	}
}

// Binary determines the solver executable to launch, checking the LEMMA_Z3
// environment variable before falling back on the default.
func Binary() string {
	if path := os.Getenv("LEMMA_Z3"); path != "" {
		return path
	}
	//
	return DefaultBinary
}

// Solver drives an external decision procedure over its textual interface.
// One solver owns one subprocess, and holds exactly the constraints asserted
// through it; nothing is shared between solvers.  A solver must be released
// with Close once its owning request completes.
type Solver struct {
	// Underlying solver process.
	cmd *exec.Cmd
	// Commands are written here, one per line.
	commands io.WriteCloser
	// Replies are read back from here.
	replies *bufio.Reader
}

// NewSolver launches a fresh solver subprocess, or returns an error if the
// executable could not be started.
func NewSolver() (*Solver, error) {
	return NewSolverWithBinary(Binary())
}

// NewSolverWithBinary launches a fresh solver subprocess using the given
// executable.
func NewSolverWithBinary(binary string) (*Solver, error) {
	cmd := exec.Command(binary, "-smt2", "-in")
	//
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	//
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	//
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting solver %q: %w", binary, err)
	}
	//
	return &Solver{cmd, stdin, bufio.NewReader(stdout)}, nil
}

// DeclareConst declares a fresh constant of the given sort with the solver.
func (p *Solver) DeclareConst(name string, sort Sort) error {
	return p.send(fmt.Sprintf("(declare-const %s %s)", name, sort))
}

// Assert adds a constraint to the solver's current context.
func (p *Solver) Assert(constraint Expr) error {
	return p.send(fmt.Sprintf("(assert %s)", constraint))
}

// Push creates a backtracking point.
func (p *Solver) Push() error {
	return p.send("(push 1)")
}

// Pop discards all constraints asserted since the matching Push.
func (p *Solver) Pop() error {
	return p.send("(pop 1)")
}

// Check determines satisfiability of the asserted constraints.  This is the
// only potentially long-running operation; no timeout is imposed here.
func (p *Solver) Check() (Status, error) {
	if err := p.send("(check-sat)"); err != nil {
		return StatusUnknown, err
	}
	//
	reply, err := p.read()
	if err != nil {
		return StatusUnknown, err
	}
	//
	switch reply {
	case "sat":
		return StatusSat, nil
	case "unsat":
		return StatusUnsat, nil
	case "unknown":
		return StatusUnknown, nil
	}
	//
	return StatusUnknown, fmt.Errorf("unexpected check-sat reply: %s", reply)
}

// ReasonUnknown reports why the most recent Check returned unknown.
func (p *Solver) ReasonUnknown() string {
	if err := p.send("(get-info :reason-unknown)"); err != nil {
		return ""
	}
	//
	reply, err := p.read()
	if err != nil {
		return ""
	}
	// Reply has the shape (:reason-unknown "...")
	expr, err := Parse(reply)
	if err != nil {
		return ""
	}
	//
	if app, ok := expr.(*Application); ok && app.Len() == 2 {
		return strings.Trim(app.Elements[1].String(), "\"")
	}
	//
	return ""
}

// Model provides access to the satisfying assignment found by the most recent
// Check.  Only valid after Check has returned StatusSat.
func (p *Solver) Model() *Model {
	return &Model{p}
}

// Close shuts the solver subprocess down.  Any error on the way out is
// ignored since the request it served is already complete.
func (p *Solver) Close() {
	_ = p.send("(exit)")
	_ = p.commands.Close()
	_ = p.cmd.Wait()
}

// Send a single command to the solver.
func (p *Solver) send(command string) error {
	log.Debugf("smt> %s", command)
	//
	if _, err := io.WriteString(p.commands, command+"\n"); err != nil {
		return fmt.Errorf("solver write failed: %w", err)
	}
	//
	return nil
}

// Read a single reply from the solver.  A reply is either a bare word (such
// as "sat") or a parenthesised expression which may span several lines.  An
// error reply from the solver is surfaced as a Go error.
func (p *Solver) read() (string, error) {
	var (
		builder  strings.Builder
		depth    int
		inString bool
		started  bool
	)
	//
	for {
		c, _, err := p.replies.ReadRune()
		if err != nil {
			return "", fmt.Errorf("solver read failed: %w", err)
		}
		//
		switch {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case isWhitespace(c):
			if !started {
				// Leading whitespace
				continue
			} else if depth == 0 {
				// Reply complete
				return p.reply(builder.String())
			}
		}
		//
		started = true
		//
		builder.WriteRune(c)
		//
		if c == ')' && depth == 0 && !inString {
			return p.reply(builder.String())
		}
	}
}

// Classify a raw reply, turning solver-reported errors into Go errors.
func (p *Solver) reply(raw string) (string, error) {
	log.Debugf("smt< %s", raw)
	//
	if strings.HasPrefix(raw, "(error") {
		msg := raw
		// Extract the quoted message where possible
		if expr, err := Parse(raw); err == nil {
			if app, ok := expr.(*Application); ok && app.Len() == 2 {
				msg = strings.Trim(app.Elements[1].String(), "\"")
			}
		}
		//
		return "", fmt.Errorf("solver error: %s", msg)
	}
	//
	return raw, nil
}

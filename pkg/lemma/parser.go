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

// Package lemma implements the human-readable proof language, compiling a
// proof script into the request envelope consumed by the prover.  The
// language reads as prose: statement keywords carry English aliases
// ("suppose x > 0 ... therefore x >= 0"), comparisons chain ("0 < x <= y"),
// and theorems can be defined, imported from other files and applied by
// name.
package lemma

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lemma-lang/go-lemma/pkg/ast"
)

// Parse compiles a proof script into a request envelope.  The script must
// contain a prove statement.  On failure the parser recovers to the next
// statement and keeps going, so the returned error enumerates every defect
// found rather than just the first.
func Parse(source string) (*ast.Request, error) {
	return parseSource(source, ".", true)
}

// ParseSnippet compiles a fragment of a proof script, without requiring a
// prove statement.  Used by interactive front ends which feed one statement
// at a time.
func ParseSnippet(source string) (*ast.Request, error) {
	return parseSource(source, ".", false)
}

// ParseFile compiles the proof script in the given file.  Imports are
// resolved relative to the file's directory.
func ParseFile(path string) (*ast.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	//
	return parseSource(string(data), filepath.Dir(abs), true)
}

func parseSource(source string, basePath string, requireClaim bool) (*ast.Request, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	//
	return newParser(tokens, basePath, make(map[string]bool)).parse(requireClaim)
}

// parser accumulates the proof obligation statement by statement.  Variables
// are declared implicitly on first reference as well as explicitly by let,
// in order of appearance.
type parser struct {
	tokens []Token
	index  int
	//
	assumptions []ast.Formula
	steps       []ast.Step
	claim       ast.Formula
	vars        []string
	varSet      map[string]bool
	varTypes    map[string]string
	theorems    map[string]*theorem
	// Base directory against which imports are resolved.
	basePath string
	// Files already imported, shared across nested imports to break cycles.
	imported map[string]bool
	// Errors collected during recovery.
	errors []string
}

// theorem is a named proof whose statement can later be injected as an
// assumption by apply.
type theorem struct {
	assumptions []ast.Formula
	conclusion  ast.Formula
}

func newParser(tokens []Token, basePath string, imported map[string]bool) *parser {
	return &parser{
		tokens:   tokens,
		varSet:   make(map[string]bool),
		varTypes: make(map[string]string),
		theorems: make(map[string]*theorem),
		basePath: basePath,
		imported: imported,
	}
}

func (p *parser) parse(requireClaim bool) (*ast.Request, error) {
	p.skipNewlines()
	//
	for !p.match(TokEOF) {
		if err := p.parseStatement(); err != nil {
			p.errors = append(p.errors, err.Error())
			p.recover()
		}
		//
		p.skipNewlines()
	}
	//
	if len(p.errors) > 0 {
		lines := make([]string, len(p.errors))
		for i, e := range p.errors {
			lines[i] = "  - " + e
		}
		//
		return nil, &SyntaxError{
			Message: fmt.Sprintf("Found %d error(s):\n%s", len(p.errors), strings.Join(lines, "\n")),
		}
	}
	//
	if requireClaim && p.claim == nil {
		return nil, &SyntaxError{Message: "No 'prove' statement found"}
	}
	//
	return &ast.Request{
		Vars:        p.vars,
		VarTypes:    p.varTypes,
		Assumptions: p.assumptions,
		Steps:       p.steps,
		Claim:       p.claim,
	}, nil
}

// Parse statements without requiring a claim, as when importing a theorem
// library.  No recovery: the first defect aborts the import.
func (p *parser) parseLibrary() error {
	p.skipNewlines()
	//
	for !p.match(TokEOF) {
		if err := p.parseStatement(); err != nil {
			return err
		}
		//
		p.skipNewlines()
	}
	//
	return nil
}

// Skip tokens until the start of the next statement, so that one defect does
// not drown the rest of the script in follow-on errors.
func (p *parser) recover() {
	for !p.match(TokEOF) {
		if p.match(TokNewline) {
			p.advance()
			//
			if p.match(TokAssume, TokProve, TokHave, TokLet, TokTheorem,
				TokApply, TokImport, TokCases, TokEOF) {
				return
			}
		} else {
			p.advance()
		}
	}
}

func (p *parser) parseStatement() error {
	tok := p.current()
	//
	switch tok.Kind {
	case TokAssume:
		p.advance()
		//
		formula, err := p.parseFormula()
		if err != nil {
			return err
		}
		//
		p.assumptions = append(p.assumptions, formula)
	case TokProve:
		p.advance()
		//
		formula, err := p.parseFormula()
		if err != nil {
			return err
		}
		//
		p.claim = formula
	case TokHave:
		p.advance()
		//
		formula, err := p.parseFormula()
		if err != nil {
			return err
		}
		//
		p.steps = append(p.steps, ast.Step{Formula: formula})
	case TokLet:
		return p.parseLet()
	case TokTheorem:
		return p.parseTheorem()
	case TokApply:
		return p.parseApply()
	case TokImport:
		return p.parseImport()
	case TokCases:
		return p.parseCases()
	default:
		return syntaxErrorf(tok, "Expected statement keyword (assume/suppose, prove/show, "+
			"have/so, let/define, theorem/lemma, apply/use, import, or cases), got %s", tok.Kind)
	}
	//
	return nil
}

// Parse a variable declaration: "let x", optionally typed ("let n: Int"),
// constrained to a number set ("let n in N+", which also assumes n > 0), or
// initialised ("let x = 5", whose value is currently ignored).
func (p *parser) parseLet() error {
	p.advance()
	//
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return err
	}
	//
	name := nameTok.Value
	varType := ast.TypeReal
	constraint := ""
	// Type annotation
	if p.match(TokColon) {
		p.advance()
		//
		switch {
		case p.match(TokInt):
			p.advance()
			varType = ast.TypeInt
		case p.match(TokReal):
			p.advance()
			varType = ast.TypeReal
		default:
			return syntaxErrorf(p.current(), "Expected 'Int' or 'Real', got %s", p.current().Kind)
		}
	}
	// Set membership
	if p.match(TokIn) {
		p.advance()
		//
		if !p.match(TokSet) {
			return syntaxErrorf(p.current(), "Expected set name (R, Z, N, Q), got %s", p.current().Kind)
		}
		//
		set := p.advance().Value
		//
		positive := false
		if p.match(TokPlus) {
			p.advance()
			positive = true
		}
		//
		switch set {
		case "Z":
			varType = ast.TypeInt
		case "N":
			// Naturals are the non-negative integers.
			varType = ast.TypeInt
			constraint = ">="
		default:
			// R and Q.  The solver has no exact rational sort, so Q maps to
			// the reals.
			varType = ast.TypeReal
		}
		//
		if positive {
			constraint = ">"
		}
	}
	// Initialiser, consumed but not yet acted upon.
	if p.match(TokEq) {
		p.advance()
		//
		if _, err := p.parseExpr(); err != nil {
			return err
		}
	}
	//
	p.declare(name)
	p.varTypes[name] = varType
	//
	if constraint != "" {
		p.assumptions = append(p.assumptions, &ast.Rel{
			Op:  constraint,
			Lhs: &ast.Var{Name: name},
			Rhs: &ast.Num{Value: "0"},
		})
	}
	//
	return nil
}

// Parse a theorem definition: "theorem name:" followed by statements up to
// and including its prove.  The theorem's assumptions and conclusion are
// recorded under its name for later apply; the surrounding proof's
// assumptions and claim are unaffected.
func (p *parser) parseTheorem() error {
	p.advance()
	//
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return err
	}
	//
	if _, err := p.expect(TokColon); err != nil {
		return err
	}
	//
	p.skipNewlines()
	//
	savedAssumptions, savedClaim := p.assumptions, p.claim
	p.assumptions, p.claim = nil, nil
	//
	defer func() {
		p.assumptions, p.claim = savedAssumptions, savedClaim
	}()
	//
	for !p.match(TokEOF) && p.claim == nil {
		if err := p.parseStatement(); err != nil {
			return err
		}
		//
		p.skipNewlines()
	}
	//
	if p.claim == nil {
		return syntaxErrorf(nameTok, "Theorem '%s' has no 'prove' statement", nameTok.Value)
	}
	//
	p.theorems[nameTok.Value] = &theorem{p.assumptions, p.claim}
	//
	return nil
}

// Parse an apply statement, injecting the named theorem's statement as an
// assumption: its conclusion directly when it has no assumptions, otherwise
// the implication (assumptions => conclusion).
func (p *parser) parseApply() error {
	tok := p.current()
	p.advance()
	//
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return err
	}
	//
	thm, ok := p.theorems[nameTok.Value]
	if !ok {
		return syntaxErrorf(tok, "Unknown theorem: %s", nameTok.Value)
	}
	//
	if len(thm.assumptions) == 0 {
		p.assumptions = append(p.assumptions, thm.conclusion)
		return nil
	}
	//
	var lhs ast.Formula
	//
	if len(thm.assumptions) == 1 {
		lhs = thm.assumptions[0]
	} else {
		lhs = &ast.Conjunct{Args: thm.assumptions}
	}
	//
	p.assumptions = append(p.assumptions, &ast.Implication{Lhs: lhs, Rhs: thm.conclusion})
	//
	return nil
}

// Parse an import statement, merging the theorems of the imported file.
// Relative paths resolve against the importing file's directory; a file
// already imported anywhere in the chain is skipped, which also breaks
// import cycles.
func (p *parser) parseImport() error {
	p.advance()
	//
	pathTok, err := p.expect(TokString)
	if err != nil {
		return err
	}
	//
	path := pathTok.Value
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.basePath, path)
	}
	//
	path = filepath.Clean(path)
	//
	if p.imported[path] {
		return nil
	}
	//
	p.imported[path] = true
	//
	data, err := os.ReadFile(path)
	//
	switch {
	case os.IsNotExist(err):
		return syntaxErrorf(pathTok, "Import file not found: %s", path)
	case err != nil:
		return syntaxErrorf(pathTok, "Error importing %s: %v", path, err)
	}
	//
	tokens, err := Lex(string(data))
	if err != nil {
		return syntaxErrorf(pathTok, "Error importing %s: %v", path, err)
	}
	//
	library := newParser(tokens, filepath.Dir(path), p.imported)
	//
	if err := library.parseLibrary(); err != nil {
		return syntaxErrorf(pathTok, "Error importing %s: %v", path, err)
	}
	//
	for name, thm := range library.theorems {
		p.theorems[name] = thm
	}
	//
	return nil
}

// Parse a proof-by-cases block:
//
//	cases:
//	    case x > 0:
//	        have x * x > 0
//	    case x <= 0:
//	        ...
func (p *parser) parseCases() error {
	p.advance()
	//
	if _, err := p.expect(TokColon); err != nil {
		return err
	}
	//
	p.skipNewlines()
	//
	var cases []ast.Case
	//
	for p.match(TokCase) {
		p.advance()
		//
		condition, err := p.parseFormula()
		if err != nil {
			return err
		}
		//
		if _, err := p.expect(TokColon); err != nil {
			return err
		}
		//
		p.skipNewlines()
		//
		c := ast.Case{Condition: condition}
		// Collect have statements up to the next case or statement keyword.
		for !p.match(TokCase, TokEOF, TokProve, TokAssume, TokLet, TokTheorem, TokImport, TokCases) {
			if p.match(TokHave) {
				p.advance()
				//
				formula, err := p.parseFormula()
				if err != nil {
					return err
				}
				//
				c.Steps = append(c.Steps, formula)
				p.skipNewlines()
			} else if p.match(TokNewline) {
				p.advance()
			} else {
				break
			}
		}
		//
		cases = append(cases, c)
	}
	//
	if len(cases) == 0 {
		return syntaxErrorf(p.current(), "cases block requires at least one 'case'")
	}
	//
	p.steps = append(p.steps, ast.Step{IsCases: true, Cases: cases})
	//
	return nil
}

// Record a variable on first reference, preserving order of appearance.
func (p *parser) declare(name string) {
	if !p.varSet[name] {
		p.varSet[name] = true
		p.vars = append(p.vars, name)
	}
}

func (p *parser) current() Token {
	return p.tokens[p.index]
}

func (p *parser) advance() Token {
	tok := p.current()
	//
	if p.index+1 < len(p.tokens) {
		p.index++
	}
	//
	return tok
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.current()
	//
	if tok.Kind != kind {
		return tok, syntaxErrorf(tok, "Expected %s, got %s (%q)", kind, tok.Kind, tok.Value)
	}
	//
	return p.advance(), nil
}

func (p *parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.current().Kind == kind {
			return true
		}
	}
	//
	return false
}

func (p *parser) skipNewlines() {
	for p.match(TokNewline) {
		p.advance()
	}
}

// Copyright 2026 The daml-sast Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ir defines the unified, dialect-agnostic intermediate
// representation that both Daml-LF wire dialects lower into. Every value
// here is immutable once constructed by the lowering stage; the rule
// walker and the analyses only ever read it.
package ir

// SourceSpan is a 1-indexed source range; wire spans are 0-indexed and
// lowering adds one to each bound.
type SourceSpan struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Location names where an expression tree originates: a module, a
// definition label within it (a template role, a choice, or a value
// name), and an optional source span.
type Location struct {
	Module     string
	Definition string
	Span       *SourceSpan
}

// Type is the small tagged sum every lowered expression carries.
type Type struct {
	Tag  string // "con" | "var" | "syn" | "list" | "optional" | "struct" | "forall" | "app" | "nat" | "unknown"
	Name string
	Args []*Type
}

// IsParty reports whether t is exactly con("Party").
func (t *Type) IsParty() bool {
	return t != nil && t.Tag == "con" && t.Name == "Party"
}

// IsPartyList reports whether t is list(Party), the shape DAML-PRIV-001
// looks for.
func (t *Type) IsPartyList() bool {
	return t != nil && t.Tag == "list" && len(t.Args) == 1 && t.Args[0].IsParty()
}

// CaseAltPattern describes one case alternative's match pattern. It is
// metadata only — analyses never need it, since party-set inference and
// update-op collection both ignore pattern shape and look only at each
// alternative's body expression.
type CaseAltPattern struct {
	Tag      string // "variant" | "enum" | "cons" | "nil" | "default" | "prim_con" | "optional_some" | "optional_none"
	Ctor     string
	Binders  []string
}

// Expr is one node of the uniform expression tree. Value carries
// kind-specific metadata; its concrete Go type varies by Kind and is
// documented alongside each lowering case.
type Expr struct {
	Kind     string
	Value    any
	Children []*Expr
	Typ      *Type
	Location *Location
	LfRef    *string

	// CaseAlts carries pattern metadata parallel to Children[1:] for "case"
	// nodes only; nil for every other kind.
	CaseAlts []CaseAltPattern
}

// TemplateKey is a key type, a body expression, and a maintainers
// expression.
type TemplateKey struct {
	Typ         *Type
	Body        *Expr
	Maintainers *Expr
}

// Choice is a named, controlled operation on a template.
type Choice struct {
	Name         string
	Consuming    bool
	Controllers  *Expr
	Observers    *Expr
	Authorizers  *Expr
	ReturnType   *Type
	Update       *Expr
	Location     *Location
}

// Template is a record type paired with authorization and lifecycle
// expressions. Templates are leaves for the rule walker: rules never
// mutate them.
type Template struct {
	Name        string // Module.TyCon
	SelfBinder  string
	Signatories *Expr
	Observers   *Expr
	Precond     *Expr
	Key         *TemplateKey
	Choices     []*Choice
	Location    *Location
}

// ValueDef is a top-level value definition.
type ValueDef struct {
	Name     string
	Body     *Expr
	Location *Location
}

// Module is named by a dotted path and owns templates and values in
// source order.
type Module struct {
	Name      string
	Templates []*Template
	Values    []*ValueDef
}

// Package is a compiled unit identified by the SHA-256 of its payload
// bytes.
type Package struct {
	ID             string
	Name           string
	Version        string
	DialectMajor   int
	Modules        []*Module
}

// Program is a sequence of packages, the top-level artifact load_program
// produces.
type Program struct {
	Packages []*Package
}

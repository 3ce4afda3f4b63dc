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

// Package rules defines the rule capability surface and the registry of
// baseline security rules.
package rules

import "github.com/daml-sast/daml-sast/internal/ir"

// Owner names the role that roots an expression tree being visited.
type Owner string

const (
	TemplateSignatories  Owner = "TEMPLATE_SIGNATORIES"
	TemplateObservers    Owner = "TEMPLATE_OBSERVERS"
	TemplateKeyBody      Owner = "TEMPLATE_KEY_BODY"
	TemplateKeyMaintainers Owner = "TEMPLATE_KEY_MAINTAINERS"
	TemplatePrecond      Owner = "TEMPLATE_PRECOND"
	ChoiceControllers    Owner = "CHOICE_CONTROLLERS"
	ChoiceObservers      Owner = "CHOICE_OBSERVERS"
	ChoiceAuthorizers    Owner = "CHOICE_AUTHORIZERS"
	ChoiceUpdate         Owner = "CHOICE_UPDATE"
	ValueBody            Owner = "VALUE_BODY"
)

// Severity and Confidence are the closed enums a Finding carries.
type Severity string

const (
	Low      Severity = "LOW"
	Medium   Severity = "MEDIUM"
	High     Severity = "HIGH"
	Critical Severity = "CRITICAL"
)

type Confidence string

const (
	ConfLow    Confidence = "LOW"
	ConfMedium Confidence = "MEDIUM"
	ConfHigh   Confidence = "HIGH"
)

// Evidence is one supporting fact attached to a Finding: what kind of
// evidence it is, a human-readable note, and optionally the lowered IR
// node's original wire expr kind for traceability back into the decoder.
type Evidence struct {
	Kind  string
	Note  string
	LfRef *string
}

// Finding is the immutable record rules emit; the engine assigns a
// fingerprint to any Finding that arrives without one.
type Finding struct {
	ID          string
	Title       string
	Severity    Severity
	Confidence  Confidence
	Category    string
	Message     string
	Location    *ir.Location
	Evidence    []Evidence
	Related     []*ir.Location
	Metadata    map[string]string
	Fingerprint string
}

// Ctx is the immutable traversal context threaded to every rule hook.
type Ctx struct {
	PackageID    string
	ModuleName   string
	TemplateName string
	ChoiceName   string
	Path         []string
}

// Derive returns a new Ctx with template/choice optionally overridden and
// path extended, leaving the receiver untouched.
func (c Ctx) Derive(template, choice string, pathAppend string) Ctx {
	out := c
	if template != "" {
		out.TemplateName = template
	}
	if choice != "" {
		out.ChoiceName = choice
	}
	if pathAppend != "" {
		out.Path = append(append([]string{}, c.Path...), pathAppend)
	}
	return out
}

// Emitter lets a rule append a finding to the engine's buffer.
type Emitter func(Finding)

// Rule exposes five optional hooks, any of which may emit findings. A
// baseline rule implements only the hooks it needs; the others are nil.
type Rule struct {
	ID             string
	Title          string
	Category       string
	Description    string
	Rationale      string
	Tags           []string
	VisitPackage   func(ctx Ctx, pkg *ir.Package, emit Emitter)
	VisitModule    func(ctx Ctx, mod *ir.Module, emit Emitter)
	VisitTemplate  func(ctx Ctx, tmpl *ir.Template, emit Emitter)
	VisitChoice    func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter)
	VisitExpr      func(ctx Ctx, owner Owner, expr *ir.Expr, emit Emitter)
}

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

// Package walker implements a fixed, deterministic traversal of the IR.
// It never mutates the IR; it only calls each rule's hooks in a stable
// order and lets the rules append findings.
package walker

import (
	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

// Walk visits program with every rule in ruleset, in source order for
// packages/modules/templates/choices/values, and pre-order within each
// expression tree. It returns every finding every rule emitted, in
// traversal order.
func Walk(ruleset []rules.Rule, program *ir.Program) []rules.Finding {
	var findings []rules.Finding
	emit := func(f rules.Finding) { findings = append(findings, f) }

	for _, pkg := range program.Packages {
		walkPackage(ruleset, pkg, emit)
	}
	return findings
}

func walkPackage(ruleset []rules.Rule, pkg *ir.Package, emit rules.Emitter) {
	ctx := rules.Ctx{PackageID: pkg.ID}
	for _, r := range ruleset {
		if r.VisitPackage != nil {
			safeVisitPackage(r, ctx, pkg, emit)
		}
	}
	for _, mod := range pkg.Modules {
		walkModule(ruleset, ctx, mod, emit)
	}
}

func walkModule(ruleset []rules.Rule, pkgCtx rules.Ctx, mod *ir.Module, emit rules.Emitter) {
	ctx := pkgCtx
	ctx.ModuleName = mod.Name
	for _, r := range ruleset {
		if r.VisitModule != nil {
			safeVisitModule(r, ctx, mod, emit)
		}
	}
	for _, tmpl := range mod.Templates {
		walkTemplate(ruleset, ctx, tmpl, emit)
	}
	for _, val := range mod.Values {
		walkValue(ruleset, ctx, val, emit)
	}
}

func walkTemplate(ruleset []rules.Rule, moduleCtx rules.Ctx, tmpl *ir.Template, emit rules.Emitter) {
	ctx := moduleCtx.Derive(tmpl.Name, "", "")
	for _, r := range ruleset {
		if r.VisitTemplate != nil {
			safeVisitTemplate(r, ctx, tmpl, emit)
		}
	}

	walkExprTree(ruleset, ctx, rules.TemplateSignatories, tmpl.Signatories, emit)
	walkExprTree(ruleset, ctx, rules.TemplateObservers, tmpl.Observers, emit)
	if tmpl.Precond != nil {
		walkExprTree(ruleset, ctx, rules.TemplatePrecond, tmpl.Precond, emit)
	}
	if tmpl.Key != nil {
		if tmpl.Key.Body != nil {
			walkExprTree(ruleset, ctx, rules.TemplateKeyBody, tmpl.Key.Body, emit)
		}
		if tmpl.Key.Maintainers != nil {
			walkExprTree(ruleset, ctx, rules.TemplateKeyMaintainers, tmpl.Key.Maintainers, emit)
		}
	}

	for _, choice := range tmpl.Choices {
		walkChoice(ruleset, ctx, tmpl, choice, emit)
	}
}

func walkChoice(ruleset []rules.Rule, tmplCtx rules.Ctx, tmpl *ir.Template, choice *ir.Choice, emit rules.Emitter) {
	ctx := tmplCtx.Derive("", choice.Name, "")
	for _, r := range ruleset {
		if r.VisitChoice != nil {
			safeVisitChoice(r, ctx, tmpl, choice, emit)
		}
	}

	walkExprTree(ruleset, ctx, rules.ChoiceControllers, choice.Controllers, emit)
	if choice.Observers != nil {
		walkExprTree(ruleset, ctx, rules.ChoiceObservers, choice.Observers, emit)
	}
	if choice.Authorizers != nil {
		walkExprTree(ruleset, ctx, rules.ChoiceAuthorizers, choice.Authorizers, emit)
	}
	walkExprTree(ruleset, ctx, rules.ChoiceUpdate, choice.Update, emit)
}

func walkValue(ruleset []rules.Rule, moduleCtx rules.Ctx, val *ir.ValueDef, emit rules.Emitter) {
	ctx := moduleCtx
	walkExprTree(ruleset, ctx, rules.ValueBody, val.Body, emit)
}

// walkExprTree visits e pre-order: a rule's visit_expr hook fires before
// its children are visited.
func walkExprTree(ruleset []rules.Rule, ctx rules.Ctx, owner rules.Owner, e *ir.Expr, emit rules.Emitter) {
	if e == nil {
		return
	}
	for _, r := range ruleset {
		if r.VisitExpr != nil {
			safeVisitExpr(r, ctx, owner, e, emit)
		}
	}
	for _, c := range e.Children {
		walkExprTree(ruleset, ctx, owner, c, emit)
	}
}

// safeVisit* wrappers enforce that rule hooks must not throw: any
// rule-internal failure is silently swallowed at the engine boundary.
func safeVisitPackage(r rules.Rule, ctx rules.Ctx, pkg *ir.Package, emit rules.Emitter) {
	defer recoverRule(r.ID)
	r.VisitPackage(ctx, pkg, emit)
}
func safeVisitModule(r rules.Rule, ctx rules.Ctx, mod *ir.Module, emit rules.Emitter) {
	defer recoverRule(r.ID)
	r.VisitModule(ctx, mod, emit)
}
func safeVisitTemplate(r rules.Rule, ctx rules.Ctx, tmpl *ir.Template, emit rules.Emitter) {
	defer recoverRule(r.ID)
	r.VisitTemplate(ctx, tmpl, emit)
}
func safeVisitChoice(r rules.Rule, ctx rules.Ctx, tmpl *ir.Template, choice *ir.Choice, emit rules.Emitter) {
	defer recoverRule(r.ID)
	r.VisitChoice(ctx, tmpl, choice, emit)
}
func safeVisitExpr(r rules.Rule, ctx rules.Ctx, owner rules.Owner, e *ir.Expr, emit rules.Emitter) {
	defer recoverRule(r.ID)
	r.VisitExpr(ctx, owner, e, emit)
}

func recoverRule(ruleID string) {
	// A panicking rule hook must not take down the scan; it is dropped
	// for this node and the walker continues.
	recover()
}

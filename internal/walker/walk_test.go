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

package walker

import (
	"testing"

	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

func TestWalkVisitsInDeterministicOrder(t *testing.T) {
	var order []string
	record := func(tag string) func(rules.Ctx, *ir.Template, rules.Emitter) {
		return func(ctx rules.Ctx, tmpl *ir.Template, emit rules.Emitter) { order = append(order, tag+":"+tmpl.Name) }
	}

	tmplA := &ir.Template{Name: "Main.A", Signatories: &ir.Expr{Kind: "list"}, Observers: &ir.Expr{Kind: "list"}}
	tmplB := &ir.Template{Name: "Main.B", Signatories: &ir.Expr{Kind: "list"}, Observers: &ir.Expr{Kind: "list"}}
	mod := &ir.Module{Name: "Main", Templates: []*ir.Template{tmplA, tmplB}}
	pkg := &ir.Package{ID: "pkg1", Modules: []*ir.Module{mod}}
	program := &ir.Program{Packages: []*ir.Package{pkg}}

	rule := rules.Rule{ID: "TEST", VisitTemplate: record("tmpl")}
	Walk([]rules.Rule{rule}, program)

	want := []string{"tmpl:Main.A", "tmpl:Main.B"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("want %v, got %v", want, order)
	}
}

func TestWalkSwallowsPanickingRule(t *testing.T) {
	tmpl := &ir.Template{Name: "Main.A", Signatories: &ir.Expr{Kind: "list"}, Observers: &ir.Expr{Kind: "list"}}
	mod := &ir.Module{Name: "Main", Templates: []*ir.Template{tmpl}}
	pkg := &ir.Package{ID: "pkg1", Modules: []*ir.Module{mod}}
	program := &ir.Program{Packages: []*ir.Package{pkg}}

	panicky := rules.Rule{ID: "PANIC", VisitTemplate: func(ctx rules.Ctx, t *ir.Template, emit rules.Emitter) {
		panic("boom")
	}}
	good := rules.Rule{ID: "GOOD", VisitTemplate: func(ctx rules.Ctx, t *ir.Template, emit rules.Emitter) {
		emit(rules.Finding{ID: "GOOD"})
	}}

	findings := Walk([]rules.Rule{panicky, good}, program)
	if len(findings) != 1 || findings[0].ID != "GOOD" {
		t.Fatalf("want the panicking rule swallowed and the good rule's finding kept, got %+v", findings)
	}
}

func TestWalkPreOrderExprTraversal(t *testing.T) {
	var visited []string
	inner := &ir.Expr{Kind: "party", Value: "Alice"}
	outer := &ir.Expr{Kind: "list", Children: []*ir.Expr{inner}}
	tmpl := &ir.Template{Name: "Main.A", Signatories: outer, Observers: &ir.Expr{Kind: "list"}}
	mod := &ir.Module{Name: "Main", Templates: []*ir.Template{tmpl}}
	pkg := &ir.Package{ID: "pkg1", Modules: []*ir.Module{mod}}
	program := &ir.Program{Packages: []*ir.Package{pkg}}

	rule := rules.Rule{ID: "TEST", VisitExpr: func(ctx rules.Ctx, owner rules.Owner, e *ir.Expr, emit rules.Emitter) {
		visited = append(visited, e.Kind)
	}}
	Walk([]rules.Rule{rule}, program)

	if len(visited) < 2 || visited[0] != "list" || visited[1] != "party" {
		t.Fatalf("want pre-order [list, party, ...], got %v", visited)
	}
}

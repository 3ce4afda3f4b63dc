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

package analysis

import (
	"testing"

	"github.com/daml-sast/daml-sast/internal/ir"
)

func party(name string) *ir.Expr { return &ir.Expr{Kind: "party", Value: name} }

func TestInferPartySetListLiteral(t *testing.T) {
	e := &ir.Expr{Kind: "list", Children: []*ir.Expr{party("Alice"), party("Bob")}}
	s := InferPartySet(e)
	if s.Unknown {
		t.Fatal("want known set")
	}
	if !s.Known["Alice"] || !s.Known["Bob"] || len(s.Known) != 2 {
		t.Fatalf("want {Alice,Bob}, got %v", s.Known)
	}
}

func TestInferPartySetVarUnknown(t *testing.T) {
	e := &ir.Expr{Kind: "var", Value: "arg"}
	s := InferPartySet(e)
	if !s.Unknown {
		t.Fatal("want unknown set for unbound var")
	}
}

func TestEmptyListIsDefiniteEmptySet(t *testing.T) {
	e := &ir.Expr{Kind: "list"}
	s := InferPartySet(e)
	if s.Unknown || len(s.Known) != 0 {
		t.Fatalf("want definite empty set, got %+v", s)
	}
	// A definite empty set is a subset of every other definite set.
	other := InferPartySet(&ir.Expr{Kind: "list", Children: []*ir.Expr{party("Alice")}})
	if !IsDefinitelySubsetOf(s, other) {
		t.Error("empty known set should be a definite subset of any known set")
	}
}

func TestUnionMonotonicity(t *testing.T) {
	a := literal("Alice")
	b := literal("Bob")
	u := Union(a, b)
	if !IsDefinitelySubsetOf(a, u) || !IsDefinitelySubsetOf(b, u) {
		t.Fatal("union should be a superset of both operands")
	}
	if got := Union(a, Bottom()); !IsDefinitelySubsetOf(got, a) || !IsDefinitelySubsetOf(a, got) {
		t.Error("union with bottom should equal the other operand")
	}
	unk := UnknownSet()
	if IsDefinitelySubsetOf(a, unk) || IsDefinitelyNotSubsetOf(a, unk) {
		t.Error("neither subset predicate should hold against an unknown set")
	}
}

func TestCaseUnionsAlternativesIgnoresScrutinee(t *testing.T) {
	scrutinee := &ir.Expr{Kind: "var", Value: "unbound"}
	e := &ir.Expr{Kind: "case", Children: []*ir.Expr{scrutinee, party("Alice"), party("Bob")}}
	s := InferPartySet(e)
	if s.Unknown || !s.Known["Alice"] || !s.Known["Bob"] {
		t.Fatalf("want union of alternatives regardless of scrutinee, got %+v", s)
	}
}

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

package ir

import (
	"testing"

	"github.com/daml-sast/daml-sast/internal/lf/decode"
	dt "github.com/daml-sast/daml-sast/internal/lf/decode/decodetest"
	"github.com/daml-sast/daml-sast/internal/lf/limits"
)

// strings table: 0=Main 1=TAuth 2=Alice 3=Bob 4=Transfer 5=self 6=pkg
func buildTemplateFixture(t *testing.T) []byte {
	t.Helper()

	choice := dt.Concat(
		dt.TagVarint(dt.FieldChoiceNameStrIdx, 4),
		dt.TagBool(dt.FieldChoiceConsuming, true),
		dt.TagBytes(dt.FieldChoiceControllers, dt.ListOf(dt.Party(3)).Bytes()),
		dt.TagBytes(dt.FieldChoiceUpdate, dt.NewExpr("update.pure").WithChildren(dt.NewExpr("prim_con").WithStrIdx(0)).Bytes()),
	)

	template := dt.Concat(
		dt.TagVarint(dt.FieldTemplateNameDName, 1),
		dt.TagString(dt.FieldTemplateSelfParam, "self"),
		dt.TagBytes(dt.FieldTemplateSignatories, dt.ListOf(dt.Party(2)).Bytes()),
		dt.TagBytes(dt.FieldTemplateObservers, dt.ListOf().Bytes()),
		dt.TagBytes(dt.FieldTemplateChoices, choice),
	)

	module := dt.Concat(
		dt.TagVarint(dt.FieldModuleNameDName, 0),
		dt.TagBytes(dt.FieldModuleTemplates, template),
	)

	dnameMain := dt.Concat(dt.TagVarint(dt.FieldDottedNameSegments, 0))
	dnameTAuth := dt.Concat(dt.TagVarint(dt.FieldDottedNameSegments, 1))

	meta := dt.Concat(dt.TagVarint(dt.FieldMetadataNameStrIdx, 6), dt.TagVarint(dt.FieldMetadataVersionStrIdx, 6))

	pkg := dt.Concat(
		dt.TagString(dt.FieldPackageV1Strings, "Main"),
		dt.TagString(dt.FieldPackageV1Strings, "TAuth"),
		dt.TagString(dt.FieldPackageV1Strings, "Alice"),
		dt.TagString(dt.FieldPackageV1Strings, "Bob"),
		dt.TagString(dt.FieldPackageV1Strings, "Transfer"),
		dt.TagString(dt.FieldPackageV1Strings, "self"),
		dt.TagString(dt.FieldPackageV1Strings, "pkg"),
		dt.TagBytes(dt.FieldPackageV1DottedNames, dnameMain),
		dt.TagBytes(dt.FieldPackageV1DottedNames, dnameTAuth),
		dt.TagBytes(dt.FieldPackageV1Modules, module),
		dt.TagBytes(dt.FieldPackageV1Metadata, meta),
	)

	return dt.BuildArchive("6", pkg, false)
}

func TestLowerPackageTemplateShape(t *testing.T) {
	archive := buildTemplateFixture(t)
	raw, err := decode.DecodePayload(archive, limits.Default())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	pkg, err := LowerPackage(raw)
	if err != nil {
		t.Fatalf("lower failed: %v", err)
	}
	if len(pkg.Modules) != 1 {
		t.Fatalf("want 1 module, got %d", len(pkg.Modules))
	}
	mod := pkg.Modules[0]
	if mod.Name != "Main" {
		t.Errorf("want module Main, got %s", mod.Name)
	}
	if len(mod.Templates) != 1 {
		t.Fatalf("want 1 template, got %d", len(mod.Templates))
	}
	tmpl := mod.Templates[0]
	if tmpl.Name != "Main.TAuth" {
		t.Errorf("want Main.TAuth, got %s", tmpl.Name)
	}
	if tmpl.Signatories.Kind != "list" || len(tmpl.Signatories.Children) != 1 {
		t.Fatalf("signatories should flatten to a 1-element list, got kind=%s children=%d", tmpl.Signatories.Kind, len(tmpl.Signatories.Children))
	}
	if tmpl.Signatories.Children[0].Value != "Alice" {
		t.Errorf("want signatory Alice, got %v", tmpl.Signatories.Children[0].Value)
	}
	if len(tmpl.Observers.Children) != 0 {
		t.Errorf("want empty observers list, got %d children", len(tmpl.Observers.Children))
	}
	if len(tmpl.Choices) != 1 {
		t.Fatalf("want 1 choice, got %d", len(tmpl.Choices))
	}
	ch := tmpl.Choices[0]
	if ch.Name != "Transfer" || !ch.Consuming {
		t.Errorf("want consuming choice Transfer, got name=%s consuming=%v", ch.Name, ch.Consuming)
	}
	if ch.Controllers.Children[0].Value != "Bob" {
		t.Errorf("want controller Bob, got %v", ch.Controllers.Children[0].Value)
	}
	if ch.Update.Kind != "update.pure" {
		t.Errorf("want update.pure, got %s", ch.Update.Kind)
	}
}

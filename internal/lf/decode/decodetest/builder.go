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

// Package decodetest builds hand-encoded wire bytes matching the schema
// documented in internal/lf/decode/schema.go, for tests that need a full
// archive without a real Daml-LF toolchain to produce one.
package decodetest

import (
	"crypto/sha256"
	"encoding/hex"

	"google.golang.org/protobuf/encoding/protowire"
)

func TagBytes(num protowire.Number, raw []byte) []byte {
	b := protowire.AppendTag(nil, num, protowire.BytesType)
	return protowire.AppendBytes(b, raw)
}

func TagString(num protowire.Number, s string) []byte { return TagBytes(num, []byte(s)) }

func TagVarint(num protowire.Number, v uint64) []byte {
	b := protowire.AppendTag(nil, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func TagBool(num protowire.Number, v bool) []byte {
	i := uint64(0)
	if v {
		i = 1
	}
	return TagVarint(num, i)
}

func Concat(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// Field numbers, duplicated from internal/lf/decode/schema.go (unexported
// there) so fixtures stay in lockstep with the real decoder by hand.
const (
	FieldArchiveHashFunction protowire.Number = 1
	FieldArchivePayload      protowire.Number = 2
	FieldArchiveHash         protowire.Number = 3

	FieldPayloadMinor   protowire.Number = 1
	FieldPayloadPatch   protowire.Number = 2
	FieldPayloadDamlLf1 protowire.Number = 3
	FieldPayloadDamlLf2 protowire.Number = 4

	// v1 Package shape: no imports field at all.
	FieldPackageV1Strings     protowire.Number = 1
	FieldPackageV1DottedNames protowire.Number = 2
	FieldPackageV1Types       protowire.Number = 3
	FieldPackageV1Kinds       protowire.Number = 4
	FieldPackageV1Exprs       protowire.Number = 5
	FieldPackageV1Modules     protowire.Number = 6
	FieldPackageV1Metadata    protowire.Number = 7

	// v2 Package shape: imports table inserted ahead of modules/metadata.
	FieldPackageV2Strings     protowire.Number = 1
	FieldPackageV2DottedNames protowire.Number = 2
	FieldPackageV2Types       protowire.Number = 3
	FieldPackageV2Kinds       protowire.Number = 4
	FieldPackageV2Exprs       protowire.Number = 5
	FieldPackageV2Imports     protowire.Number = 6
	FieldPackageV2Modules     protowire.Number = 7
	FieldPackageV2Metadata    protowire.Number = 8

	FieldDottedNameSegments protowire.Number = 1

	FieldMetadataNameStrIdx    protowire.Number = 1
	FieldMetadataVersionStrIdx protowire.Number = 2

	FieldModuleNameDName protowire.Number = 1
	FieldModuleTemplates protowire.Number = 2
	FieldModuleValues    protowire.Number = 3

	FieldTemplateNameDName   protowire.Number = 1
	FieldTemplateSelfParam   protowire.Number = 2
	FieldTemplateSignatories protowire.Number = 3
	FieldTemplateObservers   protowire.Number = 4
	FieldTemplatePrecond     protowire.Number = 5
	FieldTemplateKey         protowire.Number = 6
	FieldTemplateChoices     protowire.Number = 7
	FieldTemplateLocation    protowire.Number = 8

	FieldKeyType        protowire.Number = 1
	FieldKeyBody        protowire.Number = 2
	FieldKeyMaintainers protowire.Number = 3

	FieldChoiceNameStrIdx  protowire.Number = 1
	FieldChoiceConsuming   protowire.Number = 2
	FieldChoiceControllers protowire.Number = 3
	FieldChoiceObservers   protowire.Number = 4
	FieldChoiceAuthorizers protowire.Number = 5
	FieldChoiceReturnType  protowire.Number = 6
	FieldChoiceUpdate      protowire.Number = 7
	FieldChoiceLocation    protowire.Number = 8

	FieldValueNameDName protowire.Number = 1
	FieldValueBody      protowire.Number = 2
	FieldValueLocation  protowire.Number = 3

	FieldSpanFile      protowire.Number = 1
	FieldSpanStartLine protowire.Number = 2
	FieldSpanStartCol  protowire.Number = 3
	FieldSpanEndLine   protowire.Number = 4
	FieldSpanEndCol    protowire.Number = 5

	FieldTypeTag     protowire.Number = 1
	FieldTypeNameIdx protowire.Number = 2
	FieldTypeArgs    protowire.Number = 3

	FieldExprKind       protowire.Number = 1
	FieldExprStrIdx     protowire.Number = 2
	FieldExprStrIdx2    protowire.Number = 3
	FieldExprDNameIdx   protowire.Number = 4
	FieldExprIntVal     protowire.Number = 5
	FieldExprBoolVal    protowire.Number = 6
	FieldExprTextVal    protowire.Number = 7
	FieldExprTypeVal    protowire.Number = 8
	FieldExprPackageRef protowire.Number = 9
	FieldExprFields     protowire.Number = 10
	FieldExprChildren   protowire.Number = 11
	FieldExprLocation   protowire.Number = 12
	FieldExprCaseAlts   protowire.Number = 13

	FieldFieldNameStrIdx protowire.Number = 1
	FieldFieldValue      protowire.Number = 2

	// v1 PackageRef shape: bool "self" tag, else a direct package-id
	// string index (no imports table exists in v1 to index into).
	FieldPackageRefV1Self            protowire.Number = 1
	FieldPackageRefV1PackageIDStrIdx protowire.Number = 2

	// v2 PackageRef shape: string tag ("self"/"import") plus an index
	// into the package's imports table.
	FieldPackageRefV2Tag       protowire.Number = 1
	FieldPackageRefV2ImportIdx protowire.Number = 2

	FieldCaseAltTag     protowire.Number = 1
	FieldCaseAltCtor    protowire.Number = 2
	FieldCaseAltBinders protowire.Number = 3
	FieldCaseAltBody    protowire.Number = 4

	HashFunctionSHA256 = 0
)

// Expr is a builder for one Expr wire node.
type Expr struct {
	kind     string
	strIdx   *int32
	strIdx2  *int32
	dnameIdx *int32
	children []Expr
	textVal  *string
	pkgRef   []byte
}

func NewExpr(kind string) Expr { return Expr{kind: kind} }

func (e Expr) WithStrIdx(i int32) Expr      { e.strIdx = &i; return e }
func (e Expr) WithStrIdx2(i int32) Expr     { e.strIdx2 = &i; return e }
func (e Expr) WithDNameIdx(i int32) Expr    { e.dnameIdx = &i; return e }
func (e Expr) WithText(s string) Expr       { e.textVal = &s; return e }
func (e Expr) WithChildren(cs ...Expr) Expr { e.children = cs; return e }

// WithPackageRef attaches a PackageRef submessage (see PackageRefV1Self,
// PackageRefV1Direct, PackageRefV2Self, PackageRefV2Import) to a val_ref
// expr node.
func (e Expr) WithPackageRef(ref []byte) Expr { e.pkgRef = ref; return e }

func (e Expr) Bytes() []byte {
	var b []byte
	b = append(b, TagString(FieldExprKind, e.kind)...)
	if e.strIdx != nil {
		b = append(b, TagVarint(FieldExprStrIdx, uint64(*e.strIdx))...)
	}
	if e.strIdx2 != nil {
		b = append(b, TagVarint(FieldExprStrIdx2, uint64(*e.strIdx2))...)
	}
	if e.dnameIdx != nil {
		b = append(b, TagVarint(FieldExprDNameIdx, uint64(*e.dnameIdx))...)
	}
	if e.textVal != nil {
		b = append(b, TagString(FieldExprTextVal, *e.textVal)...)
	}
	if e.pkgRef != nil {
		b = append(b, TagBytes(FieldExprPackageRef, e.pkgRef)...)
	}
	for _, c := range e.children {
		b = append(b, TagBytes(FieldExprChildren, c.Bytes())...)
	}
	return b
}

// PackageRefV1Self builds a v1 "self" PackageRef (field 1, bool true).
func PackageRefV1Self() []byte { return TagBool(FieldPackageRefV1Self, true) }

// PackageRefV1Direct builds a v1 PackageRef naming the target package id
// by a direct string-table index — the only non-self v1 shape, since v1
// has no per-package imports table to index into.
func PackageRefV1Direct(strIdx int32) []byte {
	return TagVarint(FieldPackageRefV1PackageIDStrIdx, uint64(strIdx))
}

// PackageRefV2Self builds a v2 "self" PackageRef (field 1, string "self").
func PackageRefV2Self() []byte { return TagString(FieldPackageRefV2Tag, "self") }

// PackageRefV2Import builds a v2 "import" PackageRef, carrying an index
// into the package's imports table rather than a direct package-id string.
func PackageRefV2Import(importIdx int32) []byte {
	return Concat(
		TagString(FieldPackageRefV2Tag, "import"),
		TagVarint(FieldPackageRefV2ImportIdx, uint64(importIdx)),
	)
}

// Party builds a party literal node referencing strings[idx].
func Party(idx int32) Expr { return NewExpr("party").WithStrIdx(idx) }

// ListOf builds a literal "list" wire node (pre-flattened).
func ListOf(elems ...Expr) Expr { return NewExpr("list").WithChildren(elems...) }

// BuildArchive wraps a dialect-specific package payload into a full
// Archive envelope with a correct SHA-256 hash.
func BuildArchive(minor string, pkgBytes []byte, lf2 bool) []byte {
	fieldNum := FieldPayloadDamlLf1
	if lf2 {
		fieldNum = FieldPayloadDamlLf2
	}
	payload := Concat(TagString(FieldPayloadMinor, minor), TagBytes(fieldNum, pkgBytes))
	sum := sha256.Sum256(payload)
	hash := hex.EncodeToString(sum[:])
	return Concat(
		TagVarint(FieldArchiveHashFunction, HashFunctionSHA256),
		TagBytes(FieldArchivePayload, payload),
		TagString(FieldArchiveHash, hash),
	)
}

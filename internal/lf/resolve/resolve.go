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

// Package resolve turns interned indices recovered by internal/lf/decode
// into text, total over out-of-range input: a malformed
// index never panics, it yields a placeholder so a hostile or truncated
// package degrades to noisy findings rather than a crash.
package resolve

import (
	"strconv"
	"strings"

	"github.com/daml-sast/daml-sast/internal/lf/decode"
)

// Base implements the lookup surface shared by both dialects.
type Base struct {
	Strings     []string
	DottedNames [][]int32
	Imports     []string
	SelfPackage string
}

func NewBase(pkg *decode.RawPackage) Base {
	return Base{
		Strings:     pkg.Strings,
		DottedNames: pkg.DottedNames,
		Imports:     pkg.Imports,
		SelfPackage: pkg.PackageID,
	}
}

// InternedStr resolves a string-table index, total.
func (b Base) InternedStr(i int) string {
	if i < 0 || i >= len(b.Strings) {
		return "<str:" + strconv.Itoa(i) + ">"
	}
	return b.Strings[i]
}

// InternedDName resolves a dotted-name-table index to its joined text,
// total.
func (b Base) InternedDName(i int) string {
	if i < 0 || i >= len(b.DottedNames) {
		return "<dname:" + strconv.Itoa(i) + ">"
	}
	segs := b.DottedNames[i]
	parts := make([]string, len(segs))
	for j, s := range segs {
		parts[j] = b.InternedStr(int(s))
	}
	return strings.Join(parts, ".")
}

// ImportedPackage resolves a v2 package-imports-table index to a package
// id, total.
func (b Base) ImportedPackage(i int) string {
	if i < 0 || i >= len(b.Imports) {
		return "<import:" + strconv.Itoa(i) + ">"
	}
	return b.Imports[i]
}

// FQNWithPackage renders module.name when pkg is the owning package, else
// pkg:module.name.
func (b Base) FQNWithPackage(pkg, module, name string) string {
	if pkg == "" || pkg == b.SelfPackage {
		return module + "." + name
	}
	return pkg + ":" + module + "." + name
}

// Lf1 is the v1 dialect resolver.
type Lf1 struct{ Base }

// Lf2 is the v2 dialect resolver.
type Lf2 struct{ Base }

// PackageRef resolves a v1-shaped PackageRefNode. v1 has no per-package
// imports table: a reference is either "self" or a direct index into the
// package's own string table naming the target package id outright, never
// an index through an intermediate import alias.
func (r Lf1) PackageRef(ref decode.PackageRefNode) string {
	if ref.SelfV1() {
		return r.SelfPackage
	}
	idx, ok := ref.PackageIDStrIdxV1()
	if !ok {
		return r.SelfPackage
	}
	return r.InternedStr(idx)
}

// PackageRef resolves a v2-shaped PackageRefNode, honoring the "self" vs
// "import" tag; "import" resolves through the per-package imports table
// that only v2 packages carry.
func (r Lf2) PackageRef(ref decode.PackageRefNode) string {
	if ref.TagV2() == "import" {
		idx, _ := ref.ImportIdxV2()
		return r.ImportedPackage(idx)
	}
	return r.SelfPackage
}

// NewLf1 builds a v1 resolver over pkg's interning tables.
func NewLf1(pkg *decode.RawPackage) Lf1 { return Lf1{NewBase(pkg)} }

// NewLf2 builds a v2 resolver over pkg's interning tables.
func NewLf2(pkg *decode.RawPackage) Lf2 { return Lf2{NewBase(pkg)} }

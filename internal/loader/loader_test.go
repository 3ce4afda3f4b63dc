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

package loader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	dt "github.com/daml-sast/daml-sast/internal/lf/decode/decodetest"
	"github.com/daml-sast/daml-sast/internal/lf/limits"
)

// strings table: 0=Main 1=TClean 2=Alice 3=self 4=pkg
func buildMinimalDalf(t *testing.T) []byte {
	t.Helper()

	template := dt.Concat(
		dt.TagVarint(dt.FieldTemplateNameDName, 1),
		dt.TagString(dt.FieldTemplateSelfParam, "self"),
		dt.TagBytes(dt.FieldTemplateSignatories, dt.ListOf(dt.Party(2)).Bytes()),
		dt.TagBytes(dt.FieldTemplateObservers, dt.ListOf().Bytes()),
	)
	module := dt.Concat(
		dt.TagVarint(dt.FieldModuleNameDName, 0),
		dt.TagBytes(dt.FieldModuleTemplates, template),
	)
	dnameMain := dt.Concat(dt.TagVarint(dt.FieldDottedNameSegments, 0))
	dnameTClean := dt.Concat(dt.TagVarint(dt.FieldDottedNameSegments, 1))
	meta := dt.Concat(dt.TagVarint(dt.FieldMetadataNameStrIdx, 4), dt.TagVarint(dt.FieldMetadataVersionStrIdx, 4))

	pkg := dt.Concat(
		dt.TagString(dt.FieldPackageV1Strings, "Main"),
		dt.TagString(dt.FieldPackageV1Strings, "TClean"),
		dt.TagString(dt.FieldPackageV1Strings, "Alice"),
		dt.TagString(dt.FieldPackageV1Strings, "self"),
		dt.TagString(dt.FieldPackageV1Strings, "pkg"),
		dt.TagBytes(dt.FieldPackageV1DottedNames, dnameMain),
		dt.TagBytes(dt.FieldPackageV1DottedNames, dnameTClean),
		dt.TagBytes(dt.FieldPackageV1Modules, module),
		dt.TagBytes(dt.FieldPackageV1Metadata, meta),
	)

	return dt.BuildArchive("6", pkg, false)
}

func buildDAR(t *testing.T, dalfBytes []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("main.dalf")
	if err != nil {
		t.Fatalf("zip Create: %v", err)
	}
	if _, err := w.Write(dalfBytes); err != nil {
		t.Fatalf("zip Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	return path
}

func TestLoadProgramFromDAR(t *testing.T) {
	darPath := buildDAR(t, buildMinimalDalf(t))

	program, err := LoadProgram(darPath, limits.Default())
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if len(program.Packages) != 1 {
		t.Fatalf("want 1 package, got %d", len(program.Packages))
	}
	mod := program.Packages[0].Modules[0]
	if mod.Name != "Main" || mod.Templates[0].Name != "Main.TClean" {
		t.Fatalf("want Main.TClean, got %+v", mod)
	}
}

func TestLoadProgramRejectsDARWithNoDalfEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	zw := zip.NewWriter(f)
	zw.Close()
	f.Close()

	if _, err := LoadProgram(path, limits.Default()); err == nil {
		t.Fatalf("want an error for a DAR with no .dalf entries")
	}
}

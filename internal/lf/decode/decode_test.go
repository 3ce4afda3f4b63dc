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

package decode

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/lf/limits"
)

func tagBytes(num protowire.Number, raw []byte) []byte {
	b := protowire.AppendTag(nil, num, protowire.BytesType)
	b = protowire.AppendBytes(b, raw)
	return b
}

func tagString(num protowire.Number, s string) []byte {
	return tagBytes(num, []byte(s))
}

func tagVarint(num protowire.Number, v uint64) []byte {
	b := protowire.AppendTag(nil, num, protowire.VarintType)
	b = protowire.AppendVarint(b, v)
	return b
}

func concat(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// buildMinimalPackage builds a v1 package with one empty module list and a
// metadata block naming "main"/"1.0.0", and no string-literal dependent
// templates — enough to exercise version/metadata extraction.
func buildMinimalPackage(t *testing.T) []byte {
	t.Helper()
	return buildMinimalPackageNamed(t, "main")
}

// buildMinimalPackageV2Named builds a v2-shaped package, whose Metadata
// field number differs from v1's.
func buildMinimalPackageV2Named(t *testing.T, name string) []byte {
	t.Helper()
	strings_ := concat(tagString(fieldPackageV2Strings, name), tagString(fieldPackageV2Strings, "1.0.0"))
	meta := concat(tagVarint(fieldMetadataNameStrIdx, 0), tagVarint(fieldMetadataVersionStrIdx, 1))
	return concat(strings_, tagBytes(fieldPackageV2Metadata, meta))
}

func buildArchive(t *testing.T, minor string, pkgBytes []byte, lf2 bool) []byte {
	t.Helper()
	fieldNum := fieldPayloadDamlLf1
	if lf2 {
		fieldNum = fieldPayloadDamlLf2
	}
	payload := concat(tagString(fieldPayloadMinor, minor), tagBytes(fieldNum, pkgBytes))

	sum := sha256.Sum256(payload)
	hash := hex.EncodeToString(sum[:])

	return concat(
		tagVarint(fieldArchiveHashFunction, hashFunctionSHA256),
		tagBytes(fieldArchivePayload, payload),
		tagString(fieldArchiveHash, hash),
	)
}

func TestDecodePayloadV1Minimal(t *testing.T) {
	pkgBytes := buildMinimalPackage(t)
	archive := buildArchive(t, "6", pkgBytes, false)

	pkg, err := DecodePayload(archive, limits.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg.Dialect != 1 {
		t.Errorf("want dialect 1, got %d", pkg.Dialect)
	}
	if pkg.Version.Short() != "1.6" {
		t.Errorf("want version 1.6, got %s", pkg.Version.Short())
	}
	if pkg.Name != "main" {
		t.Errorf("want name main, got %s", pkg.Name)
	}
	if len(pkg.PackageID) != 64 {
		t.Errorf("want 64-char hex package id, got %q", pkg.PackageID)
	}
}

func TestDecodePayloadHashMismatch(t *testing.T) {
	pkgBytes := buildMinimalPackage(t)
	archive := buildArchive(t, "6", pkgBytes, false)
	// Flip the first 'a' byte (inside the payload's "main" string) so the
	// payload no longer matches the declared hash.
	for i := range archive {
		if archive[i] == 'a' {
			archive[i] = 'b'
			break
		}
	}
	_, err := DecodePayload(archive, limits.Default())
	if lferrors.CodeOf(err) != lferrors.MalformedArchive {
		t.Fatalf("want MalformedArchive, got %v", err)
	}
}

func TestDecodePayloadUnsupportedVersion(t *testing.T) {
	pkgBytes := buildMinimalPackage(t)
	archive := buildArchive(t, "999", pkgBytes, false)
	_, err := DecodePayload(archive, limits.Default())
	if lferrors.CodeOf(err) != lferrors.UnsupportedVersion {
		t.Fatalf("want UnsupportedVersion, got %v", err)
	}
}

func TestDecodePayloadFallbackToV2DamlPrim(t *testing.T) {
	// daml-prim is declared through the daml_lf_1 oneof branch, but its
	// minor-text field already carries a 2.x version string. That fails
	// v1's own major-version check outright, so decodePackageV1 errors
	// before ever reaching the v1/v2 field-shape difference; re-parsing
	// the very same bytes as v2 (with the fallback's fixed "2.1" minor
	// text) then succeeds and recovers the v2-shaped name.
	v2Pkg := buildMinimalPackageV2Named(t, fallbackPackageName)
	payload := concat(
		tagString(fieldPayloadMinor, "2.1"),
		tagBytes(fieldPayloadDamlLf1, v2Pkg),
	)
	sum := sha256.Sum256(payload)
	hash := hex.EncodeToString(sum[:])
	archive := concat(
		tagVarint(fieldArchiveHashFunction, hashFunctionSHA256),
		tagBytes(fieldArchivePayload, payload),
		tagString(fieldArchiveHash, hash),
	)

	pkg, err := DecodePayload(archive, limits.Default())
	if err != nil {
		t.Fatalf("expected fallback to succeed, got error: %v", err)
	}
	if pkg.Dialect != 2 || pkg.Version.Short() != "2.1" {
		t.Fatalf("want fallback to v2 2.1, got dialect=%d version=%s", pkg.Dialect, pkg.Version.Short())
	}
	if pkg.Name != fallbackPackageName {
		t.Fatalf("want name %q, got %q", fallbackPackageName, pkg.Name)
	}
}

func buildMinimalPackageNamed(t *testing.T, name string) []byte {
	t.Helper()
	strings_ := concat(tagString(fieldPackageV1Strings, name), tagString(fieldPackageV1Strings, "1.0.0"))
	meta := concat(tagVarint(fieldMetadataNameStrIdx, 0), tagVarint(fieldMetadataVersionStrIdx, 1))
	return concat(strings_, tagBytes(fieldPackageV1Metadata, meta))
}

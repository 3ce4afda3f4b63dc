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
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/lf/limits"
	"github.com/daml-sast/daml-sast/internal/lf/version"
	"github.com/daml-sast/daml-sast/internal/lf/wire"
)

// daml-prim is the metadata name that singles out the v1-labelled-but
// -actually-v2 fallback quirk.
const fallbackPackageName = "daml-prim"

// RawPackage is the decode stage's output: interning tables plus the raw
// wire trees for every module, still unresolved. internal/lf/resolve and
// internal/ir consume it.
type RawPackage struct {
	PackageID      string
	Dialect        int
	Version        version.Version
	Name           string
	PackageVersion string

	Strings     []string
	DottedNames [][]int32
	Types       []*wire.Message
	Exprs       []*wire.Message
	Imports     []string

	Modules []*wire.Message
}

// DecodePayload runs the full envelope → payload → package pipeline over
// one .dalf blob.
func DecodePayload(raw []byte, lim limits.Limits) (*RawPackage, error) {
	envelope, err := wire.Parse(raw, lim.MaxProtoDepth, lim.MaxProtoNodes)
	if err != nil {
		return nil, err
	}

	hashFn, ok := envelope.Int32(fieldArchiveHashFunction)
	if !ok || hashFn != hashFunctionSHA256 {
		return nil, lferrors.New(lferrors.MalformedArchive, "unsupported or missing Archive.hash_function")
	}
	payloadBytes, ok := envelope.Bytes(fieldArchivePayload)
	if !ok || len(payloadBytes) == 0 {
		return nil, lferrors.New(lferrors.MalformedArchive, "Archive.payload is absent or empty")
	}
	if int64(len(payloadBytes)) > lim.MaxArchivePayloadBytes {
		return nil, lferrors.Newf(lferrors.InputLimit, "Archive.payload is %d bytes, exceeds limit of %d", len(payloadBytes), lim.MaxArchivePayloadBytes)
	}

	sum := sha256.Sum256(payloadBytes)
	computed := hex.EncodeToString(sum[:])
	packageID := computed
	if declared, ok := envelope.String(fieldArchiveHash); ok && declared != "" {
		if !strings.EqualFold(declared, computed) {
			return nil, lferrors.New(lferrors.MalformedArchive, "Archive.hash does not match SHA-256 of payload bytes")
		}
		packageID = strings.ToLower(declared)
	}

	pkg, err := decodePayloadMessage(payloadBytes, packageID, lim)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

func decodePayloadMessage(payloadBytes []byte, packageID string, lim limits.Limits) (*RawPackage, error) {
	payload, err := wire.Parse(payloadBytes, lim.MaxProtoDepth, lim.MaxProtoNodes)
	if err != nil {
		return nil, err
	}

	minorText, _ := payload.String(fieldPayloadMinor)
	var patchPtr *int32
	if p, ok := payload.Int32(fieldPayloadPatch); ok {
		patchPtr = &p
	}

	lf1Bytes, hasLf1 := payload.Bytes(fieldPayloadDamlLf1)
	lf2Bytes, hasLf2 := payload.Bytes(fieldPayloadDamlLf2)

	switch {
	case hasLf1:
		pkg, err := decodePackageV1(lf1Bytes, minorText, patchPtr, lim)
		if err == nil {
			pkg.PackageID = packageID
			return pkg, nil
		}
		// daml-prim is declared through the v1 oneof branch but is actually
		// laid out as v2: when the v1 parse rejects it, re-parse the same
		// payload bytes as v2 rather than consulting a separate field.
		fallback, ferr := decodePackageV2(lf1Bytes, "2.1", nil, lim)
		if ferr != nil || fallback.Name != fallbackPackageName {
			return nil, err
		}
		fallback.PackageID = packageID
		return fallback, nil
	case hasLf2:
		pkg, err := decodePackageV2(lf2Bytes, minorText, patchPtr, lim)
		if err != nil {
			return nil, err
		}
		pkg.PackageID = packageID
		return pkg, nil
	default:
		return nil, lferrors.New(lferrors.MalformedArchive, "ArchivePayload selects neither daml_lf_1 nor daml_lf_2")
	}
}

// decodePackageV1 reads the v1 Package shape: no package-imports table, so
// pkg.Imports is always left empty for this dialect.
func decodePackageV1(data []byte, minorText string, patch *int32, lim limits.Limits) (*RawPackage, error) {
	msg, ver, err := parsePackageEnvelope(data, 1, minorText, patch, lim)
	if err != nil {
		return nil, err
	}

	pkg := &RawPackage{
		Dialect: 1,
		Version: ver,
		Strings: msg.RepeatedString(fieldPackageV1Strings),
		Modules: msg.RepeatedSub(fieldPackageV1Modules),
		Types:   msg.RepeatedSub(fieldPackageV1Types),
		Exprs:   msg.RepeatedSub(fieldPackageV1Exprs),
	}
	for _, dn := range msg.RepeatedSub(fieldPackageV1DottedNames) {
		pkg.DottedNames = append(pkg.DottedNames, dn.RepeatedInt32(fieldDottedNameSegments))
	}
	applyMetadata(pkg, msg, fieldPackageV1Metadata)
	return pkg, nil
}

// decodePackageV2 reads the v2 Package shape, which additionally carries a
// package-imports table absent from v1.
func decodePackageV2(data []byte, minorText string, patch *int32, lim limits.Limits) (*RawPackage, error) {
	msg, ver, err := parsePackageEnvelope(data, 2, minorText, patch, lim)
	if err != nil {
		return nil, err
	}

	pkg := &RawPackage{
		Dialect: 2,
		Version: ver,
		Strings: msg.RepeatedString(fieldPackageV2Strings),
		Imports: msg.RepeatedString(fieldPackageV2Imports),
		Modules: msg.RepeatedSub(fieldPackageV2Modules),
		Types:   msg.RepeatedSub(fieldPackageV2Types),
		Exprs:   msg.RepeatedSub(fieldPackageV2Exprs),
	}
	for _, dn := range msg.RepeatedSub(fieldPackageV2DottedNames) {
		pkg.DottedNames = append(pkg.DottedNames, dn.RepeatedInt32(fieldDottedNameSegments))
	}
	applyMetadata(pkg, msg, fieldPackageV2Metadata)
	return pkg, nil
}

func parsePackageEnvelope(data []byte, dialect int, minorText string, patch *int32, lim limits.Limits) (*wire.Message, version.Version, error) {
	if int64(len(data)) > lim.MaxPackageBytes {
		return nil, version.Version{}, lferrors.Newf(lferrors.InputLimit, "package is %d bytes, exceeds limit of %d", len(data), lim.MaxPackageBytes)
	}
	msg, err := wire.Parse(data, lim.MaxProtoDepth, lim.MaxProtoNodes)
	if err != nil {
		return nil, version.Version{}, err
	}

	ver, err := version.Normalize(dialect, minorText, patch)
	if err != nil {
		return nil, version.Version{}, err
	}
	if !version.IsSupported(ver) {
		return nil, version.Version{}, lferrors.Newf(lferrors.UnsupportedVersion, "unsupported Daml-LF version %s", ver.Short())
	}
	return msg, ver, nil
}

// applyMetadata is shared across dialects: the Metadata submessage's own
// internal shape (name/version string indices) happens to coincide between
// v1 and v2, even though the Package-level field number that carries it
// differs (the caller passes metaField).
func applyMetadata(pkg *RawPackage, msg *wire.Message, metaField protowire.Number) {
	meta, ok := msg.Sub(metaField)
	if !ok {
		return
	}
	if idx, ok := meta.Int32(fieldMetadataNameStrIdx); ok {
		pkg.Name = internedStr(pkg.Strings, int(idx))
	}
	if idx, ok := meta.Int32(fieldMetadataVersionStrIdx); ok {
		pkg.PackageVersion = internedStr(pkg.Strings, int(idx))
	}
}

func internedStr(table []string, i int) string {
	if i < 0 || i >= len(table) {
		return placeholderStr(i)
	}
	return table[i]
}

func placeholderStr(i int) string {
	return "<str:" + strconv.Itoa(i) + ">"
}
